package hull

import "math"

// Circle is a circle in the plane spanned by the orthonormal vectors E1 and
// E2. Angles are measured from E1 toward E2.
type Circle[P Vector[P]] struct {
	Center P
	Radius float64
	E1     P
	E2     P
}

// collinearEpsilon is the relative threshold below which three points are
// considered to lie on a line.
const collinearEpsilon = 1e-9

// Circumcircle returns the circle through a, b and c. It reports false if the
// points are (nearly) collinear, in which case no circle exists.
//
// The center is computed from dot products only, so that the same formula
// serves any number of dimensions.
func Circumcircle[P Vector[P]](a, b, c P) (Circle[P], bool) {
	u := b.Sub(a).WithWeight(0)
	v := c.Sub(a).WithWeight(0)
	uu := u.Dot(u)
	vv := v.Dot(v)
	uv := u.Dot(v)
	det := uu*vv - uv*uv
	if uu == 0 || vv == 0 || det <= collinearEpsilon*uu*vv {
		return Circle[P]{}, false
	}
	alpha := vv * (uu - uv) / (2 * det)
	beta := uu * (vv - uv) / (2 * det)
	center := a.WithWeight(1).Add(u.Mul(alpha)).Add(v.Mul(beta))

	var e1, e2 P
	if a.Dims() == 2 {
		// Keep the standard orientation in the plane so that angles are
		// comparable across circles.
		e1 = e1.WithCoord(0, 1)
		e2 = e2.WithCoord(1, 1)
	} else {
		e1 = u.Unit()
		e2 = v.Sub(e1.Mul(v.Dot(e1))).Unit()
	}
	return Circle[P]{
		Center: center,
		Radius: center.Distance(a),
		E1:     e1,
		E2:     e2,
	}, true
}

// At returns the point on the circle at angle th.
func (c Circle[P]) At(th float64) P {
	sin, cos := math.Sincos(th)
	return c.Center.Add(c.E1.Mul(c.Radius * cos)).Add(c.E2.Mul(c.Radius * sin))
}

// AngleOf returns the angle of pt's projection onto the circle's plane.
func (c Circle[P]) AngleOf(pt P) float64 {
	d := pt.Sub(c.Center)
	return math.Atan2(d.Dot(c.E2), d.Dot(c.E1))
}

// Distance returns the distance from pt to the nearest point on the circle.
func (c Circle[P]) Distance(pt P) float64 {
	d := pt.Sub(c.Center)
	x := d.Dot(c.E1)
	y := d.Dot(c.E2)
	r := math.Hypot(x, y) - c.Radius
	if pt.Dims() == 2 {
		return math.Abs(r)
	}
	// h is the offset of pt from the circle's plane.
	h := d.Sub(c.E1.Mul(x)).Sub(c.E2.Mul(y))
	return math.Sqrt(h.Dot(h) + r*r)
}

// Arc returns the arc of c starting at startAngle and sweeping sweepAngle
// radians.
func (c Circle[P]) Arc(startAngle, sweepAngle float64) Arc[P] {
	return Arc[P]{Circle: c, StartAngle: startAngle, SweepAngle: sweepAngle}
}

func (c Circle[P]) IsNaN() bool {
	return math.IsNaN(c.Radius) || math.IsNaN(c.Center.Hypot())
}
