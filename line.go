package hull

import "math"

// Line represents a line segment.
type Line[P Vector[P]] struct {
	// The line's start point.
	P0 P
	// The line's end point.
	P1 P
}

// Length returns the length of the line.
func (l Line[P]) Length() float64 {
	return l.P1.Distance(l.P0)
}

func (l Line[P]) Start() P { return l.P0 }
func (l Line[P]) End() P   { return l.P1 }

func (l Line[P]) Eval(t float64) P {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the nearest point on the
// line, and that point's parameter.
func (l Line[P]) Nearest(pt P) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		d := pt.Distance(l.P0)
		return d * d, 0.0
	} else if dotp >= dSquared {
		d := pt.Distance(l.P1)
		return d * d, 1.0
	} else {
		t := dotp / dSquared
		d := pt.Distance(l.Eval(t))
		return d * d, t
	}
}

// Distance returns the distance from pt to the nearest point on the line.
func (l Line[P]) Distance(pt P) float64 {
	d, _ := l.Nearest(pt)
	return math.Sqrt(d)
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross.
func CrossingPoint(l, o Line[Point2]) (Point2, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point2{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Add(cd.Mul(h)).WithWeight(1), true
}

// IntersectLines returns the parameters on l and o at which the two segments
// intersect.
func IntersectLines(l, o Line[Point2]) (tl, to float64, ok bool) {
	const epsilon = 1e-9
	p0 := o.P0
	p1 := o.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	det := dx*(l.P1.Y-l.P0.Y) - dy*(l.P1.X-l.P0.X)
	if math.Abs(det) < epsilon {
		// Lines are coincident (or nearly so).
		return 0, 0, false
	}
	t := dx*(p0.Y-l.P0.Y) - dy*(p0.X-l.P0.X)
	t /= det
	if t >= -epsilon && t <= 1+epsilon {
		u := (l.P0.X-p0.X)*(l.P1.Y-l.P0.Y) - (l.P0.Y-p0.Y)*(l.P1.X-l.P0.X)
		u /= det
		if u >= 0.0 && u <= 1.0 {
			return t, u, true
		}
	}
	return 0, 0, false
}
