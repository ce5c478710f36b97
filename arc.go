package hull

import "math"

// Arc is a circular arc. A positive SweepAngle runs from E1 toward E2.
type Arc[P Vector[P]] struct {
	Circle[P]
	StartAngle float64
	SweepAngle float64
}

// ArcThrough returns the arc that starts at p0, passes through mid and ends at
// p1. It reports false if the points are collinear.
func ArcThrough[P Vector[P]](p0, mid, p1 P) (Arc[P], bool) {
	c, ok := Circumcircle(p0, mid, p1)
	if !ok {
		return Arc[P]{}, false
	}
	a0 := c.AngleOf(p0)
	dm := normalizeAngle(c.AngleOf(mid) - a0)
	d1 := normalizeAngle(c.AngleOf(p1) - a0)
	sweep := d1
	if dm > d1 {
		// mid lies on the clockwise side.
		sweep = d1 - 2*math.Pi
	}
	return c.Arc(a0, sweep), true
}

// normalizeAngle maps th to [0, 2π).
func normalizeAngle(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

// Eval returns the point at t ∈ [0, 1] along the arc.
func (a Arc[P]) Eval(t float64) P {
	return a.At(a.StartAngle + t*a.SweepAngle)
}

func (a Arc[P]) Start() P { return a.Eval(0) }
func (a Arc[P]) End() P   { return a.Eval(1) }

// Length returns the arc length.
func (a Arc[P]) Length() float64 {
	return math.Abs(a.SweepAngle * a.Radius)
}

// Distance returns the distance from pt to the nearest point on the arc.
func (a Arc[P]) Distance(pt P) float64 {
	rel := a.AngleOf(pt) - a.StartAngle
	var inside bool
	if a.SweepAngle >= 0 {
		inside = normalizeAngle(rel) <= a.SweepAngle
	} else {
		inside = normalizeAngle(-rel) <= -a.SweepAngle
	}
	if inside {
		return a.Circle.Distance(pt)
	}
	return min(pt.Distance(a.Start()), pt.Distance(a.End()))
}

// Polyline approximates the arc by a polyline whose chords deviate from the
// arc by at most tolerance.
func (a Arc[P]) Polyline(tolerance float64) []P {
	n := 1
	if r := math.Abs(a.Radius); r > tolerance && tolerance > 0 {
		step := 2 * math.Acos(1-tolerance/r)
		n = max(1, int(math.Ceil(math.Abs(a.SweepAngle)/step)))
	}
	out := make([]P, n+1)
	for i := range out {
		out[i] = a.Eval(float64(i) / float64(n))
	}
	return out
}

// Reverse returns the same arc traversed in the opposite direction.
func (a Arc[P]) Reverse() Arc[P] {
	a.StartAngle += a.SweepAngle
	a.SweepAngle = -a.SweepAngle
	return a
}
