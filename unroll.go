package hull

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// FlatThird returns the two points that lie at distance r0 from p0 and r1 from
// p1. c1 is to the left of the direction from p0 to p1, c2 to the right.
//
// If the circles don't intersect, the radii are inconsistent with the
// distance between the centers. The points are then placed on the line
// through p0 and p1, as close to both circles as possible.
func FlatThird(p0 Point2, r0 float64, p1 Point2, r1 float64) (c1, c2 Point2) {
	d := p1.Distance(p0)
	if d == 0 {
		Logger().WithField("at", p0).Warn("trilateration from coincident points")
		pt := p0.Add(Point2{X: r0})
		return pt, pt
	}
	dir := p1.Sub(p0).Div(d).WithWeight(0)
	a := (r0*r0 - r1*r1 + d*d) / (2 * d)
	h2 := r0*r0 - a*a
	if h2 < 0 {
		if h2 < -1e-9*max(r0*r0, d*d) {
			Logger().WithFields(logrus.Fields{
				"r0": r0,
				"r1": r1,
				"d":  d,
			}).Warn("trilateration circles don't intersect")
		}
		h2 = 0
	}
	base := p0.Add(dir.Mul(a))
	off := dir.Perp().Mul(math.Sqrt(h2))
	return base.Add(off).WithWeight(1), base.Sub(off).WithWeight(1)
}

// Unroll lays out the strip between the polylines a and b in the plane such
// that the distances between a[i] and a[i+1], b[i] and b[i+1], a[i] and b[i],
// and a[i] and b[i-1] are preserved. a[0] is placed at anchor and b[0] in
// direction dir from it; the polylines then continue to the left of dir.
//
// Unroll panics if a and b differ in length.
func Unroll(a, b []Point3, anchor, dir Point2) (fa, fb []Point2) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("Unroll called with %d and %d points", len(a), len(b)))
	}
	if len(a) == 0 {
		return nil, nil
	}
	fa = make([]Point2, len(a))
	fb = make([]Point2, len(b))
	dir = dir.Unit().WithWeight(0)
	fa[0] = anchor.WithWeight(1)
	fb[0] = fa[0].Add(dir.Mul(b[0].Distance(a[0])))

	for i := 1; i < len(a); i++ {
		// Along the polylines, keep going the way the previous step went.
		step := dir.Perp()
		if i > 1 {
			step = fa[i-1].Sub(fa[i-2])
		}
		c1, c2 := FlatThird(fa[i-1], a[i].Distance(a[i-1]), fb[i-1], a[i].Distance(b[i-1]))
		fa[i] = pickAlong(fa[i-1], step, c1, c2)

		// Across the strip, stay on the side of b.
		across := fb[i-1].Sub(fa[i-1])
		c1, c2 = FlatThird(fa[i], b[i].Distance(a[i]), fb[i-1], b[i].Distance(b[i-1]))
		fb[i] = pickAlong(fa[i], across, c1, c2)
	}
	return fa, fb
}

// pickAlong returns whichever of c1 and c2 lies further in direction dir as
// seen from origin.
func pickAlong(origin, dir, c1, c2 Point2) Point2 {
	if c1.Sub(origin).Dot(dir) >= c2.Sub(origin).Dot(dir) {
		return c1
	}
	return c2
}

// fanOut lays out the polyline b around a single point tip, which is placed
// at the origin. b[0] lies in direction refDir, and the remaining points
// follow counterclockwise.
func fanOut(tip Point3, b []Point3, refDir Point2) []Point2 {
	origin := Pt2(0, 0)
	fb := make([]Point2, len(b))
	fb[0] = origin.Add(refDir.Unit().WithWeight(0).Mul(b[0].Distance(tip)))
	for i := 1; i < len(b); i++ {
		// Counterclockwise around the tip is to the left of the direction
		// from the tip to the previous point.
		fb[i], _ = FlatThird(origin, b[i].Distance(tip), fb[i-1], b[i].Distance(b[i-1]))
	}
	return fb
}

// continueStrip lays out the polyline b given a polyline a that has already
// been laid out as fa. b is placed on the right of fa, looking along fa.
func continueStrip(a []Point3, fa []Point2, b []Point3) []Point2 {
	m := len(a)
	fb := make([]Point2, m)
	if m == 1 {
		// Nothing to orient by; continue straight down.
		fb[0] = fa[0].Add(Point2{Y: -b[0].Distance(a[0])})
		return fb
	}

	_, fb[0] = FlatThird(fa[0], b[0].Distance(a[0]), fa[1], b[0].Distance(a[1]))
	for i := 1; i < m; i++ {
		c1, c2 := FlatThird(fa[i], b[i].Distance(a[i]), fb[i-1], b[i].Distance(b[i-1]))
		// The side of the strip is the right of the section's direction at
		// i.
		along := fa[min(i+1, m-1)].Sub(fa[i-1])
		right := along.Perp().Negate()
		fb[i] = pickAlong(fa[i], right, c1, c2)
	}
	return fb
}
