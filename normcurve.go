package hull

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

const (
	// MaxResolution is the number of intervals in a curve's lookup table.
	MaxResolution = 250

	// relaxRounds is the number of arc-length relaxation passes. Twenty is an
	// empirical budget; the table converges toward, but does not reach,
	// exactly uniform spacing.
	relaxRounds = 20

	areaSteps = 1000

	// NotFound is returned by searches that have no result.
	NotFound = -1.0
)

// LUTEntry is one sample of a curve's lookup table.
type LUTEntry[P Vector[P]] struct {
	Point P
	// Dir is the chord to the next sample. The last entry repeats the
	// previous chord.
	Dir P
	// D is the arc length from the start of the curve.
	D float64
	// T is the parameter of the underlying curve.
	T float64
	// Angle is the turning angle between the incoming and outgoing chords.
	Angle float64
	// AngleSum and AngleSq are running sums of Angle and Angle², including
	// this entry.
	AngleSum float64
	AngleSq  float64
}

// NormalizedCurve wraps a parametric curve so that it can be addressed by
// arc length. The parameter u ∈ [0, 1] accepted by its methods is the fraction
// of the curve's length, not the parameter of the underlying curve.
//
// A NormalizedCurve is immutable after construction.
type NormalizedCurve[P Vector[P]] struct {
	eval    func(t float64) P
	lut     []LUTEntry[P]
	length  float64
	bounds  Box[P]
	corners []P
}

// NewNormalizedCurve builds the lookup table for the curve described by eval,
// which is evaluated for t ∈ [0, 1].
func NewNormalizedCurve[P Vector[P]](eval func(t float64) P) *NormalizedCurve[P] {
	// Two buffers take turns: each relaxation round resamples the curve at
	// the parameters that the previous table maps to uniform arc lengths.
	cur := make([]LUTEntry[P], MaxResolution+1)
	next := make([]LUTEntry[P], MaxResolution+1)
	for i := range cur {
		t := float64(i) / MaxResolution
		cur[i] = LUTEntry[P]{Point: eval(t), T: t}
	}
	accumulateLength(cur)

	for range relaxRounds {
		total := cur[MaxResolution].D
		if total == 0 {
			break
		}
		for i := range next {
			var t float64
			switch i {
			case 0:
				t = 0
			case MaxResolution:
				t = 1
			default:
				t = paramAtLength(cur, total*float64(i)/MaxResolution)
			}
			next[i] = LUTEntry[P]{Point: eval(t), T: t}
		}
		accumulateLength(next)
		cur, next = next, cur
	}
	accumulateAngles(cur)

	c := &NormalizedCurve[P]{
		eval:   eval,
		lut:    cur,
		length: cur[MaxResolution].D,
	}
	c.bounds = NewBoxFromPoints(cur[0].Point)
	for _, e := range cur[1:] {
		c.bounds = c.bounds.UnionPoint(e.Point)
	}
	c.corners = c.bounds.Corners()
	return c
}

func accumulateLength[P Vector[P]](lut []LUTEntry[P]) {
	lut[0].D = 0
	for i := 1; i < len(lut); i++ {
		lut[i].D = lut[i-1].D + lut[i].Point.Distance(lut[i-1].Point)
	}
}

func accumulateAngles[P Vector[P]](lut []LUTEntry[P]) {
	last := len(lut) - 1
	for i := range last {
		lut[i].Dir = lut[i+1].Point.Sub(lut[i].Point)
	}
	lut[last].Dir = lut[last-1].Dir

	var sum, sq float64
	for i := range lut {
		if i > 0 {
			lut[i].Angle = lut[i-1].Dir.Angle(lut[i].Dir)
		}
		sum += lut[i].Angle
		sq += lut[i].Angle * lut[i].Angle
		lut[i].AngleSum = sum
		lut[i].AngleSq = sq
	}
}

// paramAtLength maps an arc length to a curve parameter by interpolating
// between the bracketing table entries.
func paramAtLength[P Vector[P]](lut []LUTEntry[P], d float64) float64 {
	i := sort.Search(len(lut), func(i int) bool { return lut[i].D >= d })
	if i == 0 {
		return lut[0].T
	}
	if i == len(lut) {
		return lut[len(lut)-1].T
	}
	lo, hi := lut[i-1], lut[i]
	span := hi.D - lo.D
	if span == 0 {
		return lo.T
	}
	return lo.T + (hi.T-lo.T)*(d-lo.D)/span
}

// Length returns the curve's arc length as measured by its lookup table.
func (c *NormalizedCurve[P]) Length() float64 { return c.length }

// Bounds returns the axis-aligned bounds of the lookup table's samples.
func (c *NormalizedCurve[P]) Bounds() Box[P] { return c.bounds }

// LUT returns the lookup table. It must not be modified.
func (c *NormalizedCurve[P]) LUT() []LUTEntry[P] { return c.lut }

// Start returns the curve's first point.
func (c *NormalizedCurve[P]) Start() P { return c.lut[0].Point }

// End returns the curve's last point.
func (c *NormalizedCurve[P]) End() P { return c.lut[len(c.lut)-1].Point }

// Get returns the point at arc-length fraction u.
func (c *NormalizedCurve[P]) Get(u float64) P {
	if u <= 0 || c.length == 0 {
		return c.lut[0].Point
	}
	if u >= 1 {
		return c.lut[len(c.lut)-1].Point
	}
	return c.eval(paramAtLength(c.lut, u*c.length))
}

// paramAt returns the arc-length fraction of the i-th table entry.
func (c *NormalizedCurve[P]) paramAt(i int) float64 {
	if c.length == 0 {
		return float64(i) / MaxResolution
	}
	return c.lut[i].D / c.length
}

// FindInLUT returns the first table index for which f is non-negative, or
// len(LUT()) if there is none. f must be monotonically increasing over the
// table.
func (c *NormalizedCurve[P]) FindInLUT(f func(e LUTEntry[P]) float64) int {
	return sort.Search(len(c.lut), func(i int) bool { return f(c.lut[i]) >= 0 })
}

// FindOnCurve returns the u ∈ [lo, hi] at which f crosses zero, using a bounded
// bisection.
func (c *NormalizedCurve[P]) FindOnCurve(f func(u float64, pt P) float64, lo, hi float64) float64 {
	return Bisect(func(u float64) float64 { return f(u, c.Get(u)) }, lo, hi)
}

// FindSmallestOnCurve returns the u ∈ [lo, hi] minimizing f, using a bounded
// ternary search. f should be unimodal on the interval.
func (c *NormalizedCurve[P]) FindSmallestOnCurve(f func(u float64, pt P) float64, lo, hi float64) float64 {
	return TernaryMin(func(u float64) float64 { return f(u, c.Get(u)) }, lo, hi)
}

// FindDimmDist returns the first u at which the coordinate along axis equals
// dist, or [NotFound] if the curve never reaches it.
func (c *NormalizedCurve[P]) FindDimmDist(axis int, dist float64) float64 {
	f := func(u float64, pt P) float64 { return pt.Coord(axis) - dist }
	for i := range len(c.lut) - 1 {
		a := c.lut[i].Point.Coord(axis) - dist
		b := c.lut[i+1].Point.Coord(axis) - dist
		if a == 0 {
			return c.paramAt(i)
		}
		if (a < 0) != (b < 0) {
			return c.FindOnCurve(f, c.paramAt(i), c.paramAt(i+1))
		}
	}
	if c.lut[len(c.lut)-1].Point.Coord(axis) == dist {
		return 1
	}
	return NotFound
}

// PlaneIntersection is a point where a curve crosses a plane.
type PlaneIntersection[P Vector[P]] struct {
	U     float64
	Point P
}

// FindPlaneIntersection returns the points where the curve crosses pl, in
// order of increasing u. The result is empty if the curve misses the plane.
func (c *NormalizedCurve[P]) FindPlaneIntersection(pl Plane[P]) []PlaneIntersection[P] {
	sides := 0
	for _, corner := range c.corners {
		sides += pl.Side(corner)
	}
	if sides == len(c.corners) || sides == -len(c.corners) {
		return nil
	}

	var out []PlaneIntersection[P]
	prev := pl.Distance(c.lut[0].Point)
	if prev == 0 {
		out = append(out, PlaneIntersection[P]{0, c.lut[0].Point})
	}
	for i := 1; i < len(c.lut); i++ {
		d := pl.Distance(c.lut[i].Point)
		switch {
		case d == 0:
			out = append(out, PlaneIntersection[P]{c.paramAt(i), c.lut[i].Point})
		case prev != 0 && (d < 0) != (prev < 0):
			frac := prev / (prev - d)
			u := c.paramAt(i-1) + frac*(c.paramAt(i)-c.paramAt(i-1))
			out = append(out, PlaneIntersection[P]{u, c.lut[i-1].Point.Lerp(c.lut[i].Point, frac)})
		}
		prev = d
	}
	return out
}

// FindArea integrates the area enclosed between the curve and the zero plane
// of widthAxis, measured along heightAxis, for u ∈ [lo, hi]. The trapezoidal
// rule is used over a fixed number of steps.
func (c *NormalizedCurve[P]) FindArea(lo, hi float64, heightAxis, widthAxis int) float64 {
	if hi <= lo {
		return 0
	}
	us := make([]float64, areaSteps+1)
	hs := make([]float64, areaSteps+1)
	ws := make([]float64, areaSteps+1)
	for i := range us {
		u := lo + (hi-lo)*float64(i)/areaSteps
		pt := c.Get(u)
		us[i] = u
		hs[i] = pt.Coord(heightAxis)
		ws[i] = math.Abs(pt.Coord(widthAxis))
	}

	// |w| dh/du, with the derivative taken by finite differences.
	fs := make([]float64, areaSteps+1)
	for i := range fs {
		a, b := max(i-1, 0), min(i+1, areaSteps)
		fs[i] = ws[i] * (hs[b] - hs[a]) / (us[b] - us[a])
	}
	return math.Abs(integrate.Trapezoidal(us, fs))
}

// GetMinResolution estimates the number of samples needed between lo and hi to
// follow the curve without aliasing. It is four fifths of the number of table
// entries in the range, and at least 1.
func (c *NormalizedCurve[P]) GetMinResolution(lo, hi float64) int {
	i0 := c.FindInLUT(func(e LUTEntry[P]) float64 { return e.D - lo*c.length })
	i1 := c.FindInLUT(func(e LUTEntry[P]) float64 { return e.D - hi*c.length })
	n := int(math.Ceil(float64(i1-i0) * 4 / 5))
	return max(n, 1)
}

// Polyline returns n ≥ 2 points evenly spaced by arc length between lo and hi.
func (c *NormalizedCurve[P]) Polyline(lo, hi float64, n int) []P {
	n = max(n, 2)
	out := make([]P, n)
	for i := range out {
		out[i] = c.Get(lo + (hi-lo)*float64(i)/float64(n-1))
	}
	return out
}

// Sample returns n+1 points evenly spaced by arc length over the whole curve.
func (c *NormalizedCurve[P]) Sample(n int) []P {
	return c.Polyline(0, 1, n+1)
}
