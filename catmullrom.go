package hull

import (
	"slices"
	"sort"

	"github.com/pkg/errors"
)

// CatmullRom is an interpolating cubic spline through a sequence of knots in
// the (u, t) plane, with tangents taken from finite differences of the
// neighboring knots.
//
// It can be evaluated either as a function t = T(u) or, through Curve, as a
// parametric curve.
type CatmullRom struct {
	knots  []Point2
	slopes []float64
	curve  *NormalizedCurve[Point2]
}

// NewCatmullRom returns the spline through knots, whose X coordinates must be
// strictly increasing.
func NewCatmullRom(knots []Point2) (*CatmullRom, error) {
	if len(knots) < 2 {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d knots", len(knots))
	}
	for i := 1; i < len(knots); i++ {
		if knots[i].X <= knots[i-1].X {
			return nil, errors.Errorf("hull: knot %d at u=%g is not after u=%g", i, knots[i].X, knots[i-1].X)
		}
	}

	c := &CatmullRom{
		knots:  slices.Clone(knots),
		slopes: make([]float64, len(knots)),
	}
	last := len(knots) - 1
	for i := range c.slopes {
		a, b := max(i-1, 0), min(i+1, last)
		c.slopes[i] = (knots[b].Y - knots[a].Y) / (knots[b].X - knots[a].X)
	}
	c.curve = NewNormalizedCurve(c.evalParametric)
	return c, nil
}

// Knots returns a copy of the knots.
func (c *CatmullRom) Knots() []Point2 {
	return slices.Clone(c.knots)
}

// Domain returns the range of u covered by the knots.
func (c *CatmullRom) Domain() (lo, hi float64) {
	return c.knots[0].X, c.knots[len(c.knots)-1].X
}

// T evaluates the spline as a function of u. Outside of the knots' domain the
// value of the nearest end knot is returned.
func (c *CatmullRom) T(u float64) float64 {
	last := len(c.knots) - 1
	if u <= c.knots[0].X {
		return c.knots[0].Y
	}
	if u >= c.knots[last].X {
		return c.knots[last].Y
	}
	i := sort.Search(len(c.knots), func(i int) bool { return c.knots[i].X > u }) - 1
	k0, k1 := c.knots[i], c.knots[i+1]
	h := k1.X - k0.X
	return hermite(k0.Y, c.slopes[i]*h, k1.Y, c.slopes[i+1]*h, (u-k0.X)/h)
}

// Curve returns the spline as an arc-length parameterized curve.
func (c *CatmullRom) Curve() *NormalizedCurve[Point2] {
	return c.curve
}

// evalParametric evaluates the spline with uniformly spaced knots over
// t ∈ [0, 1].
func (c *CatmullRom) evalParametric(t float64) Point2 {
	last := len(c.knots) - 1
	if t <= 0 {
		return c.knots[0]
	}
	if t >= 1 {
		return c.knots[last]
	}
	x := t * float64(last)
	i := min(int(x), last-1)
	s := x - float64(i)

	tangent := func(j int) Point2 {
		a, b := max(j-1, 0), min(j+1, last)
		return c.knots[b].Sub(c.knots[a]).Div(float64(b - a))
	}
	m0, m1 := tangent(i), tangent(i+1)
	p0, p1 := c.knots[i], c.knots[i+1]
	return Point2{
		X: hermite(p0.X, m0.X, p1.X, m1.X, s),
		Y: hermite(p0.Y, m0.Y, p1.Y, m1.Y, s),
		W: 1,
	}
}

// hermite evaluates the cubic Hermite polynomial with end values p0, p1 and
// end derivatives m0, m1 at s ∈ [0, 1].
func hermite(p0, m0, p1, m1, s float64) float64 {
	s2 := s * s
	s3 := s2 * s
	return (2*s3-3*s2+1)*p0 + (s3-2*s2+s)*m0 + (-2*s3+3*s2)*p1 + (s3-s2)*m1
}
