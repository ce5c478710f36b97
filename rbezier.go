package hull

import (
	"math"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/combin"
)

// RationalBezier is a Bezier curve of arbitrary degree whose control points
// carry weights. It is addressed by arc length through its embedded
// [NormalizedCurve].
type RationalBezier[P Vector[P]] struct {
	*NormalizedCurve[P]

	points []P
	// coincident is set when all control points are at the same position.
	coincident bool
	// binom holds the binomial coefficients of the Bernstein basis.
	binom []float64

	mu   sync.Mutex
	segs map[segmentKey]*Segmentation[P]
}

type segmentKey struct {
	tolerance float64
	min, max  int
}

// NewRationalBezier returns the curve with the given control points. The
// degree of the curve is len(points)-1.
func NewRationalBezier[P Vector[P]](points []P) (*RationalBezier[P], error) {
	if len(points) < 2 {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d control points", len(points))
	}
	n := len(points) - 1
	c := &RationalBezier[P]{
		points: slices.Clone(points),
		binom:  make([]float64, n+1),
		segs:   make(map[segmentKey]*Segmentation[P]),
	}
	c.coincident = true
	for _, p := range points[1:] {
		if p.WithWeight(1) != points[0].WithWeight(1) {
			c.coincident = false
			break
		}
	}
	for i := range c.binom {
		c.binom[i] = float64(combin.Binomial(n, i))
	}
	c.NormalizedCurve = NewNormalizedCurve(c.evalInternal)
	return c, nil
}

// evalInternal evaluates the curve at the Bezier parameter t.
func (c *RationalBezier[P]) evalInternal(t float64) P {
	n := len(c.points) - 1
	// The weight sum vanishes toward the ends for some weightings, so the
	// ends are returned exactly.
	if t <= 0 || c.coincident {
		return c.points[0].WithWeight(1)
	}
	if t >= 1 {
		return c.points[n].WithWeight(1)
	}
	mt := 1 - t
	var sum P
	var wsum float64
	for i, p := range c.points {
		b := c.binom[i] * math.Pow(t, float64(i)) * math.Pow(mt, float64(n-i))
		wb := p.Weight() * b
		sum = sum.Add(p.Mul(wb))
		wsum += wb
	}
	return sum.Div(wsum).WithWeight(1)
}

// ControlPoints returns a copy of the curve's control points.
func (c *RationalBezier[P]) ControlPoints() []P {
	return slices.Clone(c.points)
}

// Degree returns the degree of the curve.
func (c *RationalBezier[P]) Degree() int {
	return len(c.points) - 1
}

// Transform returns a new curve whose control points are f applied to this
// curve's control points.
func (c *RationalBezier[P]) Transform(f func(P) P) *RationalBezier[P] {
	pts := make([]P, len(c.points))
	for i, p := range c.points {
		pts[i] = f(p)
	}
	out, err := NewRationalBezier(pts)
	if err != nil {
		// The point count is unchanged.
		panic(err)
	}
	return out
}

// Segmentation is the partition of a curve into arc and line segments.
type Segmentation[P Vector[P]] struct {
	Segments []*Segment[P]
	// Variance is the sum, over all segments, of the squared deviations of
	// the turning angles from the segment's mean turning angle.
	Variance float64
	// Bounds holds the arc-length parameters of the segment boundaries,
	// including 0 and 1.
	Bounds []float64
}

// maxNudgeRounds caps the boundary relaxation of a segmentation.
const maxNudgeRounds = 4 * MaxResolution

// FindSegments partitions the curve into between minSegments and maxSegments
// segments of roughly constant curvature. Segment counts are tried in
// increasing order until one has a turning-angle variance within tolerance
// or maxSegments is reached. Of the counts tried, the one with the lowest
// fitting error is used, so raising maxSegments never raises the error.
//
// The result is computed once per argument triple and shared by subsequent
// calls.
func (c *RationalBezier[P]) FindSegments(tolerance float64, minSegments, maxSegments int) *Segmentation[P] {
	key := segmentKey{tolerance, minSegments, maxSegments}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.segs[key]; ok {
		return s
	}
	s := c.findSegments(tolerance, minSegments, maxSegments)
	c.segs[key] = s
	return s
}

// SegmentsN partitions the curve into exactly n segments.
func (c *RationalBezier[P]) SegmentsN(n int) *Segmentation[P] {
	return c.FindSegments(math.Inf(1), n, n)
}

func (c *RationalBezier[P]) findSegments(tolerance float64, minSegments, maxSegments int) *Segmentation[P] {
	// Every segment needs at least two table intervals.
	limit := MaxResolution / 2
	minSegments = max(1, min(minSegments, limit))
	maxSegments = max(minSegments, min(maxSegments, limit))

	var best *Segmentation[P]
	bestErr := math.Inf(1)
	met := false
	for k := minSegments; k <= maxSegments; k++ {
		s := c.segmentation(c.divide(k))
		if e := s.Error(); best == nil || e < bestErr {
			best, bestErr = s, e
		}
		if s.Variance <= tolerance {
			met = true
			break
		}
	}
	if !met {
		Logger().WithField("variance", best.Variance).WithField("tolerance", tolerance).
			Warn("segmentation exhausted the segment budget")
	}
	return best
}

// segmentation fits segments between the table entries divs.
func (c *RationalBezier[P]) segmentation(divs []int, variance float64) *Segmentation[P] {
	s := &Segmentation[P]{
		Variance: variance,
		Bounds:   make([]float64, len(divs)),
		Segments: make([]*Segment[P], 0, len(divs)-1),
	}
	for i, d := range divs {
		s.Bounds[i] = c.paramAt(d)
	}
	s.Bounds[0], s.Bounds[len(divs)-1] = 0, 1
	for i := range len(divs) - 1 {
		s.Segments = append(s.Segments, NewSegment(c.NormalizedCurve, s.Bounds[i], s.Bounds[i+1]))
	}
	return s
}

// groupVariance returns the sum of squared deviations of the turning angles
// strictly between table entries a and b. The turning angles at the
// boundaries themselves fall between two segments and belong to neither.
func (c *RationalBezier[P]) groupVariance(a, b int) float64 {
	n := b - a - 1
	if n <= 0 {
		return 0
	}
	sum := c.lut[b-1].AngleSum - c.lut[a].AngleSum
	sq := c.lut[b-1].AngleSq - c.lut[a].AngleSq
	return max(0, sq-sum*sum/float64(n))
}

// divide partitions the table into k groups. Boundaries start evenly spaced
// and are moved one entry at a time for as long as that lowers the variance
// of the two groups they separate.
func (c *RationalBezier[P]) divide(k int) ([]int, float64) {
	last := len(c.lut) - 1
	divs := make([]int, k+1)
	for i := range divs {
		divs[i] = int(math.Round(float64(i) * float64(last) / float64(k)))
	}

	for range maxNudgeRounds {
		moved := false
		for j := 1; j < k; j++ {
			lo, hi := divs[j-1], divs[j+1]
			cur := c.groupVariance(lo, divs[j]) + c.groupVariance(divs[j], hi)
			for _, step := range [2]int{-1, 1} {
				d := divs[j] + step
				if d <= lo || d >= hi {
					continue
				}
				if v := c.groupVariance(lo, d) + c.groupVariance(d, hi); v < cur {
					divs[j] = d
					moved = true
					break
				}
			}
		}
		if !moved {
			break
		}
	}

	var total float64
	for j := range k {
		total += c.groupVariance(divs[j], divs[j+1])
	}
	return divs, total
}
