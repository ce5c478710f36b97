package hull

import "fmt"

// SegmentKind is the primitive a [Segment] is approximated by.
type SegmentKind uint8

const (
	LineKind SegmentKind = iota
	ArcKind
)

func (k SegmentKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case ArcKind:
		return "arc"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// errorSamples is the number of curve points a segment fit is measured
// against.
const errorSamples = 100

// Segment approximates the part of a curve between the arc-length parameters
// Start and End by a line or a circular arc. Both primitives run from the
// curve's point at Start to its point at End.
type Segment[P Vector[P]] struct {
	Start float64
	End   float64
	// Mid is the parameter of the curve point the arc was fitted through.
	Mid  float64
	Kind SegmentKind
	// Line is set for segments of kind LineKind, Arc for segments of kind
	// ArcKind.
	Line Line[P]
	Arc  Arc[P]
	// Error is the arc-length weighted sum of distances between the curve
	// and the primitive.
	Error float64
}

// NewSegment fits a primitive to c between start and end. The arc through
// both end points and a third curve point is chosen, with the third point
// picked by a quaternary search that minimizes the fitting error. When the
// three points are collinear the segment becomes a line.
//
// The search assumes that the error is unimodal in the choice of the third
// point, which holds for the smooth, gently curved inputs this package is
// meant for.
func NewSegment[P Vector[P]](c *NormalizedCurve[P], start, end float64) *Segment[P] {
	p0 := c.Get(start).WithWeight(1)
	p1 := c.Get(end).WithWeight(1)
	samples := make([]P, errorSamples)
	for i := range samples {
		samples[i] = c.Get(start + (end-start)*float64(i+1)/float64(errorSamples+1))
	}
	// u is uniform in arc length, so every sample stands for the same share
	// of the segment's length.
	weight := c.Length() * (end - start) / errorSamples

	fitError := func(s *Segment[P]) float64 {
		var e float64
		for _, q := range samples {
			e += s.Distance(q)
		}
		return e * weight
	}
	cost := func(m float64) float64 {
		return fitError(fitSegment(p0, c.Get(m), p1))
	}

	m, _ := QuaternaryMin(cost, start, end)
	s := fitSegment(p0, c.Get(m), p1)
	s.Start, s.End, s.Mid = start, end, m
	s.Error = fitError(s)
	return s
}

func fitSegment[P Vector[P]](p0, mid, p1 P) *Segment[P] {
	if a, ok := ArcThrough(p0, mid.WithWeight(1), p1); ok {
		return &Segment[P]{Kind: ArcKind, Arc: a}
	}
	return &Segment[P]{Kind: LineKind, Line: Line[P]{p0, p1}}
}

// Eval returns the point at t ∈ [0, 1] along the primitive.
func (s *Segment[P]) Eval(t float64) P {
	if s.Kind == ArcKind {
		return s.Arc.Eval(t)
	}
	return s.Line.Eval(t)
}

// Length returns the length of the primitive.
func (s *Segment[P]) Length() float64 {
	if s.Kind == ArcKind {
		return s.Arc.Length()
	}
	return s.Line.Length()
}

// Distance returns the distance from pt to the primitive.
func (s *Segment[P]) Distance(pt P) float64 {
	if s.Kind == ArcKind {
		return s.Arc.Distance(pt)
	}
	return s.Line.Distance(pt)
}

// Polyline approximates the primitive by a polyline. Arcs are subdivided
// until no chord deviates by more than tolerance.
func (s *Segment[P]) Polyline(tolerance float64) []P {
	if s.Kind == ArcKind {
		return s.Arc.Polyline(tolerance)
	}
	return []P{s.Line.P0, s.Line.P1}
}

// Polyline joins the polylines of all segments into one, for cutting.
func (s *Segmentation[P]) Polyline(tolerance float64) []P {
	var out []P
	for i, seg := range s.Segments {
		pts := seg.Polyline(tolerance)
		if i > 0 {
			// The first point repeats the previous segment's last.
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out
}

// Error returns the summed fitting error of all segments.
func (s *Segmentation[P]) Error() float64 {
	var e float64
	for _, seg := range s.Segments {
		e += seg.Error
	}
	return e
}
