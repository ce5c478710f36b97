package hull

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Section is a cross-section of a [Surface] at a fixed u. Its curve runs
// through the points of all rails at u, in rail order.
type Section struct {
	Index    int
	U        float64
	Curve    *RationalBezier[Point3]
	Segments *Segmentation[Point3]
}

// Surface is a loft through a set of rail curves.
//
// The surface is parameterized by (u, t): u runs along the rails, t along the
// cross-sections. Both are arc-length parameters of their respective curves.
// Cross-sections are taken at u = i/n for i = 0..n, where n is the surface's
// number of divisions.
type Surface struct {
	params    Params
	rails     []*RationalBezier[Point3]
	divisions int
	sections  []*Section
	divCurves []*DivisionCurve
	bulkheads []*Bulkhead
}

// NewSurface lofts a surface through rails, each given as a weighted control
// polygon. p is validated first.
func NewSurface(rails [][]Point3, p Params) (*Surface, error) {
	p, err := p.Validate()
	if err != nil {
		return nil, err
	}
	if len(rails) < 2 {
		return nil, errors.Wrapf(ErrTooFewRails, "got %d rails", len(rails))
	}
	s := &Surface{params: p}
	for i, pts := range rails {
		c, err := NewRationalBezier(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "rail %d", i)
		}
		s.rails = append(s.rails, c)
	}

	// The coarsest rail dictates the resolution of the surface.
	s.divisions = math.MaxInt
	for _, r := range s.rails {
		s.divisions = min(s.divisions, r.GetMinResolution(0, 1))
	}

	s.buildSections()
	s.buildBulkheads()

	Logger().WithFields(logrus.Fields{
		"rails":           len(s.rails),
		"divisions":       s.divisions,
		"division_curves": len(s.divCurves),
		"bulkheads":       len(s.bulkheads),
	}).Info("built surface")
	return s, nil
}

// buildSections creates the cross-sections from u = 1 down to u = 0. Segment
// counts never decrease along the way, so that a seam, once started, runs all
// the way to u = 0.
func (s *Surface) buildSections() {
	s.sections = make([]*Section, s.divisions+1)
	var tracker divisionTracker
	prevCount := 0
	for i := s.divisions; i >= 0; i-- {
		u := s.U(i)
		pts := make([]Point3, len(s.rails))
		for j, r := range s.rails {
			pts[j] = r.Get(u).WithWeight(1)
		}
		curve, err := NewRationalBezier(pts)
		if err != nil {
			// There are at least two rails.
			panic(err)
		}

		var segs *Segmentation[Point3]
		if curve.Length() < degenerateLength {
			// The rails meet. A point has no seams and sets no lower bound
			// on the segment counts of the sections before it.
			segs = curve.SegmentsN(1)
			s.sections[i] = &Section{Index: i, U: u, Curve: curve, Segments: segs}
			Logger().WithField("u", u).WithField("segments", 1).Debug("built section")
			continue
		}
		if n, ok := s.params.panelSegments(u); ok {
			segs = curve.SegmentsN(max(n, prevCount))
		} else {
			segs = curve.FindSegments(s.params.VarianceTolerance, s.params.MinSegments, s.params.MaxSegments)
			if len(segs.Segments) < prevCount {
				segs = curve.SegmentsN(prevCount)
			}
		}
		prevCount = len(segs.Segments)

		sec := &Section{Index: i, U: u, Curve: curve, Segments: segs}
		s.sections[i] = sec
		Logger().WithField("u", u).WithField("segments", prevCount).Debug("built section")

		// The last bound is the end of the curve, not a seam.
		tracker.add(sec, segs.Bounds[1:len(segs.Bounds)-1])
	}
	s.divCurves = tracker.finish()
}

// Params returns the validated parameters of the surface.
func (s *Surface) Params() Params { return s.params }

// Rails returns the rail curves.
func (s *Surface) Rails() []*RationalBezier[Point3] { return s.rails }

// Divisions returns the number of intervals between cross-sections.
func (s *Surface) Divisions() int { return s.divisions }

// U returns the u of the i-th cross-section.
func (s *Surface) U(i int) float64 {
	return float64(i) / float64(s.divisions)
}

// Sections returns the cross-sections, ordered by increasing u.
func (s *Surface) Sections() []*Section { return s.sections }

// Section returns the i-th cross-section.
func (s *Surface) Section(i int) *Section { return s.sections[i] }

// DivisionCurves returns the seams of the surface, sorted by descending UEnd.
func (s *Surface) DivisionCurves() []*DivisionCurve { return s.divCurves }

// PointOnSurface returns the surface point at (u, t), blending linearly
// between the two nearest cross-sections.
func (s *Surface) PointOnSurface(u, t float64) Point3 {
	u = max(0, min(1, u))
	i := min(int(u*float64(s.divisions)), s.divisions-1)
	for i > 0 && s.U(i) > u {
		i--
	}
	for i < s.divisions-1 && s.U(i+1) < u {
		i++
	}
	frac := (u - s.U(i)) / (s.U(i+1) - s.U(i))
	a := s.sections[i].Curve.Get(t).WithWeight(1)
	b := s.sections[i+1].Curve.Get(t).WithWeight(1)
	return a.Lerp(b, frac)
}

// VolumeUnder returns the volume enclosed between the surface, the zero plane
// of the width axis and the plane at height waterline. Cross-sectional areas
// are integrated per section and stacked along the length axis.
//
// Only the side of the surface itself is measured; for a symmetric hull the
// displacement is twice the result.
func (s *Surface) VolumeUnder(waterline float64) float64 {
	p := s.params
	areas := make([]float64, len(s.sections))
	xs := make([]float64, len(s.sections))
	for i, sec := range s.sections {
		c := sec.Curve
		xs[i] = c.Start().Coord(p.LengthAxis)
		hi := c.FindDimmDist(p.HeightAxis, waterline)
		if hi == NotFound {
			if c.Start().Coord(p.HeightAxis) >= waterline {
				// The whole section is above the waterline.
				continue
			}
			hi = 1
		}
		areas[i] = c.FindArea(0, hi, p.HeightAxis, p.WidthAxis)
	}

	var v float64
	for i := range len(areas) - 1 {
		v += (areas[i] + areas[i+1]) / 2 * math.Abs(xs[i+1]-xs[i])
	}
	return v
}
