package hull

import (
	"math"
	"slices"

	"github.com/pkg/errors"
)

// PanelRule forces the number of segments of every cross-section at or beyond
// a parameter threshold.
type PanelRule struct {
	Threshold float64
	Segments  int
}

// Params holds the tuning parameters of a surface and its flattening.
type Params struct {
	// VarianceTolerance bounds the total turning-angle variance of a curve's
	// segmentation. Lower values produce more segments.
	VarianceTolerance float64
	MinSegments       int
	MaxSegments       int

	// Panels overrides the adaptive segment count. Rules are kept sorted by
	// descending threshold; the first rule whose threshold is at or below a
	// cross-section's u applies.
	Panels []PanelRule

	// ToothWidth and ToothAngle (in radians) shape the puzzle-tooth joints
	// between adjacent panels.
	ToothWidth float64
	ToothAngle float64

	// Planes are the bulkhead cutting planes.
	Planes []Plane[Point3]

	// Axes of the hull. Volumes are measured below a waterline on the
	// height axis, with cross-sectional areas taken between the curve and
	// the width axis' zero plane and stacked along the length axis.
	LengthAxis int
	WidthAxis  int
	HeightAxis int
}

// DefaultParams returns parameters suitable for a small plywood hull measured
// in meters.
func DefaultParams() Params {
	return Params{
		VarianceTolerance: 1e-3,
		MinSegments:       1,
		MaxSegments:       8,
		ToothWidth:        0.05,
		ToothAngle:        math.Pi / 18,
		LengthAxis:        0,
		WidthAxis:         1,
		HeightAxis:        2,
	}
}

// WithPanels returns a copy of p with the given panel schedule.
func (p Params) WithPanels(rules ...PanelRule) Params {
	p.Panels = slices.Clone(rules)
	return p
}

// WithPlanes returns a copy of p with the given cutting planes.
func (p Params) WithPlanes(planes ...Plane[Point3]) Params {
	p.Planes = slices.Clone(planes)
	return p
}

// Validate checks p for consistency. It returns a normalized copy, with the
// panel schedule sorted by descending threshold and plane directions scaled
// to unit length.
func (p Params) Validate() (Params, error) {
	switch {
	case p.VarianceTolerance < 0 || math.IsNaN(p.VarianceTolerance):
		return p, errors.Wrapf(ErrInvalidParams, "variance tolerance %g", p.VarianceTolerance)
	case p.MinSegments < 1:
		return p, errors.Wrapf(ErrInvalidParams, "min segments %d < 1", p.MinSegments)
	case p.MaxSegments < p.MinSegments:
		return p, errors.Wrapf(ErrInvalidParams, "max segments %d < min segments %d", p.MaxSegments, p.MinSegments)
	case p.ToothWidth <= 0:
		return p, errors.Wrapf(ErrInvalidParams, "tooth width %g", p.ToothWidth)
	}
	axes := [3]int{p.LengthAxis, p.WidthAxis, p.HeightAxis}
	for i, a := range axes {
		if a < 0 || a > 2 {
			return p, errors.Wrapf(ErrInvalidParams, "axis %d out of range", a)
		}
		for _, b := range axes[:i] {
			if a == b {
				return p, errors.Wrapf(ErrInvalidParams, "axis %d used twice", a)
			}
		}
	}

	p.Panels = slices.Clone(p.Panels)
	for _, r := range p.Panels {
		if r.Segments < 1 {
			return p, errors.Wrapf(ErrInvalidParams, "panel rule at %g has %d segments", r.Threshold, r.Segments)
		}
	}
	slices.SortStableFunc(p.Panels, func(a, b PanelRule) int {
		switch {
		case a.Threshold > b.Threshold:
			return -1
		case a.Threshold < b.Threshold:
			return 1
		default:
			return 0
		}
	})

	p.Planes = slices.Clone(p.Planes)
	for i, pl := range p.Planes {
		n, err := pl.normalize()
		if err != nil {
			return p, errors.Wrapf(err, "plane %d", i)
		}
		p.Planes[i] = n
	}
	return p, nil
}

// panelSegments returns the segment count forced by the panel schedule at u.
func (p Params) panelSegments(u float64) (int, bool) {
	for _, r := range p.Panels {
		if u >= r.Threshold {
			return r.Segments, true
		}
	}
	return 0, false
}
