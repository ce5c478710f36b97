package hull

import (
	"slices"
)

// bulkheadSamples is the number of t samples per cross-section that are
// tested against cutting planes.
const bulkheadSamples = 100

// BulkheadCrossing is a point where a cutting plane passes between two
// adjacent cross-sections.
type BulkheadCrossing struct {
	// Index is the lower of the two cross-sections' indices.
	Index int
	// T is the cross-section parameter of the crossing.
	T float64
	// Frac is the position of the crossing between cross-section Index (0)
	// and Index+1 (1).
	Frac  float64
	Point Point3
}

// Bulkhead is the intersection of a cutting plane with a surface.
type Bulkhead struct {
	Plane     Plane[Point3]
	Crossings []BulkheadCrossing
}

// Empty reports whether the plane misses the surface.
func (b *Bulkhead) Empty() bool { return len(b.Crossings) == 0 }

// Polyline returns the intersection as a 3D polyline.
func (b *Bulkhead) Polyline() []Point3 {
	out := make([]Point3, len(b.Crossings))
	for i, c := range b.Crossings {
		out[i] = c.Point
	}
	return out
}

// Bulkheads returns the intersections of all cutting planes, in the order of
// the planes in the surface's parameters.
func (s *Surface) Bulkheads() []*Bulkhead { return s.bulkheads }

// Bulkhead returns the intersection of the i-th cutting plane. If the plane
// misses the surface, the result has no crossings.
func (s *Surface) Bulkhead(i int) *Bulkhead { return s.bulkheads[i] }

func (s *Surface) buildBulkheads() {
	for pi, pl := range s.params.Planes {
		b := &Bulkhead{Plane: pl}
		var prev []float64
		for i, sec := range s.sections {
			dist := make([]float64, bulkheadSamples+1)
			for k := range dist {
				dist[k] = pl.Distance(sec.Curve.Get(float64(k) / bulkheadSamples))
			}
			for k, d := range dist {
				t := float64(k) / bulkheadSamples
				switch {
				case d == 0:
					b.Crossings = append(b.Crossings, BulkheadCrossing{
						Index: i,
						T:     t,
						Point: sec.Curve.Get(t).WithWeight(1),
					})
				case prev != nil && prev[k] != 0 && (prev[k] < 0) != (d < 0):
					frac := prev[k] / (prev[k] - d)
					lo := s.sections[i-1].Curve.Get(t).WithWeight(1)
					hi := sec.Curve.Get(t).WithWeight(1)
					b.Crossings = append(b.Crossings, BulkheadCrossing{
						Index: i - 1,
						T:     t,
						Frac:  frac,
						Point: lo.Lerp(hi, frac),
					})
				}
			}
			prev = dist
		}

		if b.Empty() {
			Logger().WithField("plane", pi).Warn("bulkhead plane misses the surface")
		} else {
			sortCrossings(b.Crossings)
		}
		s.bulkheads = append(s.bulkheads, b)
	}
}

// sortCrossings orders crossings along the axis in which they are spread the
// furthest.
func sortCrossings(cs []BulkheadCrossing) {
	box := NewBoxFromPoints(cs[0].Point)
	for _, c := range cs[1:] {
		box = box.UnionPoint(c.Point)
	}
	axis := 0
	for a := 1; a < 3; a++ {
		if box.Size(a) > box.Size(axis) {
			axis = a
		}
	}
	slices.SortStableFunc(cs, func(a, b BulkheadCrossing) int {
		va, vb := a.Point.Coord(axis), b.Point.Coord(axis)
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		default:
			return 0
		}
	})
}
