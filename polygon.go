package hull

import (
	"iter"
	"slices"
)

// Polygon is a 2D polyline. Whether it is closed depends on the context;
// methods that treat it as closed say so.
type Polygon []Point2

// Segments returns the polyline's line segments. The closing segment is not
// included.
func (p Polygon) Segments() iter.Seq[Line[Point2]] {
	return func(yield func(Line[Point2]) bool) {
		for i := 1; i < len(p); i++ {
			if !yield(Line[Point2]{p[i-1], p[i]}) {
				return
			}
		}
	}
}

// Length returns the length of the open polyline.
func (p Polygon) Length() float64 {
	var sum float64
	for l := range p.Segments() {
		sum += l.Length()
	}
	return sum
}

// Perimeter returns the length of the closed polygon.
func (p Polygon) Perimeter() float64 {
	if len(p) < 2 {
		return 0
	}
	return p.Length() + p[len(p)-1].Distance(p[0])
}

// SignedArea returns the area of the closed polygon, positive if it winds
// counterclockwise.
func (p Polygon) SignedArea() float64 {
	var sum float64
	for i := range p {
		sum += p[i].Cross(p[(i+1)%len(p)])
	}
	return sum / 2
}

// Winding returns the winding number of the closed polygon around pt.
func (p Polygon) Winding(pt Point2) int {
	w := 0
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		side := b.Sub(a).Cross(pt.Sub(a))
		if a.Y <= pt.Y {
			if b.Y > pt.Y && side > 0 {
				w++
			}
		} else if b.Y <= pt.Y && side < 0 {
			w--
		}
	}
	return w
}

// Bounds returns the bounding box of the polygon's points. It panics if p is
// empty.
func (p Polygon) Bounds() Box[Point2] {
	return NewBoxFromPoints(p...)
}

// Reverse returns a reversed copy of p.
func (p Polygon) Reverse() Polygon {
	out := slices.Clone(p)
	slices.Reverse(out)
	return out
}

// Transform returns a copy of p with aff applied to every point.
func (p Polygon) Transform(aff Affine) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = pt.Transform(aff)
	}
	return out
}

// SelfIntersections returns the points at which edges of the closed polygon
// that don't share a vertex cross each other.
func (p Polygon) SelfIntersections() []Point2 {
	n := len(p)
	if n < 4 {
		return nil
	}
	edge := func(i int) Line[Point2] { return Line[Point2]{p[i], p[(i+1)%n]} }
	var out []Point2
	for i := range n {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				// The closing edge shares p[0] with the first.
				continue
			}
			a, b := edge(i), edge(j)
			if _, _, ok := IntersectLines(a, b); !ok {
				continue
			}
			if pt, ok := CrossingPoint(a, b); ok {
				out = append(out, pt)
			}
		}
	}
	return out
}

// PointAt returns the point at arc length d along the open polyline, and the
// index of the segment it lies on. d is clamped to the polyline's length.
func (p Polygon) PointAt(d float64) (Point2, int) {
	if len(p) == 1 || d <= 0 {
		return p[0], 0
	}
	for i := 1; i < len(p); i++ {
		l := p[i].Distance(p[i-1])
		if d <= l {
			if l == 0 {
				return p[i], i - 1
			}
			return p[i-1].Lerp(p[i], d/l), i - 1
		}
		d -= l
	}
	return p[len(p)-1], len(p) - 2
}

// cumulativeLengths returns the arc length at every point of the polyline.
func (p Polygon) cumulativeLengths() []float64 {
	out := make([]float64, len(p))
	for i := 1; i < len(p); i++ {
		out[i] = out[i-1] + p[i].Distance(p[i-1])
	}
	return out
}
