package hull

// Box is an axis-aligned bounding box.
type Box[P Vector[P]] struct {
	Min P
	Max P
}

// NewBoxFromPoints returns the smallest box enclosing all points. It panics if
// pts is empty.
func NewBoxFromPoints[P Vector[P]](pts ...P) Box[P] {
	if len(pts) == 0 {
		panic("NewBoxFromPoints called without points")
	}
	b := Box[P]{pts[0], pts[0]}
	for _, pt := range pts[1:] {
		b = b.UnionPoint(pt)
	}
	return b
}

// UnionPoint returns the smallest box enclosing b and pt.
func (b Box[P]) UnionPoint(pt P) Box[P] {
	return Box[P]{b.Min.Min(pt), b.Max.Max(pt)}
}

// Union returns the smallest box enclosing b and o.
func (b Box[P]) Union(o Box[P]) Box[P] {
	return Box[P]{b.Min.Min(o.Min), b.Max.Max(o.Max)}
}

// Contains reports whether pt lies inside the box, boundary included.
func (b Box[P]) Contains(pt P) bool {
	for axis := range pt.Dims() {
		v := pt.Coord(axis)
		if v < b.Min.Coord(axis) || v > b.Max.Coord(axis) {
			return false
		}
	}
	return true
}

// Size returns the extent along an axis.
func (b Box[P]) Size(axis int) float64 {
	return b.Max.Coord(axis) - b.Min.Coord(axis)
}

func (b Box[P]) Center() P {
	return b.Min.Lerp(b.Max, 0.5)
}

// Corners returns the 2^n corners of the box.
func (b Box[P]) Corners() []P {
	return Corners(b.Min, b.Max)
}
