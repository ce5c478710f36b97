package hull

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var _ = isVector[Point3]

// Point3 is a weighted point in three dimensions. It doubles as a vector.
type Point3 struct {
	X float64
	Y float64
	Z float64
	W float64
}

// Pt3 returns the point (x, y, z) with a weight of 1.
func Pt3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z, W: 1}
}

// WPt3 returns the point (x, y, z) with weight w.
func WPt3(x, y, z, w float64) Point3 {
	return Point3{X: x, Y: y, Z: z, W: w}
}

func (pt Point3) String() string {
	if pt.W == 1 {
		return fmt.Sprintf("(%g, %g, %g)", pt.X, pt.Y, pt.Z)
	}
	return fmt.Sprintf("(%g, %g, %g; %g)", pt.X, pt.Y, pt.Z, pt.W)
}

func (pt Point3) vec() r3.Vec { return r3.Vec{X: pt.X, Y: pt.Y, Z: pt.Z} }

func (pt Point3) withVec(v r3.Vec) Point3 { return Point3{X: v.X, Y: v.Y, Z: v.Z, W: pt.W} }

func (pt Point3) Add(o Point3) Point3 {
	return Point3{X: pt.X + o.X, Y: pt.Y + o.Y, Z: pt.Z + o.Z, W: pt.W + o.W}
}

func (pt Point3) Sub(o Point3) Point3 {
	return Point3{X: pt.X - o.X, Y: pt.Y - o.Y, Z: pt.Z - o.Z, W: pt.W - o.W}
}

func (pt Point3) Mul(f float64) Point3 {
	return Point3{X: pt.X * f, Y: pt.Y * f, Z: pt.Z * f, W: pt.W * f}
}

func (pt Point3) Div(f float64) Point3 {
	return Point3{X: pt.X / f, Y: pt.Y / f, Z: pt.Z / f, W: pt.W / f}
}

// Lerp linearly interpolates between two points.
func (pt Point3) Lerp(o Point3, t float64) Point3 {
	return pt.Add(o.Sub(pt).Mul(t))
}

// Min returns the per-axis minimum of two points.
func (pt Point3) Min(o Point3) Point3 {
	return Point3{X: min(pt.X, o.X), Y: min(pt.Y, o.Y), Z: min(pt.Z, o.Z), W: min(pt.W, o.W)}
}

// Max returns the per-axis maximum of two points.
func (pt Point3) Max(o Point3) Point3 {
	return Point3{X: max(pt.X, o.X), Y: max(pt.Y, o.Y), Z: max(pt.Z, o.Z), W: max(pt.W, o.W)}
}

// Dot returns the dot product of the spatial components.
func (pt Point3) Dot(o Point3) float64 {
	return r3.Dot(pt.vec(), o.vec())
}

// Cross returns the cross product of pt and o. The result has a weight of 1.
func (pt Point3) Cross(o Point3) Point3 {
	return Point3{W: 1}.withVec(r3.Cross(pt.vec(), o.vec()))
}

// CrossHypot returns the magnitude of the cross product.
func (pt Point3) CrossHypot(o Point3) float64 {
	return r3.Norm(r3.Cross(pt.vec(), o.vec()))
}

// Angle returns the unsigned angle in radians between pt and o, treated as
// vectors.
func (pt Point3) Angle(o Point3) float64 {
	return clampedAcos(pt.Dot(o), pt.Hypot()*o.Hypot())
}

// Hypot returns the magnitude of the vector.
func (pt Point3) Hypot() float64 {
	return r3.Norm(pt.vec())
}

// Distance returns the euclidean distance between two points.
func (pt Point3) Distance(o Point3) float64 {
	return r3.Norm(r3.Sub(pt.vec(), o.vec()))
}

// Unit returns a vector of magnitude 1 with the same direction. The zero
// vector is returned unchanged.
func (pt Point3) Unit() Point3 {
	if pt.X == 0 && pt.Y == 0 && pt.Z == 0 {
		return pt
	}
	return pt.withVec(r3.Unit(pt.vec()))
}

// Rotate rotates the point by th radians about the axis through the origin
// with the given direction.
func (pt Point3) Rotate(th float64, axis Point3) Point3 {
	return pt.withVec(r3.Rotate(pt.vec(), th, axis.vec()))
}

// Project drops the given axis, projecting the point onto the plane spanned by
// the other two axes. The remaining axes keep their order.
func (pt Point3) Project(axis int) Point2 {
	switch axis {
	case 0:
		return Point2{X: pt.Y, Y: pt.Z, W: pt.W}
	case 1:
		return Point2{X: pt.X, Y: pt.Z, W: pt.W}
	case 2:
		return Point2{X: pt.X, Y: pt.Y, W: pt.W}
	default:
		panic(fmt.Sprintf("invalid axis %d for Point3", axis))
	}
}

// Mirror reflects the point across the plane where the given axis is zero.
func (pt Point3) Mirror(axis int) Point3 {
	return pt.WithCoord(axis, -pt.Coord(axis))
}

func (pt Point3) Weight() float64 { return pt.W }

func (pt Point3) WithWeight(w float64) Point3 {
	pt.W = w
	return pt
}

func (pt Point3) Dims() int { return 3 }

// Coord returns the coordinate along the given axis (0 for x, 1 for y, 2 for
// z).
func (pt Point3) Coord(axis int) float64 {
	switch axis {
	case 0:
		return pt.X
	case 1:
		return pt.Y
	case 2:
		return pt.Z
	default:
		panic(fmt.Sprintf("invalid axis %d for Point3", axis))
	}
}

func (pt Point3) WithCoord(axis int, v float64) Point3 {
	switch axis {
	case 0:
		pt.X = v
	case 1:
		pt.Y = v
	case 2:
		pt.Z = v
	default:
		panic(fmt.Sprintf("invalid axis %d for Point3", axis))
	}
	return pt
}

// IsInf reports whether at least one coordinate is infinite.
func (pt Point3) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) || math.IsInf(pt.Z, 0)
}

// IsNaN reports whether at least one coordinate is NaN.
func (pt Point3) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z)
}
