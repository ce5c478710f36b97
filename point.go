package hull

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector describes the point algebra shared by [Point2] and [Point3]. Curves
// and surfaces are generic over it so that the same code serves both
// dimensionalities without dynamic dispatch.
//
// Every point carries a homogeneous weight W. Add, Sub, Mul and Div operate on
// all components including W. Dot, Angle, Distance and Hypot only look at the
// spatial components.
type Vector[P any] interface {
	comparable

	Add(o P) P
	Sub(o P) P
	Mul(f float64) P
	Div(f float64) P
	Lerp(o P, t float64) P
	Min(o P) P
	Max(o P) P

	Dot(o P) float64
	Angle(o P) float64
	CrossHypot(o P) float64
	Distance(o P) float64
	Hypot() float64
	Unit() P

	Weight() float64
	WithWeight(w float64) P
	Coord(axis int) float64
	WithCoord(axis int, v float64) P
	Dims() int
}

func isVector[P Vector[P]]() {}

var _ = isVector[Point2]

// Point2 is a weighted point in two dimensions. It doubles as a vector.
type Point2 struct {
	X float64
	Y float64
	W float64
}

// Pt2 returns the point (x, y) with a weight of 1.
func Pt2(x, y float64) Point2 {
	return Point2{X: x, Y: y, W: 1}
}

func (pt Point2) String() string {
	if pt.W == 1 {
		return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
	}
	return fmt.Sprintf("(%g, %g; %g)", pt.X, pt.Y, pt.W)
}

func (pt Point2) vec() r2.Vec { return r2.Vec{X: pt.X, Y: pt.Y} }

func (pt Point2) withVec(v r2.Vec) Point2 { return Point2{X: v.X, Y: v.Y, W: pt.W} }

func (pt Point2) Add(o Point2) Point2 {
	return Point2{X: pt.X + o.X, Y: pt.Y + o.Y, W: pt.W + o.W}
}

func (pt Point2) Sub(o Point2) Point2 {
	return Point2{X: pt.X - o.X, Y: pt.Y - o.Y, W: pt.W - o.W}
}

func (pt Point2) Mul(f float64) Point2 {
	return Point2{X: pt.X * f, Y: pt.Y * f, W: pt.W * f}
}

func (pt Point2) Div(f float64) Point2 {
	return Point2{X: pt.X / f, Y: pt.Y / f, W: pt.W / f}
}

// Lerp linearly interpolates between two points.
func (pt Point2) Lerp(o Point2, t float64) Point2 {
	return pt.Add(o.Sub(pt).Mul(t))
}

// Min returns the per-axis minimum of two points.
func (pt Point2) Min(o Point2) Point2 {
	return Point2{X: min(pt.X, o.X), Y: min(pt.Y, o.Y), W: min(pt.W, o.W)}
}

// Max returns the per-axis maximum of two points.
func (pt Point2) Max(o Point2) Point2 {
	return Point2{X: max(pt.X, o.X), Y: max(pt.Y, o.Y), W: max(pt.W, o.W)}
}

// Dot returns the dot product of the spatial components.
func (pt Point2) Dot(o Point2) float64 {
	return r2.Dot(pt.vec(), o.vec())
}

// Cross returns the z component of the cross product of pt and o.
func (pt Point2) Cross(o Point2) float64 {
	return r2.Cross(pt.vec(), o.vec())
}

// CrossHypot returns the magnitude of the cross product, which is twice the
// area of the triangle spanned by pt and o.
func (pt Point2) CrossHypot(o Point2) float64 {
	return math.Abs(pt.Cross(o))
}

// Angle returns the unsigned angle in radians between pt and o, treated as
// vectors.
func (pt Point2) Angle(o Point2) float64 {
	return clampedAcos(pt.Dot(o), pt.Hypot()*o.Hypot())
}

// Heading returns the angle of the vector relative to ⟨1, 0⟩. This is
// atan2(y, x).
func (pt Point2) Heading() float64 {
	return math.Atan2(pt.Y, pt.X)
}

// Hypot returns the magnitude of the vector.
func (pt Point2) Hypot() float64 {
	return r2.Norm(pt.vec())
}

// Distance returns the euclidean distance between two points.
func (pt Point2) Distance(o Point2) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// Unit returns a vector of magnitude 1 with the same direction. The zero
// vector is returned unchanged.
func (pt Point2) Unit() Point2 {
	if pt.X == 0 && pt.Y == 0 {
		return pt
	}
	return pt.withVec(r2.Unit(pt.vec()))
}

// Negate returns a new vector with the signs of x and y flipped.
func (pt Point2) Negate() Point2 {
	return Point2{X: -pt.X, Y: -pt.Y, W: pt.W}
}

// Perp returns the vector rotated by 90° counterclockwise.
func (pt Point2) Perp() Point2 {
	return Point2{X: -pt.Y, Y: pt.X, W: pt.W}
}

// Polar returns the point at distance r from pt in direction th.
func (pt Point2) Polar(th, r float64) Point2 {
	sin, cos := math.Sincos(th)
	return Point2{X: pt.X + r*cos, Y: pt.Y + r*sin, W: pt.W}
}

func (pt Point2) Transform(aff Affine) Point2 {
	return Point2{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
		W: pt.W,
	}
}

func (pt Point2) Weight() float64 { return pt.W }

func (pt Point2) WithWeight(w float64) Point2 {
	pt.W = w
	return pt
}

func (pt Point2) Dims() int { return 2 }

// Coord returns the coordinate along the given axis (0 for x, 1 for y).
func (pt Point2) Coord(axis int) float64 {
	switch axis {
	case 0:
		return pt.X
	case 1:
		return pt.Y
	default:
		panic(fmt.Sprintf("invalid axis %d for Point2", axis))
	}
}

func (pt Point2) WithCoord(axis int, v float64) Point2 {
	switch axis {
	case 0:
		pt.X = v
	case 1:
		pt.Y = v
	default:
		panic(fmt.Sprintf("invalid axis %d for Point2", axis))
	}
	return pt
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point2) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point2) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// clampedAcos returns acos(dot/norms). The cosine is clamped to [-1, 1] since
// rounding routinely pushes it slightly past the boundary for (anti)parallel
// vectors. Zero-length vectors have an angle of 0.
func clampedAcos(dot, norms float64) float64 {
	if norms == 0 {
		return 0
	}
	return math.Acos(max(-1, min(1, dot/norms)))
}

// Corners returns the 2^n corners of the axis-aligned box spanned by lo and
// hi, where n is the dimensionality of P. Weights are taken from lo.
func Corners[P Vector[P]](lo, hi P) []P {
	dims := lo.Dims()
	out := make([]P, 0, 1<<dims)
	for mask := range 1 << dims {
		c := lo
		for axis := range dims {
			if mask&(1<<axis) != 0 {
				c = c.WithCoord(axis, hi.Coord(axis))
			}
		}
		out = append(out, c)
	}
	return out
}
