package hull

import "github.com/pkg/errors"

// Plane is a hyperplane given by a point on it and its normal direction. In
// two dimensions it is a line.
type Plane[P Vector[P]] struct {
	Origin    P
	Direction P
}

// Distance returns the signed distance of pt from the plane, positive on the
// side the direction points to. The direction is assumed to be of unit
// length.
func (pl Plane[P]) Distance(pt P) float64 {
	return pt.Sub(pl.Origin).Dot(pl.Direction)
}

// Side returns -1, 0 or 1 depending on which side of the plane pt lies.
func (pl Plane[P]) Side(pt P) int {
	switch d := pl.Distance(pt); {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

func (pl Plane[P]) normalize() (Plane[P], error) {
	h := pl.Direction.Hypot()
	if h == 0 || h != h {
		return pl, errors.WithStack(ErrInvalidPlane)
	}
	pl.Direction = pl.Direction.Div(h)
	return pl, nil
}
