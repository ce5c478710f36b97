package hull

import "github.com/pkg/errors"

var (
	// ErrTooFewPoints is returned for curves with fewer than two control
	// points or knots.
	ErrTooFewPoints = errors.New("hull: too few control points")
	// ErrTooFewRails is returned for surfaces lofted across fewer than two
	// rail curves.
	ErrTooFewRails = errors.New("hull: too few rail curves")
	// ErrInvalidParams is returned by [Params.Validate].
	ErrInvalidParams = errors.New("hull: invalid parameters")
	// ErrInvalidPlane is returned for cutting planes without a direction.
	ErrInvalidPlane = errors.New("hull: invalid plane")
)
