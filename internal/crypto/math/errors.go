package math

import "errors"

// Error taxonomy shared by the curve engine and the protocols built on it. Every error returned by this module that
// belongs to one of these classes wraps the corresponding sentinel, test with errors.Is(...).
var (
	// ErrConstruction reports invalid domain parameters: a singular curve, a base point that is not on the curve, a
	// claimed order that is not prime, or an order that does not annihilate the base point.
	ErrConstruction = errors.New("invalid domain parameters")

	// ErrValidation reports a point presented to an operation that is not on the curve (or otherwise unusable).
	ErrValidation = errors.New("invalid point")

	// ErrArgument reports an invalid scalar argument, e.g. a non-positive multiplier.
	ErrArgument = errors.New("invalid argument")
)
