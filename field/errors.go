package field

import "errors"

var (
	// ErrInvalidType is returned when a value of the wrong kind is supplied,
	// e.g. an array or polynomial over a different field.
	ErrInvalidType = errors.New("field: invalid argument type")

	// ErrInvalidValue is returned when an argument has the right kind but an
	// unacceptable value (not a prime power, reducible polynomial, shape mismatch).
	ErrInvalidValue = errors.New("field: invalid argument value")

	// ErrDivisionByZero is returned when dividing by, or inverting, the
	// additive identity.
	ErrDivisionByZero = errors.New("field: division by zero")
)
