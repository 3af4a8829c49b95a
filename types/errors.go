package types

import (
	"errors"
	"fmt"
)

// ErrEmptyArray is returned when a value or representation would be built
// from an empty sequence. An empty array has no element to infer a shape
// from, so empty arrays are rejected at every construction boundary.
var ErrEmptyArray = errors.New("empty arrays are not representable")

// InvalidLengthError reports a slice whose length does not match the length
// required by the shape it is converted against.
type InvalidLengthError struct {
	Expected int
	Actual   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid binary representation length: expected: %d, actual: %d", e.Expected, e.Actual)
}

// UnexpectedTypeError reports a shape mismatch, either between two values
// being combined or between a value and the type it is narrowed to.
type UnexpectedTypeError struct {
	Expected ValueType
	Actual   ValueType
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("unexpected type, expected: %s, actual: %s", e.Expected, e.Actual)
}
