package projection

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidRate       = errors.New("invalid rate")
	ErrInvalidTerm       = errors.New("invalid term")
	ErrInvalidPaymentDay = errors.New("invalid payment day")
)

// InvalidInputError reports which argument failed validation. It unwraps to
// one of the Err* sentinels so callers can use errors.Is.
type InvalidInputError struct {
	Field string
	Value float64
	Err   error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s = %v", e.Err, e.Field, e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

func invalid(field string, value float64, err error) error {
	return &InvalidInputError{Field: field, Value: value, Err: err}
}
