package fgen

import (
	"errors"
	"fmt"
)

// ErrInvalidParam is the sentinel all parameter validation errors unwrap to.
var ErrInvalidParam = errors.New("fgen: invalid parameter")

// ParamError identifies the offending field of a rejected parameter set.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s = %g: %s", e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParam }
