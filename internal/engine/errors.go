package engine

import (
	"errors"
	"fmt"

	"github.com/ouzlim/vjsim/internal/fgen"
)

// ErrNoTakeOff indicates the push-off phase never reached the take-off
// distance within the time bound.
var ErrNoTakeOff = errors.New("engine: jump not achieved")

// NoTakeOffError carries how far the run got before the bound hit.
type NoTakeOffError struct {
	MaxTime  float64
	Distance float64
}

func (e *NoTakeOffError) Error() string {
	return fmt.Sprintf("jump not achieved: reached %.4f m after %.2f s", e.Distance, e.MaxTime)
}

func (e *NoTakeOffError) Unwrap() error { return ErrNoTakeOff }

func invalidParam(field string, value float64, reason string) error {
	return &fgen.ParamError{Field: field, Value: value, Reason: reason}
}
