package thermo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParam indicates a physical parameter outside its valid range.
	ErrInvalidParam = errors.New("thermo: physical parameter out of valid range")

	// ErrInvalidSpan indicates an empty or inverted integration span.
	ErrInvalidSpan = errors.New("thermo: integration span is empty or inverted")

	// ErrTooFewSamples indicates a sample count below the two-point minimum.
	ErrTooFewSamples = errors.New("thermo: at least 2 samples required")

	// ErrInvalidTolerance indicates a non-positive solver tolerance.
	ErrInvalidTolerance = errors.New("thermo: tolerance must be positive")

	// ErrInvalidState indicates the temperature became NaN or Inf.
	ErrInvalidState = errors.New("thermo: temperature is not finite")
)

// ParamError reports which physical parameter failed validation.
// Fatal at configuration time; nothing downstream can recover from it.
type ParamError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s = %g", e.Wrapped, e.Field, e.Value)
}

func (e *ParamError) Unwrap() error { return e.Wrapped }

// SpanError reports an invalid integration request (span or sample count).
type SpanError struct {
	Start   float64
	End     float64
	Samples int
	Wrapped error
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("%v: span [%g, %g], samples %d", e.Wrapped, e.Start, e.End, e.Samples)
}

func (e *SpanError) Unwrap() error { return e.Wrapped }

// StateError wraps a mid-run failure with the time it occurred.
type StateError struct {
	Time    float64
	Wrapped error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("t=%.4f: %v", e.Time, e.Wrapped)
}

func (e *StateError) Unwrap() error { return e.Wrapped }
