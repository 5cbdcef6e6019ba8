package lensing

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain matches every *DomainError.
	ErrDomain = errors.New("lensing: parameter outside its domain")

	// ErrShape matches every *ShapeError.
	ErrShape = errors.New("lensing: length mismatch")

	// ErrNumericPrecision matches every *NumericPrecisionError.
	ErrNumericPrecision = errors.New("lensing: numeric precision exhausted")
)

// DomainError reports a lensing parameter outside its physical domain. It is
// always returned before any array work starts.
type DomainError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("lensing: %s = %v: %s", e.Param, e.Value, e.Reason)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }

// ShapeError reports arrays whose lengths do not match the frequency grid.
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("lensing: %s has length %d, want %d", e.What, e.Got, e.Want)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// NumericPrecisionError is returned when the special-function kernel could
// not reach a trustworthy value for one frequency, even after falling back to
// arbitrary precision. Err holds the kernel's cause.
type NumericPrecisionError struct {
	Frequency float64 // Hz
	W         float64 // dimensionless frequency
	Err       error
}

func (e *NumericPrecisionError) Error() string {
	return fmt.Sprintf("lensing: point lens at f = %v Hz (w = %v): %v", e.Frequency, e.W, e.Err)
}

func (e *NumericPrecisionError) Is(target error) bool { return target == ErrNumericPrecision }

func (e *NumericPrecisionError) Unwrap() error { return e.Err }
