package specfunc

import "errors"

var (
	// ErrPrecisionLoss is returned when a series loses more significant bits
	// to cancellation than the working precision can absorb. Inside Kummer and
	// Laguerre it triggers the arbitrary-precision path; it is only returned
	// to callers when that path also runs out of precision.
	ErrPrecisionLoss = errors.New("specfunc: loss of precision in series evaluation")

	// ErrNoConvergence is returned when a series does not reach its tail
	// within the term budget.
	ErrNoConvergence = errors.New("specfunc: series did not converge")

	// ErrPole is returned when a parameter sits on a pole of a Gamma factor.
	ErrPole = errors.New("specfunc: argument at a pole")

	// ErrInvalidArgument is returned for NaN or infinite arguments.
	ErrInvalidArgument = errors.New("specfunc: argument is not finite")

	// ErrOverflow is returned when a finite result does not fit a complex128.
	ErrOverflow = errors.New("specfunc: result overflows complex128")
)
