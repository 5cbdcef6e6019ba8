package specfunc

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Laguerre returns the generalized Laguerre function L(n, a, x) for complex,
// not necessarily integer, degree n:
//
//	L(n, a, x) = Γ(n+a+1) / (Γ(a+1) Γ(n+1)) · M(-n, a+1, x)
//
// For a = 0 the Gamma ratio is exactly 1. For integer n ≥ 0 this is the
// Laguerre polynomial. At a negative integer n with a ≠ 0 the ratio is taken
// as its limit, which is 0 unless Γ(n+a+1) has a pole as well. Only a pole
// of Γ(n+a+1) alone is reported as ErrPole. The function is pure; it may be
// called concurrently.
func Laguerre(n, a, x complex128) (complex128, error) {
	l, err := LogLaguerre(n, a, x)
	if err != nil {
		return 0, err
	}
	return expChecked(l)
}

// LogLaguerre returns log L(n, a, x), with the imaginary part defined modulo
// 2π. It stays finite where L itself would overflow a complex128. Where L is
// exactly zero the real part is -Inf.
func LogLaguerre(n, a, x complex128) (complex128, error) {
	if !isFinite(n) || !isFinite(a) || !isFinite(x) {
		return 0, ErrInvalidArgument
	}
	if isNonPositiveInt(a + 1) {
		return 0, fmt.Errorf("%w: a+1 = %v", ErrPole, a+1)
	}

	if a != 0 && isNonPositiveInt(n+1) && !isNonPositiveInt(n+a+1) {
		// 1/Γ(n+1) vanishes and Γ(n+a+1) does not.
		return complex(math.Inf(-1), 0), nil
	}

	logM, err := LogKummer(-n, a+1, x)
	if err != nil {
		return 0, fmt.Errorf("laguerre(%v, %v, %v): %w", n, a, x, err)
	}
	if a == 0 {
		return logM, nil
	}

	var coeff complex128
	switch {
	case isNonPositiveInt(n + 1):
		// Both Γ(n+a+1) and Γ(n+1) have poles, so a is a positive integer and
		// their ratio is (n+1)(n+2)...(n+a).
		for k := 1; k <= int(real(a)); k++ {
			coeff += cmplx.Log(n + complex(float64(k), 0))
		}
		coeff -= LogGamma(a + 1)
	case isNonPositiveInt(n + a + 1):
		return 0, fmt.Errorf("%w: n+a+1 = %v", ErrPole, n+a+1)
	default:
		coeff = LogGamma(n+a+1) - LogGamma(a+1) - LogGamma(n+1)
	}
	if cmplx.IsNaN(coeff) || cmplx.IsInf(coeff) {
		return 0, fmt.Errorf("%w: Gamma ratio for n = %v, a = %v", ErrOverflow, n, a)
	}
	return coeff + logM, nil
}
