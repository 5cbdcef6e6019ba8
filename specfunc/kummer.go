package specfunc

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/sirupsen/logrus"
)

// MaxLossBits is the number of significant bits the double-precision series
// may lose to cancellation before the arbitrary-precision path takes over.
// It bounds the relative error of a double-precision result to a few times
// 2^MaxLossBits machine epsilons, about 1e-14.
const MaxLossBits = 6

const (
	// floatRangeBits bounds log2 of the largest term the double-precision
	// path may meet without overflowing.
	floatRangeBits = 1000

	// tailEps is the relative size, against the largest term, below which
	// the double-precision series is considered summed.
	tailEps = 0x1p-56

	maxTermBudget = 1 << 24
)

// Kummer returns Kummer's confluent hypergeometric function
//
//	M(alpha, beta, x) = Σ (alpha)_k / ((beta)_k k!) x^k
//
// for complex arguments. beta must not be zero or a negative integer.
func Kummer(alpha, beta, x complex128) (complex128, error) {
	l, err := LogKummer(alpha, beta, x)
	if err != nil {
		return 0, err
	}
	return expChecked(l)
}

// LogKummer returns log M(alpha, beta, x), with the imaginary part defined
// modulo 2π. A sum that cancels to exactly zero yields complex(-Inf, 0).
//
// The double-precision series is tried first. When its largest term would
// overflow, or when more than MaxLossBits bits are lost to cancellation, the
// series is summed again with math/big at a precision derived from the
// measured loss. The choice depends only on the arguments.
func LogKummer(alpha, beta, x complex128) (complex128, error) {
	if !isFinite(alpha) || !isFinite(beta) || !isFinite(x) {
		return 0, ErrInvalidArgument
	}
	if isNonPositiveInt(beta) {
		return 0, fmt.Errorf("%w: beta = %v", ErrPole, beta)
	}
	if x == 0 {
		return 0, nil
	}

	prof := profileTerms(alpha, beta, x)
	if prof.log2Max < floatRangeBits {
		s, loss, err := kummerFloat(alpha, beta, x)
		switch {
		case errors.Is(err, ErrNoConvergence):
			return 0, err
		case err == nil && loss <= MaxLossBits:
			return cmplx.Log(s), nil
		}
	}
	return logKummerBig(alpha, beta, x, prof)
}

// termProfile summarizes the magnitudes of the terms of Kummer's series.
type termProfile struct {
	log2Max float64 // log2 of the largest |term|
	peak    int     // index of the largest term
}

// profileTerms walks the term ratios in log space, so that it never
// overflows, and reports where the series peaks.
func profileTerms(alpha, beta, x complex128) termProfile {
	ax := cmplx.Abs(x)
	lx := math.Log2(ax)
	var cur, best float64
	peak := 0
	limit := termBudget(alpha, beta, x, 53)
	for k := 0; k < limit; k++ {
		kf := float64(k)
		num := cmplx.Abs(alpha + complex(kf, 0))
		if num == 0 {
			break
		}
		den := cmplx.Abs(beta+complex(kf, 0)) * (kf + 1)
		cur += math.Log2(num) + lx - math.Log2(den)
		if cur > best {
			best, peak = cur, k+1
		}
		if inTail(num*ax, den, kf, beta) && cur < best-64 {
			break
		}
	}
	return termProfile{log2Max: best, peak: peak}
}

// kummerFloat sums the series in complex128 and reports how many bits were
// lost to cancellation, log2(max|term| / |sum|).
func kummerFloat(alpha, beta, x complex128) (sum complex128, lossBits float64, err error) {
	s, t := complex(1, 0), complex(1, 0)
	maxAbs := 1.0
	limit := termBudget(alpha, beta, x, 53)
	for k := 0; k < limit; k++ {
		kf := float64(k)
		num := alpha + complex(kf, 0)
		if num == 0 {
			return s, lossOf(maxAbs, cmplx.Abs(s)), nil
		}
		den := (beta + complex(kf, 0)) * complex(kf+1, 0)
		t *= num * x / den
		s += t
		if !isFinite(t) || !isFinite(s) {
			return 0, math.Inf(1), ErrPrecisionLoss
		}

		a := cmplx.Abs(t)
		if a > maxAbs {
			maxAbs = a
		}
		if inTail(cmplx.Abs(num*x), cmplx.Abs(den), kf, beta) && a <= maxAbs*tailEps {
			return s, lossOf(maxAbs, cmplx.Abs(s)), nil
		}
	}
	return 0, 0, ErrNoConvergence
}

// inTail reports whether the series has passed its peak and every further
// term shrinks by at least half.
func inTail(numAbs, denAbs, k float64, beta complex128) bool {
	return numAbs < 0.5*denAbs && k+1 > -real(beta)
}

func lossOf(maxAbs, sumAbs float64) float64 {
	if sumAbs == 0 {
		return math.Inf(1)
	}
	return math.Max(0, math.Log2(maxAbs/sumAbs))
}

// termBudget bounds the number of terms summed at the given precision.
func termBudget(alpha, beta, x complex128, prec uint) int {
	n := 64 + 4*float64(prec) + 8*(cmplx.Abs(x)+cmplx.Abs(alpha)+cmplx.Abs(beta))
	if n > maxTermBudget {
		return maxTermBudget
	}
	return int(n)
}

func expChecked(l complex128) (complex128, error) {
	if math.IsInf(real(l), -1) {
		return 0, nil
	}
	v := cmplx.Exp(l)
	if !isFinite(v) {
		return 0, ErrOverflow
	}
	return v, nil
}

func isFinite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

func logFallback(alpha, beta, x complex128, prof termProfile, prec uint) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logrus.WithFields(logrus.Fields{
		"function": "specfunc.LogKummer",
		"alpha":    alpha,
		"beta":     beta,
		"x":        x,
		"peakTerm": prof.peak,
		"log2Max":  prof.log2Max,
		"bits":     prec,
	}).Debug("double precision series lost too many bits, using arbitrary precision")
}
