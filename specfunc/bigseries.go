package specfunc

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"

	"github.com/sirupsen/logrus"
)

// MaxPrecisionBits caps the working precision of the arbitrary-precision
// path. Kummer's series with |x| up to roughly 4e4 fits under it.
const MaxPrecisionBits = 1 << 16

// guardBits are carried on top of the bits lost to cancellation.
const guardBits = 64

// bigSum is a series total in arbitrary precision.
type bigSum struct {
	re, im   *big.Float
	lossBits int
	zero     bool
}

// logKummerBig sums Kummer's series with math/big, raising the precision
// until the measured cancellation fits inside it.
func logKummerBig(alpha, beta, x complex128, prof termProfile) (complex128, error) {
	prec := uint(53 + guardBits + int(math.Ceil(math.Max(prof.log2Max, 0))))
	for prec <= MaxPrecisionBits {
		logFallback(alpha, beta, x, prof, prec)

		sum, err := kummerBig(alpha, beta, x, prec)
		if err != nil {
			return 0, err
		}
		if sum.zero {
			return complex(math.Inf(-1), 0), nil
		}
		need := uint(53 + guardBits/2 + sum.lossBits)
		if need <= prec {
			return sum.log(), nil
		}
		prec = max(2*prec, need+guardBits/2)
	}

	logrus.WithFields(logrus.Fields{
		"function": "specfunc.LogKummer",
		"alpha":    alpha,
		"beta":     beta,
		"x":        x,
		"maxBits":  MaxPrecisionBits,
	}).Warn("arbitrary precision exhausted")
	return 0, fmt.Errorf("%w: more than %d bits required", ErrPrecisionLoss, MaxPrecisionBits)
}

// kummerBig sums M(alpha, beta, x) at prec bits of mantissa.
//
// The term recurrence is t_{k+1} = t_k (alpha+k) x / ((beta+k)(k+1)).
// Summation stops once the terms decay geometrically and have dropped more
// than prec bits below the largest one.
func kummerBig(alpha, beta, x complex128, prec uint) (bigSum, error) {
	nf := func(v float64) *big.Float {
		return new(big.Float).SetPrec(prec).SetFloat64(v)
	}

	ar, ai := nf(real(alpha)), nf(imag(alpha))
	br, bi := nf(real(beta)), nf(imag(beta))
	xr, xi := nf(real(x)), nf(imag(x))
	tr, ti := nf(1), nf(0)
	sr, si := nf(1), nf(0)
	kb := nf(0)

	// Scratch values; a zero big.Float adopts the precision of its operands.
	var pr, pi, qr, qi, u, v, d, e big.Float

	maxExp := 1 // exponent of the leading term 1 = 0.5 × 2^1
	realBeta := imag(beta) == 0
	limit := termBudget(alpha, beta, x, prec)
	ax := cmplx.Abs(x)

	for k := 0; k < limit; k++ {
		kf := float64(k)
		num := alpha + complex(kf, 0)
		if num == 0 {
			return finishBig(sr, si, maxExp), nil
		}

		// p = (alpha + k) x
		kb.SetInt64(int64(k))
		pr.Add(ar, kb)
		pi.Set(ai)
		u.Mul(&pr, xr)
		v.Mul(&pi, xi)
		u.Sub(&u, &v)
		v.Mul(&pr, xi)
		d.Mul(&pi, xr)
		v.Add(&v, &d)
		pr.Set(&u)
		pi.Set(&v)

		// t *= p
		u.Mul(tr, &pr)
		v.Mul(ti, &pi)
		u.Sub(&u, &v)
		v.Mul(tr, &pi)
		d.Mul(ti, &pr)
		v.Add(&v, &d)
		tr.Set(&u)
		ti.Set(&v)

		// t /= (beta + k)(k + 1)
		qr.Add(br, kb)
		qi.Set(bi)
		kb.SetInt64(int64(k + 1))
		qr.Mul(&qr, kb)
		qi.Mul(&qi, kb)
		if realBeta {
			tr.Quo(tr, &qr)
			ti.Quo(ti, &qr)
		} else {
			d.Mul(&qr, &qr)
			u.Mul(&qi, &qi)
			d.Add(&d, &u)
			u.Mul(tr, &qr)
			v.Mul(ti, &qi)
			u.Add(&u, &v)
			v.Mul(ti, &qr)
			e.Mul(tr, &qi)
			v.Sub(&v, &e)
			tr.Quo(&u, &d)
			ti.Quo(&v, &d)
		}

		sr.Add(sr, tr)
		si.Add(si, ti)

		tExp, nonzero := complexExp(tr, ti)
		if !nonzero {
			return finishBig(sr, si, maxExp), nil
		}
		if tExp > maxExp {
			maxExp = tExp
		}
		denAbs := cmplx.Abs(beta+complex(kf, 0)) * (kf + 1)
		if inTail(cmplx.Abs(num)*ax, denAbs, kf, beta) && tExp < maxExp-int(prec)-2 {
			return finishBig(sr, si, maxExp), nil
		}
	}
	return bigSum{}, fmt.Errorf("%w: %d terms at %d bits", ErrNoConvergence, limit, prec)
}

func finishBig(sr, si *big.Float, maxExp int) bigSum {
	sExp, nonzero := complexExp(sr, si)
	if !nonzero {
		return bigSum{re: sr, im: si, zero: true}
	}
	return bigSum{re: sr, im: si, lossBits: max(0, maxExp-sExp)}
}

// log converts the sum to a complex128 logarithm. The binary exponent is
// split off first so that sums far outside the float64 range stay finite.
func (b bigSum) log() complex128 {
	e, _ := complexExp(b.re, b.im)
	re, _ := new(big.Float).SetMantExp(b.re, -e).Float64()
	im, _ := new(big.Float).SetMantExp(b.im, -e).Float64()
	return complex(math.Log(math.Hypot(re, im))+float64(e)*math.Ln2, math.Atan2(im, re))
}

// complexExp returns the larger binary exponent of re and im, and false
// when both are zero.
func complexExp(re, im *big.Float) (int, bool) {
	e, ok := 0, false
	if re.Sign() != 0 {
		e, ok = re.MantExp(nil), true
	}
	if im.Sign() != 0 {
		if ie := im.MantExp(nil); !ok || ie > e {
			e = ie
		}
		ok = true
	}
	return e, ok
}
