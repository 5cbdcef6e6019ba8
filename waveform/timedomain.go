package waveform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/GWlensing/lensing"
)

// OneSidedGrid returns the n/2+1 non-negative frequencies k·deltaF of a real
// time series of n samples.
func OneSidedGrid(n int, deltaF float64) ([]float64, error) {
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("waveform: sample count %d must be even and at least 2", n)
	}
	if !(deltaF > 0) || math.IsInf(deltaF, 0) {
		return nil, &lensing.DomainError{Param: "deltaF", Value: deltaF, Reason: "must be finite and positive"}
	}
	return floats.Span(make([]float64, n/2+1), 0, float64(n/2)*deltaF), nil
}

// ToTimeDomain returns the real time series of a one-sided spectrum sampled
// at k·deltaF, k = 0..len(spectrum)-1. The spectrum follows the engineering
// convention h(f) = ∫ h(t) exp(-2πift) dt, so the series is
//
//	h(t_j) = deltaF · Σ_k h(f_k) exp(+2πi f_k t_j)
//
// over the two-sided spectrum, with n = 2(len(spectrum)-1) samples spaced
// 1/(n·deltaF) apart.
func ToTimeDomain(spectrum []complex128, deltaF float64) ([]float64, error) {
	if len(spectrum) < 2 {
		return nil, &lensing.ShapeError{What: "spectrum", Want: 2, Got: len(spectrum)}
	}
	if !(deltaF > 0) || math.IsInf(deltaF, 0) {
		return nil, &lensing.DomainError{Param: "deltaF", Value: deltaF, Reason: "must be finite and positive"}
	}
	n := 2 * (len(spectrum) - 1)
	fft := fourier.NewFFT(n)
	series := fft.Sequence(nil, spectrum)
	floats.Scale(deltaF, series)
	return series, nil
}
