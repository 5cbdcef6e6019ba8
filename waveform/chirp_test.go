package waveform_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/bob-anderson-ok/GWlensing/lensing"
	"github.com/bob-anderson-ok/GWlensing/waveform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chirpOptions() waveform.Options {
	opts := waveform.DefaultOptions()
	opts.Approximant = waveform.NewtonianSPA
	return opts
}

func TestNewtonianChirp_Amplitude(t *testing.T) {
	gen := waveform.NewtonianChirp{Constants: lensing.SI()}
	src := source
	src.ThetaJN = 0

	freqs := []float64{-30, 0, 10, 25, 50, 1000}
	pol, err := gen.Generate(freqs, src, chirpOptions())
	require.NoError(t, err)
	require.Len(t, pol.Plus, len(freqs))
	require.Len(t, pol.Cross, len(freqs))

	// negative, zero, below the minimum frequency and above ISCO
	for _, i := range []int{0, 1, 2, 5} {
		assert.Equal(t, complex(0, 0), pol.Plus[i], "f = %v", freqs[i])
		assert.Equal(t, complex(0, 0), pol.Cross[i], "f = %v", freqs[i])
	}

	ratio := cmplx.Abs(pol.Plus[4]) / cmplx.Abs(pol.Plus[3])
	assert.InDelta(t, math.Pow(2, -7.0/6.0), ratio, 1e-12)

	// face on, the two polarizations differ by a quarter cycle
	assert.InDelta(t, cmplx.Abs(pol.Plus[3]), cmplx.Abs(pol.Cross[3]), 1e-30)
	assert.InDelta(t, 0, cmplx.Abs(pol.Cross[3]-complex(0, -1)*pol.Plus[3]), 1e-30)
}

func TestNewtonianChirp_MaximumFrequency(t *testing.T) {
	gen := waveform.NewtonianChirp{Constants: lensing.SI()}
	opts := chirpOptions()
	opts.MaximumFrequency = 40
	pol, err := gen.Generate([]float64{30, 45}, source, opts)
	require.NoError(t, err)
	assert.NotZero(t, pol.Plus[0])
	assert.Zero(t, pol.Plus[1])
}

func TestNewtonianChirp_Errors(t *testing.T) {
	gen := waveform.NewtonianChirp{Constants: lensing.SI()}

	_, err := gen.Generate(grid, source, waveform.DefaultOptions())
	assert.ErrorIs(t, err, waveform.ErrUnsupportedApproximant)

	bad := source
	bad.Mass2 = 0
	_, err = gen.Generate(grid, bad, chirpOptions())
	assert.ErrorIs(t, err, waveform.ErrInvalidSource)

	bad = source
	bad.A1 = 1.2
	_, err = gen.Generate(grid, bad, chirpOptions())
	assert.ErrorIs(t, err, waveform.ErrInvalidSource)

	_, err = waveform.NewtonianChirp{}.Generate(grid, source, chirpOptions())
	assert.ErrorIs(t, err, lensing.ErrDomain)
}
