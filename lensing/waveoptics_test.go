package lensing_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/bob-anderson-ok/GWlensing/lensing"
	"github.com/bob-anderson-ok/GWlensing/specfunc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// freqForW returns the frequency at which a lens of the given mass reaches
// the dimensionless frequency w.
func freqForW(mass, w float64) float64 {
	return w / (2 * math.Pi * 4 * lensing.SI().TSun * mass)
}

func TestPointLens_ZeroFrequency(t *testing.T) {
	F, err := lensing.PointLensFactor(scenarioGrid, 50, 0.8)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), F[2])
	for i, v := range F {
		assert.False(t, cmplx.IsNaN(v), "f = %v", scenarioGrid[i])
	}
}

func TestPointLens_ZeroMassIsUnlensed(t *testing.T) {
	F, err := lensing.PointLensFactor(scenarioGrid, 0, 1)
	require.NoError(t, err)
	for _, v := range F {
		assert.Equal(t, complex(1, 0), v)
	}
}

func TestPointLens_LowFrequencyLimit(t *testing.T) {
	const mass = 30.0
	F, err := lensing.PointLensFactor([]float64{freqForW(mass, 1e-4)}, mass, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, cmplx.Abs(F[0]-1), 1e-2)
}

// TestPointLens_GeometricOpticsLimit compares the diffraction factor at large
// w with the interference of the two geometric images.
func TestPointLens_GeometricOpticsLimit(t *testing.T) {
	const mass, y = 100.0, 1.0
	im, err := lensing.PointMassImages(lensing.SI(), mass, y)
	require.NoError(t, err)

	freqs := []float64{freqForW(mass, 500), freqForW(mass, 520)}
	F, err := lensing.PointLensFactor(freqs, mass, y)
	require.NoError(t, err)
	geo, err := im.TwoImages().Amplification(freqs)
	require.NoError(t, err)

	for i := range freqs {
		want := complex(im.AmplitudePlus, 0) * geo[i]
		assert.Less(t, cmplx.Abs(F[i]-want), 0.01*cmplx.Abs(want), "f = %v: got %v, want %v", freqs[i], F[i], want)
		assert.InEpsilon(t, cmplx.Abs(want), cmplx.Abs(F[i]), 0.01)
	}
}

func TestPointLens_NegativeFrequencies(t *testing.T) {
	const mass, y = 20.0, 0.5
	f := freqForW(mass, 3)
	F, err := lensing.PointLensFactor([]float64{f, -f}, mass, y)
	require.NoError(t, err)
	assert.InDelta(t, real(F[0]), real(F[1]), 1e-12)
	assert.InDelta(t, -imag(F[0]), imag(F[1]), 1e-12)
}

// TestPointLens_DirectProduct assembles the factor from its pieces in plain
// complex arithmetic, which is safe while w is small.
func TestPointLens_DirectProduct(t *testing.T) {
	const mass, y = 10.0, 0.7
	c := lensing.SI()
	for _, w := range []float64{0.5, 2, 6} {
		f := freqForW(mass, w)
		half := complex(0, w/2)
		m, err := specfunc.Kummer(half, 1, half*complex(y*y, 0))
		require.NoError(t, err)
		tPlus, err := c.TimePlusSeconds(mass, y)
		require.NoError(t, err)

		ampl := cmplx.Pow(complex(0, -0.5), 1+half) *
			cmplx.Pow(complex(w, 0), 1+half) *
			specfunc.Gamma(-half) * m *
			cmplx.Exp(complex(0, -2*math.Pi*f*tPlus))
		want := cmplx.Conj(ampl)

		F, err := lensing.PointLensFactor([]float64{f}, mass, y)
		require.NoError(t, err)
		assert.Less(t, cmplx.Abs(F[0]-want), 1e-10*cmplx.Abs(want), "w = %v", w)
	}
}

func TestPointLens_WorkersDoNotChangeResult(t *testing.T) {
	const mass, y = 40.0, 0.7
	grid := floats.Span(make([]float64, 61), -freqForW(mass, 30), freqForW(mass, 30))

	serial, err := lensing.WaveOptics{Constants: lensing.SI(), Workers: 1, ChunkSize: 1}.PointLens(grid, mass, y)
	require.NoError(t, err)
	parallel, err := lensing.WaveOptics{Constants: lensing.SI(), Workers: 4, ChunkSize: 7}.PointLens(grid, mass, y)
	require.NoError(t, err)
	again, err := lensing.PointLensFactor(grid, mass, y)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Equal(t, serial, again)
}

func TestPointLens_DomainErrors(t *testing.T) {
	_, err := lensing.PointLensFactor(scenarioGrid, 50, 0)
	assert.ErrorIs(t, err, lensing.ErrDomain)

	_, err = lensing.PointLensFactor(scenarioGrid, -1, 1)
	assert.ErrorIs(t, err, lensing.ErrDomain)

	_, err = lensing.PointLensFactor([]float64{math.Inf(-1)}, 50, 1)
	assert.ErrorIs(t, err, lensing.ErrDomain)

	_, err = lensing.WaveOptics{}.PointLens(scenarioGrid, 50, 1)
	assert.ErrorIs(t, err, lensing.ErrDomain, "zero constants")
}

// At w = 10^6 the Laguerre series needs far more bits than the kernel allows.
func TestPointLens_PrecisionExhausted(t *testing.T) {
	const mass = 1000.0
	f := freqForW(mass, 1e6)
	_, err := lensing.PointLensFactor([]float64{0, f}, mass, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, lensing.ErrNumericPrecision)
	assert.ErrorIs(t, err, specfunc.ErrPrecisionLoss)

	var npe *lensing.NumericPrecisionError
	require.True(t, errors.As(err, &npe))
	assert.Equal(t, f, npe.Frequency)
}
