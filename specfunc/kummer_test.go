package specfunc_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/bob-anderson-ok/GWlensing/specfunc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKummer_ZeroArgument(t *testing.T) {
	got, err := specfunc.Kummer(complex(3, -1), complex(0.5, 2), 0)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), got)
}

// M(1, 2, x) = (e^x - 1) / x
func TestKummer_ElementaryClosedForm(t *testing.T) {
	for _, x := range []float64{2.5, -3, -30} {
		got, err := specfunc.Kummer(1, 2, complex(x, 0))
		require.NoError(t, err, "x = %v", x)
		want := complex(math.Expm1(x)/x, 0)
		assert.Less(t, relErr(got, want), 1e-12, "M(1, 2, %v) = %v, want %v", x, got, want)
	}
}

// M(a, a, x) = e^x holds for any a, including complex a, and its series
// cancels heavily once x is large and not positive real.
func TestKummer_ExponentialIdentity(t *testing.T) {
	cases := []struct {
		name string
		a    complex128
		x    complex128
	}{
		{"small complex", complex(1.5, 2), complex(3, -1)},
		{"oscillating", complex(2, 1), complex(0, 60)},
		{"decaying real", 0.5, -40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := specfunc.Kummer(tc.a, tc.a, tc.x)
			require.NoError(t, err)
			want := cmplx.Exp(tc.x)
			assert.Less(t, relErr(got, want), 1e-12, "got %v, want %v", got, want)
		})
	}
}

func TestLogKummer_MatchesKummer(t *testing.T) {
	alpha, beta, x := complex(0, 4), complex(1, 0), complex(0, 9)
	m, err := specfunc.Kummer(alpha, beta, x)
	require.NoError(t, err)
	l, err := specfunc.LogKummer(alpha, beta, x)
	require.NoError(t, err)
	assert.Less(t, relErr(cmplx.Exp(l), m), 1e-13)
}

func TestKummer_Deterministic(t *testing.T) {
	alpha, beta, x := complex(0, 150), complex(1, 0), complex(0, 150)
	first, err := specfunc.LogKummer(alpha, beta, x)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := specfunc.LogKummer(alpha, beta, x)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestKummer_Errors(t *testing.T) {
	_, err := specfunc.Kummer(1, -2, 1)
	assert.ErrorIs(t, err, specfunc.ErrPole)

	_, err = specfunc.Kummer(1, 0, 1)
	assert.ErrorIs(t, err, specfunc.ErrPole)

	_, err = specfunc.Kummer(cmplx.NaN(), 1, 1)
	assert.ErrorIs(t, err, specfunc.ErrInvalidArgument)

	_, err = specfunc.Kummer(1, 1, cmplx.Inf())
	assert.ErrorIs(t, err, specfunc.ErrInvalidArgument)
}

// The peak term of this series is about 2^144000, which no working precision
// under MaxPrecisionBits can absorb.
func TestKummer_PrecisionExhausted(t *testing.T) {
	_, err := specfunc.LogKummer(complex(0, 0.5), 1, complex(0, 1e5))
	assert.ErrorIs(t, err, specfunc.ErrPrecisionLoss)
}

// TestKummer_CancellationAccuracy sweeps M(a, a, x) = e^x across arguments
// whose terms cancel by a growing number of bits, covering both the float64
// and the math/big paths.
func TestKummer_CancellationAccuracy(t *testing.T) {
	xs := []complex128{-1, -2, -3, -4, -5, -6, -8, -12, -20, -30, 3i, 10i, 40i, complex(-6, 6)}
	for _, x := range xs {
		got, err := specfunc.Kummer(1.5, 1.5, x)
		require.NoError(t, err, "x = %v", x)
		assert.Less(t, relErr(got, cmplx.Exp(x)), 1e-13, "x = %v", x)
	}
}
