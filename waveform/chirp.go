package waveform

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/bob-anderson-ok/GWlensing/lensing"
)

// NewtonianSPA is the approximant name served by NewtonianChirp.
const NewtonianSPA = "NewtonianSPA"

const megaparsec = 3.085677581491367e22 // m

// NewtonianChirp is a reference generator: the leading-order stationary
// phase inspiral of a quasi-circular binary, cut off at the innermost stable
// circular orbit. Spins are ignored. It is meant for demonstrations and tests,
// not for data analysis.
//
// The phase follows the engineering convention, so the signal reaches
// coalescence at TimeOfCoalescence seconds.
type NewtonianChirp struct {
	Constants         lensing.Constants
	TimeOfCoalescence float64
}

// Generate implements Generator. Entries outside
// [opts.MinimumFrequency, min(f_ISCO, opts.MaximumFrequency)] are zero.
func (g NewtonianChirp) Generate(freqs []float64, src BinaryBlackHole, opts Options) (Polarizations, error) {
	if opts.Approximant != NewtonianSPA {
		return Polarizations{}, fmt.Errorf("%w: %q", ErrUnsupportedApproximant, opts.Approximant)
	}
	if err := opts.Validate(); err != nil {
		return Polarizations{}, err
	}
	if err := src.Validate(); err != nil {
		return Polarizations{}, err
	}
	if err := g.Constants.Validate(); err != nil {
		return Polarizations{}, err
	}

	total := src.Mass1 + src.Mass2
	eta := src.Mass1 * src.Mass2 / (total * total)
	mTot := total * g.Constants.TSun
	mChirp := mTot * math.Pow(eta, 3.0/5.0)
	dL := src.LuminosityDistance * megaparsec / g.Constants.C

	amp := math.Sqrt(5.0/24.0) * math.Pow(math.Pi, -2.0/3.0) * math.Pow(mChirp, 5.0/6.0) / dL
	fMax := 1 / (math.Pow(6, 1.5) * math.Pi * mTot)
	if opts.MaximumFrequency > 0 && opts.MaximumFrequency < fMax {
		fMax = opts.MaximumFrequency
	}

	ci := math.Cos(src.ThetaJN)
	plusAmp := complex((1+ci*ci)/2, 0)
	crossAmp := complex(0, -ci)

	pol := Polarizations{
		Plus:  make([]complex128, len(freqs)),
		Cross: make([]complex128, len(freqs)),
	}
	for i, f := range freqs {
		if f <= 0 || f < opts.MinimumFrequency || f > fMax {
			continue
		}
		psi := 2*math.Pi*f*g.TimeOfCoalescence - 2*src.Phase - math.Pi/4 +
			3.0/128.0*math.Pow(math.Pi*mChirp*f, -5.0/3.0)
		h := cmplx.Rect(amp*math.Pow(f, -7.0/6.0), -psi)
		pol.Plus[i] = plusAmp * h
		pol.Cross[i] = crossAmp * h
	}
	return pol, nil
}
