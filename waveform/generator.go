// Package waveform connects the lensing factors to a frequency-domain
// waveform generator. The generator is an external collaborator: it receives
// the frequency grid, the binary parameters and an enumerated set of options,
// and returns the unlensed plus and cross polarizations.
package waveform

import (
	"errors"
	"fmt"
	"math"

	"github.com/bob-anderson-ok/GWlensing/lensing"
)

var (
	// ErrUnsupportedApproximant is returned by a generator asked for an
	// approximant it does not implement.
	ErrUnsupportedApproximant = errors.New("waveform: unsupported approximant")

	// ErrInvalidSource is returned for unphysical binary parameters.
	ErrInvalidSource = errors.New("waveform: invalid source parameters")

	// ErrInvalidOptions is returned for inconsistent generator options.
	ErrInvalidOptions = errors.New("waveform: invalid generator options")
)

// Polarizations is a frequency-domain plus/cross pair, one entry per
// frequency of the grid it was generated on.
type Polarizations struct {
	Plus  []complex128
	Cross []complex128
}

func (p Polarizations) check(n int) error {
	if len(p.Plus) != n {
		return &lensing.ShapeError{What: "plus polarization", Want: n, Got: len(p.Plus)}
	}
	if len(p.Cross) != n {
		return &lensing.ShapeError{What: "cross polarization", Want: n, Got: len(p.Cross)}
	}
	return nil
}

// BinaryBlackHole holds the source parameters of a quasi-circular binary.
// Only the generator interprets them; the lensing code passes them through.
type BinaryBlackHole struct {
	Mass1              float64 // detector-frame mass (solar masses)
	Mass2              float64 // detector-frame mass (solar masses)
	LuminosityDistance float64 // Mpc
	A1                 float64 // dimensionless spin magnitude
	Tilt1              float64 // rad
	Phi12              float64 // rad
	A2                 float64
	Tilt2              float64
	PhiJL              float64
	ThetaJN            float64 // inclination of J to the line of sight (rad)
	Phase              float64 // rad
}

// Validate rejects non-positive masses and distances.
func (b BinaryBlackHole) Validate() error {
	switch {
	case !(b.Mass1 > 0) || math.IsInf(b.Mass1, 0):
		return fmt.Errorf("%w: mass_1 = %v", ErrInvalidSource, b.Mass1)
	case !(b.Mass2 > 0) || math.IsInf(b.Mass2, 0):
		return fmt.Errorf("%w: mass_2 = %v", ErrInvalidSource, b.Mass2)
	case !(b.LuminosityDistance > 0) || math.IsInf(b.LuminosityDistance, 0):
		return fmt.Errorf("%w: luminosity_distance = %v", ErrInvalidSource, b.LuminosityDistance)
	case b.A1 < 0 || b.A1 > 1 || b.A2 < 0 || b.A2 > 1:
		return fmt.Errorf("%w: spin magnitudes %v, %v outside [0, 1]", ErrInvalidSource, b.A1, b.A2)
	}
	return nil
}

// Options are the generator options recognized at the boundary. They are
// handed to the generator unchanged.
type Options struct {
	Approximant         string
	ReferenceFrequency  float64 // Hz
	MinimumFrequency    float64 // Hz
	MaximumFrequency    float64 // Hz, 0 means the generator's own cutoff
	PNSpinOrder         int     // -1 selects the highest available order
	PNTidalOrder        int
	PNPhaseOrder        int
	PNAmplitudeOrder    int
	ModeArray           [][2]int // (l, m) modes; nil selects the default set
	CatchWaveformErrors bool     // passed through to external generators only; Lens always returns generator errors
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Approximant:        "IMRPhenomPv2",
		ReferenceFrequency: 50,
		MinimumFrequency:   20,
		PNSpinOrder:        -1,
		PNTidalOrder:       -1,
		PNPhaseOrder:       -1,
		PNAmplitudeOrder:   0,
	}
}

// Validate checks the frequency options for consistency.
func (o Options) Validate() error {
	if o.Approximant == "" {
		return fmt.Errorf("%w: no approximant", ErrInvalidOptions)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"reference_frequency", o.ReferenceFrequency},
		{"minimum_frequency", o.MinimumFrequency},
		{"maximum_frequency", o.MaximumFrequency},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidOptions, f.name, f.v)
		}
	}
	if o.MaximumFrequency > 0 && o.MaximumFrequency <= o.MinimumFrequency {
		return fmt.Errorf("%w: maximum_frequency %v not above minimum_frequency %v",
			ErrInvalidOptions, o.MaximumFrequency, o.MinimumFrequency)
	}
	return nil
}

// Generator produces unlensed polarizations on a frequency grid. The
// returned slices must have len(freqs) entries each.
type Generator interface {
	Generate(freqs []float64, src BinaryBlackHole, opts Options) (Polarizations, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(freqs []float64, src BinaryBlackHole, opts Options) (Polarizations, error)

func (f GeneratorFunc) Generate(freqs []float64, src BinaryBlackHole, opts Options) (Polarizations, error) {
	return f(freqs, src, opts)
}
