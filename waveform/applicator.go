package waveform

import (
	"fmt"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/bob-anderson-ok/GWlensing/lensing"
)

// Lens calls gen once on freqs and returns a new pair (plus·F, cross·F),
// where F is the amplification of factor. The factor is validated before
// the generator runs, and the generator's own slices are never modified.
func Lens(freqs []float64, gen Generator, src BinaryBlackHole, opts Options, factor lensing.Factor) (Polarizations, error) {
	if err := factor.Validate(); err != nil {
		return Polarizations{}, err
	}
	pol, err := gen.Generate(freqs, src, opts)
	if err != nil {
		return Polarizations{}, fmt.Errorf("generating %s waveform: %w", opts.Approximant, err)
	}
	if err := pol.check(len(freqs)); err != nil {
		return Polarizations{}, err
	}

	F, err := factor.Amplification(freqs)
	if err != nil {
		return Polarizations{}, err
	}
	return Polarizations{
		Plus:  cmplxs.MulTo(make([]complex128, len(F)), pol.Plus, F),
		Cross: cmplxs.MulTo(make([]complex128, len(F)), pol.Cross, F),
	}, nil
}

// ApplyFactor multiplies both polarizations by F in place.
func ApplyFactor(pol Polarizations, F []complex128) error {
	if err := pol.check(len(F)); err != nil {
		return err
	}
	cmplxs.Mul(pol.Plus, F)
	cmplxs.Mul(pol.Cross, F)
	return nil
}

// LensOneImage lenses the generated waveform with a single image.
func LensOneImage(freqs []float64, gen Generator, src BinaryBlackHole, opts Options, deltaPhi float64) (Polarizations, error) {
	return Lens(freqs, gen, src, opts, lensing.OneImage{DeltaPhi: deltaPhi})
}

// LensTwoImages lenses the generated waveform with two interfering images.
func LensTwoImages(freqs []float64, gen Generator, src BinaryBlackHole, opts Options, muRel, deltaT, deltaPhi float64) (Polarizations, error) {
	return Lens(freqs, gen, src, opts, lensing.TwoImages{MuRel: muRel, DeltaT: deltaT, DeltaPhi: deltaPhi})
}

// LensFoldCaustic lenses the generated waveform with an image pair at a fold.
func LensFoldCaustic(freqs []float64, gen Generator, src BinaryBlackHole, opts Options, deltaT float64, positivePhase int) (Polarizations, error) {
	return Lens(freqs, gen, src, opts, lensing.FoldCaustic{DeltaT: deltaT, PositivePhase: positivePhase})
}

// LensCuspCaustic lenses the generated waveform with three images at a cusp.
func LensCuspCaustic(freqs []float64, gen Generator, src BinaryBlackHole, opts Options, deltaT10, deltaT20, muRel float64, positivePhase int) (Polarizations, error) {
	return Lens(freqs, gen, src, opts, lensing.CuspCaustic{
		DeltaT10:      deltaT10,
		DeltaT20:      deltaT20,
		MuRel:         muRel,
		PositivePhase: positivePhase,
	})
}

// LensPointLens lenses the generated waveform with the diffraction factor of
// a point mass.
func LensPointLens(freqs []float64, gen Generator, src BinaryBlackHole, opts Options, massLz, y float64) (Polarizations, error) {
	return Lens(freqs, gen, src, opts, lensing.PointLens{MassLz: massLz, Y: y})
}
