package lensing

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Factor is a lensing configuration that can be evaluated on a frequency
// grid. Validate reports parameter errors without touching any grid, and
// Amplification always returns a freshly allocated slice of len(freqs).
type Factor interface {
	Validate() error
	Amplification(freqs []float64) ([]complex128, error)
}

// OneImage is a single lensed image with a constant Morse phase shift.
type OneImage struct {
	DeltaPhi float64 // phase relative to the unlensed signal (rad)
}

// TwoImages is the interference of a unit reference image with a second
// image of relative magnification MuRel.
type TwoImages struct {
	MuRel    float64 // relative magnification, ≥ 0
	DeltaT   float64 // time delay of the second image (s)
	DeltaPhi float64 // relative phase of the second image (rad)
}

// FoldCaustic is a pair of images merging at a fold. PositivePhase is +1 or
// -1 and selects the parity branch of the pair.
type FoldCaustic struct {
	DeltaT        float64
	PositivePhase int
}

// CuspCaustic is three images merging at a cusp. Only |MuRel| is used, and
// it must not exceed 1.
type CuspCaustic struct {
	DeltaT10      float64
	DeltaT20      float64
	MuRel         float64
	PositivePhase int
}

// sign returns -1, 0 or +1. sign(0) = 0, so no phase is applied at f = 0.
func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}

func checkParam(name string, v float64) error {
	if !isFinite(v) {
		return &DomainError{Param: name, Value: v, Reason: "must be finite"}
	}
	return nil
}

func checkParity(p int) error {
	if p != 1 && p != -1 {
		return &DomainError{Param: "positive_phase", Value: float64(p), Reason: "must be +1 or -1"}
	}
	return nil
}

// checkGrid rejects NaN and infinite frequencies.
func checkGrid(freqs []float64) error {
	for i, f := range freqs {
		if !isFinite(f) {
			return &DomainError{Param: fmt.Sprintf("f[%d]", i), Value: f, Reason: "frequency must be finite"}
		}
	}
	return nil
}

// fill validates the grid and evaluates term at every frequency.
func fill(freqs []float64, term func(f float64) complex128) ([]complex128, error) {
	if err := checkGrid(freqs); err != nil {
		return nil, err
	}
	F := make([]complex128, len(freqs))
	for i, f := range freqs {
		F[i] = cmplx.Conj(term(f))
	}
	return F, nil
}

func (p OneImage) Validate() error {
	return checkParam("Δφ", p.DeltaPhi)
}

// Amplification returns conj(exp(-i·sign(f)·Δφ)).
func (p OneImage) Amplification(freqs []float64) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return fill(freqs, func(f float64) complex128 {
		return cmplx.Rect(1, -sign(f)*p.DeltaPhi)
	})
}

func (p TwoImages) Validate() error {
	if err := checkParam("μ_rel", p.MuRel); err != nil {
		return err
	}
	if p.MuRel < 0 {
		return &DomainError{Param: "μ_rel", Value: p.MuRel, Reason: "relative magnification must not be negative"}
	}
	if err := checkParam("Δt", p.DeltaT); err != nil {
		return err
	}
	return checkParam("Δφ", p.DeltaPhi)
}

// Amplification returns conj(1 + √μ·exp(i(2πfΔt - sign(f)Δφ))).
func (p TwoImages) Amplification(freqs []float64) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	a := math.Sqrt(p.MuRel)
	return fill(freqs, func(f float64) complex128 {
		return 1 + cmplx.Rect(a, 2*math.Pi*f*p.DeltaT-sign(f)*p.DeltaPhi)
	})
}

func (p FoldCaustic) Validate() error {
	if err := checkParam("Δt", p.DeltaT); err != nil {
		return err
	}
	return checkParity(p.PositivePhase)
}

// Amplification returns conj(σ(1 + exp(i(2πfΔt - σ·sign(f)·π/2)))).
func (p FoldCaustic) Amplification(freqs []float64) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := float64(p.PositivePhase)
	return fill(freqs, func(f float64) complex128 {
		morse := s * sign(f) * math.Pi / 2
		return complex(s, 0) * (1 + cmplx.Rect(1, 2*math.Pi*f*p.DeltaT-morse))
	})
}

func (p CuspCaustic) Validate() error {
	for _, v := range []struct {
		name string
		v    float64
	}{{"Δt10", p.DeltaT10}, {"Δt20", p.DeltaT20}, {"μ_rel", p.MuRel}} {
		if err := checkParam(v.name, v.v); err != nil {
			return err
		}
	}
	if math.Abs(p.MuRel) > 1 {
		return &DomainError{Param: "μ_rel", Value: p.MuRel, Reason: "cusp requires |μ_rel| ≤ 1"}
	}
	return checkParity(p.PositivePhase)
}

// Amplification returns
//
//	conj(σ(1 + √|μ|·e^{i(2πfΔt10 - σ sign(f) π/2)} + √(1-|μ|)·e^{i(2πfΔt20 - σ sign(f) π/2)}))
//
// At μ = 0 it equals the fold factor with Δt = Δt20, and at |μ| = 1 the fold
// factor with Δt = Δt10.
func (p CuspCaustic) Amplification(freqs []float64) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := float64(p.PositivePhase)
	mu := math.Abs(p.MuRel)
	a1, a2 := math.Sqrt(mu), math.Sqrt(1-mu)
	return fill(freqs, func(f float64) complex128 {
		morse := s * sign(f) * math.Pi / 2
		sum := 1 + cmplx.Rect(a1, 2*math.Pi*f*p.DeltaT10-morse)
		sum += cmplx.Rect(a2, 2*math.Pi*f*p.DeltaT20-morse)
		return complex(s, 0) * sum
	})
}

// OneImageFactor evaluates the single-image factor on freqs.
func OneImageFactor(freqs []float64, deltaPhi float64) ([]complex128, error) {
	return OneImage{DeltaPhi: deltaPhi}.Amplification(freqs)
}

// TwoImagesFactor evaluates the two-image interference factor on freqs.
func TwoImagesFactor(freqs []float64, muRel, deltaT, deltaPhi float64) ([]complex128, error) {
	return TwoImages{MuRel: muRel, DeltaT: deltaT, DeltaPhi: deltaPhi}.Amplification(freqs)
}

// FoldCausticFactor evaluates the fold-caustic factor on freqs.
func FoldCausticFactor(freqs []float64, deltaT float64, positivePhase int) ([]complex128, error) {
	return FoldCaustic{DeltaT: deltaT, PositivePhase: positivePhase}.Amplification(freqs)
}

// CuspCausticFactor evaluates the cusp-caustic factor on freqs.
func CuspCausticFactor(freqs []float64, deltaT10, deltaT20, muRel float64, positivePhase int) ([]complex128, error) {
	return CuspCaustic{
		DeltaT10:      deltaT10,
		DeltaT20:      deltaT20,
		MuRel:         muRel,
		PositivePhase: positivePhase,
	}.Amplification(freqs)
}
