package lensing

import (
	"math"
)

// The closed forms below are rewritten so that no two large terms cancel:
//
//	(y²+2 - y√(y²+4)) / 4 = 1 / (y²+2 + y√(y²+4))
//	ln((y + √(y²+4)) / 2) = asinh(y/2)
//	μ₋ = -2 / (y√(y²+4) · (y√(y²+4) + y²+2))
//
// and μ₊ = 1 - μ₋. They stay accurate for y far below 1 and far above 1.

func checkImpact(y float64) error {
	if !isFinite(y) {
		return &DomainError{Param: "y", Value: y, Reason: "impact parameter must be finite"}
	}
	if y <= 0 {
		return &DomainError{Param: "y", Value: y, Reason: "impact parameter must be positive; y = 0 is the caustic"}
	}
	return nil
}

// geometry returns y√(y²+4) and y²+2 + y√(y²+4).
func geometry(y float64) (ys, sum float64) {
	ys = y * math.Hypot(y, 2)
	return ys, y*y + 2 + ys
}

// TimeDelayPlus returns the dimensionless arrival time of the plus-parity
// (minimum) image of a point mass at impact parameter y.
func TimeDelayPlus(y float64) (float64, error) {
	if err := checkImpact(y); err != nil {
		return 0, err
	}
	_, sum := geometry(y)
	return 1/sum - math.Asinh(y/2), nil
}

// TimeDelayMinus returns the dimensionless arrival time of the minus-parity
// (saddle) image.
func TimeDelayMinus(y float64) (float64, error) {
	if err := checkImpact(y); err != nil {
		return 0, err
	}
	_, sum := geometry(y)
	return sum/4 + math.Asinh(y/2), nil
}

// RelativeTimeDelay returns TimeDelayMinus(y) - TimeDelayPlus(y), which is
// positive for every y > 0.
func RelativeTimeDelay(y float64) (float64, error) {
	if err := checkImpact(y); err != nil {
		return 0, err
	}
	ys, _ := geometry(y)
	return ys/2 + 2*math.Asinh(y/2), nil
}

// MagnificationPlus returns the signed magnification of the plus-parity image.
func MagnificationPlus(y float64) (float64, error) {
	m, err := MagnificationMinus(y)
	if err != nil {
		return 0, err
	}
	return 1 - m, nil
}

// MagnificationMinus returns the signed, always negative, magnification of
// the minus-parity image.
func MagnificationMinus(y float64) (float64, error) {
	if err := checkImpact(y); err != nil {
		return 0, err
	}
	ys, sum := geometry(y)
	return -2 / (ys * sum), nil
}

// RelativeMagnification returns |μ₋/μ₊|. It decreases monotonically from 1
// as y → 0⁺ to 0 as y → ∞.
func RelativeMagnification(y float64) (float64, error) {
	if err := checkImpact(y); err != nil {
		return 0, err
	}
	ys, sum := geometry(y)
	return 1 / (1 + ys*sum/2), nil
}

// Images summarizes the two geometric-optics images of a point mass.
type Images struct {
	RelativeMagnification float64 // |μ₋/μ₊|
	TimeDelay             float64 // seconds by which the minus image trails the plus image
	AmplitudePlus         float64 // √|μ₊|
}

// PointMassImages returns the geometric-optics image summary of a point mass
// of redshifted mass massLz (solar masses) at impact parameter y.
func PointMassImages(c Constants, massLz, y float64) (Images, error) {
	if err := c.Validate(); err != nil {
		return Images{}, err
	}
	dt, err := c.TimeDelaySeconds(massLz, y)
	if err != nil {
		return Images{}, err
	}
	muRel, err := RelativeMagnification(y)
	if err != nil {
		return Images{}, err
	}
	muPlus, err := MagnificationPlus(y)
	if err != nil {
		return Images{}, err
	}
	return Images{
		RelativeMagnification: muRel,
		TimeDelay:             dt,
		AmplitudePlus:         math.Sqrt(math.Abs(muPlus)),
	}, nil
}

// TwoImages returns the interference factor of the two images, relative to
// the plus image. The saddle image carries a Morse phase of π/2. Scaled by
// AmplitudePlus it is the high-frequency limit of the point-lens factor.
func (im Images) TwoImages() TwoImages {
	return TwoImages{
		MuRel:    im.RelativeMagnification,
		DeltaT:   im.TimeDelay,
		DeltaPhi: math.Pi / 2,
	}
}
