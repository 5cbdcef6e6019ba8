// Package lensing computes frequency-domain gravitational-lensing
// amplification factors F(f): closed-form geometric-optics interference of
// one, two or three images, and the wave-optics diffraction factor of a point
// mass.
//
// Every factor uses the engineering Fourier convention of the waveform
// generators, h(f) = ∫ h(t) exp(-2πift) dt. The expressions of the lensing
// literature use the opposite sign, so each of them is complex-conjugated
// before it is returned. With this convention an image delayed by Δt > 0
// arrives later in the time domain.
package lensing

import (
	"math"
)

// Constants is the table of physical constants used to convert the
// dimensionless point-mass quantities into seconds. It is passed by value and
// never modified after construction.
type Constants struct {
	G    float64 // Newton's constant (m^3 kg^-1 s^-2)
	C    float64 // speed of light (m/s)
	MSun float64 // solar mass (kg)
	TSun float64 // solar mass in seconds, G·MSun/c^3
}

// SI returns the constants in SI units, with the values used by LALSuite.
func SI() Constants {
	return Constants{
		G:    6.67430e-11,
		C:    299792458,
		MSun: 1.988409870698051e30,
		TSun: 4.925490947641267e-6,
	}
}

// Validate checks that every constant is finite and positive.
func (c Constants) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{{"G", c.G}, {"c", c.C}, {"MSun", c.MSun}, {"TSun", c.TSun}} {
		if !isFinite(p.v) || p.v <= 0 {
			return &DomainError{Param: p.name, Value: p.v, Reason: "physical constant must be finite and positive"}
		}
	}
	return nil
}

// ReferenceTimeDelay returns 4·G·M_Lz·M_sun/c^3 in seconds for a redshifted
// lens mass given in solar masses.
func (c Constants) ReferenceTimeDelay(massLz float64) (float64, error) {
	if err := checkMass(massLz); err != nil {
		return 0, err
	}
	return 4 * c.G * massLz * c.MSun / (c.C * c.C * c.C), nil
}

// TimeDelaySeconds returns the delay between the two images of a point mass,
// in seconds. The minus-parity image arrives later.
func (c Constants) TimeDelaySeconds(massLz, y float64) (float64, error) {
	return c.scaledDelay(massLz, y, RelativeTimeDelay)
}

// TimePlusSeconds returns the geometric time delay of the plus-parity image,
// in seconds. The point-lens factor is normalized by it.
func (c Constants) TimePlusSeconds(massLz, y float64) (float64, error) {
	return c.scaledDelay(massLz, y, TimeDelayPlus)
}

func (c Constants) scaledDelay(massLz, y float64, delay func(float64) (float64, error)) (float64, error) {
	tRef, err := c.ReferenceTimeDelay(massLz)
	if err != nil {
		return 0, err
	}
	d, err := delay(y)
	if err != nil {
		return 0, err
	}
	return d * tRef, nil
}

// DimensionlessFrequency returns w = 2π·4·T_sun·M_Lz·f.
func (c Constants) DimensionlessFrequency(massLz, f float64) float64 {
	return 2 * math.Pi * 4 * c.TSun * massLz * f
}

func checkMass(massLz float64) error {
	if !isFinite(massLz) {
		return &DomainError{Param: "M_Lz", Value: massLz, Reason: "lens mass must be finite"}
	}
	if massLz < 0 {
		return &DomainError{Param: "M_Lz", Value: massLz, Reason: "lens mass must not be negative"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
