package main

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/fatih/color"
	"gonum.org/v1/gonum/floats"

	"github.com/bob-anderson-ok/GWlensing/lensing"
)

type selfCheck struct {
	name string
	run  func() (float64, error) // returns the worst error seen
	tol  float64
}

// runSelfChecks exercises the lensing package on identities that must hold
// and reports each one. It returns false if any check fails.
func runSelfChecks() bool {
	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	checks := []selfCheck{
		{"cusp with mu_rel=1 equals fold with delta_t10", checkCuspFoldLimit, 1e-14},
		{"point lens at zero frequency is 1", checkPointLensZero, 0},
		{"point lens conjugate symmetry", checkPointLensSymmetry, 1e-12},
		{"point lens approaches two images at high frequency", checkGeometricLimit, 1e-2},
	}

	allOk := true
	fmt.Println("Self checks...")
	for _, c := range checks {
		worst, err := c.run()
		switch {
		case err != nil:
			fmt.Printf("  %s  %s: %v\n", fail("FAIL"), c.name, err)
			allOk = false
		case worst > c.tol:
			fmt.Printf("  %s  %s: error %0.3g exceeds %0.3g\n", fail("FAIL"), c.name, worst, c.tol)
			allOk = false
		default:
			fmt.Printf("  %s  %s (error %0.3g)\n", pass("PASS"), c.name, worst)
		}
	}
	return allOk
}

func maxAbsDiff(a, b []complex128) float64 {
	worst := 0.0
	for i := range a {
		if d := cmplx.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst
}

func checkCuspFoldLimit() (float64, error) {
	freqs := floats.Span(make([]float64, 201), -500, 500)
	cusp, err := lensing.CuspCausticFactor(freqs, 0.003, 0.007, 1, 1)
	if err != nil {
		return 0, err
	}
	fold, err := lensing.FoldCausticFactor(freqs, 0.003, 1)
	if err != nil {
		return 0, err
	}
	return maxAbsDiff(cusp, fold), nil
}

func checkPointLensZero() (float64, error) {
	F, err := lensing.PointLensFactor([]float64{0}, 100, 0.5)
	if err != nil {
		return 0, err
	}
	return cmplx.Abs(F[0] - 1), nil
}

func checkPointLensSymmetry() (float64, error) {
	freqs := floats.Span(make([]float64, 21), 5, 200)
	neg := make([]float64, len(freqs))
	floats.ScaleTo(neg, -1, freqs)

	pos, err := lensing.PointLensFactor(freqs, 30, 0.8)
	if err != nil {
		return 0, err
	}
	mirrored, err := lensing.PointLensFactor(neg, 30, 0.8)
	if err != nil {
		return 0, err
	}
	for i := range mirrored {
		mirrored[i] = cmplx.Conj(mirrored[i])
	}
	return maxAbsDiff(pos, mirrored), nil
}

// checkGeometricLimit compares the wave optics result with the two image
// factor built from the point mass kinematics at w near 500.
func checkGeometricLimit() (float64, error) {
	const massLz, y = 100.0, 0.7
	c := lensing.SI()
	f := 500 / (2 * math.Pi * 4 * c.TSun * massLz)

	F, err := lensing.PointLensFactor([]float64{f}, massLz, y)
	if err != nil {
		return 0, err
	}
	images, err := lensing.PointMassImages(c, massLz, y)
	if err != nil {
		return 0, err
	}
	geo, err := images.TwoImages().Amplification([]float64{f})
	if err != nil {
		return 0, err
	}
	want := complex(images.AmplitudePlus, 0) * geo[0]
	return cmplx.Abs(F[0]-want) / cmplx.Abs(want), nil
}
