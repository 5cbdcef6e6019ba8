package specfunc_test

import (
	"fmt"

	"github.com/bob-anderson-ok/GWlensing/specfunc"
)

func ExampleGamma() {
	fmt.Printf("%.6f\n", real(specfunc.Gamma(5)))
	// Output: 24.000000
}

func ExampleLaguerre() {
	l, err := specfunc.Laguerre(2, 0, 0.7)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.6f\n", real(l))
	// Output: -0.155000
}
