package lensing

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AmplifyAll evaluates every factor on the same frequency grid, running at
// most workers evaluations at once (GOMAXPROCS when workers ≤ 0). All factors
// are validated before any evaluation starts. out[i] belongs to factors[i].
func AmplifyAll(freqs []float64, factors []Factor, workers int) ([][]complex128, error) {
	if err := checkGrid(freqs); err != nil {
		return nil, err
	}
	for i, fac := range factors {
		if err := fac.Validate(); err != nil {
			return nil, fmt.Errorf("factor %d: %w", i, err)
		}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([][]complex128, len(factors))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, fac := range factors {
		g.Go(func() error {
			F, err := fac.Amplification(freqs)
			if err != nil {
				return fmt.Errorf("factor %d: %w", i, err)
			}
			out[i] = F
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
