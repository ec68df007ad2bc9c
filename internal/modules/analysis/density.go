// Package analysis derives observable quantities from eigensolver output.
package analysis

import (
	"errors"
	"fmt"

	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/solver"
)

var ErrInsufficientStates = errors.New("analysis: not enough eigenstates")

// Densities holds per-site probability densities of the two lowest orbital
// levels. Each orbital level spans one near-degenerate spin pair, so its
// density sums both spin partners and both spinor components per site. With
// normalized eigenvectors each slice sums to 2 regardless of the potential.
type Densities struct {
	Ground  []float64
	Excited []float64
}

// ProbabilityDensities computes the spatial probability densities of the
// ground and first excited orbital levels from the four lowest eigenstates.
func ProbabilityDensities(res solver.EigenResult, siteCount int) (Densities, error) {
	if len(res.Pairs) < 4 {
		return Densities{}, fmt.Errorf("%w: need 4, have %d", ErrInsufficientStates, len(res.Pairs))
	}
	return Densities{
		Ground:  pairDensity(res.Pairs[0], res.Pairs[1], siteCount),
		Excited: pairDensity(res.Pairs[2], res.Pairs[3], siteCount),
	}, nil
}

// pairDensity sums |psi|^2 of a spin pair site by site. Spinor components
// interleave in the eigenvectors: spin-up at even indices, spin-down at odd.
func pairDensity(a, b solver.Eigenpair, siteCount int) []float64 {
	d := make([]float64, siteCount)
	for i := 0; i < siteCount; i++ {
		d[i] = abs2(a.Vector[2*i]) + abs2(a.Vector[2*i+1]) +
			abs2(b.Vector[2*i]) + abs2(b.Vector[2*i+1])
	}
	return d
}

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
