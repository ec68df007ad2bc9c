// Package lattice discretizes the continuum nanowire Hamiltonian
//
//	(C*k_x^2 + V(x))*I + A*sigma_x + B*x*sigma_y
//
// onto a finite chain of evenly spaced sites with two spin degrees of freedom
// per site. The chain is a closed segment with open boundaries: sites live on
// the half-open index range [0, siteCount) and there is no hopping past
// either end.
package lattice

import (
	"errors"
	"fmt"
)

// Block is a 2x2 complex block acting on the spin space of one site.
type Block [2][2]complex128

// Spin-space basis matrices. The two Pauli generators do not commute, which
// is what couples the spin to the traveling pulse.
var (
	Identity = Block{{1, 0}, {0, 1}}
	SigmaX   = Block{{0, 1}, {1, 0}}
	SigmaY   = Block{{0, complex(0, -1)}, {complex(0, 1), 0}}
)

// Parameters binds numeric values to the Hamiltonian coefficients for a
// single evaluation. A scales the uniform Zeeman term, B the slanting-field
// term linear in position, C the kinetic term. V maps a site index to the
// scalar potential at that site and owns the site-to-coordinate rescaling.
type Parameters struct {
	A, B, C float64
	V       func(site int) float64
}

// ErrInvalidSiteCount is returned when a chain cannot be built.
var ErrInvalidSiteCount = errors.New("lattice: site count must be positive")

// Model is the discretized Hamiltonian: a 2x2 on-site block per site plus
// nearest-neighbor hopping blocks. The structure is fixed at build time;
// coefficient values are supplied fresh on every evaluation through
// Parameters, so a model never goes stale when the potential moves.
type Model struct {
	siteCount int
}

// Build discretizes the Hamiltonian on a chain of siteCount sites. Site
// counts that cannot form a chain are rejected here, before any assembly.
func Build(siteCount int) (*Model, error) {
	if siteCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSiteCount, siteCount)
	}
	return &Model{siteCount: siteCount}, nil
}

// SiteCount returns the number of lattice sites in the chain.
func (m *Model) SiteCount() int { return m.siteCount }

// Dim returns the dimension of the assembled matrix: two spin components per
// site.
func (m *Model) Dim() int { return 2 * m.siteCount }

// OnSite returns the on-site block at site i,
//
//	(2C + V(i))*I + A*sigma_x + B*i*sigma_y,
//
// the finite-difference image of the kinetic term plus the Zeeman terms.
// Positions are in lattice units (unit lattice constant); the potential
// callback rescales the site index to a physical coordinate internally.
func (m *Model) OnSite(i int, p Parameters) Block {
	d := complex(2*p.C+p.V(i), 0)
	a := complex(p.A, 0)
	b := complex(p.B*float64(i), 0)

	var blk Block
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			blk[r][c] = d*Identity[r][c] + a*SigmaX[r][c] + b*SigmaY[r][c]
		}
	}
	return blk
}

// Hopping returns the nearest-neighbor block, -C*I. The assembler must not
// request bonds that would leave the chain.
func (m *Model) Hopping(p Parameters) Block {
	return Block{
		{complex(-p.C, 0), 0},
		{0, complex(-p.C, 0)},
	}
}
