// Package solver assembles the numeric lattice Hamiltonian and computes its
// energy eigenstates.
package solver

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/lattice"
)

// Numerical failure modes. They surface to the caller unchanged; the solver
// never substitutes a default result.
var (
	ErrNotConverged = errors.New("solver: eigendecomposition did not converge")
	ErrNonFinite    = errors.New("solver: non-finite eigenvalue")
)

// degenTol clusters eigenvalues that are equal up to numerical noise,
// relative to the spectral scale. Spin pairs in this system are split by at
// least ~1e-7 hartree, orders of magnitude above this threshold.
const degenTol = 1e-9

// acceptTol is the minimum residual norm for a de-embedded vector to count
// as a new eigenvector rather than a numerical copy of an accepted one.
const acceptTol = 1e-6

// Eigenpair couples one eigenvalue with its eigenvector. The vector has one
// pair of entries per site: spin-up components at even indices, spin-down at
// odd indices.
type Eigenpair struct {
	Value  float64
	Vector []complex128
}

// EigenResult holds the eigenpairs of one solve, eigenvalues ascending.
// Results are never cached: the potential moves between solves.
type EigenResult struct {
	Pairs []Eigenpair
}

// Values returns the eigenvalues in order.
func (r EigenResult) Values() []float64 {
	vals := make([]float64, len(r.Pairs))
	for i, p := range r.Pairs {
		vals[i] = p.Value
	}
	return vals
}

// Assemble builds the dense Hermitian Hamiltonian matrix for the lattice
// model with the given bound parameters.
func Assemble(model *lattice.Model, p lattice.Parameters) *mat.CDense {
	n := model.Dim()
	h := mat.NewCDense(n, n, nil)
	for i := 0; i < model.SiteCount(); i++ {
		setBlock(h, 2*i, 2*i, model.OnSite(i, p))
		if i+1 < model.SiteCount() {
			hop := model.Hopping(p)
			setBlock(h, 2*i, 2*(i+1), hop)
			setBlock(h, 2*(i+1), 2*i, conjTranspose(hop))
		}
	}
	return h
}

// Solve diagonalizes the lattice Hamiltonian with the given parameters and
// returns all eigenpairs sorted by ascending eigenvalue, the eigenvector
// permutation tracking the eigenvalue permutation exactly.
//
// The complex Hermitian matrix H = S + iK is diagonalized through its real
// symmetric embedding [[S, -K], [K, S]]: every eigenpair of H appears exactly
// twice in the embedding, and a real eigenvector (u; v) maps back to the
// complex eigenvector u + iv with its norm preserved. The doubled spectrum is
// then thinned by Gram-Schmidt inside each degenerate cluster, which also
// handles the physically expected spin near-degeneracies.
func Solve(model *lattice.Model, p lattice.Parameters) (EigenResult, error) {
	n := model.Dim()
	h := Assemble(model, p)

	var eigen mat.EigenSym
	if ok := eigen.Factorize(embed(h, n), true); !ok {
		return EigenResult{}, ErrNotConverged
	}

	values := eigen.Values(nil)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return EigenResult{}, fmt.Errorf("%w: %v", ErrNonFinite, v)
		}
	}

	var vectors mat.Dense
	eigen.VectorsTo(&vectors)

	pairs := deembed(values, &vectors, n)
	if len(pairs) != n {
		return EigenResult{}, fmt.Errorf("%w: recovered %d of %d eigenpairs from the embedding",
			ErrNotConverged, len(pairs), n)
	}

	// The factorization already yields ascending eigenvalues, but the
	// ordering contract belongs to this package, not the routine.
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Value < pairs[j].Value })

	return EigenResult{Pairs: pairs}, nil
}

// embed maps H = S + iK to the real symmetric matrix [[S, -K], [K, S]].
// Hermiticity of H makes S symmetric and K antisymmetric, so the embedding
// is symmetric and shares H's spectrum with every eigenvalue doubled.
func embed(h *mat.CDense, n int) *mat.SymDense {
	m := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := real(h.At(i, j))
			m.SetSym(i, j, s)
			m.SetSym(n+i, n+j, s)
		}
		for j := 0; j < n; j++ {
			// Upper-right block, -K. The mirrored lower-left block K is
			// implied by symmetry together with K's antisymmetry.
			m.SetSym(i, n+j, -imag(h.At(i, j)))
		}
	}
	return m
}

// deembed maps the 2n real eigenpairs of the embedding back to n complex
// eigenpairs. Real vectors are taken in ascending eigenvalue order; each is
// first orthogonalized in complex space against the vectors already accepted
// for the same degenerate cluster, and kept only if something new remains.
func deembed(values []float64, vectors *mat.Dense, n int) []Eigenpair {
	scale := math.Max(1, math.Max(math.Abs(values[0]), math.Abs(values[len(values)-1])))
	accepted := make([]Eigenpair, 0, n)

	for j := 0; j < 2*n && len(accepted) < n; j++ {
		z := make([]complex128, n)
		for k := 0; k < n; k++ {
			z[k] = complex(vectors.At(k, j), vectors.At(n+k, j))
		}

		for _, a := range accepted {
			if math.Abs(values[j]-a.Value) > degenTol*scale {
				continue
			}
			ip := dot(a.Vector, z)
			for k := range z {
				z[k] -= ip * a.Vector[k]
			}
		}

		nrm := norm(z)
		if nrm <= acceptTol {
			continue // numerical copy of an accepted vector
		}
		for k := range z {
			z[k] /= complex(nrm, 0)
		}
		accepted = append(accepted, Eigenpair{Value: values[j], Vector: z})
	}
	return accepted
}

func setBlock(h *mat.CDense, row, col int, blk lattice.Block) {
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			h.Set(row+r, col+c, blk[r][c])
		}
	}
}

func conjTranspose(blk lattice.Block) lattice.Block {
	var out lattice.Block
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			v := blk[c][r]
			out[r][c] = complex(real(v), -imag(v))
		}
	}
	return out
}

// dot is the Hermitian inner product <a|b>.
func dot(a, b []complex128) complex128 {
	var sum complex128
	for k := range a {
		sum += complex(real(a[k]), -imag(a[k])) * b[k]
	}
	return sum
}

func norm(z []complex128) float64 {
	var sum float64
	for _, v := range z {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}
