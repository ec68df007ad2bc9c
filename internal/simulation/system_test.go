package simulation

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoelPendleton/EDSR-Simulation/internal/config"
	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/analysis"
)

// testSystem builds a system on a reduced lattice to keep the dense
// eigenproblems in tests fast.
func testSystem(t *testing.T, sites int) *System {
	t.Helper()
	t.Setenv("EDSR_LATTICE_SITES", strconv.Itoa(sites))
	t.Setenv("EDSR_FIGURES_DIR", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	sys, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return sys
}

func TestQubitSplittingMuchSmallerThanOrbitalGap(t *testing.T) {
	// With the pulse parked at a quarter of the wire, the two lowest states
	// form a spin qubit: their Zeeman splitting is orders of magnitude below
	// the gap to the next orbital level.
	sys := testSystem(t, 30)

	res, err := sys.Eigenstates()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Pairs), 3)

	qubitSplitting := res.Pairs[1].Value - res.Pairs[0].Value
	orbitalGap := res.Pairs[2].Value - res.Pairs[1].Value
	assert.Greater(t, qubitSplitting, 0.0)
	assert.Less(t, qubitSplitting, 0.1*orbitalGap)
}

func TestZeroFieldSpinPairsDegenerate(t *testing.T) {
	t.Setenv("EDSR_STATIC_FIELD_T", "0")
	t.Setenv("EDSR_FIELD_GRADIENT_T", "0")
	sys := testSystem(t, 24)

	res, err := sys.Eigenstates()
	require.NoError(t, err)
	require.Len(t, res.Pairs, 48)

	scale := res.Pairs[len(res.Pairs)-1].Value
	for i := 0; i < len(res.Pairs); i += 2 {
		gap := res.Pairs[i+1].Value - res.Pairs[i].Value
		assert.Less(t, gap, 1e-9*scale, "pair starting at %d", i)
	}
}

func TestProbabilityConservedAsPulseMoves(t *testing.T) {
	sys := testSystem(t, 30)
	sys.SetPulseOffset(0)

	period := 1 / sys.cfg.PulseFrequencyHz
	for _, frac := range []float64{0, 0.25, 0.5, 0.75} {
		sys.SetTime(frac * period)

		res, err := sys.Eigenstates()
		require.NoError(t, err)

		d, err := analysis.ProbabilityDensities(res, sys.cfg.LatticeSites)
		require.NoError(t, err)

		var sumG, sumE float64
		for i := range d.Ground {
			sumG += d.Ground[i]
			sumE += d.Excited[i]
		}
		assert.InDelta(t, 2.0, sumG, 1e-9, "ground density at t=%g", frac*period)
		assert.InDelta(t, 2.0, sumE, 1e-9, "excited density at t=%g", frac*period)
	}
}

func TestRenderStaticFigures(t *testing.T) {
	sys := testSystem(t, 20)

	require.NoError(t, sys.RenderShape())
	require.NoError(t, sys.RenderEnergyLevels("0"))
	require.NoError(t, sys.RenderWavefunctions("0"))

	for _, rel := range []string{
		"shape.png",
		filepath.Join("Energies", "energies-0.svg"),
		filepath.Join("PDFs", "pdf-0.svg"),
	} {
		info, err := os.Stat(filepath.Join(sys.cfg.FiguresDir, rel))
		require.NoError(t, err, rel)
		assert.Greater(t, info.Size(), int64(0), rel)
	}
}
