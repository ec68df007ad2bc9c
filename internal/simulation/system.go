// Package simulation wires the lattice, potential, solver, analysis and
// visualization modules into one runnable system.
package simulation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/JoelPendleton/EDSR-Simulation/internal/config"
	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/analysis"
	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/lattice"
	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/potential"
	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/solver"
	"github.com/JoelPendleton/EDSR-Simulation/internal/modules/visualization"
	"github.com/JoelPendleton/EDSR-Simulation/pkg/units"
)

// Headroom factors for the fixed animation axes, applied to the extrema of
// the first frame.
const (
	densityAxisHeadroom = 1.2
	energyAxisHeadroom  = 1.5
)

// System holds one simulated nanowire. The lattice is built once; the
// potential, and with it the Hamiltonian, changes with the pulse time and
// the pulse center offset.
type System struct {
	cfg      *config.Config
	log      zerolog.Logger
	model    *lattice.Model
	renderer *visualization.Renderer

	time         float64
	centerOffset float64
}

// New builds a system from the configuration. The pulse starts centered at
// a quarter of the wire, where the confining dip traps the qubit states.
func New(cfg *config.Config, log zerolog.Logger) (*System, error) {
	model, err := lattice.Build(cfg.LatticeSites)
	if err != nil {
		return nil, fmt.Errorf("building lattice: %w", err)
	}
	return &System{
		cfg:          cfg,
		log:          log.With().Str("component", "simulation").Logger(),
		model:        model,
		renderer:     visualization.NewRenderer(cfg.FiguresDir, log),
		centerOffset: cfg.TotalLengthAU / 4,
	}, nil
}

// SetTime sets the pulse time used by subsequent solves.
func (s *System) SetTime(t float64) { s.time = t }

// SetPulseOffset moves the initial pulse center.
func (s *System) SetPulseOffset(offset float64) { s.centerOffset = offset }

// parameters binds the field couplings and the current potential to the
// lattice. The field terms are Zeeman energies, -g*muB*B/2 in hartree, with
// the slanting field growing linearly along the wire.
func (s *System) parameters() lattice.Parameters {
	pot := potential.New(s.cfg, s.centerOffset)
	t := s.time
	return lattice.Parameters{
		A: -0.5 * units.GFactor * units.BohrMagneton * units.Hbar * units.TeslaToAtomic(s.cfg.StaticFieldT),
		B: -0.5 * units.GFactor * units.BohrMagneton * units.Hbar * units.TeslaToAtomic(s.cfg.FieldGradientT),
		C: 0.5 * units.Hbar * units.Hbar / units.Mass,
		V: func(site int) float64 { return pot.SiteEnergy(site, t) },
	}
}

// Eigenstates diagonalizes the Hamiltonian at the current time and pulse
// offset.
func (s *System) Eigenstates() (solver.EigenResult, error) {
	return solver.Solve(s.model, s.parameters())
}

// xCoordinates returns the site positions in atomic units.
func (s *System) xCoordinates() []float64 {
	n := s.cfg.LatticeSites
	return floats.Span(make([]float64, n), 0, float64(n-1)*s.cfg.LatticeSpacingAU)
}

// siteEnergies samples the current potential at every site.
func (s *System) siteEnergies() []float64 {
	pot := potential.New(s.cfg, s.centerOffset)
	v := make([]float64, s.cfg.LatticeSites)
	for i := range v {
		v[i] = pot.SiteEnergy(i, s.time)
	}
	return v
}

// RenderShape writes the current potential profile figure.
func (s *System) RenderShape() error {
	if err := s.renderer.Shape(s.xCoordinates(), s.siteEnergies()); err != nil {
		return fmt.Errorf("rendering shape: %w", err)
	}
	return nil
}

// RenderEnergyLevels writes the three lowest energies over the current
// potential profile. The first two form the qubit subspace; the third is the
// lowest level outside it.
func (s *System) RenderEnergyLevels(tag string) error {
	res, err := s.Eigenstates()
	if err != nil {
		return fmt.Errorf("rendering energy levels: %w", err)
	}
	if len(res.Pairs) < 3 {
		return fmt.Errorf("rendering energy levels: %w", analysis.ErrInsufficientStates)
	}
	err = s.renderer.EnergyLevels(s.xCoordinates(), s.siteEnergies(),
		res.Pairs[0].Value, res.Pairs[1].Value, res.Pairs[2].Value, tag)
	if err != nil {
		return fmt.Errorf("rendering energy levels: %w", err)
	}
	return nil
}

// RenderWavefunctions writes the probability densities of the two lowest
// orbital levels at the current time.
func (s *System) RenderWavefunctions(tag string) error {
	res, err := s.Eigenstates()
	if err != nil {
		return fmt.Errorf("rendering wavefunctions: %w", err)
	}
	d, err := analysis.ProbabilityDensities(res, s.cfg.LatticeSites)
	if err != nil {
		return fmt.Errorf("rendering wavefunctions: %w", err)
	}
	if err := s.renderer.Wavefunctions(s.xCoordinates(), d.Ground, d.Excited, tag); err != nil {
		return fmt.Errorf("rendering wavefunctions: %w", err)
	}
	return nil
}

// RenderAnimation sweeps the pulse over one drive period, renders a frame
// per step and encodes the frames into the configured video. The pulse
// starts at the left edge of the wire; every frame re-solves the full
// eigenproblem at its own time. Axis ranges are fixed from the first frame.
func (s *System) RenderAnimation(ctx context.Context, frameCount int) error {
	s.SetPulseOffset(0)
	s.SetTime(0)

	xNM := make([]float64, s.cfg.LatticeSites)
	for i, x := range s.xCoordinates() {
		xNM[i] = units.AtomicLengthToNanometers(x)
	}

	var lim visualization.FrameLimits
	period := 1 / s.cfg.PulseFrequencyHz

	for i := 0; i < frameCount; i++ {
		t := period * float64(i) / float64(frameCount)
		s.SetTime(t)

		res, err := s.Eigenstates()
		if err != nil {
			return fmt.Errorf("rendering animation frame %d: %w", i, err)
		}
		d, err := analysis.ProbabilityDensities(res, s.cfg.LatticeSites)
		if err != nil {
			return fmt.Errorf("rendering animation frame %d: %w", i, err)
		}

		vEV := make([]float64, s.cfg.LatticeSites)
		for j, v := range s.siteEnergies() {
			vEV[j] = units.HartreeToElectronvolt(v)
		}

		if i == 0 {
			lim = visualization.FrameLimits{
				XMaxNM: xNM[len(xNM)-1],
				PsiMax: densityAxisHeadroom * maxDensity(d),
				EMaxEV: energyAxisHeadroom * floats.Max(vEV),
			}
		}

		e1 := units.HartreeToElectronvolt(res.Pairs[0].Value)
		e2 := units.HartreeToElectronvolt(res.Pairs[2].Value)
		if err := s.renderer.Frame(i, t, xNM, d.Ground, d.Excited, vEV, e1, e2, lim); err != nil {
			return fmt.Errorf("rendering animation frame %d: %w", i, err)
		}
		if i%50 == 0 {
			s.log.Info().Int("frame", i).Int("total", frameCount).Msg("animation progress")
		}
	}

	if err := s.renderer.EncodeVideo(ctx, s.cfg.VideoPath); err != nil {
		return fmt.Errorf("encoding animation: %w", err)
	}
	return nil
}

func maxDensity(d analysis.Densities) float64 {
	return floats.Max([]float64{floats.Max(d.Ground), floats.Max(d.Excited)})
}
