// Package potential evaluates the confinement potential of the nanowire: an
// infinite square well containing a Gaussian pulse whose center travels along
// the wire at the configured pulse velocity.
package potential

import (
	"math"

	"github.com/JoelPendleton/EDSR-Simulation/internal/config"
)

// PulseAmplitude is the height of the traveling Gaussian, in hartrees.
const PulseAmplitude = 0.002

// sigmaDivisor sets the pulse width as a fraction of the wire length.
const sigmaDivisor = 14.0

// Model evaluates the potential energy along the wire. Simulation time is an
// explicit argument on every method; the model carries no mutable state, so
// one evaluation cannot affect another.
type Model struct {
	totalLengthAU    float64
	latticeSpacingAU float64
	pulseVelocityAU  float64
	centerOffsetAU   float64
	wallEnergy       float64
}

// New builds a potential model. centerOffsetAU is the pulse center at t=0:
// zero for an animation entering from the wire's edge, a quarter of the wire
// length for a centered static snapshot.
func New(cfg *config.Config, centerOffsetAU float64) *Model {
	return &Model{
		totalLengthAU:    cfg.TotalLengthAU,
		latticeSpacingAU: cfg.LatticeSpacingAU,
		pulseVelocityAU:  cfg.PulseVelocityAU,
		centerOffsetAU:   centerOffsetAU,
		wallEnergy:       cfg.WallEnergy,
	}
}

// PulseCenter returns the pulse center position in Bohr radii after t seconds
// of elapsed simulation time.
func (m *Model) PulseCenter(t float64) float64 {
	return m.centerOffsetAU + m.pulseVelocityAU*t
}

// GaussianPulse evaluates the unit-height Gaussian of width sigma centered on
// the traveling pulse, at position x (Bohr radii) and time t (seconds).
func (m *Model) GaussianPulse(x, sigma, t float64) float64 {
	d := x - m.PulseCenter(t)
	return math.Exp(-d * d / (2 * sigma * sigma))
}

// Energy returns the potential energy in hartrees at position x (Bohr radii)
// and time t (seconds). The closed interval [0, L] is inside the well;
// anything outside hits the wall sentinel. The result is always finite.
func (m *Model) Energy(x, t float64) float64 {
	if x < 0 || x > m.totalLengthAU {
		return m.wallEnergy
	}
	return PulseAmplitude * m.GaussianPulse(x, m.totalLengthAU/sigmaDivisor, t)
}

// SiteEnergy evaluates the potential at lattice site i. The discretization
// layer indexes by site, so the index is rescaled to a physical coordinate
// before evaluation.
func (m *Model) SiteEnergy(i int, t float64) float64 {
	return m.Energy(float64(i)*m.latticeSpacingAU, t)
}
