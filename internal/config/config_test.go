package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDerivedQuantities(t *testing.T) {
	cfg := Default()

	// 7820 nm in units of the Bohr radius.
	assert.InEpsilon(t, 147776.5829455118, cfg.TotalLengthAU, 1e-12)
	assert.InEpsilon(t, 1477.765829455118, cfg.LatticeSpacingAU, 1e-12)
	// The pulse crosses the full wire length 240 times per second.
	assert.InEpsilon(t, 240*cfg.TotalLengthAU, cfg.PulseVelocityAU, 1e-12)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("EDSR_LATTICE_SITES", "50")
	t.Setenv("EDSR_STATIC_FIELD_T", "0.2")
	t.Setenv("EDSR_FIGURES_DIR", "/tmp/figs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.LatticeSites)
	assert.InEpsilon(t, 0.2, cfg.StaticFieldT, 1e-12)
	assert.Equal(t, "/tmp/figs", cfg.FiguresDir)
	// Lattice spacing follows the overridden site count.
	assert.InEpsilon(t, cfg.TotalLengthAU/50, cfg.LatticeSpacingAU, 1e-12)
}

func TestValidateRejectsBadConfigurations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero lattice sites", func(c *Config) { c.LatticeSites = 0 }},
		{"negative lattice sites", func(c *Config) { c.LatticeSites = -10 }},
		{"zero wire length", func(c *Config) { c.WireLengthM = 0 }},
		{"negative pulse frequency", func(c *Config) { c.PulseFrequencyHz = -240 }},
		{"zero frame count", func(c *Config) { c.FrameCount = 0 }},
		{"wall energy below spectrum ceiling", func(c *Config) { c.WallEnergy = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadRejectsMalformedEnvironment(t *testing.T) {
	t.Setenv("EDSR_LATTICE_SITES", "many")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsInvalidSiteCount(t *testing.T) {
	t.Setenv("EDSR_LATTICE_SITES", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
