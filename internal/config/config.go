// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/JoelPendleton/EDSR-Simulation/pkg/units"
)

// ErrInvalidConfig marks configuration errors. They are rejected at load
// time, never deferred to solve time.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// minWallEnergy is the smallest acceptable wall sentinel, in hartrees. The
// wall must dominate every physically attainable eigenvalue by orders of
// magnitude; the energy spectrum of this system lives well below 1 hartree.
const minWallEnergy = 1e6

// Config holds the simulation configuration. SI inputs are converted to
// atomic units once, at load time; everything downstream reads the derived
// atomic-unit values.
type Config struct {
	WireLengthM      float64 // physical wire length, meters
	LatticeSites     int     // number of lattice sites along the wire
	StaticFieldT     float64 // static magnetic field B_0, teslas
	FieldGradientT   float64 // slanting-field gradient b_sl, teslas
	PulseFrequencyHz float64 // traveling-pulse frequency, Hz
	FrameCount       int     // animation frames per pulse traversal
	WallEnergy       float64 // well-wall sentinel, hartrees
	FiguresDir       string  // output directory for static figures
	VideoPath        string  // output path for the animation video
	LogLevel         string

	// Derived quantities, populated from the fields above.
	TotalLengthAU    float64 // wire length in Bohr radii
	LatticeSpacingAU float64 // distance between lattice sites, Bohr radii
	PulseVelocityAU  float64 // pulse speed, Bohr radii per second
}

// Default returns the configuration of the reference device: a 7820 nm wire
// with 100 lattice sites, a 100 mT static field, a 250 mT slanting field and
// a 240 Hz pulse.
func Default() *Config {
	cfg := &Config{
		WireLengthM:      7820e-9,
		LatticeSites:     100,
		StaticFieldT:     0.100,
		FieldGradientT:   0.250,
		PulseFrequencyHz: 240,
		FrameCount:       200,
		WallEnergy:       999999999,
		FiguresDir:       "./figures",
		VideoPath:        "wavefunction-animation.mp4",
		LogLevel:         "info",
	}
	cfg.derive()
	return cfg
}

// Load reads configuration from environment variables on top of the defaults.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Default()

	var err error
	if cfg.WireLengthM, err = getEnvFloat("EDSR_WIRE_LENGTH_M", cfg.WireLengthM); err != nil {
		return nil, err
	}
	if cfg.LatticeSites, err = getEnvInt("EDSR_LATTICE_SITES", cfg.LatticeSites); err != nil {
		return nil, err
	}
	if cfg.StaticFieldT, err = getEnvFloat("EDSR_STATIC_FIELD_T", cfg.StaticFieldT); err != nil {
		return nil, err
	}
	if cfg.FieldGradientT, err = getEnvFloat("EDSR_FIELD_GRADIENT_T", cfg.FieldGradientT); err != nil {
		return nil, err
	}
	if cfg.PulseFrequencyHz, err = getEnvFloat("EDSR_PULSE_FREQUENCY_HZ", cfg.PulseFrequencyHz); err != nil {
		return nil, err
	}
	if cfg.FrameCount, err = getEnvInt("EDSR_FRAME_COUNT", cfg.FrameCount); err != nil {
		return nil, err
	}
	if cfg.WallEnergy, err = getEnvFloat("EDSR_WALL_ENERGY", cfg.WallEnergy); err != nil {
		return nil, err
	}
	cfg.FiguresDir = getEnv("EDSR_FIGURES_DIR", cfg.FiguresDir)
	cfg.VideoPath = getEnv("EDSR_VIDEO_PATH", cfg.VideoPath)
	cfg.LogLevel = getEnv("EDSR_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.derive()
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.LatticeSites <= 0 {
		return fmt.Errorf("%w: lattice sites must be positive, got %d", ErrInvalidConfig, c.LatticeSites)
	}
	if c.WireLengthM <= 0 {
		return fmt.Errorf("%w: wire length must be positive, got %g m", ErrInvalidConfig, c.WireLengthM)
	}
	if c.PulseFrequencyHz <= 0 {
		return fmt.Errorf("%w: pulse frequency must be positive, got %g Hz", ErrInvalidConfig, c.PulseFrequencyHz)
	}
	if c.FrameCount <= 0 {
		return fmt.Errorf("%w: frame count must be positive, got %d", ErrInvalidConfig, c.FrameCount)
	}
	if c.WallEnergy < minWallEnergy {
		return fmt.Errorf("%w: wall energy %g is too small to stand in for an infinite wall (minimum %g)",
			ErrInvalidConfig, c.WallEnergy, float64(minWallEnergy))
	}
	return nil
}

// derive computes the atomic-unit quantities from the SI inputs.
func (c *Config) derive() {
	c.TotalLengthAU = c.WireLengthM / units.BohrRadiusSI
	c.LatticeSpacingAU = c.TotalLengthAU / float64(c.LatticeSites)
	c.PulseVelocityAU = c.PulseFrequencyHz * c.TotalLengthAU
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
	}
	return f, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return n, nil
}
