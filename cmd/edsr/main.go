// Package main is the entry point for the EDSR nanowire simulator. It loads
// the device configuration, diagonalizes the nanowire Hamiltonian and renders
// the static figures and the traveling-pulse animation.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/JoelPendleton/EDSR-Simulation/internal/config"
	"github.com/JoelPendleton/EDSR-Simulation/internal/simulation"
	"github.com/JoelPendleton/EDSR-Simulation/pkg/logger"
)

// main orchestrates one full simulation run:
// 1. Loads configuration from environment variables
// 2. Initializes logging
// 3. Builds the lattice system
// 4. Renders the potential shape figure
// 5. Renders the animation of the pulse traversing the wire
// 6. Renders energy levels and wavefunctions of the parked pulse
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
	log.Info().
		Int("sites", cfg.LatticeSites).
		Float64("wire_length_au", cfg.TotalLengthAU).
		Float64("static_field_t", cfg.StaticFieldT).
		Float64("field_gradient_t", cfg.FieldGradientT).
		Msg("Starting EDSR simulation")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sys, err := simulation.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build simulation")
	}

	if err := sys.RenderShape(); err != nil {
		log.Fatal().Err(err).Msg("Failed to render potential shape")
	}

	if err := sys.RenderAnimation(ctx, cfg.FrameCount); err != nil {
		log.Fatal().Err(err).Msg("Failed to render animation")
	}

	// Park the pulse at a quarter of the wire for the static snapshots.
	sys.SetPulseOffset(cfg.TotalLengthAU / 4)
	sys.SetTime(0)

	if err := sys.RenderEnergyLevels("0"); err != nil {
		log.Fatal().Err(err).Msg("Failed to render energy levels")
	}
	if err := sys.RenderWavefunctions("0"); err != nil {
		log.Fatal().Err(err).Msg("Failed to render wavefunctions")
	}

	log.Info().Msg("Simulation complete")
}
