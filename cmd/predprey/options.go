package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/export"
)

// resolveConfig layers defaults, the preset, the config file and finally any
// flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		lg.Debug("preset %s: %+v", preset, cfg.Params)
	}

	if configFile != "" {
		if err := cfg.Merge(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		lg.Debug("config %s: %+v", configFile, cfg.Params)
	}

	f := cmd.Flags()
	floats := []struct {
		name string
		dst  *float64
		val  float64
	}{
		{"alpha", &cfg.Params.Alpha, alpha},
		{"beta", &cfg.Params.Beta, beta},
		{"delta", &cfg.Params.Delta, delta},
		{"gamma", &cfg.Params.Gamma, gamma},
		{"x0", &cfg.Params.X0, x0},
		{"y0", &cfg.Params.Y0, y0},
		{"time", &cfg.Params.TMax, tMax},
		{"rtol", &cfg.Solver.RTol, rtol},
		{"atol", &cfg.Solver.ATol, atol},
	}
	for _, o := range floats {
		if f.Changed(o.name) {
			*o.dst = o.val
		}
	}
	if f.Changed("points") {
		cfg.Params.Points = points
	}
	if f.Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}
	if f.Lookup("fps") != nil && f.Changed("fps") {
		cfg.Render.FPS = frameRate
	}
	if f.Lookup("seed") != nil && f.Changed("seed") {
		cfg.Render.Seed = seed
	}
	if f.Lookup("theme") != nil && f.Changed("theme") {
		cfg.Render.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// size returns the command's width and height flags.
func size(cmd *cobra.Command) (int, int) {
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	return w, h
}

func simulate(ctx context.Context, cfg *config.Config) (*dynamo.Trajectory, error) {
	p := cfg.Params
	lg.Info("simulating t in [0, %g] with %d points (alpha=%g beta=%g delta=%g gamma=%g, x0=%g y0=%g)",
		p.TMax, p.Points, p.Alpha, p.Beta, p.Delta, p.Gamma, p.X0, p.Y0)

	e, err := experiment.New(p, cfg.Solver)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tr, err := e.Run(ctx)
	if err != nil {
		return nil, err
	}

	lg.Debug("solver: %d steps, %d rejected, %d evaluations in %v",
		tr.Stats.Steps, tr.Stats.Rejected, tr.Stats.Evaluations, time.Since(start))
	if t, ok := tr.ExtinctionTime(); ok {
		lg.Warn("%s at t=%.3f", tr.Regime, t)
	}
	return tr, nil
}

// loadTrajectory reads --input when given and simulates otherwise.
func loadTrajectory(cmd *cobra.Command) (*dynamo.Trajectory, *config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		tr, err := export.ReadCSV(f)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", inputFile, err)
		}
		lg.Info("loaded %d samples from %s", tr.Len(), inputFile)
		return tr, cfg, nil
	}

	tr, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return tr, cfg, nil
}
