package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/export"
	"github.com/san-kum/predprey/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "samples\t%d\n", tr.Len())
	fmt.Fprintf(w, "regime\t%s\n", tr.Regime)
	if t, ok := tr.ExtinctionTime(); ok {
		fmt.Fprintf(w, "extinction\tt=%.3f (sample %d)\n", t, tr.ExtinctionIndex)
	}
	fmt.Fprintf(w, "solver\t%d steps, %d rejected, %d evaluations\n", tr.Stats.Steps, tr.Stats.Rejected, tr.Stats.Evaluations)
	last := tr.Len() - 1
	fmt.Fprintf(w, "final\tprey %s, predators %s\n",
		humanize.CommafWithDigits(tr.Prey[last], 3), humanize.CommafWithDigits(tr.Predators[last], 3))

	names := make([]string, 0, len(tr.Metrics))
	for name := range tr.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, tr.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nprey      %s\n", viz.Sparkline(tr.Prey, 40))
	fmt.Fprintf(out, "predators %s\n\n", viz.Sparkline(tr.Predators, 40))

	width, height := size(cmd)
	fmt.Fprintln(out, viz.Chart(tr, width, height))
	return nil
}

func plotChart(cmd *cobra.Command, args []string) error {
	tr, _, err := loadTrajectory(cmd)
	if err != nil {
		return err
	}
	width, height := size(cmd)
	fmt.Fprintln(cmd.OutOrStdout(), viz.Chart(tr, width, height))
	return nil
}

func animate(cmd *cobra.Command, args []string) error {
	tr, cfg, err := loadTrajectory(cmd)
	if err != nil {
		return err
	}

	width, height := cfg.Render.Width, cfg.Render.Height
	if cmd.Flags().Changed("width") || cmd.Flags().Changed("height") {
		width, height = size(cmd)
	}

	opts := viz.AnimationOptions{
		Width:  width,
		Height: height,
		FPS:    cfg.Render.FPS,
		Seed:   cfg.Render.Seed,
		Theme:  viz.GetTheme(cfg.Render.Theme),
		Solver: cfg.Solver,
	}
	if inputFile == "" {
		opts.Params = &cfg.Params
	}
	model := viz.NewAnimation(tr, opts)
	p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
	_, err = p.Run()
	return err
}

func phasePlot(cmd *cobra.Command, args []string) error {
	tr, cfg, err := loadTrajectory(cmd)
	if err != nil {
		return err
	}

	portrait := analysis.NewPhasePortrait(tr)
	if eq, ok := cfg.Params.Model().Equilibrium(); ok && inputFile == "" {
		portrait.MarkEquilibrium(eq)
	}

	width, height := size(cmd)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "predators ↑  prey →   (o start, + equilibrium)")
	fmt.Fprint(out, portrait.ASCII(width, height))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	tr, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	model := cfg.Params.Model()
	dt := tr.Times[1] - tr.Times[0]
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	if eq, ok := model.Equilibrium(); ok {
		fmt.Fprintf(w, "equilibrium\tprey %.3f, predators %.3f\n", eq[0], eq[1])
		if period, ok := analysis.MeanPeriod(analysis.UpCrossings(tr.Times, tr.Prey, eq[0])); ok {
			fmt.Fprintf(w, "cycle period (crossings)\t%.3f\n", period)
		}
	} else {
		fmt.Fprintf(w, "equilibrium\tnone (beta or delta is zero)\n")
	}
	if period, ok := model.SmallOscillationPeriod(); ok {
		fmt.Fprintf(w, "small-orbit period\t%.3f\n", period)
	}

	// Only the sample range before any extinction carries the cycle.
	end := tr.Len()
	if tr.ExtinctionIndex >= 0 {
		end = tr.ExtinctionIndex
	}
	for _, s := range []struct {
		name   string
		series []float64
	}{
		{"prey", tr.Prey[:end]},
		{"predators", tr.Predators[:end]},
	} {
		if period, ok := analysis.DominantPeriod(s.series, dt); ok {
			fmt.Fprintf(w, "dominant period (%s)\t%.3f\n", s.name, period)
		} else {
			fmt.Fprintf(w, "dominant period (%s)\tn/a\n", s.name)
		}
	}

	fmt.Fprintf(w, "peak prey\t%.3f\n", tr.Metrics["peak_prey"])
	fmt.Fprintf(w, "peak predators\t%.3f\n", tr.Metrics["peak_predators"])
	fmt.Fprintf(w, "invariant drift\t%.3e\n", tr.Metrics["invariant_drift"])
	fmt.Fprintf(w, "regime\t%s\n", tr.Regime)
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := simulate(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.WriteCSV(cmd.OutOrStdout(), tr)
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), export.NewDocument(cfg.Params, cfg.Solver, tr))
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
}

func exportSVG(cmd *cobra.Command, args []string) error {
	tr, _, err := loadTrajectory(cmd)
	if err != nil {
		return err
	}

	width, height := size(cmd)
	svg := export.ChartSVG(tr, width, height)
	if svg == "" {
		return fmt.Errorf("cannot draw a %dx%d chart of %d samples", width, height, tr.Len())
	}

	if outputFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outputFile, []byte(svg), 0644); err != nil {
		return err
	}
	lg.Info("wrote %s", outputFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION\tALPHA\tBETA\tDELTA\tGAMMA\tX0\tY0")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\n", name, p.Description,
			p.Params.Alpha, p.Params.Beta, p.Params.Delta, p.Params.Gamma, p.Params.X0, p.Params.Y0)
	}
	return w.Flush()
}
