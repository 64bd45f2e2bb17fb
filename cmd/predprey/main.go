package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/predprey/internal/logger"
)

var (
	alpha      float64
	beta       float64
	delta      float64
	gamma      float64
	x0         float64
	y0         float64
	tMax       float64
	points     int
	rtol       float64
	atol       float64
	maxSteps   int
	configFile string
	preset     string
	verbose    bool
	// Rendering
	frameRate int
	seed      int64
	theme     string
	// Input and output
	inputFile  string
	outputFile string
	format     string

	lg = logger.Default()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		lg.Error("%v", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Flag variables are rebound on every
// call, so each tree starts from the defaults. Size flags differ per command
// and are read back with size().
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "predprey",
		Short:         "Lotka-Volterra predator-prey simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lg = logger.New(cmd.ErrOrStderr(), verbose)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&alpha, "alpha", 0.33, "prey birth rate")
	pf.Float64Var(&beta, "beta", 0.02, "predation rate")
	pf.Float64Var(&delta, "delta", 0.02, "predator reproduction per prey eaten")
	pf.Float64Var(&gamma, "gamma", 0.3, "predator death rate")
	pf.Float64Var(&x0, "x0", 100, "initial prey population")
	pf.Float64Var(&y0, "y0", 20, "initial predator population")
	pf.Float64Var(&tMax, "time", 10, "simulation horizon")
	pf.IntVar(&points, "points", 100, "number of output samples")
	pf.Float64Var(&rtol, "rtol", 1e-3, "solver relative tolerance")
	pf.Float64Var(&atol, "atol", 1e-6, "solver absolute tolerance")
	pf.IntVar(&maxSteps, "max-steps", 1_000_000, "solver step budget")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate and print a summary with the population chart",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addChartFlags(runCmd)

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "plot both populations over time",
		Args:  cobra.NoArgs,
		RunE:  plotChart,
	}
	addChartFlags(chartCmd)
	addInputFlag(chartCmd)

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "play the populations as a field of rabbits and foxes",
		Args:  cobra.NoArgs,
		RunE:  animate,
	}
	animateCmd.Flags().Int("width", 60, "field width in cells")
	animateCmd.Flags().Int("height", 20, "field height in cells")
	animateCmd.Flags().IntVar(&frameRate, "fps", 10, "frames per second")
	animateCmd.Flags().Int64Var(&seed, "seed", 1, "random seed for animal placement")
	animateCmd.Flags().StringVar(&theme, "theme", "default", "color theme")
	addInputFlag(animateCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase portrait of predators against prey",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	phaseCmd.Flags().Int("width", 60, "plot width")
	phaseCmd.Flags().Int("height", 20, "plot height")
	addInputFlag(phaseCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "cycle period, equilibrium and invariant drift",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write the trajectory as csv or json to stdout",
		Args:  cobra.NoArgs,
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "csv", "output format (csv, json)")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "write an SVG line chart of the trajectory",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")
	svgCmd.Flags().Int("width", 800, "image width")
	svgCmd.Flags().Int("height", 500, "image height")
	addInputFlag(svgCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, chartCmd, animateCmd, phaseCmd, analyzeCmd, exportCmd, svgCmd, presetsCmd)
	return rootCmd
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "chart width (0 = one column per sample)")
	cmd.Flags().Int("height", 15, "chart height")
}

func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "render a trajectory csv written by export instead of simulating")
}
