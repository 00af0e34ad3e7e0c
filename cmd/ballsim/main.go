package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/experiment"
	"github.com/san-kum/ballsim/internal/storage"
)

type app struct {
	dataDir  string
	logLevel string
	logger   *log.Logger
	registry *experiment.Registry

	// simulation flags shared by run, compare and live
	configFile      string
	preset          string
	integrator      string
	initialHeight   float64
	initialVelocity float64
	initialTime     float64
	acceleration    float64
	duration        float64
	timeStep        float64

	// output flags
	noSave    bool
	sentences bool
	exact     bool
	fps       int
	svgWidth  int
	svgHeight int

	// sweep flags
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
}

func main() {
	a := &app{registry: experiment.NewRegistry()}

	if err := newRootCmd(a).Execute(); err != nil {
		if a.logger != nil {
			a.logger.Error(err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ballsim",
		Short:         "ball throw simulator (semi-implicit Euler)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.dataDir, "data", ".ballsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a simulation and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runSimulation,
	}
	a.simFlags(runCmd)
	runCmd.Flags().BoolVar(&a.noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&a.sentences, "print", false, "print every state")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  a.listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the states of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  a.showRun,
	}
	showCmd.Flags().BoolVar(&a.sentences, "sentences", false, "print states as sentences")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot height and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  a.plotRun,
	}
	plotCmd.Flags().BoolVar(&a.exact, "exact", true, "overlay the analytic solution")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export height over time as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportSVG,
	}
	exportSVGCmd.Flags().BoolVar(&a.exact, "exact", true, "overlay the analytic solution")
	exportSVGCmd.Flags().IntVar(&a.svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&a.svgHeight, "height", 400, "image height")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators against the analytic solution",
		RunE:  a.compareIntegrators,
	}
	a.simFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  a.listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a stored run, or a fresh simulation, in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runLive,
	}
	a.simFlags(liveCmd)
	liveCmd.Flags().IntVar(&a.fps, "fps", 0, "frames per second (default: real time)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run every throw of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter over a range",
		RunE:  a.runSweep,
	}
	a.simFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&a.sweepParam, "param", "initial_height", "parameter to vary")
	sweepCmd.Flags().Float64Var(&a.sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&a.sweepMax, "max", 50, "last value")
	sweepCmd.Flags().IntVar(&a.sweepSteps, "steps", 10, "number of values")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd,
		compareCmd, presetsCmd, liveCmd, scenarioCmd, sweepCmd)

	return rootCmd
}

func (a *app) simFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&a.configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&a.preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&a.integrator, "integrator", def.Integrator, "integrator (semi-implicit, explicit)")
	cmd.Flags().Float64Var(&a.initialHeight, "h0", def.Initial.Height, "initial height [m]")
	cmd.Flags().Float64Var(&a.initialVelocity, "v0", def.Initial.Velocity, "initial velocity [m/s]")
	cmd.Flags().Float64Var(&a.initialTime, "t0", def.Initial.Time, "initial time [s]")
	cmd.Flags().Float64Var(&a.acceleration, "accel", def.Acceleration, "acceleration [m/s^2], negative is down")
	cmd.Flags().Float64Var(&a.duration, "time", def.Duration, "simulated duration [s]")
	cmd.Flags().Float64Var(&a.timeStep, "dt", def.TimeStep, "time step [s]")
}

func (a *app) setupLogger() error {
	level, err := log.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "ballsim",
		ReportTimestamp: level == log.DebugLevel,
		TimeFormat:      time.TimeOnly,
	})
	return nil
}

func (a *app) store() *storage.Store {
	return storage.New(a.dataDir, a.logger)
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func (a *app) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if a.preset != "" {
		cfg = config.GetPreset(a.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", a.preset, config.ListPresets())
		}
	}

	if a.configFile != "" {
		loaded, err := config.LoadOver(a.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = a.integrator
	}
	if flags.Changed("h0") {
		cfg.Initial.Height = a.initialHeight
	}
	if flags.Changed("v0") {
		cfg.Initial.Velocity = a.initialVelocity
	}
	if flags.Changed("t0") {
		cfg.Initial.Time = a.initialTime
	}
	if flags.Changed("accel") {
		cfg.Acceleration = a.acceleration
	}
	if flags.Changed("time") {
		cfg.Duration = a.duration
	}
	if flags.Changed("dt") {
		cfg.TimeStep = a.timeStep
	}

	a.logger.Debug("resolved config", "preset", a.preset, "file", a.configFile, "params", cfg.Params(), "integrator", cfg.Integrator)
	return cfg, nil
}
