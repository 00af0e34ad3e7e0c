package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/automation"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/experiment"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/storage"
	"github.com/san-kum/ballsim/internal/viz"
)

// stateLogger traces accepted states at debug level.
type stateLogger struct {
	logger *log.Logger
}

func (s stateLogger) OnState(st dynamo.KinematicState, step int) {
	s.logger.Debug("state", "step", step, "t", st.Time, "h", st.Height, "v", st.Velocity)
}

func (a *app) runSimulation(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return err
	}

	name := cfg.Name
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		name = "throw"
	}

	start := time.Now()
	result, err := experiment.Run(a.registry, cfg, stateLogger{a.logger})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	p := cfg.Params()
	if last, ok := result.Trajectory.Last(); ok && !last.IsFinite() {
		a.logger.Warn("trajectory contains non-finite values", "last", last)
	}

	fmt.Fprintln(out, viz.Summary(fmt.Sprintf("%s (%s)", name, cfg.Integrator), p, result))
	if a.sentences {
		if err := viz.WriteSentences(out, result.Trajectory); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "completed in %v\n", elapsed)

	if a.noSave {
		return nil
	}

	st := a.store()
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, cfg.Integrator, p, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "run id: %s\n", runID)
	return nil
}

func (a *app) listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	runs, err := a.store().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINTEG\tH0\tV0\tACCEL\tDT\tSTATES\tGROUNDED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%g\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.InitialHeight,
			run.InitialVelocity,
			run.Acceleration,
			run.TimeStep,
			run.Steps,
			run.Grounded,
		)
	}

	return w.Flush()
}

func (a *app) loadRun(runID string) (*storage.RunMetadata, dynamo.Trajectory, error) {
	st := a.store()
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, tr, nil
}

func (a *app) showRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	_, tr, err := a.loadRun(args[0])
	if err != nil {
		return err
	}
	if a.sentences {
		return viz.WriteSentences(out, tr)
	}
	return viz.WriteTable(out, tr)
}

func (a *app) plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, tr, err := a.loadRun(args[0])
	if err != nil {
		return err
	}
	if len(tr) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "integrator: %s\n", meta.Integrator)
	fmt.Fprintf(out, "states: %d\n\n", len(tr))

	if !a.exact {
		fmt.Fprintln(out, viz.PlotHeights(tr, nil))
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.PlotVelocities(tr))
		return nil
	}

	cmp := analysis.Compare(meta.Params(), tr)
	fmt.Fprintln(out, viz.PlotHeights(tr, cmp.Exact))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.PlotVelocities(tr))
	fmt.Fprintf(out, "\nmax |numerical - exact|: %.6f m (rms %.6f m)\n", cmp.MaxAbsError, cmp.RMSError)
	return nil
}

func (a *app) exportJSON(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, tr, err := a.loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(out, meta, tr)
}

func (a *app) exportCSV(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	_, tr, err := a.loadRun(args[0])
	if err != nil {
		return err
	}
	if len(tr) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(out, tr)
}

func (a *app) exportSVG(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	meta, tr, err := a.loadRun(args[0])
	if err != nil {
		return err
	}
	if len(tr) < 2 {
		return fmt.Errorf("need at least two states, run has %d", len(tr))
	}

	var exact []float64
	if a.exact {
		exact = analysis.AnalyticHeights(meta.Params(), tr.Times())
	}
	return export.TrajectoryToSVG(out, tr, exact, a.svgWidth, a.svgHeight)
}

func (a *app) compareIntegrators(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = a.registry.ListIntegrators()
	}

	p := cfg.Params()
	fmt.Fprintf(out, "comparing integrators (h0=%.2f v0=%.2f a=%.2f dt=%g duration=%gs)\n\n",
		p.InitialHeight, p.InitialVelocity, p.Acceleration, p.TimeStep, p.Duration)
	fmt.Fprintf(out, "%-14s  %-8s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "states", "final_h", "max_error", "rms_error", "energy_drift")
	fmt.Fprintln(out, strings.Repeat("-", 80))

	for _, name := range names {
		c := cfg.Clone()
		c.Integrator = name

		result, err := experiment.Run(a.registry, c)
		if err != nil {
			fmt.Fprintf(out, "%-14s  error: %v\n", name, err)
			continue
		}

		last, _ := result.Trajectory.Last()
		cmp := analysis.Compare(p, result.Trajectory)
		fmt.Fprintf(out, "%-14s  %-8d  %12.6f  %12.2e  %12.2e  %12.2e\n",
			name, len(result.Trajectory), last.Height, cmp.MaxAbsError, cmp.RMSError, result.Metrics["energy_drift"])
	}

	fmt.Fprintf(out, "\nsemi-implicit error bound over the full duration: %.2e m\n", analysis.GlobalErrorBound(p, p.Duration))
	return nil
}

func (a *app) listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tH0\tV0\tACCEL\tDURATION\tDT")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\n", name, c.Initial.Height, c.Initial.Velocity, c.Acceleration, c.Duration, c.TimeStep)
	}
	return w.Flush()
}

func (a *app) runLive(cmd *cobra.Command, args []string) error {
	var (
		title string
		tr    dynamo.Trajectory
		dt    float64
	)

	if len(args) == 1 {
		meta, loaded, err := a.loadRun(args[0])
		if err != nil {
			return err
		}
		title, tr, dt = meta.ID, loaded, float64(meta.TimeStep)
	} else {
		cfg, err := a.resolveConfig(cmd)
		if err != nil {
			return err
		}
		result, err := experiment.Run(a.registry, cfg)
		if err != nil {
			return err
		}
		title, tr, dt = "live ("+cfg.Integrator+")", result.Trajectory, cfg.TimeStep
	}

	interval := time.Duration(dt * float64(time.Second))
	if a.fps > 0 {
		interval = time.Second / time.Duration(a.fps)
	}

	p := tea.NewProgram(viz.NewReplay(title, tr, interval))
	_, err := p.Run()
	return err
}

func (a *app) runScenario(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := a.store()
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Fprintf(out, "scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Fprintf(out, "%s\n", scenario.Description)
	}
	fmt.Fprintln(out)

	results, err := automation.NewRunner(a.registry, st, a.logger).RunScenario(scenario)
	for _, r := range results {
		fmt.Fprintln(out, viz.Summary(r.Name, r.Config.Params(), r.Result))
		if r.RunID != "" {
			fmt.Fprintf(out, "run id: %s\n", r.RunID)
		}
	}
	return err
}

func (a *app) runSweep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.Sweep{
		Base:      cfg,
		ParamName: a.sweepParam,
		ParamMin:  a.sweepMin,
		ParamMax:  a.sweepMax,
		NumSteps:  a.sweepSteps,
	}

	results, err := automation.NewRunner(a.registry, nil, a.logger).RunSweep(sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTATES\tGROUNDED\tAPEX\tFLIGHT\tIMPACT\tMAX_ERR\n", strings.ToUpper(a.sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%v\t%.3f\t%.3f\t%.3f\t%.2e\n",
			r.ParamValue, r.States, r.Grounded, r.Apex, r.FlightTime, r.ImpactSpeed, r.MaxAbsError)
	}
	return w.Flush()
}
