package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/thermosim/internal/analysis"
	"github.com/san-kum/thermosim/internal/analytic"
	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/model"
	"github.com/san-kum/thermosim/internal/profile"
	"github.com/san-kum/thermosim/internal/sim"
	"github.com/san-kum/thermosim/internal/storage"
	"github.com/san-kum/thermosim/internal/thermo"
	"github.com/san-kum/thermosim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	t0         float64
	t1         float64
	samples    int
	tolerance  float64
	integrator string
	// Physical parameters
	capacity     float64
	conductivity float64
	ambient      float64
	initial      float64
	// Load profile parameters
	level     float64
	low       float64
	high      float64
	stepAt    float64
	mid       float64
	amplitude float64
	period    float64
	// Config file / preset
	configFile string
	preset     string
	// Live view
	frameRate int
	liveDt    float64
	// Sweep
	sweepParam  string
	sweepValues string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "thermosim",
		Short: "processor thermal simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".thermosim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a thermal scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "print system characteristics",
		RunE:  reportCharacteristics,
	}
	addParamFlags(reportCmd)
	reportCmd.Flags().Float64Var(&level, "idle-power", 10, "idle power (W)")
	reportCmd.Flags().Float64Var(&high, "load-power", 80, "full-load power (W)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check the solver against the closed-form constant-power solution",
		RunE:  validateSolver,
	}
	addScenarioFlags(validateCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0.05, "simulated seconds per frame")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "sweep a physical parameter across values",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepParams,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "conductivity", "parameter to sweep (capacity|conductivity)")
	sweepCmd.Flags().StringVar(&sweepValues, "values", "2.5,5,10", "comma-separated values")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, reportCmd, validateCmd, plotCmd, liveCmd, compareCmd,
		sweepCmd, analyzeCmd, listCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&capacity, "capacity", 50, "heat capacity C (J/degC)")
	cmd.Flags().Float64Var(&conductivity, "conductivity", 5, "thermal conductivity k (W/degC)")
	cmd.Flags().Float64Var(&ambient, "ambient", 25, "ambient temperature (degC)")
	cmd.Flags().Float64Var(&initial, "initial", 25, "initial temperature (degC)")
}

func addScenarioFlags(cmd *cobra.Command) {
	addParamFlags(cmd)
	cmd.Flags().Float64Var(&t0, "t0", 0, "span start (s)")
	cmd.Flags().Float64Var(&t1, "t1", 60, "span end (s)")
	cmd.Flags().IntVar(&samples, "samples", 500, "output samples")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "solver tolerance")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler|rk4|rk45)")
	cmd.Flags().Float64Var(&level, "level", 10, "constant power (W, idle scenario)")
	cmd.Flags().Float64Var(&low, "low", 10, "power before the step (W)")
	cmd.Flags().Float64Var(&high, "high", 80, "power after the step (W)")
	cmd.Flags().Float64Var(&stepAt, "step-at", 5, "step time (s)")
	cmd.Flags().Float64Var(&mid, "mid", 45, "sinusoid midpoint (W)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 35, "sinusoid amplitude (W)")
	cmd.Flags().Float64Var(&period, "period", 20, "sinusoid period (s)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges defaults, preset, config file, and CLI flags, in
// increasing priority.
func resolveConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Scenario = scenario
	}

	f := cmd.Flags()
	if f.Changed("t0") {
		cfg.Span.Start = t0
	}
	if f.Changed("t1") {
		cfg.Span.End = t1
	}
	if f.Changed("samples") {
		cfg.Samples = samples
	}
	if f.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("capacity") {
		cfg.Params.HeatCapacity = capacity
	}
	if f.Changed("conductivity") {
		cfg.Params.Conductivity = conductivity
	}
	if f.Changed("ambient") {
		cfg.Params.Ambient = ambient
	}
	if f.Changed("initial") {
		cfg.Params.Initial = initial
	}
	if f.Changed("level") {
		cfg.Load.Level = level
	}
	if f.Changed("low") {
		cfg.Load.Low = low
	}
	if f.Changed("high") {
		cfg.Load.High = high
	}
	if f.Changed("step-at") {
		cfg.Load.StepAt = stepAt
	}
	if f.Changed("mid") {
		cfg.Load.Mid = mid
	}
	if f.Changed("amplitude") {
		cfg.Load.Amplitude = amplitude
	}
	if f.Changed("period") {
		cfg.Load.Period = period
	}

	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	load, err := registry.GetProfile(cfg.Scenario, cfg.Load)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Scenario:   cfg.Scenario,
		Integrator: cfg.Integrator,
		Params:     cfg.Params,
		Solver:     cfg.SolverConfig(),
	})
	metrics := registry.DefaultMetrics(cfg.Params, load.Power(cfg.Span.End))
	if err := exp.Setup(load, integ, metrics); err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", cfg.Scenario)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scenario, cfg.Integrator, cfg.Params, cfg.SolverConfig(), result)
	if err != nil {
		return err
	}

	_, final := result.Trajectory.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d (solver steps: %d)\n", result.Trajectory.Len(), result.Steps)
	fmt.Printf("final temperature: %.2f degC\n", final)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	return nil
}

func reportCharacteristics(cmd *cobra.Command, args []string) error {
	params := thermo.Params{
		HeatCapacity: capacity,
		Conductivity: conductivity,
		Ambient:      ambient,
		Initial:      initial,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	tau := params.TimeConstant()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "PHYSICAL PARAMETERS")
	fmt.Fprintf(w, "  heat capacity (C)\t%.1f J/degC\n", params.HeatCapacity)
	fmt.Fprintf(w, "  thermal conductivity (k)\t%.1f W/degC\n", params.Conductivity)
	fmt.Fprintf(w, "  ambient temperature\t%.1f degC\n", params.Ambient)
	fmt.Fprintf(w, "  initial temperature\t%.1f degC\n", params.Initial)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SYSTEM CHARACTERISTICS")
	fmt.Fprintf(w, "  time constant (tau = C/k)\t%.1f s\n", tau)
	fmt.Fprintf(w, "  63%% response time\t%.1f s\n", params.ResponseTime63())
	fmt.Fprintf(w, "  95%% response time\t%.1f s\n", params.ResponseTime95())
	fmt.Fprintf(w, "  99%% response time\t%.1f s\n", params.ResponseTime99())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEADY-STATE TEMPERATURES")
	fmt.Fprintf(w, "  idle (%.0f W)\t%.1f degC\n", level, params.SteadyState(level))
	fmt.Fprintf(w, "  full load (%.0f W)\t%.1f degC\n", high, params.SteadyState(high))
	fmt.Fprintf(w, "  rise per watt\t%.2f degC/W\n", params.RisePerWatt())

	return w.Flush()
}

func validateSolver(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "idle")
	if err != nil {
		return err
	}

	load, err := cfg.BuildProfile()
	if err != nil {
		return err
	}
	fixed, ok := load.(profile.Fixed)
	if !ok {
		return fmt.Errorf("validation requires a constant-power profile, got %s", load.Name())
	}

	result, err := sim.Solve(context.Background(), cfg.Params, load, cfg.SolverConfig())
	if err != nil {
		return err
	}

	exact := analytic.Series(cfg.Params, result.Trajectory.Times, cfg.Params.Initial, fixed.Level())
	dev := analytic.Compare(cfg.Params, result.Trajectory, cfg.Params.Initial, fixed.Level())

	fmt.Println(viz.PlotComparison(result.Trajectory, exact))
	fmt.Println()
	fmt.Printf("samples:        %d\n", result.Trajectory.Len())
	fmt.Printf("max deviation:  %.3e degC (at t=%.2f s)\n", dev.Max, dev.AtTime)
	fmt.Printf("mean deviation: %.3e degC\n", dev.Mean)

	const bound = 0.01
	if dev.Max >= bound {
		return fmt.Errorf("solver deviation %.3e degC exceeds %.2f degC bound", dev.Max, bound)
	}
	fmt.Printf("within %.2f degC bound\n", bound)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, powers, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", tr.Len())

	fmt.Println(viz.PlotTrajectory(tr, "temperature (degC)"))
	fmt.Println()
	fmt.Println(viz.PlotPower(powers, "power (W)"))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	load, err := registry.GetProfile(cfg.Scenario, cfg.Load)
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	sys, err := model.New(cfg.Params, load)
	if err != nil {
		return err
	}

	m := viz.NewModel(sys, integ, cfg.Scenario, liveDt, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	names := args[1:]

	registry := experiment.NewRegistry()
	load, err := registry.GetProfile(cfg.Scenario, cfg.Load)
	if err != nil {
		return err
	}

	// The closed form anchors the error column for constant-power
	// scenarios; other scenarios only report final temperature and cost.
	fixed, haveExact := load.(profile.Fixed)

	fmt.Printf("comparing integrators for %s (span [%.1f, %.1f], %d samples)\n\n",
		cfg.Scenario, cfg.Span.Start, cfg.Span.End, cfg.Samples)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL degC\tMAX ERR degC\tSTEPS\tTIME")

	for _, name := range names {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		sys, err := model.New(cfg.Params, load)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := sim.New(sys, load, integ).Run(context.Background(), cfg.Params.Initial, cfg.SolverConfig())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		_, final := result.Trajectory.Final()
		errCol := "-"
		if haveExact {
			dev := analytic.Compare(cfg.Params, result.Trajectory, cfg.Params.Initial, fixed.Level())
			errCol = fmt.Sprintf("%.3e", dev.Max)
		}

		fmt.Fprintf(w, "%s\t%.4f\t%s\t%d\t%v\n", name, final, errCol, result.Steps, elapsed)
	}

	return w.Flush()
}

func sweepParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	load, err := cfg.BuildProfile()
	if err != nil {
		return err
	}

	var values []float64
	for _, s := range strings.Split(sweepValues, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("bad sweep value %q: %w", s, err)
		}
		values = append(values, v)
	}

	sets := make([]thermo.Params, len(values))
	for i, v := range values {
		p := cfg.Params
		switch sweepParam {
		case "capacity":
			p.HeatCapacity = v
		case "conductivity":
			p.Conductivity = v
		default:
			return fmt.Errorf("unknown sweep param: %s (capacity|conductivity)", sweepParam)
		}
		sets[i] = p
	}

	points := thermo.Sweep(context.Background(), sets, func(ctx context.Context, p thermo.Params) (*thermo.Result, error) {
		return sim.Solve(ctx, p, load, cfg.SolverConfig())
	})

	fmt.Printf("sweeping %s over %s scenario\n\n", sweepParam, cfg.Scenario)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTAU s\tFINAL degC\tPEAK degC\n", strings.ToUpper(sweepParam))

	for i, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(w, "%.2f\terror: %v\n", values[i], pt.Err)
			continue
		}
		_, final := pt.Result.Trajectory.Final()
		_, peak := pt.Result.Trajectory.Bounds()
		fmt.Fprintf(w, "%.2f\t%.1f\t%.2f\t%.2f\n", values[i], pt.Params.TimeConstant(), final, peak)
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() < 4 {
		return fmt.Errorf("not enough data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	// Transients dominate the spectrum early on; analyze the tail.
	tail := tr.Tail(tr.Times[0] + meta.Params.TimeConstant()*5)
	if tail.Len() < 4 {
		tail = tr
	}

	// Same detrending as the period estimate, so the plotted peak and the
	// reported period agree.
	ps := analysis.PowerSpectrum(analysis.Detrend(tail.Temps))
	plotData := ps[:len(ps)/4]
	if len(plotData) < 2 {
		plotData = ps
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (temperature)"),
	)
	fmt.Println(graph)
	fmt.Println()

	dt := tr.Times[1] - tr.Times[0]
	if p := analysis.DominantPeriod(tail.Temps, dt); p > 0 {
		fmt.Printf("dominant period: %.2f s\n", p)
	} else {
		fmt.Println("no dominant period (trajectory is not oscillatory)")
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSPAN\tSAMPLES\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%.0f, %.0f]s\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start,
			run.End,
			run.Samples,
			run.Integrator,
		)
	}

	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tr, powers, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "temp", "power"}); err != nil {
		return err
	}
	for i := range tr.Times {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'f', 6, 64),
			strconv.FormatFloat(tr.Temps[i], 'f', 6, 64),
			strconv.FormatFloat(powers[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, powers, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, tr, powers)
}
