package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/mergersrc/internal/analysis"
	"github.com/san-kum/mergersrc/internal/compute"
	"github.com/san-kum/mergersrc/internal/config"
	"github.com/san-kum/mergersrc/internal/damping"
	"github.com/san-kum/mergersrc/internal/dynamo"
	"github.com/san-kum/mergersrc/internal/export"
	"github.com/san-kum/mergersrc/internal/sim"
	"github.com/san-kum/mergersrc/internal/storage"
	"github.com/san-kum/mergersrc/internal/tui"
	"github.com/san-kum/mergersrc/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	backend    string
	integrator string
	showPlot   bool
	jsonOut    bool
	noSave     bool
	series     string
	svgPath    string
	sliceK     int
	factors    []float64
	coefFactor []float64
	tff        []float64
	dts        []float64
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mergersrc: ")

	rootCmd := &cobra.Command{
		Use:   "mergersrc",
		Short: "damping source terms for binary white dwarf relaxation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(config.ListPresets(), presetSession)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mergersrc", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "relax a binary under the damping sources",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot kinetic energy after the run")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the run as json to stdout")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "step a preset with a live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "kinetic", "series to plot: kinetic, energy or both")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the kinetic energy curve to this svg file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "fit the kinetic energy decay of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sliceCmd := &cobra.Command{
		Use:   "slice",
		Short: "show a density slice after a run",
		Args:  cobra.NoArgs,
		RunE:  densitySlice,
	}
	addRunFlags(sliceCmd)
	sliceCmd.Flags().IntVar(&sliceK, "k", -1, "plane index along the third grid axis (default: middle)")
	sliceCmd.Flags().StringVar(&svgPath, "svg", "", "write the slice to this svg file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	coefCmd := &cobra.Command{
		Use:   "coef",
		Short: "tabulate damping coefficients against timestep",
		RunE:  coefTable,
	}
	coefCmd.Flags().Float64SliceVar(&tff, "tff", []float64{1, 2}, "free-fall times of primary and secondary")
	coefCmd.Flags().Float64SliceVar(&coefFactor, "factor", []float64{0.1, 10}, "relaxation and radial damping factors")
	coefCmd.Flags().Float64SliceVar(&dts, "dt", []float64{1e-3, 1e-2, 1e-1, 1, 10}, "timesteps")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run one setup under several relaxation factors",
		Args:  cobra.NoArgs,
		RunE:  compareFactors,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().Float64SliceVar(&factors, "factors", []float64{0.03, 0.1, 0.3, 1}, "relaxation damping factors")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the sweep on every backend",
		Args:  cobra.NoArgs,
		RunE:  benchBackends,
	}
	benchCmd.Flags().StringVar(&preset, "preset", "relax", "preset to benchmark")
	benchCmd.Flags().IntVar(&steps, "steps", 20, "steps per backend")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file to start from",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "relax", "preset to write")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, sliceCmd, exportCmd, presetsCmd, coefCmd, compareCmd, benchCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "relax", "preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml), overrides the preset")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().StringVar(&backend, "backend", "cpu", "sweep backend (cpu, serial, auto)")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "source update (euler, heun)")
}

// loadConfig resolves preset, config file and explicitly set flags, in that
// order of precedence from lowest to highest.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backend
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}

	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := newSetup(cfg)
	if err != nil {
		return err
	}
	defer s.backend.Cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	log.Printf("running %s: %d^3 cells on %s, dt=%g, %d steps", cfg.Name, cfg.Grid.Cells[0], s.backend.Name(), cfg.Dt, cfg.Steps)
	start := time.Now()

	result, err := s.simulator().Run(ctx, s.state, s.simConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := s.metadata()
	if jsonOut {
		return storage.ExportJSON(os.Stdout, meta, result)
	}

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(meta, result); err != nil {
			return err
		}
	}

	fmt.Println(viz.Header.Render(fmt.Sprintf("%s  %s", cfg.Name, elapsed.Round(time.Millisecond))))
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d\n", result.StepsTaken)
	ke0, ke1 := result.KineticEnergy[0], result.KineticEnergy[len(result.KineticEnergy)-1]
	fmt.Printf("kinetic energy: %.6g -> %.6g\n", ke0, ke1)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showPlot {
		fmt.Println()
		fmt.Println(viz.PlotSeries(result.KineticEnergy, 80, 12, "kinetic energy"))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	if len(args) == 1 {
		if config.GetPreset(args[0]) == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], names)
		}
		names = args
	}
	return tui.Run(names, presetSession)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSTEPS\tDT\tRELAX\tRADIAL\tBACKEND\tKE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%g\t%g\t%s\t%.4g\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Relaxation,
			run.Radial,
			run.Backend,
			run.Metrics["kinetic_energy"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	data, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Println(viz.Header.Render(fmt.Sprintf("%s (%s, dt=%g)", meta.ID, meta.Preset, meta.Dt)))

	switch series {
	case "kinetic":
		fmt.Println(viz.PlotSeries(data.KineticEnergy, 80, 15, "kinetic energy"))
	case "energy":
		fmt.Println(viz.PlotSeries(data.EnergySource, 80, 15, "cumulative energy source"))
	case "both":
		fmt.Println(viz.PlotSeries(data.KineticEnergy, 80, 10, "kinetic energy"))
		fmt.Println()
		fmt.Println(viz.PlotSeries(data.EnergySource, 80, 10, "cumulative energy source"))
	default:
		return fmt.Errorf("unknown series %q (kinetic, energy, both)", series)
	}

	if svgPath != "" {
		if err := export.WriteFile(svgPath, export.SeriesToSVG(data.Times, data.KineticEnergy, 800, 400, "#00ccff")); err != nil {
			return err
		}
		log.Printf("wrote %s", svgPath)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fit, err := analysis.FitDecay(data.Times, data.KineticEnergy)
	if err != nil {
		return err
	}

	fmt.Println(viz.Header.Render(fmt.Sprintf("%s (%s)", meta.ID, meta.Preset)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "decay rate\t%.6g\n", fit.Rate)
	fmt.Fprintf(w, "half-life\t%.6g\n", analysis.HalfLife(fit.Rate))
	fmt.Fprintf(w, "amplitude\t%.6g\n", fit.Amplitude)
	fmt.Fprintf(w, "r squared\t%.6f\n", fit.RSquared)
	fmt.Fprintf(w, "samples\t%d\n", fit.Samples)
	if n := len(data.EnergySource); n > 0 {
		fmt.Fprintf(w, "energy source\t%.6g\n", data.EnergySource[n-1])
	}
	return w.Flush()
}

func densitySlice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := newSetup(cfg)
	if err != nil {
		return err
	}
	defer s.backend.Cleanup()

	ctx, cancel := signalContext()
	defer cancel()

	result, err := s.simulator().Run(ctx, s.state, s.simConfig())
	if err != nil {
		return err
	}

	k := sliceK
	if k < 0 {
		k = s.geom.Nz / 2
	}
	if k >= s.geom.Nz {
		return fmt.Errorf("slice %d outside 0..%d: %w", k, s.geom.Nz-1, dynamo.ErrParameterBounds)
	}

	canvas := viz.NewCanvas(40, 20)
	viz.DensitySlice(canvas, result.Final, k, cfg.Binary.AmbientDensity*10)

	fmt.Println(viz.Header.Render(fmt.Sprintf("%s  k=%d  t=%g", cfg.Name, k, result.Times[len(result.Times)-1])))
	fmt.Print(viz.Panel.Render(strings.TrimRight(canvas.String(), "\n")))
	fmt.Println()

	if svgPath != "" {
		if err := export.WriteFile(svgPath, export.CanvasToSVG(canvas, 6)); err != nil {
			return err
		}
		log.Printf("wrote %s", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Times:         data.Times,
		KineticEnergy: data.KineticEnergy,
		EnergySource:  data.EnergySource,
		Metrics:       meta.Metrics,
	}
	return storage.ExportJSON(os.Stdout, *meta, result)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTEPS\tDT\tINTEG\tRELAX\tRADIAL\tROTATION\tHYBRID\tPROBLEM")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		rot := "off"
		if cfg.Rotation.Enabled {
			rot = "inertial state"
			if cfg.Rotation.StateInRotatingFrame {
				rot = "rotating state"
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%g\t%s\t%g\t%g\t%s\t%t\t%d\n",
			name, cfg.Steps, cfg.Dt, cfg.Integrator, cfg.Damping.RelaxationFactor, cfg.Damping.RadialFactor,
			rot, cfg.Damping.HybridMomentum, cfg.Damping.Problem)
	}

	return w.Flush()
}

func coefTable(cmd *cobra.Command, args []string) error {
	if len(tff) != 2 || len(coefFactor) != 2 {
		return fmt.Errorf("--tff and --factor take two values each: %w", dynamo.ErrInvalidConfig)
	}

	cfg := damping.Config{
		Problem:                 damping.ProblemMerger,
		RelaxationDampingFactor: coefFactor[0],
		RadialDampingFactor:     coefFactor[1],
		TffPrimary:              tff[0],
		TffSecondary:            tff[1],
		Axes:                    damping.DefaultAxes,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tTAU\tDT\tCOEF\tRETAINED")

	for _, mode := range []damping.Mode{damping.Relaxation, damping.RadialDrift} {
		for _, step := range dts {
			if step <= 0 {
				return fmt.Errorf("dt must be positive, got %g: %w", step, dynamo.ErrParameterBounds)
			}
			coef, ok := cfg.Coefficient(mode, step)
			if !ok {
				fmt.Fprintf(w, "%s\t-\t%g\tdisabled\t1\n", mode, step)
				continue
			}
			factor := cfg.RelaxationDampingFactor
			if mode == damping.RadialDrift {
				factor = cfg.RadialDampingFactor
			}
			tau := factor * damping.DynamicalTimescale(mode, cfg.TffPrimary, cfg.TffSecondary)
			// Fraction of the momentum left after one relaxation step.
			fmt.Fprintf(w, "%s\t%g\t%g\t%.6g\t%.6g\n", mode, tau, step, coef, 1+step*coef)
		}
	}

	return w.Flush()
}

func compareFactors(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(factors) == 0 {
		return fmt.Errorf("no factors given: %w", dynamo.ErrInvalidConfig)
	}

	base, err := newSetup(cfg)
	if err != nil {
		return err
	}

	kernels := make([]*damping.Kernel, 0, len(factors))
	for _, f := range factors {
		dc := base.kernel.Config()
		dc.RelaxationDampingFactor = f
		k, err := damping.NewKernel(dc)
		if err != nil {
			return err
		}
		kernels = append(kernels, k)
	}

	ctx, cancel := signalContext()
	defer cancel()

	ens := sim.NewEnsemble(kernels, func() compute.Backend {
		b, _ := newBackend(cfg.Backend)
		return b
	}, base.geom, nil)
	ens.NewIntegrator = base.integrator

	log.Printf("comparing %d relaxation factors on %s (dt=%g, %d steps)", len(factors), cfg.Name, cfg.Dt, cfg.Steps)
	results, err := ens.Run(ctx, base.state, base.simConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACTOR\tKE_START\tKE_END\tRATIO\tENERGY_SOURCE\tFIT_RATE\tPURE_RATE")
	curves := make([][]float64, 0, len(results))
	for i, r := range results {
		ke0, ke1 := r.KineticEnergy[0], r.KineticEnergy[len(r.KineticEnergy)-1]

		fitRate := math.NaN()
		if fit, err := analysis.FitDecay(r.Times, r.KineticEnergy); err == nil {
			fitRate = fit.Rate
		}
		// Rate of a uniform, non-rotating relaxation with the same coefficient.
		pureRate := 0.0
		if coef, ok := kernels[i].Config().Coefficient(damping.Relaxation, cfg.Dt); ok {
			pureRate = analysis.ExpectedDecay(coef, cfg.Dt)
		}

		fmt.Fprintf(w, "%g\t%.6g\t%.6g\t%.4g\t%.6g\t%.4g\t%.4g\n",
			factors[i], ke0, ke1, ke1/ke0, r.EnergySource[len(r.EnergySource)-1], fitRate, pureRate)
		curves = append(curves, r.KineticEnergy)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.PlotMany(curves, 80, 12, "kinetic energy: "+joinFloats(factors)))
	return nil
}

func benchBackends(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	cfg.Steps = steps

	fmt.Printf("benchmarking %s (%d steps)\n\n", cfg.Name, steps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tCELLS\tSTEPS\tTIME\tCELLS/SEC")

	for _, name := range compute.List() {
		cfg.Backend = name
		s, err := newSetup(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := s.simulator().Run(context.Background(), s.state, s.simConfig())
		elapsed := time.Since(start)
		s.backend.Cleanup()
		if err != nil {
			return err
		}

		cells := s.state.Cells()
		rate := float64(cells*result.StepsTaken) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.3g\n", name, cells, result.StepsTaken, elapsed.Round(time.Microsecond), rate)
	}

	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	log.Printf("wrote %s preset to %s", preset, path)
	return nil
}

func joinFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return strings.Join(parts, ", ")
}
