package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dynadraw/internal/analysis"
	"github.com/san-kum/dynadraw/internal/automation"
	"github.com/san-kum/dynadraw/internal/config"
	"github.com/san-kum/dynadraw/internal/dynamo"
	"github.com/san-kum/dynadraw/internal/experiment"
	"github.com/san-kum/dynadraw/internal/gui"
	"github.com/san-kum/dynadraw/internal/integrators"
	"github.com/san-kum/dynadraw/internal/optim"
	"github.com/san-kum/dynadraw/internal/store"
	"github.com/san-kum/dynadraw/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	stiffness  float64
	damping    float64
	logLevel   string
	// tui
	theme string
	scale int
	// trace
	compare     []string
	previewCols int
	plotHeight  int
	saveDir     string
	jsonOut     string
	// tune
	metric    string
	gridSteps int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dynadraw",
		Short:         "damped pen drawing toy",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "nib preset (see presets)")
	pf.Float64Var(&stiffness, "stiffness", config.Presets["classic"].Stiffness, "spring stiffness")
	pf.Float64Var(&damping, "damping", config.Presets["classic"].Damping, "velocity damping")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "draw in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "draw in the terminal with the mouse",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", viz.ThemeNight.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	tuiCmd.Flags().IntVar(&scale, "scale", viz.DefaultScale, "raster pixels per braille dot")

	traceCmd := &cobra.Command{
		Use:   "trace [scenario.yaml]",
		Short: "play a scripted stroke headless and report on it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	traceCmd.Flags().StringSliceVar(&compare, "compare", nil, "also play the scenario with these presets")
	traceCmd.Flags().IntVar(&previewCols, "preview", 60, "braille preview width in columns (0 to skip)")
	traceCmd.Flags().IntVar(&plotHeight, "plot-height", 10, "height of the speed and thickness plots")
	traceCmd.Flags().StringVar(&saveDir, "save", "", "store the run under this directory")
	traceCmd.Flags().StringVar(&jsonOut, "json", "", "write the run as json to this file (- for stdout) instead of the report")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list nib presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "search the sliders for the nib with the best step response",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&metric, "metric", "settle_frames", "response metric to minimize ("+strings.Join(analysis.MetricNames, ", ")+")")
	tuneCmd.Flags().IntVar(&gridSteps, "steps", 12, "grid points per slider")
	tuneCmd.Flags().IntVar(&plotHeight, "plot-height", 10, "height of the trajectory plot")

	runsCmd := &cobra.Command{
		Use:   "runs [dir]",
		Short: "list traced runs saved with trace --save",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listRuns,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, traceCmd, presetsCmd, configCmd, tuneCmd, runsCmd)
	return rootCmd
}

func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gg.SetLogger(logger)
	return logger, nil
}

// loadConfig builds the effective config: defaults, then the config file,
// then the preset, then any pen flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	applyPenFlags(cmd, cfg)
	return cfg, cfg.Validate()
}

// applyPenFlags copies the pen flags the user actually set onto cfg.
func applyPenFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("stiffness") {
		cfg.Stiffness = stiffness
	}
	if cmd.Flags().Changed("damping") {
		cfg.Damping = damping
	}
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, *slog.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return exp, logger, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	exp, logger, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	defer exp.Close()

	return gui.Run(cmd.Context(), exp, logger)
}

func runTUI(cmd *cobra.Command, args []string) error {
	exp, logger, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	defer exp.Close()

	return viz.Run(cmd.Context(), exp, viz.Options{Theme: theme, Scale: scale, Logger: logger})
}

func runTrace(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc := automation.DefaultScenario()
	if len(args) > 0 {
		if sc, err = automation.LoadScenario(args[0]); err != nil {
			return err
		}
	}
	cfg, err := sc.Configure(base)
	if err != nil {
		return err
	}
	// pen flags beat the scenario preset
	applyPenFlags(cmd, cfg)

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	defer exp.Close()

	trace := automation.NewTrace(sc.Frames())
	exp.Simulator().AddObserver(trace)

	logger.Info("playing scenario", "name", sc.Name, "frames", sc.Frames())
	if err := automation.Run(cmd.Context(), sc, exp.Simulator(), exp.Palette()); err != nil {
		return err
	}

	p := exp.Params()
	run := &store.Run{
		RunMetadata: store.RunMetadata{
			Scenario: sc.Name,
			Preset:   sc.Preset,
			Frames:   sc.Frames(),
			Width:    cfg.Width,
			Height:   cfg.Height,
			Params:   store.FromParams(p),
			Metrics:  exp.Metrics(),
		},
		Speed:     trace.Speed,
		Thickness: trace.Thickness,
	}
	if saveDir != "" {
		runID, err := store.New(saveDir).Save(run)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		logger.Info("saved run", "id", runID, "dir", saveDir)
	}
	if jsonOut != "" {
		return writeRunJSON(jsonOut, run)
	}

	fmt.Printf("scenario: %s (%d frames, %dx%d)\n", sc.Name, sc.Frames(), cfg.Width, cfg.Height)
	fmt.Printf("stiffness %.4f  damping %.4f  ductus %.2f  max thickness %.1f\n\n",
		p.Stiffness, p.Damping, p.Ductus, p.MaxThickness)

	printMetrics(exp.Metrics())
	printPlot(trace.Speed, "pen speed (px/frame)")
	printPlot(trace.Thickness, "stroke thickness (px, 0 = no ink)")

	if previewCols > 0 {
		printPreview(exp)
	}

	if len(compare) > 0 {
		results, err := automation.ComparePresets(cmd.Context(), sc, base, compare, logger)
		if err != nil {
			return err
		}
		printComparison(results)
	}
	return nil
}

func writeRunJSON(path string, run *store.Run) error {
	if path == "-" {
		return store.WriteJSON(os.Stdout, run)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := store.WriteJSON(f, run); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, m[name])
	}
	w.Flush()
	fmt.Println()
}

func printPlot(data []float64, caption string) {
	if len(data) == 0 {
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func printPreview(exp *experiment.Experiment) {
	w, h := exp.Canvas().Size()
	rows := previewCols * h * 2 / (w * 4)
	if rows < 1 {
		rows = 1
	}
	c := viz.NewCanvas(previewCols, rows)
	c.Sample(exp.Canvas().Image(), exp.Simulator().Background())
	fmt.Print(c.String())
	fmt.Println()
}

func printComparison(results []automation.Comparison) {
	fmt.Println("presets:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  PRESET\tSTIFFNESS\tDAMPING\tMEAN SPEED\tPEAK SPEED\tMEAN THICKNESS")
	for _, r := range results {
		fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.Preset, r.Params.Stiffness, r.Params.Damping,
			r.Metrics["mean_speed"], r.Metrics["peak_speed"], r.Metrics["mean_thickness"])
	}
	w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := (analysis.Response{}).Metric(metric); err != nil {
		return err
	}

	spring := integrators.NewSpring()
	obj := func(ctx context.Context, p dynamo.Params) (float64, error) {
		return analysis.StepResponse(spring, p, analysis.DefaultStep).Metric(metric)
	}

	grid := optim.NewSliderGrid(gridSteps)
	logger.Info("tuning", "metric", metric, "points", len(grid.Stiffness)*len(grid.Damping))
	best, err := grid.Search(cmd.Context(), cfg.Params(), obj)
	if err != nil {
		return err
	}

	current := analysis.StepResponse(spring, cfg.Params(), analysis.DefaultStep)
	tuned := analysis.StepResponse(spring, best.Params, analysis.DefaultStep)

	fmt.Printf("minimizing %s over %d slider settings\n\n", metric, best.Tried)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tSTIFFNESS\tDAMPING\tOVERSHOOT\tSETTLE\tPEAK SPEED\tFREQUENCY")
	for _, row := range []struct {
		name string
		p    dynamo.Params
		r    analysis.Response
	}{{"current", cfg.Params(), current}, {"tuned", best.Params, tuned}} {
		fmt.Fprintf(w, "  %s\t%.3f\t%.3f\t%.3f\t%d\t%.3f\t%.4f\n",
			row.name, row.p.Stiffness, row.p.Damping,
			row.r.Overshoot, row.r.SettleFrames, row.r.PeakSpeed, row.r.Frequency)
	}
	w.Flush()
	fmt.Println()

	frames := current.SettleFrames
	if tuned.SettleFrames > frames {
		frames = tuned.SettleFrames
	}
	frames = min(max(frames+20, 40), analysis.DefaultStep.Frames)
	graph := asciigraph.PlotMany([][]float64{current.Trajectory[:frames], tuned.Trajectory[:frames]},
		asciigraph.Height(plotHeight),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Green),
		asciigraph.Caption("step response: current (default), tuned (green)"),
	)
	fmt.Println(graph)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTIFFNESS\tDAMPING\tDUCTUS\tMAX\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.2f\t%.0f\t%s\n",
			name, p.Stiffness, p.Damping, p.Ductus, p.MaxThickness, p.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	dir := "runs"
	if len(args) > 0 {
		dir = args[0]
	}
	runs, err := store.New(dir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Printf("no runs in %s\n", dir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tFRAMES\tSTIFFNESS\tDAMPING\tPEAK SPEED\tMEAN THICKNESS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.ID, r.Scenario, r.Frames, r.Params.Stiffness, r.Params.Damping,
			r.Metrics["peak_speed"], r.Metrics["mean_thickness"])
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return config.Write(os.Stdout, cfg)
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
