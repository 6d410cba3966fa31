package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/VincentCucchietti/hipparchus/internal/analysis"
	"github.com/VincentCucchietti/hipparchus/internal/config"
	"github.com/VincentCucchietti/hipparchus/internal/experiment"
	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
	"github.com/VincentCucchietti/hipparchus/internal/storage"
	"github.com/VincentCucchietti/hipparchus/internal/viz"
)

var (
	dataDir    string
	method     string
	step       float64
	start      float64
	final      float64
	sample     float64
	initState  []float64
	configFile string
	archived   bool
	replayTime float64
	stateIndex int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hipparchus",
		Short: "fixed-step runge-kutta integration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hipparchus", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	runCmd.Flags().StringVar(&method, "method", "3/8", "integration method")
	runCmd.Flags().Float64Var(&step, "step", config.DefaultStep, "step size")
	runCmd.Flags().Float64Var(&start, "start", 0.0, "start time")
	runCmd.Flags().Float64Var(&final, "final", config.DefaultFinal, "final time")
	runCmd.Flags().Float64Var(&sample, "sample", 0.0, "dense sampling cadence (0 = step boundaries)")
	runCmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state components")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().BoolVar(&archived, "archive", false, "archive dense output for replay")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE:  listModels,
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list available integration methods",
		RunE:  listMethods,
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

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "evaluate archived dense output at a time",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().Float64Var(&replayTime, "time", 0.0, "time to evaluate")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "integrate with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&method, "method", "3/8", "integration method")
	liveCmd.Flags().Float64Var(&step, "step", config.DefaultStep, "step size")
	liveCmd.Flags().Float64Var(&start, "start", 0.0, "start time")
	liveCmd.Flags().Float64Var(&final, "final", config.DefaultFinal, "final time")
	liveCmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state components")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a stored run as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&stateIndex, "index", 0, "state component to plot")

	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "measure the empirical convergence order of every method",
		RunE:  measureOrders,
	}

	rootCmd.AddCommand(runCmd, modelsCmd, methodsCmd, listCmd, plotCmd,
		exportJSONCmd, exportSVGCmd, ordersCmd, replayCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig merges defaults, an optional config file and CLI flags, with
// flags taking precedence over the file.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Model = model
	if configFile == "" || cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if configFile == "" || cmd.Flags().Changed("step") {
		cfg.Step = step
	}
	if configFile == "" || cmd.Flags().Changed("start") {
		cfg.Start = start
	}
	if configFile == "" || cmd.Flags().Changed("final") {
		cfg.Final = final
	}
	if cmd.Flags().Changed("sample") {
		cfg.Sample = sample
	}
	if cmd.Flags().Changed("init") {
		cfg.InitState = initState
	}
	return cfg, nil
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp, err := experiment.New(cfg, registry)
	if err != nil {
		return err
	}

	// The run id is only assigned when the run is saved, so archive
	// segments are written under a provisional id and renamed afterwards.
	var writer *storage.ArchiveWriter
	var archive *storage.Archive
	if archived {
		archive, err = storage.OpenArchive(filepath.Join(dataDir, "archive.db"))
		if err != nil {
			return err
		}
		defer archive.Close()
		writer = storage.NewArchiveWriter(archive, fmt.Sprintf("pending-%d", time.Now().UnixNano()))
		exp.Integrator().AddStepHandler(writer)
	}

	fmt.Printf("integrating %s with %s, step %g over [%g, %g]\n",
		cfg.Model, cfg.Method, cfg.Step, cfg.Start, cfg.Final)
	began := time.Now()

	end, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	rec := exp.Recorder()
	meta := storage.RunMetadata{
		Model:      cfg.Model,
		Method:     cfg.Method,
		Step:       cfg.Step,
		Start:      cfg.Start,
		Final:      cfg.Final,
		FinalTime:  end.Time,
		FinalState: end.State,
		Metrics:    exp.Metrics(),
	}
	runID, err := st.Save(meta, rec.Times, rec.States)
	if err != nil {
		return err
	}
	if writer != nil {
		if werr := writer.Err(); werr != nil {
			return fmt.Errorf("archive write failed: %w", werr)
		}
		if rerr := archive.Rename(writer.RunID(), runID); rerr != nil {
			return rerr
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final time: %g\n", end.Time)
	fmt.Printf("final state: %v\n", []float64(end.State))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, meta.Metrics[name])
	}
	return nil
}

func listModels(cmd *cobra.Command, args []string) error {
	names := experiment.NewRegistry().ListModels()
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORDER\tSTAGES\tDENSE")
	for _, tab := range rk.Methods() {
		dense := "hermite"
		if tab.Dense != nil {
			dense = "native"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", tab.Name, tab.Order, tab.Stages(), dense)
	}
	return w.Flush()
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tMETHOD\tTIME\tSTEP\tSPAN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t[%g, %g]\n",
			run.ID,
			run.Model,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Step,
			run.Start, run.Final,
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
	_, states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s (%s, step %g)\n", meta.Model, meta.Method, meta.Step)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	if numVars > 4 {
		numVars = 4
	}
	for idx := 0; idx < numVars; idx++ {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][idx]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("y%d vs time", idx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, times, states)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	return storage.ExportSVG(os.Stdout, times, states, stateIndex, 800, 400)
}

func measureOrders(cmd *cobra.Command, args []string) error {
	sys := &oscillatorRef{}
	y0 := ode.State{1, 0}
	exact := ode.State{math.Cos(2), -math.Sin(2)}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tTHEORETICAL\tEMPIRICAL")
	for _, tab := range rk.Methods() {
		order, err := analysis.EstimateOrder(sys, tab, y0, 0, 2, 0.02, exact)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f\n", tab.Name, tab.Order, order)
	}
	return w.Flush()
}

// oscillatorRef is the reference problem for order measurement: the unit
// harmonic oscillator with known solution cos t.
type oscillatorRef struct{}

func (*oscillatorRef) Dimension() int { return 2 }
func (*oscillatorRef) Derivatives(t float64, y ode.State) ode.State {
	return ode.State{y[1], -y[0]}
}

func replayRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	archive, err := storage.OpenArchive(filepath.Join(dataDir, "archive.db"))
	if err != nil {
		return err
	}
	defer archive.Close()

	y, err := archive.StateAt(runID, replayTime)
	if err != nil {
		return err
	}

	parts := make([]string, len(y))
	for i, v := range y {
		parts[i] = fmt.Sprintf("%g", v)
	}
	fmt.Printf("t=%g: [%s]\n", replayTime, strings.Join(parts, ", "))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetModel(cfg.Model)
	if err != nil {
		return err
	}
	tab, err := registry.GetMethod(cfg.Method)
	if err != nil {
		return err
	}
	stepper, err := rk.NewStepper(tab)
	if err != nil {
		return err
	}

	y0 := ode.State(cfg.GetInitState())
	if len(y0) != sys.Dimension() {
		return fmt.Errorf("%w: init state has %d components, model %s wants %d",
			ode.ErrDimensionMismatch, len(y0), cfg.Model, sys.Dimension())
	}
	return viz.Run(sys, stepper, y0, cfg.Start, cfg.Final, cfg.Step, cfg.Model)
}
