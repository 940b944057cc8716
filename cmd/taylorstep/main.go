package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/taylorstep/internal/config"
	"github.com/san-kum/taylorstep/internal/scalar"
	"github.com/san-kum/taylorstep/internal/store"
	"github.com/san-kum/taylorstep/internal/systems"
	"github.com/san-kum/taylorstep/internal/taylorint"
	"github.com/san-kum/taylorstep/internal/variational"
)

var (
	dataDir string

	order    int
	dt0      float64
	tmax     float64
	absTol   float64
	relTol   float64
	maxSteps int

	x0, v0         float64
	theta0, omega0 float64
	posX, posY     float64
	velX, velY     float64

	preset         string
	configFile     string
	reorthInterval float64
	useMGS         bool

	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taylorstep",
		Short: "arbitrary-order Taylor series ODE integrator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".taylorstep", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "integrate a system and persist the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runIntegration,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list persisted runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a persisted run's state trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [path]",
		Short: "export a persisted run as JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets for a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for system: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [system]",
		Short: "estimate the Lyapunov spectrum along a trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runLyapunov,
	}
	addRunFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&reorthInterval, "reorth-interval", 1.0, "reorthonormalization interval")
	lyapunovCmd.Flags().BoolVar(&useMGS, "mgs", true, "use modified (vs classical) Gram-Schmidt")

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "integrate with a live step-size/order view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 20, "refresh rate")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, presetsCmd, lyapunovCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&order, "order", 0, "expansion order (0 lets relative tolerance pick one)")
	cmd.Flags().Float64Var(&dt0, "dt0", config.DefaultDt0, "initial step size")
	cmd.Flags().Float64Var(&tmax, "tmax", config.DefaultTmax, "integration end time")
	cmd.Flags().Float64Var(&absTol, "abs-tol", config.DefaultAbsTol, "absolute tolerance")
	cmd.Flags().Float64Var(&relTol, "rel-tol", 0, "relative tolerance (0 disables)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxStep, "step cap")
	cmd.Flags().Float64Var(&x0, "x0", 1.0, "initial x (scalar systems)")
	cmd.Flags().Float64Var(&v0, "v0", 0.0, "initial v (complex_oscillator)")
	cmd.Flags().Float64Var(&theta0, "theta0", 0.2, "initial angle (pendulum)")
	cmd.Flags().Float64Var(&omega0, "omega0", 0.0, "initial angular velocity (pendulum)")
	cmd.Flags().Float64Var(&posX, "pos-x", 1.0, "initial x position (kepler)")
	cmd.Flags().Float64Var(&posY, "pos-y", 0.0, "initial y position (kepler)")
	cmd.Flags().Float64Var(&velX, "vel-x", 0.0, "initial x velocity (kepler)")
	cmd.Flags().Float64Var(&velY, "vel-y", 1.0, "initial y velocity (kepler)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
}

// resolveScenario builds a Scenario: it starts from the defaults,
// replaces them with --preset if given, replaces that wholesale with the
// --config file if given, and finally applies every flag the caller set
// explicitly on the command line, which wins over both.
func resolveScenario(cmd *cobra.Command, name string) (*config.Scenario, error) {
	sc := config.DefaultScenario()
	sc.System = name

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for system %q (available: %v)", preset, name, config.ListPresets(name))
		}
		sc = p
	}

	if configFile != "" {
		fromFile, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		sc = fromFile
		sc.System = name
	}

	if cmd.Flags().Changed("order") {
		sc.Order = order
	}
	if cmd.Flags().Changed("dt0") {
		sc.Dt0 = dt0
	}
	if cmd.Flags().Changed("tmax") {
		sc.Tmax = tmax
	}
	if cmd.Flags().Changed("abs-tol") {
		sc.AbsTol = absTol
	}
	if cmd.Flags().Changed("rel-tol") {
		sc.RelTol = relTol
	}
	if cmd.Flags().Changed("max-steps") {
		sc.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("x0") {
		sc.InitState.X0 = x0
	}
	if cmd.Flags().Changed("v0") {
		sc.InitState.V0 = v0
	}
	if cmd.Flags().Changed("theta0") {
		sc.InitState.Theta0 = theta0
	}
	if cmd.Flags().Changed("omega0") {
		sc.InitState.Omega0 = omega0
	}
	if cmd.Flags().Changed("pos-x") {
		sc.InitState.PosX = posX
	}
	if cmd.Flags().Changed("pos-y") {
		sc.InitState.PosY = posY
	}
	if cmd.Flags().Changed("vel-x") {
		sc.InitState.VelX = velX
	}
	if cmd.Flags().Changed("vel-y") {
		sc.InitState.VelY = velY
	}

	return sc, nil
}

func toScalarState(x []float64) []scalar.Scalar {
	out := make([]scalar.Scalar, len(x))
	for i, v := range x {
		out[i] = scalar.Float64(v)
	}
	return out
}

func integrate(sc *config.Scenario, sys systems.System) (*taylorint.Trajectory, int, error) {
	ctx := context.Background()
	x0 := toScalarState(sc.GetInitState())

	if sc.RelTol > 0 {
		traj, err := taylorint.IntegrateToTmaxRel(ctx, sys.RHS, 0, x0, sc.Dt0, sc.Tmax, sc.RelTol, sc.AbsTol, sc.MaxSteps)
		return traj, 0, err
	}
	traj, err := taylorint.IntegrateToTmax(ctx, sys.RHS, sc.Order, 0, x0, sc.Dt0, sc.Tmax, sc.AbsTol, sc.MaxSteps)
	return traj, sc.Order, err
}

func runIntegration(cmd *cobra.Command, args []string) error {
	name := args[0]
	sc, err := resolveScenario(cmd, name)
	if err != nil {
		return err
	}
	sys, err := systems.Get(name)
	if err != nil {
		return err
	}

	fmt.Printf("integrating %s...\n", name)
	start := time.Now()

	traj, effectiveOrder, err := integrate(sc, sys)
	if err != nil && traj == nil {
		return err
	}
	elapsed := time.Since(start)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, saveErr := st.Save(name, effectiveOrder, sc.Dt0, sc.Tmax, sc.AbsTol, sc.RelTol, traj)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps taken: %d\n", traj.StepsTaken)
	if len(traj.Warnings) > 0 {
		fmt.Printf("warnings: %d (step cap reached)\n", len(traj.Warnings))
	}
	if err != nil {
		fmt.Printf("integration stopped early: %v\n", err)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tORDER\tTMAX\tSTEPS\tWARNINGS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%d\t%d\n", run.ID, run.System, run.Order, run.Tmax, run.StepsTaken, run.Warnings)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	if _, err := st.Load(runID); err != nil {
		return err
	}
	times, rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	dim := len(rows[0])
	for col := 0; col < dim; col++ {
		data := make([]float64, len(rows))
		for i, row := range rows {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				continue
			}
			data[i] = v
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x%d over [%.3g, %.3g]", col, times[0], times[len(times)-1])),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	traj := rowsToTrajectory(times, rows)
	if len(args) == 2 {
		return store.ExportJSON(args[1], meta.System, meta.Order, meta.Dt0, meta.Tmax, traj)
	}
	return store.ExportJSONStdout(meta.System, meta.Order, meta.Dt0, meta.Tmax, traj)
}

func rowsToTrajectory(times []float64, rows [][]string) *taylorint.Trajectory {
	states := make([][]scalar.Scalar, len(rows))
	for i, row := range rows {
		state := make([]scalar.Scalar, len(row))
		for j, cell := range row {
			v, _ := strconv.ParseFloat(cell, 64)
			state[j] = scalar.Float64(v)
		}
		states[i] = state
	}
	return &taylorint.Trajectory{Times: times, States: states, StepsTaken: len(times) - 1}
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	name := args[0]
	sc, err := resolveScenario(cmd, name)
	if err != nil {
		return err
	}
	sys, err := systems.Get(name)
	if err != nil {
		return err
	}

	order := sc.Order
	if order == 0 {
		order = config.DefaultOrder
	}

	fullIdx := make([]int, sys.Dim)
	for i := range fullIdx {
		fullIdx[i] = i
	}
	v := variational.NewSystem(sys.RHS, sys.Dim, fullIdx, fullIdx)
	spec, err := variational.ComputeSpectrum(context.Background(), v, order, 0, sc.GetInitState(), sc.Dt0, sc.Tmax, sc.AbsTol, reorthInterval, sc.MaxSteps, useMGS)
	if err != nil {
		return err
	}

	fmt.Printf("Lyapunov exponents for %s over [0, %.4g]:\n", name, sc.Tmax)
	sum := 0.0
	for i, lambda := range spec.Final {
		fmt.Printf("  lambda_%d = %.6g\n", i, lambda)
		sum += lambda
	}
	fmt.Printf("  sum       = %.6g\n", sum)
	return nil
}
