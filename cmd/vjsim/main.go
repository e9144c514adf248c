package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ouzlim/vjsim/internal/config"
	"github.com/ouzlim/vjsim/internal/engine"
	"github.com/ouzlim/vjsim/internal/fit"
	"github.com/ouzlim/vjsim/internal/probe"
	"github.com/ouzlim/vjsim/internal/profile"
	"github.com/ouzlim/vjsim/internal/render"
	"github.com/ouzlim/vjsim/internal/table"
)

var (
	configFile string
	preset     string

	bodyweight   float64
	externalLoad float64
	pushOff      float64
	gravity      float64
	timeStep     float64
	maxTime      float64

	maxForce     float64
	maxVelocity  float64
	declineRate  float64
	peakLocation float64
	timeToMax    float64

	externalLoads []float64
	parallel      bool
	showTrace     bool

	csvPath  string
	jsonPath string

	probeParams []string
	probeRatios []float64
	probeMode   string
	probeTarget string

	optF0 float64
	optV0 float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vjsim",
		Short: "vertical jump simulator and FV profiler",
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "simulate a single loaded jump",
		RunE:  runSimulate,
	}
	addScenarioFlags(simulateCmd)
	simulateCmd.Flags().BoolVar(&showTrace, "trace", false, "plot the push-off trace")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "sweep external loads into a profile table",
		RunE:  runProfile,
	}
	addScenarioFlags(profileCmd)
	addSweepFlags(profileCmd)
	addExportFlags(profileCmd)

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "fit all standard FV and power profiles from a load sweep",
		RunE:  runFit,
	}
	addScenarioFlags(fitCmd)
	addSweepFlags(fitCmd)
	addExportFlags(fitCmd)

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "one-at-a-time parameter sensitivity analysis",
		RunE:  runProbe,
	}
	addScenarioFlags(probeCmd)
	addSweepFlags(probeCmd)
	addExportFlags(probeCmd)
	probeCmd.Flags().StringSliceVar(&probeParams, "params", nil, "parameters to probe (default: all)")
	probeCmd.Flags().Float64SliceVar(&probeRatios, "ratios", nil, "change ratios")
	probeCmd.Flags().StringVar(&probeMode, "mode", "", "aggregation: raw, diff or ratio")
	probeCmd.Flags().StringVar(&probeTarget, "target", "jump", "probe target: jump or profile")

	optimalCmd := &cobra.Command{
		Use:   "optimal",
		Short: "theoretically optimal FV profile at the same Pmax",
		RunE:  runOptimal,
	}
	addScenarioFlags(optimalCmd)
	addSweepFlags(optimalCmd)
	optimalCmd.Flags().Float64Var(&optF0, "f0", 0, "measured F0 (default: fitted from a simulated sweep)")
	optimalCmd.Flags().Float64Var(&optV0, "v0", 0, "measured V0 (default: fitted from a simulated sweep)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(simulateCmd, profileCmd, fitCmd, probeCmd, optimalCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset name")
	cmd.Flags().Float64Var(&bodyweight, "bodyweight", config.DefaultBodyweight, "bodyweight mass (kg)")
	cmd.Flags().Float64Var(&externalLoad, "load", 0, "external load (kg)")
	cmd.Flags().Float64Var(&pushOff, "push-off", config.DefaultPushOffDistance, "push-off distance (m)")
	cmd.Flags().Float64Var(&gravity, "gravity", engine.DefaultGravity, "gravity (m/s^2)")
	cmd.Flags().Float64Var(&timeStep, "dt", engine.DefaultTimeStep, "integration time step (s)")
	cmd.Flags().Float64Var(&maxTime, "max-time", engine.DefaultMaxTime, "push-off time bound (s)")
	cmd.Flags().Float64Var(&maxForce, "max-force", 0, "generator max force (N)")
	cmd.Flags().Float64Var(&maxVelocity, "max-velocity", 0, "generator max velocity (m/s)")
	cmd.Flags().Float64Var(&declineRate, "decline-rate", 0, "force-length decline rate")
	cmd.Flags().Float64Var(&peakLocation, "peak-location", 0, "force-length peak location (m)")
	cmd.Flags().Float64Var(&timeToMax, "time-to-max-activation", 0, "activation time course (s)")
}

func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&externalLoads, "loads", nil, "external loads to sweep (kg)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run the sweep across goroutines")
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the result table to a CSV file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "write the result table to a JSON file")
}

// scenario resolves preset, config file and explicit flags, in that order.
func scenario(cmd *cobra.Command) (*config.Scenario, error) {
	s := config.DefaultScenario()

	if preset != "" {
		s = config.GetPreset(preset)
		if s == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		s = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("bodyweight") {
		s.Bodyweight = bodyweight
	}
	if flags.Changed("load") {
		s.ExternalLoad = externalLoad
	}
	if flags.Changed("push-off") {
		s.PushOffDistance = pushOff
	}
	if flags.Changed("gravity") {
		s.Gravity = gravity
	}
	if flags.Changed("dt") {
		s.TimeStep = timeStep
	}
	if flags.Changed("max-time") {
		s.MaxTime = maxTime
	}
	if flags.Changed("max-force") {
		s.Generator.MaxForce = maxForce
	}
	if flags.Changed("max-velocity") {
		s.Generator.MaxVelocity = maxVelocity
	}
	if flags.Changed("decline-rate") {
		s.Generator.DeclineRate = declineRate
	}
	if flags.Changed("peak-location") {
		s.Generator.PeakLocation = peakLocation
	}
	if flags.Changed("time-to-max-activation") {
		s.Generator.TimeToMaxActivation = timeToMax
	}
	if flags.Changed("loads") {
		s.ExternalLoads = externalLoads
	}
	return s, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}

	opts := s.Options()
	opts.SaveTrace = showTrace
	res, err := engine.Run(s.Load(), s.Params(), opts)
	if err != nil {
		if errors.Is(err, engine.ErrNoTakeOff) {
			fmt.Println(render.Warn.Render(err.Error()))
			return nil
		}
		return err
	}

	render.Summary(os.Stdout, res.Summary)
	if showTrace {
		fmt.Println()
		render.TraceCharts(os.Stdout, res.Trace)
	}
	return nil
}

func sweep(s *config.Scenario) (*table.Table, []error) {
	if parallel {
		return profile.GenerateParallel(s.Load(), s.Params(), s.ExternalLoads, s.Options())
	}
	return profile.Generate(s.Load(), s.Params(), s.ExternalLoads, s.Options())
}

func runProfile(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}

	tbl, errs := sweep(s)
	reportRowErrors(s.ExternalLoads, errs)
	render.Table(os.Stdout, tbl)
	return export(tbl)
}

func runFit(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}

	tbl, errs := sweep(s)
	reportRowErrors(s.ExternalLoads, errs)

	set := fit.AllProfiles(tbl)
	out := set.Table()
	render.Table(os.Stdout, out)
	for _, fv := range set.FV {
		if fv.Err != nil {
			fmt.Println(render.Warn.Render(fmt.Sprintf("%s: %v", fv.Name, fv.Err)))
		}
	}
	for _, pw := range set.Power {
		if pw.Err != nil {
			fmt.Println(render.Warn.Render(fmt.Sprintf("%s: %v", pw.Name, pw.Err)))
		}
	}

	for _, fv := range set.FV {
		if fv.Name == "mean_force_velocity" && fv.Err == nil {
			fmt.Println()
			render.FVChart(os.Stdout, fv.FVResult)
		}
	}
	return export(out)
}

func runProbe(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}

	if probeMode == "" {
		probeMode = s.Probe.Aggregation
	}
	mode, err := probe.ParseMode(probeMode)
	if err != nil {
		return err
	}
	if probeRatios == nil {
		probeRatios = s.Probe.Ratios
	}
	if probeParams == nil {
		probeParams = s.Probe.Parameters
	}

	var target probe.Target
	switch probeTarget {
	case "jump":
		target = probe.SummaryTarget(s.Options())
	case "profile":
		target = probe.ProfileTarget(s.ExternalLoads, s.Options())
	default:
		return fmt.Errorf("unknown probe target %q (want jump or profile)", probeTarget)
	}

	in := probe.Input{Load: s.Load(), Params: s.Params()}
	tbl, errs := probe.Probe(in, probeParams, probeRatios, mode, target)
	for _, err := range errs {
		fmt.Println(render.Warn.Render(err.Error()))
	}
	if tbl == nil {
		return fmt.Errorf("probing produced no rows")
	}
	render.Table(os.Stdout, tbl)
	return export(tbl)
}

func runOptimal(cmd *cobra.Command, args []string) error {
	s, err := scenario(cmd)
	if err != nil {
		return err
	}

	f0, v0 := optF0, optV0
	if f0 == 0 || v0 == 0 {
		// Derive the measured profile from a simulated sweep.
		tbl, errs := sweep(s)
		reportRowErrors(s.ExternalLoads, errs)
		fv, err := fit.FVProfile(tbl, "mean_GRF_over_distance", "mean_velocity", 1)
		if err != nil {
			return fmt.Errorf("could not fit a profile to derive F0/V0: %w", err)
		}
		f0, v0 = fv.F0, fv.V0
	}

	res, err := fit.OptimalProfile(f0, v0, s.Bodyweight, s.PushOffDistance, s.Gravity)
	if err != nil {
		return err
	}

	out := table.New(fit.OptimalColumns)
	out.AppendRow(res.Values())
	render.Table(os.Stdout, out)
	return nil
}

func reportRowErrors(loads []float64, errs []error) {
	for i, err := range errs {
		if err != nil {
			fmt.Println(render.Warn.Render(fmt.Sprintf("load %g kg: %v", loads[i], err)))
		}
	}
}

func export(tbl *table.Table) error {
	if csvPath != "" {
		if err := tbl.ExportCSV(csvPath); err != nil {
			return err
		}
	}
	if jsonPath != "" {
		if err := tbl.ExportJSON(jsonPath); err != nil {
			return err
		}
	}
	return nil
}
