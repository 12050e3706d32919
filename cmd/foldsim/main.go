package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foldsim/foldsim/internal/analysis"
	"github.com/foldsim/foldsim/internal/bridge"
	"github.com/foldsim/foldsim/internal/config"
	"github.com/foldsim/foldsim/internal/engine"
	"github.com/foldsim/foldsim/internal/forcefield"
	"github.com/foldsim/foldsim/internal/integrators"
	"github.com/foldsim/foldsim/internal/molecule"
	"github.com/foldsim/foldsim/internal/storage"
	"github.com/foldsim/foldsim/internal/tui"
	"github.com/foldsim/foldsim/internal/viz"
)

var (
	dataDir     string
	sequence    string
	level       string
	temperature float64
	seed        int64
	rotations   []string
	integrator  string
	configFile  string
	preset      string
	outputFile  string
	numRuns     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "foldsim",
		Short: "coarse-grained peptide folding simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".foldsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a folding simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "show available physics levels",
		RunE:  showLevels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE:  showPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		RunE:  runLiveView,
	}
	addRunFlags(liveCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "energy statistics and spectral analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent replicas with sequential seeds",
		RunE:  runEnsemble,
	}
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of replicas")

	bridgeCmd := &cobra.Command{
		Use:   "bridge",
		Short: "serve one JSON simulation request on stdin/stdout",
		RunE:  runBridge,
	}
	bridgeCmd.Flags().Int64Var(&seed, "seed", integrators.DefaultSeed, "random seed")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		levelsCmd, presetsCmd, liveCmd, analyzeCmd, ensembleCmd, bridgeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sequence, "seq", config.DefaultSequence, "one-letter amino acid sequence")
	cmd.Flags().StringVar(&level, "level", config.DefaultLevel, "physics level (toy, coarse, gb, full)")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "temperature in K")
	cmd.Flags().Int64Var(&seed, "seed", integrators.DefaultSeed, "random seed")
	cmd.Flags().StringArrayVar(&rotations, "rotate", nil, "phi rotation as residue:angle_radians (repeatable)")
	cmd.Flags().StringVar(&integrator, "integrator", "", "override integrator (brownian)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and flags. Flags win over the
// config file, which wins over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seq") {
		cfg.Sequence = sequence
	}
	if cmd.Flags().Changed("level") {
		cfg.Level = level
	}
	if cmd.Flags().Changed("temp") {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("rotate") {
		cfg.Rotations = cfg.Rotations[:0]
		for _, spec := range rotations {
			var residue int
			var angle float64
			if _, err := fmt.Sscanf(spec, "%d:%f", &residue, &angle); err != nil {
				return nil, fmt.Errorf("bad rotation %q, want residue:angle", spec)
			}
			cfg.Rotations = append(cfg.Rotations, config.Rotation{Residue: residue, Angle: angle})
		}
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	} else if cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*engine.Engine, engine.Level, *engine.PhysicsRequest) {
	lvl := engine.ParseLevel(cfg.Level)

	var eng *engine.Engine
	chain := molecule.FromSequence(cfg.Sequence)
	if integrator == "brownian" {
		params := lvl.Params()
		friction := params.Friction
		if friction <= 0 {
			friction = 1.0
		}
		var ff forcefield.ForceField = forcefield.NewCoarseGrained()
		if params.AllAtom {
			ff = forcefield.NewAmber99SB()
		}
		integ := integrators.NewBrownian(chain.Len(), cfg.Temperature, friction, cfg.Seed)
		eng = engine.NewCustom(lvl, ff, integ)
	} else {
		eng = engine.New(lvl, cfg.Seed)
	}

	types := make([]string, 0, len(cfg.Sequence))
	for _, r := range cfg.Sequence {
		types = append(types, molecule.ThreeLetterCode(r))
	}

	commands := make([]engine.RotationCommand, 0, len(cfg.Rotations))
	for _, rot := range cfg.Rotations {
		commands = append(commands, engine.RotationCommand{Residue: rot.Residue, Angle: rot.Angle})
	}

	request := &engine.PhysicsRequest{
		InitialPositions: chain.Positions(),
		ResidueTypes:     types,
		RotationCommands: commands,
		PhysicsLevel:     lvl,
		Temperature:      cfg.Temperature,
	}
	return eng, lvl, request
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng, lvl, request := buildEngine(cfg)

	chain := molecule.FromSequence(cfg.Sequence)
	quickLook := molecule.DefaultEnergyModel().TotalEnergy(chain)
	fmt.Printf("%s  %d residues  starting model energy %.4f\n",
		cfg.Sequence, chain.Len(), quickLook)

	outcome, err := eng.Run(request)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Sequence, string(lvl), cfg.Temperature, cfg.Seed, outcome)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(outcome))
	fmt.Printf("saved run %s\n", runID)
	return nil
}

func runLiveView(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng, lvl, request := buildEngine(cfg)

	outcome, err := tui.RunLive(eng, request, cfg.Sequence, lvl.Params().Steps)
	if err != nil {
		return err
	}
	if outcome == nil {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Sequence, string(lvl), cfg.Temperature, cfg.Seed, outcome)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", runID)
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEQUENCE\tLEVEL\tTEMP\tSTEPS\tENERGY\tRMSD")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%.4f\t%.4f\n",
			r.ID, r.Sequence, r.Level, r.Temperature, r.Steps, r.FinalEnergy, r.RMSD)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	outcome, err := st.LoadOutcome(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotTrajectory(outcome.TrajectoryData))
	fmt.Println()
	fmt.Println(viz.Summary(outcome))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(args[0], outputFile)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportCSV(args[0], outputFile)
}

func showLevels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tFORCE FIELD\tINTEGRATOR\tDT (ps)\tSTEPS\tFRICTION")
	for _, lvl := range engine.Levels() {
		p := lvl.Params()
		ff := "coarse-grained"
		if p.AllAtom {
			ff = "amber99sb+gb"
		}
		integ := "verlet"
		if p.Friction > 0 {
			integ = "langevin"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%d\t%.1f\n",
			lvl, ff, integ, p.Timestep, p.Steps, p.Friction)
	}
	return w.Flush()
}

func showPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSEQUENCE\tLEVEL\tTEMP")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\n", name, p.Sequence, p.Level, p.Temperature)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, energies, temperatures, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(energies) == 0 {
		fmt.Println("no trajectory samples recorded for this run")
		return nil
	}

	stats := analysis.Stats(energies)
	fmt.Printf("energy: mean=%.4f stddev=%.4f min=%.4f max=%.4f drift=%.6f/sample\n",
		stats.Mean, stats.StdDev, stats.Min, stats.Max, stats.Drift)

	tstats := analysis.Stats(temperatures)
	fmt.Printf("temperature: mean=%.2f stddev=%.2f\n", tstats.Mean, tstats.StdDev)

	tau := analysis.CorrelationTime(energies)
	fmt.Printf("energy correlation time: %d samples\n", tau)

	if len(energies) >= 8 {
		ps := analysis.PowerSpectrum(energies)
		fmt.Println()
		fmt.Println(viz.PlotSeries(ps, "energy power spectrum"))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	_, lvl, request := buildEngine(cfg)

	ens := engine.NewEnsemble(lvl, numRuns, cfg.Seed)
	outcomes, err := ens.Run(cmd.Context(), request)
	if err != nil {
		return err
	}

	stats := engine.Summarize(outcomes)
	fmt.Printf("replicas: %d (seeds %d..%d)\n", stats.Runs, cfg.Seed, cfg.Seed+int64(stats.Runs)-1)
	fmt.Printf("mean energy: %.4f kcal/mol\n", stats.MeanEnergy)
	fmt.Printf("mean rmsd: %.4f A\n", stats.MeanRMSD)
	fmt.Printf("mean radius of gyration: %.4f A\n", stats.MeanRg)
	return nil
}

func runBridge(cmd *cobra.Command, args []string) error {
	return bridge.Serve(os.Stdin, os.Stdout, seed)
}
