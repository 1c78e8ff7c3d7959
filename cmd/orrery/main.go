package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/engine"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/tui"
)

var (
	configFile string
	preset     string
	sceneName  string
	dt         float64
	days       float64
	threshold  float64
	maxPull    float64
	saveEvery  int
	historyCap int
	frameRate  int
	watch      bool
	viewScale  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orrery",
		Short: "gravitating body simulator with rewindable history",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation headless and report on it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "render frames while running")
	runCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate for --watch")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the interactive viewer",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes and config presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("scenes:")
			for _, name := range scene.PresetNames() {
				orbiters, _ := scene.Preset(name)
				fmt.Printf("  %-12s %d bodies\n", name, len(orbiters))
			}
			fmt.Println("config presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, scenesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&sceneName, "scene", "", "scene name or yaml file")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep in seconds")
	cmd.Flags().Float64Var(&days, "days", 0, "simulated duration in days")
	cmd.Flags().Float64Var(&threshold, "pull-mass-threshold", -1, "minimum mass for a body to pull others")
	cmd.Flags().Float64Var(&maxPull, "max-pull-distance", 0, "gravity cutoff distance in meters")
	cmd.Flags().IntVar(&saveEvery, "save-every", 0, "steps between history snapshots")
	cmd.Flags().IntVar(&historyCap, "history-cap", 0, "maximum snapshots kept")
	cmd.Flags().Float64Var(&viewScale, "view-scale", 1e10, "meters per column when rendering")
}

// buildConfig layers preset, config file, then explicit flags.
func buildConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)",
				preset, strings.Join(config.ListPresets(), ", "))
		}
		c := *p
		cfg = &c
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if sceneName != "" {
		cfg.Scene = sceneName
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if days > 0 {
		cfg.Days = days
	}
	if threshold >= 0 {
		cfg.PullMassThreshold = threshold
	}
	if maxPull > 0 {
		cfg.MaxPullDistance = maxPull
	}
	if saveEvery > 0 {
		cfg.SaveEvery = saveEvery
	}
	if historyCap > 0 {
		cfg.HistoryCap = historyCap
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadScene treats the name as a built-in first, then as a file path.
func loadScene(name string) ([]engine.Orbiter, error) {
	if orbiters, ok := scene.Preset(name); ok {
		return orbiters, nil
	}
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return scene.LoadFile(name)
	}
	return nil, fmt.Errorf("unknown scene %q (built-in: %s)",
		name, strings.Join(scene.PresetNames(), ", "))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	orbiters, err := loadScene(cfg.Scene)
	if err != nil {
		return err
	}

	sys := engine.New(orbiters, cfg.EngineParams())
	steps := int(cfg.Days * 86_400 / cfg.Dt)

	var renderer *tui.LiveRenderer
	if watch {
		renderer = tui.NewLiveRenderer(frameRate, viewScale)
		renderer.Start()
		defer renderer.Stop()
	}

	momentum := &metrics.MomentumDrift{}
	energy := &metrics.EnergyDrift{}
	observers := []metrics.Observer{momentum, energy}
	for _, o := range observers {
		o.Observe(sys.Orbiters())
	}

	for i := 0; i < steps; i++ {
		sys.Update(cfg.Dt)
		for _, o := range observers {
			o.Observe(sys.Orbiters())
		}
		if renderer != nil {
			renderer.OnStep(sys.Orbiters(), sys.Mode(), float64(i+1)*cfg.Dt)
		}
	}

	final := sys.Orbiters()
	fmt.Printf("simulated %s for %.1f days (%d steps of %.0fs)\n",
		cfg.Scene, cfg.Days, steps, cfg.Dt)
	fmt.Printf("bodies: %d  merges: %d  snapshots: %d\n",
		len(final), sys.Merges(), sys.HistoryLen())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "metric\tvalue")
	fmt.Fprintf(w, "total mass\t%.4e kg\n", metrics.TotalMass(final))
	p := metrics.TotalMomentum(final)
	fmt.Fprintf(w, "total momentum\t%.4e kg m/s\n", p.Len())
	fmt.Fprintf(w, "kinetic energy\t%.4e J\n", metrics.KineticEnergy(final))
	fmt.Fprintf(w, "total energy\t%.4e J\n", metrics.TotalEnergy(final))
	fmt.Fprintf(w, "momentum drift\t%.2e\n", momentum.Value())
	fmt.Fprintf(w, "energy drift\t%.2e\n", energy.Value())
	w.Flush()

	fmt.Println("\nsurviving bodies:")
	bw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(bw, "name\tmass (kg)\tspeed (m/s)\tdistance from origin (m)")
	for _, o := range final {
		fmt.Fprintf(bw, "%s\t%.4e\t%.1f\t%.4e\n",
			o.Orbiter.Body.Name,
			o.Orbiter.Body.Mass,
			o.Orbiter.Kin.Vel.Len(),
			o.Orbiter.Kin.Pos.Len())
	}
	bw.Flush()
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	orbiters, err := loadScene(cfg.Scene)
	if err != nil {
		return err
	}
	sys := engine.New(orbiters, cfg.EngineParams())
	return tui.Run(sys, cfg.Dt, viewScale)
}
