package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/gekko3d/pxhost"
)

var (
	configFile string
	debug      bool
	duration   time.Duration
	sample     time.Duration
	frequency  uint32
	noGravity  bool
	plotWidth  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "pxhost",
		Short:        "headless rigid-body simulation host",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the demo scene and plot actor heights",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}
	runCmd.Flags().DurationVar(&duration, "time", 5*time.Second, "wall-clock run time")
	runCmd.Flags().DurationVar(&sample, "sample", 50*time.Millisecond, "snapshot interval")
	runCmd.Flags().Uint32Var(&frequency, "hz", 0, "tick frequency override")
	runCmd.Flags().BoolVar(&noGravity, "no-gravity", false, "start weightless")
	runCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	runCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	inertiaCmd := &cobra.Command{
		Use:   "inertia [shape] [mass] [dims...]",
		Short: "print a mass-space inertia tensor",
		Long: "shapes: sphere <r>, hollow-sphere <r>, cube <width>, capsule <r> <half-height>.\n" +
			"Capsules lie along X.",
		Args: cobra.MinimumNArgs(3),
		RunE: printInertia,
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list material coefficients",
		Args:  cobra.NoArgs,
		RunE:  listMaterials,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default config to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pxhost.SaveConfig(args[0], pxhost.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, inertiaCmd, materialsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (pxhost.Config, error) {
	cfg := pxhost.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = pxhost.LoadConfig(configFile); err != nil {
			return cfg, err
		}
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if frequency > 0 {
		cfg.FrequencyHz = frequency
	}
	cfg.GravityEnabled = !noGravity
	if sample <= 0 {
		return fmt.Errorf("sample interval must be positive, got %s", sample)
	}

	engine, err := startEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	actors, err := populateDemo(engine)
	if err != nil {
		return fmt.Errorf("build demo scene: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	trace := newHeightTrace(actors)
	ticker := time.NewTicker(sample)
	defer ticker.Stop()
	trace.record(engine.Snapshot())
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			trace.record(engine.Snapshot())
		}
	}

	stats := engine.Stats()
	if err := engine.Close(); err != nil {
		return err
	}

	fmt.Println(trace.plot(plotWidth, plotHeight))
	fmt.Println()
	fmt.Println(renderSummary(trace, stats, engine.Frequency()))
	return nil
}

// startEngine returns a running engine or closes the degraded one.
func startEngine(cfg pxhost.Config) (*pxhost.Engine, error) {
	engine, err := pxhost.New(cfg)
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("start engine: %w", err)
	}
	return engine, nil
}

func printInertia(cmd *cobra.Command, args []string) error {
	nums := make([]float32, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", a, err)
		}
		nums = append(nums, float32(v))
	}
	mass, dims := nums[0], nums[1:]

	var tensor mgl32.Vec3
	switch args[0] {
	case "sphere":
		tensor = pxhost.InertiaTensorSolidSphere(dims[0], mass)
	case "hollow-sphere":
		tensor = pxhost.InertiaTensorHollowSphere(dims[0], mass)
	case "cube":
		tensor = pxhost.InertiaTensorSolidCube(dims[0], mass)
	case "capsule":
		if len(dims) < 2 {
			return fmt.Errorf("capsule needs radius and half-height")
		}
		tensor = pxhost.InertiaTensorSolidCapsule(dims[0], dims[1], mass)
	default:
		return fmt.Errorf("unknown shape %q", args[0])
	}
	fmt.Println(renderInertia(args[0], mass, tensor))
	return nil
}

func listMaterials(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog := pxhost.DefaultMaterialCatalog()
	for name, props := range cfg.Materials {
		id, err := pxhost.ParseMaterialID(name)
		if err != nil {
			return err
		}
		catalog[id.String()] = props
	}
	fmt.Println(renderMaterials(catalog))
	return nil
}
