// raster - software rasterizer
// Render OBJ and GLB meshes on the CPU to PNG files, raw RGB frames or the
// terminal.
//
// Controls (view):
//
//	A/D  - Orbit about Y
//	W/S  - Orbit about X
//	Q/E  - Orbit about Z
//	R/T  - Narrow/widen field of view
//	X    - Toggle wireframe
//	Esc  - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/raster/pkg/config"
	"github.com/taigrr/raster/pkg/render"
)

// options holds the flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	width      int
	height     int
	background string
	lines      string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "raster",
		Short: "Software 3D rasterizer",
		Long:  "raster draws triangle meshes on the CPU with Phong shading, a depth buffer and back-face culling.",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setupLogging(opts.logLevel)
		},
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "scene config file (YAML)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.IntVar(&opts.width, "width", 0, "output width in pixels (overrides config)")
	flags.IntVar(&opts.height, "height", 0, "output height in pixels (overrides config)")
	flags.StringVar(&opts.background, "bg", "", "background color, #rrggbb or r,g,b (overrides config)")
	flags.StringVar(&opts.lines, "lines", "", "line algorithm: dda, midpoint or bresenham (overrides config)")

	root.AddCommand(
		newRenderCmd(opts),
		newViewCmd(opts),
		newTurntableCmd(opts),
		newShapesCmd(opts),
		newConfigCmd(),
	)
	return root
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	render.SetLogger(logger)
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (o *options) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.height > 0 {
		cfg.Height = o.height
	}
	if o.background != "" {
		cfg.Background = o.background
	}
	if o.lines != "" {
		cfg.LineAlgorithm = o.lines
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
