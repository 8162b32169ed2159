package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taigrr/raster/pkg/controls"
	"github.com/taigrr/raster/pkg/render"
)

func newViewCmd(opts *options) *cobra.Command {
	var wireframe bool

	cmd := &cobra.Command{
		Use:   "view [model]",
		Short: "Orbit the model interactively in the terminal",
		Long: "View renders into the terminal with half-block cells, two pixel rows per\n" +
			"text row. a/d, w/s and q/e orbit about Y, X and Z; r/t change the field\n" +
			"of view; x toggles wireframe; esc quits.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("view needs a terminal on stdout; use render instead")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			s, err := loadScene(cfg, firstArg(args))
			if err != nil {
				return err
			}
			return runView(cmd.Context(), s, wireframe)
		},
	}
	cmd.Flags().BoolVar(&wireframe, "wireframe", false, "start in wireframe mode")
	return cmd
}

func runView(ctx context.Context, s *scene, wireframe bool) error {
	t := uv.DefaultTerminal()

	cols, rows, err := t.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := t.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	t.EnterAltScreen()
	t.HideCursor()
	t.Resize(cols, rows)
	defer func() {
		t.ExitAltScreen()
		t.ShowCursor()
		t.Shutdown(context.Background())
	}()

	r, err := s.newRenderer(render.TerminalSize(cols, rows))
	if err != nil {
		return err
	}

	orbiter := controls.NewOrbiter(r.Camera(), s.target)
	orbiter.OrbitStep = s.cfg.Controls.OrbitStep
	orbiter.FOVStep = s.cfg.Controls.FOVStep
	if s.cfg.Controls.Inertia {
		orbiter.EnableInertia(s.cfg.Controls.FPS)
	}
	keys := controls.NewKeyState()
	bound := controls.Keys(orbiter.Bindings)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.Controls.FPS))
	defer ticker.Stop()

	events := t.Events()
	dirty := true
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				t.Erase()
				t.Resize(cols, rows)
				r.Resize(render.TerminalSize(cols, rows))
				dirty = true
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					return nil
				case ev.MatchString("x"):
					wireframe = !wireframe
					dirty = true
				default:
					keys.HandleEvent(ev, bound)
				}
			default:
				keys.HandleEvent(ev, bound)
			}

		case <-ticker.C:
			if orbiter.Update(keys) {
				dirty = true
			}
			if !dirty {
				continue
			}
			s.draw(r, wireframe)
			r.FrameBuffer().Draw(t, uv.Rect(0, 0, cols, rows))
			if err := t.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			slog.Debug("frame", "fov", r.Camera().Frustum().FOV, "position", r.Camera().Position())
			dirty = false
		}
	}
}
