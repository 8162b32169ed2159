package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/render"
)

func newTurntableCmd(opts *options) *cobra.Command {
	var (
		frames    int
		outDir    string
		jobs      int
		wireframe bool
	)

	cmd := &cobra.Command{
		Use:   "turntable [model]",
		Short: "Render a full orbit about the Y axis as numbered PNG frames",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 {
				return fmt.Errorf("--frames must be positive, got %d", frames)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			s, err := loadScene(cfg, firstArg(args))
			if err != nil {
				return err
			}
			r, err := s.newRenderer(cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}

			bar := progressbar.NewOptions(frames,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("rendering"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			tt := turntable{frames: frames, jobs: jobs, dir: outDir, wireframe: wireframe}
			if err := tt.render(cmd.Context(), s, r, bar); err != nil {
				return err
			}
			if err := bar.Finish(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", frames, outDir)
			return nil
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 36, "number of frames in one revolution")
	cmd.Flags().StringVarP(&outDir, "output", "o", "turntable", "output directory")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "parallel PNG encoders")
	cmd.Flags().BoolVar(&wireframe, "wireframe", false, "draw triangle edges only")
	return cmd
}

// turntable renders one revolution about the Y axis as numbered PNG files.
type turntable struct {
	frames    int
	jobs      int
	dir       string
	wireframe bool
}

// render draws every frame and waits for the encoders. Rendering is
// sequential; only PNG encoding runs in parallel, on copies of each frame.
// Canceling ctx stops it early with the context's error.
func (tt turntable) render(ctx context.Context, s *scene, r *render.Renderer, bar *progressbar.ProgressBar) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(tt.jobs, 1))
	step := math3d.QuatFromAxisAngle(math3d.V3(0, 1, 0), 2*math.Pi/float64(tt.frames))

	for i := range tt.frames {
		if gctx.Err() != nil {
			break
		}
		s.draw(r, tt.wireframe)
		img := r.FrameBuffer().ToImage()
		path := filepath.Join(tt.dir, fmt.Sprintf("frame_%04d.png", i))

		g.Go(func() error {
			if err := savePNG(path, img); err != nil {
				return err
			}
			return bar.Add(1)
		})
		r.Camera().RotationAround(s.target, step)
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
