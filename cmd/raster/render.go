package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/render"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		output    string
		raw       bool
		wireframe bool
		axes      bool
		bounds    bool
	)

	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render one frame to a PNG or raw RGB file",
		Long: "Render draws the model once and writes the frame as PNG, or with --raw as\n" +
			"interleaved 8-bit RGB rows from the top (3*width*height bytes). Use -o - for stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			s.draw(r, wireframe)
			if bounds {
				r.DrawBounds(s.mesh, math3d.Identity(), render.ColorGray, s.lines)
			}
			if axes {
				r.DrawAxes(s.mesh.Size().Len()/2, s.lines)
			}
			st := r.Stats()
			slog.Info("rendered",
				"triangles", st.Triangles,
				"backfacing", st.BackFacing,
				"outside", st.OutsideNDC,
				"fragments", st.FragmentsWritten,
			)

			if raw {
				return writeRaw(cmd.OutOrStdout(), output, r.Frame())
			}
			return writePNG(cmd.OutOrStdout(), output, r.FrameBuffer())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "frame.png", "output file, - for stdout")
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw RGB bytes instead of PNG")
	cmd.Flags().BoolVar(&wireframe, "wireframe", false, "draw triangle edges only")
	cmd.Flags().BoolVar(&axes, "axes", false, "overlay the world axes")
	cmd.Flags().BoolVar(&bounds, "bounds", false, "overlay the model bounding box")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func writeRaw(stdout io.Writer, path string, frame []byte) error {
	if path == "-" {
		_, err := stdout.Write(frame)
		return err
	}
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("wrote frame", "path", path, "bytes", len(frame))
	return nil
}

func writePNG(stdout io.Writer, path string, fb *render.FrameBuffer) error {
	if path == "-" {
		return encodePNG(stdout, fb.ToImage())
	}
	if err := fb.SavePNG(path); err != nil {
		return err
	}
	slog.Info("wrote frame", "path", path)
	return nil
}
