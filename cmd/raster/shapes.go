package main

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/render"
)

func newShapesCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Draw 2D line, triangle and point primitives to a PNG",
		Long: "Shapes draws a fan of lines with each of the dda, midpoint and bresenham\n" +
			"algorithms side by side, filled triangles below them, and a row of points.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			bg, err := parseBackground(cfg.Background)
			if err != nil {
				return err
			}

			fb := render.NewFrameBuffer(cfg.Width, cfg.Height)
			fb.Clear(bg)
			drawShapes(fb)
			return writePNG(cmd.OutOrStdout(), output, fb)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "shapes.png", "output file, - for stdout")
	return cmd
}

// drawShapes lays the primitives out in three columns, one per line
// algorithm.
func drawShapes(fb *render.FrameBuffer) {
	w, h := float64(fb.Width()), float64(fb.Height())
	algs := []render.LineAlgorithm{render.LineDDA, render.LineMidpoint, render.LineBresenham}
	colors := []render.Color{render.ColorRed, render.ColorGreen, render.ColorBlue}
	colW := w / float64(len(algs))

	for i, alg := range algs {
		x0 := colW * float64(i)
		center := math3d.V2(x0+colW/2, h/3)
		radius := math.Min(colW, h/1.5) * 0.45

		const spokes = 24
		for k := range spokes {
			a := 2 * math.Pi * float64(k) / spokes
			end := center.Add(math3d.V2(math.Cos(a), math.Sin(a)).Scale(radius))
			fb.DrawLine(center, end, colors[i], alg)
		}

		top := 2 * h / 3
		fb.DrawTriangle(
			math3d.V2(x0+colW*0.1, h*0.95),
			math3d.V2(x0+colW*0.9, h*0.95),
			math3d.V2(x0+colW*0.5, top),
			colors[i],
		)
		fb.DrawLine(math3d.V2(x0+colW*0.1, h*0.95), math3d.V2(x0+colW*0.5, top), render.ColorWhite, alg)
	}

	for x := 0.0; x < w; x += 8 {
		fb.DrawPoint(math3d.V2(x, h*0.65), render.ColorWhite)
	}
}
