package render

import (
	"image/color"
	"math"

	"github.com/taigrr/raster/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
	ColorGray  = color.RGBA{128, 128, 128, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// ColorFromVec converts channels in [0,255] to a Color, clamping out-of-range
// values and truncating fractions. NaN channels become 0.
func ColorFromVec(v math3d.Vec3) Color {
	return RGB(channel(v.X), channel(v.Y), channel(v.Z))
}

func channel(f float64) uint8 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}
