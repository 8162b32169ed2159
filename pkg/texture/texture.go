// Package texture decodes images into sampled textures and provides the three
// material maps the shaders read: base color, object-space normals and
// specular intensity.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder

	"github.com/taigrr/raster/pkg/math3d"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// Texture is a decoded RGB image sampled with nearest-neighbor lookup.
type Texture struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major, row 0 at the top
	WrapU  WrapMode
	WrapV  WrapMode
}

// New creates a black texture with the given dimensions.
func New(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Load decodes a PNG, JPEG, BMP or TIFF file into a texture.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage copies an image.Image into a texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := New(bounds.Dx(), bounds.Dy())
	for y := range tex.Height {
		for x := range tex.Width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.Pixels[y*tex.Width+x] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		}
	}
	return tex
}

// NewChecker creates a procedural checkerboard texture.
func NewChecker(width, height, checkSize int, c1, c2 color.RGBA) *Texture {
	tex := New(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Pixels[y*width+x] = c1
			} else {
				tex.Pixels[y*width+x] = c2
			}
		}
	}
	return tex
}

// Pixel returns the texel at (x, y), or false when out of range.
func (t *Texture) Pixel(x, y int) (color.RGBA, bool) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return color.RGBA{}, false
	}
	return t.Pixels[y*t.Width+x], true
}

// Sample returns the nearest texel to (u, v). V is flipped so that v=0 is the
// bottom row of the image. Coordinates outside [0,1] are wrapped or clamped
// per axis, and u=1 or v=0 land on the last column or row.
func (t *Texture) Sample(uv math3d.Vec2) color.RGBA {
	if t.Width == 0 || t.Height == 0 {
		return color.RGBA{}
	}
	u := wrapCoord(uv.X, t.WrapU)
	v := wrapCoord(uv.Y, t.WrapV)

	x := clampIndex(int(u*float64(t.Width)), t.Width)
	y := clampIndex(int((1-v)*float64(t.Height)), t.Height)
	return t.Pixels[y*t.Width+x]
}

// SampleVec returns the nearest texel with channels scaled to [0,1].
func (t *Texture) SampleVec(uv math3d.Vec2) math3d.Vec3 {
	c := t.Sample(uv)
	return math3d.V3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func wrapCoord(c float64, mode WrapMode) float64 {
	switch mode {
	case WrapClamp:
		return math.Max(0, math.Min(1, c))
	default:
		// Keep exact 1 as 1 so the top edge maps to the last texel instead of wrapping to 0.
		if c >= 0 && c <= 1 {
			return c
		}
		return c - math.Floor(c)
	}
}

func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
