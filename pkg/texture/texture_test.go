package texture

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/taigrr/raster/pkg/math3d"
)

// quadrants returns a 2x2 texture:
//
//	red   green
//	blue  white
func quadrants() *Texture {
	tex := New(2, 2)
	tex.Pixels = []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255},
		{0, 0, 255, 255}, {255, 255, 255, 255},
	}
	return tex
}

func TestSampleFlipsV(t *testing.T) {
	tex := quadrants()
	tests := []struct {
		name string
		uv   math3d.Vec2
		want color.RGBA
	}{
		{"bottom left", math3d.V2(0.25, 0.25), color.RGBA{0, 0, 255, 255}},
		{"bottom right", math3d.V2(0.75, 0.25), color.RGBA{255, 255, 255, 255}},
		{"top left", math3d.V2(0.25, 0.75), color.RGBA{255, 0, 0, 255}},
		{"top right", math3d.V2(0.75, 0.75), color.RGBA{0, 255, 0, 255}},
		{"origin", math3d.V2(0, 0), color.RGBA{0, 0, 255, 255}},
		{"upper corner", math3d.V2(1, 1), color.RGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Sample(tt.uv); got != tt.want {
				t.Errorf("Sample(%v) = %v, want %v", tt.uv, got, tt.want)
			}
		})
	}
}

func TestSampleOutOfRange(t *testing.T) {
	tex := quadrants()

	// Repeat: 1.25 wraps to 0.25.
	if got, want := tex.Sample(math3d.V2(1.25, -0.75)), tex.Sample(math3d.V2(0.25, 0.25)); got != want {
		t.Errorf("repeat sample = %v, want %v", got, want)
	}

	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp
	if got, want := tex.Sample(math3d.V2(5, -3)), tex.Sample(math3d.V2(1, 0)); got != want {
		t.Errorf("clamp sample = %v, want %v", got, want)
	}
}

func TestSampleEmptyTexture(t *testing.T) {
	if got := New(0, 0).Sample(math3d.V2(0.5, 0.5)); got != (color.RGBA{}) {
		t.Errorf("empty texture sample = %v", got)
	}
}

func TestNormalMapDecode(t *testing.T) {
	tex := New(1, 1)
	tex.Pixels[0] = color.RGBA{255, 0, 255, 255}
	n := NormalMap{tex}.Normal(math3d.V2(0.5, 0.5))
	if n != math3d.V3(1, -1, 1) {
		t.Errorf("Normal() = %v, want (1,-1,1)", n)
	}

	tex.Pixels[0] = color.RGBA{128, 128, 255, 255}
	n = NormalMap{tex}.Normal(math3d.V2(0.5, 0.5))
	if math.Abs(n.X) > 0.01 || math.Abs(n.Y) > 0.01 || n.Z != 1 {
		t.Errorf("flat normal decoded to %v", n)
	}
}

func TestMapsScaleToUnit(t *testing.T) {
	tex := New(1, 1)
	tex.Pixels[0] = color.RGBA{51, 102, 255, 255}
	want := math3d.V3(0.2, 0.4, 1)
	for name, got := range map[string]math3d.Vec3{
		"base":     BaseColorMap{tex}.Color(math3d.V2(0, 0)),
		"specular": SpecularMap{tex}.Specular(math3d.V2(0, 0)),
	} {
		if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || got.Z != want.Z {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	dir := t.TempDir()

	encoders := map[string]func(*os.File) error{
		"tex.png": func(f *os.File) error { return png.Encode(f, img) },
		"tex.bmp": func(f *os.File) error { return bmp.Encode(f, img) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := encode(f); err != nil {
				t.Fatal(err)
			}
			f.Close()

			tex, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if tex.Width != 3 || tex.Height != 2 {
				t.Fatalf("size = %dx%d, want 3x2", tex.Width, tex.Height)
			}
			got, ok := tex.Pixel(2, 1)
			if !ok || got.R != 10 || got.G != 20 || got.B != 30 {
				t.Errorf("Pixel(2,1) = %v, %v", got, ok)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestNewChecker(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	tex := NewChecker(4, 4, 2, white, black)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, white},
		{1, 1, white},
		{2, 0, black},
		{0, 3, black},
		{3, 3, white},
	}
	for _, tt := range tests {
		if got, _ := tex.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
