package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// Buffer is a fixed-size 2D grid stored row-major at index x + y*width.
// Writes outside the grid are dropped and reads outside it report false.
type Buffer[T any] struct {
	width  int
	height int
	data   []T
}

// NewBuffer creates a width×height buffer filled with v.
func NewBuffer[T any](width, height int, v T) *Buffer[T] {
	b := &Buffer[T]{
		width:  width,
		height: height,
		data:   make([]T, width*height),
	}
	b.Reset(v)
	return b
}

// Width returns the buffer width.
func (b *Buffer[T]) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer[T]) Height() int { return b.height }

// Len returns width*height.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Data exposes the backing slice.
func (b *Buffer[T]) Data() []T { return b.data }

func (b *Buffer[T]) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set stores v at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer[T]) Set(x, y int, v T) {
	if !b.inside(x, y) {
		return
	}
	b.data[x+y*b.width] = v
}

// Get returns the value at (x, y), or false when out of range.
func (b *Buffer[T]) Get(x, y int) (T, bool) {
	if !b.inside(x, y) {
		var zero T
		return zero, false
	}
	return b.data[x+y*b.width], true
}

// Reset fills every cell with v.
func (b *Buffer[T]) Reset(v T) {
	// Use copy-doubling for faster clearing
	n := len(b.data)
	if n == 0 {
		return
	}
	b.data[0] = v
	for i := 1; i < n; i *= 2 {
		copy(b.data[i:], b.data[:i])
	}
}

// FrameBuffer is the color render target.
type FrameBuffer struct {
	*Buffer[Color]
}

// NewFrameBuffer creates a black frame buffer.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{NewBuffer(width, height, ColorBlack)}
}

// SetPixel sets a pixel at (x, y). Bounds checking is performed.
func (fb *FrameBuffer) SetPixel(x, y int, c Color) {
	fb.Set(x, y, c)
}

// GetPixel returns the color at (x, y), or transparent black if out of bounds.
func (fb *FrameBuffer) GetPixel(x, y int) Color {
	c, _ := fb.Get(x, y)
	return c
}

// Clear fills the frame buffer with a solid color.
func (fb *FrameBuffer) Clear(c Color) {
	fb.Reset(c)
}

// Flatten returns the pixels as interleaved R, G, B bytes in scan order,
// 3*width*height bytes in total.
func (fb *FrameBuffer) Flatten() []byte {
	out := make([]byte, 0, 3*fb.Len())
	for _, c := range fb.Data() {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// ToImage converts the frame buffer to a standard Go image.RGBA.
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	for i, c := range fb.Data() {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = 255
	}
	return img
}

// SavePNG saves the frame buffer as a PNG file.
func (fb *FrameBuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// DepthBuffer stores NDC depth per pixel. Larger values are closer to the
// camera: the near plane maps to +1 and the far plane to -1.
type DepthBuffer struct {
	*Buffer[float64]
}

// NewDepthBuffer creates a depth buffer cleared to negative infinity.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{NewBuffer(width, height, math.Inf(-1))}
}

// Clear resets every cell to negative infinity so the first fragment passes.
func (db *DepthBuffer) Clear() {
	db.Reset(math.Inf(-1))
}

// Test reports whether f is strictly closer than the stored depth.
// Fragments outside the buffer never pass.
func (db *DepthBuffer) Test(f ShadedFragment) bool {
	stored, ok := db.Get(f.X, f.Y)
	return ok && f.Depth > stored
}

// Write stores the depth of f.
func (db *DepthBuffer) Write(f ShadedFragment) {
	db.Set(f.X, f.Y, f.Depth)
}
