package render

import (
	"fmt"
	"math"

	"github.com/taigrr/raster/pkg/math3d"
)

// LineAlgorithm selects the scan conversion used by DrawLine.
type LineAlgorithm int

const (
	LineDDA       LineAlgorithm = iota // Incremental slope (digital differential analyzer)
	LineMidpoint                       // Implicit line equation evaluated at midpoints
	LineBresenham                      // Integer error accumulation
)

var lineAlgorithmNames = map[LineAlgorithm]string{
	LineDDA:       "dda",
	LineMidpoint:  "midpoint",
	LineBresenham: "bresenham",
}

func (a LineAlgorithm) String() string {
	if s, ok := lineAlgorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("LineAlgorithm(%d)", int(a))
}

// ParseLineAlgorithm parses "dda", "midpoint" or "bresenham".
func ParseLineAlgorithm(s string) (LineAlgorithm, error) {
	for a, name := range lineAlgorithmNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown line algorithm %q", s)
}

// pixel returns the integer pixel containing coordinate f.
func pixel(f float64) int {
	return int(math.Floor(f))
}

// DrawPoint sets the pixel containing p.
func (fb *FrameBuffer) DrawPoint(p math3d.Vec2, c Color) {
	fb.SetPixel(pixel(p.X), pixel(p.Y), c)
}

// DrawLine draws the segment from start to end. The algorithms agree on
// horizontal, vertical and 45° lines; a segment whose endpoints fall in the
// same pixel draws that single pixel. Segments with a NaN or infinite
// endpoint are dropped, and endpoints far outside the buffer are clipped to a
// guard band so the scan stays bounded by the buffer size.
func (fb *FrameBuffer) DrawLine(start, end math3d.Vec2, c Color, alg LineAlgorithm) {
	if !start.IsFinite() || !end.IsFinite() {
		return
	}
	guard := float64(max(fb.Width(), fb.Height()))
	lo := math3d.V2(-guard, -guard)
	hi := math3d.V2(float64(fb.Width())+guard, float64(fb.Height())+guard)
	if !inRect(start, lo, hi) || !inRect(end, lo, hi) {
		var ok bool
		if start, end, ok = clipSegment(start, end, lo, hi); !ok {
			return
		}
	}

	x0, y0 := pixel(start.X), pixel(start.Y)
	x1, y1 := pixel(end.X), pixel(end.Y)
	if x0 == x1 && y0 == y1 {
		fb.SetPixel(x0, y0, c)
		return
	}

	// Step along the major axis so dx > 0 and |slope| <= 1.
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	plot := func(x, y int) {
		if steep {
			fb.SetPixel(y, x, c)
		} else {
			fb.SetPixel(x, y, c)
		}
	}

	switch alg {
	case LineMidpoint:
		midpointLine(x0, y0, x1, y1, plot)
	case LineBresenham:
		bresenhamLine(x0, y0, x1, y1, plot)
	default:
		ddaLine(x0, y0, x1, y1, plot)
	}
}

func inRect(p, lo, hi math3d.Vec2) bool {
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// clipSegment clips a→b to the rectangle [lo, hi] (Liang-Barsky). It reports
// false when the segment misses the rectangle.
func clipSegment(a, b, lo, hi math3d.Vec2) (math3d.Vec2, math3d.Vec2, bool) {
	d := b.Sub(a)
	if !d.IsFinite() {
		return a, b, false
	}
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-d.X, a.X - lo.X},
		{d.X, hi.X - a.X},
		{-d.Y, a.Y - lo.Y},
		{d.Y, hi.Y - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}

func ddaLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	k := float64(y1-y0) / float64(x1-x0)
	y := float64(y0)
	for x := x0; x <= x1; x++ {
		plot(x, int(math.Floor(y+0.5)))
		y += k
	}
}

// midpointLine evaluates f(x,y) = (y0-y1)x + (x1-x0)y + x0*y1 - x1*y0 at the
// midpoint between the two candidate pixels.
func midpointLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	inc := 1
	if y1 < y0 {
		inc = -1
	}
	fx0, fy0, fx1, fy1 := float64(x0), float64(y0), float64(x1), float64(y1)
	f := func(x, y float64) float64 {
		return (fy0-fy1)*x + (fx1-fx0)*y + fx0*fy1 - fx1*fy0
	}

	y := y0
	for x := x0; x <= x1; x++ {
		plot(x, y)
		if float64(inc)*f(float64(x+1), float64(y)+0.5*float64(inc)) < 0 {
			y += inc
		}
	}
}

func bresenhamLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, dy := x1-x0, y1-y0
	inc := 1
	if dy < 0 {
		inc = -1
	}

	delta := -inc * dx
	y := y0
	for x := x0; x <= x1; x++ {
		plot(x, y)
		delta += 2 * dy
		if inc*delta > 0 {
			y += inc
			delta -= inc * 2 * dx
		}
	}
}

// DrawTriangle fills the screen-space triangle p0, p1, p2 with a flat color
// using the same pixel-center coverage rule as the shaded pipeline.
func (fb *FrameBuffer) DrawTriangle(p0, p1, p2 math3d.Vec2, c Color) {
	rast, ok := newTriangleRaster(p0, p1, p2, fb.Width(), fb.Height())
	if !ok {
		return
	}
	for y := rast.minY; y <= rast.maxY; y++ {
		for x := rast.minX; x <= rast.maxX; x++ {
			if a, b, g := rast.weights(x, y); a >= 0 && b >= 0 && g >= 0 {
				fb.SetPixel(x, y, c)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
