package render

import (
	"math"

	"github.com/taigrr/raster/pkg/math3d"
)

// Uniform is the per-vertex output of a vertex shader.
type Uniform struct {
	World    math3d.Vec3 // World-space position
	Normal   math3d.Vec3 // World-space normal
	NDC      math3d.Vec3 // Position after projection and perspective divide
	TexCoord math3d.Vec2
}

// Fragment is one covered pixel of a triangle with attributes interpolated
// from its vertices.
type Fragment struct {
	World    math3d.Vec3
	Normal   math3d.Vec3 // Unit length unless the interpolated normal vanished
	TexCoord math3d.Vec2
	X, Y     int
	Depth    float64 // NDC z; larger is closer
}

// ShadedFragment is the output of a fragment shader.
type ShadedFragment struct {
	X, Y  int
	Depth float64
	Color Color
}

// Triangle is an assembled primitive of three shaded vertices.
type Triangle struct {
	A, B, C Uniform
}

// FaceNormal returns the unit normal of the world-space triangle, oriented by
// counter-clockwise winding.
func (t Triangle) FaceNormal() math3d.Vec3 {
	return t.B.World.Sub(t.A.World).Cross(t.C.World.Sub(t.A.World)).Normalize()
}

// InsideNDC reports whether every vertex lies in the [-1,1]³ cube.
// Non-finite coordinates count as outside.
func (t Triangle) InsideNDC() bool {
	return insideNDC(t.A.NDC) && insideNDC(t.B.NDC) && insideNDC(t.C.NDC)
}

// Interpolate blends the vertex attributes with barycentric weights
// (alpha, beta, gamma) for vertices A, B and C. Interpolation is affine in
// screen space; no 1/w correction is applied.
func (t Triangle) Interpolate(alpha, beta, gamma float64, x, y int) Fragment {
	n := t.A.Normal.Scale(alpha).Add(t.B.Normal.Scale(beta)).Add(t.C.Normal.Scale(gamma))
	if n.LenSq() > 0 {
		n = n.Normalize()
	}
	return Fragment{
		World:  t.A.World.Scale(alpha).Add(t.B.World.Scale(beta)).Add(t.C.World.Scale(gamma)),
		Normal: n,
		TexCoord: t.A.TexCoord.Scale(alpha).
			Add(t.B.TexCoord.Scale(beta)).
			Add(t.C.TexCoord.Scale(gamma)),
		X:     x,
		Y:     y,
		Depth: t.A.NDC.Z*alpha + t.B.NDC.Z*beta + t.C.NDC.Z*gamma,
	}
}

// toScreen maps NDC x,y to pixel coordinates with the origin at the top-left.
func toScreen(ndc math3d.Vec3, width, height int) math3d.Vec2 {
	return math3d.V2(
		(ndc.X+1)*0.5*float64(width),
		(1-ndc.Y)*0.5*float64(height),
	)
}

// edgeCoeffs returns A, B, C for edge(x,y) = A*x + B*y + C, the signed
// doubled area of the triangle (p0, p1, (x,y)).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// triangleRaster holds the edge equations and clamped pixel bounds of a
// screen-space triangle.
type triangleRaster struct {
	edges                  [3][3]float64 // Opposite vertex 0, 1, 2
	invArea                float64
	minX, maxX, minY, maxY int
}

// newTriangleRaster prepares p0, p1, p2 for scanning inside a width×height
// target. It reports false for degenerate triangles or ones that miss the
// target entirely.
func newTriangleRaster(p0, p1, p2 math3d.Vec2, width, height int) (triangleRaster, bool) {
	var r triangleRaster

	a0, b0, c0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	a1, b1, c1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	a2, b2, c2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)
	r.edges = [3][3]float64{{a0, b0, c0}, {a1, b1, c1}, {a2, b2, c2}}

	area2 := a2*p2.X + b2*p2.Y + c2
	if area2 == 0 || math.IsNaN(area2) || math.IsInf(area2, 0) {
		return r, false
	}
	r.invArea = 1 / area2

	lo := p0.Min(p1).Min(p2)
	hi := p0.Max(p1).Max(p2)
	r.minX = int(math.Max(0, math.Floor(lo.X)))
	r.minY = int(math.Max(0, math.Floor(lo.Y)))
	r.maxX = int(math.Min(float64(width-1), math.Ceil(hi.X)))
	r.maxY = int(math.Min(float64(height-1), math.Ceil(hi.Y)))

	return r, r.minX <= r.maxX && r.minY <= r.maxY
}

// weights returns the barycentric coordinates of pixel (x, y) sampled at its
// center. The pixel is covered when all three are non-negative.
func (r *triangleRaster) weights(x, y int) (alpha, beta, gamma float64) {
	px, py := float64(x)+0.5, float64(y)+0.5
	e := &r.edges
	alpha = (e[0][0]*px + e[0][1]*py + e[0][2]) * r.invArea
	beta = (e[1][0]*px + e[1][1]*py + e[1][2]) * r.invArea
	gamma = (e[2][0]*px + e[2][1]*py + e[2][2]) * r.invArea
	return
}
