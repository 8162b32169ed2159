package render

import (
	"math"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/models"
)

// boxEdges indexes the 12 edges of the corners produced by boxCorners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // Min Z face
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // Max Z face
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func boxCorners(b AABB) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// DrawWireframe outlines the front-facing triangles of mesh that lie inside
// the view. Vertices go through the renderer's shader, and triangles are
// culled exactly as Draw culls them. Lines ignore the depth buffer.
func (r *Renderer) DrawWireframe(mesh *models.Mesh, model math3d.Mat4, c Color, alg LineAlgorithm) {
	if mesh == nil {
		return
	}
	mvp := r.camera.ViewProjection().Mul(model)

	r.uniforms = r.uniforms[:0]
	for _, v := range mesh.Vertices {
		r.uniforms = append(r.uniforms, r.shader.ShadeVertex(v, mvp, model))
	}

	dir := r.camera.Direction()
	w, h := r.Width(), r.Height()
	for i := range mesh.TriangleCount() {
		if !mesh.ValidTriangle(i) {
			continue
		}
		idx := mesh.Triangle(i)
		tri := Triangle{A: r.uniforms[idx[0]], B: r.uniforms[idx[1]], C: r.uniforms[idx[2]]}
		if !(tri.FaceNormal().Dot(dir) < 0) || !tri.InsideNDC() {
			continue
		}

		a := toScreen(tri.A.NDC, w, h)
		b := toScreen(tri.B.NDC, w, h)
		cc := toScreen(tri.C.NDC, w, h)
		r.frame.DrawLine(a, b, c, alg)
		r.frame.DrawLine(b, cc, c, alg)
		r.frame.DrawLine(cc, a, c, alg)
	}
}

// DrawBounds outlines the mesh's bounding box after model.
func (r *Renderer) DrawBounds(mesh *models.Mesh, model math3d.Mat4, c Color, alg LineAlgorithm) {
	if mesh == nil {
		return
	}
	corners := boxCorners(AABB{Min: mesh.BoundsMin, Max: mesh.BoundsMax})
	for _, e := range boxEdges {
		r.DrawLine3D(model.MulVec3(corners[e[0]]), model.MulVec3(corners[e[1]]), c, alg)
	}
}

// DrawAxes draws the world X, Y and Z axes from the origin in red, green and
// blue.
func (r *Renderer) DrawAxes(length float64, alg LineAlgorithm) {
	var origin math3d.Vec3
	r.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed, alg)
	r.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen, alg)
	r.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue, alg)
}

// DrawLine3D projects a world-space segment and draws it. The segment is
// skipped unless both endpoints land inside the NDC cube; no clipping is
// performed.
func (r *Renderer) DrawLine3D(p0, p1 math3d.Vec3, c Color, alg LineAlgorithm) {
	viewProj := r.camera.ViewProjection()
	a := viewProj.MulVec4(p0.Upgrade()).PerspectiveDivide()
	b := viewProj.MulVec4(p1.Upgrade()).PerspectiveDivide()
	if !insideNDC(a) || !insideNDC(b) {
		return
	}
	w, h := r.Width(), r.Height()
	r.frame.DrawLine(toScreen(a, w, h), toScreen(b, w, h), c, alg)
}

// insideNDC reports whether p is in the [-1,1]³ cube. NaN compares false, so
// non-finite points are outside.
func insideNDC(p math3d.Vec3) bool {
	return math.Abs(p.X) <= 1 && math.Abs(p.Y) <= 1 && math.Abs(p.Z) <= 1
}
