// Package render implements a CPU rasterization pipeline: vertex shading,
// primitive assembly, back-face and NDC culling, screen mapping, barycentric
// scan conversion, fragment shading and depth-tested compositing into an
// owned frame and depth buffer.
package render

import (
	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/models"
)

// Stats counts pipeline work since the last Reset.
type Stats struct {
	Draws            int // Draw calls
	MeshesCulled     int // Draw calls skipped because the mesh bounds were off screen
	Triangles        int // Complete index triples seen
	InvalidIndices   int // Triangles skipped for out-of-range indices
	BackFacing       int // Triangles dropped by back-face culling
	OutsideNDC       int // Triangles dropped because a vertex left the NDC cube
	Fragments        int // Fragments shaded
	DepthRejected    int // Fragments that lost the depth test
	FragmentsWritten int // Fragments written to the frame buffer
}

// Renderer owns a frame buffer and depth buffer of identical size and draws
// meshes into them through a camera and shader.
//
// Buffers persist between Draw calls; call Reset before a clean redraw.
type Renderer struct {
	// Background is the color Reset clears the frame buffer to.
	Background Color
	// BoundsCulling skips meshes whose transformed bounds miss the clip
	// volume. It is only valid for shaders that project with the mvp matrix,
	// so NewRenderer enables it for the Phong shader alone.
	BoundsCulling bool

	camera *Camera
	shader Shader
	frame  *FrameBuffer
	depth  *DepthBuffer

	uniforms []Uniform
	stats    Stats
}

// NewRenderer creates a width×height render target. The frame buffer starts
// black and the depth buffer at negative infinity.
func NewRenderer(width, height int, camera *Camera, shader Shader) *Renderer {
	_, phong := shader.(*PhongShader)
	return &Renderer{
		Background:    ColorBlack,
		BoundsCulling: phong,
		camera:        camera,
		shader:        shader,
		frame:         NewFrameBuffer(width, height),
		depth:         NewDepthBuffer(width, height),
	}
}

// Width returns the render target width.
func (r *Renderer) Width() int { return r.frame.Width() }

// Height returns the render target height.
func (r *Renderer) Height() int { return r.frame.Height() }

// Camera returns the camera, which callers may orbit or zoom between frames.
func (r *Renderer) Camera() *Camera { return r.camera }

// FrameBuffer returns the color target.
func (r *Renderer) FrameBuffer() *FrameBuffer { return r.frame }

// DepthBuffer returns the depth target.
func (r *Renderer) DepthBuffer() *DepthBuffer { return r.depth }

// Stats returns the counters accumulated since the last Reset.
func (r *Renderer) Stats() Stats { return r.stats }

// Resize reallocates both buffers and updates the camera aspect ratio.
// The new buffers are cleared as by Reset.
func (r *Renderer) Resize(width, height int) {
	if width == r.Width() && height == r.Height() {
		return
	}
	r.frame = NewFrameBuffer(width, height)
	r.depth = NewDepthBuffer(width, height)
	if height > 0 {
		r.camera.SetAspect(float64(width) / float64(height))
	}
	r.Reset()
	Logger().Info("render target resized", "width", width, "height", height)
}

// Reset clears the frame buffer to Background, the depth buffer to negative
// infinity and the statistics to zero.
func (r *Renderer) Reset() {
	r.frame.Clear(r.Background)
	r.depth.Clear()
	r.stats = Stats{}
}

// Frame returns the frame buffer as interleaved RGB bytes, row-major from the
// top. It does not modify the renderer.
func (r *Renderer) Frame() []byte {
	return r.frame.Flatten()
}

// Draw renders mesh lit by light with the given model matrix.
func (r *Renderer) Draw(mesh *models.Mesh, light models.PointLight, model math3d.Mat4) {
	if mesh == nil {
		return
	}
	r.stats.Draws++

	viewProj := r.camera.ViewProjection()
	if !r.boundsVisible(mesh, viewProj, model) {
		r.stats.MeshesCulled++
		Logger().Debug("mesh outside view", "mesh", mesh.Name)
		return
	}
	mvp := viewProj.Mul(model)

	r.uniforms = r.uniforms[:0]
	for _, v := range mesh.Vertices {
		r.uniforms = append(r.uniforms, r.shader.ShadeVertex(v, mvp, model))
	}

	before := r.stats
	dir := r.camera.Direction()
	eye := r.camera.Position()

	for i := range mesh.TriangleCount() {
		r.stats.Triangles++
		if !mesh.ValidTriangle(i) {
			r.stats.InvalidIndices++
			continue
		}
		idx := mesh.Triangle(i)
		tri := Triangle{A: r.uniforms[idx[0]], B: r.uniforms[idx[1]], C: r.uniforms[idx[2]]}

		// Facing away (or degenerate, giving NaN) when not strictly negative.
		if !(tri.FaceNormal().Dot(dir) < 0) {
			r.stats.BackFacing++
			continue
		}
		if !tri.InsideNDC() {
			r.stats.OutsideNDC++
			continue
		}
		r.rasterize(tri, &mesh.Material, light, eye, model)
	}

	Logger().Debug("draw",
		"mesh", mesh.Name,
		"triangles", r.stats.Triangles-before.Triangles,
		"backfacing", r.stats.BackFacing-before.BackFacing,
		"outside", r.stats.OutsideNDC-before.OutsideNDC,
		"fragments", r.stats.Fragments-before.Fragments,
		"written", r.stats.FragmentsWritten-before.FragmentsWritten,
	)
}

// boundsVisible tests the mesh's bounding box against the clip volume. For a
// shader that projects with mvp it only rejects meshes whose every vertex
// would fail the NDC test, so the image is unchanged. Meshes without computed
// bounds are always drawn.
func (r *Renderer) boundsVisible(mesh *models.Mesh, viewProj, model math3d.Mat4) bool {
	if !r.BoundsCulling || mesh.BoundsMin == mesh.BoundsMax {
		return true
	}
	box := AABB{Min: mesh.BoundsMin, Max: mesh.BoundsMax}.Transform(model)
	return NewClipVolume(viewProj).IntersectsAABB(box)
}

func (r *Renderer) rasterize(tri Triangle, mat *models.Material, light models.PointLight, eye math3d.Vec3, model math3d.Mat4) {
	w, h := r.Width(), r.Height()
	rast, ok := newTriangleRaster(toScreen(tri.A.NDC, w, h), toScreen(tri.B.NDC, w, h), toScreen(tri.C.NDC, w, h), w, h)
	if !ok {
		return
	}

	for y := rast.minY; y <= rast.maxY; y++ {
		for x := rast.minX; x <= rast.maxX; x++ {
			alpha, beta, gamma := rast.weights(x, y)
			if alpha < 0 || beta < 0 || gamma < 0 {
				continue
			}
			frag := tri.Interpolate(alpha, beta, gamma, x, y)
			shaded := r.shader.ShadeFragment(frag, mat, light, eye, model)
			r.stats.Fragments++

			if !r.depth.Test(shaded) {
				r.stats.DepthRejected++
				continue
			}
			r.depth.Write(shaded)
			r.frame.SetPixel(shaded.X, shaded.Y, shaded.Color)
			r.stats.FragmentsWritten++
		}
	}
}

// DrawTriangle fills a screen-space triangle with a flat color. No shading
// or depth test is applied.
func (r *Renderer) DrawTriangle(p0, p1, p2 math3d.Vec2, c Color) {
	r.frame.DrawTriangle(p0, p1, p2, c)
}

// DrawLine draws a screen-space segment with the chosen scan algorithm.
func (r *Renderer) DrawLine(start, end math3d.Vec2, c Color, alg LineAlgorithm) {
	r.frame.DrawLine(start, end, c, alg)
}

// DrawPoint sets the pixel containing p.
func (r *Renderer) DrawPoint(p math3d.Vec2, c Color) {
	r.frame.DrawPoint(p, c)
}
