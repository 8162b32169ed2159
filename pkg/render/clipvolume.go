package render

import (
	"github.com/taigrr/raster/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// Distance returns the signed distance from the plane to point.
// Positive is the inner side.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// ClipVolume is the world-space region that projects into the NDC cube,
// bounded by six inward-facing planes.
type ClipVolume struct {
	Planes [6]Plane
}

// NewClipVolume extracts the planes of the volume seen through viewProj
// (Gribb/Hartmann). The projection produces a negative clip w for visible
// points, so the matrix is negated first; this leaves NDC unchanged and makes
// every plane satisfy row3 ± rowN ≥ 0 inside.
func NewClipVolume(viewProj math3d.Mat4) ClipVolume {
	var m math3d.Mat4
	for i, v := range viewProj {
		m[i] = -v
	}

	// For column-major m, row r element c is at m[r + c*4].
	row := func(r int) [4]float64 {
		return [4]float64{m[r], m[r+4], m[r+8], m[r+12]}
	}
	w := row(3)

	var cv ClipVolume
	for axis := range 3 {
		r := row(axis)
		cv.Planes[axis*2] = Plane{
			Normal: math3d.V3(w[0]+r[0], w[1]+r[1], w[2]+r[2]),
			D:      w[3] + r[3],
		}
		cv.Planes[axis*2+1] = Plane{
			Normal: math3d.V3(w[0]-r[0], w[1]-r[1], w[2]-r[2]),
			D:      w[3] - r[3],
		}
	}
	for i := range cv.Planes {
		cv.Planes[i].Normalize()
	}
	return cv
}

// ContainsPoint tests if a point is inside the volume.
func (cv ClipVolume) ContainsPoint(p math3d.Vec3) bool {
	for i := range cv.Planes {
		if cv.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether any part of box may be inside the volume.
// It is conservative: a false result guarantees every point of the box is
// outside one plane.
func (cv ClipVolume) IntersectsAABB(box AABB) bool {
	for i := range cv.Planes {
		plane := cv.Planes[i]

		// The "positive vertex" is the corner furthest along the plane normal;
		// if even it is outside, the whole box is.
		p := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.Distance(p) < -clipEpsilon {
			return false
		}
	}
	return true
}

// clipEpsilon keeps boxes touching a plane from being rejected by rounding.
const clipEpsilon = 1e-9

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Transform returns the AABB that bounds the eight corners of b after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	first := m.MulVec3(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.MulVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
