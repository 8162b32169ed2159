package render

import (
	"math"

	"github.com/taigrr/raster/pkg/math3d"
)

// Frustum describes a perspective view volume.
type Frustum struct {
	Near   float64 // Distance to the near plane (positive)
	Far    float64 // Distance to the far plane (positive)
	FOV    float64 // Vertical field of view in radians
	Aspect float64 // Width / Height
}

// ProjectionMatrix maps view space to clip space in two stages: a squash of
// the frustum into a box, then an orthographic fit of that box into the NDC
// cube. The near plane lands on NDC z=+1 and the far plane on z=-1.
func (f Frustum) ProjectionMatrix() math3d.Mat4 {
	n, fz := -f.Near, -f.Far

	perspToOrtho := math3d.FromRows(
		[4]float64{n, 0, 0, 0},
		[4]float64{0, n, 0, 0},
		[4]float64{0, 0, n + fz, -n * fz},
		[4]float64{0, 0, 1, 0},
	)

	h := 2 * f.Near * math.Tan(f.FOV/2)
	w := h * f.Aspect
	ortho := math3d.Scale(math3d.V3(2/w, 2/h, 2/(n-fz))).
		Mul(math3d.Translate(math3d.V3(0, 0, -0.5*(n+fz))))

	return ortho.Mul(perspToOrtho)
}

// Camera is a right-handed perspective camera looking down its local -Z axis.
type Camera struct {
	frustum  Frustum
	position math3d.Vec3
	rotation math3d.Quat
}

// NewCamera creates a camera at position oriented toward target with world +Y
// as up. position must differ from target.
func NewCamera(frustum Frustum, position, target math3d.Vec3) *Camera {
	return &Camera{
		frustum:  frustum,
		position: position,
		rotation: lookAt(position, target, math3d.Up()),
	}
}

func lookAt(eye, target, up math3d.Vec3) math3d.Quat {
	z := eye.Sub(target).Normalize()
	x := up.Cross(z)
	if x.LenSq() < 1e-12 {
		// Looking straight along up: any horizontal right vector will do.
		x = math3d.V3(1, 0, 0)
	}
	x = x.Normalize()
	y := z.Cross(x).Normalize()
	return math3d.QuatFromBasis(x, y, z)
}

// Position returns the eye position in world space.
func (c *Camera) Position() math3d.Vec3 {
	return c.position
}

// Rotation returns the camera orientation.
func (c *Camera) Rotation() math3d.Quat {
	return c.rotation
}

// Frustum returns the current view volume.
func (c *Camera) Frustum() Frustum {
	return c.frustum
}

// Direction returns the unit view direction, the negated local Z axis.
func (c *Camera) Direction() math3d.Vec3 {
	return c.rotation.ZAxis().Negate()
}

// SetAspect updates the aspect ratio, e.g. after the output is resized.
func (c *Camera) SetAspect(aspect float64) {
	c.frustum.Aspect = aspect
}

// ViewMatrix returns R⁻¹·T⁻¹, the inverse of the camera's world transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.rotation.Inverse().RotationMatrix().Mul(math3d.Translate(c.position.Negate()))
}

// ProjectionMatrix returns the frustum's projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.frustum.ProjectionMatrix()
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// RotationAround orbits the camera about target by the world-space rotation
// delta. The distance to target is preserved and delta is composed on the
// left of the current orientation.
func (c *Camera) RotationAround(target math3d.Vec3, delta math3d.Quat) {
	offset := c.position.Sub(target)
	c.position = delta.Rotate(offset).Add(target)
	c.rotation = delta.Mul(c.rotation).Normalize()
}

// Scale adds offset radians to the field of view. Results outside the open
// interval (0, π) are ignored and the previous value is kept.
func (c *Camera) Scale(offset float64) {
	fov := c.frustum.FOV + offset
	if fov > 0 && fov < math.Pi {
		c.frustum.FOV = fov
	}
}
