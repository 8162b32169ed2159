package texture

import (
	"github.com/taigrr/raster/pkg/math3d"
)

// BaseColorMap supplies albedo per texture coordinate.
type BaseColorMap struct {
	*Texture
}

// Color returns the albedo at uv with channels in [0,1].
func (m BaseColorMap) Color(uv math3d.Vec2) math3d.Vec3 {
	return m.SampleVec(uv)
}

// NormalMap stores unit vectors encoded as c = (n+1)/2 per channel.
type NormalMap struct {
	*Texture
}

// Normal decodes the stored vector at uv back to [-1,1] via 2c - 1.
// The result is not renormalized.
func (m NormalMap) Normal(uv math3d.Vec2) math3d.Vec3 {
	c := m.SampleVec(uv)
	return math3d.V3(2*c.X-1, 2*c.Y-1, 2*c.Z-1)
}

// SpecularMap stores per-texel specular coefficients.
type SpecularMap struct {
	*Texture
}

// Specular returns the specular coefficient at uv with channels in [0,1].
func (m SpecularMap) Specular(uv math3d.Vec2) math3d.Vec3 {
	return m.SampleVec(uv)
}
