package models

import (
	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/texture"
)

// PhongMaterial holds the Phong reflection coefficients.
type PhongMaterial struct {
	Ambient   math3d.Vec3
	Diffuse   math3d.Vec3
	Specular  math3d.Vec3
	Shininess float64
}

// DefaultPhongMaterial returns a neutral grey plastic.
func DefaultPhongMaterial() PhongMaterial {
	return PhongMaterial{
		Ambient:   math3d.V3(1, 1, 1),
		Diffuse:   math3d.V3(0.64, 0.64, 0.64),
		Specular:  math3d.V3(0.5, 0.5, 0.5),
		Shininess: 64,
	}
}

// BaseColor is either a flat color or a texture map.
type BaseColor struct {
	Flat math3d.Vec3
	Map  *texture.BaseColorMap
}

// SolidColor returns a flat base color with channels in [0,1].
func SolidColor(c math3d.Vec3) BaseColor {
	return BaseColor{Flat: c}
}

// TextureColor returns a base color sampled from tex.
func TextureColor(tex *texture.Texture) BaseColor {
	return BaseColor{Map: &texture.BaseColorMap{Texture: tex}}
}

// At returns the base color at uv with channels in [0,1].
func (b BaseColor) At(uv math3d.Vec2) math3d.Vec3 {
	if b.Map != nil && b.Map.Texture != nil {
		return b.Map.Color(uv)
	}
	return b.Flat
}

// Material describes how a mesh surface responds to light.
type Material struct {
	Name     string
	Phong    PhongMaterial
	Base     BaseColor
	Normal   *texture.NormalMap   // Optional
	Specular *texture.SpecularMap // Optional
}

// DefaultMaterial returns the default Phong coefficients over a white base.
func DefaultMaterial() Material {
	return Material{
		Name:  "default",
		Phong: DefaultPhongMaterial(),
		Base:  SolidColor(math3d.V3(1, 1, 1)),
	}
}

// SetNormalMap attaches an object-space normal map. A nil texture removes it.
func (m *Material) SetNormalMap(tex *texture.Texture) {
	if tex == nil {
		m.Normal = nil
		return
	}
	m.Normal = &texture.NormalMap{Texture: tex}
}

// SetSpecularMap attaches a specular map. A nil texture removes it.
func (m *Material) SetSpecularMap(tex *texture.Texture) {
	if tex == nil {
		m.Specular = nil
		return
	}
	m.Specular = &texture.SpecularMap{Texture: tex}
}
