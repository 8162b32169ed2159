package models

import (
	"image/color"
	"testing"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/texture"
)

// TestMaterialDefaults verifies default material values.
func TestMaterialDefaults(t *testing.T) {
	m := DefaultMaterial()

	if m.Phong.Ambient != math3d.V3(1, 1, 1) {
		t.Errorf("Ambient = %v", m.Phong.Ambient)
	}
	if m.Phong.Diffuse != math3d.V3(0.64, 0.64, 0.64) {
		t.Errorf("Diffuse = %v", m.Phong.Diffuse)
	}
	if m.Phong.Specular != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("Specular = %v", m.Phong.Specular)
	}
	if m.Phong.Shininess != 64 {
		t.Errorf("Shininess = %v", m.Phong.Shininess)
	}
	if m.Normal != nil || m.Specular != nil {
		t.Error("default material should have no maps")
	}
	if got := m.Base.At(math3d.V2(0.3, 0.7)); got != math3d.V3(1, 1, 1) {
		t.Errorf("default base color = %v", got)
	}
}

func TestBaseColorTexture(t *testing.T) {
	tex := texture.New(1, 1)
	tex.Pixels[0] = color.RGBA{255, 0, 255, 255}

	base := TextureColor(tex)
	if got := base.At(math3d.V2(0.5, 0.5)); got != math3d.V3(1, 0, 1) {
		t.Errorf("At() = %v, want (1,0,1)", got)
	}

	var empty BaseColor
	if got := empty.At(math3d.V2(0, 0)); got != (math3d.Vec3{}) {
		t.Errorf("zero BaseColor At() = %v", got)
	}
}

func TestSetMaps(t *testing.T) {
	m := DefaultMaterial()
	tex := texture.New(2, 2)

	m.SetNormalMap(tex)
	m.SetSpecularMap(tex)
	if m.Normal == nil || m.Specular == nil {
		t.Fatal("maps not attached")
	}

	m.SetNormalMap(nil)
	m.SetSpecularMap(nil)
	if m.Normal != nil || m.Specular != nil {
		t.Error("nil texture should detach the map")
	}
}
