package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/models"
	"github.com/taigrr/raster/pkg/texture"
)

func TestPhongShadeVertex(t *testing.T) {
	tests := []struct {
		name       string
		model      math3d.Mat4
		position   math3d.Vec3
		normal     math3d.Vec3
		wantWorld  math3d.Vec3
		wantNormal math3d.Vec3
	}{
		{
			"translation keeps normal",
			math3d.Translate(math3d.V3(1, 2, 3)),
			math3d.V3(1, 0, 0), math3d.V3(0, 0, 2),
			math3d.V3(2, 2, 3), math3d.V3(0, 0, 1),
		},
		{
			"non-uniform scale",
			math3d.Scale(math3d.V3(2, 1, 1)),
			math3d.V3(1, 1, 1), math3d.V3(1, 1, 0),
			math3d.V3(2, 1, 1), math3d.V3(0.5, 1, 0).Normalize(),
		},
		{
			"singular model leaves normal untransformed",
			math3d.Scale(math3d.V3(1, 1, 0)),
			math3d.V3(1, 1, 1), math3d.V3(0, 3, 4),
			math3d.V3(1, 1, 0), math3d.V3(0, 0.6, 0.8),
		},
		{
			"zero normal stays zero",
			math3d.Identity(),
			math3d.V3(1, 1, 1), math3d.Vec3{},
			math3d.V3(1, 1, 1), math3d.Vec3{},
		},
	}

	s := NewPhongShader()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := models.Vertex{Position: tc.position, Normal: tc.normal, TexCoord: math3d.V2(0.25, 0.75)}
			u := s.ShadeVertex(v, math3d.Identity(), tc.model)

			if !vecNear(u.World, tc.wantWorld, 1e-12) {
				t.Errorf("World = %v, want %v", u.World, tc.wantWorld)
			}
			if !vecNear(u.Normal, tc.wantNormal, 1e-12) {
				t.Errorf("Normal = %v, want %v", u.Normal, tc.wantNormal)
			}
			if !vecNear(u.NDC, tc.position, 1e-12) {
				t.Errorf("NDC = %v, want %v under identity mvp", u.NDC, tc.position)
			}
			if u.TexCoord != v.TexCoord {
				t.Errorf("TexCoord = %v", u.TexCoord)
			}
		})
	}
}

// shadeCenter shades a fragment at the origin facing +Z.
func shadeCenter(mat models.Material, light models.PointLight, eye math3d.Vec3) Color {
	f := Fragment{Normal: math3d.V3(0, 0, 1), TexCoord: math3d.V2(0.5, 0.5), X: 3, Y: 4, Depth: 0.25}
	out := NewPhongShader().ShadeFragment(f, &mat, light, eye, math3d.Identity())
	return out.Color
}

func TestPhongShadeFragment(t *testing.T) {
	diffuseOnly := models.PhongMaterial{Diffuse: math3d.V3(0.5, 0.5, 0.5), Shininess: 1}
	eye := math3d.V3(0, 0, 5)

	tests := []struct {
		name  string
		mat   func() models.Material
		light models.PointLight
		want  Color
	}{
		{
			"ambient only",
			func() models.Material {
				m := models.DefaultMaterial()
				m.Base = models.SolidColor(math3d.V3(1, 0.5, 0))
				return m
			},
			models.PointLight{Position: math3d.V3(0, 0, 1), Intensity: 0},
			RGB(51, 25, 0),
		},
		{
			"diffuse head on",
			func() models.Material {
				m := models.DefaultMaterial()
				m.Phong = diffuseOnly
				return m
			},
			models.PointLight{Position: math3d.V3(0, 0, 2), Intensity: 4},
			RGB(127, 127, 127),
		},
		{
			"light behind surface",
			func() models.Material {
				m := models.DefaultMaterial()
				m.Phong = diffuseOnly
				return m
			},
			models.PointLight{Position: math3d.V3(0, 0, -2), Intensity: 4},
			RGB(0, 0, 0),
		},
		{
			"saturates",
			models.DefaultMaterial,
			models.PointLight{Position: math3d.V3(0, 0, 1), Intensity: 100},
			RGB(255, 255, 255),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := shadeCenter(tc.mat(), tc.light, eye); got != tc.want {
				t.Errorf("color = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPhongShadeFragmentPassesPosition(t *testing.T) {
	mat := models.DefaultMaterial()
	f := Fragment{Normal: math3d.V3(0, 0, 1), X: 3, Y: 4, Depth: 0.25}
	out := NewPhongShader().ShadeFragment(f, &mat, models.PointLight{}, math3d.V3(0, 0, 1), math3d.Identity())
	if out.X != 3 || out.Y != 4 || out.Depth != 0.25 {
		t.Errorf("fragment = %+v", out)
	}
}

func TestPhongSpecularMap(t *testing.T) {
	mat := models.DefaultMaterial()
	mat.Phong = models.PhongMaterial{Shininess: 64}

	light := models.PointLight{Position: math3d.V3(0, 0, 1), Intensity: 1}
	eye := math3d.V3(0, 0, 1)
	if got := shadeCenter(mat, light, eye); got != ColorBlack {
		t.Fatalf("without map color = %v, want black", got)
	}

	white := texture.New(1, 1)
	white.Pixels[0] = color.RGBA{255, 255, 255, 255}
	mat.SetSpecularMap(white)
	if got := shadeCenter(mat, light, eye); got != ColorWhite {
		t.Errorf("with map color = %v, want white", got)
	}
}

func TestPhongNormalMap(t *testing.T) {
	mat := models.DefaultMaterial()
	mat.Phong = models.PhongMaterial{Diffuse: math3d.V3(0.5, 0.5, 0.5), Shininess: 1}
	light := models.PointLight{Position: math3d.V3(1, 0, 0), Intensity: 1}
	eye := math3d.V3(0, 0, 5)

	// Light grazes the interpolated +Z normal.
	if got := shadeCenter(mat, light, eye); got != ColorBlack {
		t.Fatalf("without map color = %v, want black", got)
	}

	// A map pointing along +X faces the light.
	nm := texture.New(1, 1)
	nm.Pixels[0] = color.RGBA{255, 128, 128, 255}
	mat.SetNormalMap(nm)
	got := shadeCenter(mat, light, eye)
	if math.Abs(float64(got.R)-127) > 1 || got.R != got.G || got.G != got.B {
		t.Errorf("with map color = %v, want about 127 grey", got)
	}
}

func TestPhongNormalMatrixCache(t *testing.T) {
	s := NewPhongShader()
	v := models.Vertex{Normal: math3d.V3(1, 1, 0)}

	a := s.ShadeVertex(v, math3d.Identity(), math3d.Scale(math3d.V3(2, 1, 1)))
	b := s.ShadeVertex(v, math3d.Identity(), math3d.Identity())
	c := s.ShadeVertex(v, math3d.Identity(), math3d.Scale(math3d.V3(2, 1, 1)))

	if !vecNear(b.Normal, math3d.V3(1, 1, 0).Normalize(), 1e-12) {
		t.Errorf("identity model normal = %v", b.Normal)
	}
	if a.Normal != c.Normal {
		t.Errorf("cached normal %v differs from fresh %v", c.Normal, a.Normal)
	}
}

func TestShaderFuncs(t *testing.T) {
	var gotVertex, gotFragment bool
	s := ShaderFuncs{
		Vertex: func(v models.Vertex, _, _ math3d.Mat4) Uniform {
			gotVertex = true
			return Uniform{NDC: v.Position}
		},
		Fragment: func(f Fragment, _ *models.Material, _ models.PointLight, _ math3d.Vec3, _ math3d.Mat4) ShadedFragment {
			gotFragment = true
			return ShadedFragment{X: f.X, Y: f.Y, Color: ColorRed}
		},
	}

	var sh Shader = s
	u := sh.ShadeVertex(models.Vertex{Position: math3d.V3(1, 2, 3)}, math3d.Identity(), math3d.Identity())
	out := sh.ShadeFragment(Fragment{X: 1, Y: 2}, nil, models.PointLight{}, math3d.Vec3{}, math3d.Identity())

	if !gotVertex || !gotFragment {
		t.Fatal("closures not called")
	}
	if u.NDC != math3d.V3(1, 2, 3) || out.Color != ColorRed || out.X != 1 || out.Y != 2 {
		t.Errorf("results = %+v, %+v", u, out)
	}
}

func TestColorFromVec(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want Color
	}{
		{"in range", math3d.V3(10, 20.9, 30), RGB(10, 20, 30)},
		{"clamped", math3d.V3(-5, 300, 255), RGB(0, 255, 255)},
		{"nan", math3d.V3(math.NaN(), 1, math.Inf(1)), RGB(0, 1, 255)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ColorFromVec(tc.in); got != tc.want {
				t.Errorf("ColorFromVec(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func BenchmarkPhongShadeFragment(b *testing.B) {
	s := NewPhongShader()
	mat := models.DefaultMaterial()
	light := models.PointLight{Position: math3d.V3(-5, 5, 5), Intensity: 200}
	f := Fragment{World: math3d.V3(0.1, 0.2, 0), Normal: math3d.V3(0, 0, 1)}
	for b.Loop() {
		_ = s.ShadeFragment(f, &mat, light, math3d.V3(0, 0, 2), math3d.Identity())
	}
}
