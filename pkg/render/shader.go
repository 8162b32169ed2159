package render

import (
	"math"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/models"
)

// Shader is the programmable part of the pipeline. ShadeVertex runs once per
// mesh vertex and ShadeFragment once per covered pixel, before the depth test.
type Shader interface {
	ShadeVertex(v models.Vertex, mvp, model math3d.Mat4) Uniform
	ShadeFragment(f Fragment, mat *models.Material, light models.PointLight, eye math3d.Vec3, model math3d.Mat4) ShadedFragment
}

// VertexFunc is a vertex shader written as a plain function.
type VertexFunc func(v models.Vertex, mvp, model math3d.Mat4) Uniform

// FragmentFunc is a fragment shader written as a plain function.
type FragmentFunc func(f Fragment, mat *models.Material, light models.PointLight, eye math3d.Vec3, model math3d.Mat4) ShadedFragment

// ShaderFuncs adapts a pair of closures to the Shader interface.
type ShaderFuncs struct {
	Vertex   VertexFunc
	Fragment FragmentFunc
}

// ShadeVertex calls s.Vertex.
func (s ShaderFuncs) ShadeVertex(v models.Vertex, mvp, model math3d.Mat4) Uniform {
	return s.Vertex(v, mvp, model)
}

// ShadeFragment calls s.Fragment.
func (s ShaderFuncs) ShadeFragment(f Fragment, mat *models.Material, light models.PointLight, eye math3d.Vec3, model math3d.Mat4) ShadedFragment {
	return s.Fragment(f, mat, light, eye, model)
}

// AmbientIntensity is the global ambient light scale used by PhongShader.
const AmbientIntensity = 0.2

// PhongShader implements Blinn-Phong lighting with inverse-square falloff.
//
// Normals are transformed by the inverse-transpose of the model matrix. When
// the model matrix is singular the identity is used instead, so normals are
// left in object space. A normal map, if present, replaces the interpolated
// normal and is treated as object-space.
//
// A PhongShader caches the normal matrix of the last model matrix it saw and
// must not be shared between goroutines.
type PhongShader struct {
	Ambient float64

	lastModel   math3d.Mat4
	normalMat   math3d.Mat4
	normalValid bool
}

// NewPhongShader returns a shader using AmbientIntensity.
func NewPhongShader() *PhongShader {
	return &PhongShader{Ambient: AmbientIntensity}
}

func (s *PhongShader) normalMatrix(model math3d.Mat4) math3d.Mat4 {
	if s.normalValid && s.lastModel == model {
		return s.normalMat
	}
	nm, ok := model.NormalMatrix()
	if !ok {
		Logger().Debug("singular model matrix, normals left untransformed")
		nm = math3d.Identity()
	}
	s.lastModel, s.normalMat, s.normalValid = model, nm, true
	return nm
}

// ShadeVertex transforms the vertex to world space and to NDC.
func (s *PhongShader) ShadeVertex(v models.Vertex, mvp, model math3d.Mat4) Uniform {
	n := s.normalMatrix(model).MulVec3Dir(v.Normal)
	if n.LenSq() > 0 {
		n = n.Normalize()
	}
	return Uniform{
		World:    model.MulVec3(v.Position),
		Normal:   n,
		NDC:      mvp.MulVec4(v.Position.Upgrade()).PerspectiveDivide(),
		TexCoord: v.TexCoord,
	}
}

// ShadeFragment computes ambient + diffuse + specular, modulated by the base
// color and scaled to [0,255].
func (s *PhongShader) ShadeFragment(f Fragment, mat *models.Material, light models.PointLight, eye math3d.Vec3, model math3d.Mat4) ShadedFragment {
	n := f.Normal
	if mat.Normal != nil && mat.Normal.Texture != nil {
		n = s.normalMatrix(model).MulVec3Dir(mat.Normal.Normal(f.TexCoord)).Normalize()
	}

	toLight := light.Position.Sub(f.World)
	falloff := light.Intensity / toLight.LenSq()
	l := toLight.Normalize()
	v := eye.Sub(f.World).Normalize()
	h := l.Add(v)
	if h.LenSq() == 0 {
		h = n
	} else {
		h = h.Normalize()
	}

	ks := mat.Phong.Specular
	if mat.Specular != nil && mat.Specular.Texture != nil {
		ks = mat.Specular.Specular(f.TexCoord)
	}

	ambient := mat.Phong.Ambient.Scale(s.Ambient)
	diffuse := mat.Phong.Diffuse.Scale(falloff * math.Max(0, n.Dot(l)))
	specular := ks.Scale(falloff * math.Pow(math.Max(0, n.Dot(h)), mat.Phong.Shininess))

	intensity := ambient.Add(diffuse).Add(specular)
	c := intensity.Mul(mat.Base.At(f.TexCoord)).Scale(255)

	return ShadedFragment{X: f.X, Y: f.Y, Depth: f.Depth, Color: ColorFromVec(c)}
}
