package main

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/taigrr/raster/pkg/config"
	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/models"
	"github.com/taigrr/raster/pkg/render"
	"github.com/taigrr/raster/pkg/texture"
)

// checkerTexels is the edge length of one checkerboard square.
const checkerTexels = 8

// scene is a loaded mesh with the light and camera settings to draw it.
type scene struct {
	cfg    config.Config
	mesh   *models.Mesh
	light  models.PointLight
	target math3d.Vec3
	lines  render.LineAlgorithm
}

// loadScene loads the mesh at path (or the config's model path when path is
// empty) and applies the config's material overrides.
func loadScene(cfg config.Config, path string) (*scene, error) {
	if path == "" {
		path = cfg.Model.Path
	}
	if path == "" {
		return nil, fmt.Errorf("no model given: pass a path or set model.path in the config")
	}

	mesh, err := loadMesh(path)
	if err != nil {
		return nil, err
	}
	if err := applyMaterial(&mesh.Material, cfg.Model); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()

	lines, err := render.ParseLineAlgorithm(cfg.LineAlgorithm)
	if err != nil {
		return nil, err
	}

	s := &scene{
		cfg:    cfg,
		mesh:   mesh,
		light:  models.PointLight{Position: config.Vec(cfg.Light.Position), Intensity: cfg.Light.Intensity},
		target: mesh.Center(),
		lines:  lines,
	}
	if cfg.Camera.Target != nil {
		s.target = config.Vec(*cfg.Camera.Target)
	}

	slog.Info("loaded model",
		"path", path,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"material", mesh.Material.Name,
	)
	return s, nil
}

func loadMesh(path string) (*models.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return models.LoadOBJ(path)
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj, .gltf or .glb)", ext)
	}
}

func applyMaterial(mat *models.Material, mc config.ModelConfig) error {
	wrap := texture.WrapRepeat
	if mc.Wrap == "clamp" {
		wrap = texture.WrapClamp
	}
	load := func(path string) (*texture.Texture, error) {
		tex, err := texture.Load(path)
		if err != nil {
			return nil, err
		}
		tex.WrapU, tex.WrapV = wrap, wrap
		slog.Info("loaded texture", "path", path, "width", tex.Width, "height", tex.Height)
		return tex, nil
	}

	if mc.Color != "" {
		c, err := config.ParseColor(mc.Color)
		if err != nil {
			return err
		}
		mat.Base = models.SolidColor(c)
	}
	if mc.Texture != "" {
		tex, err := load(mc.Texture)
		if err != nil {
			return err
		}
		mat.Base = models.TextureColor(tex)
	} else if mc.Checker > 0 {
		tex := texture.NewChecker(mc.Checker*checkerTexels, mc.Checker*checkerTexels, checkerTexels, render.ColorWhite, render.ColorGray)
		tex.WrapU, tex.WrapV = wrap, wrap
		mat.Base = models.TextureColor(tex)
	}
	if mc.NormalMap != "" {
		tex, err := load(mc.NormalMap)
		if err != nil {
			return err
		}
		mat.SetNormalMap(tex)
	}
	if mc.SpecularMap != "" {
		tex, err := load(mc.SpecularMap)
		if err != nil {
			return err
		}
		mat.SetSpecularMap(tex)
	}
	if p := mc.Phong; p != nil {
		mat.Phong = models.PhongMaterial{
			Ambient:   config.Vec(p.Ambient),
			Diffuse:   config.Vec(p.Diffuse),
			Specular:  config.Vec(p.Specular),
			Shininess: p.Shininess,
		}
	}
	return nil
}

// newRenderer creates a Phong renderer of the given size looking at the
// scene target from the configured camera position.
func (s *scene) newRenderer(width, height int) (*render.Renderer, error) {
	cam, err := newCamera(s.cfg.Camera, s.target, width, height)
	if err != nil {
		return nil, err
	}
	bg, err := parseBackground(s.cfg.Background)
	if err != nil {
		return nil, err
	}

	r := render.NewRenderer(width, height, cam, render.NewPhongShader())
	r.Background = bg
	r.Reset()
	return r, nil
}

func newCamera(cc config.CameraConfig, target math3d.Vec3, width, height int) (*render.Camera, error) {
	pos := config.Vec(cc.Position)
	if pos == target {
		return nil, fmt.Errorf("camera position %v coincides with its target", pos)
	}
	frustum := render.Frustum{
		Near:   cc.Near,
		Far:    cc.Far,
		FOV:    cc.FOVRadians(),
		Aspect: float64(width) / float64(height),
	}
	return render.NewCamera(frustum, pos, target), nil
}

// draw renders one frame from scratch.
func (s *scene) draw(r *render.Renderer, wireframe bool) {
	r.Reset()
	if wireframe {
		r.DrawWireframe(s.mesh, math3d.Identity(), render.RGB(0, 255, 128), s.lines)
		return
	}
	r.Draw(s.mesh, s.light, math3d.Identity())
}

// parseBackground parses a config color, rounding to the nearest 8-bit
// value.
func parseBackground(s string) (render.Color, error) {
	v, err := config.ParseColor(s)
	if err != nil {
		return render.Color{}, err
	}
	return render.ColorFromVec(math3d.V3(math.Round(v.X*255), math.Round(v.Y*255), math.Round(v.Z*255))), nil
}
