// Package config loads and validates the YAML scene description used by the
// raster command.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/raster/pkg/math3d"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config describes one scene and how to render it.
type Config struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Background    string `yaml:"background"`
	LineAlgorithm string `yaml:"lineAlgorithm"`

	Model    ModelConfig    `yaml:"model"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Controls ControlsConfig `yaml:"controls"`
}

// ModelConfig selects the mesh and overrides its material. Checker replaces
// the base map with an N×N checkerboard when no texture is set.
type ModelConfig struct {
	Path        string       `yaml:"path"`
	Color       string       `yaml:"color,omitempty"`
	Texture     string       `yaml:"texture,omitempty"`
	NormalMap   string       `yaml:"normalMap,omitempty"`
	SpecularMap string       `yaml:"specularMap,omitempty"`
	Wrap        string       `yaml:"wrap,omitempty"`
	Checker     int          `yaml:"checker,omitempty"`
	Phong       *PhongConfig `yaml:"phong,omitempty"`
}

// PhongConfig overrides the Phong coefficients of the model's material.
type PhongConfig struct {
	Ambient   [3]float64 `yaml:"ambient"`
	Diffuse   [3]float64 `yaml:"diffuse"`
	Specular  [3]float64 `yaml:"specular"`
	Shininess float64    `yaml:"shininess"`
}

// CameraConfig places the camera. FOV is in degrees. A nil Target aims the
// camera at the center of the model's bounding box.
type CameraConfig struct {
	Near     float64     `yaml:"near"`
	Far      float64     `yaml:"far"`
	FOV      float64     `yaml:"fov"`
	Position [3]float64  `yaml:"position"`
	Target   *[3]float64 `yaml:"target,omitempty"`
}

// LightConfig describes the point light.
type LightConfig struct {
	Position  [3]float64 `yaml:"position"`
	Intensity float64    `yaml:"intensity"`
}

// ControlsConfig tunes interactive orbiting. Steps are per frame in radians.
type ControlsConfig struct {
	OrbitStep float64 `yaml:"orbitStep"`
	FOVStep   float64 `yaml:"fovStep"`
	Inertia   bool    `yaml:"inertia"`
	FPS       int     `yaml:"fps"`
}

// Default returns the built-in scene: a 1024×720 target, camera at (0,0,2)
// with a 60° field of view and a light at (-5,5,5) of intensity 200.
func Default() Config {
	return Config{
		Width:         1024,
		Height:        720,
		Background:    "0,0,0",
		LineAlgorithm: "bresenham",
		Camera: CameraConfig{
			Near:     1,
			Far:      1000,
			FOV:      60,
			Position: [3]float64{0, 0, 2},
		},
		Light: LightConfig{
			Position:  [3]float64{-5, 5, 5},
			Intensity: 200,
		},
		Controls: ControlsConfig{
			OrbitStep: 0.1,
			FOVStep:   0.1,
			FPS:       30,
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
// Relative asset paths are kept as written.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid field at once. Each error wraps ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Width <= 0 || c.Height <= 0 {
		bad("size %dx%d must be positive", c.Width, c.Height)
	}
	if _, err := ParseColor(c.Background); err != nil {
		bad("background: %v", err)
	}
	if c.Model.Color != "" {
		if _, err := ParseColor(c.Model.Color); err != nil {
			bad("model.color: %v", err)
		}
	}
	switch c.Model.Wrap {
	case "", "repeat", "clamp":
	default:
		bad("model.wrap %q must be repeat or clamp", c.Model.Wrap)
	}
	if c.Model.Checker < 0 {
		bad("model.checker %d must not be negative", c.Model.Checker)
	}
	if c.Model.Checker > 0 && c.Model.Texture != "" {
		bad("model.checker and model.texture are mutually exclusive")
	}
	switch c.LineAlgorithm {
	case "dda", "midpoint", "bresenham":
	default:
		bad("lineAlgorithm %q must be dda, midpoint or bresenham", c.LineAlgorithm)
	}
	if p := c.Model.Phong; p != nil && p.Shininess < 0 {
		bad("model.phong.shininess %v must not be negative", p.Shininess)
	}

	cam := c.Camera
	if !(cam.Near > 0) || !(cam.Far > cam.Near) {
		bad("camera near %v and far %v must satisfy 0 < near < far", cam.Near, cam.Far)
	}
	if !(cam.FOV > 0 && cam.FOV < 180) {
		bad("camera.fov %v must be in (0, 180) degrees", cam.FOV)
	}
	if cam.Target != nil && *cam.Target == cam.Position {
		bad("camera.target must differ from camera.position")
	}

	if c.Light.Intensity < 0 {
		bad("light.intensity %v must not be negative", c.Light.Intensity)
	}
	if c.Controls.FPS <= 0 {
		bad("controls.fps %d must be positive", c.Controls.FPS)
	}

	return errors.Join(errs...)
}

// FOVRadians returns the camera field of view in radians.
func (c CameraConfig) FOVRadians() float64 {
	return c.FOV * math.Pi / 180
}

// Vec converts a YAML triple to a vector.
func Vec(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// ParseColor accepts "#rrggbb" (or "#rgb") hex notation or a decimal
// "r,g,b" triple with channels in [0,255], and returns channels in [0,1].
func ParseColor(s string) (math3d.Vec3, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return math3d.V3(c.R, c.G, c.B), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.Vec3{}, fmt.Errorf("parse color %q: want #rrggbb or r,g,b", s)
	}
	var ch [3]float64
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		ch[i] = float64(n) / 255
	}
	return math3d.V3(ch[0], ch[1], ch[2]), nil
}
