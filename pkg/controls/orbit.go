package controls

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/render"
)

// Motion is what a bound key does to the camera.
type Motion int

const (
	OrbitX Motion = iota // Rotate about the world X axis
	OrbitY               // Rotate about the world Y axis
	OrbitZ               // Rotate about the world Z axis
	Zoom                 // Change the field of view
)

// Binding maps a key to a motion. Sign is +1 or -1.
type Binding struct {
	Key    string
	Motion Motion
	Sign   float64
}

// DefaultBindings returns a/d for Y, s/w for X and q/e for Z orbiting, and
// r/t to narrow and widen the field of view.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: "a", Motion: OrbitY, Sign: -1},
		{Key: "d", Motion: OrbitY, Sign: 1},
		{Key: "s", Motion: OrbitX, Sign: -1},
		{Key: "w", Motion: OrbitX, Sign: 1},
		{Key: "q", Motion: OrbitZ, Sign: -1},
		{Key: "e", Motion: OrbitZ, Sign: 1},
		{Key: "r", Motion: Zoom, Sign: -1},
		{Key: "t", Motion: Zoom, Sign: 1},
	}
}

// Keys returns the keys named by bindings.
func Keys(bindings []Binding) []string {
	keys := make([]string, len(bindings))
	for i, b := range bindings {
		keys[i] = b.Key
	}
	return keys
}

var motionAxes = [3]math3d.Vec3{
	OrbitX: {X: 1},
	OrbitY: {Y: 1},
	OrbitZ: {Z: 1},
}

// restThreshold is the speed below which an eased motion is treated as
// stopped.
const restThreshold = 1e-4

// axis eases a velocity toward a goal with a critically damped spring.
type axis struct {
	velocity float64
	accel    float64
	spring   harmonica.Spring
}

func (a *axis) update(goal float64) float64 {
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, goal)
	if goal == 0 && math.Abs(a.velocity) < restThreshold {
		a.velocity, a.accel = 0, 0
	}
	return a.velocity
}

// Orbiter moves a camera around a fixed target in response to held keys.
//
// Without inertia each held key applies one step per Update. With inertia
// the per-frame angular velocity springs toward the held keys' step and
// back to zero after release.
type Orbiter struct {
	Camera    *render.Camera
	Target    math3d.Vec3
	Bindings  []Binding
	OrbitStep float64 // Radians per frame
	FOVStep   float64 // Radians per frame

	inertia bool
	axes    [4]axis // Indexed by Motion
}

// NewOrbiter returns an orbiter with the default bindings and 0.1 rad steps.
func NewOrbiter(camera *render.Camera, target math3d.Vec3) *Orbiter {
	return &Orbiter{
		Camera:    camera,
		Target:    target,
		Bindings:  DefaultBindings(),
		OrbitStep: 0.1,
		FOVStep:   0.1,
	}
}

// EnableInertia switches to spring-eased motion updated fps times a second.
func (o *Orbiter) EnableInertia(fps int) {
	o.inertia = true
	for i := range o.axes {
		// Frequency 6, damping 1: settles within a few frames without overshoot.
		o.axes[i] = axis{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
	}
}

// Moving reports whether eased motion is still decaying.
func (o *Orbiter) Moving() bool {
	for _, a := range o.axes {
		if a.velocity != 0 {
			return true
		}
	}
	return false
}

// Update applies one frame of motion and reports whether the camera changed.
func (o *Orbiter) Update(keys *KeyState) bool {
	var goal [4]float64
	changed := false
	for _, b := range o.Bindings {
		if !keys.Held(b.Key) {
			continue
		}
		step := o.OrbitStep
		if b.Motion == Zoom {
			step = o.FOVStep
		}
		if o.inertia {
			goal[b.Motion] += b.Sign * step
			continue
		}
		o.apply(b.Motion, b.Sign*step)
		changed = true
	}
	if !o.inertia {
		return changed
	}

	for m := range o.axes {
		if v := o.axes[m].update(goal[m]); v != 0 {
			o.apply(Motion(m), v)
			changed = true
		}
	}
	return changed
}

func (o *Orbiter) apply(m Motion, amount float64) {
	if m == Zoom {
		o.Camera.Scale(amount)
		return
	}
	o.Camera.RotationAround(o.Target, math3d.QuatFromAxisAngle(motionAxes[m], amount))
}
