package controls

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/render"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestKeys() (*KeyState, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	k := NewKeyState()
	k.now = clock.now
	return k, clock
}

func TestKeyStateHold(t *testing.T) {
	k, clock := newTestKeys()

	if k.Held("a") {
		t.Fatal("unpressed key reported held")
	}
	k.Press("a")
	if !k.Held("a") {
		t.Fatal("pressed key not held")
	}

	clock.advance(DefaultHold / 2)
	k.Press("a") // auto-repeat
	clock.advance(DefaultHold / 2)
	if !k.Held("a") {
		t.Error("repeat should extend the hold")
	}

	clock.advance(DefaultHold)
	if k.Held("a") {
		t.Error("key still held after the hold window")
	}
}

func TestKeyStateRelease(t *testing.T) {
	k, _ := newTestKeys()
	k.Hold = 0

	k.Press("w")
	k.Press("q")
	k.Release("w")
	if k.Held("w") {
		t.Error("released key held")
	}
	if !k.Held("q") {
		t.Error("other key released")
	}

	k.Clear()
	if k.Held("q") {
		t.Error("Clear left a key held")
	}
}

func TestKeyStateNoHoldWindow(t *testing.T) {
	k, clock := newTestKeys()
	k.Hold = 0
	k.Press("e")
	clock.advance(time.Hour)
	if !k.Held("e") {
		t.Error("with Hold 0 a key stays held until released")
	}
}

func TestKeyStateZeroValue(t *testing.T) {
	var k KeyState
	if k.Held("a") {
		t.Fatal("empty KeyState reports a held key")
	}

	k.Press("a")
	if !k.Held("a") {
		t.Error("a not held after Press")
	}
	k.Release("a")
	if k.Held("a") {
		t.Error("a still held after Release")
	}
	k.Clear()
}

func TestKeyStateIgnoresOtherEvents(t *testing.T) {
	k, _ := newTestKeys()
	if k.HandleEvent("not an event", []string{"a"}) {
		t.Error("non-key event handled")
	}
}

func TestKeys(t *testing.T) {
	got := Keys(DefaultBindings())
	want := []string{"a", "d", "s", "w", "q", "e", "r", "t"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func testCamera() *render.Camera {
	return render.NewCamera(render.Frustum{Near: 1, Far: 1000, FOV: math.Pi / 3, Aspect: 1}, math3d.V3(0, 0, 2), math3d.Vec3{})
}

func near(a, b math3d.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestOrbiterFixedStep(t *testing.T) {
	tests := []struct {
		key  string
		want math3d.Vec3
	}{
		{"d", math3d.V3(2*math.Sin(0.1), 0, 2*math.Cos(0.1))},
		{"a", math3d.V3(-2*math.Sin(0.1), 0, 2*math.Cos(0.1))},
		{"w", math3d.V3(0, -2*math.Sin(0.1), 2*math.Cos(0.1))},
		{"s", math3d.V3(0, 2*math.Sin(0.1), 2*math.Cos(0.1))},
		{"q", math3d.V3(0, 0, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			cam := testCamera()
			o := NewOrbiter(cam, math3d.Vec3{})
			k, _ := newTestKeys()
			k.Press(tc.key)

			if !o.Update(k) {
				t.Fatal("Update reported no change")
			}
			if got := cam.Position(); !near(got, tc.want) {
				t.Errorf("position = %v, want %v", got, tc.want)
			}
			if d := cam.Position().Len(); math.Abs(d-2) > 1e-9 {
				t.Errorf("distance = %v, want 2", d)
			}
		})
	}
}

func TestOrbiterZoom(t *testing.T) {
	cam := testCamera()
	o := NewOrbiter(cam, math3d.Vec3{})
	k, _ := newTestKeys()

	k.Press("t")
	o.Update(k)
	if got := cam.Frustum().FOV; math.Abs(got-(math.Pi/3+0.1)) > 1e-12 {
		t.Errorf("FOV after t = %v", got)
	}

	k.Release("t")
	k.Press("r")
	o.Update(k)
	o.Update(k)
	if got := cam.Frustum().FOV; math.Abs(got-(math.Pi/3-0.1)) > 1e-12 {
		t.Errorf("FOV after r r = %v", got)
	}
}

func TestOrbiterIdle(t *testing.T) {
	cam := testCamera()
	o := NewOrbiter(cam, math3d.Vec3{})
	k, _ := newTestKeys()

	if o.Update(k) {
		t.Error("Update changed the camera with no keys held")
	}
	if cam.Position() != math3d.V3(0, 0, 2) {
		t.Errorf("position = %v", cam.Position())
	}
}

func TestOrbiterOpposingKeys(t *testing.T) {
	cam := testCamera()
	o := NewOrbiter(cam, math3d.Vec3{})
	k, _ := newTestKeys()
	k.Press("a")
	k.Press("d")

	o.Update(k)
	if got := cam.Position(); !near(got, math3d.V3(0, 0, 2)) {
		t.Errorf("opposing keys moved the camera to %v", got)
	}
}

func TestOrbiterInertia(t *testing.T) {
	cam := testCamera()
	o := NewOrbiter(cam, math3d.Vec3{})
	o.EnableInertia(30)
	k, clock := newTestKeys()
	k.Hold = 0

	k.Press("d")
	for range 60 {
		o.Update(k)
	}
	speed := o.axes[OrbitY].velocity
	if math.Abs(speed-0.1) > 1e-3 {
		t.Errorf("held velocity = %v, want about 0.1", speed)
	}

	k.Release("d")
	clock.advance(time.Second)
	for range 120 {
		o.Update(k)
	}
	if o.Moving() {
		t.Errorf("still moving after release: %v", o.axes[OrbitY].velocity)
	}
	if o.Update(k) {
		t.Error("Update reported change at rest")
	}
	if d := cam.Position().Len(); math.Abs(d-2) > 1e-9 {
		t.Errorf("distance = %v, want 2", d)
	}
}
