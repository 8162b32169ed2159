// Package controls turns terminal key events into camera motion.
package controls

import (
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

// DefaultHold is how long a key press counts as held when the terminal never
// reports the release.
const DefaultHold = 120 * time.Millisecond

// KeyState tracks which keys are currently held.
//
// Most terminals only send press events, repeating them while the key is
// down. A press therefore counts as held for Hold after the last event, or
// until a release event arrives if the terminal reports one.
//
// The zero value is usable and keeps keys held until they are released.
type KeyState struct {
	Hold time.Duration

	pressed map[string]time.Time
	now     func() time.Time
}

// NewKeyState returns a KeyState using DefaultHold.
func NewKeyState() *KeyState {
	return &KeyState{
		Hold:    DefaultHold,
		pressed: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (k *KeyState) clock() time.Time {
	if k.now == nil {
		return time.Now()
	}
	return k.now()
}

// Press records a press of key.
func (k *KeyState) Press(key string) {
	if k.pressed == nil {
		k.pressed = make(map[string]time.Time)
	}
	k.pressed[key] = k.clock()
}

// Release forgets key.
func (k *KeyState) Release(key string) {
	delete(k.pressed, key)
}

// Held reports whether key is down.
func (k *KeyState) Held(key string) bool {
	at, ok := k.pressed[key]
	if !ok {
		return false
	}
	if k.Hold > 0 && k.clock().Sub(at) > k.Hold {
		delete(k.pressed, key)
		return false
	}
	return true
}

// Clear releases every key.
func (k *KeyState) Clear() {
	clear(k.pressed)
}

// HandleEvent updates the state from an ultraviolet key event. Only keys in
// keys are tracked. It reports whether ev matched one of them.
func (k *KeyState) HandleEvent(ev any, keys []string) bool {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		for _, key := range keys {
			if ev.MatchString(key) {
				k.Press(key)
				return true
			}
		}
	case uv.KeyReleaseEvent:
		for _, key := range keys {
			if ev.MatchString(key) {
				k.Release(key)
				return true
			}
		}
	}
	return false
}
