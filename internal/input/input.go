// Package input turns keyboard edge events and polled gamepad state into
// game intents and feeds them to a single target.
package input

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Target receives intents. The tetris Game satisfies it.
type Target interface {
	Apply(in core.Intent) bool
}

// Bindings maps each intent to the keys or buttons that trigger it.
type Bindings[T comparable] struct {
	MoveLeft  []T
	MoveRight []T
	SoftDrop  []T
	RotateCW  []T
	RotateCCW []T
}

// Keyboard translates key-down and key-up events into intents.
// Keys are the names frontends report, e.g. "left" or "a".
type Keyboard struct {
	intents map[string]core.Intent
}

// NewKeyboard builds a keyboard source from bindings.
// When a key is bound twice the later intent wins.
func NewKeyboard(b Bindings[string]) *Keyboard {
	k := &Keyboard{intents: make(map[string]core.Intent)}
	bind := func(keys []string, in core.Intent) {
		for _, key := range keys {
			k.intents[key] = in
		}
	}
	bind(b.MoveLeft, core.IntentMoveLeft)
	bind(b.MoveRight, core.IntentMoveRight)
	bind(b.SoftDrop, core.IntentSoftDropOn)
	bind(b.RotateCW, core.IntentRotateCW)
	bind(b.RotateCCW, core.IntentRotateCCW)
	return k
}

// KeyDown returns the intent of a pressed key, or IntentNone.
func (k *Keyboard) KeyDown(key string) core.Intent {
	return k.intents[key]
}

// KeyUp returns IntentSoftDropOff for a released soft-drop key and
// IntentNone for everything else.
func (k *Keyboard) KeyUp(key string) core.Intent {
	if k.intents[key] == core.IntentSoftDropOn {
		return core.IntentSoftDropOff
	}
	return core.IntentNone
}

// Gamepad derives intents from the set of buttons held during one poll.
type Gamepad struct {
	b Bindings[int]
}

// NewGamepad builds a gamepad source from button-index bindings.
func NewGamepad(b Bindings[int]) *Gamepad {
	return &Gamepad{b: b}
}

// PadIntents is what one poll asserts.
type PadIntents struct {
	Move     core.Intent // IntentMoveLeft, IntentMoveRight or IntentNone
	SoftDrop bool
	Rotate   core.Intent // IntentRotateCCW, IntentRotateCW or IntentNone
}

// Poll reads the held buttons. Left wins over right and counter-clockwise
// wins over clockwise when both are held.
func (g *Gamepad) Poll(pressed []int) PadIntents {
	held := make(map[int]bool, len(pressed))
	for _, b := range pressed {
		held[b] = true
	}
	heldAny := func(buttons []int) bool {
		for _, b := range buttons {
			if held[b] {
				return true
			}
		}
		return false
	}

	var out PadIntents
	if heldAny(g.b.MoveLeft) {
		out.Move = core.IntentMoveLeft
	} else if heldAny(g.b.MoveRight) {
		out.Move = core.IntentMoveRight
	}
	out.SoftDrop = heldAny(g.b.SoftDrop)
	if heldAny(g.b.RotateCCW) {
		out.Rotate = core.IntentRotateCCW
	} else if heldAny(g.b.RotateCW) {
		out.Rotate = core.IntentRotateCW
	}
	return out
}

// Multiplexer merges both sources into one intent stream. Soft drop is
// held while either device asserts it.
type Multiplexer struct {
	target   Target
	keyboard *Keyboard
	gamepad  *Gamepad

	padConnected bool
	keySoft      bool
	padSoft      bool
}

// NewMultiplexer creates a multiplexer feeding target. gamepad may be nil
// when the frontend has no controller support.
func NewMultiplexer(target Target, keyboard *Keyboard, gamepad *Gamepad) *Multiplexer {
	return &Multiplexer{target: target, keyboard: keyboard, gamepad: gamepad}
}

// KeyDown applies the intent of a pressed key once.
func (m *Multiplexer) KeyDown(key string) core.Intent {
	in := m.keyboard.KeyDown(key)
	switch in {
	case core.IntentNone:
	case core.IntentSoftDropOn:
		m.keySoft = true
		m.syncSoftDrop()
	default:
		m.target.Apply(in)
	}
	return in
}

// KeyUp handles a key release.
func (m *Multiplexer) KeyUp(key string) core.Intent {
	in := m.keyboard.KeyUp(key)
	if in == core.IntentSoftDropOff {
		m.keySoft = false
		m.syncSoftDrop()
	}
	return in
}

// SetGamepadConnected marks a controller as present or gone. Disconnecting
// releases any soft drop it was holding.
func (m *Multiplexer) SetGamepadConnected(connected bool) {
	m.padConnected = connected
	if !connected && m.padSoft {
		m.padSoft = false
		m.syncSoftDrop()
	}
}

// GamepadConnected reports whether polling is active.
func (m *Multiplexer) GamepadConnected() bool {
	return m.padConnected && m.gamepad != nil
}

// PollGamepad applies at most one horizontal move, the soft-drop state and
// at most one rotation, in that order. It does nothing while no controller
// is connected.
func (m *Multiplexer) PollGamepad(pressed []int) {
	if !m.GamepadConnected() {
		return
	}
	p := m.gamepad.Poll(pressed)
	if p.Move != core.IntentNone {
		m.target.Apply(p.Move)
	}
	m.padSoft = p.SoftDrop
	m.syncSoftDrop()
	if p.Rotate != core.IntentNone {
		m.target.Apply(p.Rotate)
	}
}

func (m *Multiplexer) syncSoftDrop() {
	if m.keySoft || m.padSoft {
		m.target.Apply(core.IntentSoftDropOn)
	} else {
		m.target.Apply(core.IntentSoftDropOff)
	}
}

// HoldTracker infers key releases for terminals, which only report key
// presses. A held key auto-repeats; once no repeat arrives within the
// timeout the key counts as released.
type HoldTracker struct {
	timeout time.Duration
	last    map[string]time.Time
}

// NewHoldTracker creates a tracker with the given release timeout.
func NewHoldTracker(timeout time.Duration) *HoldTracker {
	return &HoldTracker{timeout: timeout, last: make(map[string]time.Time)}
}

// Press records a press or repeat of key. Returns true on the first press.
func (h *HoldTracker) Press(key string, now time.Time) bool {
	_, held := h.last[key]
	h.last[key] = now
	return !held
}

// Expired removes and returns keys whose last press is older than the
// timeout.
func (h *HoldTracker) Expired(now time.Time) []string {
	var out []string
	for key, at := range h.last {
		if now.Sub(at) >= h.timeout {
			out = append(out, key)
			delete(h.last, key)
		}
	}
	return out
}

// Held reports whether key is currently considered held.
func (h *HoldTracker) Held(key string) bool {
	_, ok := h.last[key]
	return ok
}
