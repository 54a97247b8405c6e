package rise

import "github.com/vovakirdan/rise/internal/core"

// DefaultBindings returns the key bindings of each player slot: WASD-style keys for
// the first player and arrows for the second. Further slots have no keys.
func DefaultBindings() []KeyBindings {
	return []KeyBindings{
		{Left: "a", Right: "d", Up: "w"},
		{Left: "left", Right: "right", Up: "up"},
	}
}

// BindingsFor returns the default bindings of player slot i (zero-based).
func BindingsFor(i int) KeyBindings {
	defaults := DefaultBindings()
	if i < 0 || i >= len(defaults) {
		return KeyBindings{}
	}
	return defaults[i]
}

// InputFor resolves the held keys into per-player actions.
// A player whose bindings match no held key gets an empty frame.
func InputFor(players []Player, keys core.KeyState) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, p := range players {
		frame := core.NewInputFrame()
		if keys.Held(p.Keys.Left) {
			frame.Set(core.ActionLeft)
		}
		if keys.Held(p.Keys.Right) {
			frame.Set(core.ActionRight)
		}
		if keys.Held(p.Keys.Up) {
			frame.Set(core.ActionJump)
		}
		in.SetPlayer(p.ID, frame)
	}
	return in
}
