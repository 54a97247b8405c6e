package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rise/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyHold turns key presses into held-key state.
// Terminals only report presses and auto-repeats, never releases, so a key is
// considered down until no press has arrived for the hold window.
type KeyHold struct {
	mu      sync.Mutex
	window  time.Duration
	pressed map[string]time.Time
}

// NewKeyHold creates a key hold tracker. A non-positive window uses DefaultHoldWindow.
func NewKeyHold(window time.Duration) *KeyHold {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &KeyHold{
		window:  window,
		pressed: make(map[string]time.Time),
	}
}

// Press records a press of key at t.
func (k *KeyHold) Press(key string, t time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressed[key] = t
}

// Release forgets key immediately.
func (k *KeyHold) Release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.pressed, key)
}

// Reset forgets all keys.
func (k *KeyHold) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.pressed)
}

// State returns the keys held at now and drops the expired ones.
func (k *KeyHold) State(now time.Time) core.KeyState {
	k.mu.Lock()
	defer k.mu.Unlock()

	held := make(core.KeyState, len(k.pressed))
	for key, at := range k.pressed {
		if now.Sub(at) < k.window {
			held[key] = true
		} else {
			delete(k.pressed, key)
		}
	}
	return held
}

// KeyMapper translates Bubble Tea key messages to non-movement actions.
// Movement keys are per player and resolved from held state instead.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game-screen action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "r", " ":
		return core.ActionRestart, false
	case "b", "esc":
		return core.ActionBack, false
	case "enter":
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionP1Prev
	MenuActionP1Next
	MenuActionP2Prev
	MenuActionP2Next
	MenuActionSelect
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a color picker action.
// Each player cycles their color with their own movement keys.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "a":
		return MenuActionP1Prev
	case "d":
		return MenuActionP1Next
	case "left":
		return MenuActionP2Prev
	case "right":
		return MenuActionP2Next
	case "enter", " ":
		return MenuActionSelect
	case "tab", "h":
		return MenuActionHistory
	}
	return MenuActionNone
}
