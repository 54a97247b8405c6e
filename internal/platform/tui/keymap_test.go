package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rise/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyHoldWindow(t *testing.T) {
	t0 := time.Unix(1000, 0)
	k := NewKeyHold(150 * time.Millisecond)
	k.Press("a", t0)
	k.Press("up", t0.Add(100*time.Millisecond))

	tests := []struct {
		name  string
		at    time.Duration
		a, up bool
	}{
		{"just pressed", 0, true, true},
		{"inside window", 149 * time.Millisecond, true, true},
		{"a expired", 150 * time.Millisecond, false, true},
		{"both expired", 250 * time.Millisecond, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := k.State(t0.Add(tt.at))
			if held.Held("a") != tt.a {
				t.Errorf("Held(a) = %v, expected %v", held.Held("a"), tt.a)
			}
			if held.Held("up") != tt.up {
				t.Errorf("Held(up) = %v, expected %v", held.Held("up"), tt.up)
			}
		})
	}
}

func TestKeyHoldRepeatExtends(t *testing.T) {
	t0 := time.Unix(1000, 0)
	k := NewKeyHold(0)
	for i := range 5 {
		k.Press("d", t0.Add(time.Duration(i)*100*time.Millisecond))
	}
	if !k.State(t0.Add(500 * time.Millisecond)).Held("d") {
		t.Error("auto-repeated key should stay held")
	}

	k.Release("d")
	if k.State(t0.Add(500 * time.Millisecond)).Held("d") {
		t.Error("released key should not be held")
	}

	k.Press("a", t0)
	k.Press("left", t0)
	k.Reset()
	if held := k.State(t0); len(held) != 0 {
		t.Errorf("State after Reset = %v, expected no keys", held)
	}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"space restarts", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionRestart, false},
		{"b goes back", runeKey("b"), core.ActionBack, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"movement is not mapped", runeKey("a"), core.ActionNone, false},
		{"arrows are not mapped", tea.KeyMsg{Type: tea.KeyUp}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey("a"), MenuActionP1Prev},
		{runeKey("d"), MenuActionP1Next},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionP2Prev},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionP2Next},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeySpace}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
