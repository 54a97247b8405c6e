// Package tui provides the Bubble Tea front end for rise: the color picker,
// the local two-player game screen, the round history browser and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a frame: input sampling, simulation catch-up and redraw.
// Gen identifies the game screen that scheduled it; a screen ignores the ticks of
// the ones before it.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
