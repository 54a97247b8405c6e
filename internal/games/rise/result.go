package rise

import (
	"fmt"
	"time"

	"github.com/vovakirdan/rise/internal/core"
)

// Result is the outcome of a finished round.
type Result struct {
	Winners []core.PlayerID // Every player sharing the minimum Y
	Colors  []core.Color    // Colors of Winners, same order
	Tie     bool
	Elapsed time.Duration
	Text    string // "Red Wins!" or "Tie!"
}

// Winner returns the single winner, or PlayerNone on a tie.
func (r Result) Winner() core.PlayerID {
	if r.Tie || len(r.Winners) == 0 {
		return core.PlayerNone
	}
	return r.Winners[0]
}

// DecideWinner picks the player highest on screen (smallest Y).
// Players sharing that Y tie.
func DecideWinner(players []Player, elapsed time.Duration) Result {
	res := Result{Elapsed: elapsed}
	if len(players) == 0 {
		res.Tie = true
		res.Text = "Tie!"
		return res
	}

	best := players[0].Y
	for _, p := range players[1:] {
		if p.Y < best {
			best = p.Y
		}
	}
	for _, p := range players {
		if p.Y == best {
			res.Winners = append(res.Winners, p.ID)
			res.Colors = append(res.Colors, p.Color)
		}
	}

	res.Tie = len(res.Winners) > 1
	if res.Tie {
		res.Text = "Tie!"
	} else {
		res.Text = res.Colors[0].Title() + " Wins!"
	}
	return res
}

// FormatElapsed renders d as mm:ss.cc.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := int64(d / (10 * time.Millisecond))
	return fmt.Sprintf("%02d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}
