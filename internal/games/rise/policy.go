package rise

import (
	"time"

	"github.com/vovakirdan/rise/internal/core"
)

// RandomPolicy plays for every player in headless runs. Each player holds a random
// direction for a random number of ticks and jumps with a fixed chance per tick.
type RandomPolicy struct {
	rng        Source
	JumpChance float64
	MaxHold    int // Longest run of ticks a direction is held

	dirs  map[core.PlayerID]core.Action
	holds map[core.PlayerID]int
}

// NewRandomPolicy creates a policy drawing from rng.
func NewRandomPolicy(rng Source) *RandomPolicy {
	return &RandomPolicy{
		rng:        rng,
		JumpChance: 0.08,
		MaxHold:    30,
		dirs:       make(map[core.PlayerID]core.Action),
		holds:      make(map[core.PlayerID]int),
	}
}

// Next returns the input of one tick for players.
func (p *RandomPolicy) Next(players []Player) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, pl := range players {
		if p.holds[pl.ID] <= 0 {
			switch p.rng.Intn(3) {
			case 0:
				p.dirs[pl.ID] = core.ActionLeft
			case 1:
				p.dirs[pl.ID] = core.ActionRight
			default:
				p.dirs[pl.ID] = core.ActionNone
			}
			p.holds[pl.ID] = intBetween(p.rng, 1, max(1, p.MaxHold))
		}
		p.holds[pl.ID]--

		frame := core.NewInputFrame()
		if dir := p.dirs[pl.ID]; dir != core.ActionNone {
			frame.Set(dir)
		}
		if chance(p.rng, p.JumpChance) {
			frame.Set(core.ActionJump)
		}
		in.SetPlayer(pl.ID, frame)
	}
	return in
}

// RunHeadless plays a freshly started round on a manual clock, one tick per iteration,
// until it is over or maxTicks ticks ran. It returns the ticks run.
func RunHeadless(round *Round, policy *RandomPolicy, tick time.Duration, maxTicks int) int {
	clock := core.NewManualClock(time.Unix(0, 0))
	driver := NewDriver(round, clock, tick)
	driver.last = clock.Now()

	ticks := 0
	for ticks < maxTicks && round.Phase() == PhaseRunning {
		clock.Advance(driver.TickDuration())
		ticks += driver.Update(policy.Next(round.Players()))
	}
	return ticks
}
