package rise

import (
	"time"

	"github.com/vovakirdan/rise/internal/core"
)

// DefaultMaxCatchUp bounds the steps one Update may run after a stall.
const DefaultMaxCatchUp = 10

// Driver runs a Round at a fixed tick length from a real clock. However often
// Update is called, the round advances by the wall time that passed, in whole ticks.
type Driver struct {
	round      *Round
	clock      core.Clock
	tick       time.Duration
	MaxCatchUp int

	last time.Time
	acc  time.Duration
	now  time.Duration // Round clock: ticks run so far times tick
}

// NewDriver creates a driver for round. A non-positive tick falls back to 60Hz.
func NewDriver(round *Round, clock core.Clock, tick time.Duration) *Driver {
	if tick <= 0 {
		tick = time.Second / 60
	}
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Driver{
		round:      round,
		clock:      clock,
		tick:       tick,
		MaxCatchUp: DefaultMaxCatchUp,
	}
}

// Round returns the driven round.
func (d *Driver) Round() *Round { return d.round }

// TickDuration returns the fixed step length.
func (d *Driver) TickDuration() time.Duration { return d.tick }

// Now returns the round clock reading of the last step.
func (d *Driver) Now() time.Duration { return d.now }

// Start starts the round and its clock.
func (d *Driver) Start(colors []core.Color) error {
	if err := d.round.Start(colors); err != nil {
		return err
	}
	d.last = d.clock.Now()
	d.acc = 0
	d.now = 0
	return nil
}

// Update runs as many ticks as the clock has advanced since the previous call and
// returns how many ran. Time beyond MaxCatchUp ticks is dropped.
func (d *Driver) Update(in core.MultiInputFrame) int {
	if d.round.Phase() != PhaseRunning {
		return 0
	}
	t := d.clock.Now()
	if delta := t.Sub(d.last); delta > 0 {
		d.acc += delta
	}
	d.last = t

	steps := 0
	for d.acc >= d.tick && steps < d.MaxCatchUp {
		d.acc -= d.tick
		d.now += d.tick
		d.round.Step(in, d.now)
		steps++
		if d.round.Phase() != PhaseRunning {
			d.acc = 0
			break
		}
	}
	if d.acc >= d.tick {
		d.acc %= d.tick
	}
	return steps
}

// Reset returns the round to idle.
func (d *Driver) Reset() {
	d.round.Reset()
	d.acc = 0
	d.now = 0
}
