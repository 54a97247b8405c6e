package rise

import (
	"testing"
	"time"

	"github.com/vovakirdan/rise/internal/core"
)

func newTestDriver(t *testing.T, tick time.Duration) (*Driver, *core.ManualClock) {
	t.Helper()
	clock := core.NewManualClock(time.Unix(1_700_000_000, 0))
	d := NewDriver(newTestRound(t, testConfig(), 1), clock, tick)
	if err := d.Start([]core.Color{core.ColorRed, core.ColorBlue}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return d, clock
}

func TestDriverRunsElapsedTicks(t *testing.T) {
	d, clock := newTestDriver(t, 10*time.Millisecond)
	in := core.NewMultiInputFrame()

	clock.Advance(35 * time.Millisecond)
	if steps := d.Update(in); steps != 3 {
		t.Errorf("Update after 35ms = %d steps, expected 3", steps)
	}
	if d.Now() != 30*time.Millisecond {
		t.Errorf("Now = %v, expected 30ms", d.Now())
	}

	// The leftover 5ms carries into the next update.
	clock.Advance(5 * time.Millisecond)
	if steps := d.Update(in); steps != 1 {
		t.Errorf("Update after 5ms more = %d steps, expected 1", steps)
	}
	if d.Round().Tick() != 4 {
		t.Errorf("round tick = %d, expected 4", d.Round().Tick())
	}
	if d.Round().Elapsed() != 40*time.Millisecond {
		t.Errorf("round elapsed = %v, expected 40ms", d.Round().Elapsed())
	}

	if steps := d.Update(in); steps != 0 {
		t.Errorf("Update without time passing = %d steps, expected 0", steps)
	}
}

func TestDriverIndependentOfCallRate(t *testing.T) {
	fast, fastClock := newTestDriver(t, 10*time.Millisecond)
	slow, slowClock := newTestDriver(t, 10*time.Millisecond)
	in := core.NewMultiInputFrame()

	for range 20 {
		fastClock.Advance(5 * time.Millisecond)
		fast.Update(in)
	}
	slowClock.Advance(100 * time.Millisecond)
	slow.Update(in)

	a, b := fast.Round().Snapshot(), slow.Round().Snapshot()
	if a.Tick != b.Tick || a.Hash() != b.Hash() {
		t.Errorf("render rate changed the simulation: ticks %d vs %d", a.Tick, b.Tick)
	}
}

func TestDriverCatchUpCap(t *testing.T) {
	d, clock := newTestDriver(t, 10*time.Millisecond)
	in := core.NewMultiInputFrame()

	clock.Advance(time.Second)
	if steps := d.Update(in); steps != DefaultMaxCatchUp {
		t.Errorf("Update after a stall = %d steps, expected %d", steps, DefaultMaxCatchUp)
	}
	if steps := d.Update(in); steps != 0 {
		t.Errorf("dropped time was replayed: %d steps", steps)
	}
}

func TestDriverIdle(t *testing.T) {
	clock := core.NewManualClock(time.Unix(0, 0))
	d := NewDriver(newTestRound(t, testConfig(), 1), clock, 0)
	if d.TickDuration() != time.Second/60 {
		t.Errorf("TickDuration = %v, expected 60Hz fallback", d.TickDuration())
	}

	clock.Advance(time.Second)
	if steps := d.Update(core.NewMultiInputFrame()); steps != 0 {
		t.Errorf("Update on idle round = %d steps, expected 0", steps)
	}

	if err := d.Start([]core.Color{core.ColorRed}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	d.Reset()
	if d.Round().Phase() != PhaseIdle || d.Now() != 0 {
		t.Errorf("after Reset phase=%v now=%v, expected idle at 0", d.Round().Phase(), d.Now())
	}
}
