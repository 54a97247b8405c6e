package rise

import (
	"testing"
	"time"

	"github.com/vovakirdan/rise/internal/core"
)

func TestRandomPolicyDeterministic(t *testing.T) {
	players := []Player{{ID: core.Player1}, {ID: core.Player2}}
	a := NewRandomPolicy(NewSource(5))
	b := NewRandomPolicy(NewSource(5))

	for i := range 200 {
		ina, inb := a.Next(players), b.Next(players)
		for _, p := range players {
			fa, fb := ina.Player(p.ID), inb.Player(p.ID)
			for _, act := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump} {
				if fa.Has(act) != fb.Has(act) {
					t.Fatalf("tick %d %s %s: policies with the same seed disagree", i, p.ID, act)
				}
			}
		}
	}
}

func TestRandomPolicyNeverHoldsBothDirections(t *testing.T) {
	players := []Player{{ID: core.Player1}, {ID: core.Player2}}
	p := NewRandomPolicy(NewSource(9))
	p.JumpChance = 0

	for i := range 500 {
		in := p.Next(players)
		for _, pl := range players {
			f := in.Player(pl.ID)
			if f.Has(core.ActionLeft) && f.Has(core.ActionRight) {
				t.Fatalf("tick %d: %s holds left and right", i, pl.ID)
			}
			if f.Has(core.ActionJump) {
				t.Fatalf("tick %d: %s jumped with JumpChance 0", i, pl.ID)
			}
		}
	}
}

func TestRunHeadless(t *testing.T) {
	run := func() (*Round, int) {
		r := startedRound(t, 21)
		return r, RunHeadless(r, NewRandomPolicy(NewSource(22)), testTick, 120)
	}

	r1, ticks := run()
	if r1.Phase() == PhaseRunning && ticks != 120 {
		t.Errorf("RunHeadless ran %d ticks, expected 120", ticks)
	}
	if r1.Tick() != uint64(ticks) {
		t.Errorf("round tick = %d, expected %d", r1.Tick(), ticks)
	}
	if r1.Elapsed() != time.Duration(ticks)*testTick {
		t.Errorf("round elapsed = %v, expected %d ticks", r1.Elapsed(), ticks)
	}

	r2, _ := run()
	s1, s2 := r1.Snapshot(), r2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Error("headless runs with the same seeds diverged")
	}
}
