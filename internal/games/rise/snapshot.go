package rise

import (
	"math"
	"slices"
	"time"
)

// Snapshot is a deep copy of the round state after a tick.
// It is safe to keep and read while the round continues.
type Snapshot struct {
	Tick        uint64
	Phase       Phase
	Elapsed     time.Duration
	Scroll      Scroll
	Players     []Player
	Platforms   []Platform
	Projectiles []Projectile
	Result      *Result // Set once the round is over
}

// Snapshot returns the current round state.
func (r *Round) Snapshot() Snapshot {
	platforms := make([]Platform, len(r.platforms))
	for i, p := range r.platforms {
		p.Spikes = slices.Clone(p.Spikes)
		p.Cannons = slices.Clone(p.Cannons)
		platforms[i] = p
	}

	snap := Snapshot{
		Tick:        r.tick,
		Phase:       r.phase,
		Elapsed:     r.elapsed,
		Scroll:      r.scroll,
		Players:     slices.Clone(r.players),
		Platforms:   platforms,
		Projectiles: slices.Clone(r.live),
	}
	if r.phase == PhaseOver {
		res := r.result
		res.Winners = slices.Clone(res.Winners)
		res.Colors = slices.Clone(res.Colors)
		snap.Result = &res
	}
	return snap
}

func mix(h, v uint64) uint64 {
	return h*31 + v
}

func mixF(h uint64, v float64) uint64 {
	return mix(h, math.Float64bits(v))
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = mix(h, uint64(snap.Phase))   //#nosec G115 -- hash computation
	h = mix(h, uint64(snap.Elapsed)) //#nosec G115 -- hash computation
	h = mixF(h, snap.Scroll.Speed)
	h = mix(h, uint64(snap.Scroll.Level)) //#nosec G115 -- hash computation

	for _, p := range snap.Players {
		h = mix(h, uint64(p.ID)) //#nosec G115 -- hash computation
		h = mixF(h, p.X)
		h = mixF(h, p.Y)
		h = mixF(h, p.VY)
		if p.TouchingPlatform {
			h = mix(h, 1)
		}
		h = mix(h, uint64(p.SlowUntil)) //#nosec G115 -- hash computation
	}

	for _, p := range snap.Platforms {
		h = mixF(h, p.X)
		h = mixF(h, p.Y)
		h = mixF(h, p.Width)
		for _, s := range p.Spikes {
			h = mixF(h, s.X)
		}
		for _, c := range p.Cannons {
			h = mixF(h, c.Y)
			h = mix(h, uint64(c.Side))     //#nosec G115 -- hash computation
			h = mix(h, uint64(c.LastShot)) //#nosec G115 -- hash computation
			h = mix(h, uint64(c.Interval)) //#nosec G115 -- hash computation
		}
	}

	for _, pr := range snap.Projectiles {
		h = mixF(h, pr.X)
		h = mixF(h, pr.Y)
		h = mixF(h, pr.VX)
		h = mixF(h, pr.VY)
	}

	return h
}
