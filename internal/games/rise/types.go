// Package rise implements the simulation engine of a two-player vertical platformer.
// Players climb a procedurally generated, scrolling ladder of platforms while
// spikes and cannon fire slow them down; whoever falls off the bottom first loses.
//
// The engine is a closed, deterministic loop over numeric state: it never reads the
// wall clock or ambient randomness itself. Time arrives as the round clock reading
// (elapsed since round start) and randomness through an injected Source.
package rise

import (
	"time"

	"github.com/vovakirdan/rise/internal/core"
)

// Side is the platform edge a cannon sits on. It also fixes the firing direction:
// left cannons shoot up-right, right cannons shoot up-left.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Spike is a triangular hazard standing on a platform.
type Spike struct {
	X     float64 // Offset from the parent platform's left edge
	Width float64
}

// Cannon periodically fires a projectile from a platform edge.
type Cannon struct {
	X        float64 // Offset from the parent platform's left edge
	Y        float64 // Absolute top, kept in sync with the platform while scrolling
	Side     Side
	LastShot time.Duration // Round clock reading of the last shot; 0 = never fired
	Interval time.Duration
}

// Platform is a horizontal ledge. Hazards are attached at creation and never added later.
// Spikes and Cannons are plain slices; a platform without hazards has empty ones.
type Platform struct {
	X, Y    float64 // Top-left corner
	Width   float64
	Base    bool // The full-width starting floor
	Spikes  []Spike
	Cannons []Cannon
}

// Box returns the collision box of the platform for the given collision height.
func (p Platform) Box(height float64) core.Box {
	return core.NewBox(p.X, p.Y, p.Width, height)
}

// Projectile is a cannon shot. It belongs to the live set, not to the cannon that fired it.
type Projectile struct {
	X, Y   float64 // Center
	VX, VY float64
	Radius float64
}

// KeyBindings names the keys that drive a player.
type KeyBindings struct {
	Left  string
	Right string
	Up    string
}

// Player is one climber. Horizontal motion is stateless: it is recomputed from the
// held keys every tick, so only the vertical velocity is stored.
type Player struct {
	ID               core.PlayerID
	X, Y             float64 // Top-left corner of the hitbox
	VY               float64
	TouchingPlatform bool
	Color            core.Color
	Keys             KeyBindings
	SlowUntil        time.Duration // Slowed while now < SlowUntil; 0 = never slowed
}

// Box returns the player's hitbox at its current position.
func (p Player) Box(size float64) core.Box {
	return core.NewBox(p.X, p.Y, size, size)
}

// Slowed reports whether a hazard slow effect is active at now.
func (p Player) Slowed(now time.Duration) bool {
	return p.SlowUntil > now
}

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}
