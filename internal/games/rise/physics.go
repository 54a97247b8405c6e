package rise

import (
	"fmt"
	"time"

	"github.com/vovakirdan/rise/internal/config"
	"github.com/vovakirdan/rise/internal/core"
)

// Resolver advances a single player by one tick against a platform snapshot.
type Resolver struct {
	field   config.FieldConfig
	size    float64
	physics config.PhysicsConfig
	hazards config.HazardConfig
}

// NewResolver creates a resolver from cfg. The configuration is validated first,
// so a zero slow factor is rejected here instead of producing infinite gravity.
func NewResolver(cfg config.RiseConfig) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rise: resolver: %w", err)
	}
	return &Resolver{
		field:   cfg.Field,
		size:    cfg.Player.Size,
		physics: cfg.Physics,
		hazards: cfg.Hazards,
	}, nil
}

func (r *Resolver) slowFactor(p Player, now time.Duration) float64 {
	if p.Slowed(now) {
		return r.physics.SlowFactor
	}
	return 1
}

// EffectiveSpeed returns the horizontal speed p moves with at now.
func (r *Resolver) EffectiveSpeed(p Player, now time.Duration) float64 {
	return r.physics.Speed * r.slowFactor(p, now)
}

// EffectiveGravity returns the gravity applied to p at now. Slowed players fall harder.
func (r *Resolver) EffectiveGravity(p Player, now time.Duration) float64 {
	return r.physics.Gravity / r.slowFactor(p, now)
}

// Step returns p advanced by one tick. It does not modify its arguments.
// Platforms are used at their current position; the scroll for this tick has
// already been applied by the caller.
func (r *Resolver) Step(p Player, in core.InputFrame, platforms []Platform, now time.Duration) Player {
	speed := r.EffectiveSpeed(p, now)
	gravity := r.EffectiveGravity(p, now)

	vx := 0.0
	if in.Has(core.ActionLeft) {
		vx -= speed
	}
	if in.Has(core.ActionRight) {
		vx += speed
	}

	vy := p.VY + gravity
	if r.physics.MaxFallSpeed > 0 && vy > r.physics.MaxFallSpeed {
		vy = r.physics.MaxFallSpeed
	}

	newX := core.ClampF(p.X+vx, 0, r.field.Width-r.size)
	newY := p.Y + vy

	touching := false
	box := core.NewBox(newX, newY, r.size, r.size)
	for _, plat := range platforms {
		pb := plat.Box(r.physics.PlatformHeight)
		if !box.OverlapsX(pb) {
			continue
		}
		if vy > 0 && box.Bottom() >= pb.Y && box.Bottom() <= pb.Bottom()+r.physics.LandingSlack {
			vy = 0
			newY = pb.Y - r.size
			touching = true
			break
		}
		if vy < 0 && box.Y <= pb.Bottom() && box.Y >= pb.Bottom()-pb.H/2 {
			vy = 0
			newY = pb.Bottom()
			break
		}
	}

	if touching && in.Has(core.ActionJump) {
		vy = r.physics.JumpVelocity
		newY += vy
		touching = false
	}

	slowUntil := p.SlowUntil
	box = core.NewBox(newX, newY, r.size, r.size)
	if r.hitsSpike(box, platforms) {
		slowUntil = now + r.physics.SlowDuration()
	}

	p.X = newX
	p.Y = newY
	p.VY = vy
	p.TouchingPlatform = touching
	p.SlowUntil = slowUntil
	return p
}

func (r *Resolver) hitsSpike(box core.Box, platforms []Platform) bool {
	for _, plat := range platforms {
		for _, s := range plat.Spikes {
			sb := core.NewBox(plat.X+s.X, plat.Y-r.hazards.SpikeHeight, s.Width, r.hazards.SpikeHeight)
			if box.Intersects(sb) {
				return true
			}
		}
	}
	return false
}
