package rise

import (
	"time"

	"github.com/vovakirdan/rise/internal/config"
)

// Scroll is the speed tier of the rising world.
type Scroll struct {
	Speed float64 // World units moved per tick
	Level int
}

// Stop returns the scroll frozen at its current level.
func (s Scroll) Stop() Scroll {
	return Scroll{Speed: 0, Level: s.Level}
}

// ScrollController computes scroll transitions and moves the platform set.
type ScrollController struct {
	cfg    config.ScrollConfig
	height float64
}

// NewScrollController creates a scroll controller for cfg.
func NewScrollController(cfg config.RiseConfig) *ScrollController {
	return &ScrollController{cfg: cfg.Scroll, height: cfg.Field.Height}
}

// Start returns the scroll state at the beginning of a round.
func (c *ScrollController) Start() Scroll {
	return Scroll{Speed: c.cfg.InitialSpeed, Level: 1}
}

// Advance returns s moved up one tier if elapsed has passed the current level's
// checkpoint. At most one tier is gained per call.
func (c *ScrollController) Advance(s Scroll, elapsed time.Duration) Scroll {
	if !c.cfg.Leveling {
		return s
	}
	if elapsed > c.cfg.LevelInterval()*time.Duration(s.Level) {
		s.Speed += c.cfg.SpeedStep
		s.Level++
	}
	return s
}

// Sweep moves every platform and its cannons down by speed and drops the platforms
// that left the bottom of the field. The input slice is reused.
func (c *ScrollController) Sweep(platforms []Platform, speed float64) []Platform {
	kept := platforms[:0]
	for _, p := range platforms {
		p.Y += speed
		if len(p.Cannons) > 0 {
			cannons := make([]Cannon, len(p.Cannons))
			for i, cn := range p.Cannons {
				cn.Y += speed
				cannons[i] = cn
			}
			p.Cannons = cannons
		}
		if p.Y > c.height+c.cfg.RemoveMargin {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
