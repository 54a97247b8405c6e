package rise

import (
	"math"
	"slices"
	"time"

	"github.com/vovakirdan/rise/internal/config"
	"github.com/vovakirdan/rise/internal/core"
)

// ProjectileSystem fires cannons and moves their shots.
type ProjectileSystem struct {
	field      config.FieldConfig
	cfg        config.ProjectileConfig
	cannonW    float64
	playerSize float64
	slow       time.Duration
	vx, vy     float64 // Firing vector of a left cannon
}

// NewProjectileSystem creates the projectile subsystem for cfg.
func NewProjectileSystem(cfg config.RiseConfig) *ProjectileSystem {
	angle := cfg.Projectiles.AngleDeg * math.Pi / 180
	return &ProjectileSystem{
		field:      cfg.Field,
		cfg:        cfg.Projectiles,
		cannonW:    cfg.Hazards.CannonWidth,
		playerSize: cfg.Player.Size,
		slow:       cfg.Physics.SlowDuration(),
		vx:         cfg.Projectiles.Speed * math.Cos(angle),
		vy:         -cfg.Projectiles.Speed * math.Sin(angle),
	}
}

// FiringVelocity returns the initial velocity of a shot from a cannon on side.
func (s *ProjectileSystem) FiringVelocity(side Side) (float64, float64) {
	if side == SideRight {
		return -s.vx, s.vy
	}
	return s.vx, s.vy
}

// Muzzle returns the spawn point of a shot from c on plat.
func (s *ProjectileSystem) Muzzle(plat Platform, c Cannon) (float64, float64) {
	if c.Side == SideRight {
		return plat.X + c.X, c.Y
	}
	return plat.X + c.X + s.cannonW, c.Y
}

// Tick advances and culls the live projectiles, then fires every cannon whose
// cooldown has elapsed. Shots fired on this tick are appended unmoved.
// The returned platforms carry the updated cannon timers; the inputs are not modified.
func (s *ProjectileSystem) Tick(platforms []Platform, live []Projectile, scrollSpeed float64, now time.Duration) ([]Platform, []Projectile) {
	next := make([]Projectile, 0, len(live))
	for _, pr := range live {
		pr.X += pr.VX
		pr.Y += pr.VY + scrollSpeed
		pr.VY += s.cfg.Gravity
		if s.outside(pr) {
			continue
		}
		next = append(next, pr)
	}

	out := slices.Clone(platforms)
	for i := range out {
		if len(out[i].Cannons) == 0 {
			continue
		}
		cannons := slices.Clone(out[i].Cannons)
		for j, c := range cannons {
			if now-c.LastShot <= c.Interval {
				continue
			}
			cannons[j].LastShot = now

			x, y := s.Muzzle(out[i], c)
			vx, vy := s.FiringVelocity(c.Side)
			next = append(next, Projectile{X: x, Y: y, VX: vx, VY: vy, Radius: s.cfg.Radius})
		}
		out[i].Cannons = cannons
	}
	return out, next
}

func (s *ProjectileSystem) outside(pr Projectile) bool {
	m := s.cfg.CullMargin
	return pr.X < -m || pr.X > s.field.Width+m || pr.Y < -m || pr.Y > s.field.Height+m
}

// CheckCollision reports whether any live projectile touches p.
func (s *ProjectileSystem) CheckCollision(p Player, live []Projectile) bool {
	return s.firstHit(p, live) >= 0
}

func (s *ProjectileSystem) firstHit(p Player, live []Projectile) int {
	cx, cy := p.Box(s.playerSize).Center()
	for i, pr := range live {
		if core.Distance(cx, cy, pr.X, pr.Y) < pr.Radius+s.playerSize/2 {
			return i
		}
	}
	return -1
}

// ResolveHits slows every player a projectile touches and removes the projectiles that hit.
// Players is updated in place; the remaining projectiles are returned.
func (s *ProjectileSystem) ResolveHits(players []Player, live []Projectile, now time.Duration) []Projectile {
	live = slices.Clone(live)
	for i := range players {
		for {
			hit := s.firstHit(players[i], live)
			if hit < 0 {
				break
			}
			players[i].SlowUntil = now + s.slow
			live = slices.Delete(live, hit, hit+1)
		}
	}
	return live
}
