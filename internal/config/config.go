// Package config provides YAML/TOML-based configuration loading, validation and
// difficulty presets for the rise engine.
package config

import (
	"fmt"
	"strings"
	"time"
)

// RiseConfig contains all tunables of the simulation.
type RiseConfig struct {
	Field       FieldConfig      `yaml:"field" toml:"field"`
	Player      PlayerConfig     `yaml:"player" toml:"player"`
	Physics     PhysicsConfig    `yaml:"physics" toml:"physics"`
	Generator   GeneratorConfig  `yaml:"generator" toml:"generator"`
	Hazards     HazardConfig     `yaml:"hazards" toml:"hazards"`
	Projectiles ProjectileConfig `yaml:"projectiles" toml:"projectiles"`
	Scroll      ScrollConfig     `yaml:"scroll" toml:"scroll"`
	Round       RoundConfig      `yaml:"round" toml:"round"`
}

// FieldConfig defines the playing area in world units.
type FieldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PlayerConfig defines the player hitbox and spawn points.
type PlayerConfig struct {
	Size   float64   `yaml:"size" toml:"size"`
	SpawnX []float64 `yaml:"spawn_x" toml:"spawn_x"` // One entry per player slot
	SpawnY float64   `yaml:"spawn_y" toml:"spawn_y"`
}

// PhysicsConfig defines per-tick movement parameters.
type PhysicsConfig struct {
	Speed          float64 `yaml:"speed" toml:"speed"`                 // Horizontal units per tick
	Gravity        float64 `yaml:"gravity" toml:"gravity"`             // Added to vy every tick
	JumpVelocity   float64 `yaml:"jump_velocity" toml:"jump_velocity"` // Negative = up
	MaxFallSpeed   float64 `yaml:"max_fall_speed" toml:"max_fall_speed"`
	SlowFactor     float64 `yaml:"slow_factor" toml:"slow_factor"`
	SlowDurationMS int     `yaml:"slow_duration_ms" toml:"slow_duration_ms"`
	PlatformHeight float64 `yaml:"platform_height" toml:"platform_height"`
	LandingSlack   float64 `yaml:"landing_slack" toml:"landing_slack"`
}

// GeneratorConfig defines the procedural platform ladder.
type GeneratorConfig struct {
	InitialCount int     `yaml:"initial_count" toml:"initial_count"`
	Floor        int     `yaml:"floor" toml:"floor"`
	RowSpacing   float64 `yaml:"row_spacing" toml:"row_spacing"`
	MinPerRow    int     `yaml:"min_per_row" toml:"min_per_row"`
	MaxPerRow    int     `yaml:"max_per_row" toml:"max_per_row"`
	MinWidth     float64 `yaml:"min_width" toml:"min_width"`
	MaxWidth     float64 `yaml:"max_width" toml:"max_width"`
	BaseOffset   float64 `yaml:"base_offset" toml:"base_offset"` // Base platform distance from field bottom
}

// HazardConfig defines spike and cannon attachment.
type HazardConfig struct {
	SpikeChance   float64 `yaml:"spike_chance" toml:"spike_chance"`
	SpikeWidth    float64 `yaml:"spike_width" toml:"spike_width"`
	SpikeHeight   float64 `yaml:"spike_height" toml:"spike_height"`
	SpikeEvery    float64 `yaml:"spike_every" toml:"spike_every"` // Platform width per extra spike
	CannonChance  float64 `yaml:"cannon_chance" toml:"cannon_chance"`
	CannonWidth   float64 `yaml:"cannon_width" toml:"cannon_width"`
	CannonHeight  float64 `yaml:"cannon_height" toml:"cannon_height"`
	CannonInset   float64 `yaml:"cannon_inset" toml:"cannon_inset"`
	MinIntervalMS int     `yaml:"min_interval_ms" toml:"min_interval_ms"`
	MaxIntervalMS int     `yaml:"max_interval_ms" toml:"max_interval_ms"`
}

// ProjectileConfig defines cannon shots.
type ProjectileConfig struct {
	Speed      float64 `yaml:"speed" toml:"speed"`
	Radius     float64 `yaml:"radius" toml:"radius"`
	Gravity    float64 `yaml:"gravity" toml:"gravity"`
	AngleDeg   float64 `yaml:"angle_deg" toml:"angle_deg"` // Elevation above horizontal
	CullMargin float64 `yaml:"cull_margin" toml:"cull_margin"`
}

// ScrollConfig defines the rising world.
type ScrollConfig struct {
	InitialSpeed    float64 `yaml:"initial_speed" toml:"initial_speed"`
	SpeedStep       float64 `yaml:"speed_step" toml:"speed_step"`
	LevelIntervalMS int     `yaml:"level_interval_ms" toml:"level_interval_ms"`
	Leveling        bool    `yaml:"leveling" toml:"leveling"`
	RemoveMargin    float64 `yaml:"remove_margin" toml:"remove_margin"`
}

// RoundConfig defines termination.
type RoundConfig struct {
	FallMargin float64 `yaml:"fall_margin" toml:"fall_margin"`
}

// SlowDuration returns the hazard slow effect length.
func (p PhysicsConfig) SlowDuration() time.Duration {
	return time.Duration(p.SlowDurationMS) * time.Millisecond
}

// MinInterval returns the shortest cannon cooldown.
func (h HazardConfig) MinInterval() time.Duration {
	return time.Duration(h.MinIntervalMS) * time.Millisecond
}

// MaxInterval returns the longest cannon cooldown.
func (h HazardConfig) MaxInterval() time.Duration {
	return time.Duration(h.MaxIntervalMS) * time.Millisecond
}

// LevelInterval returns the elapsed time per scroll level.
func (s ScrollConfig) LevelInterval() time.Duration {
	return time.Duration(s.LevelIntervalMS) * time.Millisecond
}

// ValidationError lists every invalid field found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config: invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks the configuration for values the engine cannot run with.
// It returns a *ValidationError describing all problems, or nil.
func (c RiseConfig) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		add("field size must be positive, got %gx%g", c.Field.Width, c.Field.Height)
	}
	if c.Player.Size <= 0 || c.Player.Size > c.Field.Width {
		add("player.size must be in (0, field.width], got %g", c.Player.Size)
	}
	if len(c.Player.SpawnX) == 0 {
		add("player.spawn_x needs at least one entry")
	}
	for i, x := range c.Player.SpawnX {
		if x < 0 || x > c.Field.Width-c.Player.Size {
			add("player.spawn_x[%d] = %g is outside the field", i, x)
		}
	}

	// A zero factor would divide gravity by zero and freeze horizontal movement.
	if c.Physics.SlowFactor <= 0 {
		add("physics.slow_factor must be > 0, got %g", c.Physics.SlowFactor)
	}
	if c.Physics.SlowDurationMS <= 0 {
		add("physics.slow_duration_ms must be positive, got %d", c.Physics.SlowDurationMS)
	}
	if c.Physics.JumpVelocity >= 0 {
		add("physics.jump_velocity must be negative (up), got %g", c.Physics.JumpVelocity)
	}
	if c.Physics.PlatformHeight <= 0 {
		add("physics.platform_height must be positive")
	}
	if c.Physics.MaxFallSpeed < 0 {
		add("physics.max_fall_speed must not be negative (0 disables the cap)")
	}

	g := c.Generator
	if g.Floor < 1 {
		add("generator.floor must be >= 1, got %d", g.Floor)
	}
	if g.RowSpacing <= 0 {
		add("generator.row_spacing must be positive, got %g", g.RowSpacing)
	}
	if g.MinPerRow < 1 || g.MaxPerRow < g.MinPerRow {
		add("generator per-row range [%d, %d] is invalid", g.MinPerRow, g.MaxPerRow)
	}
	if g.MinWidth <= 0 || g.MaxWidth < g.MinWidth || g.MaxWidth > c.Field.Width {
		add("generator width range [%g, %g] must fit the field", g.MinWidth, g.MaxWidth)
	}

	h := c.Hazards
	if h.SpikeChance < 0 || h.SpikeChance > 1 || h.CannonChance < 0 || h.CannonChance > 1 {
		add("hazard chances must be within [0, 1]")
	}
	if h.SpikeWidth <= 0 || h.SpikeWidth > g.MinWidth {
		add("hazards.spike_width must be in (0, generator.min_width], got %g", h.SpikeWidth)
	}
	if h.SpikeEvery <= 0 {
		add("hazards.spike_every must be positive")
	}
	if h.CannonWidth <= 0 || h.CannonWidth+h.CannonInset > g.MinWidth {
		add("hazards cannon geometry must fit the narrowest platform")
	}
	if h.MinIntervalMS <= 0 || h.MaxIntervalMS < h.MinIntervalMS {
		add("hazards interval range [%d, %d] is invalid", h.MinIntervalMS, h.MaxIntervalMS)
	}

	if c.Projectiles.Radius <= 0 || c.Projectiles.Speed <= 0 {
		add("projectile speed and radius must be positive")
	}

	if c.Scroll.InitialSpeed < 0 || c.Scroll.SpeedStep < 0 {
		add("scroll speeds must not be negative")
	}
	if c.Scroll.Leveling && c.Scroll.LevelIntervalMS <= 0 {
		add("scroll.level_interval_ms must be positive when leveling is enabled")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
