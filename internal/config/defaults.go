package config

import (
	_ "embed"
)

//go:embed defaults/rise.yaml
var defaultRiseYAML []byte

// DefaultRiseConfig returns the default Rise configuration.
// It mirrors defaults/rise.yaml and is used when the embedded file cannot be parsed.
func DefaultRiseConfig() RiseConfig {
	return RiseConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			Size:   20,
			SpawnX: []float64{100, 600},
			SpawnY: 550,
		},
		Physics: PhysicsConfig{
			Speed:          5,
			Gravity:        0.5,
			JumpVelocity:   -10,
			MaxFallSpeed:   0,
			SlowFactor:     0.5,
			SlowDurationMS: 2000,
			PlatformHeight: 20,
			LandingSlack:   5,
		},
		Generator: GeneratorConfig{
			InitialCount: 45,
			Floor:        20,
			RowSpacing:   80,
			MinPerRow:    1,
			MaxPerRow:    4,
			MinWidth:     60,
			MaxWidth:     160,
			BaseOffset:   30,
		},
		Hazards: HazardConfig{
			SpikeChance:   0.2,
			SpikeWidth:    8,
			SpikeHeight:   12,
			SpikeEvery:    50,
			CannonChance:  0.15,
			CannonWidth:   12,
			CannonHeight:  10,
			CannonInset:   2,
			MinIntervalMS: 2000,
			MaxIntervalMS: 5000,
		},
		Projectiles: ProjectileConfig{
			Speed:      4,
			Radius:     4,
			Gravity:    0.1,
			AngleDeg:   45,
			CullMargin: 20,
		},
		Scroll: ScrollConfig{
			InitialSpeed:    0.5,
			SpeedStep:       0.25,
			LevelIntervalMS: 10000,
			Leveling:        true,
			RemoveMargin:    20,
		},
		Round: RoundConfig{
			FallMargin: 50,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRiseYAML
}
