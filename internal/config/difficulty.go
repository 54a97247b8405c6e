package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. An empty name means "keep the config as loaded".
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// IsFixedPreset returns true if the preset disables scroll leveling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyRisePreset modifies the scroll and hazard settings for a difficulty preset.
// Normal keeps the loaded values.
func ApplyRisePreset(cfg *RiseConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Scroll.Leveling = false
		return
	}
	if preset != "" {
		cfg.Scroll.Leveling = true
	}

	switch preset {
	case DifficultyEasy:
		cfg.Scroll.InitialSpeed *= 0.6
		cfg.Scroll.SpeedStep *= 0.6
		cfg.Hazards.SpikeChance /= 2
		cfg.Hazards.CannonChance /= 2
	case DifficultyHard:
		cfg.Scroll.InitialSpeed *= 1.6
		cfg.Scroll.SpeedStep *= 1.4
		cfg.Hazards.SpikeChance = min(1, cfg.Hazards.SpikeChance*1.5)
		cfg.Hazards.CannonChance = min(1, cfg.Hazards.CannonChance*2)
	}
}
