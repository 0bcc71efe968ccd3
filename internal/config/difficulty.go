package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width = 140
		cfg.Ball.MaxSpeed = 6
		cfg.Ball.SpeedIncrement = 1.03
	case DifficultyHard:
		cfg.Paddle.Width = 70
		cfg.Ball.MaxSpeed = 10
		cfg.Ball.SpeedIncrement = 1.08
		cfg.Ball.SpeedupOnBlock = true
	}
}
