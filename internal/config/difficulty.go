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

// ParsePreset converts a flag value into a preset. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// SpeedMultiplierForPreset returns how much a preset scales approach speed.
func SpeedMultiplierForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// Speed stays constant for the whole session; presets only pick its value.
// The settle delay shrinks on hard so the row comes sooner after narration.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		return
	}
	cfg.Obstacle.Speed *= SpeedMultiplierForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Timing.FeedbackDelay += cfg.Timing.FeedbackDelay / 2
	case DifficultyHard:
		cfg.Timing.SettleDelay /= 2
	}
}

// LoadRunnerPreset loads the runner tuning like LoadRunner and applies preset.
// The result is validated again because a preset can scale the speed past
// what the collision band tolerates.
func LoadRunnerPreset(customPath string, preset DifficultyPreset) (RunnerConfig, error) {
	cfg, err := LoadRunner(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyRunnerPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("difficulty %s: %w", preset, err)
	}
	return cfg, nil
}
