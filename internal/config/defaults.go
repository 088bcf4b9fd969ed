package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hard-coded runner tuning.
// It mirrors defaults/runner.yaml and is used if the embed cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Track: TrackConfig{
			Height:      1000,
			PlayerDepth: 820,
		},
		Obstacle: ObstacleConfig{
			FarOffset:     -3500,
			ReleaseOffset: -800,
			Speed:         2.1,
		},
		Collision: CollisionConfig{
			BandAbove: 220,
			BandBelow: 40,
		},
		Timing: TimingConfig{
			SettleDelay:      time.Second,
			FeedbackDelay:    800 * time.Millisecond,
			NarrationTimeout: 45 * time.Second,
		},
		Input: InputConfig{
			SwipeDeadZone: 2,
		},
		Background: BackgroundConfig{
			Spacing: 150,
		},
	}
}

// DefaultRunnerYAML returns the embedded default tuning file.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
