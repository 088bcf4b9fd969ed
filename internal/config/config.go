// Package config provides YAML-based runner tuning, difficulty presets and
// the application settings loaded through viper.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRunner wraps every runner tuning validation failure.
var ErrInvalidRunner = errors.New("config: invalid runner config")

// RunnerConfig contains all tuning for the lane runner.
// Distances are in track units: the track is Track.Height units tall and
// the obstacle row's offset grows towards the player.
type RunnerConfig struct {
	Track      TrackConfig      `yaml:"track"`
	Obstacle   ObstacleConfig   `yaml:"obstacle"`
	Collision  CollisionConfig  `yaml:"collision"`
	Timing     TimingConfig     `yaml:"timing"`
	Input      InputConfig      `yaml:"input"`
	Background BackgroundConfig `yaml:"background"`
}

// TrackConfig places the player on the track.
type TrackConfig struct {
	Height      float64 `yaml:"height"`
	PlayerDepth float64 `yaml:"player_depth"`
}

// ObstacleConfig defines where the answer row starts and how fast it moves.
type ObstacleConfig struct {
	FarOffset     float64 `yaml:"far_offset"`     // reset value while a question is narrated
	ReleaseOffset float64 `yaml:"release_offset"` // value the row jumps to when released
	Speed         float64 `yaml:"speed"`          // units per frame
}

// CollisionConfig is the depth band around the player that resolves a question.
type CollisionConfig struct {
	BandAbove float64 `yaml:"band_above"`
	BandBelow float64 `yaml:"band_below"`
}

// TimingConfig holds the delays of the question cycle.
type TimingConfig struct {
	SettleDelay      time.Duration `yaml:"settle_delay"`
	FeedbackDelay    time.Duration `yaml:"feedback_delay"`
	NarrationTimeout time.Duration `yaml:"narration_timeout"`
}

// InputConfig tunes gesture handling.
type InputConfig struct {
	SwipeDeadZone int `yaml:"swipe_dead_zone"` // cells
}

// BackgroundConfig tunes the scrolling grid.
type BackgroundConfig struct {
	Spacing float64 `yaml:"spacing"`
}

// BandTop returns the shallow edge of the collision band.
func (c RunnerConfig) BandTop() float64 {
	return c.Track.PlayerDepth - c.Collision.BandAbove
}

// BandBottom returns the deep edge of the collision band.
func (c RunnerConfig) BandBottom() float64 {
	return c.Track.PlayerDepth + c.Collision.BandBelow
}

// Validate rejects tunings under which a question could stall or be skipped.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Track.Height <= 0:
		return fmt.Errorf("%w: track height must be positive", ErrInvalidRunner)
	case c.Track.PlayerDepth <= 0 || c.Track.PlayerDepth > c.Track.Height:
		return fmt.Errorf("%w: player depth %.1f outside track", ErrInvalidRunner, c.Track.PlayerDepth)
	case c.Obstacle.Speed <= 0:
		return fmt.Errorf("%w: obstacle speed must be positive", ErrInvalidRunner)
	case c.Collision.BandAbove < 0 || c.Collision.BandBelow < 0:
		return fmt.Errorf("%w: collision band edges must not be negative", ErrInvalidRunner)
	case c.Collision.BandAbove+c.Collision.BandBelow <= c.Obstacle.Speed:
		return fmt.Errorf("%w: collision band %.1f is not wider than one frame of motion %.1f",
			ErrInvalidRunner, c.Collision.BandAbove+c.Collision.BandBelow, c.Obstacle.Speed)
	case c.Obstacle.FarOffset+c.Obstacle.Speed > c.BandTop():
		return fmt.Errorf("%w: far offset %.1f can reach the band in one frame", ErrInvalidRunner, c.Obstacle.FarOffset)
	case c.Obstacle.ReleaseOffset > c.BandTop():
		return fmt.Errorf("%w: release offset %.1f starts inside or past the band", ErrInvalidRunner, c.Obstacle.ReleaseOffset)
	case c.Obstacle.FarOffset > c.Obstacle.ReleaseOffset:
		return fmt.Errorf("%w: far offset must not be closer than release offset", ErrInvalidRunner)
	case c.Timing.SettleDelay < 0 || c.Timing.FeedbackDelay < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidRunner)
	case c.Timing.NarrationTimeout <= 0:
		return fmt.Errorf("%w: narration timeout must be positive", ErrInvalidRunner)
	case c.Background.Spacing <= 0:
		return fmt.Errorf("%w: background spacing must be positive", ErrInvalidRunner)
	}
	return nil
}
