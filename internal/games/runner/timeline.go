package runner

import (
	"math"

	"github.com/aanchal1810/Oplaite-AI/internal/config"
)

// Timeline is the vertical position of the answer row on the track.
// Y grows towards the player; the row only moves while released.
type Timeline struct {
	Y     float64
	Speed float64
	Held  bool

	far     float64
	release float64
	spacing float64
	scroll  float64 // background offset in [0, spacing)
}

// NewTimeline creates a held timeline parked at the far offset.
func NewTimeline(cfg config.RunnerConfig) Timeline {
	t := Timeline{
		Speed:   cfg.Obstacle.Speed,
		far:     cfg.Obstacle.FarOffset,
		release: cfg.Obstacle.ReleaseOffset,
		spacing: cfg.Background.Spacing,
	}
	t.Hold()
	return t
}

// Hold parks the row far off-screen and stops it.
func (t *Timeline) Hold() {
	t.Y = t.far
	t.Held = true
}

// Release moves the row to its start position and lets it approach.
func (t *Timeline) Release() {
	t.Y = t.release
	t.Held = false
}

// Advance moves a released row one frame closer.
func (t *Timeline) Advance() {
	if t.Held {
		return
	}
	t.Y += t.Speed
}

// Scroll moves the background one frame.
func (t *Timeline) Scroll() {
	if t.spacing <= 0 {
		return
	}
	t.scroll = math.Mod(t.scroll+t.Speed, t.spacing)
}

// ScrollOffset returns the background offset.
func (t *Timeline) ScrollOffset() float64 {
	return t.scroll
}

// AtFar reports whether the row is parked at its reset position.
func (t *Timeline) AtFar() bool {
	return t.Y == t.far
}

// InBand reports whether the row lies strictly between top and bottom.
func (t *Timeline) InBand(top, bottom float64) bool {
	return t.Y > top && t.Y < bottom
}
