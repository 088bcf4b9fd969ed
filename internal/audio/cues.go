// Package audio plays short feedback cues when a question resolves.
// Audio is optional: if the speaker cannot be opened, cues stay silent.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cues owns the speaker mixer used for feedback sounds.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewCues creates a silent cue player; call Init to open the speaker.
func NewCues() *Cues {
	return &Cues{
		mixer: &beep.Mixer{},
	}
}

// SetVolume sets the cue volume in beep's logarithmic scale (0 is unchanged, -1 is half).
func (c *Cues) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = v
}

// Init opens the speaker and starts the mixer.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (c *Cues) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Correct plays the correct-answer chime.
func (c *Cues) Correct() {
	c.play(chime(sampleRate))
}

// Wrong plays the wrong-answer buzz.
func (c *Cues) Wrong() {
	c.play(buzz(sampleRate))
}

func (c *Cues) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Add(c.attenuate(s))
	speaker.Unlock()
}

// attenuate applies the cue volume to s. Callers hold c.mu.
func (c *Cues) attenuate(s beep.Streamer) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   c.volume,
	}
}

// Close stops all sounds and closes the speaker.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}
