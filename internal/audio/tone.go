package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sine oscillator with a linear fade-out so notes end without a click.
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// newTone creates a streamer that plays freq for d.
func newTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:     freq,
		duration: rate.N(d),
		rate:     rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}

		env := 1 - float64(t.position)/float64(t.duration)
		val := math.Sin(2*math.Pi*t.phase) * env

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// chime is a rising two-note cue for a correct answer.
func chime(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newTone(660, 90*time.Millisecond, rate),
		newTone(990, 140*time.Millisecond, rate),
	)
}

// buzz is a low falling cue for a wrong answer.
func buzz(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newTone(220, 120*time.Millisecond, rate),
		newTone(165, 180*time.Millisecond, rate),
	)
}
