package speech

import (
	"context"
	"time"
)

// Paced is a caption-only synthesizer: it emits word boundaries at a steady
// words-per-minute pace without producing audio. It is used over SSH, where
// the server cannot play sound on the client, and when no TTS is installed.
type Paced struct {
	interval time.Duration
}

// NewPaced creates a caption-only synthesizer.
func NewPaced(wpm int) *Paced {
	return &Paced{interval: wordInterval(wpm)}
}

// Speak implements Synthesizer.
func (p *Paced) Speak(ctx context.Context, text string, emit func(Event)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	emit(Event{Kind: EventStart})
	if err := paceBoundaries(ctx, Words(text), p.interval, emit); err != nil {
		return err
	}
	emit(Event{Kind: EventEnd})
	return nil
}

// paceBoundaries emits one boundary per word, spaced by interval, and waits
// one more interval after the last word. It returns ctx.Err() if cancelled.
func paceBoundaries(ctx context.Context, words []Word, interval time.Duration, emit func(Event)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for _, w := range words {
		emit(Event{Kind: EventBoundary, CharIndex: w.Start})
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
