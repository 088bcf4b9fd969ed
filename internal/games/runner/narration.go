package runner

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/aanchal1810/Oplaite-AI/internal/speech"
)

// narrator runs at most one utterance at a time and turns synthesizer
// callbacks into queued events tagged with the question token.
type narrator struct {
	synth  speech.Synthesizer
	events *eventQueue

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newNarrator(synth speech.Synthesizer, events *eventQueue) *narrator {
	return &narrator{synth: synth, events: events}
}

// Start cancels any utterance in flight and begins speaking text.
// Without a synthesizer the utterance ends immediately.
func (n *narrator) Start(tok token, text string) {
	n.Cancel()

	if n.synth == nil {
		n.events.Push(event{kind: evNarrationEnd, tok: tok})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.mu.Lock()
	n.cancel = cancel
	n.mu.Unlock()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer cancel()

		var ended atomic.Bool
		emit := func(ev speech.Event) {
			if ctx.Err() != nil {
				return
			}
			switch ev.Kind {
			case speech.EventStart:
				n.events.Push(event{kind: evNarrationStart, tok: tok})
			case speech.EventBoundary:
				n.events.Push(event{kind: evNarrationProgress, tok: tok, charIndex: ev.CharIndex})
			case speech.EventEnd:
				if ended.CompareAndSwap(false, true) {
					n.events.Push(event{kind: evNarrationEnd, tok: tok})
				}
			}
		}

		err := n.synth.Speak(ctx, text, emit)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			n.events.Push(event{kind: evNarrationFailed, tok: tok, err: err})
		}
		if ended.CompareAndSwap(false, true) {
			n.events.Push(event{kind: evNarrationEnd, tok: tok})
		}
	}()
}

// Cancel stops the utterance in flight, if any.
func (n *narrator) Cancel() {
	n.mu.Lock()
	cancel := n.cancel
	n.cancel = nil
	n.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Stop cancels and waits for the speaking goroutine to return.
func (n *narrator) Stop() {
	n.Cancel()
	n.wg.Wait()
}
