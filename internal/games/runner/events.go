package runner

import "sync"

// token identifies the question a callback was scheduled for. Anything
// carrying a token that differs from the live one is stale and dropped.
type token struct {
	epoch uint64 // bumped on Reset and Close
	index int    // question index
}

type eventKind int

const (
	evNarrationStart eventKind = iota
	evNarrationProgress
	evNarrationEnd
	evNarrationFailed
)

func (k eventKind) String() string {
	switch k {
	case evNarrationStart:
		return "narration-start"
	case evNarrationProgress:
		return "narration-progress"
	case evNarrationEnd:
		return "narration-end"
	case evNarrationFailed:
		return "narration-failed"
	default:
		return "unknown"
	}
}

// event is produced off the game goroutine and applied during Step.
type event struct {
	kind      eventKind
	tok       token
	charIndex int
	err       error
}

// eventQueue is a FIFO with many producers and the game loop as sole consumer.
type eventQueue struct {
	mu    sync.Mutex
	items []event
}

// Push appends an event; safe from any goroutine.
func (q *eventQueue) Push(ev event) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in arrival order.
func (q *eventQueue) Drain() []event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
