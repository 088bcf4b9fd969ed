package runner

import (
	"sort"
	"time"
)

type timerKind int

const (
	timerRelease          timerKind = iota // narration settled, let the row approach
	timerAdvance                           // feedback shown, move to the next question
	timerNarrationTimeout                  // synthesizer never reported an end
)

func (k timerKind) String() string {
	switch k {
	case timerRelease:
		return "release"
	case timerAdvance:
		return "advance"
	case timerNarrationTimeout:
		return "narration-timeout"
	default:
		return "unknown"
	}
}

// timer fires once the game clock reaches due.
type timer struct {
	kind timerKind
	tok  token
	due  time.Duration
}

// timerQueue holds pending timers ordered by due time. Timers with the same
// due time fire in scheduling order. It is only used from the game loop.
type timerQueue struct {
	items []timer
}

// Schedule adds a timer.
func (q *timerQueue) Schedule(t timer) {
	i := sort.Search(len(q.items), func(i int) bool { return q.items[i].due > t.due })
	q.items = append(q.items, timer{})
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = t
}

// PopDue removes and returns every timer due at or before now.
func (q *timerQueue) PopDue(now time.Duration) []timer {
	n := 0
	for n < len(q.items) && q.items[n].due <= now {
		n++
	}
	if n == 0 {
		return nil
	}
	due := make([]timer, n)
	copy(due, q.items[:n])
	q.items = q.items[n:]
	return due
}

// Clear drops all pending timers.
func (q *timerQueue) Clear() {
	q.items = nil
}

// Len returns the number of pending timers.
func (q *timerQueue) Len() int {
	return len(q.items)
}
