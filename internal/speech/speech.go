// Package speech narrates question text. A Synthesizer reports the lifecycle
// of one utterance (start, word boundaries, end) through a callback; the
// callback may run on any goroutine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNoSpeechBackend is returned when no text-to-speech program is installed.
var ErrNoSpeechBackend = errors.New("speech: no speech backend found")

// EventKind identifies a narration lifecycle signal.
type EventKind int

const (
	EventStart EventKind = iota
	EventBoundary
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventBoundary:
		return "boundary"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one lifecycle signal. CharIndex is the offset of the word being
// spoken for EventBoundary and zero otherwise.
type Event struct {
	Kind      EventKind
	CharIndex int
}

// Synthesizer speaks text. Speak blocks until the utterance ends or ctx is
// cancelled. Implementations emit EventStart first and EventEnd last when
// playback completes normally.
type Synthesizer interface {
	Speak(ctx context.Context, text string, emit func(Event)) error
}

// Mode selects how New builds a Synthesizer.
type Mode string

const (
	ModeAuto     Mode = "auto"     // system TTS if installed, captions otherwise
	ModeExec     Mode = "exec"     // system TTS, error if missing
	ModeCaptions Mode = "captions" // paced captions without audio
	ModeOff      Mode = "off"      // no narration, questions release immediately
)

// Options configure New.
type Options struct {
	Mode   Mode
	WPM    int
	Voice  string
	Logger *log.Logger
}

// New builds the synthesizer for a mode. ModeOff returns nil, which the
// runner treats as narration that ends immediately.
func New(opts Options) (Synthesizer, error) {
	wpm := opts.WPM
	if wpm <= 0 {
		wpm = DefaultWPM
	}

	switch opts.Mode {
	case ModeOff:
		return nil, nil
	case ModeCaptions:
		return NewPaced(wpm), nil
	case ModeExec, ModeAuto, "":
		backend, err := DetectBackend()
		if err == nil {
			return NewExec(backend, wpm, opts.Voice), nil
		}
		if opts.Mode == ModeExec {
			return nil, err
		}
		if opts.Logger != nil {
			opts.Logger.Warn("no speech backend, showing captions only", "error", err)
		}
		return NewPaced(wpm), nil
	default:
		return nil, fmt.Errorf("speech: unknown mode %q", opts.Mode)
	}
}

// DefaultWPM is a comfortable narration pace.
const DefaultWPM = 170

// wordInterval returns how long one word takes at wpm.
func wordInterval(wpm int) time.Duration {
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	return time.Minute / time.Duration(wpm)
}

// Word is a word of the narrated text and its character offset.
type Word struct {
	Text  string
	Start int
}

// Words splits text on single spaces and records where each word starts.
// Offsets advance by len(word)+1 so they line up with the boundary
// offsets reported during narration; empty fragments from repeated
// spaces still consume their separator but are not returned.
func Words(text string) []Word {
	parts := strings.Split(text, " ")
	words := make([]Word, 0, len(parts))
	offset := 0
	for _, p := range parts {
		if p != "" {
			words = append(words, Word{Text: p, Start: offset})
		}
		offset += len(p) + 1
	}
	return words
}

// ActiveWord returns the index of the word being spoken at charIndex, or -1
// when nothing is active. A word is active from its start until the next
// word begins; the last word stays active past the end of the text.
func ActiveWord(words []Word, charIndex int) int {
	if charIndex < 0 {
		return -1
	}
	for i, w := range words {
		last := i == len(words)-1
		if w.Start <= charIndex && (last || words[i+1].Start > charIndex) {
			return i
		}
	}
	return -1
}
