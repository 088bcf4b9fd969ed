package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// candidates are probed in order by DetectBackend.
var candidates = []string{"espeak-ng", "espeak", "say", "spd-say"}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Backend is an installed text-to-speech program.
type Backend struct {
	Name string
	Path string
}

// DetectBackend returns the first installed TTS program.
func DetectBackend() (Backend, error) {
	for _, name := range candidates {
		if path, err := lookPath(name); err == nil {
			return Backend{Name: name, Path: path}, nil
		}
	}
	return Backend{}, ErrNoSpeechBackend
}

// Args builds the command line that speaks text at wpm.
func (b Backend) Args(text string, wpm int, voice string) []string {
	var args []string
	switch b.Name {
	case "espeak-ng", "espeak":
		args = append(args, "-s", strconv.Itoa(wpm))
		if voice != "" {
			args = append(args, "-v", voice)
		}
		args = append(args, "--", text)
	case "say":
		args = append(args, "-r", strconv.Itoa(wpm))
		if voice != "" {
			args = append(args, "-v", voice)
		}
		args = append(args, text)
	case "spd-say":
		// spd-say returns immediately unless told to wait.
		args = append(args, "--wait")
		if voice != "" {
			args = append(args, "-y", voice)
		}
		args = append(args, text)
	default:
		args = append(args, text)
	}
	return args
}

// Exec speaks through an external program. The program gives no word
// timing, so boundaries are paced at the same rate the program was asked
// to speak at while it runs.
type Exec struct {
	backend Backend
	wpm     int
	voice   string
}

// NewExec creates a synthesizer for an installed backend.
func NewExec(backend Backend, wpm int, voice string) *Exec {
	return &Exec{backend: backend, wpm: wpm, voice: voice}
}

// Backend returns the program used to speak.
func (e *Exec) Backend() Backend {
	return e.backend
}

// Speak implements Synthesizer. Cancelling ctx kills the program.
func (e *Exec) Speak(ctx context.Context, text string, emit func(Event)) error {
	cmd := exec.CommandContext(ctx, e.backend.Path, e.backend.Args(text, e.wpm, e.voice)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("speech: cannot start %s: %w", e.backend.Name, err)
	}
	emit(Event{Kind: EventStart})

	paceCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		//nolint:errcheck // Only fails on cancellation, which stop() causes
		paceBoundaries(paceCtx, Words(text), wordInterval(e.wpm), emit)
	}()

	waitErr := cmd.Wait()
	stop()
	<-done

	if err := ctx.Err(); err != nil {
		return err
	}
	if waitErr != nil {
		return fmt.Errorf("speech: %s failed: %w", e.backend.Name, waitErr)
	}
	emit(Event{Kind: EventEnd})
	return nil
}
