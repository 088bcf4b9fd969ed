package runner

import (
	"github.com/aanchal1810/Oplaite-AI/internal/quiz"
)

// Phase is the top-level state of a run.
type Phase int

const (
	PhaseInstructions Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseInstructions:
		return "instructions"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// FeedbackKind tags the result shown after a question resolves.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackCorrect
	FeedbackWrong
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackCorrect:
		return "correct"
	case FeedbackWrong:
		return "wrong"
	default:
		return "none"
	}
}

// Feedback is shown from resolution until the question advances.
type Feedback struct {
	Kind FeedbackKind
	Text string
}

// Display text for feedback.
const (
	FeedbackTextCorrect = "COMPLETED"
	FeedbackTextWrong   = "FAILED"
)

// Result is reported once when a run finishes.
type Result struct {
	Correct int
	Total   int
}

// Session is the mutable state of one playthrough. Only the game loop
// touches it; narration callbacks reach it through the event queue.
type Session struct {
	Questions []quiz.Question
	Index     int // current question, never decreases
	Correct   int
	Lane      int // 0..LaneCount-1
	Timeline  Timeline
	Color     int // cosmetic player color token

	NarrationActive bool
	Resolving       bool // transition lock
	Feedback        Feedback
	CaptionIndex    int // character offset of the spoken word, -1 when idle

	narrated      int  // question whose narration has been started, -1 before the first
	narrationDone bool // end already handled for the current question
}

func newSession(questions []quiz.Question, timeline Timeline, color int) Session {
	return Session{
		Questions:    questions,
		Lane:         1,
		Timeline:     timeline,
		Color:        color,
		CaptionIndex: -1,
		narrated:     -1,
	}
}

// Done reports whether every question has been played.
func (s *Session) Done() bool {
	return s.Index >= len(s.Questions)
}

// Current returns the question being played.
func (s *Session) Current() (quiz.Question, bool) {
	if s.Done() {
		return quiz.Question{}, false
	}
	return s.Questions[s.Index], true
}

// Result returns the score so far.
func (s *Session) Result() Result {
	return Result{Correct: s.Correct, Total: len(s.Questions)}
}
