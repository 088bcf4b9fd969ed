// Package runner implements the lane runner quiz. Each question is read
// aloud, then a row of three answer tiles approaches the player, who steers
// into the lane holding the right answer before the row arrives.
package runner

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aanchal1810/Oplaite-AI/internal/config"
	"github.com/aanchal1810/Oplaite-AI/internal/core"
	"github.com/aanchal1810/Oplaite-AI/internal/quiz"
	"github.com/aanchal1810/Oplaite-AI/internal/speech"
)

// Cues plays short sounds when a question resolves.
type Cues interface {
	Correct()
	Wrong()
}

// Option configures a Game.
type Option func(*Game)

// WithConfig sets the track and timing parameters.
func WithConfig(cfg config.RunnerConfig) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithSynthesizer sets the narration backend. A nil synthesizer means
// questions are released right away.
func WithSynthesizer(s speech.Synthesizer) Option {
	return func(g *Game) { g.synth = s }
}

// WithOnComplete registers the callback fired once when the run finishes.
func WithOnComplete(fn func(Result)) Option {
	return func(g *Game) { g.onComplete = fn }
}

// WithPlayerColor sets the initial player color token.
func WithPlayerColor(token int) Option {
	return func(g *Game) { g.color = token }
}

// WithCues sets the sound cues.
func WithCues(c Cues) Option {
	return func(g *Game) { g.cues = c }
}

// WithLogger sets the logger. Logging is discarded by default.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// Game implements the lane runner quiz.
type Game struct {
	cfg        config.RunnerConfig
	synth      speech.Synthesizer
	onComplete func(Result)
	cues       Cues
	log        *log.Logger
	color      int

	questions []quiz.Question
	runtime   core.RuntimeConfig
	frame     time.Duration
	clock     time.Duration // simulated time spent playing

	phase    Phase
	session  Session
	epoch    uint64
	events   eventQueue
	timers   timerQueue
	narrator *narrator
	reported bool
	closed   bool
}

// New creates a game over questions. Invalid questions are dropped.
// The game starts on the instructions screen; call Reset before stepping.
func New(questions []quiz.Question, opts ...Option) *Game {
	g := &Game{
		cfg:     config.DefaultRunnerConfig(),
		runtime: core.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	// A band narrower than one frame of travel lets obstacles pass the
	// player without ever resolving, so the run would never finish.
	if err := g.cfg.Validate(); err != nil {
		g.log.Warn("invalid runner config, using defaults", "err", err)
		g.cfg = config.DefaultRunnerConfig()
	}

	valid, problems := quiz.Filter(questions)
	for _, err := range problems {
		g.log.Warn("skipping question", "err", err)
	}
	g.questions = valid
	g.narrator = newNarrator(g.synth, &g.events)
	g.Reset(g.runtime)
	return g
}

// Reset restarts the run from the instructions screen. Anything scheduled
// by the previous run is discarded.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.narrator.Stop()
	g.epoch++
	g.events.Drain()
	g.timers.Clear()

	g.runtime = cfg
	g.frame = cfg.FrameDuration()
	g.clock = 0
	g.phase = PhaseInstructions
	g.session = newSession(g.questions, NewTimeline(g.cfg), g.color)
	g.reported = false
	g.closed = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.closed {
		switch g.phase {
		case PhaseInstructions:
			g.stepInstructions(in)
		case PhasePlaying:
			g.stepPlaying(in)
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepInstructions(in core.InputFrame) {
	for _, a := range in.Actions {
		switch a {
		case core.ActionLeft:
			g.session.Color = wrapColor(g.session.Color - 1)
		case core.ActionRight:
			g.session.Color = wrapColor(g.session.Color + 1)
		case core.ActionConfirm:
			g.phase = PhasePlaying
			g.log.Debug("run started", "questions", len(g.session.Questions), "color", g.session.Color)
			return
		}
	}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	s := &g.session
	g.clock += g.frame

	for _, a := range in.Actions {
		s.Lane = ShiftLane(s.Lane, a)
	}

	g.applyEvents()
	g.fireTimers()

	if s.Done() {
		g.finish()
		return
	}
	if s.narrated != s.Index {
		g.beginQuestion()
	}

	s.Timeline.Scroll()
	if !s.NarrationActive {
		s.Timeline.Advance()
	}
	g.resolve()
}

// current returns the token for the live question.
func (g *Game) current() token {
	return token{epoch: g.epoch, index: g.session.Index}
}

func (g *Game) beginQuestion() {
	s := &g.session
	q := s.Questions[s.Index]

	s.narrated = s.Index
	s.narrationDone = false
	s.NarrationActive = true
	s.CaptionIndex = 0
	s.Timeline.Hold()

	tok := g.current()
	if g.cfg.Timing.NarrationTimeout > 0 {
		g.timers.Schedule(timer{kind: timerNarrationTimeout, tok: tok, due: g.clock + g.cfg.Timing.NarrationTimeout})
	}
	g.log.Debug("narrating question", "index", s.Index, "id", q.ID)
	g.narrator.Start(tok, q.Text)
}

// endNarration handles the first end signal for the live question.
func (g *Game) endNarration() {
	s := &g.session
	if s.narrationDone {
		return
	}
	s.narrationDone = true
	s.NarrationActive = false
	s.CaptionIndex = -1
	g.timers.Schedule(timer{kind: timerRelease, tok: g.current(), due: g.clock + g.cfg.Timing.SettleDelay})
}

func (g *Game) applyEvents() {
	for _, ev := range g.events.Drain() {
		if ev.tok != g.current() || g.session.narrated != ev.tok.index {
			g.log.Debug("dropping stale event", "kind", ev.kind, "index", ev.tok.index)
			continue
		}
		s := &g.session
		switch ev.kind {
		case evNarrationStart:
			if s.narrationDone {
				continue
			}
			s.Timeline.Hold()
			s.CaptionIndex = 0
		case evNarrationProgress:
			if s.narrationDone {
				continue
			}
			s.CaptionIndex = ev.charIndex
		case evNarrationFailed:
			g.log.Warn("narration failed, releasing question", "index", ev.tok.index, "err", ev.err)
		case evNarrationEnd:
			g.endNarration()
		}
	}
}

func (g *Game) fireTimers() {
	for _, t := range g.timers.PopDue(g.clock) {
		if t.tok != g.current() {
			g.log.Debug("dropping stale timer", "kind", t.kind, "index", t.tok.index)
			continue
		}
		s := &g.session
		switch t.kind {
		case timerRelease:
			if s.Resolving || s.NarrationActive {
				continue
			}
			s.Timeline.Release()
		case timerAdvance:
			g.advance()
		case timerNarrationTimeout:
			if s.narrationDone {
				continue
			}
			g.log.Warn("narration timed out", "index", s.Index, "after", g.cfg.Timing.NarrationTimeout)
			g.narrator.Cancel()
			g.endNarration()
		}
	}
}

// advance releases the transition lock and moves to the next question.
func (g *Game) advance() {
	s := &g.session
	if !s.Resolving {
		return
	}
	s.Resolving = false
	s.Feedback = Feedback{}
	s.Timeline.Hold()
	s.Index++
}

func (g *Game) finish() {
	g.phase = PhaseFinished
	g.narrator.Cancel()
	g.timers.Clear()

	if g.reported {
		return
	}
	g.reported = true
	res := g.session.Result()
	g.log.Info("run finished", "correct", res.Correct, "total", res.Total)
	if g.onComplete != nil {
		g.onComplete(res)
	}
}

// Close stops narration and discards everything pending. The game ignores
// further steps until Reset.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.epoch++
	g.narrator.Stop()
	g.timers.Clear()
	g.events.Drain()
}

// State returns the score and whether the run is over.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Correct,
		Total:    len(g.session.Questions),
		GameOver: g.phase == PhaseFinished,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Session returns a copy of the session for display.
func (g *Game) Session() Session {
	return g.session
}

// PlayerColor returns the chosen color token.
func (g *Game) PlayerColor() int {
	return g.session.Color
}

// Config returns the runner parameters in use.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

func wrapColor(c int) int {
	n := core.PlayerColorCount
	return ((c % n) + n) % n
}
