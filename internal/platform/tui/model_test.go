package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanchal1810/Oplaite-AI/internal/core"
)

// fakeGame counts calls and ends after overAfter steps.
type fakeGame struct {
	steps     int
	overAfter int
	resets    int
	closed    int
	last      core.InputFrame
}

func (g *fakeGame) Reset(cfg core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = core.InputFrame{Actions: append([]core.Action(nil), in.Actions...)}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "lane runner")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: 1, Total: 3, GameOver: g.overAfter > 0 && g.steps >= g.overAfter}
}

func (g *fakeGame) Close() { g.closed++ }

func hasAction(f core.InputFrame, a core.Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

func newTestModel(g *fakeGame) Model {
	cfg := core.DefaultConfig()
	return NewModel(g, cfg, DefaultOptions())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelTickStepsGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m, cmd := update(t, m, TickMsg{})
	if g.steps != 1 {
		t.Errorf("steps = %d, want 1", g.steps)
	}
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if m.State().Total != 3 {
		t.Errorf("state not copied from step: %+v", m.State())
	}
}

func TestModelStopsTickingAfterGameOver(t *testing.T) {
	g := &fakeGame{overAfter: 2}
	m := newTestModel(g)

	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("expected game over after second step")
	}
	if cmd != nil {
		t.Error("no tick should follow game over")
	}

	_, _ = update(t, m, TickMsg{})
	if g.steps != 2 {
		t.Errorf("game stepped after game over: steps = %d", g.steps)
	}
}

func TestModelForwardsKeysAsActions(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, TickMsg{})
	if !hasAction(g.last, core.ActionLeft) {
		t.Error("left key did not reach the game")
	}

	// The frame is cleared after each step.
	_, _ = update(t, m, TickMsg{})
	if hasAction(g.last, core.ActionLeft) {
		t.Error("input leaked into the next frame")
	}
}

func TestModelQuitClosesGame(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("q should quit")
	}
	if g.closed != 1 {
		t.Errorf("closed = %d, want 1", g.closed)
	}
	if !m.Quitting() {
		t.Error("model should report quitting")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelConfirmQuitsOnlyWhenOver(t *testing.T) {
	g := &fakeGame{overAfter: 1}
	m := newTestModel(g)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatal("enter before the end should not quit")
	}

	m, _ = update(t, m, TickMsg{})
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) {
		t.Error("enter on the finished screen should quit")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 0 {
		t.Errorf("resize reset the game %d times", g.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 120x39", m.screen.Width(), m.screen.Height())
	}
}

func TestModelSwipe(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)
	m.swipe.deadZone = 2

	m, _ = update(t, m, tea.MouseMsg{X: 20, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 6, Action: tea.MouseActionRelease})
	_, _ = update(t, m, TickMsg{})
	if !hasAction(g.last, core.ActionRight) {
		t.Error("swipe right did not reach the game")
	}
}

func TestModelView(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g)

	view := m.View()
	if !strings.Contains(view, "lane runner") {
		t.Errorf("view missing game output:\n%s", view)
	}
	if !strings.Contains(view, "quit") {
		t.Error("view missing help bar")
	}
}

func TestKeyMapAction(t *testing.T) {
	k := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
	}

	for _, tt := range tests {
		if got := k.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestSwipeTracker(t *testing.T) {
	s := swipeTracker{deadZone: 3}

	// Release without a press is ignored.
	if got := s.Handle(tea.MouseMsg{X: 0, Action: tea.MouseActionRelease}); got != core.ActionNone {
		t.Errorf("release without press = %v", got)
	}

	s.Handle(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := s.Handle(tea.MouseMsg{X: 2, Y: 11, Action: tea.MouseActionRelease}); got != core.ActionLeft {
		t.Errorf("left swipe = %v, want left", got)
	}

	s.Handle(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := s.Handle(tea.MouseMsg{X: 12, Y: 10, Action: tea.MouseActionRelease}); got != core.ActionNone {
		t.Errorf("short swipe = %v, want none", got)
	}

	s.Handle(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := s.Handle(tea.MouseMsg{X: 15, Y: 20, Action: tea.MouseActionRelease}); got != core.ActionNone {
		t.Errorf("vertical swipe = %v, want none", got)
	}
}
