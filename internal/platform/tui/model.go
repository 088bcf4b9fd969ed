package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanchal1810/Oplaite-AI/internal/config"
	"github.com/aanchal1810/Oplaite-AI/internal/core"
)

// Options configure a Model.
type Options struct {
	Theme         Theme
	Keys          KeyMap
	SwipeDeadZone int
	// ScreenshotDir receives ctrl+s captures. Empty means ~/.recall/screenshots.
	ScreenshotDir string
}

// DefaultOptions returns the dark theme with default keys.
func DefaultOptions() Options {
	return Options{
		Theme:         DarkTheme(),
		Keys:          DefaultKeyMap(),
		SwipeDeadZone: config.DefaultRunnerConfig().Input.SwipeDeadZone,
	}
}

// Model is the Bubble Tea model that drives a game.
type Model struct {
	game       core.Game
	screen     *core.Screen
	theme      Theme
	keys       KeyMap
	help       help.Model
	swipe      swipeTracker
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	shotDir    string
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game core.Game, cfg core.RuntimeConfig, opts Options) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		theme:      opts.Theme,
		keys:       opts.Keys,
		help:       h,
		swipe:      swipeTracker{deadZone: opts.SwipeDeadZone},
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		shotDir:    opts.ScreenshotDir,
	}
}

// gameHeight leaves the last row for the help bar.
func gameHeight(h int) int {
	return core.Max(h-1, 0)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.inputFrame.Set(m.swipe.Handle(msg))
		return m, nil

	case tea.WindowSizeMsg:
		// Resizing never resets the run; the game lays itself out per frame.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		return m.quit()
	case action == core.ActionConfirm && m.gameState.GameOver:
		return m.quit()
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleTick processes simulation ticks. Ticking stops once the game ends.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.GameOver || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.game.Close()
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		dir = filepath.Join(config.UserDir(), "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("recall_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme) + "\n" + m.theme.Muted.Render(m.help.View(m.keys))
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.gameState
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run plays game in the terminal until the user quits.
func Run(game core.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)
	defer game.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // swipes
	)

	_, err := p.Run()
	return err
}
