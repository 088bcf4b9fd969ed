package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aanchal1810/Oplaite-AI/internal/core"
	"github.com/aanchal1810/Oplaite-AI/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the quiz sidebar
	sidebarWidth       = 24  // Width of quiz sidebar
	maxHistoryRows     = 100 // Max runs to load
	historyTimeout     = 5 * time.Second
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextQuiz key.Binding
	PrevQuiz key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextQuiz, k.PrevQuiz, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextQuiz, k.PrevQuiz, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextQuiz: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next quiz"),
		),
		PrevQuiz: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev quiz"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing past runs.
type HistoryModel struct {
	store       storage.ResultStore
	theme       Theme
	quizzes     []storage.QuizStats
	cursor      int
	results     []storage.Result
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history model. If quiz names a played quiz it
// is selected first.
func NewHistoryModel(store storage.ResultStore, theme Theme, quiz string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		theme:       theme,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadQuizzes()
	for i, q := range m.quizzes {
		if q.Quiz == quiz {
			m.cursor = i
		}
	}
	m.loadResults()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Precision", Width: 9},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = m.theme.Selected
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) loadQuizzes() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()

	quizzes, err := m.store.AllQuizStats(ctx)
	if err != nil {
		m.err = err
		return
	}
	m.quizzes = quizzes
}

// loadResults loads runs for the selected quiz.
func (m *HistoryModel) loadResults() {
	m.results = nil
	if m.store != nil && len(m.quizzes) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		results, err := m.store.RecentResults(ctx, m.quizzes[m.cursor].Quiz, maxHistoryRows)
		if err != nil {
			m.err = err
		} else {
			m.results = results
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current results.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d/%d", r.Correct, r.Total),
			fmt.Sprintf("%.0f%%", r.Percent),
			r.Player,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextQuiz):
			if len(m.quizzes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.quizzes)
				m.loadResults()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevQuiz):
			if len(m.quizzes) > 0 {
				m.cursor = (m.cursor - 1 + len(m.quizzes)) % len(m.quizzes)
				m.loadResults()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY"
	if q, ok := m.selected(); ok {
		title = fmt.Sprintf("RUN HISTORY - %s", q.Quiz)
	}
	b.WriteString(m.theme.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.theme.Muted.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Muted.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) selected() (storage.QuizStats, bool) {
	if len(m.quizzes) == 0 {
		return storage.QuizStats{}, false
	}
	return m.quizzes[m.cursor], true
}

// renderWideLayout renders the quiz sidebar next to the table.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Quizzes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, q := range m.quizzes {
		cursor := "  "
		style := m.theme.Text
		if i == m.cursor {
			cursor = "> "
			style = m.theme.Title
		}
		sidebar.WriteString(style.Render(cursor + truncate(q.Quiz, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	if q, ok := m.selected(); ok {
		sidebar.WriteString("\n")
		sidebar.WriteString(m.theme.Muted.Render(statsSummary(q)))
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout shows the selected quiz above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if q, ok := m.selected(); ok {
		b.WriteString(centerText(fmt.Sprintf("< %s >", q.Quiz), m.width))
		b.WriteString("\n")
		b.WriteString(m.theme.Muted.Render(centerText(strings.ReplaceAll(statsSummary(q), "\n", "  "), m.width)))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.results) == 0 {
		emptyStyle := m.theme.Muted.
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nFinish a quiz to see it here!")
	}

	return m.table.View()
}

func statsSummary(q storage.QuizStats) string {
	return fmt.Sprintf("runs %d\nbest %.0f%%\navg  %.0f%%", q.Runs, q.BestPercent, q.AvgPercent)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunHistory runs the history screen.
func RunHistory(store storage.ResultStore, theme Theme, quiz string, width, height int) error {
	model := NewHistoryModel(store, theme, quiz, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
