package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/aanchal1810/Oplaite-AI/internal/core"
)

// ErrUnknownTheme is returned by ThemeByName for names it does not know.
var ErrUnknownTheme = errors.New("tui: unknown theme")

// Theme maps palette slots to terminal colors. It only changes how the
// game looks, never how it plays.
type Theme struct {
	Name    string
	palette map[core.Color]lipgloss.Color

	// History view styles
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Color
}

// Shared by both themes: pastel answer tiles and the selectable player colors.
var (
	tileColors = [...]lipgloss.Color{"#D1C4E9", "#FFD1DC", "#B2F2BB"}

	playerColors = [...]lipgloss.Color{
		"#F06292", // pink
		"#E57373", // red
		"#FDD835", // yellow
		"#81C784", // green
		"#9575CD", // purple
		"#64B5F6", // blue
		"#FB8C00", // orange
		"#CFD8DC", // silver
		"#212121", // black
	}
)

func basePalette() map[core.Color]lipgloss.Color {
	p := make(map[core.Color]lipgloss.Color, 32)
	for i, c := range tileColors {
		p[core.ColorTile0+core.Color(i)] = c
	}
	for i, c := range playerColors {
		p[core.ColorPlayer0+core.Color(i)] = c
	}
	p[core.ColorFace] = "#212121"
	p[core.ColorShadow] = "#000000"
	return p
}

// DarkTheme returns the default theme.
func DarkTheme() Theme {
	p := basePalette()
	p[core.ColorRoad] = "#080808"
	p[core.ColorBorder] = "#888888"
	p[core.ColorGrid] = "#222222"
	p[core.ColorDim] = "#666666"
	p[core.ColorInk] = "#EEEEEE"
	p[core.ColorAccent] = "#64B5F6"
	p[core.ColorHighlight] = "#FDD835"
	p[core.ColorCorrect] = "#81C784"
	p[core.ColorWrong] = "#E57373"
	p[core.ColorPanel] = "#121212"

	return Theme{
		Name:     "dark",
		palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDD835")),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("#EEEEEE")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#080808")).Background(lipgloss.Color("#64B5F6")),
		Border:   "#888888",
	}
}

// LightTheme returns a theme for light terminals.
func LightTheme() Theme {
	p := basePalette()
	p[core.ColorRoad] = "#FFFFFF"
	p[core.ColorBorder] = "#000000"
	p[core.ColorGrid] = "#F0F0F0"
	p[core.ColorDim] = "#9E9E9E"
	p[core.ColorInk] = "#212121"
	p[core.ColorAccent] = "#1E88E5"
	p[core.ColorHighlight] = "#F57F17"
	p[core.ColorCorrect] = "#2E7D32"
	p[core.ColorWrong] = "#C62828"
	p[core.ColorPanel] = "#FAFAFA"

	return Theme{
		Name:     "light",
		palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E88E5")),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("#212121")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1E88E5")),
		Border:   "#000000",
	}
}

// ThemeByName returns the theme called name. An empty name is dark.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	}
	return Theme{}, fmt.Errorf("%w %q (want dark or light)", ErrUnknownTheme, name)
}

// Color returns the terminal color of a palette slot.
func (t Theme) Color(c core.Color) (lipgloss.Color, bool) {
	col, ok := t.palette[c]
	return col, ok
}

// Style builds the style for a cell's colors. Unmapped slots use the
// terminal default.
func (t Theme) Style(fg, bg core.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c, ok := t.palette[fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := t.palette[bg]; ok {
		s = s.Background(c)
	}
	return s
}
