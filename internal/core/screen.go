package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is a single character position on the screen with its colors.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

var blankCell = Cell{Rune: ' '}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the full screen area as a rectangle.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = Max(width, 0), Max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	s.FillStyled(' ', ColorDefault, ColorDefault)
}

// FillStyled fills the entire screen with the given rune and colors.
func (s *Screen) FillStyled(r rune, fg, bg Color) {
	c := Cell{Rune: r, FG: fg, BG: bg}
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = c
		}
	}
}

// Set places a rune at the given position, keeping the cell's background.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x].Rune = r
	s.cells[y][x].FG = ColorDefault
}

// SetStyled places a rune with explicit colors.
// A ColorDefault background keeps whatever background the cell already has.
func (s *Screen) SetStyled(x, y int, r rune, fg, bg Color) {
	if !s.inBounds(x, y) {
		return
	}
	cell := &s.cells[y][x]
	cell.Rune = r
	cell.FG = fg
	if bg != ColorDefault {
		cell.BG = bg
	}
}

// SetBackground changes only the background color of a cell.
func (s *Screen) SetBackground(x, y int, bg Color) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x].BG = bg
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the full cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return blankCell
	}
	return s.cells[y][x]
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	col := 0
	for _, r := range text {
		s.Set(x+col, y, r)
		col++
	}
}

// DrawTextStyled writes colored text starting at (x, y).
func (s *Screen) DrawTextStyled(x, y int, text string, fg, bg Color) {
	col := 0
	for _, r := range text {
		s.SetStyled(x+col, y, r, fg, bg)
		col++
	}
}

// DrawTextCenteredIn draws colored text centered inside r on row y.
func (s *Screen) DrawTextCenteredIn(r Rect, y int, text string, fg, bg Color) {
	x := r.X + (r.W-utf8.RuneCountInString(text))/2
	s.DrawTextStyled(x, y, text, fg, bg)
}

// FillRect fills a rectangular area with a rune and colors.
func (s *Screen) FillRect(r Rect, fill rune, fg, bg Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetStyled(x, y, fill, fg, bg)
		}
	}
}

// DrawRoundedBox draws a colored box outline with rounded corners.
func (s *Screen) DrawRoundedBox(r Rect, fg, bg Color) {
	s.drawFrame(r, '╭', '╮', '╰', '╯', fg, bg)
}

func (s *Screen) drawFrame(r Rect, tl, tr, bl, br rune, fg, bg Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}

	// Corners
	s.SetStyled(r.X, r.Y, tl, fg, bg)
	s.SetStyled(r.Right()-1, r.Y, tr, fg, bg)
	s.SetStyled(r.X, r.Bottom()-1, bl, fg, bg)
	s.SetStyled(r.Right()-1, r.Bottom()-1, br, fg, bg)

	// Edges
	s.DrawHLine(r.X+1, r.Y, r.W-2, '─', fg, bg)
	s.DrawHLine(r.X+1, r.Bottom()-1, r.W-2, '─', fg, bg)
	s.DrawVLine(r.X, r.Y+1, r.H-2, '│', fg, bg)
	s.DrawVLine(r.Right()-1, r.Y+1, r.H-2, '│', fg, bg)
}

// DrawHLine draws a colored horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune, fg, bg Color) {
	for i := 0; i < length; i++ {
		s.SetStyled(x+i, y, r, fg, bg)
	}
}

// DrawVLine draws a colored vertical line from (x, y) with the given length.
func (s *Screen) DrawVLine(x, y, length int, r rune, fg, bg Color) {
	for i := 0; i < length; i++ {
		s.SetStyled(x, y+i, r, fg, bg)
	}
}

// String converts the screen buffer to a plain string without colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
