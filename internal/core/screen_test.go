package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative size should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen should render empty string, got %q", s.String())
	}
}

func TestScreenSetGetOutOfBounds(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	for _, p := range [][2]int{{-1, 0}, {100, 0}, {0, -1}, {0, 100}} {
		s.Set(p[0], p[1], 'A')
		s.SetStyled(p[0], p[1], 'A', ColorAccent, ColorPanel)
		if s.Get(p[0], p[1]) != ' ' {
			t.Errorf("Get(%d, %d) out of bounds should be space", p[0], p[1])
		}
	}
}

func TestScreenSetStyledKeepsBackground(t *testing.T) {
	s := NewScreen(4, 1)
	s.FillStyled(' ', ColorDefault, ColorRoad)

	s.SetStyled(1, 0, '#', ColorTile1, ColorDefault)
	c := s.GetCell(1, 0)
	if c.Rune != '#' || c.FG != ColorTile1 || c.BG != ColorRoad {
		t.Errorf("cell = %+v, expected '#' with tile fg over road bg", c)
	}

	s.SetStyled(2, 0, '#', ColorInk, ColorPanel)
	if c := s.GetCell(2, 0); c.BG != ColorPanel {
		t.Errorf("explicit background should replace road, got %v", c.BG)
	}

	s.Set(1, 0, 'x')
	if c := s.GetCell(1, 0); c.FG != ColorDefault || c.BG != ColorRoad {
		t.Errorf("Set should reset fg and keep bg, got %+v", c)
	}
}

func TestScreenClearResetsColors(t *testing.T) {
	s := NewScreen(3, 3)
	s.FillStyled('#', ColorWrong, ColorPanel)
	s.Clear()

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("after Clear cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.Row(1)[2:7]; got != "Hello" {
		t.Errorf("DrawText wrote %q, expected Hello", got)
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "é✓x")

	want := []rune{'é', '✓', 'x'}
	for i, r := range want {
		if s.Get(i, 0) != r {
			t.Errorf("column %d = %q, expected %q", i, s.Get(i, 0), r)
		}
	}
}

func TestScreenDrawTextCenteredIn(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCenteredIn(NewRect(10, 0, 10, 5), 4, "ok", ColorAccent, ColorDefault)
	if s.Get(14, 4) != 'o' || s.GetCell(14, 4).FG != ColorAccent {
		t.Errorf("DrawTextCenteredIn misplaced: %q", s.Row(4))
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(2, 2, 3, 3), '#', ColorInk, ColorShadow)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			c := s.GetCell(x, y)
			if c.Rune != '#' || c.BG != ColorShadow {
				t.Errorf("FillRect cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("FillRect should not affect outside area")
	}
}

func TestScreenBoxes(t *testing.T) {
	tests := []struct {
		name    string
		draw    func(s *Screen, r Rect)
		corners [4]rune
	}{
		{"rounded", func(s *Screen, r Rect) { s.DrawRoundedBox(r, ColorBorder, ColorDefault) }, [4]rune{'╭', '╮', '╰', '╯'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 10)
			tt.draw(s, NewRect(1, 1, 5, 4))

			got := [4]rune{s.Get(1, 1), s.Get(5, 1), s.Get(1, 4), s.Get(5, 4)}
			if got != tt.corners {
				t.Errorf("corners = %q, expected %q", string(got[:]), string(tt.corners[:]))
			}
			for x := 2; x < 5; x++ {
				if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
					t.Errorf("horizontal edge missing at x=%d", x)
				}
			}
			for y := 2; y < 4; y++ {
				if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
					t.Errorf("vertical edge missing at y=%d", y)
				}
			}
			if s.Get(3, 2) != ' ' {
				t.Error("box interior should stay empty")
			}
		})
	}
}

func TestScreenRoundedBoxZeroSize(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRoundedBox(NewRect(1, 1, 0, 3), ColorBorder, ColorDefault)
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("zero-width box should draw nothing, got %q", s.String())
	}
}

func TestScreenLines(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillStyled(' ', ColorDefault, ColorRoad)
	s.DrawHLine(2, 2, 5, '-', ColorGrid, ColorDefault)
	s.DrawVLine(3, 4, 4, '|', ColorBorder, ColorShadow)

	if got := s.Row(2)[2:7]; got != "-----" {
		t.Errorf("DrawHLine wrote %q", got)
	}
	if c := s.GetCell(4, 2); c.FG != ColorGrid || c.BG != ColorRoad {
		t.Errorf("DrawHLine cell = %+v, expected grid on kept road background", c)
	}
	for y := 4; y < 8; y++ {
		if c := s.GetCell(3, y); c.Rune != '|' || c.BG != ColorShadow {
			t.Errorf("DrawVLine cell at y=%d = %+v", y, c)
		}
	}

	// Lines clip at the screen edge and ignore non-positive lengths.
	s.DrawHLine(8, 0, 5, '=', ColorGrid, ColorDefault)
	s.DrawVLine(0, 0, -3, '!', ColorGrid, ColorDefault)
	if got := s.Row(0); got != "        ==" {
		t.Errorf("clipped row = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got, want := s.String(), "AAAAA\nBBBBB\nCCCCC"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextStyled(0, 0, "Hello", ColorAccent, ColorPanel)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize dimensions = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if c := s.GetCell(0, 0); c.Rune != 'H' || c.FG != ColorAccent || c.BG != ColorPanel {
		t.Errorf("styled cell lost after enlarging: %+v", c)
	}
	if s.Row(7) != strings.Repeat(" ", 15) {
		t.Errorf("new rows should be blank, got %q", s.Row(7))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)
	if got := s.Row(-1); got != strings.Repeat(" ", 10) {
		t.Errorf("out of bounds row should be spaces, got %q", got)
	}
}
