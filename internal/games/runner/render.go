package runner

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/aanchal1810/Oplaite-AI/internal/core"
	"github.com/aanchal1810/Oplaite-AI/internal/plan"
	"github.com/aanchal1810/Oplaite-AI/internal/speech"
)

// Visual characters for rendering
const (
	LaneDivider = '┆'
	GridChar    = '┄'
	PlayerEye   = '•'
	PlayerMouth = '‿'
	SwatchChar  = '█'
)

// wideLayoutMinWidth is the width from which captions sit beside the road.
const wideLayoutMinWidth = 100

// Lane divider dash pattern, in screen rows.
const (
	dividerDash   = 2
	dividerPeriod = 4
)

// Render draws the current phase.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	switch g.phase {
	case PhaseInstructions:
		g.renderInstructions(dst)
	case PhasePlaying:
		g.renderPlaying(dst)
	case PhaseFinished:
		g.renderFinished(dst)
	}
}

// layout splits the screen into the caption panel and the road.
func layout(bounds core.Rect) (caption, road core.Rect) {
	if bounds.W >= wideLayoutMinWidth {
		cw := bounds.W / 3
		return core.NewRect(bounds.X, bounds.Y, cw, bounds.H),
			core.NewRect(bounds.X+cw, bounds.Y, bounds.W-cw, bounds.H)
	}
	ch := core.Clamp(bounds.H/4, 4, 8)
	if ch > bounds.H/2 {
		ch = bounds.H / 2
	}
	return core.NewRect(bounds.X, bounds.Y, bounds.W, ch),
		core.NewRect(bounds.X, bounds.Y+ch, bounds.W, bounds.H-ch)
}

func (g *Game) renderPlaying(dst *core.Screen) {
	caption, road := layout(dst.Bounds())
	s := &g.session

	g.drawCaptions(dst, caption)

	dst.FillRect(road, ' ', core.ColorInk, core.ColorRoad)
	dst.DrawRoundedBox(road, core.ColorBorder, core.ColorRoad)
	inner := road.Inset(1, 1)
	if inner.Empty() {
		return
	}

	g.drawGrid(dst, inner)
	g.drawDividers(dst, inner)
	if !s.Timeline.Held {
		g.drawTiles(dst, inner)
	}
	g.drawPlayer(dst, inner)

	// HUD on the road frame
	progress := fmt.Sprintf(" Q %d/%d ", core.Min(s.Index+1, len(s.Questions)), len(s.Questions))
	dst.DrawTextStyled(road.X+2, road.Y, progress, core.ColorInk, core.ColorRoad)
	score := fmt.Sprintf(" ✓ %d ", s.Correct)
	dst.DrawTextStyled(road.Right()-utf8.RuneCountInString(score)-2, road.Y, score, core.ColorCorrect, core.ColorRoad)

	status := " ▼ INCOMING "
	if s.NarrationActive {
		status = " ◉ LISTEN "
	} else if s.Timeline.Held {
		status = " … GET READY "
	}
	dst.DrawTextStyled(road.X+2, road.Bottom()-1, status, core.ColorDim, core.ColorRoad)

	if s.Feedback.Kind != FeedbackNone {
		fg := core.ColorCorrect
		if s.Feedback.Kind == FeedbackWrong {
			fg = core.ColorWrong
		}
		drawMessageBox(dst, inner, fg, s.Feedback.Text)
	}
}

// trackRow maps a track offset to a screen row inside r.
func (g *Game) trackRow(r core.Rect, y float64) int {
	h := g.cfg.Track.Height
	if h <= 0 {
		return r.Y
	}
	return r.Y + int(math.Floor(y/h*float64(r.H)))
}

func (g *Game) laneWidth(r core.Rect) int {
	return r.W / LaneCount
}

func (g *Game) drawGrid(dst *core.Screen, r core.Rect) {
	spacing := g.cfg.Background.Spacing
	if spacing <= 0 {
		return
	}
	for y := g.session.Timeline.ScrollOffset() - spacing; y < g.cfg.Track.Height; y += spacing {
		row := g.trackRow(r, y)
		if row < r.Y || row >= r.Bottom() {
			continue
		}
		dst.DrawHLine(r.X, row, r.W, GridChar, core.ColorGrid, core.ColorRoad)
	}
}

func (g *Game) drawDividers(dst *core.Screen, r core.Rect) {
	lw := g.laneWidth(r)
	if lw <= 0 {
		return
	}
	shift := g.trackRow(r, g.session.Timeline.ScrollOffset()) - r.Y
	// Dashes are dividerDash rows long and repeat every dividerPeriod rows,
	// scrolling with the road.
	start := r.Y + (shift%dividerPeriod+dividerPeriod)%dividerPeriod - dividerPeriod
	for i := 1; i < LaneCount; i++ {
		x := r.X + lw*i
		for y := start; y < r.Bottom(); y += dividerPeriod {
			from, to := core.Max(y, r.Y), core.Min(y+dividerDash, r.Bottom())
			dst.DrawVLine(x, from, to-from, LaneDivider, core.ColorBorder, core.ColorRoad)
		}
	}
}

// drawTiles draws the answer row, clipped to the road.
func (g *Game) drawTiles(dst *core.Screen, r core.Rect) {
	s := &g.session
	q, ok := s.Current()
	if !ok {
		return
	}
	lw := g.laneWidth(r)
	if lw < 5 {
		return
	}
	top := g.trackRow(r, s.Timeline.Y)

	for lane := 0; lane < LaneCount; lane++ {
		tw := lw - 2
		lines := WrapText(q.Options[lane], tw-2, nil)
		th := len(lines) + 2
		x := r.X + lane*lw + 1
		bg := core.TileColor(lane)
		border := core.ColorShadow
		if s.Resolving && lane == q.CorrectIndex {
			border = core.ColorCorrect
		}

		tile := core.NewRect(x, top, tw, th)
		clip := tile.Intersect(r)
		if clip.Empty() {
			continue
		}

		// drop shadow
		for yy := tile.Y + 1; yy <= tile.Bottom(); yy++ {
			if yy >= r.Y && yy < r.Bottom() && tile.Right() < r.Right() {
				dst.SetBackground(tile.Right(), yy, core.ColorShadow)
			}
		}

		dst.FillRect(clip, ' ', core.ColorFace, bg)
		for yy := clip.Y; yy < clip.Bottom(); yy++ {
			switch row := yy - tile.Y; {
			case row == 0:
				drawTileEdge(dst, tile, yy, '╭', '╮', border, bg)
			case row == th-1:
				drawTileEdge(dst, tile, yy, '╰', '╯', border, bg)
			default:
				dst.SetStyled(tile.X, yy, '│', border, bg)
				dst.SetStyled(tile.Right()-1, yy, '│', border, bg)
				dst.DrawTextCenteredIn(tile.Inset(1, 0), yy, lines[row-1], core.ColorFace, bg)
			}
		}
	}
}

func drawTileEdge(dst *core.Screen, tile core.Rect, y int, left, right rune, fg, bg core.Color) {
	dst.SetStyled(tile.X, y, left, fg, bg)
	dst.DrawHLine(tile.X+1, y, tile.W-2, '─', fg, bg)
	dst.SetStyled(tile.Right()-1, y, right, fg, bg)
}

// drawPlayer draws a rounded block with a face in the current lane.
func (g *Game) drawPlayer(dst *core.Screen, r core.Rect) {
	lw := g.laneWidth(r)
	if lw <= 0 {
		return
	}
	pw := core.Clamp(lw-4, 3, 9)
	if pw > lw {
		pw = lw
	}
	const ph = 3
	y := core.Min(g.trackRow(r, g.cfg.Track.PlayerDepth), r.Bottom()-ph)
	x := r.X + g.session.Lane*lw + (lw-pw)/2
	body := core.NewRect(x, y, pw, ph)
	color := core.PlayerColor(g.session.Color)

	dst.FillRect(body, ' ', core.ColorFace, color)
	dst.DrawRoundedBox(body, core.ColorShadow, color)
	mid := body.X + body.W/2
	dst.SetStyled(mid-1, body.Y+1, PlayerEye, core.ColorFace, color)
	dst.SetStyled(mid, body.Y+1, PlayerMouth, core.ColorFace, color)
	dst.SetStyled(mid+1, body.Y+1, PlayerEye, core.ColorFace, color)
}

// drawCaptions draws the transcript with the spoken word highlighted,
// scrolled so it stays in view.
func (g *Game) drawCaptions(dst *core.Screen, r core.Rect) {
	if r.Empty() {
		return
	}
	dst.FillRect(r, ' ', core.ColorInk, core.ColorPanel)
	dst.DrawRoundedBox(r, core.ColorBorder, core.ColorPanel)
	dst.DrawTextStyled(r.X+2, r.Y, " TRANSCRIPT ", core.ColorAccent, core.ColorPanel)

	q, ok := g.session.Current()
	inner := r.Inset(2, 1)
	if !ok || inner.Empty() {
		return
	}

	words := speech.Words(q.Text)
	lines := layoutTranscript(words, inner.W)
	active := -1
	if g.session.NarrationActive {
		active = speech.ActiveWord(words, g.session.CaptionIndex)
	}
	start := captionScroll(len(lines), lineOfWord(lines, active), inner.H)

	for i := 0; i < inner.H && start+i < len(lines); i++ {
		y := inner.Y + i
		for _, cw := range lines[start+i] {
			fg := core.ColorInk
			switch {
			case active < 0:
			case cw.Word == active:
				fg = core.ColorHighlight
			case cw.Word > active:
				fg = core.ColorDim
			}
			dst.DrawTextStyled(inner.X+cw.Col, y, cw.Text, fg, core.ColorPanel)
		}
	}
}

func (g *Game) renderInstructions(dst *core.Screen) {
	b := dst.Bounds()
	dst.FillRect(b, ' ', core.ColorInk, core.ColorRoad)

	lines := []string{
		"RECALL ACTIVE",
		"",
		"Listen to each question, then steer into",
		"the lane holding the right answer.",
		"",
		"←/→ or swipe to change lanes",
		"",
		"Pick your color with ←/→, Enter to start",
	}
	boxW := 48
	boxH := len(lines) + 6
	box := core.NewRect((b.W-boxW)/2, (b.H-boxH)/2, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorInk, core.ColorPanel)
	dst.DrawRoundedBox(box, core.ColorBorder, core.ColorPanel)

	for i, line := range lines {
		fg := core.ColorInk
		if i == 0 {
			fg = core.ColorAccent
		}
		dst.DrawTextCenteredIn(box, box.Y+1+i, line, fg, core.ColorPanel)
	}

	// color swatches
	sw := core.PlayerColorCount*3 + 1
	x := box.X + (box.W-sw)/2
	y := box.Y + len(lines) + 3
	for i := 0; i < core.PlayerColorCount; i++ {
		cx := x + i*3
		if i == g.session.Color {
			dst.SetStyled(cx, y, '[', core.ColorAccent, core.ColorPanel)
			dst.SetStyled(cx+3, y, ']', core.ColorAccent, core.ColorPanel)
		}
		dst.SetStyled(cx+1, y, SwatchChar, core.PlayerColor(i), core.ColorPanel)
		dst.SetStyled(cx+2, y, SwatchChar, core.PlayerColor(i), core.ColorPanel)
	}
}

func (g *Game) renderFinished(dst *core.Screen) {
	b := dst.Bounds()
	dst.FillRect(b, ' ', core.ColorInk, core.ColorRoad)

	res := g.session.Result()
	o := plan.Score(res.Correct, res.Total)
	fg := core.ColorCorrect
	if o.Redo {
		fg = core.ColorWrong
	}
	drawMessageBox(dst, b, fg,
		o.Verdict,
		"",
		fmt.Sprintf("PRECISION %.0f%%", o.Percent),
		fmt.Sprintf("CORRECT   %d/%d", o.Correct, o.Total),
		fmt.Sprintf("YIELD     +%d", o.Yield),
		fmt.Sprintf("XP        +%d", o.XP),
		"",
		"Press Enter or Q to exit",
	)
}

// drawMessageBox draws a box centered in r. The first line is the title.
func drawMessageBox(dst *core.Screen, r core.Rect, titleColor core.Color, lines ...string) {
	if len(lines) == 0 {
		return
	}
	w := 0
	for _, l := range lines {
		w = core.Max(w, utf8.RuneCountInString(l))
	}
	boxW := core.Min(w+6, r.W)
	boxH := core.Min(len(lines)+2, r.H)
	box := core.NewRect(r.X+(r.W-boxW)/2, r.Y+(r.H-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorInk, core.ColorPanel)
	dst.DrawRoundedBox(box, titleColor, core.ColorPanel)
	for i, l := range lines {
		if 1+i >= boxH-1 {
			break
		}
		fg := core.ColorInk
		if i == 0 {
			fg = titleColor
		}
		dst.DrawTextCenteredIn(box, box.Y+1+i, l, fg, core.ColorPanel)
	}
}
