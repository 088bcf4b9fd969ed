package core

// Color is a semantic palette slot for a screen cell.
// The platform layer maps each slot to a concrete terminal color per theme,
// so game code never deals with hex values or ANSI codes.
type Color uint8

// Palette slots used by the renderer.
const (
	ColorDefault Color = iota
	ColorRoad
	ColorBorder
	ColorGrid
	ColorDim
	ColorInk
	ColorAccent
	ColorHighlight
	ColorCorrect
	ColorWrong
	ColorShadow
	ColorPanel
	ColorFace
	ColorTile0
	ColorTile1
	ColorTile2
	ColorPlayer0
	ColorPlayer1
	ColorPlayer2
	ColorPlayer3
	ColorPlayer4
	ColorPlayer5
	ColorPlayer6
	ColorPlayer7
	ColorPlayer8
)

// PlayerColorCount is the number of selectable player colors.
const PlayerColorCount = int(ColorPlayer8-ColorPlayer0) + 1

// TileColor returns the palette slot for the answer tile in the given lane.
func TileColor(lane int) Color {
	return ColorTile0 + Color(Clamp(lane, 0, 2))
}

// PlayerColor returns the palette slot for a player color token.
// Tokens outside the palette wrap around.
func PlayerColor(token int) Color {
	idx := token % PlayerColorCount
	if idx < 0 {
		idx += PlayerColorCount
	}
	return ColorPlayer0 + Color(idx)
}
