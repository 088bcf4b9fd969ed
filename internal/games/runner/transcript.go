package runner

import (
	"unicode/utf8"

	"github.com/aanchal1810/Oplaite-AI/internal/speech"
)

// captionWord is one placed piece of a transcript word.
type captionWord struct {
	Word int // index into the word list
	Text string
	Col  int
}

type captionLine []captionWord

// layoutTranscript flows words into lines of at most width cells. A word
// longer than a line is split across lines and keeps its index on every
// piece so highlighting follows it.
func layoutTranscript(words []speech.Word, width int) []captionLine {
	if width < 1 {
		width = 1
	}
	var lines []captionLine
	var cur captionLine
	col := 0
	for i, w := range words {
		for _, piece := range WrapText(w.Text, width, nil) {
			n := utf8.RuneCountInString(piece)
			if col > 0 && col+1+n > width {
				lines = append(lines, cur)
				cur = nil
				col = 0
			}
			if col > 0 {
				col++
			}
			cur = append(cur, captionWord{Word: i, Text: piece, Col: col})
			col += n
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// lineOfWord returns the first line holding word, or -1.
func lineOfWord(lines []captionLine, word int) int {
	if word < 0 {
		return -1
	}
	for i, line := range lines {
		for _, cw := range line {
			if cw.Word == word {
				return i
			}
		}
	}
	return -1
}

// captionScroll returns the first visible line so the active line sits
// in the middle of a window of height lines.
func captionScroll(total, active, height int) int {
	if height <= 0 || total <= height || active < 0 {
		return 0
	}
	start := active - height/2
	if start < 0 {
		start = 0
	}
	if last := total - height; start > last {
		start = last
	}
	return start
}
