package runner

import (
	"strings"
	"unicode/utf8"
)

// WrapText breaks text into lines no wider than maxWidth, as reported by
// measure, filling each line greedily word by word. Words wider than a
// line are split. Empty or blank text yields no lines. A nil measure
// counts runes.
func WrapText(text string, maxWidth int, measure func(string) int) []string {
	if measure == nil {
		measure = utf8.RuneCountInString
	}
	if maxWidth < 1 {
		maxWidth = 1
	}

	lines := []string{}
	line := ""
	for _, word := range strings.Fields(text) {
		for measure(word) > maxWidth {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			head, tail := splitWord(word, maxWidth, measure)
			lines = append(lines, head)
			word = tail
		}
		if word == "" {
			continue
		}
		if line == "" {
			line = word
			continue
		}
		if candidate := line + " " + word; measure(candidate) <= maxWidth {
			line = candidate
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// splitWord returns the longest prefix of word that fits maxWidth, and the
// rest. The prefix always holds at least one rune.
func splitWord(word string, maxWidth int, measure func(string) int) (string, string) {
	end := 0
	for end < len(word) {
		_, size := utf8.DecodeRuneInString(word[end:])
		if end > 0 && measure(word[:end+size]) > maxWidth {
			break
		}
		end += size
	}
	return word[:end], word[end:]
}
