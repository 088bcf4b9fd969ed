// Package quiz holds the question records consumed by the runner and the
// loaders that read them from JSON or YAML files.
package quiz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// OptionCount is the fixed number of answer options, one per lane.
const OptionCount = 3

var (
	// ErrNoQuestions is returned when a source contains no questions at all.
	ErrNoQuestions = errors.New("quiz: no questions")
	// ErrInvalidQuestion wraps every validation failure.
	ErrInvalidQuestion = errors.New("quiz: invalid question")
)

// Difficulty tags how hard a question is.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// rank orders difficulties easy -> hard; unknown tags sort last.
func (d Difficulty) rank() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	default:
		return 3
	}
}

// Valid reports whether d is one of the known tags.
func (d Difficulty) Valid() bool {
	return d.rank() < 3
}

// Question is one multiple-choice item. It is never mutated once loaded.
type Question struct {
	ID           string
	Text         string
	Options      [OptionCount]string
	CorrectIndex int
	Difficulty   Difficulty
}

// Validate checks the fields a source could get wrong.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w %q: empty text", ErrInvalidQuestion, q.ID)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return fmt.Errorf("%w %q: correct index %d out of range", ErrInvalidQuestion, q.ID, q.CorrectIndex)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w %q: option %d is empty", ErrInvalidQuestion, q.ID, i)
		}
	}
	if q.Difficulty != "" && !q.Difficulty.Valid() {
		return fmt.Errorf("%w %q: unknown difficulty %q", ErrInvalidQuestion, q.ID, q.Difficulty)
	}
	return nil
}

// Correct returns the text of the correct option.
func (q Question) Correct() string {
	return q.Options[q.CorrectIndex]
}

// Filter splits questions into the valid ones and the validation errors of
// the rest, keeping the original order.
func Filter(questions []Question) ([]Question, []error) {
	valid := make([]Question, 0, len(questions))
	var errs []error
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, q)
	}
	return valid, errs
}

// Progressive returns a copy ordered easy -> medium -> hard.
// Questions with the same difficulty keep their relative order.
func Progressive(questions []Question) []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Difficulty.rank() < out[j].Difficulty.rank()
	})
	return out
}

// Limit returns at most n questions; n <= 0 means no limit.
func Limit(questions []Question, n int) []Question {
	if n <= 0 || n >= len(questions) {
		return questions
	}
	return questions[:n]
}
