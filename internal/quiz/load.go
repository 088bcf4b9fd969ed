package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder for a question source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Set is a decoded question source.
type Set struct {
	Title     string
	Questions []Question
	// Problems lists records that could not become a Question at all,
	// e.g. because they did not carry exactly three options.
	Problems []error
}

// record is the on-disk shape. Options is a slice so that a wrong
// option count can be reported instead of silently truncated.
type record struct {
	ID           string   `json:"id" yaml:"id"`
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex *int     `json:"correctIndex" yaml:"correct_index"`
	Difficulty   string   `json:"difficulty" yaml:"difficulty"`
}

type document struct {
	Title     string   `json:"title" yaml:"title"`
	Questions []record `json:"questions" yaml:"questions"`
}

// Load reads a question file from disk.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("quiz: cannot read %s: %w", path, err)
	}
	set, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return Set{}, fmt.Errorf("quiz: %s: %w", path, err)
	}
	if set.Title == "" {
		set.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return set, nil
}

// Parse decodes a question source. Both a bare list of questions and an
// object with a "questions" key are accepted.
func Parse(data []byte, format Format) (Set, error) {
	doc, err := decode(data, format)
	if err != nil {
		return Set{}, err
	}
	if len(doc.Questions) == 0 {
		return Set{}, ErrNoQuestions
	}

	set := Set{Title: doc.Title}
	for i, rec := range doc.Questions {
		q, err := rec.toQuestion(i)
		if err != nil {
			set.Problems = append(set.Problems, err)
			continue
		}
		set.Questions = append(set.Questions, q)
	}
	return set, nil
}

func decode(data []byte, format Format) (document, error) {
	var doc document
	trimmed := strings.TrimSpace(string(data))

	switch format {
	case FormatYAML:
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "[") {
			if err := yaml.Unmarshal(data, &doc.Questions); err != nil {
				return doc, fmt.Errorf("parse yaml: %w", err)
			}
			return doc, nil
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if strings.HasPrefix(trimmed, "[") {
			if err := json.Unmarshal(data, &doc.Questions); err != nil {
				return doc, fmt.Errorf("parse json: %w", err)
			}
			return doc, nil
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("parse json: %w", err)
		}
	}
	return doc, nil
}

func (r record) toQuestion(pos int) (Question, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	if len(r.Options) != OptionCount {
		return Question{}, fmt.Errorf("%w %q (#%d): has %d options, expected %d",
			ErrInvalidQuestion, id, pos+1, len(r.Options), OptionCount)
	}
	if r.CorrectIndex == nil {
		return Question{}, fmt.Errorf("%w %q (#%d): missing correct index", ErrInvalidQuestion, id, pos+1)
	}

	q := Question{
		ID:           id,
		Text:         r.Question,
		CorrectIndex: *r.CorrectIndex,
		Difficulty:   Difficulty(strings.ToLower(strings.TrimSpace(r.Difficulty))),
	}
	copy(q.Options[:], r.Options)
	return q, nil
}
