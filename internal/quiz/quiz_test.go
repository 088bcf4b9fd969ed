package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validQuestion(id string, d Difficulty) Question {
	return Question{
		ID:           id,
		Text:         "What is " + id + "?",
		Options:      [OptionCount]string{"a", "b", "c"},
		CorrectIndex: 1,
		Difficulty:   d,
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"no difficulty", func(q *Question) { q.Difficulty = "" }, false},
		{"empty text", func(q *Question) { q.Text = "  " }, true},
		{"index too high", func(q *Question) { q.CorrectIndex = 3 }, true},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }, true},
		{"blank option", func(q *Question) { q.Options[2] = "" }, true},
		{"unknown difficulty", func(q *Question) { q.Difficulty = "extreme" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion("q1", Easy)
			tt.mutate(&q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidQuestion) {
				t.Errorf("error should wrap ErrInvalidQuestion: %v", err)
			}
		})
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	bad := validQuestion("bad", Easy)
	bad.CorrectIndex = 7

	valid, errs := Filter([]Question{validQuestion("a", Easy), bad, validQuestion("b", Hard)})
	if len(valid) != 2 || valid[0].ID != "a" || valid[1].ID != "b" {
		t.Errorf("Filter() kept %+v", valid)
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 error, got %d", len(errs))
	}
}

func TestProgressiveIsStable(t *testing.T) {
	in := []Question{
		validQuestion("h1", Hard),
		validQuestion("e1", Easy),
		validQuestion("m1", Medium),
		validQuestion("e2", Easy),
		validQuestion("x", ""),
	}

	out := Progressive(in)
	want := []string{"e1", "e2", "m1", "h1", "x"}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("position %d = %s, expected %s", i, out[i].ID, id)
		}
	}
	if in[0].ID != "h1" {
		t.Error("Progressive must not reorder its input")
	}
}

func TestLimit(t *testing.T) {
	qs := []Question{validQuestion("a", Easy), validQuestion("b", Easy), validQuestion("c", Easy)}
	if got := Limit(qs, 2); len(got) != 2 {
		t.Errorf("Limit(2) len = %d", len(got))
	}
	if got := Limit(qs, 0); len(got) != 3 {
		t.Errorf("Limit(0) should not limit, got %d", len(got))
	}
}

func TestParseJSONList(t *testing.T) {
	data := []byte(`[
		{"id": "1", "question": "Capital of France?", "options": ["Paris", "Rome", "Oslo"], "correctIndex": 0, "difficulty": "Easy"},
		{"id": "2", "question": "Two options?", "options": ["yes", "no"], "correctIndex": 0},
		{"question": "No id", "options": ["x", "y", "z"], "correctIndex": 2, "difficulty": "hard"}
	]`)

	set, err := Parse(data, FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(set.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(set.Questions))
	}
	if len(set.Problems) != 1 || !errors.Is(set.Problems[0], ErrInvalidQuestion) {
		t.Errorf("expected one option-count problem, got %v", set.Problems)
	}

	first := set.Questions[0]
	if first.Correct() != "Paris" || first.Difficulty != Easy {
		t.Errorf("first question decoded wrong: %+v", first)
	}
	if set.Questions[1].ID == "" {
		t.Error("missing id should be generated")
	}
}

func TestParseMissingCorrectIndex(t *testing.T) {
	set, err := Parse([]byte(`{"questions": [{"id": "1", "question": "Q", "options": ["a", "b", "c"]}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(set.Questions) != 0 || len(set.Problems) != 1 {
		t.Errorf("missing correctIndex should be a problem, got %+v", set)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, data := range []string{`[]`, `{"questions": []}`} {
		if _, err := Parse([]byte(data), FormatJSON); !errors.Is(err, ErrNoQuestions) {
			t.Errorf("Parse(%s) error = %v, expected ErrNoQuestions", data, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"questions": [`), FormatJSON); err == nil {
		t.Error("expected error for truncated json")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "biology.yaml")
	content := `title: Cells
questions:
  - id: c1
    question: Powerhouse of the cell?
    options: [Nucleus, Mitochondria, Ribosome]
    correct_index: 1
    difficulty: medium
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if set.Title != "Cells" {
		t.Errorf("Title = %q", set.Title)
	}
	if len(set.Questions) != 1 || set.Questions[0].Correct() != "Mitochondria" {
		t.Errorf("unexpected questions: %+v", set.Questions)
	}
}

func TestLoadTitleFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.json")
	if err := os.WriteFile(path, []byte(`[{"question": "Q", "options": ["a","b","c"], "correctIndex": 0}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if set.Title != "history" {
		t.Errorf("Title = %q, expected file stem", set.Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
