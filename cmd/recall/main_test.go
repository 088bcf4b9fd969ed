package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestQuizName(t *testing.T) {
	tests := []struct {
		path, title, want string
	}{
		{"quizzes/capitals.yaml", "", "capitals"},
		{"capitals.json", "European Capitals", "European Capitals"},
		{"/tmp/rivers", "  ", "rivers"},
	}
	for _, tt := range tests {
		if got := quizName(tt.path, tt.title); got != tt.want {
			t.Errorf("quizName(%q, %q) = %q, want %q", tt.path, tt.title, got, tt.want)
		}
	}
}

func writeQuiz(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capitals.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runValidateOn(t *testing.T, path string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	validateCmd.SetOut(&out)
	defer validateCmd.SetOut(nil)
	err := runValidate(validateCmd, []string{path})
	return out.String(), err
}

func TestValidateReportsInvalidQuestions(t *testing.T) {
	path := writeQuiz(t, `
title: Capitals
questions:
  - id: fr
    question: Capital of France?
    options: [Paris, Lyon, Nice]
    correct_index: 0
  - id: de
    question: Capital of Germany?
    options: [Berlin, Bonn]
    correct_index: 0
  - id: it
    question: Capital of Italy?
    options: [Milan, Rome, Turin]
    correct_index: 5
`)

	out, err := runValidateOn(t, path)
	if err == nil {
		t.Fatal("expected an error for invalid questions")
	}
	if !strings.Contains(out, "Capitals: 1 playable, 2 invalid") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestValidateAcceptsCleanFile(t *testing.T) {
	path := writeQuiz(t, `
- question: Capital of Spain?
  options: [Madrid, Seville, Valencia]
  correct_index: 0
`)

	out, err := runValidateOn(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "capitals: 1 playable, 0 invalid") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}
