// Package plan scores a finished recall run and adjusts the study plan the
// run belonged to.
package plan

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
)

// Status of a plan segment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusRedo      Status = "redo"
)

const (
	// RedoThreshold is the percentage below which a segment must be redone.
	RedoThreshold = 50.0
	// XPPerCorrect is the experience awarded per correct answer.
	XPPerCorrect = 10
	// maxReviewMinutes caps the length of an inserted review segment.
	maxReviewMinutes = 25

	reviewDescription = "Low sync score detected. Focus on core concepts missed in previous recall session."
)

// ErrSegmentOutOfRange is returned when a segment index does not exist.
var ErrSegmentOutOfRange = errors.New("plan: segment index out of range")

// Segment is one timed block of a study plan.
type Segment struct {
	ID                string `json:"id" yaml:"id"`
	Topic             string `json:"topic" yaml:"topic"`
	Unit              string `json:"unit" yaml:"unit"`
	Importance        int    `json:"importance" yaml:"importance"`
	EstimatedDuration int    `json:"estimatedDuration" yaml:"estimated_duration"` // minutes
	Description       string `json:"description" yaml:"description"`
	Status            Status `json:"status" yaml:"status"`
}

// Plan is a study plan for one unit together with its running totals.
type Plan struct {
	Unit     string    `json:"unit" yaml:"unit"`
	Score    int       `json:"score" yaml:"score"`       // accumulated XP
	Progress int       `json:"progress" yaml:"progress"` // percent of segments completed
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Outcome summarizes a finished run.
type Outcome struct {
	Correct int
	Total   int
	Percent float64
	Redo    bool
	XP      int
	Yield   int
	Verdict string
}

// Score computes the outcome of correct answers out of total.
// An empty run counts as 0%.
func Score(correct, total int) Outcome {
	denom := total
	if denom <= 0 {
		denom = 1
	}
	percent := float64(correct) / float64(denom) * 100
	o := Outcome{
		Correct: correct,
		Total:   total,
		Percent: percent,
		Redo:    percent < RedoThreshold,
		XP:      correct * XPPerCorrect,
		Yield:   int(math.Round(percent * 5)),
		Verdict: "COMPLETED",
	}
	if o.Redo {
		o.Verdict = "POOR SYNC"
	}
	return o
}

// Adjust inserts a review segment after segment idx when percent is below
// the redo threshold. The plan is returned unchanged otherwise.
func Adjust(p Plan, idx int, percent float64) (Plan, error) {
	if idx < 0 || idx >= len(p.Segments) {
		return p, fmt.Errorf("%w: %d of %d", ErrSegmentOutOfRange, idx, len(p.Segments))
	}
	if percent >= RedoThreshold {
		return p, nil
	}

	current := p.Segments[idx]
	review := current
	review.ID = fmt.Sprintf("%s-review-%s", current.ID, uuid.NewString()[:8])
	review.Topic = "RE-MASTER: " + current.Topic
	review.EstimatedDuration = min(maxReviewMinutes, current.EstimatedDuration)
	review.Description = reviewDescription
	review.Status = StatusPending

	segments := make([]Segment, 0, len(p.Segments)+1)
	segments = append(segments, p.Segments[:idx+1]...)
	segments = append(segments, review)
	segments = append(segments, p.Segments[idx+1:]...)
	p.Segments = segments
	return p, nil
}

// Apply records an outcome for segment idx: a review is inserted if needed,
// the segment is marked completed or redo, XP is added and progress is
// recomputed from the completed segments. p is left unchanged.
func Apply(p Plan, idx int, o Outcome) (Plan, error) {
	adjusted, err := Adjust(p, idx, o.Percent)
	if err != nil {
		return p, err
	}
	// A passing run returns p's own segments from Adjust.
	adjusted.Segments = slices.Clone(adjusted.Segments)

	status := StatusCompleted
	if o.Redo {
		status = StatusRedo
	}
	adjusted.Segments[idx].Status = status
	adjusted.Score += o.XP
	adjusted.Progress = progress(adjusted.Segments)
	return adjusted, nil
}

func progress(segments []Segment) int {
	if len(segments) == 0 {
		return 0
	}
	done := 0
	for _, s := range segments {
		if s.Status == StatusCompleted {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(segments)) * 100))
}
