// Package storage persists finished runs. SQLite is the default backend;
// a postgres:// DSN selects PostgreSQL instead.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aanchal1810/Oplaite-AI/internal/plan"
)

// ErrInvalidResult is returned when a result cannot be a real run.
var ErrInvalidResult = errors.New("storage: invalid result")

// Result is one finished run.
type Result struct {
	ID        int64
	SessionID string // unique per run
	Quiz      string
	Player    string
	Correct   int
	Total     int
	Percent   float64
	CreatedAt time.Time
}

// NewResult builds a result for a run that just finished.
func NewResult(quiz, player string, correct, total int) Result {
	return Result{
		SessionID: uuid.NewString(),
		Quiz:      quiz,
		Player:    player,
		Correct:   correct,
		Total:     total,
		Percent:   plan.Score(correct, total).Percent,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate rejects counts no run can produce.
func (r Result) Validate() error {
	switch {
	case strings.TrimSpace(r.Quiz) == "":
		return fmt.Errorf("%w: missing quiz name", ErrInvalidResult)
	case r.Total < 0:
		return fmt.Errorf("%w: negative total %d", ErrInvalidResult, r.Total)
	case r.Correct < 0 || r.Correct > r.Total:
		return fmt.Errorf("%w: %d correct out of %d", ErrInvalidResult, r.Correct, r.Total)
	}
	return nil
}

// QuizStats aggregates the runs of one quiz.
type QuizStats struct {
	Quiz         string
	Runs         int
	BestPercent  float64
	AvgPercent   float64
	TotalCorrect int64
	LastPlayed   time.Time
}

// ResultStore is implemented by every backend.
type ResultStore interface {
	// SaveResult records a run and returns its row ID.
	SaveResult(ctx context.Context, r Result) (int64, error)

	// RecentResults returns the newest runs first. An empty quiz matches all.
	RecentResults(ctx context.Context, quiz string, limit int) ([]Result, error)

	// QuizStats aggregates one quiz. A quiz with no runs has zero stats.
	QuizStats(ctx context.Context, quiz string) (*QuizStats, error)

	// AllQuizStats aggregates every quiz that has runs, ordered by name.
	AllQuizStats(ctx context.Context) ([]QuizStats, error)

	Close() error
}

// DefaultRecentLimit is used when a non-positive limit is requested.
const DefaultRecentLimit = 20

// IsPostgresDSN reports whether dsn names a PostgreSQL database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// OpenStore opens the backend dsn points at: PostgreSQL for postgres URLs,
// otherwise a SQLite file path.
func OpenStore(ctx context.Context, dsn string) (ResultStore, error) {
	if IsPostgresDSN(dsn) {
		return OpenPostgres(ctx, dsn)
	}
	return Open(dsn)
}
