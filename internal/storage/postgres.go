package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps run results in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ ResultStore = (*PostgresStore)(nil)

// OpenPostgres connects to dsn and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: parse postgres dsn: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("storage: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping postgres: %w", err)
	}

	store := &PostgresStore{db: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS results (
			id BIGSERIAL PRIMARY KEY,
			session_id UUID NOT NULL UNIQUE,
			quiz TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			percent DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_results_quiz ON results(quiz);
		CREATE INDEX IF NOT EXISTS idx_results_recent ON results(created_at DESC);
	`
	_, err := s.db.Exec(ctx, query)
	return err
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// SaveResult records a finished run.
func (s *PostgresStore) SaveResult(ctx context.Context, r Result) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO results (session_id, quiz, player, correct, total, percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRow(
		ctx, query,
		r.SessionID,
		r.Quiz,
		r.Player,
		r.Correct,
		r.Total,
		r.Percent,
		r.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: save result: %w", err)
	}

	return id, nil
}

// RecentResults returns the newest runs first.
func (s *PostgresStore) RecentResults(ctx context.Context, quiz string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
		SELECT id, session_id::text, quiz, player, correct, total, percent, created_at
		FROM results
		WHERE $1 = '' OR quiz = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, quiz, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Quiz, &r.Player, &r.Correct, &r.Total, &r.Percent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: scan result: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: rows: %w", err)
	}

	return results, nil
}

// QuizStats retrieves aggregated statistics for one quiz.
func (s *PostgresStore) QuizStats(ctx context.Context, quiz string) (*QuizStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(MAX(percent), 0), COALESCE(AVG(percent), 0)::float8,
		       COALESCE(SUM(correct), 0)::bigint, MAX(created_at)
		FROM results
		WHERE quiz = $1
	`

	stats := &QuizStats{Quiz: quiz}
	var lastPlayed *time.Time
	err := s.db.QueryRow(ctx, query, quiz).Scan(
		&stats.Runs,
		&stats.BestPercent,
		&stats.AvgPercent,
		&stats.TotalCorrect,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: quiz stats: %w", err)
	}
	if lastPlayed != nil {
		stats.LastPlayed = *lastPlayed
	}

	return stats, nil
}

// AllQuizStats retrieves statistics for every quiz that has been played.
func (s *PostgresStore) AllQuizStats(ctx context.Context) ([]QuizStats, error) {
	query := `
		SELECT quiz, COUNT(*), MAX(percent), AVG(percent)::float8, SUM(correct)::bigint, MAX(created_at)
		FROM results
		GROUP BY quiz
		ORDER BY quiz
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("storage: all quiz stats: %w", err)
	}
	defer rows.Close()

	var stats []QuizStats
	for rows.Next() {
		var st QuizStats
		if err := rows.Scan(&st.Quiz, &st.Runs, &st.BestPercent, &st.AvgPercent, &st.TotalCorrect, &st.LastPlayed); err != nil {
			return nil, fmt.Errorf("storage: scan stats: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: rows: %w", err)
	}

	return stats, nil
}
