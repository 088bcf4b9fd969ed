package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run results.
type Store struct {
	db *sql.DB
}

var _ ResultStore = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			quiz TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			percent REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_quiz ON results(quiz);
		CREATE INDEX IF NOT EXISTS idx_results_recent ON results(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished run.
func (s *Store) SaveResult(ctx context.Context, r Result) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (session_id, quiz, player, correct, total, percent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Quiz, r.Player, r.Correct, r.Total, r.Percent,
		r.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults returns the newest runs first.
func (s *Store) RecentResults(ctx context.Context, quiz string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, quiz, player, correct, total, percent, created_at
		 FROM results
		 WHERE ? = '' OR quiz = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		quiz, quiz, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Quiz, &r.Player, &r.Correct, &r.Total, &r.Percent, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseSQLiteTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// QuizStats retrieves aggregated statistics for one quiz.
func (s *Store) QuizStats(ctx context.Context, quiz string) (*QuizStats, error) {
	stats := &QuizStats{Quiz: quiz}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(percent), 0), COALESCE(AVG(percent), 0),
		        COALESCE(SUM(correct), 0), MAX(created_at)
		 FROM results WHERE quiz = ?`,
		quiz,
	).Scan(&stats.Runs, &stats.BestPercent, &stats.AvgPercent, &stats.TotalCorrect, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get quiz stats: %w", err)
	}
	stats.LastPlayed = parseSQLiteTime(lastPlayed)

	return stats, nil
}

// AllQuizStats retrieves statistics for every quiz that has been played.
func (s *Store) AllQuizStats(ctx context.Context) ([]QuizStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT quiz, COUNT(*), MAX(percent), AVG(percent), SUM(correct), MAX(created_at)
		 FROM results
		 GROUP BY quiz
		 ORDER BY quiz`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all quiz stats: %w", err)
	}
	defer rows.Close()

	var stats []QuizStats
	for rows.Next() {
		var st QuizStats
		var lastPlayed any
		if err := rows.Scan(&st.Quiz, &st.Runs, &st.BestPercent, &st.AvgPercent, &st.TotalCorrect, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseSQLiteTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearResults deletes every run of a quiz.
func (s *Store) ClearResults(ctx context.Context, quiz string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE quiz = ?", quiz)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseSQLiteTime handles both driver-parsed and raw text datetimes.
func parseSQLiteTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	case []byte:
		return parseSQLiteTime(string(t))
	}
	return time.Time{}
}
