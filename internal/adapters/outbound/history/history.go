package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/ncprotocol/ncp/internal/domain"
	_ "modernc.org/sqlite"
)

// DefaultPath is the history database location relative to the project.
const DefaultPath = ".ncp/history.db"

// Fixed-width so that checked_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS validation_runs (
	id          TEXT PRIMARY KEY,
	checked_at  TEXT NOT NULL,
	target      TEXT NOT NULL,
	commit_hash TEXT,
	status      TEXT NOT NULL,
	level       TEXT NOT NULL,
	score       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_validation_runs_target ON validation_runs(target, checked_at);
`

// SQLiteHistory implements domain.ValidationHistory on a SQLite database.
type SQLiteHistory struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*SQLiteHistory, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &SQLiteHistory{db: db}, nil
}

// Close releases the database.
func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}

func (h *SQLiteHistory) Save(entry domain.HistoryEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("save history: entry has no id")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := h.db.Exec(
		`INSERT INTO validation_runs (id, checked_at, target, commit_hash, status, level, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UTC().Format(timeLayout),
		entry.Target,
		nullIfEmpty(entry.CommitHash),
		string(entry.Status),
		string(entry.Level),
		entry.Score,
	)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (h *SQLiteHistory) Load(target string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT id, checked_at, target, commit_hash, status, level, score FROM validation_runs`
	args := []any{}
	if target != "" {
		query += ` WHERE target = ?`
		args = append(args, target)
	}
	query += ` ORDER BY checked_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			e         domain.HistoryEntry
			checkedAt string
			commit    sql.NullString
			status    string
			level     string
		)
		if err := rows.Scan(&e.ID, &checkedAt, &e.Target, &commit, &status, &level, &e.Score); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		ts, err := time.Parse(timeLayout, checkedAt)
		if err != nil {
			return nil, fmt.Errorf("history %s: bad timestamp %q: %w", e.ID, checkedAt, err)
		}
		e.Timestamp = ts
		e.CommitHash = commit.String
		e.Status = domain.Status(status)
		e.Level = domain.ComplianceLevel(level)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	slices.Reverse(entries)
	return entries, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
