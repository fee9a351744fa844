package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focustimer/internal/core/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const journalFileName = "journal.db"

// ErrJournalClosed is returned by a journal after Close.
var ErrJournalClosed = errors.New("journal closed")

// Entry is a persisted session record.
type Entry struct {
	ID string
	model.SessionRecord
}

// Journal stores completed phases in SQLite so they outlive the process.
type Journal struct {
	conn *sql.DB
	path string
}

// JournalPath returns the default journal location for appName.
func JournalPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, journalFileName), nil
}

// OpenJournal opens or creates the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	journal := &Journal{conn: conn, path: path}
	if err := journal.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return journal, nil
}

// Path returns the database file location.
func (journal *Journal) Path() string {
	return journal.path
}

// Close closes the database connection.
func (journal *Journal) Close() error {
	if journal.conn == nil {
		return nil
	}
	err := journal.conn.Close()
	journal.conn = nil
	return err
}

func (journal *Journal) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			phase TEXT NOT NULL,
			actual_seconds INTEGER NOT NULL,
			completed_at INTEGER NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_phase ON sessions(phase);",
	}
	for _, statement := range statements {
		if _, err := journal.conn.Exec(statement); err != nil {
			return err
		}
	}
	return nil
}

// Record stores a completed phase and returns its id.
func (journal *Journal) Record(ctx context.Context, record model.SessionRecord) (string, error) {
	if journal.conn == nil {
		return "", ErrJournalClosed
	}
	id := uuid.NewString()
	_, err := journal.conn.ExecContext(ctx,
		"INSERT INTO sessions (id, phase, actual_seconds, completed_at) VALUES (?, ?, ?, ?)",
		id, string(record.Phase), int64(record.Actual/time.Second), record.CompletedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (journal *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if journal.conn == nil {
		return nil, ErrJournalClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := journal.conn.QueryContext(ctx,
		"SELECT id, phase, actual_seconds, completed_at FROM sessions ORDER BY completed_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry       Entry
			phase       string
			seconds     int64
			completedAt int64
		)
		if err := rows.Scan(&entry.ID, &phase, &seconds, &completedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		entry.Phase = model.Phase(phase)
		entry.Actual = time.Duration(seconds) * time.Second
		entry.CompletedAt = time.UnixMilli(completedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}

// CountSince counts phases of the given kind completed at or after since.
func (journal *Journal) CountSince(ctx context.Context, phase model.Phase, since time.Time) (int, error) {
	if journal.conn == nil {
		return 0, ErrJournalClosed
	}
	var count int
	err := journal.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sessions WHERE phase = ? AND completed_at >= ?",
		string(phase), since.UnixMilli(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}
