// Package journal keeps a local SQLite history of the operations svnop ran
// and how each one ended.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/mrz1836/svnop/internal/domain"
	svnerrors "github.com/mrz1836/svnop/internal/errors"
)

// timeLayout is fixed width so started_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one journaled operation outcome.
type Entry struct {
	ID        string           `json:"id"`
	Operation domain.Operation `json:"operation"`
	Path      string           `json:"path"`
	Paths     []string         `json:"paths,omitempty"`
	Severity  domain.Severity  `json:"severity"`
	Message   string           `json:"message"`
	Recovered bool             `json:"recovered,omitempty"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
}

// OK reports whether the operation succeeded.
func (e Entry) OK() bool {
	return e.Severity == domain.SeverityInfo
}

// EntryFromReport converts an operation report into a journal entry.
func EntryFromReport(r domain.Report) Entry {
	return Entry{
		ID:        r.ID,
		Operation: r.Operation,
		Path:      r.Path,
		Paths:     r.Paths,
		Severity:  r.Message.Severity,
		Message:   r.Message.Text,
		Recovered: r.Recovered,
		StartedAt: r.StartedAt,
		Duration:  r.Duration(),
	}
}

// Recorder receives every operation outcome.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Store is a Recorder backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ Recorder = (*Store)(nil)

// Open opens or creates the journal database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("%w: failed to create journal directory: %w", svnerrors.ErrJournal, err)
	}
	s, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: failed to set WAL mode: %w", svnerrors.ErrJournal, err)
	}

	zerolog.Ctx(ctx).Debug().Str("component", "journal").Str("path", path).Msg("journal opened")
	return s, nil
}

// OpenMemory opens a journal that lives only as long as the Store.
func OpenMemory(ctx context.Context) (*Store, error) {
	return open(ctx, ":memory:")
}

func open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", svnerrors.ErrJournal, err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS operations (
		id TEXT PRIMARY KEY,
		operation TEXT NOT NULL,
		path TEXT NOT NULL,
		paths TEXT NOT NULL DEFAULT '',
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		recovered INTEGER NOT NULL DEFAULT 0,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_operations_started ON operations(started_at);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: failed to execute schema: %w", svnerrors.ErrJournal, err)
	}
	return nil
}

// Record stores e. Recording the same ID twice replaces the first entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	const query = `
		INSERT OR REPLACE INTO operations (
			id, operation, path, paths, severity, message, recovered, started_at, duration_ms
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		string(e.Operation),
		e.Path,
		strings.Join(e.Paths, "\n"),
		string(e.Severity),
		e.Message,
		e.Recovered,
		e.StartedAt.UTC().Format(timeLayout),
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to record operation %s: %w", svnerrors.ErrJournal, e.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return []Entry{}, nil
	}

	const query = `
		SELECT id, operation, path, paths, severity, message, recovered, started_at, duration_ms
		FROM operations
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query operations: %w", svnerrors.ErrJournal, err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate operations: %w", svnerrors.ErrJournal, err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                   Entry
		operation, severity string
		paths, startedAt    string
		durationMs          int64
	)
	err := rows.Scan(&e.ID, &operation, &e.Path, &paths, &severity, &e.Message, &e.Recovered, &startedAt, &durationMs)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: failed to scan operation: %w", svnerrors.ErrJournal, err)
	}

	e.Operation = domain.Operation(operation)
	e.Severity = domain.Severity(severity)
	if paths != "" {
		e.Paths = strings.Split(paths, "\n")
	}
	e.Duration = time.Duration(durationMs) * time.Millisecond
	e.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad timestamp %q: %w", svnerrors.ErrJournal, startedAt, err)
	}
	return e, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
