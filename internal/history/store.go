package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"redbreast/internal/config"
)

// Entry statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrEntryNotFound reports a lookup for an unknown entry ID.
var ErrEntryNotFound = errors.New("history entry not found")

// Entry is one recorded encode run.
type Entry struct {
	ID              string
	Command         string
	Title           string
	InputPath       string
	OutputPath      string
	Status          string
	ErrorMessage    string
	DurationSeconds float64
	CreatedAt       time.Time
}

// Store manages encode-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database under the
// configured log directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(dbPath + ".lock"),
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a finished encode run. Missing ID, title, and timestamp
// fields are filled in. Writes take the cross-process lock so concurrent
// CLI invocations serialize cleanly.
func (s *Store) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Title == "" {
		entry.Title = deriveTitle(entry.InputPath)
	}
	if entry.Status == "" {
		entry.Status = StatusCompleted
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO history_entries (
            id, command, title, input_path, output_path,
            status, error_message, duration_seconds, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Command,
		entry.Title,
		entry.InputPath,
		entry.OutputPath,
		entry.Status,
		entry.ErrorMessage,
		entry.DurationSeconds,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert history entry: %w", err)
	}

	return &entry, nil
}

// GetByID fetches a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all entries ordered oldest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

const selectColumns = `SELECT id, command, title, input_path, output_path,
    status, error_message, duration_seconds, created_at
    FROM history_entries`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var createdAt string
	err := row.Scan(
		&entry.ID,
		&entry.Command,
		&entry.Title,
		&entry.InputPath,
		&entry.OutputPath,
		&entry.Status,
		&entry.ErrorMessage,
		&entry.DurationSeconds,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	entry.CreatedAt = ts
	return &entry, nil
}
