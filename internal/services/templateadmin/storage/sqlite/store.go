// Package sqlite provides the SQLite-backed action journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/louisbranch/templatedesk/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/templatedesk/internal/platform/timeouts"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/storage"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/storage/sqlite/migrations"
)

// Store persists the action journal in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ storage.JournalStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the journal at path, creating parent directories as needed, and
// applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return open(ctx, dsn(cleanPath))
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path, timeouts.StorageBusy.Milliseconds())
}

func open(ctx context.Context, source string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", source)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time keeps appends from tripping over SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEntry inserts one journal entry. A zero OccurredAt is stamped with the
// current time.
func (s *Store) AppendEntry(ctx context.Context, entry storage.Entry) (storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return storage.Entry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Entry{}, fmt.Errorf("storage is not configured")
	}
	entry.Operation = strings.TrimSpace(entry.Operation)
	entry.Result = strings.TrimSpace(entry.Result)
	if entry.Operation == "" {
		return storage.Entry{}, fmt.Errorf("%w: operation is required", storage.ErrInvalidEntry)
	}
	if entry.Result == "" {
		return storage.Entry{}, fmt.Errorf("%w: result is required", storage.ErrInvalidEntry)
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = s.now()
	}
	entry.OccurredAt = fromMillis(toMillis(entry.OccurredAt))

	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO action_journal (operation, object_id, result, detail, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.Operation,
		entry.ObjectID,
		entry.Result,
		entry.Detail,
		toMillis(entry.OccurredAt),
	)
	if err != nil {
		return storage.Entry{}, fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storage.Entry{}, fmt.Errorf("journal entry id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// ListEntries returns journal entries, newest first.
func (s *Store) ListEntries(ctx context.Context, limit int) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, operation, object_id, result, detail, occurred_at
		 FROM action_journal
		 ORDER BY occurred_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []storage.Entry
	for rows.Next() {
		var (
			entry      storage.Entry
			occurredAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.Operation, &entry.ObjectID, &entry.Result, &entry.Detail, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.OccurredAt = fromMillis(occurredAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}
