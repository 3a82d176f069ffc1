// Package storage defines persistence contracts for the action journal.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidEntry indicates a journal entry is missing required fields.
var ErrInvalidEntry = errors.New("invalid journal entry")

// Entry records how one template action ended.
type Entry struct {
	ID         int64
	Operation  string
	ObjectID   string
	Result     string
	Detail     string
	OccurredAt time.Time
}

// JournalStore persists action outcomes.
type JournalStore interface {
	// AppendEntry stores entry and returns it with its assigned id.
	AppendEntry(ctx context.Context, entry Entry) (Entry, error)
	// ListEntries returns up to limit entries, newest first. A limit of zero
	// or less returns every entry.
	ListEntries(ctx context.Context, limit int) ([]Entry, error)
}
