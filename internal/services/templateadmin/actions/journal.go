package actions

import (
	"context"
	"errors"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/storage"
)

// StoreJournal records outcomes in a journal store.
type StoreJournal struct {
	store storage.JournalStore
}

// NewStoreJournal wraps store.
func NewStoreJournal(store storage.JournalStore) *StoreJournal {
	return &StoreJournal{store: store}
}

// Record appends outcome to the store.
func (j *StoreJournal) Record(ctx context.Context, outcome Outcome) error {
	if j == nil || j.store == nil {
		return errors.New("journal store is not configured")
	}
	_, err := j.store.AppendEntry(ctx, storage.Entry{
		Operation: outcome.Operation,
		ObjectID:  outcome.ObjectID,
		Result:    string(outcome.Result),
		Detail:    outcome.Detail,
	})
	return err
}
