package actions

import (
	"context"
	"sync"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/storage"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

type call struct {
	op      string
	ref     viewmodel.TemplateRef
	edit    viewmodel.EditRequest
	resolve viewmodel.DependencyResolutionRequest
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (f *fakeAPI) record(c call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.err
}

func (f *fakeAPI) Disable(_ context.Context, ref viewmodel.TemplateRef) error {
	return f.record(call{op: "disable", ref: ref})
}

func (f *fakeAPI) Restore(_ context.Context, ref viewmodel.TemplateRef) error {
	return f.record(call{op: "restore", ref: ref})
}

func (f *fakeAPI) Edit(_ context.Context, req viewmodel.EditRequest) error {
	return f.record(call{op: "edit", edit: req})
}

func (f *fakeAPI) ResolveDependencies(_ context.Context, req viewmodel.DependencyResolutionRequest) error {
	return f.record(call{op: "resolve", resolve: req})
}

// fakeDialogs answers every Open with choice. typed replaces field values
// when the dialog opens, as a user editing the input would.
type fakeDialogs struct {
	choice  Choice
	openErr error
	typed   map[string]string

	fields map[string]string
	// fieldsAtOpen snapshots the inputs as they were when the dialog showed.
	fieldsAtOpen map[string]string
	opened       []string
	closed       []string
	// onClose runs before a close is recorded.
	onClose func()
}

func (f *fakeDialogs) SetField(id string, value string) error {
	if f.fields == nil {
		f.fields = map[string]string{}
	}
	f.fields[id] = value
	return nil
}

func (f *fakeDialogs) Field(id string) (string, error) {
	return f.fields[id], nil
}

func (f *fakeDialogs) Open(_ context.Context, dialog Dialog) (Choice, error) {
	f.opened = append(f.opened, dialog.ID)
	f.fieldsAtOpen = map[string]string{}
	for k, v := range f.fields {
		f.fieldsAtOpen[k] = v
	}
	if f.openErr != nil {
		return "", f.openErr
	}
	for k, v := range f.typed {
		_ = f.SetField(k, v)
	}
	return f.choice, nil
}

func (f *fakeDialogs) Close(id string) {
	if f.onClose != nil {
		f.onClose()
	}
	f.closed = append(f.closed, id)
}

type fakePage struct {
	reloads   int
	navigated []string
	errors    map[string]string
}

func (f *fakePage) Reload() { f.reloads++ }

func (f *fakePage) Navigate(route string) { f.navigated = append(f.navigated, route) }

func (f *fakePage) ShowError(sinkID string, text string) {
	if f.errors == nil {
		f.errors = map[string]string{}
	}
	f.errors[sinkID] = text
}

type fakeJournal struct {
	outcomes []Outcome
	err      error
}

func (f *fakeJournal) Record(_ context.Context, outcome Outcome) error {
	f.outcomes = append(f.outcomes, outcome)
	return f.err
}

type fakeStore struct {
	entries []storage.Entry
}

func (f *fakeStore) AppendEntry(_ context.Context, entry storage.Entry) (storage.Entry, error) {
	entry.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeStore) ListEntries(_ context.Context, _ int) ([]storage.Entry, error) {
	return f.entries, nil
}
