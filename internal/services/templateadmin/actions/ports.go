package actions

import (
	"context"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

// API is the console surface the controller calls. api.Client satisfies it.
type API interface {
	Disable(ctx context.Context, ref viewmodel.TemplateRef) error
	Restore(ctx context.Context, ref viewmodel.TemplateRef) error
	Edit(ctx context.Context, req viewmodel.EditRequest) error
	ResolveDependencies(ctx context.Context, req viewmodel.DependencyResolutionRequest) error
}

// Choice is the button a user picked in a dialog.
type Choice string

const (
	ChoiceYes    Choice = "yes"
	ChoiceNo     Choice = "no"
	ChoiceOk     Choice = "ok"
	ChoiceCancel Choice = "cancel"
)

// LabelKey is the catalog key of the button label.
func (c Choice) LabelKey() string {
	return "templateadmin.button." + string(c)
}

// Dialog describes a modal dialog. Choices are listed in button order; the
// first one is the affirmative choice.
type Dialog struct {
	ID        string
	TitleKey  string
	PromptKey string
	// Fields lists editable inputs shown in the dialog, by id.
	Fields  []string
	Choices []Choice
}

// Dismissed is the choice a dialog closed without pressing a button stands
// for: the last one, the negative choice. ok is false for a dialog with no
// choices.
func (d Dialog) Dismissed() (choice Choice, ok bool) {
	if len(d.Choices) == 0 {
		return "", false
	}
	return d.Choices[len(d.Choices)-1], true
}

var (
	DisableConfirmDialog = Dialog{
		ID:        dom.DialogDisableConfirm,
		TitleKey:  "templateadmin.disable.title",
		PromptKey: "templateadmin.disable.prompt",
		Choices:   []Choice{ChoiceYes, ChoiceNo},
	}
	EditInfoDialog = Dialog{
		ID:       dom.DialogEditInfo,
		TitleKey: "templateadmin.edit.title",
		Fields:   dom.DialogFields[dom.DialogEditInfo],
		Choices:  []Choice{ChoiceOk, ChoiceCancel},
	}
)

var fieldLabelKeys = map[string]string{
	dom.FieldEditName: "templateadmin.edit.name",
}

// FieldLabelKey is the catalog key of a dialog field's label. Unknown fields
// are their own label.
func FieldLabelKey(field string) string {
	if key, ok := fieldLabelKeys[field]; ok {
		return key
	}
	return field
}

// Dialogs shows modal dialogs.
type Dialogs interface {
	// SetField sets the value of an input before its dialog opens.
	SetField(id string, value string) error
	// Field reads the current value of an input.
	Field(id string) (string, error)
	// Open shows the dialog and blocks until the user picks a choice. The
	// dialog stays open; the controller decides whether to close it.
	Open(ctx context.Context, dialog Dialog) (Choice, error)
	Close(id string)
}

// Page applies the visible effects of a finished action.
type Page interface {
	Reload()
	// Navigate goes to route, resolved against the current page.
	Navigate(route string)
	// ShowError replaces the content of the sink with text, rendered as text.
	ShowError(sinkID string, text string)
}

// Journal records action outcomes.
type Journal interface {
	Record(ctx context.Context, outcome Outcome) error
}
