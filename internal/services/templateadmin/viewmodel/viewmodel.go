// Package viewmodel holds the request data captured from the admin page at
// the moment a user triggers an action. Nothing here outlives one action.
package viewmodel

import "strings"

// NoDependency is the dependency value the console reads as "leave this
// schema location unresolved".
const NoDependency = "None"

// TemplateRef identifies one template row.
type TemplateRef struct {
	ObjectID string `validate:"required"`
}

// Validate reports whether the reference names a template.
func (r TemplateRef) Validate() error {
	return check(r)
}

// EditTrigger is what the edit action knows when it starts: the row id and
// the name currently shown for it.
type EditTrigger struct {
	ObjectID    string `validate:"required"`
	CurrentName string
}

// Validate reports whether the trigger names a template.
func (t EditTrigger) Validate() error {
	return check(t)
}

// EditRequest renames one template.
type EditRequest struct {
	ObjectID string `validate:"required"`
	NewName  string
}

// Validate reports whether the request names a template. Empty names are the
// console's to reject.
func (r EditRequest) Validate() error {
	return check(r)
}

// DependencyRow is one row of the dependency table.
type DependencyRow struct {
	SchemaLocation string
	Dependency     string
}

// DependencyResolutionRequest finalizes an uploaded schema. SchemaLocations[i]
// is resolved by Dependencies[i].
type DependencyResolutionRequest struct {
	XSDContent       string
	Name             string
	Filename         string
	SchemaLocations  []string
	Dependencies     []string
	VersionManagerID string
}

// AddRow appends one table row, keeping both sequences aligned.
func (r *DependencyResolutionRequest) AddRow(schemaLocation string, dependency string) {
	r.SchemaLocations = append(r.SchemaLocations, schemaLocation)
	r.Dependencies = append(r.Dependencies, dependency)
}

// Rows returns the table rows in order. It stops at the shorter sequence when
// the request is malformed; Validate reports that case.
func (r DependencyResolutionRequest) Rows() []DependencyRow {
	n := min(len(r.SchemaLocations), len(r.Dependencies))
	rows := make([]DependencyRow, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, DependencyRow{SchemaLocation: r.SchemaLocations[i], Dependency: r.Dependencies[i]})
	}
	return rows
}

// Validate checks that both sequences have one entry per row.
func (r DependencyResolutionRequest) Validate() error {
	return check(r)
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\u00a0", "&nbsp;",
)

// XSDMarkup renders raw schema text the way a browser serializes the text of
// the page element that displays it. The console unescapes it on receipt.
func XSDMarkup(raw string) string {
	return markupEscaper.Replace(raw)
}
