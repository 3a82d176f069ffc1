// Package dom describes the page contract the template actions rely on and
// captures view models from any document that honors it.
//
// The contract is deliberately small: trigger elements carry an objectid
// attribute; dialogs, fields, the dependency table and the error sink are
// found by id; table cells are found by class.
package dom

// Attributes and classes on trigger elements.
const (
	AttrObjectID = "objectid"
	// AttrChoice marks the buttons of a native <dialog> with the choice they
	// stand for.
	AttrChoice = "data-choice"

	ClassDisable = "disable"
	ClassRestore = "restore"
	ClassEdit    = "edit"
)

// Dialog containers.
const (
	DialogDisableConfirm = "dialog-disable-confirm-message"
	DialogEditInfo       = "dialog-edit-info"
)

// Inputs and content holders.
const (
	FieldEditName       = "edit-name"
	FieldName           = "id_name"
	FieldVersionManager = "id_version_manager"
	ContentXSD          = "xsd_content"
	ContentFilename     = "filename"
	ButtonResolve       = "resolve-dependencies"
)

// Dependency table and its cells.
const (
	TableDependencies   = "dependencies"
	ClassSchemaLocation = "schemaLocation"
	ClassDependency     = "dependency"
)

// ErrorDependencies receives the console's error text when resolution fails.
const ErrorDependencies = "errorDependencies"

// DialogFields lists the editable fields each dialog contains.
var DialogFields = map[string][]string{
	DialogEditInfo: {FieldEditName},
}
