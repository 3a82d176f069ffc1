package icons

import "strings"

// ID identifies an icon.
type ID string

const (
	IDEdit    ID = "edit"
	IDDisable ID = "disable"
	IDRestore ID = "restore"
	IDResolve ID = "resolve"
	IDSchema  ID = "schema"
	IDAlert   ID = "alert"
)

// Definition describes a catalog entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: IDEdit, Name: "Edit", Description: "Rename a template."},
	{ID: IDDisable, Name: "Disable", Description: "Disable a template after confirmation."},
	{ID: IDRestore, Name: "Restore", Description: "Re-enable a disabled template."},
	{ID: IDResolve, Name: "Resolve", Description: "Submit dependency choices for an uploaded schema."},
	{ID: IDSchema, Name: "Schema", Description: "An XML Schema document or location."},
	{ID: IDAlert, Name: "Alert", Description: "Console error feedback."},
}

// Catalog returns a copy of the icon catalog definitions.
func Catalog() []Definition {
	result := make([]Definition, len(catalog))
	copy(result, catalog)
	return result
}

// CatalogMarkdown renders the icon catalog as markdown.
func CatalogMarkdown() string {
	var builder strings.Builder
	builder.WriteString("# Icon Catalog\n\n")
	builder.WriteString("| Icon ID | Lucide | Name | Description |\n")
	builder.WriteString("| --- | --- | --- | --- |\n")
	for _, def := range catalog {
		builder.WriteString("| ")
		builder.WriteString(string(def.ID))
		builder.WriteString(" | ")
		builder.WriteString(LucideNameOrDefault(def.ID))
		builder.WriteString(" | ")
		builder.WriteString(def.Name)
		builder.WriteString(" | ")
		builder.WriteString(def.Description)
		builder.WriteString(" |\n")
	}
	return builder.String()
}
