package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/templatedesk/internal/platform/icons"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

// Option is one entry of a select.
type Option struct {
	Value string
	Label string
}

// DependencyRow is one schema location and the templates that may resolve it.
type DependencyRow struct {
	SchemaLocation string
	Choices        []Option
	// Selected is the value chosen initially. Empty selects NoDependency.
	Selected string
}

// DependencyPage is the data behind the dependency resolution page.
type DependencyPage struct {
	Name     string
	Filename string
	// XSD is the raw schema text.
	XSD             string
	Rows            []DependencyRow
	VersionManagers []Option
	// VersionManager is the preselected version manager id.
	VersionManager string
}

// DependencyForm renders the uploaded schema, the dependency table, the
// resolve button and the error sink.
func DependencyForm(loc Localizer, page DependencyPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<h1>")
		w.text(loc.Sprintf("templateadmin.resolve.title"))
		w.raw("</h1>")

		w.raw("<input")
		w.attr("id", dom.FieldName)
		w.attr("name", "name")
		w.attr("value", page.Name)
		w.raw(">")
		w.raw("<span")
		w.attr("id", dom.ContentFilename)
		w.raw(">")
		w.text(page.Filename)
		w.raw("</span>")

		if len(page.VersionManagers) > 0 {
			w.raw("<select")
			w.attr("id", dom.FieldVersionManager)
			w.raw(`><option value=""></option>`)
			for _, opt := range page.VersionManagers {
				option(w, opt, opt.Value == page.VersionManager)
			}
			w.raw("</select>")
		}

		// A newline right after <pre> is dropped by parsers; this one keeps a
		// leading newline of the schema intact.
		w.raw("<pre")
		w.attr("id", dom.ContentXSD)
		w.raw(">\n")
		w.text(page.XSD)
		w.raw("</pre>")

		w.raw("<table")
		w.attr("id", dom.TableDependencies)
		w.raw("><tbody><tr><th>")
		w.text(loc.Sprintf("templateadmin.resolve.location"))
		w.raw("</th><th>")
		w.text(loc.Sprintf("templateadmin.resolve.dependency"))
		w.raw("</th></tr>")
		for _, row := range page.Rows {
			w.raw("<tr><td")
			w.attr("class", dom.ClassSchemaLocation)
			w.raw(">")
			w.text(row.SchemaLocation)
			w.raw("</td><td><select")
			w.attr("class", dom.ClassDependency)
			w.raw(">")
			option(w, Option{Value: viewmodel.NoDependency, Label: viewmodel.NoDependency}, row.Selected == "" || row.Selected == viewmodel.NoDependency)
			for _, opt := range rowChoices(row) {
				option(w, opt, opt.Value == row.Selected)
			}
			w.raw("</select></td></tr>")
		}
		w.raw("</tbody></table>")

		w.raw(`<button type="button"`)
		w.attr("id", dom.ButtonResolve)
		w.raw(">")
		w.icon(icons.IDResolve)
		w.text(loc.Sprintf("templateadmin.resolve.submit"))
		w.raw("</button>")

		w.raw("<div")
		w.attr("id", dom.ErrorDependencies)
		w.attr("class", "error")
		w.raw("></div>")
		return w.err
	})
}

func option(w *writer, opt Option, selected bool) {
	w.raw("<option")
	w.attr("value", opt.Value)
	if selected {
		w.raw(" selected")
	}
	w.raw(">")
	label := opt.Label
	if label == "" {
		label = opt.Value
	}
	w.text(label)
	w.raw("</option>")
}

// rowChoices drops NoDependency, which is always rendered first, and adds the
// selected value when no choice carries it.
func rowChoices(row DependencyRow) []Option {
	out := make([]Option, 0, len(row.Choices)+1)
	found := row.Selected == "" || row.Selected == viewmodel.NoDependency
	for _, opt := range row.Choices {
		if opt.Value == viewmodel.NoDependency {
			continue
		}
		if opt.Value == row.Selected {
			found = true
		}
		out = append(out, opt)
	}
	if !found {
		out = append(out, Option{Value: row.Selected})
	}
	return out
}
