package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/templatedesk/internal/platform/icons"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
)

// TemplateRow is one template in the admin list.
type TemplateRow struct {
	ObjectID string
	Name     string
	Disabled bool
}

// ActionButtons renders the triggers for one template: edit, plus disable or
// restore depending on its state.
func ActionButtons(loc Localizer, row TemplateRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		trigger := func(class string, id icons.ID, labelKey string) {
			w.raw("<button")
			w.attr("type", "button")
			w.attr("class", classes("btn", class))
			w.attr(dom.AttrObjectID, row.ObjectID)
			w.raw(">")
			w.icon(id)
			w.text(loc.Sprintf(labelKey))
			w.raw("</button>")
		}
		trigger(dom.ClassEdit, icons.IDEdit, "templateadmin.action.edit")
		if row.Disabled {
			trigger(dom.ClassRestore, icons.IDRestore, "templateadmin.action.restore")
		} else {
			trigger(dom.ClassDisable, icons.IDDisable, "templateadmin.action.disable")
		}
		return w.err
	})
}

// TemplateTable renders the template list. The name cell comes first in each
// row so the edit trigger can read it.
func TemplateTable(loc Localizer, rows []TemplateRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<table class="templates"><tbody>`)
		for _, row := range rows {
			w.raw("<tr><td>")
			w.text(row.Name)
			w.raw(`</td><td class="actions">`)
			w.component(ctx, ActionButtons(loc, row))
			w.raw("</td></tr>")
		}
		w.raw("</tbody></table>")
		return w.err
	})
}
