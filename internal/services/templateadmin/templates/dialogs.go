package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/actions"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
)

// Dialog renders a closed <dialog> for d. Each button carries the choice it
// stands for; editable fields come before the buttons.
func Dialog(loc Localizer, d actions.Dialog) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<dialog")
		w.attr("id", d.ID)
		w.attr("title", loc.Sprintf(d.TitleKey))
		w.raw(">")
		if d.PromptKey != "" {
			w.raw("<p>")
			w.text(loc.Sprintf(d.PromptKey))
			w.raw("</p>")
		}
		for _, field := range d.Fields {
			w.raw("<label")
			w.attr("for", field)
			w.raw(">")
			w.text(loc.Sprintf(actions.FieldLabelKey(field)))
			w.raw("</label><input")
			w.attr("id", field)
			w.attr("name", field)
			w.raw(` type="text">`)
		}
		w.raw("<menu>")
		for _, choice := range d.Choices {
			w.raw(`<button type="button"`)
			w.attr(dom.AttrChoice, string(choice))
			w.raw(">")
			w.text(loc.Sprintf(choice.LabelKey()))
			w.raw("</button>")
		}
		w.raw("</menu></dialog>")
		return w.err
	})
}

// ActionDialogs renders both action dialogs.
func ActionDialogs(loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.component(ctx, Dialog(loc, actions.DisableConfirmDialog))
		w.component(ctx, Dialog(loc, actions.EditInfoDialog))
		return w.err
	})
}
