// Package templates renders the page fragments the template actions read and
// drive: the action triggers, the two dialogs and the dependency page.
package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/louisbranch/templatedesk/internal/platform/branding"
	"github.com/louisbranch/templatedesk/internal/platform/icons"
)

// Localizer translates catalog keys. *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, a ...any) string
}

// writer accumulates the first write error so components read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, part := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, part)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (w *writer) attr(name string, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// icon references a symbol of the host's Lucide sprite.
func (w *writer) icon(id icons.ID) {
	w.raw(`<svg class="icon" aria-hidden="true"><use`)
	w.attr("href", "#"+icons.LucideSymbolID(icons.LucideNameOrDefault(id)))
	w.raw("></use></svg>")
}

func pageTitle(title string) string {
	if title == "" {
		return branding.AppName
	}
	return title + " | " + branding.AppName
}

func classes(names ...string) string {
	return strings.Join(names, " ")
}

// Document wraps body in a complete HTML page.
func Document(lang string, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<!doctype html><html")
		w.attr("lang", lang)
		w.raw(`><head><meta charset="utf-8"><title>`)
		w.text(pageTitle(title))
		w.raw("</title></head><body>")
		w.component(ctx, body)
		w.raw("</body></html>")
		return w.err
	})
}
