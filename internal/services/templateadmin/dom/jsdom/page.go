//go:build js && wasm

package jsdom

import (
	"log"
	"net/url"
	"syscall/js"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/routepath"
)

// Page applies action effects to the current browser page.
type Page struct {
	doc *Document
}

// NewPage returns the page for doc.
func NewPage(doc *Document) *Page {
	return &Page{doc: doc}
}

func location() js.Value {
	return js.Global().Get("location")
}

// Reload reloads the page.
func (p *Page) Reload() {
	location().Call("reload")
}

// Navigate resolves route against the current page and goes there.
func (p *Page) Navigate(route string) {
	current, err := url.Parse(location().Get("href").String())
	if err != nil {
		log.Printf("navigate: parse current url: %v", err)
		return
	}
	target, err := routepath.ResolveAgainst(current, route)
	if err != nil {
		log.Printf("navigate: resolve %q: %v", route, err)
		return
	}
	location().Set("href", target.String())
}

// ShowError replaces the sink's content with text. The text is not parsed as
// markup.
func (p *Page) ShowError(sinkID string, text string) {
	sink := p.doc.v.Call("getElementById", sinkID)
	if !present(sink) {
		return
	}
	sink.Set("textContent", text)
}
