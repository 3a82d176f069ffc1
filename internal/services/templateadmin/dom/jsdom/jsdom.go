//go:build js && wasm

// Package jsdom binds the template actions to the live browser DOM.
package jsdom

import (
	"strings"
	"syscall/js"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
)

// Document is the browser document.
type Document struct {
	v js.Value
}

// NewDocument returns the global document.
func NewDocument() *Document {
	return &Document{v: js.Global().Get("document")}
}

// ElementByID returns the element with id, or nil.
func (d *Document) ElementByID(id string) dom.Element {
	return wrap(d.v.Call("getElementById", id))
}

// Cookie returns the value of the named cookie visible to scripts.
func (d *Document) Cookie(name string) string {
	for _, part := range strings.Split(d.v.Get("cookie").String(), ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && key == name {
			return value
		}
	}
	return ""
}

type element struct {
	v js.Value
}

func wrap(v js.Value) dom.Element {
	if !present(v) {
		return nil
	}
	return element{v: v}
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

func (e element) Tag() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e element) Text() string {
	return e.v.Get("textContent").String()
}

func (e element) InnerHTML() string {
	return e.v.Get("innerHTML").String()
}

func (e element) Value() string {
	v := e.v.Get("value")
	if !present(v) {
		return ""
	}
	return v.String()
}

func (e element) Parent() dom.Element {
	return wrap(e.v.Get("parentElement"))
}

func (e element) Children() []dom.Element {
	children := e.v.Get("children")
	n := children.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, element{v: children.Index(i)})
	}
	return out
}

// Same reports whether other wraps the same node. js.Value is not comparable
// with ==.
func (e element) Same(other dom.Element) bool {
	o, ok := other.(element)
	return ok && e.v.Equal(o.v)
}
