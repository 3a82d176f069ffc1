//go:build js && wasm

package jsdom

import (
	"context"
	"fmt"
	"sync"
	"syscall/js"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/actions"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
)

// Dialogs shows the action dialogs. It drives jQuery UI when the page loads
// it and falls back to native <dialog> elements otherwise.
type Dialogs struct {
	doc   *Document
	label func(actions.Choice) string

	mu      sync.Mutex
	release map[string]func()
}

// NewDialogs builds dialogs for doc. label gives the button text of a choice
// for jQuery UI; native dialogs use the buttons already in the page.
func NewDialogs(doc *Document, label func(actions.Choice) string) *Dialogs {
	if label == nil {
		label = func(c actions.Choice) string { return string(c) }
	}
	return &Dialogs{doc: doc, label: label, release: map[string]func(){}}
}

func (d *Dialogs) node(id string) (js.Value, error) {
	v := d.doc.v.Call("getElementById", id)
	if !present(v) {
		return js.Value{}, fmt.Errorf("element #%s not found", id)
	}
	return v, nil
}

// SetField sets an input's value.
func (d *Dialogs) SetField(id string, value string) error {
	v, err := d.node(id)
	if err != nil {
		return err
	}
	v.Set("value", value)
	return nil
}

// Field reads an input's value.
func (d *Dialogs) Field(id string) (string, error) {
	v, err := d.node(id)
	if err != nil {
		return "", err
	}
	return element{v: v}.Value(), nil
}

// Open shows the dialog and waits for a choice. Handlers stay attached until
// Close, so a dialog left open keeps ignoring extra clicks instead of calling
// released functions.
func (d *Dialogs) Open(ctx context.Context, dialog actions.Dialog) (actions.Choice, error) {
	v, err := d.node(dialog.ID)
	if err != nil {
		return "", err
	}
	d.detach(dialog.ID)

	picked := make(chan actions.Choice, 1)
	send := func(c actions.Choice) {
		select {
		case picked <- c:
		default:
		}
	}

	var funcs []js.Func
	var cleanup []func()
	// Escape and the title-bar close button dismiss the dialog.
	var dismiss js.Func
	last, hasDismiss := dialog.Dismissed()
	if hasDismiss {
		dismiss = js.FuncOf(func(js.Value, []js.Value) any {
			send(last)
			return nil
		})
		funcs = append(funcs, dismiss)
	}
	if ui := jqueryUI(); present(ui) {
		buttons := js.Global().Get("Object").New()
		for _, choice := range dialog.Choices {
			choice := choice
			fn := js.FuncOf(func(js.Value, []js.Value) any {
				send(choice)
				return nil
			})
			funcs = append(funcs, fn)
			buttons.Set(d.label(choice), fn)
		}
		opts := js.Global().Get("Object").New()
		opts.Set("modal", true)
		opts.Set("buttons", buttons)
		if hasDismiss {
			opts.Set("close", dismiss)
		}
		ui.Invoke(v).Call("dialog", opts)
	} else {
		for _, button := range dom.FindAll(element{v: v}, func(el dom.Element) bool {
			_, ok := el.Attr(dom.AttrChoice)
			return ok
		}) {
			choiceAttr, _ := button.Attr(dom.AttrChoice)
			choice := actions.Choice(choiceAttr)
			target := button.(element).v
			fn := js.FuncOf(func(js.Value, []js.Value) any {
				send(choice)
				return nil
			})
			funcs = append(funcs, fn)
			target.Call("addEventListener", "click", fn)
			cleanup = append(cleanup, func() { target.Call("removeEventListener", "click", fn) })
		}
		if hasDismiss {
			v.Call("addEventListener", "cancel", dismiss)
			cleanup = append(cleanup, func() { v.Call("removeEventListener", "cancel", dismiss) })
		}
		if present(v.Get("showModal")) && !v.Get("open").Bool() {
			v.Call("showModal")
		}
	}

	d.mu.Lock()
	d.release[dialog.ID] = func() {
		for _, undo := range cleanup {
			undo()
		}
		for _, fn := range funcs {
			fn.Release()
		}
	}
	d.mu.Unlock()

	select {
	case choice := <-picked:
		return choice, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close hides the dialog and detaches its handlers. A jQuery UI dialog is
// reset to no close callback first so closing it does not count as a choice.
func (d *Dialogs) Close(id string) {
	v, err := d.node(id)
	if err == nil {
		if ui := jqueryUI(); present(ui) {
			ui.Invoke(v).Call("dialog", "option", "close", js.Null())
			ui.Invoke(v).Call("dialog", "close")
		} else if present(v.Get("close")) {
			v.Call("close")
		}
	}
	d.detach(id)
}

func (d *Dialogs) detach(id string) {
	d.mu.Lock()
	release := d.release[id]
	delete(d.release, id)
	d.mu.Unlock()
	if release != nil {
		release()
	}
}

// jqueryUI returns jQuery when the page loads jQuery UI's dialog widget.
func jqueryUI() js.Value {
	jq := js.Global().Get("jQuery")
	if !present(jq) {
		return js.Undefined()
	}
	if fn := jq.Get("fn"); !present(fn) || !present(fn.Get("dialog")) {
		return js.Undefined()
	}
	return jq
}
