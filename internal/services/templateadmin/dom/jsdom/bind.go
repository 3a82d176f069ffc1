//go:build js && wasm

package jsdom

import (
	"context"
	"log"
	"syscall/js"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/actions"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
)

// triggerSelector matches every element a click may start an action from.
const triggerSelector = "[" + dom.AttrObjectID + "], #" + dom.ButtonResolve

// Bind routes clicks on action triggers to ctrl. One delegated listener on the
// document covers rows added after binding. Each action runs on its own
// goroutine so the event loop never waits on a dialog or the network. The
// returned function removes the listener.
func Bind(ctx context.Context, doc *Document, ctrl *actions.Controller) func() {
	handler := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		target := args[0].Get("target")
		if !present(target) || !present(target.Get("closest")) {
			return nil
		}
		trigger := wrap(target.Call("closest", triggerSelector))
		if trigger == nil {
			return nil
		}
		dispatch(ctx, doc, ctrl, trigger)
		return nil
	})
	doc.v.Call("addEventListener", "click", handler)
	return func() {
		doc.v.Call("removeEventListener", "click", handler)
		handler.Release()
	}
}

// dispatch captures the view model while the event is current, then runs the
// action in the background.
func dispatch(ctx context.Context, doc *Document, ctrl *actions.Controller, trigger dom.Element) {
	click, err := dom.CaptureClick(doc, trigger)
	if err != nil {
		log.Printf("capture click: %v", err)
		return
	}
	if click.Action == dom.ActionNone {
		return
	}
	go ctrl.Run(ctx, click)
}
