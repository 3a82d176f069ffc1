//go:build js && wasm

// Package main binds the template actions to the admin page it is loaded in.
package main

import (
	"context"
	"log"
	"syscall/js"

	entrypoint "github.com/louisbranch/templatedesk/internal/platform/cmd"
	"github.com/louisbranch/templatedesk/internal/platform/i18n"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/actions"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/api"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom/jsdom"
)

func main() {
	log.SetPrefix("[TEMPLATEDESK-WASM] ")
	err := entrypoint.RunWithTelemetry(context.Background(), entrypoint.ServiceWASM, run)
	if err != nil {
		log.Fatalf("bind template actions: %v", err)
	}
}

func run(ctx context.Context) error {
	location := js.Global().Get("location")
	doc := jsdom.NewDocument()

	client, err := api.NewClient(api.Config{
		BaseURL:   location.Get("origin").String(),
		CSRFToken: doc.Cookie(api.CSRFCookie),
		Referer:   location.Get("href").String(),
	})
	if err != nil {
		return err
	}

	printer := i18n.Printer(i18n.ResolveTag(js.Global().Get("navigator").Get("language").String()))
	ctrl, err := actions.New(actions.Config{
		API: client,
		Dialogs: jsdom.NewDialogs(doc, func(c actions.Choice) string {
			return printer.Sprintf(c.LabelKey())
		}),
		Page: jsdom.NewPage(doc),
	})
	if err != nil {
		return err
	}

	unbind := jsdom.Bind(ctx, doc, ctrl)
	defer unbind()
	// Handlers run for the life of the page.
	<-ctx.Done()
	return nil
}
