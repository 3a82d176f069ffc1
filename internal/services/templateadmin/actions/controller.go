// Package actions drives the template administration actions: confirm when
// needed, call the console, then reload, navigate or show the error.
package actions

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/api"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/routepath"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

const tracerName = "github.com/louisbranch/templatedesk/internal/services/templateadmin/actions"

// Config wires a Controller.
type Config struct {
	API     API
	Dialogs Dialogs
	Page    Page
	// Journal is optional.
	Journal Journal
	// Logger defaults to the standard logger.
	Logger *log.Logger
}

// Controller runs the four template actions. It keeps no state between calls,
// so handlers may run concurrently.
type Controller struct {
	api     API
	dialogs Dialogs
	page    Page
	journal Journal
	logger  *log.Logger
	tracer  trace.Tracer
}

// New validates cfg and builds a controller.
func New(cfg Config) (*Controller, error) {
	if cfg.API == nil {
		return nil, errors.New("api is required")
	}
	if cfg.Dialogs == nil {
		return nil, errors.New("dialogs are required")
	}
	if cfg.Page == nil {
		return nil, errors.New("page is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		api:     cfg.API,
		dialogs: cfg.Dialogs,
		page:    cfg.Page,
		journal: cfg.Journal,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// DisableTemplate asks for confirmation and disables the template on Yes.
// The dialog closes once the call is made. A failed call leaves the page as it
// is.
func (c *Controller) DisableTemplate(ctx context.Context, ref viewmodel.TemplateRef) Outcome {
	ctx, span := c.start(ctx, api.OpDisable, ref.ObjectID)
	defer span.End()

	if err := ref.Validate(); err != nil {
		return c.finish(ctx, span, failed(api.OpDisable, ref.ObjectID, err))
	}
	choice, err := c.dialogs.Open(ctx, DisableConfirmDialog)
	if err != nil {
		return c.finish(ctx, span, failed(api.OpDisable, ref.ObjectID, fmt.Errorf("open dialog: %w", err)))
	}
	if choice != ChoiceYes {
		c.dialogs.Close(DisableConfirmDialog.ID)
		return c.finish(ctx, span, cancelled(api.OpDisable, ref.ObjectID))
	}
	err = c.api.Disable(ctx, ref)
	c.dialogs.Close(DisableConfirmDialog.ID)
	if err != nil {
		return c.finish(ctx, span, failed(api.OpDisable, ref.ObjectID, err))
	}
	c.page.Reload()
	return c.finish(ctx, span, Outcome{Operation: api.OpDisable, ObjectID: ref.ObjectID, Result: ResultReloaded})
}

// RestoreTemplate re-enables the template without asking.
func (c *Controller) RestoreTemplate(ctx context.Context, ref viewmodel.TemplateRef) Outcome {
	ctx, span := c.start(ctx, api.OpRestore, ref.ObjectID)
	defer span.End()

	if err := c.api.Restore(ctx, ref); err != nil {
		return c.finish(ctx, span, failed(api.OpRestore, ref.ObjectID, err))
	}
	c.page.Reload()
	return c.finish(ctx, span, Outcome{Operation: api.OpRestore, ObjectID: ref.ObjectID, Result: ResultReloaded})
}

// EditInformation shows the edit dialog pre-filled with the displayed name and
// renames the template on Ok. The dialog stays open after Ok; the reload
// replaces it.
func (c *Controller) EditInformation(ctx context.Context, trigger viewmodel.EditTrigger) Outcome {
	ctx, span := c.start(ctx, api.OpEdit, trigger.ObjectID)
	defer span.End()

	if err := trigger.Validate(); err != nil {
		return c.finish(ctx, span, failed(api.OpEdit, trigger.ObjectID, err))
	}
	if err := c.dialogs.SetField(dom.FieldEditName, trigger.CurrentName); err != nil {
		return c.finish(ctx, span, failed(api.OpEdit, trigger.ObjectID, fmt.Errorf("prefill name: %w", err)))
	}
	choice, err := c.dialogs.Open(ctx, EditInfoDialog)
	if err != nil {
		return c.finish(ctx, span, failed(api.OpEdit, trigger.ObjectID, fmt.Errorf("open dialog: %w", err)))
	}
	if choice != ChoiceOk {
		c.dialogs.Close(EditInfoDialog.ID)
		return c.finish(ctx, span, cancelled(api.OpEdit, trigger.ObjectID))
	}
	name, err := c.dialogs.Field(dom.FieldEditName)
	if err != nil {
		return c.finish(ctx, span, failed(api.OpEdit, trigger.ObjectID, fmt.Errorf("read name: %w", err)))
	}
	if err := c.api.Edit(ctx, viewmodel.EditRequest{ObjectID: trigger.ObjectID, NewName: name}); err != nil {
		return c.finish(ctx, span, failed(api.OpEdit, trigger.ObjectID, err))
	}
	c.page.Reload()
	return c.finish(ctx, span, Outcome{Operation: api.OpEdit, ObjectID: trigger.ObjectID, Result: ResultReloaded})
}

// ResolveDependencies submits the captured dependency table. On success the
// page moves to the template list; when the console rejects the request its
// response text replaces the content of the error sink.
func (c *Controller) ResolveDependencies(ctx context.Context, req viewmodel.DependencyResolutionRequest) Outcome {
	ctx, span := c.start(ctx, api.OpResolveDependencies, "")
	defer span.End()

	err := c.api.ResolveDependencies(ctx, req)
	if err == nil {
		c.page.Navigate(routepath.Templates)
		return c.finish(ctx, span, Outcome{Operation: api.OpResolveDependencies, Result: ResultNavigated, Detail: routepath.Templates})
	}
	if body, ok := api.ResponseBody(err); ok {
		c.page.ShowError(dom.ErrorDependencies, body)
	}
	return c.finish(ctx, span, failed(api.OpResolveDependencies, "", err))
}

// Run performs the action a click captured. ActionNone does nothing and is not
// journaled.
func (c *Controller) Run(ctx context.Context, click dom.Click) Outcome {
	switch click.Action {
	case dom.ActionDisable:
		return c.DisableTemplate(ctx, click.Ref)
	case dom.ActionRestore:
		return c.RestoreTemplate(ctx, click.Ref)
	case dom.ActionEdit:
		return c.EditInformation(ctx, click.Edit)
	case dom.ActionResolve:
		return c.ResolveDependencies(ctx, click.Resolve)
	default:
		return Outcome{Result: ResultCancelled}
	}
}

func (c *Controller) start(ctx context.Context, op string, objectID string) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "templateadmin.actions/"+op)
	if objectID != "" {
		span.SetAttributes(attribute.String("templateadmin.object_id", objectID))
	}
	return ctx, span
}

func (c *Controller) finish(ctx context.Context, span trace.Span, outcome Outcome) Outcome {
	span.SetAttributes(attribute.String("templateadmin.result", string(outcome.Result)))
	if outcome.Err != nil {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, string(outcome.Result))
		c.logger.Printf("%s failed: %v", outcome.Operation, outcome.Err)
	}
	if c.journal != nil {
		if err := c.journal.Record(context.WithoutCancel(ctx), outcome); err != nil {
			c.logger.Printf("journal %s: %v", outcome.Operation, err)
		}
	}
	return outcome
}

func failed(op string, objectID string, err error) Outcome {
	return Outcome{Operation: op, ObjectID: objectID, Result: ResultFailed, Detail: err.Error(), Err: err}
}

func cancelled(op string, objectID string) Outcome {
	return Outcome{Operation: op, ObjectID: objectID, Result: ResultCancelled}
}
