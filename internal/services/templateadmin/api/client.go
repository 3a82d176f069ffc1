// Package api is the HTTP client for the console's template endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/templatedesk/internal/platform/errors"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/routepath"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

const tracerName = "github.com/louisbranch/templatedesk/internal/services/templateadmin/api"

// Operation names, shared with the journal and span names.
const (
	OpDisable             = "disable"
	OpRestore             = "restore"
	OpEdit                = "edit"
	OpResolveDependencies = "resolve-dependencies"
)

// Form keys of the resolve-dependencies body. The list keys carry the
// bracket suffix the console's form parser expects.
const (
	FormXSDContent       = "xsd_content"
	FormName             = "name"
	FormFilename         = "filename"
	FormSchemaLocations  = "schemaLocations[]"
	FormDependencies     = "dependencies[]"
	FormVersionManagerID = "version_manager_id"
)

const (
	DefaultSessionCookie = "sessionid"
	CSRFCookie           = "csrftoken"
	CSRFHeader           = "X-CSRFToken"
)

// Config describes the console the client talks to.
type Config struct {
	// BaseURL is the console origin, e.g. http://localhost:8000.
	BaseURL string
	// SessionID is sent as the session cookie when set.
	SessionID         string
	SessionCookieName string
	// CSRFToken is sent as both the csrftoken cookie and the X-CSRFToken
	// header when set.
	CSRFToken string
	// Referer defaults to BaseURL.
	Referer    string
	HTTPClient *http.Client
}

// Client calls the template endpoints. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	base       *url.URL
	session    string
	cookieName string
	csrf       string
	referer    string
	client     *http.Client
	tracer     trace.Tracer
}

// ResponseError is a console answer the caller cannot accept: a non-2xx
// status, or a 2xx whose body is not the JSON the operation expects.
type ResponseError struct {
	Operation  string
	StatusCode int
	// Body is the raw response text.
	Body string
}

func (e *ResponseError) Error() string {
	if e.StatusCode >= 200 && e.StatusCode < 300 {
		return fmt.Sprintf("%s returned %d with a non-JSON body", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s returned %d %s", e.Operation, e.StatusCode, http.StatusText(e.StatusCode))
}

// ResponseBody returns the console's response text carried by err, if any.
// Transport failures carry none.
func ResponseBody(err error) (string, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Body, true
	}
	return "", false
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("base url is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cookieName := cfg.SessionCookieName
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	referer := cfg.Referer
	if referer == "" {
		referer = base.String()
	}
	return &Client{
		base:       base,
		session:    cfg.SessionID,
		cookieName: cookieName,
		csrf:       cfg.CSRFToken,
		referer:    referer,
		client:     httpClient,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the console origin the client resolves routes against.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// Disable soft-deletes a template.
func (c *Client) Disable(ctx context.Context, ref viewmodel.TemplateRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	return c.get(ctx, OpDisable, ref.ObjectID, routepath.DisableTemplate(ref.ObjectID))
}

// Restore re-enables a disabled template.
func (c *Client) Restore(ctx context.Context, ref viewmodel.TemplateRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	return c.get(ctx, OpRestore, ref.ObjectID, routepath.RestoreTemplate(ref.ObjectID))
}

// Edit renames a template.
func (c *Client) Edit(ctx context.Context, req viewmodel.EditRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.get(ctx, OpEdit, req.ObjectID, routepath.EditTemplate(req.ObjectID, req.NewName))
}

// ResolveDependencies posts an uploaded schema with its dependency choices.
// The console answers with JSON on success; its content is not used. A 2xx
// answer that is not JSON (a login page after an expired session) is an
// error carrying that body. 204 needs no body.
func (c *Client) ResolveDependencies(ctx context.Context, req viewmodel.DependencyResolutionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	body := EncodeResolveForm(req).Encode()
	httpReq, err := c.newRequest(ctx, http.MethodPost, routepath.ResolveDependencies, strings.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	httpReq.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	return c.do(ctx, OpResolveDependencies, "", httpReq,
		attribute.Int("templateadmin.rows", len(req.SchemaLocations)))
}

// EncodeResolveForm builds the form body of a resolve-dependencies call. List
// entries keep row order.
func EncodeResolveForm(req viewmodel.DependencyResolutionRequest) url.Values {
	form := url.Values{}
	form.Set(FormXSDContent, req.XSDContent)
	form.Set(FormName, req.Name)
	form.Set(FormFilename, req.Filename)
	for _, loc := range req.SchemaLocations {
		form.Add(FormSchemaLocations, loc)
	}
	for _, dep := range req.Dependencies {
		form.Add(FormDependencies, dep)
	}
	if req.VersionManagerID != "" {
		form.Set(FormVersionManagerID, req.VersionManagerID)
	}
	return form
}

func (c *Client) get(ctx context.Context, op string, objectID string, route string) error {
	req, err := c.newRequest(ctx, http.MethodGet, route, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "*/*")
	return c.do(ctx, op, objectID, req)
}

func (c *Client) newRequest(ctx context.Context, method string, route string, body io.Reader) (*http.Request, error) {
	target, err := routepath.ResolveAgainst(c.base, route)
	if err != nil {
		return nil, fmt.Errorf("resolve route %q: %w", route, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", route, err)
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", c.referer)
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: c.session})
	}
	if c.csrf != "" {
		req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: c.csrf})
		req.Header.Set(CSRFHeader, c.csrf)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, op string, objectID string, req *http.Request, attrs ...attribute.KeyValue) error {
	ctx, span := c.tracer.Start(ctx, "templateadmin.api/"+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.path", req.URL.Path),
	)
	if objectID != "" {
		span.SetAttributes(attribute.String("templateadmin.object_id", objectID))
	}
	span.SetAttributes(attrs...)

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return apperrors.Wrap(apperrors.CodeTransport, op+" request", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		span.RecordError(readErr)
	}
	code := apperrors.CodeForStatus(resp.StatusCode)
	if code == "" {
		if !expectsJSON(op) || resp.StatusCode == http.StatusNoContent || json.Valid(raw) {
			return nil
		}
		code = apperrors.CodeUnexpectedResponse
	}
	respErr := &ResponseError{Operation: op, StatusCode: resp.StatusCode, Body: string(raw)}
	span.RecordError(respErr)
	span.SetStatus(codes.Error, resp.Status)
	domainErr := apperrors.Wrap(code, op+" rejected", respErr)
	if objectID != "" {
		domainErr.Metadata = map[string]string{"object_id": objectID}
	}
	return domainErr
}

func expectsJSON(op string) bool {
	return op == OpResolveDependencies
}
