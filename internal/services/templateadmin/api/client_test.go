package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/templatedesk/internal/platform/errors"
	"github.com/louisbranch/templatedesk/internal/services/templateadmin/viewmodel"
)

type recorded struct {
	method string
	uri    string
	header http.Header
	body   string
}

type console struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	body     string
}

func (c *console) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	c.requests = append(c.requests, recorded{method: r.Method, uri: r.URL.RequestURI(), header: r.Header.Clone(), body: string(raw)})
	status, body := c.status, c.body
	c.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, c *console, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(c)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	cfg.HTTPClient = srv.Client()
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	tests := []string{"", "   ", "admin", "://bad"}
	for _, base := range tests {
		if _, err := NewClient(Config{BaseURL: base}); err == nil {
			t.Fatalf("NewClient(%q) expected error", base)
		}
	}
}

func TestGetOperations(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client) error
		uri  string
	}{
		{
			name: "disable",
			call: func(c *Client) error {
				return c.Disable(context.Background(), viewmodel.TemplateRef{ObjectID: "5f1a"})
			},
			uri: "/admin/template/disable?id=5f1a",
		},
		{
			name: "restore",
			call: func(c *Client) error {
				return c.Restore(context.Background(), viewmodel.TemplateRef{ObjectID: "5f1a"})
			},
			uri: "/admin/template/restore?id=5f1a",
		},
		{
			name: "edit escapes title",
			call: func(c *Client) error {
				return c.Edit(context.Background(), viewmodel.EditRequest{ObjectID: "5f1a", NewName: "A&B #2"})
			},
			uri: "/admin/template/edit?id=5f1a&title=A%26B+%232",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &console{}
			client := newTestClient(t, c, Config{})
			if err := tc.call(client); err != nil {
				t.Fatalf("call: %v", err)
			}
			if len(c.requests) != 1 {
				t.Fatalf("requests = %d, want 1", len(c.requests))
			}
			got := c.requests[0]
			if got.method != http.MethodGet {
				t.Fatalf("method = %s", got.method)
			}
			if got.uri != tc.uri {
				t.Fatalf("uri = %s, want %s", got.uri, tc.uri)
			}
			if got.header.Get("X-Requested-With") != "XMLHttpRequest" {
				t.Fatalf("missing X-Requested-With header")
			}
		})
	}
}

func TestEditTitleRoundTrips(t *testing.T) {
	c := &console{}
	client := newTestClient(t, c, Config{})
	name := "Ação & <schema> 100%"
	if err := client.Edit(context.Background(), viewmodel.EditRequest{ObjectID: "1", NewName: name}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	u, err := url.ParseRequestURI(c.requests[0].uri)
	if err != nil {
		t.Fatalf("parse uri: %v", err)
	}
	if got := u.Query().Get("title"); got != name {
		t.Fatalf("title = %q, want %q", got, name)
	}
}

func TestAnyTwoHundredIsSuccess(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusNoContent} {
		c := &console{status: status}
		client := newTestClient(t, c, Config{})
		if err := client.Disable(context.Background(), viewmodel.TemplateRef{ObjectID: "1"}); err != nil {
			t.Fatalf("status %d: %v", status, err)
		}
	}
}

func TestNonTwoHundredCarriesBody(t *testing.T) {
	tests := []struct {
		status int
		code   apperrors.Code
	}{
		{status: http.StatusBadRequest, code: apperrors.CodeRejected},
		{status: http.StatusForbidden, code: apperrors.CodeUnauthorized},
		{status: http.StatusNotFound, code: apperrors.CodeNotFound},
		{status: http.StatusInternalServerError, code: apperrors.CodeServerFault},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := &console{status: tc.status, body: "<b>bad schema</b>\n"}
			client := newTestClient(t, c, Config{})
			err := client.Restore(context.Background(), viewmodel.TemplateRef{ObjectID: "9"})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.CodeOf(err); got != tc.code {
				t.Fatalf("code = %q, want %q", got, tc.code)
			}
			body, ok := ResponseBody(err)
			if !ok || body != "<b>bad schema</b>\n" {
				t.Fatalf("body = %q, %v", body, ok)
			}
			var respErr *ResponseError
			if !errors.As(err, &respErr) || respErr.StatusCode != tc.status || respErr.Operation != OpRestore {
				t.Fatalf("response error = %+v", respErr)
			}
		})
	}
}

func TestTransportFailureHasNoBody(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := NewClient(Config{BaseURL: base})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.Disable(context.Background(), viewmodel.TemplateRef{ObjectID: "1"})
	if got := apperrors.CodeOf(err); got != apperrors.CodeTransport {
		t.Fatalf("code = %q, want transport", got)
	}
	if _, ok := ResponseBody(err); ok {
		t.Fatal("transport failure should carry no body")
	}
}

func TestLocalValidationSendsNothing(t *testing.T) {
	c := &console{}
	client := newTestClient(t, c, Config{})

	if err := client.Disable(context.Background(), viewmodel.TemplateRef{}); apperrors.CodeOf(err) != apperrors.CodeObjectIDRequired {
		t.Fatalf("disable err = %v", err)
	}
	bad := viewmodel.DependencyResolutionRequest{SchemaLocations: []string{"a"}}
	if err := client.ResolveDependencies(context.Background(), bad); apperrors.CodeOf(err) != apperrors.CodeDependencyRowsMismatch {
		t.Fatalf("resolve err = %v", err)
	}
	if len(c.requests) != 0 {
		t.Fatalf("requests = %d, want 0", len(c.requests))
	}
}

func TestResolveDependenciesBody(t *testing.T) {
	c := &console{body: "{}"}
	client := newTestClient(t, c, Config{})

	var req viewmodel.DependencyResolutionRequest
	req.XSDContent = "<xsd/>"
	req.Name = "T1"
	req.Filename = "t1.xsd"
	req.AddRow("loc1", "depA")
	req.AddRow("loc2", "depB")
	if err := client.ResolveDependencies(context.Background(), req); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := c.requests[0]
	if got.method != http.MethodPost || got.uri != "/admin/template/resolve-dependencies" {
		t.Fatalf("request = %s %s", got.method, got.uri)
	}
	if ct := got.header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		t.Fatalf("content type = %q", ct)
	}
	form, err := url.ParseQuery(got.body)
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	want := url.Values{
		"xsd_content":       {"<xsd/>"},
		"name":              {"T1"},
		"filename":          {"t1.xsd"},
		"schemaLocations[]": {"loc1", "loc2"},
		"dependencies[]":    {"depA", "depB"},
	}
	if !reflect.DeepEqual(form, want) {
		t.Fatalf("form = %v, want %v", form, want)
	}
}

func TestResolveDependenciesRequiresJSON(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "json object", status: http.StatusOK, body: `{"redirect": "admin/templates"}`},
		{name: "no content", status: http.StatusNoContent},
		{name: "login page", status: http.StatusOK, body: "<html>login page</html>", wantErr: true},
		{name: "empty ok", status: http.StatusOK, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &console{status: tc.status, body: tc.body}
			client := newTestClient(t, c, Config{})
			err := client.ResolveDependencies(context.Background(), viewmodel.DependencyResolutionRequest{Name: "T1"})
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("resolve: %v", err)
				}
				return
			}
			if got := apperrors.CodeOf(err); got != apperrors.CodeUnexpectedResponse {
				t.Fatalf("code = %q, want %q", got, apperrors.CodeUnexpectedResponse)
			}
			body, ok := ResponseBody(err)
			if !ok || body != tc.body {
				t.Fatalf("body = %q, %v", body, ok)
			}
		})
	}
}

func TestNonJSONSuccessIsFineForGetOperations(t *testing.T) {
	c := &console{body: "<html>ok</html>"}
	client := newTestClient(t, c, Config{})
	if err := client.Disable(context.Background(), viewmodel.TemplateRef{ObjectID: "1"}); err != nil {
		t.Fatalf("disable: %v", err)
	}
}

func TestLargeErrorBodyIsKeptWhole(t *testing.T) {
	body := strings.Repeat("x", 1<<20+10)
	c := &console{status: http.StatusBadRequest, body: body}
	client := newTestClient(t, c, Config{})
	err := client.ResolveDependencies(context.Background(), viewmodel.DependencyResolutionRequest{Name: "T1"})
	got, ok := ResponseBody(err)
	if !ok || len(got) != len(body) {
		t.Fatalf("body length = %d, want %d", len(got), len(body))
	}
}

func TestResolveDependenciesVersionManager(t *testing.T) {
	req := viewmodel.DependencyResolutionRequest{VersionManagerID: "vm-1"}
	form := EncodeResolveForm(req)
	if got := form.Get(FormVersionManagerID); got != "vm-1" {
		t.Fatalf("version manager = %q", got)
	}
	if _, ok := EncodeResolveForm(viewmodel.DependencyResolutionRequest{})[FormVersionManagerID]; ok {
		t.Fatal("version manager should be omitted when empty")
	}
}

func TestSessionHeaders(t *testing.T) {
	c := &console{}
	client := newTestClient(t, c, Config{SessionID: "s3", CSRFToken: "tok"})
	if err := client.Disable(context.Background(), viewmodel.TemplateRef{ObjectID: "1"}); err != nil {
		t.Fatalf("disable: %v", err)
	}
	h := c.requests[0].header
	if h.Get(CSRFHeader) != "tok" {
		t.Fatalf("csrf header = %q", h.Get(CSRFHeader))
	}
	cookies := (&http.Request{Header: h}).Cookies()
	values := map[string]string{}
	for _, ck := range cookies {
		values[ck.Name] = ck.Value
	}
	if values[DefaultSessionCookie] != "s3" || values[CSRFCookie] != "tok" {
		t.Fatalf("cookies = %v", values)
	}
	if h.Get("Referer") != client.BaseURL().String() {
		t.Fatalf("referer = %q", h.Get("Referer"))
	}
}

func TestNoSessionHeadersWhenUnset(t *testing.T) {
	c := &console{}
	client := newTestClient(t, c, Config{})
	if err := client.Restore(context.Background(), viewmodel.TemplateRef{ObjectID: "1"}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	h := c.requests[0].header
	if h.Get("Cookie") != "" || h.Get(CSRFHeader) != "" {
		t.Fatalf("unexpected session headers: %v", h)
	}
}
