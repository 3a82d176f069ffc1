package viewmodel

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/templatedesk/internal/platform/errors"
)

func TestTemplateRefValidate(t *testing.T) {
	if err := (TemplateRef{ObjectID: "5a1b"}).Validate(); err != nil {
		t.Fatalf("valid ref: %v", err)
	}
	err := TemplateRef{}.Validate()
	if !errors.Is(err, apperrors.New(apperrors.CodeObjectIDRequired, "")) {
		t.Fatalf("empty ref error = %v, want object id required", err)
	}
}

func TestEditValidateAllowsEmptyName(t *testing.T) {
	if err := (EditRequest{ObjectID: "1"}).Validate(); err != nil {
		t.Fatalf("empty name should pass: %v", err)
	}
	if err := (EditTrigger{CurrentName: "x"}).Validate(); apperrors.CodeOf(err) != apperrors.CodeObjectIDRequired {
		t.Fatalf("trigger without id error = %v", err)
	}
}

func TestDependencyRequestRowsStayAligned(t *testing.T) {
	var req DependencyResolutionRequest
	req.AddRow("loc1", "depA")
	req.AddRow("loc2", "depB")

	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !reflect.DeepEqual(req.SchemaLocations, []string{"loc1", "loc2"}) {
		t.Fatalf("schema locations = %v", req.SchemaLocations)
	}
	if !reflect.DeepEqual(req.Dependencies, []string{"depA", "depB"}) {
		t.Fatalf("dependencies = %v", req.Dependencies)
	}
	want := []DependencyRow{{"loc1", "depA"}, {"loc2", "depB"}}
	if got := req.Rows(); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
}

func TestDependencyRequestEmptyIsValid(t *testing.T) {
	req := DependencyResolutionRequest{XSDContent: "&lt;xsd/&gt;", Name: "T1", Filename: "t1.xsd"}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate empty table: %v", err)
	}
	if len(req.Rows()) != 0 {
		t.Fatalf("expected no rows")
	}
}

func TestDependencyRequestRejectsMismatch(t *testing.T) {
	req := DependencyResolutionRequest{
		SchemaLocations: []string{"loc1", "loc2"},
		Dependencies:    []string{"depA"},
	}
	err := req.Validate()
	if apperrors.CodeOf(err) != apperrors.CodeDependencyRowsMismatch {
		t.Fatalf("mismatch error = %v", err)
	}
	if got := len(req.Rows()); got != 1 {
		t.Fatalf("rows on mismatch = %d, want 1", got)
	}
}

func TestXSDMarkup(t *testing.T) {
	raw := "<xs:include schemaLocation=\"a&b.xsd\"/>\u00a0"
	want := "&lt;xs:include schemaLocation=\"a&amp;b.xsd\"/&gt;&nbsp;"
	if got := XSDMarkup(raw); got != want {
		t.Fatalf("XSDMarkup() = %q, want %q", got, want)
	}
	if got := XSDMarkup("<xsd/>"); got != "&lt;xsd/&gt;" {
		t.Fatalf("XSDMarkup(<xsd/>) = %q", got)
	}
}
