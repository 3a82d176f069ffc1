// Package xsdscan lists the external schema documents an XSD refers to, so
// the dependency table can be built before the schema is uploaded.
package xsdscan

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLSchemaNamespace is the namespace of XSD elements.
const XMLSchemaNamespace = "http://www.w3.org/2001/XMLSchema"

// Kind is the element that declared a reference.
type Kind string

const (
	KindImport   Kind = "import"
	KindInclude  Kind = "include"
	KindRedefine Kind = "redefine"
	KindOverride Kind = "override"
)

// Reference is one schemaLocation found in a schema.
type Reference struct {
	Kind           Kind
	SchemaLocation string
	// Namespace is set for imports.
	Namespace string
}

// ErrNotSchema is returned when the root element is not xs:schema.
var ErrNotSchema = errors.New("document root is not an XML Schema")

// Scan returns the references of the schema in document order. A location
// listed more than once is reported the first time only. Imports without a
// schemaLocation are skipped: there is nothing to resolve.
func Scan(r io.Reader) ([]Reference, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true

	var (
		refs    []Reference
		seen    = map[string]bool{}
		depth   int
		sawRoot bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				sawRoot = true
				if el.Name.Space != XMLSchemaNamespace || el.Name.Local != "schema" {
					return nil, fmt.Errorf("%w: found %s", ErrNotSchema, el.Name.Local)
				}
				continue
			}
			// References are only legal as children of xs:schema.
			if depth != 2 || el.Name.Space != XMLSchemaNamespace {
				continue
			}
			kind := Kind(el.Name.Local)
			switch kind {
			case KindImport, KindInclude, KindRedefine, KindOverride:
			default:
				continue
			}
			ref := Reference{Kind: kind}
			for _, a := range el.Attr {
				switch a.Name.Local {
				case "schemaLocation":
					ref.SchemaLocation = strings.TrimSpace(a.Value)
				case "namespace":
					ref.Namespace = a.Value
				}
			}
			if ref.SchemaLocation == "" || seen[ref.SchemaLocation] {
				continue
			}
			seen[ref.SchemaLocation] = true
			refs = append(refs, ref)
		case xml.EndElement:
			depth--
		}
	}
	if !sawRoot || depth != 0 {
		return nil, fmt.Errorf("read schema: %w", io.ErrUnexpectedEOF)
	}
	return refs, nil
}

// ScanString scans a schema held in memory.
func ScanString(schema string) ([]Reference, error) {
	return Scan(strings.NewReader(schema))
}

// Locations returns the schema locations of refs in order.
func Locations(refs []Reference) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.SchemaLocation)
	}
	return out
}
