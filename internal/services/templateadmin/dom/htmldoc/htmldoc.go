// Package htmldoc implements the page contract over a parsed HTML document,
// so a saved or rendered admin page can be captured without a browser.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/louisbranch/templatedesk/internal/services/templateadmin/dom"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// ElementByID returns the first element whose id attribute equals id.
func (d *Document) ElementByID(id string) dom.Element {
	if d == nil || d.root == nil {
		return nil
	}
	if n := findNode(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	}); n != nil {
		return element{n: n}
	}
	return nil
}

// Query returns every element matching match in document order.
func (d *Document) Query(match func(dom.Element) bool) []dom.Element {
	if d == nil || d.root == nil {
		return nil
	}
	var out []dom.Element
	walkElements(d.root, func(n *html.Node) {
		if el := (element{n: n}); match(el) {
			out = append(out, el)
		}
	})
	return out
}

type element struct {
	n *html.Node
}

func (e element) Tag() string {
	return e.n.Data
}

func (e element) Attr(name string) (string, bool) {
	return attr(e.n, name)
}

func (e element) Text() string {
	var b strings.Builder
	collectText(&b, e.n)
	return b.String()
}

func (e element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		writeMarkup(&buf, c)
	}
	return buf.String()
}

func (e element) Value() string {
	switch e.n.Data {
	case "textarea":
		return e.Text()
	case "select":
		return selectValue(e.n)
	default:
		v, _ := attr(e.n, "value")
		return v
	}
}

func (e element) Parent() dom.Element {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return element{n: p}
}

func (e element) Children() []dom.Element {
	var out []dom.Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, element{n: c})
		}
	}
	return out
}

func attr(n *html.Node, name string) (string, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func walkElements(n *html.Node, visit func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			visit(c)
		}
		walkElements(c, visit)
	}
}

func collectText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			collectText(b, c)
		}
	}
}

func selectValue(n *html.Node) string {
	var first *html.Node
	var selected *html.Node
	walkElements(n, func(opt *html.Node) {
		if opt.Data != "option" {
			return
		}
		if first == nil {
			first = opt
		}
		if _, ok := attr(opt, "selected"); ok && selected == nil {
			selected = opt
		}
	})
	if selected == nil {
		selected = first
	}
	if selected == nil {
		return ""
	}
	if v, ok := attr(selected, "value"); ok {
		return v
	}
	return element{n: selected}.Text()
}
