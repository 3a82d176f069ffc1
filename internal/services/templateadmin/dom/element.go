package dom

import "strings"

// Element is the read-only view of a page element the capture code needs.
// Implementations return a nil Element, never a typed nil, when there is no
// parent.
type Element interface {
	// Tag returns the lower-case tag name.
	Tag() string
	Attr(name string) (string, bool)
	// Text returns the concatenated text of the element and its descendants.
	Text() string
	// InnerHTML returns the serialized markup of the element's children.
	InnerHTML() string
	// Value returns the current value of a form control.
	Value() string
	Parent() Element
	// Children returns element children in document order.
	Children() []Element
}

// Document finds elements by id.
type Document interface {
	ElementByID(id string) Element
}

// HasClass reports whether el's class attribute lists class.
func HasClass(el Element, class string) bool {
	if el == nil {
		return false
	}
	value, ok := el.Attr("class")
	if !ok {
		return false
	}
	for _, field := range strings.Fields(value) {
		if field == class {
			return true
		}
	}
	return false
}

// FindAll returns every descendant of root, in document order, for which
// match is true. root itself is not considered.
func FindAll(root Element, match func(Element) bool) []Element {
	if root == nil {
		return nil
	}
	var out []Element
	var walk func(Element)
	walk = func(el Element) {
		for _, child := range el.Children() {
			if match(child) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}

// FindFirst returns the first descendant of root for which match is true.
func FindFirst(root Element, match func(Element) bool) Element {
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if match(child) {
			return child
		}
		if found := FindFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

// FirstSibling returns the first element sharing el's parent, other than el.
func FirstSibling(el Element) Element {
	if el == nil {
		return nil
	}
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	for _, child := range parent.Children() {
		if !sameElement(child, el) {
			return child
		}
	}
	return nil
}

// Identity lets implementations whose Element values are rebuilt on every
// call (e.g. wrappers around JS handles) say when two wrappers denote the same
// node.
type Identity interface {
	Same(other Element) bool
}

func sameElement(a, b Element) bool {
	if ia, ok := a.(Identity); ok {
		return ia.Same(b)
	}
	return a == b
}

func byTag(tag string) func(Element) bool {
	return func(el Element) bool { return el.Tag() == tag }
}

func byClass(class string) func(Element) bool {
	return func(el Element) bool { return HasClass(el, class) }
}
