// Package markup turns Markdown into a flat stream of markup elements.
//
// The stream is the sequence of top-level children of the rendered body,
// in document order. Elements are read-only views over parsed HTML nodes.
package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed markup document.
type Document struct {
	body *html.Node
}

// Parse reads HTML and returns its body as a Document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		body = doc
	}
	return &Document{body: body}, nil
}

// First returns the first element of the stream, or nil for an empty document.
func (d *Document) First() *Element {
	return wrap(d.body.FirstChild)
}

// Elements returns the whole stream.
func (d *Document) Elements() []*Element {
	var out []*Element
	for e := d.First(); e != nil; e = e.Next() {
		out = append(out, e)
	}
	return out
}

// Element is a single markup node. Text nodes are elements too; their Tag is empty.
type Element struct {
	node *html.Node
}

func wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{node: n}
}

// Tag returns the element's tag name, or "" for non-element nodes.
func (e *Element) Tag() string {
	if e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// Next returns the following sibling, or nil.
func (e *Element) Next() *Element {
	return wrap(e.node.NextSibling)
}

// Text returns the concatenated text of the element and its descendants, untrimmed.
func (e *Element) Text() string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(e.node)
	return buf.String()
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var buf strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		// Rendering into a strings.Builder cannot fail.
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	var buf strings.Builder
	_ = html.Render(&buf, e.node)
	return buf.String()
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Find returns the first descendant with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	return e.FindFunc(func(d *Element) bool { return d.Tag() == tag })
}

// FindFunc returns the first descendant, in document order, for which match returns true.
func (e *Element) FindFunc(match func(*Element) bool) *Element {
	var found *Element
	e.walk(func(d *Element) bool {
		if match(d) {
			found = d
			return false
		}
		return true
	})
	return found
}

// FindAll returns all descendants with the given tag in document order.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	e.walk(func(d *Element) bool {
		if d.Tag() == tag {
			out = append(out, d)
		}
		return true
	})
	return out
}

// walk visits descendants (not e itself) in document order until visit returns false.
func (e *Element) walk(visit func(*Element) bool) bool {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		d := &Element{node: c}
		if !visit(d) {
			return false
		}
		if !d.walk(visit) {
			return false
		}
	}
	return true
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
