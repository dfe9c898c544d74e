package doctree

import (
	"strings"

	"github.com/dgallion1/specgest/internal/markup"
)

// Build walks the element stream from the first h1 and nests every
// retained element under the heading it belongs to.
//
// Content attaches to the most recent heading. A heading attaches to the
// nearest preceding heading with a strictly smaller level, or to the root.
func Build(doc *markup.Document) *Node {
	root := &Node{kind: KindRoot}
	current := root

	for e := firstHeading(doc); e != nil; e = e.Next() {
		if excluded(e) {
			continue
		}
		n := newNode(e, current)
		if n.kind == KindHeader {
			n.parent = parentFor(n.level, current)
			current = n
		} else {
			n.parent = current
		}
		n.parent.children = append(n.parent.children, n)
	}
	return root
}

// firstHeading returns the first top-level h1, falling back to the start
// of the stream for documents without one.
func firstHeading(doc *markup.Document) *markup.Element {
	for e := doc.First(); e != nil; e = e.Next() {
		if e.Tag() == "h1" {
			return e
		}
	}
	return doc.First()
}

// excluded reports elements that carry no text, such as the line breaks
// between rendered blocks.
func excluded(e *markup.Element) bool {
	return strings.TrimSpace(e.Text()) == ""
}

// parentFor walks up from candidate until it finds the node a heading of
// the given level belongs under. The root has level 0, so the walk stops there.
func parentFor(level int, candidate *Node) *Node {
	for {
		switch {
		case level > candidate.level:
			return candidate
		case level == candidate.level:
			return candidate.parent
		default:
			candidate = candidate.parent
		}
	}
}

func newNode(e *markup.Element, current *Node) *Node {
	kind, level, sub := Classify(e, current)
	n := &Node{kind: kind, subType: sub, level: level, elem: e}
	switch kind {
	case KindHeader:
		n.header = newHeaderInfo(e, level)
	case KindContent:
		switch sub {
		case SubTypeTable:
			n.table = NewTable(e)
		case SubTypeCode:
			n.code = newCodeBlock(e)
		}
	}
	return n
}
