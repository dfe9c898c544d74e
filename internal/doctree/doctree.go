// Package doctree rebuilds a heading hierarchy from a flat markup element
// stream and provides lookups over the resulting tree.
package doctree

import (
	"regexp"
	"strconv"

	"github.com/dgallion1/specgest/internal/markup"
)

// Kind is the role of a node in the tree.
type Kind int

const (
	KindRoot Kind = iota + 1
	KindHeader
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindHeader:
		return "header"
	case KindContent:
		return "content"
	}
	return ""
}

// SubType refines content nodes.
type SubType int

const (
	SubTypeNone SubType = iota
	SubTypeTable
	SubTypeCode
	SubTypeText
)

func (s SubType) String() string {
	switch s {
	case SubTypeTable:
		return "table"
	case SubTypeCode:
		return "code"
	case SubTypeText:
		return "text"
	}
	return ""
}

// Node is a section heading, a block of content, or the synthetic root.
// Nodes are built once by Build and never modified afterwards.
type Node struct {
	kind     Kind
	subType  SubType
	level    int
	elem     *markup.Element
	children []*Node
	parent   *Node

	header *HeaderInfo
	table  *Table
	code   *CodeBlock
}

func (n *Node) Kind() Kind { return n.kind }
func (n *Node) SubType() SubType { return n.subType }
func (n *Node) Level() int { return n.level }
func (n *Node) Element() *markup.Element { return n.elem }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Header() *HeaderInfo { return n.header }
func (n *Node) Table() *Table { return n.table }
func (n *Node) Code() *CodeBlock { return n.code }
func (n *Node) IsHeader() bool { return n.kind == KindHeader }
func (n *Node) IsContent() bool { return n.kind == KindContent }
func (n *Node) IsTable() bool { return n.kind == KindContent && n.subType == SubTypeTable }

// Text returns the element text. The root has none.
func (n *Node) Text() string {
	if n.elem == nil {
		return ""
	}
	return n.elem.Text()
}

// HTML returns the element's inner markup. The root has none.
func (n *Node) HTML() string {
	if n.elem == nil {
		return ""
	}
	return n.elem.InnerHTML()
}

var headingTag = regexp.MustCompile(`^h(\d)$`)

// HeadingLevel returns 1-9 for heading tags and -1 otherwise.
func HeadingLevel(tag string) int {
	m := headingTag.FindStringSubmatch(tag)
	if m == nil {
		return -1
	}
	level, _ := strconv.Atoi(m[1])
	return level
}

// Classify decides what node an element becomes when placed under parent.
// A nil parent means the element is the root.
func Classify(elem *markup.Element, parent *Node) (Kind, int, SubType) {
	if parent == nil {
		return KindRoot, 0, SubTypeNone
	}
	if level := HeadingLevel(elem.Tag()); level > 0 {
		return KindHeader, level, SubTypeNone
	}
	switch elem.Tag() {
	case "table":
		return KindContent, 0, SubTypeTable
	case "pre":
		return KindContent, 0, SubTypeCode
	default:
		return KindContent, 0, SubTypeText
	}
}
