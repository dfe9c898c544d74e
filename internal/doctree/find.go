package doctree

import "regexp"

// Query selects nodes. Zero-valued criteria are ignored; the rest must all hold.
type Query struct {
	// Text must equal the node text exactly.
	Text string
	// Pattern must match somewhere in the node text.
	Pattern *regexp.Regexp
	Kind    Kind
	Level   int
}

func (q Query) matches(n *Node) bool {
	if q.Kind != 0 && q.Kind != n.kind {
		return false
	}
	if q.Level != 0 && q.Level != n.level {
		return false
	}
	if q.Text != "" && q.Text != n.Text() {
		return false
	}
	if q.Pattern != nil && !q.Pattern.MatchString(n.Text()) {
		return false
	}
	return true
}

// Find returns the first node in n's subtree, n included, that matches q.
// Nodes are visited depth first, each node before its children.
func (n *Node) Find(q Query) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if q.matches(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindHeader returns the first heading with the given text. Level 0 matches any level.
func (n *Node) FindHeader(text string, level int) *Node {
	return n.Find(Query{Text: text, Kind: KindHeader, Level: level})
}

// Walk visits n's subtree in document order until visit returns false.
func (n *Node) Walk(visit func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(top) {
			return
		}
		for i := len(top.children) - 1; i >= 0; i-- {
			stack = append(stack, top.children[i])
		}
	}
}

// ContentBeforeHeader returns the leading content children, stopping at the first heading.
func (n *Node) ContentBeforeHeader() []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.kind != KindContent {
			break
		}
		out = append(out, c)
	}
	return out
}
