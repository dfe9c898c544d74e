package doctree

// NodeDump is a serializable view of a Node and its subtree.
type NodeDump struct {
	Type     string      `json:"type"`
	SubType  *string     `json:"subType"`
	Level    int         `json:"level"`
	Text     *string     `json:"text"`
	HTML     string      `json:"html"`
	Children []*NodeDump `json:"children"`

	Header *HeaderDump `json:"header,omitempty"`
	Code   *CodeDump   `json:"code,omitempty"`
	Table  *TableDump  `json:"table,omitempty"`
}

type HeaderDump struct {
	Level  int     `json:"level"`
	ID     string  `json:"id"`
	Anchor *string `json:"anchor"`
}

type CodeDump struct {
	Language *string `json:"language"`
	Text     string  `json:"text"`
}

type CellDump struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

type LineDump struct {
	Anchor *string    `json:"anchor"`
	Values []CellDump `json:"values"`
}

type TableDump struct {
	Headers []CellDump `json:"headers"`
	Lines   []LineDump `json:"lines"`
}

// Dump converts the subtree rooted at n.
func (n *Node) Dump() *NodeDump {
	d := &NodeDump{
		Type:     n.kind.String(),
		Level:    n.level,
		Children: make([]*NodeDump, 0, len(n.children)),
	}
	if n.subType != SubTypeNone {
		d.SubType = optional(n.subType.String())
	}
	if n.elem != nil {
		text := n.elem.Text()
		d.Text = &text
		d.HTML = n.elem.OuterHTML()
	}
	for _, c := range n.children {
		d.Children = append(d.Children, c.Dump())
	}

	switch {
	case n.header != nil:
		d.Header = &HeaderDump{Level: n.header.Level, ID: n.header.ID, Anchor: optional(n.header.Anchor)}
	case n.code != nil:
		d.Code = &CodeDump{Language: optional(n.code.Language), Text: n.code.Text}
	case n.table != nil:
		d.Table = n.table.dump()
	}
	return d
}

func (t *Table) dump() *TableDump {
	d := &TableDump{Headers: cellDumps(t.Headers), Lines: make([]LineDump, 0, len(t.Rows))}
	for _, r := range t.Rows {
		d.Lines = append(d.Lines, LineDump{Anchor: optional(r.Anchor), Values: cellDumps(r.Values)})
	}
	return d
}

func cellDumps(cells []*Cell) []CellDump {
	out := make([]CellDump, 0, len(cells))
	for _, c := range cells {
		out = append(out, CellDump{Text: c.Text(), HTML: c.HTML()})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
