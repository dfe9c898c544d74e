package doctree

import "github.com/dgallion1/specgest/internal/markup"

// Table is a markup table split into header cells and value rows.
type Table struct {
	Headers []*Cell
	Rows    []*Row
}

// Row is one body row of a Table.
type Row struct {
	table *Table
	// Anchor is the name of the first <a> in the row when it carries one.
	Anchor string
	Values []*Cell
}

// Cell is a single th or td.
type Cell struct {
	elem *markup.Element
}

// Text returns the cell text, untrimmed.
func (c *Cell) Text() string { return c.elem.Text() }

// HTML returns the cell's inner markup.
func (c *Cell) HTML() string { return c.elem.InnerHTML() }

// NewTable reads header cells and value rows from a table element.
func NewTable(e *markup.Element) *Table {
	t := &Table{}
	for _, th := range e.FindAll("th") {
		t.Headers = append(t.Headers, &Cell{elem: th})
	}
	for _, tr := range e.FindAll("tr") {
		row := newRow(tr, t)
		// Header rows are tr elements too; they carry no td.
		if len(row.Values) > 0 {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

func newRow(tr *markup.Element, t *Table) *Row {
	row := &Row{table: t}
	if a := tr.Find("a"); a != nil {
		row.Anchor, _ = a.Attr("name")
	}
	for _, td := range tr.FindAll("td") {
		row.Values = append(row.Values, &Cell{elem: td})
	}
	return row
}

// headerAliases lists header names that label the same column across
// document versions.
var headerAliases = map[string][]string{
	"Applies To": {"Validity"},
	"Validity":   {"Applies To"},
}

// Value returns the cell under the first header matching one of names.
// Names are tried in order, each followed by its aliases. A header whose
// column is missing from a short row is skipped. It returns nil when
// nothing matches.
func (r *Row) Value(names ...string) *Cell {
	for _, name := range names {
		for _, candidate := range append([]string{name}, headerAliases[name]...) {
			if c := r.cellUnder(candidate); c != nil {
				return c
			}
		}
	}
	return nil
}

func (r *Row) cellUnder(name string) *Cell {
	for i, h := range r.table.Headers {
		if h.Text() != name {
			continue
		}
		if i < len(r.Values) {
			return r.Values[i]
		}
		break
	}
	return nil
}
