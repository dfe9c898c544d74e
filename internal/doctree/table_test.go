package doctree

import "testing"

const fieldsTable = `# Doc

| Field Name | Type | Validity | Description |
|---|---|---|---|
| <a name="infoTitle"></a>title | string | Any | Required. The title. |
| version | string | Any | The version. |
`

func TestNewTable_HeadersAndRows(t *testing.T) {
	root := buildMarkdown(t, fieldsTable)
	tn := root.Find(Query{Kind: KindContent})
	if tn == nil || !tn.IsTable() {
		t.Fatal("expected a table node")
	}
	table := tn.Table()
	if len(table.Headers) != 4 {
		t.Fatalf("expected 4 headers, got %d", len(table.Headers))
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 value rows (header row excluded), got %d", len(table.Rows))
	}
	if table.Rows[0].Anchor != "infoTitle" {
		t.Errorf("expected row anchor %q, got %q", "infoTitle", table.Rows[0].Anchor)
	}
	if table.Rows[1].Anchor != "" {
		t.Errorf("expected no anchor on second row, got %q", table.Rows[1].Anchor)
	}
	if got := table.Rows[0].Values[0].Text(); got != "title" {
		t.Errorf("expected first cell text %q, got %q", "title", got)
	}
}

func TestRow_ValueByHeaderAliases(t *testing.T) {
	root := buildMarkdown(t, fieldsTable)
	row := root.Find(Query{Kind: KindContent}).Table().Rows[1]

	tests := []struct {
		names []string
		want  string
	}{
		{[]string{"Field Name", "Field Pattern"}, "version"},
		{[]string{"Field Pattern", "Field Name"}, "version"},
		{[]string{"Applies To"}, "Any"},
		{[]string{"Version Added"}, ""},
		{[]string{"Validity", "Applies To"}, "Any"},
		{[]string{"Applies To", "Validity"}, "Any"},
		{[]string{"Description"}, "The version."},
	}
	for _, tt := range tests {
		c := row.Value(tt.names...)
		if tt.want == "" {
			if c != nil {
				t.Errorf("Value(%v): expected nil, got %q", tt.names, c.Text())
			}
			continue
		}
		if c == nil {
			t.Errorf("Value(%v): expected %q, got nil", tt.names, tt.want)
			continue
		}
		if c.Text() != tt.want {
			t.Errorf("Value(%v): expected %q, got %q", tt.names, tt.want, c.Text())
		}
	}
}

func TestRow_ValueValidityAliasOnAppliesToTable(t *testing.T) {
	root := buildMarkdown(t, "# Doc\n\n| Field Name | Type | Applies To | Description |\n|---|---|---|---|\n| schemas | string | components | The schemas. |\n")
	row := root.Find(Query{Kind: KindContent}).Table().Rows[0]
	if c := row.Value("Validity"); c == nil || c.Text() != "components" {
		t.Errorf("expected Validity to resolve to the Applies To column")
	}
}

func TestRow_ValueShortRowFallsThrough(t *testing.T) {
	root := buildHTML(t, `<h1 id="d">Doc</h1><table><tr><th>A</th><th>B</th></tr><tr><td>only</td></tr></table>`)
	row := root.Find(Query{Kind: KindContent}).Table().Rows[0]
	if c := row.Value("B", "A"); c == nil || c.Text() != "only" {
		t.Error("expected the scan to continue past a header beyond the row length")
	}
}

func TestRow_ValueShortRow(t *testing.T) {
	root := buildHTML(t, `<h1 id="d">Doc</h1><table><tr><th>A</th><th>B</th></tr><tr><td>only</td></tr></table>`)
	row := root.Find(Query{Kind: KindContent}).Table().Rows[0]
	if row.Value("B") != nil {
		t.Error("expected nil for a header beyond the row length")
	}
	if c := row.Value("A"); c == nil || c.Text() != "only" {
		t.Error("expected the aligned cell for A")
	}
}

func TestDump(t *testing.T) {
	root := buildMarkdown(t, fieldsTable)
	d := root.Dump()
	if d.Type != "root" || d.Text != nil {
		t.Errorf("expected root dump without text, got %q", d.Type)
	}
	h := d.Children[0]
	if h.Header == nil || h.Header.Level != 1 {
		t.Fatalf("expected header details on h1 dump")
	}
	tbl := h.Children[0]
	if tbl.SubType == nil || *tbl.SubType != "table" || tbl.Table == nil {
		t.Fatalf("expected table dump")
	}
	if len(tbl.Table.Lines) != 2 || *tbl.Table.Lines[0].Anchor != "infoTitle" {
		t.Errorf("expected two lines with the first anchored")
	}
}
