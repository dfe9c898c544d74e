package markup

import (
	"strings"
	"testing"
)

func TestFromMarkdown_StreamOrder(t *testing.T) {
	src := "# Title\n\nIntro text.\n\n## Section\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\n```json\n{}\n```\n"
	doc, err := FromMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var tags []string
	for _, e := range doc.Elements() {
		if e.Tag() != "" {
			tags = append(tags, e.Tag())
		}
	}
	want := []string{"h1", "p", "h2", "table", "pre"}
	if strings.Join(tags, ",") != strings.Join(want, ",") {
		t.Errorf("expected tags %v, got %v", want, tags)
	}
}

func TestFromMarkdown_HeadingIDsAndRawAnchors(t *testing.T) {
	src := "#### <a name=\"infoObject\"></a>Info Object\n"
	doc, err := FromMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := doc.First()
	if h == nil || h.Tag() != "h4" {
		t.Fatalf("expected h4 as first element, got %+v", h)
	}
	if h.Text() != "Info Object" {
		t.Errorf("expected text %q, got %q", "Info Object", h.Text())
	}
	if id, ok := h.Attr("id"); !ok || id == "" {
		t.Errorf("expected generated heading id, got %q", id)
	}
	a := h.Find("a")
	if a == nil {
		t.Fatal("expected raw anchor to be preserved")
	}
	if name, _ := a.Attr("name"); name != "infoObject" {
		t.Errorf("expected anchor name %q, got %q", "infoObject", name)
	}
}

func TestElement_TextAndInnerHTML(t *testing.T) {
	doc, err := Parse(strings.NewReader("<p>Hello <em>there</em>.</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := doc.First()
	if p.Text() != "Hello there." {
		t.Errorf("expected text %q, got %q", "Hello there.", p.Text())
	}
	if p.InnerHTML() != "Hello <em>there</em>." {
		t.Errorf("expected inner html %q, got %q", "Hello <em>there</em>.", p.InnerHTML())
	}
	if p.OuterHTML() != "<p>Hello <em>there</em>.</p>" {
		t.Errorf("unexpected outer html %q", p.OuterHTML())
	}
}

func TestElement_FindAllDocumentOrder(t *testing.T) {
	doc, err := Parse(strings.NewReader("<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table := doc.First()
	if table.Tag() != "table" {
		t.Fatalf("expected table, got %q", table.Tag())
	}
	ths := table.FindAll("th")
	if len(ths) != 2 || ths[0].Text() != "A" || ths[1].Text() != "B" {
		t.Errorf("unexpected headers: %d", len(ths))
	}
	if got := len(table.FindAll("tr")); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
}

func TestDocument_Empty(t *testing.T) {
	doc, err := FromMarkdown(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.First() != nil {
		t.Errorf("expected empty stream")
	}
}
