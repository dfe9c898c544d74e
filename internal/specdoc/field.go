package specdoc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
)

// NameType distinguishes literal field names from name patterns.
type NameType string

const (
	NameFixed     NameType = "fixed"
	NamePatterned NameType = "patterned"
)

// Field is one row of a schema's field table.
type Field struct {
	Name      string    `json:"name"`
	NameType  NameType  `json:"nameType"`
	Required  bool      `json:"required"`
	ID        *string   `json:"id"`
	Type      FieldType `json:"type"`
	AppliesTo *string   `json:"appliesTo"`
	RichText  *string   `json:"richText"`
	URLs      []URL     `json:"urls"`
	// Description has the "Required." prefix and the rich text sentence removed.
	Description string `json:"description"`
}

// Column names differ between document versions.
var (
	nameColumns        = []string{"Field Name", "Field Pattern"}
	typeColumns        = []string{"Type"}
	appliesToColumns   = []string{"Validity", "Applies To"}
	descriptionColumns = []string{"Description"}
)

var (
	leadingRequired = regexp.MustCompile(`(?i)^required\.\s*`)
	// richTextSentence matches the closing "<format> syntax MAY be used for
	// rich text representation." sentence of a description. The same
	// wording mid-description is left alone.
	richTextSentence = regexp.MustCompile(`\.\s*(?P<format>[^.]*)\s+syntax[^.]*rich\stext\srepresentation\.\s*$`)
	richTextStrip    = regexp.MustCompile(`\.[^.]*\ssyntax[^.]*rich\stext\srepresentation\.\s*$`)
)

func newField(row *doctree.Row, nameType NameType, markdownURL string) (Field, error) {
	f := Field{NameType: nameType, URLs: []URL{}}
	if row.Anchor != "" {
		id := row.Anchor
		f.ID = &id
		f.URLs = append(f.URLs, URL{URL: markdownURL + "#" + id, Type: URLMarkdown})
	}
	if c := row.Value(nameColumns...); c != nil {
		f.Name = strings.TrimSpace(c.Text())
	}

	typeCell := row.Value(typeColumns...)
	if typeCell == nil {
		return f, fmt.Errorf("field %q: %w: no Type column", f.Name, ErrMalformedTypeCell)
	}
	ft, err := ParseFieldType(typeCell.Text())
	if err != nil {
		return f, fmt.Errorf("field %q: %w", f.Name, err)
	}
	f.Type = ft

	if c := row.Value(appliesToColumns...); c != nil {
		applies := strings.TrimSpace(c.Text())
		f.AppliesTo = &applies
	}

	var desc string
	if c := row.Value(descriptionColumns...); c != nil {
		desc = c.Text()
	}
	f.Required = IsRequired(desc)
	f.RichText = RichTextFormat(desc)
	f.Description = CleanDescription(desc)
	return f, nil
}

// IsRequired reports whether a field description opens with "required", in any case.
func IsRequired(description string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(description)), "required")
}

// RichTextFormat returns the markup dialect named by a description's rich
// text sentence, or nil when there is none.
func RichTextFormat(description string) *string {
	m := richTextSentence.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	format := strings.TrimSpace(m[richTextSentence.SubexpIndex("format")])
	if format == "" {
		return nil
	}
	return &format
}

// CleanDescription drops a leading "Required." and the rich text sentence,
// keeping the period that ends the preceding sentence.
func CleanDescription(description string) string {
	d := leadingRequired.ReplaceAllString(strings.TrimSpace(description), "")
	return richTextStrip.ReplaceAllString(d, ".")
}

func fieldsOf(table *doctree.Table, nameType NameType, markdownURL string) ([]Field, error) {
	fields := make([]Field, 0, len(table.Rows))
	for _, row := range table.Rows {
		f, err := newField(row, nameType, markdownURL)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// fieldsUnder collects the fields of every table directly under header.
// A nil header yields no fields.
func fieldsUnder(header *doctree.Node, nameType NameType, markdownURL string) ([]Field, error) {
	if header == nil {
		return nil, nil
	}
	var fields []Field
	for _, c := range header.Children() {
		if !c.IsTable() {
			continue
		}
		fs, err := fieldsOf(c.Table(), nameType, markdownURL)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fs...)
	}
	return fields, nil
}
