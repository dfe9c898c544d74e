package specdoc

import (
	"fmt"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
)

// Schema is one object definition found under the "Schema" heading.
type Schema struct {
	Name        string  `json:"name"`
	Extensible  bool    `json:"extensible"`
	Root        bool    `json:"root"`
	URLs        []URL   `json:"urls"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields"`
}

// Field table headings inside a schema section.
const (
	fixedFieldsHeading      = "Fixed Fields"
	patternedFieldsHeading  = "Patterned Fields"
	patternedObjectsHeading = "Patterned Objects"
	extensionsHeading       = "Specification Extensions"
	rootMarker              = "This is the root"
)

func (a *assembly) extractSchema(node *doctree.Node) (Schema, error) {
	s := Schema{
		Name:        node.Text(),
		Description: joinHTML(node.ContentBeforeHeader()),
		URLs:        []URL{{URL: a.markdownURL + "#" + node.Header().Fragment(), Type: URLMarkdown}},
	}
	s.Root = strings.Contains(s.Description, rootMarker)

	fixed, err := fieldsUnder(node.FindHeader(fixedFieldsHeading, 0), NameFixed, a.markdownURL)
	if err != nil {
		return s, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	patterned, err := a.patternedFields(node)
	if err != nil {
		return s, fmt.Errorf("schema %q: %w", s.Name, err)
	}

	// Sources are concatenated as-is; a name defined twice stays twice.
	s.Fields = make([]Field, 0, len(fixed)+len(patterned)+len(a.extensions))
	s.Fields = append(s.Fields, fixed...)
	s.Fields = append(s.Fields, patterned...)
	if a.dialect.globalExtensions {
		s.Fields = append(s.Fields, a.extensions...)
	}

	if a.dialect.extensibleSentence != "" {
		s.Extensible = node.Find(doctree.Query{Text: a.dialect.extensibleSentence, Kind: doctree.KindContent}) != nil
	} else {
		s.Extensible = hasField(patterned, extensionFieldName)
	}
	return s, nil
}

// patternedFields returns the "Patterned Fields" rows followed by the
// "Patterned Objects" rows; older documents use both headings for the same purpose.
func (a *assembly) patternedFields(node *doctree.Node) ([]Field, error) {
	fields, err := fieldsUnder(node.FindHeader(patternedFieldsHeading, 0), NamePatterned, a.markdownURL)
	if err != nil {
		return nil, err
	}
	objects, err := fieldsUnder(node.FindHeader(patternedObjectsHeading, 0), NamePatterned, a.markdownURL)
	if err != nil {
		return nil, err
	}
	return append(fields, objects...), nil
}

func hasField(fields []Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func joinHTML(nodes []*doctree.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.HTML())
	}
	return b.String()
}
