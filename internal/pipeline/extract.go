package pipeline

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/dgallion1/specgest/internal/doctree"
	"github.com/dgallion1/specgest/internal/markup"
	"github.com/dgallion1/specgest/internal/specdoc"
)

// Result is the outcome of extracting one document.
type Result struct {
	Tree          *doctree.Node
	Specification *specdoc.Specification
}

// Extract renders Markdown source, rebuilds its tree and assembles the record.
func Extract(src []byte, a *specdoc.Assembler) (*Result, error) {
	doc, err := markup.FromMarkdown(src)
	if err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	tree := doctree.Build(doc)
	spec, err := a.Assemble(tree)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	return &Result{Tree: tree, Specification: spec}, nil
}

// FieldCount returns the number of fields across all schemas.
func (r *Result) FieldCount() int {
	n := 0
	for _, s := range r.Specification.Schemas {
		n += len(s.Fields)
	}
	return n
}

// WriteJSON writes v as 4-space indented JSON. Markup in descriptions is
// written as-is rather than \u-escaped.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
