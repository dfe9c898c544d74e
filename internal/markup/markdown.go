package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// converter renders Markdown the way specification sources expect it:
// pipe tables, fenced code, generated heading ids and raw HTML anchors
// (<a name="..."></a>) passed through untouched.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// Convert renders Markdown source to HTML.
func Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := converter.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// FromMarkdown renders Markdown and parses the result into a Document.
func FromMarkdown(src []byte) (*Document, error) {
	out, err := Convert(src)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(out))
}
