package doctree

import (
	"regexp"
	"strings"

	"github.com/dgallion1/specgest/internal/markup"
)

// HeaderInfo describes a heading node.
type HeaderInfo struct {
	Level int
	// ID is the generated heading id.
	ID string
	// Anchor is the name of an explicit <a name="..."> inside the heading, if any.
	Anchor string
}

// Fragment returns the link target for the heading, preferring the explicit anchor.
func (h *HeaderInfo) Fragment() string {
	if h.Anchor != "" {
		return h.Anchor
	}
	return h.ID
}

func newHeaderInfo(e *markup.Element, level int) *HeaderInfo {
	h := &HeaderInfo{Level: level}
	h.ID, _ = e.Attr("id")
	if a := e.Find("a"); a != nil {
		h.Anchor, _ = a.Attr("name")
	}
	return h
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	Language string
	Text     string
}

var languageClass = regexp.MustCompile(`language-(.*)`)

func newCodeBlock(e *markup.Element) *CodeBlock {
	c := &CodeBlock{}
	code := e.Find("code")
	if code == nil {
		c.Text = e.Text()
		return c
	}
	c.Text = code.Text()
	if class, ok := code.Attr("class"); ok {
		for _, token := range strings.Fields(class) {
			if m := languageClass.FindStringSubmatch(token); m != nil {
				c.Language = m[1]
				break
			}
		}
	}
	return c
}
