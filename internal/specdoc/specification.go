// Package specdoc extracts schema and field records from a specification
// document tree.
package specdoc

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
)

// URL types.
const (
	URLMarkdown = "markdown"
	URLSchema   = "schema"
)

// URL links a record to its published source.
type URL struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Specification is the record produced for one document version.
type Specification struct {
	Version     string   `json:"version"`
	Description string   `json:"description"`
	URLs        []URL    `json:"urls"`
	History     any      `json:"history"`
	Schemas     []Schema `json:"schemas"`
}

// HistoryProducer derives the revision history of a document. Its result
// is embedded in the record unchanged.
type HistoryProducer interface {
	Produce(root *doctree.Node) (any, error)
}

// Default URL templates. $VERSION is the full version, $VERSION_MINOR is major.minor.
const (
	DefaultMarkdownURL = "https://github.com/OAI/OpenAPI-Specification/blob/main/versions/$VERSION.md"
	DefaultSchemaURL   = "https://github.com/OAI/OpenAPI-Specification/blob/main/schemas/v$VERSION_MINOR/schema.json"
)

const (
	versionHeadingLevel = 4
	introductionLevel   = 2
	schemaHeading       = "Schema"
	schemaHeadingLevel  = 3
)

var versionTitle = regexp.MustCompile(`Version (.*)`)

// Assembler turns document trees into Specification records.
type Assembler struct {
	markdownTemplate string
	schemaTemplate   string
	history          HistoryProducer
	log              *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithURLTemplates overrides the markdown and schema URL templates.
func WithURLTemplates(markdown, schema string) Option {
	return func(a *Assembler) {
		a.markdownTemplate = markdown
		a.schemaTemplate = schema
	}
}

// WithHistory sets the revision history producer.
func WithHistory(p HistoryProducer) Option {
	return func(a *Assembler) { a.history = p }
}

func WithLogger(log *slog.Logger) Option {
	return func(a *Assembler) { a.log = log }
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		markdownTemplate: DefaultMarkdownURL,
		schemaTemplate:   DefaultSchemaURL,
		log:              slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// assembly is the state of one Assemble call.
type assembly struct {
	root        *doctree.Node
	version     string
	dialect     dialect
	markdownURL string
	// extensions holds the global Specification Extensions fields, if the dialect uses them.
	extensions []Field
}

// Assemble builds the record for the document rooted at root.
func (a *Assembler) Assemble(root *doctree.Node) (*Specification, error) {
	version, err := FindVersion(root)
	if err != nil {
		return nil, err
	}
	as := &assembly{
		root:        root,
		version:     version,
		dialect:     dialectFor(version),
		markdownURL: expandURL(a.markdownTemplate, version),
	}
	log := a.log.With("version", version, "dialect", as.dialect.name)

	spec := &Specification{
		Version: version,
		URLs: []URL{
			{URL: as.markdownURL, Type: URLMarkdown},
			{URL: expandURL(a.schemaTemplate, version), Type: URLSchema},
		},
		Schemas: []Schema{},
	}

	intro := root.FindHeader(as.dialect.introduction, introductionLevel)
	if intro == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingSection, as.dialect.introduction)
	}
	spec.Description = joinHTML(contentChildren(intro))

	if as.dialect.globalExtensions {
		as.extensions, err = fieldsUnder(root.FindHeader(extensionsHeading, 0), NamePatterned, as.markdownURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", extensionsHeading, err)
		}
	}

	schemas := root.FindHeader(schemaHeading, schemaHeadingLevel)
	if schemas == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingSection, schemaHeading)
	}
	for _, c := range schemas.Children() {
		if !c.IsHeader() {
			continue
		}
		s, err := as.extractSchema(c)
		if err != nil {
			return nil, err
		}
		log.Debug("schema extracted", "schema", s.Name, "fields", len(s.Fields), "extensible", s.Extensible)
		spec.Schemas = append(spec.Schemas, s)
	}

	spec.History = []any{}
	if a.history != nil {
		spec.History, err = a.history.Produce(root)
		if err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
	}

	log.Info("specification assembled", "schemas", len(spec.Schemas))
	return spec, nil
}

// FindVersion reads the version from the first level-4 heading, or failing
// that from the first heading titled "Version X".
func FindVersion(root *doctree.Node) (string, error) {
	if h := root.Find(doctree.Query{Kind: doctree.KindHeader, Level: versionHeadingLevel}); h != nil {
		if v := versionOf(h.Text()); v != "" {
			return v, nil
		}
	}
	if h := root.Find(doctree.Query{Kind: doctree.KindHeader, Pattern: versionTitle}); h != nil {
		if v := versionOf(h.Text()); v != "" {
			return v, nil
		}
	}
	return "", ErrVersionNotFound
}

func versionOf(title string) string {
	m := versionTitle.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func expandURL(template, version string) string {
	return strings.NewReplacer("$VERSION_MINOR", minorVersion(version), "$VERSION", version).Replace(template)
}

func contentChildren(n *doctree.Node) []*doctree.Node {
	var out []*doctree.Node
	for _, c := range n.Children() {
		if c.IsContent() {
			out = append(out, c)
		}
	}
	return out
}
