// Package history reads the revision history appendix of a specification document.
package history

import (
	"regexp"
	"strings"

	"github.com/dgallion1/specgest/internal/doctree"
)

// Event is one row of the revision history.
type Event struct {
	Date    string `json:"date"`
	Type    string `json:"type"`
	Version string `json:"version"`
	Notes   string `json:"notes"`
}

// Event types.
const (
	TypeRelease   = "release"
	TypeCandidate = "release-candidate"
	TypePatch     = "patch"
	TypeDraft     = "draft"
)

var heading = regexp.MustCompile(`(?i)revision history`)

// RevisionTable produces events from the first table under the
// "Revision History" heading. Documents without one have an empty history.
type RevisionTable struct{}

func (RevisionTable) Produce(root *doctree.Node) (any, error) {
	events := []Event{}
	h := root.Find(doctree.Query{Kind: doctree.KindHeader, Pattern: heading})
	if h == nil {
		return events, nil
	}
	for _, c := range h.Children() {
		if !c.IsTable() {
			continue
		}
		for _, row := range c.Table().Rows {
			e := Event{
				Version: cellText(row, "Version"),
				Date:    cellText(row, "Date"),
				Notes:   cellText(row, "Notes"),
			}
			e.Type = classify(e)
			events = append(events, e)
		}
		break
	}
	return events, nil
}

func cellText(row *doctree.Row, header string) string {
	if c := row.Value(header); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func classify(e Event) string {
	notes := strings.ToLower(e.Notes)
	switch {
	case strings.Contains(strings.ToLower(e.Version), "-rc"):
		return TypeCandidate
	case strings.Contains(notes, "draft"):
		return TypeDraft
	case strings.HasPrefix(notes, "patch release"):
		return TypePatch
	default:
		return TypeRelease
	}
}
