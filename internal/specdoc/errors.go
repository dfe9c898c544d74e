package specdoc

import "errors"

var (
	// ErrVersionNotFound is returned when no heading carries a "Version X" title.
	ErrVersionNotFound = errors.New("version heading not found")

	// ErrMissingSection is returned when a heading the dialect requires is absent.
	ErrMissingSection = errors.New("missing required section")

	// ErrMalformedTypeCell is returned when a field's type cell has no recognizable shape.
	ErrMalformedTypeCell = errors.New("malformed type cell")
)
