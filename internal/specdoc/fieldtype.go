package specdoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ListType tells whether a field holds a single value, an array or a map.
type ListType string

const (
	ListScalar ListType = ""
	ListArray  ListType = "array"
	ListMap    ListType = "map"
)

// MarshalJSON encodes ListScalar as null.
func (l ListType) MarshalJSON() ([]byte, error) {
	if l == ListScalar {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(string(l))), nil
}

func (l *ListType) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = ListScalar
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch ListType(s) {
	case ListArray, ListMap:
		*l = ListType(s)
		return nil
	}
	return fmt.Errorf("unknown list type %q", s)
}

// FieldType is the parsed content of a Type cell.
type FieldType struct {
	ListType ListType `json:"listType"`
	// MapKeyType is set only for maps.
	MapKeyType *string  `json:"mapKeyType"`
	Types      []string `json:"types"`
}

// typeCell matches "Map[key, types]", "[types]" and bare "types". A map
// value may itself be bracketed ("Map[string, [string]]"); the map shape
// wins. Anything after the closing bracket is ignored: published documents
// contain typos such as "Map[string, Path Item Object | Reference Object] ]".
var typeCell = regexp.MustCompile(`^(?:(?P<map>Map\[)(?P<key>[a-zA-Z\s]+),\s*)?(?P<array>\[)?(?P<types>[a-zA-Z*|\s]+)\]?.*$`)

// ParseFieldType parses the text of a Type cell.
func ParseFieldType(text string) (FieldType, error) {
	text = strings.TrimSpace(text)
	m := typeCell.FindStringSubmatch(text)
	if m == nil {
		return FieldType{}, fmt.Errorf("%w: %q", ErrMalformedTypeCell, text)
	}
	group := func(name string) string { return m[typeCell.SubexpIndex(name)] }

	var ft FieldType
	switch {
	case group("map") != "":
		key := strings.TrimSpace(group("key"))
		ft.ListType = ListMap
		ft.MapKeyType = &key
	case group("array") != "":
		ft.ListType = ListArray
	}

	for _, t := range strings.Split(group("types"), "|") {
		t = strings.TrimSpace(t)
		switch t {
		case "":
			continue
		case "*":
			// Older documents write the any-type wildcard as "*".
			t = "Any"
		}
		ft.Types = append(ft.Types, t)
	}
	if len(ft.Types) == 0 {
		return FieldType{}, fmt.Errorf("%w: no type names in %q", ErrMalformedTypeCell, text)
	}
	return ft, nil
}
