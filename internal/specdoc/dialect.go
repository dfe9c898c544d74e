package specdoc

import (
	"strconv"
	"strings"
)

// dialect captures the structural differences between major versions of
// the source documents.
type dialect struct {
	name string
	// introduction is the level-2 heading holding the document description.
	introduction string
	// globalExtensions appends the document-wide Specification Extensions
	// table to every schema.
	globalExtensions bool
	// extensibleSentence marks an extensible schema. When empty, a schema is
	// extensible if it declares a "^x-" patterned field.
	extensibleSentence string
}

var (
	legacyDialect = dialect{
		name:         "legacy",
		introduction: "Introductions",
	}
	modernDialect = dialect{
		name:               "modern",
		introduction:       "Introduction",
		globalExtensions:   true,
		extensibleSentence: "This object MAY be extended with Specification Extensions.",
	}
)

const extensionFieldName = "^x-"

// dialectFor selects the dialect from the major version. Unparseable or
// unknown majors use the most recent dialect.
func dialectFor(version string) dialect {
	major, err := strconv.Atoi(strings.SplitN(version, ".", 2)[0])
	if err == nil && major < 3 {
		return legacyDialect
	}
	return modernDialect
}

// minorVersion returns "major.minor" for a dotted version string.
func minorVersion(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
