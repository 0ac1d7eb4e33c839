package normalize

import (
	"regexp"
	"strings"
)

// englishSegment extracts the EN-tagged part of a composite label,
// e.g. "{DE:Eingechecked|EN:Checked-In}".
var englishSegment = regexp.MustCompile(`EN:([^|}]+)`)

// EnglishLabel resolves a bilingual display label to its English text.
//
// Labels arrive either as plain strings or as composites of the form
// "{LANG1:text1|LANG2:text2|...}". For composites the EN segment is
// returned trimmed; a composite without an EN segment is returned
// unchanged rather than guessing a fallback language. Plain strings pass
// through as-is.
func EnglishLabel(label string) string {
	if !strings.Contains(label, "{") {
		return label
	}
	if m := englishSegment.FindStringSubmatch(label); m != nil {
		return strings.TrimSpace(m[1])
	}
	return label
}
