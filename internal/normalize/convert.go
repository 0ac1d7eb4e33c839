package normalize

// convert.go provides soft coercions from loosely-typed upstream values to
// pgtype scalars. Empty and absent values are treated identically; values
// that cannot be coerced become invalid (NULL) rather than errors, so the
// transforms stay total over malformed input.

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

var categoryIDPattern = regexp.MustCompile(`#(\d+)_`)

// cell returns the positional field of a row, or "" when the row is too
// short. Upstream rows are fixed-width but a truncated row means the
// missing fields carry no value.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// toPgText trims the value and converts blank to NULL.
func toPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// toPgInt4 parses a decimal integer, NULL on anything else.
func toPgInt4(s string) pgtype.Int4 {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Int4{Valid: false}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(n), Valid: true}
}

// coercePgInt4 converts a loosely-typed JSON value to an integer. The
// config endpoint delivers numeric fields as numbers, strings, or null
// depending on the event setup.
func coercePgInt4(v any) pgtype.Int4 {
	switch t := v.(type) {
	case nil:
		return pgtype.Int4{Valid: false}
	case float64:
		return pgtype.Int4{Int32: int32(t), Valid: true}
	case int:
		return pgtype.Int4{Int32: int32(t), Valid: true}
	case int32:
		return pgtype.Int4{Int32: t, Valid: true}
	case int64:
		return pgtype.Int4{Int32: int32(t), Valid: true}
	case string:
		return toPgInt4(t)
	default:
		return pgtype.Int4{Valid: false}
	}
}

// parseCategoryKey splits a category key of the form "#<id>_<name>" into
// its numeric id and residual name. The two parts are extracted
// independently: a key missing the "#<id>_" prefix still yields the name
// after its first underscore, and vice versa.
func parseCategoryKey(key string) (id pgtype.Int4, name pgtype.Text) {
	if m := categoryIDPattern.FindStringSubmatch(key); m != nil {
		id = toPgInt4(m[1])
	}
	if i := strings.Index(key, "_"); i >= 0 {
		name = toPgText(key[i+1:])
	}
	return id, name
}
