package normalize

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestToPgInt4(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  pgtype.Int4
	}{
		{name: "plain integer", input: "1660", want: pgtype.Int4{Int32: 1660, Valid: true}},
		{name: "padded integer", input: " 278 ", want: pgtype.Int4{Int32: 278, Valid: true}},
		{name: "empty", input: "", want: pgtype.Int4{}},
		{name: "whitespace only", input: "  ", want: pgtype.Int4{}},
		{name: "non-numeric", input: "abc", want: pgtype.Int4{}},
		{name: "decimal is not an integer", input: "19.93", want: pgtype.Int4{}},
		{name: "negative", input: "-5", want: pgtype.Int4{Int32: -5, Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toPgInt4(tt.input); got != tt.want {
				t.Errorf("toPgInt4(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPgText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  pgtype.Text
	}{
		{name: "plain", input: "M20-34", want: pgtype.Text{String: "M20-34", Valid: true}},
		{name: "trimmed", input: "  Blaue Funken Köln ", want: pgtype.Text{String: "Blaue Funken Köln", Valid: true}},
		{name: "empty is null", input: "", want: pgtype.Text{}},
		{name: "whitespace is null", input: " \t ", want: pgtype.Text{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toPgText(tt.input); got != tt.want {
				t.Errorf("toPgText(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoercePgInt4(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  pgtype.Int4
	}{
		{name: "json number", input: float64(516), want: pgtype.Int4{Int32: 516, Valid: true}},
		{name: "json string", input: "254", want: pgtype.Int4{Int32: 254, Valid: true}},
		{name: "json null", input: nil, want: pgtype.Int4{}},
		{name: "bad string", input: "swim", want: pgtype.Int4{}},
		{name: "unexpected type", input: []any{1}, want: pgtype.Int4{}},
		{name: "zero survives", input: float64(0), want: pgtype.Int4{Int32: 0, Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coercePgInt4(tt.input); got != tt.want {
				t.Errorf("coercePgInt4(%v) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCategoryKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantID   pgtype.Int4
		wantName pgtype.Text
	}{
		{
			name:     "simple key",
			key:      "#1_Olympisch",
			wantID:   pgtype.Int4{Int32: 1, Valid: true},
			wantName: pgtype.Text{String: "Olympisch", Valid: true},
		},
		{
			name:     "name with spaces",
			key:      "#5_Jugendtriathlon U14",
			wantID:   pgtype.Int4{Int32: 5, Valid: true},
			wantName: pgtype.Text{String: "Jugendtriathlon U14", Valid: true},
		},
		{
			name:     "waitlist suffix stays in name",
			key:      "#1_Olympisch - Warteliste",
			wantID:   pgtype.Int4{Int32: 1, Valid: true},
			wantName: pgtype.Text{String: "Olympisch - Warteliste", Valid: true},
		},
		{
			name:     "name containing underscores keeps the tail",
			key:      "#2_Relay_Mixed",
			wantID:   pgtype.Int4{Int32: 2, Valid: true},
			wantName: pgtype.Text{String: "Relay_Mixed", Valid: true},
		},
		{
			name:     "no id prefix",
			key:      "Warteliste",
			wantID:   pgtype.Int4{},
			wantName: pgtype.Text{},
		},
		{
			name:     "id without name",
			key:      "#7_",
			wantID:   pgtype.Int4{Int32: 7, Valid: true},
			wantName: pgtype.Text{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name := parseCategoryKey(tt.key)
			if id != tt.wantID {
				t.Errorf("parseCategoryKey(%q) id = %+v, want %+v", tt.key, id, tt.wantID)
			}
			if name != tt.wantName {
				t.Errorf("parseCategoryKey(%q) name = %+v, want %+v", tt.key, name, tt.wantName)
			}
		})
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	if got := cell(row, 1); got != "b" {
		t.Errorf("cell(row, 1) = %q, want %q", got, "b")
	}
	if got := cell(row, 5); got != "" {
		t.Errorf("cell(row, 5) = %q, want empty", got)
	}
	if got := cell(nil, 0); got != "" {
		t.Errorf("cell(nil, 0) = %q, want empty", got)
	}
}
