package normalize

import "testing"

func TestCountryResolver(t *testing.T) {
	resolver := NewCountryResolver()

	tests := []struct {
		name   string
		code   string
		want   string
		wantOK bool
	}{
		{name: "IOC code switzerland", code: "SUI", want: "Switzerland", wantOK: true},
		{name: "IOC code germany", code: "GER", want: "Germany", wantOK: true},
		{name: "IOC code netherlands", code: "NED", want: "Netherlands", wantOK: true},
		{name: "code shared by both schemes", code: "FRA", want: "France", wantOK: true},
		{name: "ISO-only code", code: "DEU", want: "Germany", wantOK: true},
		{name: "ISO code minor outlying islands", code: "UMI", want: "United States Minor Outlying Islands", wantOK: true},
		{name: "kosovo", code: "XKX", want: "Kosovo", wantOK: true},
		{name: "IOC reading wins for BRN", code: "BRN", want: "Bahrain", wantOK: true},
		{name: "lowercase input", code: "sui", want: "Switzerland", wantOK: true},
		{name: "padded input", code: " SUI ", want: "Switzerland", wantOK: true},
		{name: "unknown code", code: "Q1Q", wantOK: false},
		{name: "empty", code: "", wantOK: false},
		{name: "whitespace only", code: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.Resolve(tt.code)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}
