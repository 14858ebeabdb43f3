package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"single char", "x", "", false},
		{"single char padded", "  x  ", "", false},
		{"whitespace only", "     ", "", false},
		{"two chars", "go", "go", true},
		{"lower-cases", "Install", "install", true},
		{"trims", "  Dual Boot \n", "dual boot", true},
		{"single multibyte char", "é", "", false},
		{"two multibyte chars", "ÉÉ", "éé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
