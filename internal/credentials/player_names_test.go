package credentials

import (
	"strings"
	"testing"
)

func TestGeneratePlayerName(t *testing.T) {
	tests := []struct {
		name     string
		language string
	}{
		{name: "spanish names", language: "es"},
		{name: "english names", language: "en"},
		{name: "unknown language falls back", language: "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				got, err := GeneratePlayerName(tt.language)
				if err != nil {
					t.Fatalf("GeneratePlayerName(%q) error: %v", tt.language, err)
				}
				parts := strings.Split(got, "-")
				if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
					t.Fatalf("GeneratePlayerName(%q) = %q, want two hyphenated words", tt.language, got)
				}
			}
		})
	}
}

func TestGeneratePlayerNameVariety(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name, err := GeneratePlayerName("es")
		if err != nil {
			t.Fatalf("GeneratePlayerName error: %v", err)
		}
		seen[name] = true
	}
	// 20x20 combinations: 100 draws should never collapse to a handful.
	if len(seen) < 10 {
		t.Errorf("only %d distinct names in 100 draws", len(seen))
	}
}
