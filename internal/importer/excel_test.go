package importer

import "testing"

func TestParseWordRow(t *testing.T) {
	tests := []struct {
		name    string
		row     []string
		want    string
		level   int
		wantErr bool
	}{
		{name: "valid row", row: []string{"es", "1", "casa"}, want: "casa", level: 1},
		{name: "whitespace trimmed", row: []string{" es ", " 3 ", " perro "}, want: "perro", level: 3},
		{name: "too few columns", row: []string{"es", "1"}, wantErr: true},
		{name: "bad level", row: []string{"es", "once", "casa"}, wantErr: true},
		{name: "level out of range", row: []string{"es", "11", "casa"}, wantErr: true},
		{name: "unknown language", row: []string{"xx", "1", "casa"}, wantErr: true},
		{name: "empty word", row: []string{"es", "1", "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, err := parseWordRow(tt.row)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseWordRow(%v) = %+v, want error", tt.row, word)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWordRow(%v) error: %v", tt.row, err)
			}
			if word.Text != tt.want || word.Level != tt.level {
				t.Errorf("parseWordRow(%v) = %q level %d, want %q level %d",
					tt.row, word.Text, word.Level, tt.want, tt.level)
			}
		})
	}
}

func TestIsHeaderRow(t *testing.T) {
	if !isHeaderRow(0, []string{"language", "level", "text"}) {
		t.Error("label row not detected as header")
	}
	if isHeaderRow(0, []string{"es", "1", "casa"}) {
		t.Error("data row misdetected as header")
	}
	if isHeaderRow(3, []string{"language", "level", "text"}) {
		t.Error("only the first row can be a header")
	}
}
