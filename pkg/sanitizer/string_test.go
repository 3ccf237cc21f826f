package sanitizer

import (
	"strings"
	"testing"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Programación 1", "Programación 1"},
		{"leading and trailing whitespace trimmed", "  Cálculo  ", "Cálculo"},
		{"inner runs collapsed", "Física \t  II", "Física II"},
		{"newlines treated as whitespace", "Lab\nredes", "Lab redes"},
		{"all whitespace collapses to empty", " \t\n ", ""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subject(tt.input); got != tt.want {
				t.Errorf("Subject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSubjectCapsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := Subject(long)
	if len(got) != 255 {
		t.Errorf("len = %d, want 255", len(got))
	}
}
