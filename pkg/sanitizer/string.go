package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Subject cleans the free-text booking subject before it goes on the wire:
// trims, collapses runs of whitespace, and caps the length at the backend
// field limit. An all-whitespace subject collapses to the empty string so
// the field can be omitted.
func Subject(s string) string {
	return TrimCollapse(s, 255)
}

func TrimCollapse(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}

	out := b.String()
	if maxLen > 0 && len(out) > maxLen {
		// Back off to a rune boundary so the cut never splits a character.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = strings.TrimSpace(out[:cut])
	}
	return out
}
