// Package textnorm strips invisible Unicode characters from text before
// analysis. Zero-width and bidirectional control characters let an author
// hide or reorder trigger terms without changing what a reader sees, which
// would otherwise let content slip past every lexical rule.
package textnorm

import (
	"strings"
	"unicode/utf8"
)

// Clean returns the input with zero-width, bidi-control, and tag characters
// removed. Visible text is untouched.
func Clean(input string) string {
	if isPlainASCII(input) {
		return input
	}

	var sb strings.Builder
	sb.Grow(len(input))

	i := 0
	for i < len(input) {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			// Drop invalid bytes rather than letting them split words.
			i++
			continue
		}
		if !isInvisible(r) {
			sb.WriteRune(r)
		}
		i += size
	}

	return sb.String()
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

func isInvisible(r rune) bool {
	return isZeroWidth(r) || isBidiControl(r) || isTagChar(r)
}

// isZeroWidth reports zero-width characters used to break up words invisibly.
func isZeroWidth(r rune) bool {
	switch r {
	case 0x200B, // zero-width space
		0x200C, // zero-width non-joiner
		0x200D, // zero-width joiner
		0x2060, // word joiner
		0xFEFF: // zero-width no-break space / BOM
		return true
	}
	return false
}

// isBidiControl reports directional override/embedding characters that can
// visually reorder text.
func isBidiControl(r rune) bool {
	return (r >= 0x202A && r <= 0x202E) || (r >= 0x2066 && r <= 0x2069)
}

// isTagChar reports Unicode tag characters (U+E0000–U+E007F), an invisible
// copy of ASCII sometimes used to smuggle text.
func isTagChar(r rune) bool {
	return r >= 0xE0000 && r <= 0xE007F
}
