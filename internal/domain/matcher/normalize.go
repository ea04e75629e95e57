package matcher

import "strings"

// Normalize canonicalizes text for comparison:
//  1. Lowercase all
//  2. Every rune outside [a-z0-9] becomes a separator (punctuation, whitespace, non-ASCII)
//  3. Collapse separator runs to a single space, trim both ends
//
// Examples:
//
//	"Do you offer 24/7 monitoring?" -> "do you offer 24 7 monitoring"
//	"  ???  "                       -> ""
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.FieldsFunc(strings.ToLower(text), isSeparator), " ")
}

// Tokenize splits the normalized form of text on single spaces.
// Order is preserved and duplicates are kept. Returns nil for empty input.
func Tokenize(text string) []string {
	n := Normalize(text)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

func isSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}
