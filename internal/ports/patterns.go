package ports

// KeywordScanner finds which registered keywords occur as substrings of a text.
// Implementations are built once from a fixed keyword list and must be safe for
// concurrent use. Keywords and text are matched as-is: the caller normalizes
// both sides before building and scanning.
type KeywordScanner interface {
	// Scan returns the set of registered keywords found in text.
	// Returns nil when nothing matches.
	Scan(text string) map[string]bool
}

// ScannerFactory builds a KeywordScanner for a keyword list.
type ScannerFactory func(keywords []string) KeywordScanner
