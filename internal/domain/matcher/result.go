package matcher

// ProvenanceKind tags where a result's text came from.
type ProvenanceKind string

const (
	Matched  ProvenanceKind = "matched"
	Fallback ProvenanceKind = "fallback"
)

// Captions rendered next to an answer.
const (
	MatchedCaptionPrefix = "Matched FAQ: "
	FallbackCaption      = "Suggested topics"
)

// Provenance says whether a result came from a KB entry or the fallback.
// Question and EntryID are set only for matched results.
type Provenance struct {
	Kind     ProvenanceKind `json:"kind"`
	Question string         `json:"question,omitempty"`
	EntryID  string         `json:"entry_id,omitempty"`
}

// MatchResult is the answer to one query. It is a plain value owned by the
// caller; nothing inside the matcher retains it.
type MatchResult struct {
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
	Score      int        `json:"score"` // 0 for fallback results
}

// Matched reports whether the result came from a KB entry.
func (r MatchResult) Matched() bool {
	return r.Provenance.Kind == Matched
}

// Caption renders the provenance for display: "Matched FAQ: <question>" or
// "Suggested topics".
func (r MatchResult) Caption() string {
	if r.Matched() {
		return MatchedCaptionPrefix + r.Provenance.Question
	}
	return FallbackCaption
}
