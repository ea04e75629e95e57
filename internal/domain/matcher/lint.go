package matcher

import (
	"fmt"

	"github.com/corey/faq/internal/domain/kb"
)

// Issue is a KB authoring problem that does not make the KB invalid but
// weakens matching.
type Issue struct {
	EntryID string `json:"entry_id"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.EntryID + ": " + i.Message
}

// Lint reports entries the scorer cannot reach the way their author likely
// intended: keywords that normalize to nothing, repeated keywords, entries
// with no keywords, and questions that duplicate an earlier entry's question
// (ties go to the earlier entry, so the later one never wins on it).
func Lint(k *kb.KB) []Issue {
	var issues []Issue
	questions := make(map[string]string)

	for _, e := range k.Entries() {
		if len(e.Keywords) == 0 {
			issues = append(issues, Issue{e.ID, "no keywords; only question overlap can match"})
		}

		seen := make(map[string]bool)
		for _, kw := range e.Keywords {
			n := Normalize(kw)
			switch {
			case n == "":
				issues = append(issues, Issue{e.ID, fmt.Sprintf("keyword %q has no letters or digits", kw)})
			case seen[n]:
				issues = append(issues, Issue{e.ID, fmt.Sprintf("keyword %q repeats %q after normalization and scores only once", kw, n)})
			}
			seen[n] = true
		}

		q := Normalize(e.Question)
		if q == "" {
			issues = append(issues, Issue{e.ID, "question has no letters or digits"})
			continue
		}
		if first, ok := questions[q]; ok {
			issues = append(issues, Issue{e.ID, fmt.Sprintf("question duplicates entry %q, which wins ties", first)})
			continue
		}
		questions[q] = e.ID
	}
	return issues
}
