// Package socket implements a JSON-over-Unix-socket protocol for the faq daemon.
// The protocol uses newline-delimited JSON: each message is one JSON object + \n.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"time"

	"github.com/corey/faq/internal/domain/kb"
	"github.com/corey/faq/internal/domain/matcher"
)

// SocketPath returns the Unix socket path for a given project root.
// Format: /tmp/faq-{first12hex}.sock
func SocketPath(projectRoot string) string {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/faq-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodAsk         = "ask"
	MethodEntries     = "entries"
	MethodSuggestions = "suggestions"
	MethodHealth      = "health"
	MethodReload      = "reload"
	MethodShutdown    = "shutdown"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// AskParams is the params for an ask request.
type AskParams struct {
	Text string `json:"text"`
}

// AskResult is the answer to one question (wire format).
type AskResult struct {
	Text       string `json:"text"`
	Caption    string `json:"caption"`
	Provenance string `json:"provenance"` // "matched" or "fallback"
	Question   string `json:"question,omitempty"`
	EntryID    string `json:"entry_id,omitempty"`
	Score      int    `json:"score"`
	Elapsed    string `json:"elapsed"`
}

// NewAskResult converts a match into its wire form.
func NewAskResult(res matcher.MatchResult, elapsed time.Duration) AskResult {
	return AskResult{
		Text:       res.Text,
		Caption:    res.Caption(),
		Provenance: string(res.Provenance.Kind),
		Question:   res.Provenance.Question,
		EntryID:    res.Provenance.EntryID,
		Score:      res.Score,
		Elapsed:    elapsed.String(),
	}
}

// Matched reports whether the answer came from a KB entry.
func (r AskResult) Matched() bool {
	return r.Provenance == string(matcher.Matched)
}

// MatchResult converts the wire form back into a match. Elapsed is dropped.
func (r AskResult) MatchResult() matcher.MatchResult {
	return matcher.MatchResult{
		Text: r.Text,
		Provenance: matcher.Provenance{
			Kind:     matcher.ProvenanceKind(r.Provenance),
			Question: r.Question,
			EntryID:  r.EntryID,
		},
		Score: r.Score,
	}
}

// EntriesResult is the result of an entries request.
type EntriesResult struct {
	Entries []kb.KnowledgeEntry `json:"entries"`
	Count   int                 `json:"count"`
	Source  string              `json:"source"`
}

// SuggestionsResult is the result of a suggestions request.
type SuggestionsResult struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status   string `json:"status"`
	Entries  int    `json:"entries"`
	Keywords int    `json:"keywords"`
	Source   string `json:"source"`
	Reloads  int    `json:"reloads"`
	Uptime   string `json:"uptime"`
}

// ReloadResult is the result of a reload request.
type ReloadResult struct {
	Entries   int    `json:"entries"`
	Source    string `json:"source"`
	ElapsedMs int64  `json:"elapsed_ms"`
}
