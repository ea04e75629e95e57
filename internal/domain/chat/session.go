// Package chat keeps the transcript of one conversation with the FAQ
// assistant. The matcher stays stateless; a Session only records what was
// said so a front end (REPL, web widget) can render it.
package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/corey/faq/internal/domain/matcher"
)

// WelcomeMessage opens every conversation.
const WelcomeMessage = "Welcome to Sentinel Secure Services. Ask me about services, monitoring, incident reporting, compliance documents, or the client portal."

// Meta labels shown beside messages.
const (
	MetaAssistant = "Assistant"
	MetaUser      = "You"
)

// Role identifies who sent a message.
type Role string

const (
	RoleBot  Role = "bot"
	RoleUser Role = "user"
)

// Message is one line of the transcript.
type Message struct {
	ID   string    `json:"id"`
	Role Role      `json:"role"`
	Text string    `json:"text"`
	Meta string    `json:"meta"`
	At   time.Time `json:"at"`
}

// Answerer produces a reply for user text. *matcher.Matcher satisfies it.
type Answerer interface {
	Answer(userText string) matcher.MatchResult
}

// Session is a single conversation. Safe for concurrent use.
type Session struct {
	answerer    Answerer
	suggestions []string
	now         func() time.Time

	mu       sync.Mutex
	messages []Message
}

// NewSession starts a conversation already holding the welcome message.
func NewSession(a Answerer, suggestions []string) *Session {
	s := &Session{
		answerer:    a,
		suggestions: append([]string(nil), suggestions...),
		now:         time.Now,
	}
	s.Reset()
	return s
}

// Reset clears the transcript and posts the welcome message.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []Message{s.message(RoleBot, WelcomeMessage, MetaAssistant)}
}

// Send records one exchange. Input is trimmed; blank input is ignored and
// Send returns false without touching the transcript.
func (s *Session) Send(text string) (matcher.MatchResult, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return matcher.MatchResult{}, false
	}

	res := s.answerer.Answer(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages,
		s.message(RoleUser, text, MetaUser),
		s.message(RoleBot, res.Text, res.Caption()),
	)
	return res, true
}

// Messages returns a copy of the transcript, oldest first.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Suggestions returns the example prompts offered to the user.
func (s *Session) Suggestions() []string {
	return append([]string(nil), s.suggestions...)
}

func (s *Session) message(role Role, text, meta string) Message {
	return Message{
		ID:   uuid.NewString(),
		Role: role,
		Text: text,
		Meta: meta,
		At:   s.now(),
	}
}
