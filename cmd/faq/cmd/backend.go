package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/corey/faq/internal/adapters/socket"
	"github.com/corey/faq/internal/app"
	"github.com/corey/faq/internal/domain/kb"
	"github.com/corey/faq/internal/domain/matcher"
)

// backend routes queries to the running daemon when there is one, and to an
// in-process app otherwise. Exactly one of client and app is set.
type backend struct {
	client *socket.Client
	app    *app.App
}

func openBackend(root string) (*backend, error) {
	client := socket.NewClient(socket.SocketPath(root))
	if client.Ping() {
		logger.Debug("using daemon", zap.String("socket", socket.SocketPath(root)))
		return &backend{client: client}, nil
	}
	a, err := openApp(root)
	if err != nil {
		return nil, err
	}
	return &backend{app: a}, nil
}

// openApp builds an in-process app from the project's configuration.
func openApp(root string) (*app.App, error) {
	cfg, err := app.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, lockAware(root, err)
	}
	return a, nil
}

func (b *backend) close() {
	if b.app != nil {
		b.app.Close()
	}
}

func (b *backend) daemon() bool {
	return b.client != nil
}

func (b *backend) ask(text string) (*socket.AskResult, error) {
	if b.client != nil {
		return b.client.Ask(text)
	}
	start := time.Now()
	res := socket.NewAskResult(b.app.Answer(text), time.Since(start))
	return &res, nil
}

// Answer satisfies chat.Answerer. A daemon that stops answering mid-session
// degrades to the fallback reply instead of ending the conversation.
func (b *backend) Answer(text string) matcher.MatchResult {
	res, err := b.ask(text)
	if err != nil {
		logger.Warn("daemon ask failed", zap.Error(err))
		return matcher.MatchResult{
			Text:       matcher.FallbackMessage,
			Provenance: matcher.Provenance{Kind: matcher.Fallback},
		}
	}
	return res.MatchResult()
}

func (b *backend) entries() (*socket.EntriesResult, error) {
	if b.client != nil {
		return b.client.Entries()
	}
	k := b.app.Matcher().KB()
	return &socket.EntriesResult{Entries: k.Entries(), Count: k.Len(), Source: b.app.Source()}, nil
}

func (b *backend) suggestions() ([]string, error) {
	if b.client != nil {
		return b.client.Suggestions()
	}
	return b.app.Matcher().KB().Suggestions(), nil
}

// compiled returns a matcher over the active KB. With a daemon the entries are
// fetched and compiled locally, which yields identical scores.
func (b *backend) compiled() (*matcher.Matcher, error) {
	if b.app != nil {
		return b.app.Matcher(), nil
	}
	res, err := b.client.Entries()
	if err != nil {
		return nil, err
	}
	k, err := kb.New(res.Entries)
	if err != nil {
		return nil, err
	}
	return matcher.New(k), nil
}
