// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the faq daemon: create, start, stop,
// and atomic knowledge base reloads.
package app

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/corey/faq/internal/adapters/ahocorasick"
	"github.com/corey/faq/internal/adapters/bbolt"
	fsw "github.com/corey/faq/internal/adapters/fsnotify"
	"github.com/corey/faq/internal/adapters/kbfile"
	"github.com/corey/faq/internal/adapters/socket"
	"github.com/corey/faq/internal/adapters/web"
	"github.com/corey/faq/internal/domain/kb"
	"github.com/corey/faq/internal/domain/matcher"
	"github.com/corey/faq/internal/ports"
)

// Sources reported when the active KB did not come from a file.
const (
	SourceDefault = "default"
	SourceStore   = "store:"
)

// ErrNoKBFile is returned by Reload when no knowledge base file is configured.
var ErrNoKBFile = errors.New("no knowledge base file configured")

// active is one immutable generation of the served knowledge base.
type active struct {
	matcher  *matcher.Matcher
	source   string
	loadedAt time.Time
}

// App is the top-level container wiring all components together.
type App struct {
	ProjectRoot string
	Paths       *Paths

	Store     ports.KBStore
	Watcher   ports.Watcher // nil unless watching is enabled
	Server    *socket.Server
	WebServer *web.Server

	cfg      Config
	log      *zap.Logger
	store    *bbolt.Store
	current  atomic.Pointer[active]
	reloads  atomic.Int64
	reloadMu sync.Mutex // serializes reloads; answers never take it
	started  time.Time
}

// New creates an App with all dependencies wired and the knowledge base
// loaded. Does not start services. log may be nil.
func New(cfg Config, log *zap.Logger) (*App, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	paths := NewPaths(cfg.ProjectRoot)
	if cfg.DBPath == "" {
		cfg.DBPath = paths.DB
	}
	if cfg.Snapshot == "" {
		cfg.Snapshot = DefaultSnapshot
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create %s: %w", paths.Root, err)
	}

	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	a := &App{
		ProjectRoot: cfg.ProjectRoot,
		Paths:       paths,
		Store:       store,
		cfg:         cfg,
		log:         log,
		store:       store,
	}

	initial, err := a.loadInitial()
	if err != nil {
		store.Close()
		return nil, err
	}
	a.current.Store(initial)
	log.Info("knowledge base loaded",
		zap.String("source", initial.source),
		zap.Int("entries", initial.matcher.KB().Len()),
		zap.Int("keywords", initial.matcher.KeywordCount()))

	if cfg.Watch && cfg.KBFile != "" {
		w, err := fsw.NewWatcher(0)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		a.Watcher = w
	}

	a.Server = socket.NewServer(a, socket.SocketPath(cfg.ProjectRoot), log)
	a.WebServer = web.NewServer(a, paths.AddrFile, log)
	return a, nil
}

// loadInitial picks the KB source: the configured file, then the stored
// snapshot, then the built-in default. A configured file that fails to load
// falls back to the last good snapshot of it; with no snapshot it is fatal.
func (a *App) loadInitial() (*active, error) {
	if a.cfg.KBFile != "" {
		k, err := kbfile.Load(a.cfg.KBFile)
		if err == nil {
			if err := a.Store.SaveKB(a.cfg.Snapshot, a.cfg.KBFile, k); err != nil {
				a.log.Warn("snapshot not saved", zap.Error(err))
			}
			return newActive(k, a.cfg.KBFile), nil
		}
		stored, serr := a.Store.LoadKB(a.cfg.Snapshot)
		if serr != nil || stored == nil {
			return nil, fmt.Errorf("load knowledge base: %w", err)
		}
		a.log.Warn("knowledge base file rejected, serving last snapshot",
			zap.String("file", a.cfg.KBFile), zap.Error(err))
		return newActive(stored, SourceStore+a.cfg.Snapshot), nil
	}

	stored, err := a.Store.LoadKB(a.cfg.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", a.cfg.Snapshot, err)
	}
	if stored != nil {
		return newActive(stored, SourceStore+a.cfg.Snapshot), nil
	}
	return newActive(kb.Default(), SourceDefault), nil
}

func newActive(k *kb.KB, source string) *active {
	return &active{
		matcher:  matcher.New(k, matcher.WithKeywordScanner(ahocorasick.Factory)),
		source:   source,
		loadedAt: time.Now(),
	}
}

// Start begins serving on the socket and HTTP, and starts the file watcher
// when enabled.
func (a *App) Start() error {
	a.started = time.Now()
	if err := a.Server.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	// HTTP API is non-fatal if the port is unavailable
	if err := a.WebServer.Start(a.HTTPAddr()); err != nil {
		a.log.Warn("HTTP API unavailable", zap.Error(err))
	}
	if a.Watcher != nil {
		if err := a.Watcher.Watch(a.cfg.KBFile, a.onKBFileChanged); err != nil {
			a.log.Warn("file watcher unavailable", zap.Error(err))
		}
	}
	return nil
}

// Stop shuts down all services and closes the store.
func (a *App) Stop() error {
	if a.Watcher != nil {
		a.Watcher.Stop()
	}
	if a.WebServer != nil {
		a.WebServer.Stop()
	}
	if a.Server != nil {
		a.Server.Stop()
	}
	return a.store.Close()
}

// Close releases the store without starting or stopping servers. Used by
// one-shot commands.
func (a *App) Close() error {
	return a.store.Close()
}

// HTTPAddr is the configured HTTP address or the project default.
func (a *App) HTTPAddr() string {
	if a.cfg.HTTPAddr != "" {
		return a.cfg.HTTPAddr
	}
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(web.DefaultPort(a.ProjectRoot)))
}

// Config returns the configuration the app was built with.
func (a *App) Config() Config {
	return a.cfg
}

// Answer answers against the knowledge base in service at call time.
func (a *App) Answer(text string) matcher.MatchResult {
	return a.Matcher().Answer(text)
}

// Matcher returns the matcher in service. Implements socket.AppQueries.
func (a *App) Matcher() *matcher.Matcher {
	return a.current.Load().matcher
}

// Source describes where the active KB came from. Implements socket.AppQueries.
func (a *App) Source() string {
	return a.current.Load().source
}

// Reloads counts successful swaps. Implements socket.AppQueries.
func (a *App) Reloads() int {
	return int(a.reloads.Load())
}

// Reload re-reads the configured KB file. An invalid file is rejected and
// the current KB stays in service. Implements socket.AppQueries.
func (a *App) Reload() (socket.ReloadResult, error) {
	if a.cfg.KBFile == "" {
		return socket.ReloadResult{}, ErrNoKBFile
	}

	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	start := time.Now()
	k, err := kbfile.Load(a.cfg.KBFile)
	if err != nil {
		return socket.ReloadResult{}, fmt.Errorf("reload rejected, keeping current knowledge base: %w", err)
	}
	next := newActive(k, a.cfg.KBFile)
	a.current.Store(next)
	a.reloads.Add(1)

	if err := a.Store.SaveKB(a.cfg.Snapshot, a.cfg.KBFile, k); err != nil {
		a.log.Warn("snapshot not saved", zap.Error(err))
	}

	elapsed := time.Since(start)
	a.log.Info("knowledge base reloaded",
		zap.String("source", next.source),
		zap.Int("entries", k.Len()),
		zap.Duration("elapsed", elapsed))
	return socket.ReloadResult{
		Entries:   k.Len(),
		Source:    next.source,
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}

func (a *App) onKBFileChanged(path string) {
	if _, err := a.Reload(); err != nil {
		a.log.Warn("knowledge base change ignored", zap.String("file", path), zap.Error(err))
	}
}
