package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/corey/faq/internal/domain/matcher"
)

// AppQueries provides read access to app state for server handlers.
// Thread safety is the implementor's responsibility.
type AppQueries interface {
	// Matcher returns the matcher currently in service. Each call may
	// return a newer snapshot after a reload.
	Matcher() *matcher.Matcher
	// Source describes where the active KB came from.
	Source() string
	// Reloads counts successful KB swaps since start.
	Reloads() int
	Reload() (ReloadResult, error)
}

// Server is the daemon that listens on a Unix socket and answers questions.
type Server struct {
	queries  AppQueries
	log      *zap.Logger
	listener net.Listener
	sockPath string
	started  time.Time

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server backed by queries. log may be nil.
func NewServer(queries AppQueries, sockPath string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		queries:    queries,
		log:        log.Named("socket"),
		sockPath:   sockPath,
		done:       make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. It handles stale sockets by
// attempting a connection first. If the connection fails, the stale socket
// is removed before binding.
func (s *Server) Start() error {
	// Handle stale socket
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return fmt.Errorf("daemon already running at %s", s.sockPath)
		}
		s.log.Info("removing stale socket", zap.String("path", s.sockPath))
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	s.wg.Add(1)
	go s.acceptLoop()

	s.log.Debug("listening", zap.String("path", s.sockPath))
	return nil
}

// Stop closes the listener, waits for open connections to finish and
// removes the socket file. Idempotent: safe after a remote shutdown plus a signal.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.sockPath)
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown request
// is received. The daemon's main goroutine should select on this alongside
// OS signals so the process actually exits after a remote stop.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	// Unblock the scanner when the server stops.
	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-s.done:
			conn.Close()
		case <-closed:
		}
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB max message

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, Response{Error: "invalid request JSON"})
			continue
		}

		resp := s.handleRequest(req)
		s.writeResponse(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodAsk:
		return s.handleAsk(req)
	case MethodEntries:
		return s.handleEntries(req)
	case MethodSuggestions:
		return Response{ID: req.ID, Result: SuggestionsResult{Suggestions: s.queries.Matcher().KB().Suggestions()}}
	case MethodHealth:
		return Response{ID: req.ID, Result: Health(s.queries, s.started)}
	case MethodReload:
		return s.handleReload(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: struct{}{}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

func (s *Server) handleAsk(req Request) Response {
	// Re-marshal params to decode into AskParams
	paramsJSON, err := json.Marshal(req.Params)
	if err != nil {
		return Response{ID: req.ID, Error: "invalid ask params"}
	}
	var params AskParams
	if err := json.Unmarshal(paramsJSON, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid ask params"}
	}

	start := time.Now()
	res := s.queries.Matcher().Answer(params.Text)
	elapsed := time.Since(start)

	s.log.Debug("ask",
		zap.String("id", req.ID),
		zap.String("provenance", string(res.Provenance.Kind)),
		zap.String("entry", res.Provenance.EntryID),
		zap.Int("score", res.Score),
		zap.Duration("elapsed", elapsed))
	return Response{ID: req.ID, Result: NewAskResult(res, elapsed)}
}

func (s *Server) handleEntries(req Request) Response {
	k := s.queries.Matcher().KB()
	return Response{
		ID: req.ID,
		Result: EntriesResult{
			Entries: k.Entries(),
			Count:   k.Len(),
			Source:  s.queries.Source(),
		},
	}
}

func (s *Server) handleReload(req Request) Response {
	result, err := s.queries.Reload()
	if err != nil {
		s.log.Warn("reload rejected", zap.Error(err))
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

// Health summarizes the active KB. Shared with the HTTP API.
func Health(q AppQueries, started time.Time) HealthResult {
	m := q.Matcher()
	return HealthResult{
		Status:   "ok",
		Entries:  m.KB().Len(),
		Keywords: m.KeywordCount(),
		Source:   q.Source(),
		Reloads:  q.Reloads(),
		Uptime:   time.Since(started).Round(time.Second).String(),
	}
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("marshal response", zap.Error(err))
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
