package web

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/corey/faq/internal/adapters/socket"
)

// Server serves the chat widget and JSON API over HTTP.
type Server struct {
	queries  socket.AppQueries
	log      *zap.Logger
	echo     *echo.Echo
	listener net.Listener
	httpSrv  *http.Server
	started  time.Time
	stopOnce sync.Once
	done     chan struct{}

	addrFilePath string // .faq/run/http.addr
}

// NewServer creates an HTTP server for the chat API.
// The addrFilePath is where the bound address is written for discovery.
func NewServer(queries socket.AppQueries, addrFilePath string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		queries:      queries,
		log:          log.Named("web"),
		addrFilePath: addrFilePath,
		started:      time.Now(),
		done:         make(chan struct{}),
	}
	s.echo = s.routes()
	return s
}

// DefaultPort computes a project-specific port: 18000 + (hash(abs_path) % 1000).
func DefaultPort(projectRoot string) int {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	// Use first 4 bytes as uint32
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return 18000 + int(n%1000)
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	e.StaticFS("/", echo.MustSubFS(staticFS, "static"))

	api := e.Group("/api")
	api.POST("/ask", s.handleAsk)
	api.GET("/ask", s.handleAskQuery)
	api.GET("/suggestions", s.handleSuggestions)
	api.GET("/entries", s.handleEntries)
	api.GET("/health", s.handleHealth)
	api.POST("/reload", s.handleReload)
	return e
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start begins listening on addr (host:port; port 0 picks a free one).
// Writes the bound address to the discovery file.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.started = time.Now()
	s.httpSrv = &http.Server{Handler: s.echo, ReadHeaderTimeout: 5 * time.Second}

	// Write address file for discovery
	if s.addrFilePath != "" {
		if err := os.WriteFile(s.addrFilePath, []byte(s.Addr()), 0644); err != nil {
			s.log.Warn("write address file", zap.String("path", s.addrFilePath), zap.Error(err))
		}
	}

	go func() {
		defer close(s.done)
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("serve", zap.Error(err))
		}
	}()
	s.log.Debug("listening", zap.String("addr", s.Addr()))
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
			<-s.done
		}
		if s.addrFilePath != "" {
			os.Remove(s.addrFilePath)
		}
	})
}

// Addr returns the bound host:port, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the chat widget URL.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// askRequest accepts {"text": ...}. A null or missing text is an empty question.
type askRequest struct {
	Text *string `json:"text"`
}

func (s *Server) handleAsk(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	text := ""
	if req.Text != nil {
		text = *req.Text
	}
	return c.JSON(http.StatusOK, s.ask(text))
}

func (s *Server) handleAskQuery(c echo.Context) error {
	return c.JSON(http.StatusOK, s.ask(c.QueryParam("q")))
}

func (s *Server) ask(text string) socket.AskResult {
	start := time.Now()
	res := s.queries.Matcher().Answer(text)
	return socket.NewAskResult(res, time.Since(start))
}

func (s *Server) handleSuggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, socket.SuggestionsResult{
		Suggestions: s.queries.Matcher().KB().Suggestions(),
	})
}

func (s *Server) handleEntries(c echo.Context) error {
	k := s.queries.Matcher().KB()
	return c.JSON(http.StatusOK, socket.EntriesResult{
		Entries: k.Entries(),
		Count:   k.Len(),
		Source:  s.queries.Source(),
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, socket.Health(s.queries, s.started))
}

func (s *Server) handleReload(c echo.Context) error {
	result, err := s.queries.Reload()
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
