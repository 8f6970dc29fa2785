// Package stream serves render sessions over websockets. Every connection
// gets its own session and scheduler; nothing is shared between clients.
//
// Clients send text commands (see ParseCommand). The server answers with a
// hello message and then one message per frame, msgpack encoded by default
// or, with ?format=text, glyph frames as plain text.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/session"
)

const (
	writeWait       = 5 * time.Second
	maxMessageSize  = 512
	shutdownTimeout = 5 * time.Second
)

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

func WithFPS(fps int) Option {
	return func(s *Server) {
		if fps > 0 {
			s.fps = fps
		}
	}
}

type Server struct {
	base     *config.Config
	log      *slog.Logger
	fps      int
	upgrader websocket.Upgrader

	mu   sync.Mutex
	live map[string]struct{}
	done chan struct{}
	once sync.Once
}

// NewServer creates a server whose sessions start from base. Clients may pick
// another preset and grid size with query parameters.
func NewServer(base *config.Config, opts ...Option) *Server {
	s := &Server{
		base: base,
		log:  slog.New(slog.DiscardHandler),
		fps:  base.FPS,
		live: make(map[string]struct{}),
		done: make(chan struct{}),
	}
	if s.fps <= 0 {
		s.fps = config.DefaultFPS
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Sessions is the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Close ends every open connection.
func (s *Server) Close() {
	s.once.Do(func() { close(s.done) })
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "ok %d\n", s.Sessions())
}

// connConfig builds the session config for one client from the query.
func (s *Server) connConfig(q url.Values) (*config.Config, error) {
	cfg := s.base.Clone()
	if name := q.Get("preset"); name != "" {
		if cfg = config.GetPreset(name); cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		cfg.FPS = s.base.FPS
	}
	for key, dst := range map[string]*int{"cols": &cfg.Cols, "rows": &cfg.Rows} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad %s %q", key, v)
		}
		*dst = n
	}
	if cfg.Cols > MaxCols || cfg.Rows > MaxRows {
		return nil, fmt.Errorf("grid larger than %dx%d", MaxCols, MaxRows)
	}
	switch q.Get("glyph") {
	case "on":
		cfg.Glyph.Enabled = true
	case "off":
		cfg.Glyph.Enabled = false
	}
	return cfg, nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cfg, err := s.connConfig(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := session.New(cfg, session.WithLogger(s.log))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	s.track(sess.ID(), true)
	defer s.track(sess.ID(), false)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	c := &client{
		conn:  conn,
		sched: session.NewScheduler(sess),
		fps:   s.fps,
		text:  q.Get("format") == "text",
	}
	err = c.run(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
	default:
		sess.Logger().Warn("connection ended", "err", err)
	}
	sess.Logger().Info("client disconnected", "frames", c.sched.Stats().Frames)
}

func (s *Server) track(id string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.live[id] = struct{}{}
	} else {
		delete(s.live, id)
	}
}
