// Package bridge exposes a serial-attached module over HTTP.
//
// Clients connect to /ws and receive every decoded event as a JSON
// envelope:
//
//	{"kind":"track_finished","event":{"track":5,"device":2}}
//
// They send commands by name, with the same names and arguments as the
// command line:
//
//	{"id":"1","command":"volume","args":["20"]}
//
// and get one reply per request:
//
//	{"kind":"result","id":"1","ok":true}
//
// Prometheus metrics are served on /metrics when a registry is configured.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/metrics"
	"github.com/muurk/dfplayer/internal/player"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Controller runs commands against a Player with exclusive access.
// *link.Link implements it.
type Controller interface {
	Do(fn func(p *player.Player) error) error
}

// Config holds the bridge configuration
type Config struct {
	Addr            string // Listen address, e.g. ":8090"
	ShutdownTimeout time.Duration
}

// Server serves the websocket and metrics endpoints
type Server struct {
	config   Config
	ctrl     Controller
	hub      *Hub
	registry *prometheus.Registry
	upgrader websocket.Upgrader

	mu       sync.Mutex
	http     *http.Server
	listener net.Listener
	wg       sync.WaitGroup
}

// New creates a bridge. registry and m may be nil to disable metrics.
func New(config Config, ctrl Controller, registry *prometheus.Registry, m *metrics.AppMetrics) *Server {
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	hub := NewHub()
	if m != nil {
		hub.onCount = func(n int) { m.BridgeClients.Set(float64(n)) }
	}

	return &Server{
		config:   config,
		ctrl:     ctrl,
		hub:      hub,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The bridge is a LAN tool; any page may connect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Hub returns the event fan-out. Attach it to the link as an event handler.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.registry != nil {
		mux.Handle("/metrics", metrics.Handler(s.registry))
	}
	return mux
}

// Listen binds the listen address. It returns the bound address, which
// differs from the configured one when port 0 was requested.
func (s *Server) Listen() (net.Addr, error) {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Unlock()

	logging.Info("Bridge listening", zap.String("addr", ln.Addr().String()))
	return ln.Addr(), nil
}

// Serve accepts connections until ctx is cancelled, then shuts down
// gracefully. Listen must have been called.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	srv, ln := s.http, s.listener
	s.mu.Unlock()
	if srv == nil {
		return errors.New("bridge: Serve called before Listen")
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown stops accepting connections and disconnects every client
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down bridge...")

	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	// Hijacked websocket connections are not tracked by http.Server
	s.hub.closeAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All clients disconnected")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}
	return err
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := newClient(conn)
	logging.LogConnection(c.remoteAddr, "websocket_upgraded")
	s.hub.add(c)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		c.writePump()
	}()
	go func() {
		defer s.wg.Done()
		defer func() {
			s.hub.remove(c)
			logging.LogConnection(c.remoteAddr, "websocket_closed")
		}()
		c.readPump(s.execute)
	}()
}

// execute runs one client request against the player
func (s *Server) execute(req Request) error {
	if req.Command == "" {
		return fmt.Errorf("%w: missing command", player.ErrBadArguments)
	}
	logging.Info("Bridge command",
		zap.String("command", req.Command),
		zap.Strings("args", req.Args),
	)
	return s.ctrl.Do(func(p *player.Player) error {
		return player.Execute(p, req.Command, req.Args...)
	})
}
