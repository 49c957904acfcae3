// Package server exposes the assistant over HTTP: a WebSocket chat
// endpoint plus health and metrics routes.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/engine"
	"github.com/fridaylabs/friday-go/metrics"
	"github.com/fridaylabs/friday-go/voice"
)

// SessionFactory builds a per-connection dispatcher. The speaker and
// listener route follow-up prompts over the connection; each session
// gets its own fact store and conversation buffer.
type SessionFactory func(speaker voice.Speaker, listener voice.Listener) *engine.Dispatcher

// Server serves the chat surface.
type Server struct {
	factory  SessionFactory
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
	log      *logrus.Entry
	router   chi.Router
}

// New creates a server around the session factory.
func New(factory SessionFactory, m *metrics.Metrics, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		factory: factory,
		metrics: m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The chat surface has no cross-origin credentials to
			// protect; clients are expected to be local UIs.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.WithField("component", "server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWS)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	s.router = r
	return s
}

// Router returns the HTTP handler for mounting or testing.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the chat surface on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.WithField("addr", addr).Info("listening")
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	sess := newSession(conn, s.log)
	sess.dispatcher = s.factory(sess, sess)
	sess.run(r.Context())
}
