// Package web exposes the HTTP trigger surface used in serve mode.
//
// The scheduler (cron, EventBridge, a manual curl) POSTs /run to execute
// one pipeline run. Runs are serialized: a trigger arriving while a run
// is in flight is rejected rather than queued.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fredgido/triathlon-dashboard/internal/config"
	"github.com/fredgido/triathlon-dashboard/internal/logging"
	"github.com/fredgido/triathlon-dashboard/internal/pipeline"
)

// Trigger starts one pipeline run.
type Trigger interface {
	Run(ctx context.Context) (*pipeline.Summary, error)
}

// Server is the HTTP trigger server.
type Server struct {
	trigger Trigger
	router  *chi.Mux
	server  *http.Server

	mu      sync.Mutex
	running bool
}

// NewServer creates a trigger server around the given runner.
func NewServer(trigger Trigger, cfg *config.Config) *Server {
	s := &Server{
		trigger: trigger,
		router:  chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/run", s.handleRun)

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: s.router,
	}
	return s
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the underlying router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.tryAcquire() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a run is already in progress"})
		return
	}
	defer s.release()

	logger := logging.FromContext(r.Context())

	summary, err := s.trigger.Run(r.Context())
	if err != nil {
		logger.Error("run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Server) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
