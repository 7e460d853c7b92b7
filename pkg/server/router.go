package server

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
	"github.com/NVIDIA/dqgate/pkg/serializer"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	// System endpoints (no rate limiting)
	r.Get("/", s.handleDefault)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit, s.limitBody, apiVersion)
		for path, h := range s.handlers {
			r.HandleFunc(path, h)
		}
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusNotFound, dqerrors.ErrCodeNotFound,
			"Route not found", false, map[string]any{"path": req.URL.Path})
	})

	return r
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := struct {
		Name      string   `json:"name" yaml:"name"`
		Version   string   `json:"version" yaml:"version"`
		Ready     bool     `json:"ready" yaml:"ready"`
		Timestamp string   `json:"timestamp" yaml:"timestamp"`
		Routes    []string `json:"routes" yaml:"routes"`
	}{
		Name:      s.name,
		Version:   s.version,
		Ready:     s.Ready(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    append(slices.Sorted(maps.Keys(s.handlers)), "/health", "/ready", "/metrics"),
	}

	serializer.Respond(w, r, http.StatusOK, resp)
}
