// Package http exposes a read-only debug API over live agents.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/graph"
)

// Agents is the lookup the server reads from. *arbor.Registry implements it.
type Agents interface {
	Get(id string) (arbor.Observable, error)
	List() []arbor.Observable
}

// Server serves agent snapshots and graphs.
type Server struct {
	Agents  Agents
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler mounts h on /metrics, usually promhttp.HandlerFor.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the logger used for encoding failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// AgentSummary is one entry of the /agents listing.
type AgentSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Primary string `json:"primary"`
	Active  string `json:"active"`
	Ticks   uint64 `json:"ticks"`
}

// NewHandler creates the HTTP handler for agents.
func NewHandler(agents Agents, opts ...Option) http.Handler {
	s := &Server{Agents: agents}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/agents", s.ListAgents)
	r.Get("/agents/{id}", s.GetAgent)
	r.Get("/agents/{id}/graph", s.GetGraph)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth reports liveness.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo reports the build version.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]any{
		"name":    "arbor",
		"version": arbor.Version,
		"agents":  len(s.Agents.List()),
	})
}

// ListAgents returns a summary of every agent.
func (s *Server) ListAgents(w http.ResponseWriter, r *http.Request) {
	out := []AgentSummary{}
	for _, a := range s.Agents.List() {
		snap := a.Snapshot()
		out = append(out, AgentSummary{
			ID:      snap.ID,
			Name:    snap.Name,
			Primary: snap.Machine.Primary,
			Active:  snap.Machine.Active,
			Ticks:   snap.Ticks,
		})
	}
	s.writeJSON(w, out)
}

// GetAgent returns the full snapshot of one agent.
func (s *Server) GetAgent(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, a.Snapshot())
}

// GetGraph renders the agent's machine as Mermaid. The runtime overlay is
// included unless overlay=false.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	snap := a.Snapshot().Machine
	var overlay *graph.GraphOverlay
	if r.URL.Query().Get("overlay") != "false" {
		overlay = graph.OverlayFrom(snap)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, graph.GenerateMermaid(snap, overlay)); err != nil {
		s.Logger.Error("failed to write graph", "err", err)
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (arbor.Observable, bool) {
	a, err := s.Agents.Get(chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, arbor.ErrAgentNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return nil, false
	}
	return a, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("failed to encode response", "err", err)
	}
}
