// Package http exposes the engine over a JSON REST API: session
// lifecycle, event dispatch, machine introspection and a Prometheus
// scrape endpoint.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/umlstate/umlstate/internal/dto"
	"github.com/umlstate/umlstate/internal/logging"
	"github.com/umlstate/umlstate/pkg/domain"
)

// Engine is the slice of the umlstate engine the API serves.
type Engine interface {
	Result() domain.ParseResult
	StartSession(ctx context.Context) (string, *domain.Snapshot, error)
	Session(ctx context.Context, id string) (*domain.Snapshot, error)
	Sessions(ctx context.Context) ([]string, error)
	EndSession(ctx context.Context, id string) error
	SendEvent(ctx context.Context, id, event string) (*domain.Snapshot, error)
	DOT() (string, error)
}

// Server routes HTTP requests to an Engine.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts a scrape handler at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler builds the chi router for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.getHealth)
	r.Get("/machine", s.getMachine)
	r.Get("/machine/dot", s.getMachineDOT)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/", s.listSessions)
		r.Get("/{id}", s.getSession)
		r.Delete("/{id}", s.deleteSession)
		r.Post("/{id}/events", s.postEvent)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getMachine(w http.ResponseWriter, r *http.Request) {
	result := s.engine.Result()

	resp := dto.MachineResponse{
		States:      make([]dto.StateResponse, 0, len(result.States())),
		Transitions: make([]dto.TransitionResponse, 0, len(result.Transitions())),
	}
	for _, st := range result.States() {
		resp.States = append(resp.States, dto.StateResponse{
			Parent:  st.Parent,
			Name:    st.Name,
			Initial: st.Initial,
		})
	}
	for _, tr := range result.Transitions() {
		resp.Transitions = append(resp.Transitions, dto.TransitionResponse{
			Source: tr.Source,
			Target: tr.Target,
			Event:  tr.Event,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMachineDOT(w http.ResponseWriter, r *http.Request) {
	out, err := s.engine.DOT()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(out))
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, snap, err := s.engine.StartSession(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sessionResponse(id, snap))
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.Sessions(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.SessionListResponse{Sessions: ids})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.engine.Session(r.Context(), id)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse(id, snap))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.engine.EndSession(r.Context(), id); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body dto.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if body.Event == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("event is required"))
		return
	}

	snap, err := s.engine.SendEvent(r.Context(), id, body.Event)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse(id, snap))
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRejectedEvent):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownState):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func sessionResponse(id string, snap *domain.Snapshot) dto.SessionResponse {
	return dto.SessionResponse{
		ID:      id,
		Current: snap.Current,
		Status:  string(snap.Status),
		Vars:    snap.Vars,
		History: snap.History,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, dto.ErrorResponse{Error: err.Error()})
}
