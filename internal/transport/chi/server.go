package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/HeckerOO1/Search-engine/internal/domain"
	domfb "github.com/HeckerOO1/Search-engine/internal/domain/feedback"
	"github.com/HeckerOO1/Search-engine/internal/domain/query"
	feedbackuc "github.com/HeckerOO1/Search-engine/internal/usecase/feedback"
	healthuc "github.com/HeckerOO1/Search-engine/internal/usecase/health"
	searchuc "github.com/HeckerOO1/Search-engine/internal/usecase/search"
	statsuc "github.com/HeckerOO1/Search-engine/internal/usecase/stats"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeInternalError    = "internal_error"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// searchService runs one query through the pipeline.
type searchService interface {
	Search(ctx context.Context, q query.Query) (searchuc.Response, error)
}

// feedbackService applies click/return events.
type feedbackService interface {
	Record(ctx context.Context, ev domfb.Event) (feedbackuc.Outcome, error)
}

// statsService reports daily usage.
type statsService interface {
	Report(ctx context.Context) statsuc.Report
}

// healthService aggregates component checks.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server exposes the search pipeline over a JSON API.
type Server struct {
	search        searchService
	feedback      feedbackService
	stats         statsService
	health        healthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search searchService,
	feedback feedbackService,
	stats statsService,
	health healthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		feedback: feedback,
		stats:    stats,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidAction, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidURL, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrMissingSession, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/search", s.Search)
	r.Post("/api/feedback", s.Feedback)
	r.Get("/api/stats", s.Stats)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchRequest is the POST /api/search body.
type searchRequest struct {
	Query          string `json:"query"`
	ForceEmergency bool   `json:"force_emergency"`
	Enhanced       bool   `json:"enhanced"`
	SessionID      string `json:"session_id"`
	MaxResults     int    `json:"max_results"`
}

// Search handles POST /api/search. A missing session id is minted so
// the client can carry it into feedback calls.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	q, err := query.New(req.Query, req.ForceEmergency, req.Enhanced, sessionID, req.MaxResults)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// feedbackRequest is the POST /api/feedback body.
type feedbackRequest struct {
	Action    string `json:"action"`
	URL       string `json:"url"`
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// feedbackResponse reports what the event changed.
type feedbackResponse struct {
	PogoDetected   bool `json:"pogo_detected"`
	PenaltyApplied bool `json:"penalty_applied"`
	PogoCount      int  `json:"pogo_count"`
}

// Feedback handles POST /api/feedback.
func (s *Server) Feedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ev, err := domfb.NewEvent(domfb.Action(req.Action), req.URL, req.Query, req.SessionID, time.Time{})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out, err := s.feedback.Record(r.Context(), ev)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feedbackResponse{
		PogoDetected:   out.PogoDetected,
		PenaltyApplied: out.Demoted,
		PogoCount:      out.PogoCount,
	})
}

// Stats handles GET /api/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Report(r.Context()))
}

// healthResponse is the GET /health body.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health. A degraded service still answers
// 200: the heuristic classifier keeps search functional without the
// trained model.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrQueryTooLong,
		domain.ErrInvalidAction,
		domain.ErrInvalidURL,
		domain.ErrMissingSession,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
