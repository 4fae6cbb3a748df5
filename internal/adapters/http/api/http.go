// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cfpsim/internal/adapters/seasondata"
	service "cfpsim/internal/app"
	"cfpsim/internal/domain/ledger"
	"cfpsim/internal/domain/model"
	"cfpsim/internal/domain/playoff"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Run executes one scenario end to end.
	Run(ctx context.Context, req service.Request) (model.ScenarioResult, error)

	// RunWeekly projects rankings week by week over a range.
	RunWeekly(ctx context.Context, req service.Request, startWeek, endWeek int) (map[int]model.ScenarioResult, error)

	// SeasonData exposes the loaded season inputs.
	SeasonData(ctx context.Context, year int) (seasondata.SeasonData, error)
}

// Server wires HTTP routes for the scenario API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	simulateHandler *SimulateHandler
	seasonHandler   *SeasonHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		simulateHandler: NewSimulateHandler(deps),
		seasonHandler:   NewSeasonHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /api/simulate", MetricsMiddleware(s.simulateHandler.HandleSimulate, "simulate"))
	mux.HandleFunc("GET /api/season/{year}/data", MetricsMiddleware(s.seasonHandler.HandleSeasonData, "season_data"))
	mux.HandleFunc("GET /api/season/{year}/week/{week}/rankings", MetricsMiddleware(s.seasonHandler.HandleWeekRankings, "week_rankings"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusFor translates upstream errors into HTTP status codes so handlers
// share one mapping.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, seasondata.ErrSeasonNotFound):
		return http.StatusNotFound, "season_not_found"
	case errors.Is(err, ledger.ErrUnknownGame),
		errors.Is(err, ledger.ErrInvalidOverride),
		errors.Is(err, ledger.ErrDuplicateGame):
		return http.StatusUnprocessableEntity, "invalid_override"
	case errors.Is(err, playoff.ErrInsufficientChampions):
		return http.StatusUnprocessableEntity, "insufficient_champions"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
