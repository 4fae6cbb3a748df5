// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	service "cfpsim/internal/app"
	"cfpsim/internal/domain/model"
)

// SimulateHandler handles scenario simulation requests.
type SimulateHandler struct {
	deps Dependencies
}

// NewSimulateHandler creates a new simulate handler.
func NewSimulateHandler(deps Dependencies) *SimulateHandler {
	return &SimulateHandler{deps: deps}
}

// simulateRequest mirrors the request schema for POST /api/simulate.
type simulateRequest struct {
	Season    int               `json:"season"`
	Week      int               `json:"target_week"`
	Overrides map[string]string `json:"game_outcomes"`

	// Weekly switches to the iterative mode: every week from StartWeek
	// through Week is projected, each feeding the next week's prior
	// ranking. StartWeek defaults to 1.
	Weekly    bool `json:"weekly"`
	StartWeek int  `json:"start_week"`
}

func (s simulateRequest) validate() error {
	switch {
	case s.Season <= 0:
		return fmt.Errorf("%w: missing or invalid season", ErrBadRequest)
	case s.Week <= 0:
		return fmt.Errorf("%w: missing or invalid target_week", ErrBadRequest)
	case s.Weekly && s.StartWeek > s.Week:
		return fmt.Errorf("%w: start_week after target_week", ErrBadRequest)
	}
	for id, winner := range s.Overrides {
		if strings.TrimSpace(id) == "" || strings.TrimSpace(winner) == "" {
			return fmt.Errorf("%w: empty game id or winner in game_outcomes", ErrBadRequest)
		}
	}
	return nil
}

type weeklyResponse struct {
	Season int                          `json:"season"`
	Weeks  map[int]model.ScenarioResult `json:"weeks"`
}

// HandleSimulate handles POST /api/simulate requests.
func (h *SimulateHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	run := service.Request{Season: req.Season, Week: req.Week, Overrides: req.Overrides}

	if req.Weekly {
		start := req.StartWeek
		if start < 1 {
			start = 1
		}
		results, err := h.deps.RunWeekly(r.Context(), run, start, req.Week)
		if err != nil {
			status, code := statusFor(err)
			writeError(w, status, code, err)
			return
		}
		writeJSON(w, http.StatusOK, weeklyResponse{Season: req.Season, Weeks: results})
		return
	}

	result, err := h.deps.Run(r.Context(), run)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
