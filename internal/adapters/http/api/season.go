// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	service "cfpsim/internal/app"
	"cfpsim/internal/domain/model"
)

// SeasonHandler handles season data and historical ranking requests.
type SeasonHandler struct {
	deps Dependencies
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(deps Dependencies) *SeasonHandler {
	return &SeasonHandler{deps: deps}
}

// HandleSeasonData handles GET /api/season/{year}/data requests.
func (h *SeasonHandler) HandleSeasonData(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}
	data, err := h.deps.SeasonData(r.Context(), year)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

type weekRankingsResponse struct {
	Season   int                  `json:"season"`
	Week     int                  `json:"week"`
	Rankings []model.RankingEntry `json:"rankings"`
}

// HandleWeekRankings handles GET /api/season/{year}/week/{week}/rankings.
// It runs the engine with an empty override set, so the response is the
// engine's projection for the historical ledger as of that week.
func (h *SeasonHandler) HandleWeekRankings(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}
	week, ok := pathInt(w, r, "week")
	if !ok {
		return
	}
	result, err := h.deps.Run(r.Context(), service.Request{Season: year, Week: week})
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, weekRankingsResponse{
		Season:   year,
		Week:     week,
		Rankings: result.Rankings,
	})
}

// pathInt parses a positive integer path parameter, writing a 400 on failure.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil || v < 1 {
		writeError(w, http.StatusBadRequest, "bad_request",
			fmt.Errorf("%w: invalid %s", ErrBadRequest, name))
		return 0, false
	}
	return v, true
}
