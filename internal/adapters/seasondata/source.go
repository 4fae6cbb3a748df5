// Package seasondata supplies finalized historical season data to the
// engine: games, teams, authoritative weekly rankings, and conference
// champions. Acquisition from the upstream provider is out of scope; this
// package only reads the already-cached season files and serves them.
package seasondata

import (
	"context"

	"cfpsim/internal/domain/model"
)

// SeasonData is one season's complete input set. Consumers must treat
// every slice and map as read-only; scenario runs copy what they mutate.
type SeasonData struct {
	Season      int               `json:"season"`
	Games       []model.Game      `json:"games"`
	Teams       []model.Team      `json:"teams"`
	Polls       []model.Poll      `json:"rankings"`
	Champions   map[string]string `json:"champions"` // conference -> team id
	CurrentWeek int               `json:"current_week"`
}

// Source loads season data by year.
type Source interface {
	Season(ctx context.Context, year int) (SeasonData, error)
}
