// Package scoring defines the contract for turning a team resume into a
// ranking score. The engine treats the model as opaque: anything with a
// single pure Score method fits, so the trained model can be swapped or
// stubbed without touching the pipeline.
package scoring

import (
	"context"
	"sort"

	"cfpsim/internal/domain/model"
)

// Scorer maps a resume snapshot to a real-valued ranking score. Lower is
// better. Implementations must be deterministic: scoring the same
// snapshot twice yields bit-identical output. Failures propagate to the
// caller unchanged and abort the run.
type Scorer interface {
	Score(ctx context.Context, s model.Snapshot) (float64, error)
}

// Option applies a configuration option to the LinearModel.
type Option func(*LinearModel)

// WithWeights sets per-feature weights. Feature names follow the snapshot
// JSON field names; unknown names contribute nothing.
func WithWeights(weights map[string]float64) Option {
	return func(m *LinearModel) {
		m.weights = make(map[string]float64, len(weights))
		for name, w := range weights {
			m.weights[name] = w
		}
	}
}

// WithBias sets the model intercept.
func WithBias(bias float64) Option {
	return func(m *LinearModel) {
		m.bias = bias
	}
}

// LinearModel is a weighted sum over the feature vector. It stands in for
// the externally trained model: same contract, trivially deterministic.
type LinearModel struct {
	weights map[string]float64
	bias    float64
}

// NewLinearModel creates a linear scorer. The default weights reward
// record, schedule strength, and record strength; they are a usable
// stand-in, not a trained artifact.
func NewLinearModel(opts ...Option) *LinearModel {
	m := &LinearModel{
		weights: map[string]float64{
			"win_pct":                    -40.0,
			"record_strength_score":      -1.5,
			"weighted_sos_score":         -6.0,
			"sos_score":                  -3.0,
			"sos_of_sos":                 -0.5,
			"head_to_head_wins_vs_top10": -0.8,
			"common_opponents_win_pct":   -1.0,
			"dominant_win_pct":           -1.5,
			"current_win_streak":         -0.2,
		},
		bias: 70.0,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Score computes the weighted sum. Weight keys are visited in sorted
// order so floating-point accumulation is reproducible.
func (m *LinearModel) Score(_ context.Context, s model.Snapshot) (float64, error) {
	names := make([]string, 0, len(m.weights))
	for name := range m.weights {
		names = append(names, name)
	}
	sort.Strings(names)

	score := m.bias
	for _, name := range names {
		score += m.weights[name] * featureValue(s, name)
	}
	return score, nil
}

// featureValue projects one named feature out of a snapshot. Missing or
// unknown features read as 0 so scoring stays total.
func featureValue(s model.Snapshot, name string) float64 {
	switch name {
	case "wins":
		return float64(s.Wins)
	case "losses":
		return float64(s.Losses)
	case "games_played":
		return float64(s.GamesPlayed)
	case "win_pct":
		return s.WinPct
	case "sos_score":
		return s.SOS
	case "weighted_sos_score":
		return s.WeightedSOS
	case "sos_of_sos":
		return s.SOSOfSOS
	case "wins_vs_top10":
		return float64(s.WinsVsTop10)
	case "wins_vs_top25":
		return float64(s.WinsVsTop25)
	case "wins_vs_winning_teams":
		return float64(s.WinsVsWinning)
	case "wins_vs_top_tier":
		return float64(s.WinsVsTopTier)
	case "notable_wins":
		return float64(s.NotableWins)
	case "bad_losses":
		return float64(s.BadLosses)
	case "losses_vs_top10":
		return float64(s.LossesVsTop10)
	case "record_strength_score":
		return s.RecordStrength
	case "record_strength_per_game":
		return s.RecordStrengthPerGame
	case "head_to_head_wins_vs_ranked":
		return float64(s.H2HWinsVsRanked)
	case "head_to_head_wins_vs_top10":
		return float64(s.H2HWinsVsTop10)
	case "head_to_head_wins_vs_top25":
		return float64(s.H2HWinsVsTop25)
	case "common_opponents_count":
		return float64(s.CommonOppCount)
	case "common_opponents_win_pct":
		return s.CommonOppWinPct
	case "common_opponents_avg_margin":
		return s.CommonOppAvgMargin
	case "dominant_wins":
		return float64(s.DominantWins)
	case "comfortable_wins":
		return float64(s.ComfortableWins)
	case "dominant_win_pct":
		return s.DominantWinPct
	case "point_differential":
		return s.PointDifferential
	case "current_win_streak":
		return float64(s.WinStreak)
	case "won_last_game":
		if s.WonLast {
			return 1
		}
		return 0
	case "last_opponent_quality":
		return s.LastOppQuality
	case "is_conference_champion":
		if s.ConfChampion {
			return 1
		}
		return 0
	default:
		return 0
	}
}
