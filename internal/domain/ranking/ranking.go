// Package ranking turns scored resumes into a strictly total order and
// applies the head-to-head override rule on near-ties.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"cfpsim/internal/domain/ledger"
	"cfpsim/internal/domain/model"
	"cfpsim/internal/domain/scoring"
)

// DefaultComparableDelta is the score distance at which two teams count
// as comparable for the head-to-head rule.
const DefaultComparableDelta = 0.1

// PublicSize is how much of the order is exposed as the public ranking.
// The full order is kept internally for playoff bookkeeping.
const PublicSize = 25

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithComparableDelta overrides the comparable-score threshold.
func WithComparableDelta(delta float64) Option {
	return func(r *Ranker) {
		if delta >= 0 {
			r.delta = delta
		}
	}
}

// Ranker orders teams by model score, with deterministic tie-breaking and
// the head-to-head override.
type Ranker struct {
	delta float64
}

// NewRanker creates a Ranker with the default comparable threshold.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{delta: DefaultComparableDelta}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every snapshot and produces the 1..N order. Sorting is
// ascending by score (lower is better) with team id as the final
// tie-break, so the pre-override order is already total and reproducible.
//
// The head-to-head override then runs as a single left-to-right pass over
// adjacent pairs: when the lower team has a recorded win over the team
// directly above it and their scores are within the comparable delta, the
// pair swaps. One pass, first match wins. Cyclic chains (A beat B beat C
// beat A) are deliberately not resolved to a consistent total order; the
// output is stable and reproducible, not a fixed point.
//
// Teams with no games played always sort below every team with games,
// whatever the model says about them.
func (r *Ranker) Rank(ctx context.Context, l *ledger.Ledger, asOfWeek int, snapshots []model.Snapshot, scorer scoring.Scorer) ([]model.RankingEntry, error) {
	entries := make([]model.RankingEntry, 0, len(snapshots))
	for _, s := range snapshots {
		score, err := scorer.Score(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("score team %q: %w", s.TeamID, err)
		}
		entries = append(entries, model.RankingEntry{TeamID: s.TeamID, Score: score, Snapshot: s})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if played, otherPlayed := a.Snapshot.GamesPlayed > 0, b.Snapshot.GamesPlayed > 0; played != otherPlayed {
			return played
		}
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		return a.TeamID < b.TeamID
	})

	beat := beatMap(l, asOfWeek)
	for i := 0; i+1 < len(entries); i++ {
		upper, lower := entries[i], entries[i+1]
		if abs(upper.Score-lower.Score) > r.delta {
			continue
		}
		if beat[lower.TeamID][upper.TeamID] {
			entries[i], entries[i+1] = lower, upper
		}
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Top25 is the public slice of a full order.
func Top25(entries []model.RankingEntry) []model.RankingEntry {
	if len(entries) <= PublicSize {
		return entries
	}
	return entries[:PublicSize]
}

// beatMap indexes decided games through asOfWeek as winner -> loser set.
func beatMap(l *ledger.Ledger, asOfWeek int) map[string]map[string]bool {
	beat := make(map[string]map[string]bool)
	for _, g := range l.GamesThrough(asOfWeek) {
		if !g.Result.Decided {
			continue
		}
		winner, loser := g.Result.WinnerID, g.LoserID()
		if beat[winner] == nil {
			beat[winner] = make(map[string]bool)
		}
		beat[winner][loser] = true
	}
	return beat
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
