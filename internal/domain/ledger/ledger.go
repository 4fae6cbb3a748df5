// Package ledger builds the normalized, immutable set of game results a
// scenario run reads. Each run owns its own Ledger; nothing mutates it
// after Build returns, so read-only sharing across goroutines is safe.
package ledger

import (
	"fmt"
	"sort"

	"cfpsim/internal/domain/model"
)

// Ledger is a plain immutable snapshot of base games with scenario
// overrides already applied.
type Ledger struct {
	games    []model.Game
	byID     map[string]int
	degraded []string // ids of games decided by a margin-less override
}

// Build constructs a Ledger from base games and result overrides. Overrides
// map game id to winner team id: the game's result becomes decided with an
// unknown margin. An override naming an id absent from base fails with
// ErrUnknownGame; one naming a non-participant winner fails with
// ErrInvalidOverride. An override matching the already-decided winner is a
// no-op, so the existing margin survives.
func Build(base []model.Game, overrides map[string]string) (*Ledger, error) {
	l := &Ledger{
		games: make([]model.Game, len(base)),
		byID:  make(map[string]int, len(base)),
	}
	copy(l.games, base)

	// Deterministic ordering regardless of input order: week, then id.
	sort.Slice(l.games, func(i, j int) bool {
		if l.games[i].Week != l.games[j].Week {
			return l.games[i].Week < l.games[j].Week
		}
		return l.games[i].ID < l.games[j].ID
	})
	for i, g := range l.games {
		if _, ok := l.byID[g.ID]; ok {
			return nil, fmt.Errorf("build ledger: game %q: %w", g.ID, ErrDuplicateGame)
		}
		l.byID[g.ID] = i
	}

	// Apply overrides in sorted id order so the degraded list is stable.
	ids := make([]string, 0, len(overrides))
	for id := range overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		winner := overrides[id]
		i, ok := l.byID[id]
		if !ok {
			return nil, fmt.Errorf("apply override for game %q: %w", id, ErrUnknownGame)
		}
		g := l.games[i]
		if !g.HasParticipant(winner) {
			return nil, fmt.Errorf("apply override for game %q: winner %q is not a participant: %w",
				id, winner, ErrInvalidOverride)
		}
		if g.Result.Decided && g.Result.WinnerID == winner {
			// Idempotent: the stated winner already won, keep the real margin.
			continue
		}
		g.Result = model.Result{Decided: true, WinnerID: winner}
		l.games[i] = g
		l.degraded = append(l.degraded, id)
	}
	return l, nil
}

// Games returns all games in deterministic (week, id) order. The returned
// slice is shared; callers must not modify it.
func (l *Ledger) Games() []model.Game {
	return l.games
}

// GamesThrough returns the games with Week <= week, preserving order. This
// is the only view feature computation is allowed to read.
func (l *Ledger) GamesThrough(week int) []model.Game {
	// Games are week-sorted, so the cut is a prefix.
	n := sort.Search(len(l.games), func(i int) bool { return l.games[i].Week > week })
	return l.games[:n]
}

// Game looks up a single game by id.
func (l *Ledger) Game(id string) (model.Game, bool) {
	i, ok := l.byID[id]
	if !ok {
		return model.Game{}, false
	}
	return l.games[i], true
}

// TeamIDs returns every team id appearing in the ledger, sorted.
func (l *Ledger) TeamIDs() []string {
	seen := make(map[string]struct{}, len(l.games)*2)
	for _, g := range l.games {
		seen[g.HomeID] = struct{}{}
		seen[g.AwayID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DegradedGameIDs lists games whose result came from a margin-less
// override. Margin-dependent features treat these as neutral.
func (l *Ledger) DegradedGameIDs() []string {
	return l.degraded
}

// Len returns the number of games.
func (l *Ledger) Len() int {
	return len(l.games)
}
