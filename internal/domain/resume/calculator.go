// Package resume derives per-team, per-week resume statistics from a game
// ledger. Every statistic for week W is a pure function of games with
// week <= W; nothing here may read a later game.
package resume

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"cfpsim/internal/domain/ledger"
	"cfpsim/internal/domain/model"
)

// Fixed record-strength values. Wins are rewarded by opponent tier; losses
// to strong opponents cost little while bad losses cost the most.
const (
	winVsTop10Value   = 3.0
	winVsTop25Value   = 2.0
	winVsWinningValue = 1.0
	winBaseValue      = 0.5
	lossVsTop10Value  = -0.5
	lossBadValue      = -3.0
	lossBaseValue     = -1.0
)

// Dominance margin thresholds. Live win-probability data is unavailable,
// so final margin stands in for game control.
const (
	dominantMargin    = 14
	comfortableMargin = 7
)

const commonOpponentPool = 25

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithChampions sets the season's conference champions (conference -> team
// id). The champion flag only turns on at the season's final week.
func WithChampions(champions map[string]string) Option {
	return func(c *Calculator) {
		c.champions = make(map[string]bool, len(champions))
		for _, teamID := range champions {
			c.champions[teamID] = true
		}
	}
}

// WithFinalWeek sets the season's terminal week.
func WithFinalWeek(week int) Option {
	return func(c *Calculator) {
		if week > 0 {
			c.finalWeek = week
		}
	}
}

// WithWorkerCount bounds the parallelism of batch computation.
func WithWorkerCount(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Calculator computes Snapshots from one ledger. It holds no mutable
// state after construction, so a single Calculator is safe for concurrent
// reads.
type Calculator struct {
	ledger    *ledger.Ledger
	teams     map[string]model.Team
	polls     []model.Poll // authoritative rankings, week-sorted
	champions map[string]bool
	finalWeek int
	workers   int
	degraded  map[string]bool // game ids with unknown margins
}

// NewCalculator builds a Calculator over a ledger, the season's team
// directory, and the authoritative weekly polls used for opponent tiering.
func NewCalculator(l *ledger.Ledger, teams []model.Team, polls []model.Poll, opts ...Option) *Calculator {
	c := &Calculator{
		ledger:    l,
		teams:     make(map[string]model.Team, len(teams)),
		polls:     make([]model.Poll, len(polls)),
		finalWeek: 15,
		workers:   runtime.NumCPU(),
		degraded:  make(map[string]bool),
	}
	for _, t := range teams {
		c.teams[t.ID] = t
	}
	copy(c.polls, polls)
	sort.Slice(c.polls, func(i, j int) bool { return c.polls[i].Week < c.polls[j].Week })
	for _, id := range l.DegradedGameIDs() {
		c.degraded[id] = true
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// priorPoll returns the most recent authoritative poll with week strictly
// before asOfWeek, or a zero Poll when none exists.
func (c *Calculator) priorPoll(asOfWeek int) model.Poll {
	var prior model.Poll
	for _, p := range c.polls {
		if p.Week >= asOfWeek {
			break
		}
		prior = p
	}
	return prior
}

// Snapshot computes a single team's resume as of a week. A team with no
// decided games yields a zero-valued snapshot, never an error; it must
// sort to the bottom of any ranking.
func (c *Calculator) Snapshot(teamID string, asOfWeek int) model.Snapshot {
	idx := c.buildIndex(asOfWeek)
	return c.snapshot(idx, teamID)
}

// All computes snapshots for every team in the ledger as of a week. Teams
// are independent, so computation fans out across a bounded worker group;
// the result is merged back into team-id order so completion order never
// affects downstream ranking.
func (c *Calculator) All(ctx context.Context, asOfWeek int) ([]model.Snapshot, error) {
	idx := c.buildIndex(asOfWeek)
	teamIDs := c.ledger.TeamIDs()
	out := make([]model.Snapshot, len(teamIDs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, id := range teamIDs {
		g.Go(func() error {
			out[i] = c.snapshot(idx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
