// Package service provides the scenario orchestrator: the top-level entry
// point that drives ledger construction, resume computation, scoring,
// ordering, and playoff selection for one what-if scenario.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cfpsim/internal/adapters/seasondata"
	"cfpsim/internal/domain/ledger"
	"cfpsim/internal/domain/model"
	"cfpsim/internal/domain/playoff"
	"cfpsim/internal/domain/ranking"
	"cfpsim/internal/domain/resume"
	"cfpsim/internal/domain/scoring"
	"cfpsim/pkg/logger"
	"cfpsim/pkg/metrics"
)

// Request describes one scenario: a season, the week to project, and the
// result overrides to apply on top of the historical ledger.
type Request struct {
	Season    int               `json:"season"`
	Week      int               `json:"target_week"`
	Overrides map[string]string `json:"game_outcomes"` // game id -> winner team id
}

// Service orchestrates scenario runs. It holds only immutable
// collaborators; every run owns its own ledger and derived state, so runs
// may execute concurrently.
type Service struct {
	source seasondata.Source
	scorer scoring.Scorer
	ranker *ranking.Ranker

	workerCount int
	finalWeek   int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the historical season data source.
func WithSource(src seasondata.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithScorer sets the trained ranking model. Anything satisfying the
// scoring.Scorer contract fits; the service never inspects it.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkerCount bounds the parallel batch resume computation.
func WithWorkerCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithFinalWeek sets the season's terminal week.
func WithFinalWeek(week int) Option {
	return func(s *Service) {
		if week > 0 {
			s.finalWeek = week
		}
	}
}

// WithComparableDelta sets the head-to-head comparable-score threshold.
func WithComparableDelta(delta float64) Option {
	return func(s *Service) {
		s.ranker = ranking.NewRanker(ranking.WithComparableDelta(delta))
	}
}

// New constructs a Service with default configuration. A source must be
// supplied via WithSource before Run is called.
func New(opts ...Option) *Service {
	s := &Service{
		scorer:      scoring.NewLinearModel(),
		ranker:      ranking.NewRanker(),
		workerCount: runtime.NumCPU(),
		finalWeek:   15,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run executes one scenario end to end. It is a pure function of its
// inputs: two calls with identical arguments yield identical results,
// RunID included. Partial-season requests (week before the final week)
// skip the playoff stages and return an empty bracket rather than erroring.
func (s *Service) Run(ctx context.Context, req Request) (model.ScenarioResult, error) {
	start := time.Now()

	data, err := s.source.Season(ctx, req.Season)
	if err != nil {
		metrics.RecordSimulationError("source")
		return model.ScenarioResult{}, fmt.Errorf("load season %d: %w", req.Season, err)
	}
	metrics.RecordSeasonLoad()

	result, err := s.run(ctx, req, data, data.Polls)
	if err != nil {
		return model.ScenarioResult{}, err
	}

	metrics.RecordSimulation(time.Since(start))
	s.logger.Info(ctx, "scenario run complete",
		logger.String("run_id", result.RunID),
		logger.Int("season", req.Season),
		logger.Int("week", req.Week),
		logger.Int("overrides", len(req.Overrides)),
		logger.Int("playoff_teams", len(result.PlayoffField)),
	)
	return result, nil
}

// run drives the pipeline over an explicit poll set so the weekly mode
// can feed each week's output forward as the next week's prior ranking.
func (s *Service) run(ctx context.Context, req Request, data seasondata.SeasonData, polls []model.Poll) (model.ScenarioResult, error) {
	l, err := ledger.Build(data.Games, req.Overrides)
	if err != nil {
		metrics.RecordSimulationError("ledger")
		return model.ScenarioResult{}, err
	}
	metrics.RecordOverrides(len(req.Overrides), len(l.DegradedGameIDs()))

	calc := resume.NewCalculator(l, data.Teams, polls,
		resume.WithChampions(data.Champions),
		resume.WithFinalWeek(s.finalWeek),
		resume.WithWorkerCount(s.workerCount),
	)

	snapStart := time.Now()
	snapshots, err := calc.All(ctx, req.Week)
	if err != nil {
		metrics.RecordSimulationError("resume")
		return model.ScenarioResult{}, fmt.Errorf("compute resumes: %w", err)
	}
	metrics.RecordSnapshotCompute(time.Since(snapStart))

	entries, err := s.ranker.Rank(ctx, l, req.Week, snapshots, s.scorer)
	if err != nil {
		metrics.RecordSimulationError("scorer")
		return model.ScenarioResult{}, err
	}
	metrics.UpdateTeamsRanked(len(entries))

	result := model.ScenarioResult{
		RunID:    runID(req),
		Season:   req.Season,
		Week:     req.Week,
		Rankings: ranking.Top25(entries),
	}
	for _, id := range l.DegradedGameIDs() {
		result.Degraded = append(result.Degraded,
			fmt.Sprintf("game %s: override without margin; margin features neutral", id))
	}

	// Selection and seeding only mean something at the season's terminal
	// week, when conference champions exist.
	if req.Week >= s.finalWeek {
		field, bracket, err := playoff.NewSelector(entries, data.Champions).Select()
		if err != nil {
			metrics.RecordSimulationError("playoff")
			return model.ScenarioResult{}, err
		}
		result.PlayoffField = field
		result.Bracket = bracket
	}
	return result, nil
}

// RunWeekly projects rankings week by week over [startWeek, endWeek],
// feeding each week's output in as the next week's prior ranking. Each
// week is an independent run over an immutable result; no accumulator is
// shared or mutated across weeks.
func (s *Service) RunWeekly(ctx context.Context, req Request, startWeek, endWeek int) (map[int]model.ScenarioResult, error) {
	if startWeek > endWeek {
		return nil, fmt.Errorf("invalid week range %d..%d", startWeek, endWeek)
	}
	data, err := s.source.Season(ctx, req.Season)
	if err != nil {
		metrics.RecordSimulationError("source")
		return nil, fmt.Errorf("load season %d: %w", req.Season, err)
	}
	metrics.RecordSeasonLoad()

	polls := append([]model.Poll{}, data.Polls...)
	results := make(map[int]model.ScenarioResult, endWeek-startWeek+1)

	for week := startWeek; week <= endWeek; week++ {
		weekReq := Request{Season: req.Season, Week: week, Overrides: req.Overrides}
		result, err := s.run(ctx, weekReq, data, polls)
		if err != nil {
			return nil, fmt.Errorf("week %d: %w", week, err)
		}
		results[week] = result

		ids := make([]string, 0, len(result.Rankings))
		for _, e := range result.Rankings {
			ids = append(ids, e.TeamID)
		}
		polls = append(polls, model.Poll{Season: req.Season, Week: week, TeamIDs: ids})
	}
	return results, nil
}

// SeasonData exposes the loaded season inputs for the HTTP surface.
func (s *Service) SeasonData(ctx context.Context, year int) (seasondata.SeasonData, error) {
	data, err := s.source.Season(ctx, year)
	if err != nil {
		return seasondata.SeasonData{}, err
	}
	metrics.RecordSeasonLoad()
	if c, ok := s.source.(*seasondata.CachedSource); ok {
		metrics.UpdateSeasonsCached(c.Count())
	}
	return data, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"workerCount": s.workerCount,
		"finalWeek":   s.finalWeek,
	}
	if c, ok := s.source.(*seasondata.CachedSource); ok {
		stats["seasonsCached"] = c.Count()
	}
	return stats
}

// runID derives a stable identifier from the request, so identical
// scenarios share an id and full results stay byte-identical across runs.
func runID(req Request) string {
	keys := make([]string, 0, len(req.Overrides))
	for id := range req.Overrides {
		keys = append(keys, id)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d", req.Season, req.Week)
	for _, id := range keys {
		fmt.Fprintf(&b, ":%s=%s", id, req.Overrides[id])
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(b.String())).String()
}
