package model

// RankingEntry is one row of a computed ranking: ordered 1..N, strictly
// total. Ranks beyond 25 are kept internally for playoff bookkeeping; only
// the top 25 are exposed publicly.
type RankingEntry struct {
	Rank     int      `json:"rank"`
	TeamID   string   `json:"team_id"`
	Score    float64  `json:"score"`
	Snapshot Snapshot `json:"snapshot"`
}

// PlayoffTeam is one member of the 12-team field.
type PlayoffTeam struct {
	TeamID     string `json:"team_id"`
	Seed       int    `json:"seed"`
	Rank       int    `json:"rank"`
	AutoBid    bool   `json:"is_auto_bid"`
	Conference string `json:"conference"`
}

// Bracket round names, in play order.
const (
	RoundFirst        = "First Round"
	RoundQuarterfinal = "Quarterfinal"
	RoundSemifinal    = "Semifinal"
	RoundChampionship = "Championship"
)

// BracketMatchup is one slot in the single-elimination bracket. SeedB == 0
// marks a bye opponent decided by a prior round; no reseeding ever occurs,
// so the pairing is fixed by bracket position alone.
type BracketMatchup struct {
	Round string `json:"round"`
	Game  string `json:"game"`
	SeedA int    `json:"seed_a"`
	SeedB int    `json:"seed_b,omitempty"`
	TeamA string `json:"team_a,omitempty"`
	TeamB string `json:"team_b,omitempty"`
}

// ScenarioResult is the complete output of one orchestrator run. Runs with
// identical inputs produce identical results, RunID included.
type ScenarioResult struct {
	RunID  string `json:"run_id"`
	Season int    `json:"season"`
	Week   int    `json:"week"`

	Rankings     []RankingEntry   `json:"rankings"`
	PlayoffField []PlayoffTeam    `json:"playoff_teams"`
	Bracket      []BracketMatchup `json:"matchups"`

	// Degraded lists soft warnings, e.g. overrides applied without a score
	// margin. Never an error; margin features fall back to neutral values.
	Degraded []string `json:"degraded,omitempty"`
}
