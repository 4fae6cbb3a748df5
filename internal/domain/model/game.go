// Package model contains domain models passed between layers.
package model

// Result is the outcome portion of a game. A zero Result means the game
// has not been played (or decided) yet.
type Result struct {
	Decided  bool   `json:"decided"`
	WinnerID string `json:"winner_id,omitempty"`
	// Margin is winner points minus loser points. Only meaningful when
	// MarginKnown is true; overrides that name a winner without a score
	// leave it false and margin-dependent features degrade to neutral.
	Margin      int  `json:"margin,omitempty"`
	MarginKnown bool `json:"margin_known"`
}

// Game is an immutable record of one contest. A scenario may replace the
// Result of a game but never its identity (teams, week, season).
type Game struct {
	ID             string `json:"game_id"`
	Season         int    `json:"season"`
	Week           int    `json:"week"`
	HomeID         string `json:"home_id"`
	AwayID         string `json:"away_id"`
	ConferenceGame bool   `json:"conference_game"`
	Result         Result `json:"result"`
}

// LoserID returns the non-winning participant for a decided game, or ""
// when the game is undecided.
func (g Game) LoserID() string {
	if !g.Result.Decided {
		return ""
	}
	if g.Result.WinnerID == g.HomeID {
		return g.AwayID
	}
	return g.HomeID
}

// HasParticipant reports whether teamID is one of the game's two teams.
func (g Game) HasParticipant(teamID string) bool {
	return teamID == g.HomeID || teamID == g.AwayID
}

// Team identifies one program for a season. Conference is season-scoped
// because of realignment; TopTier marks the top classification.
type Team struct {
	ID         string `json:"team_id"`
	Conference string `json:"conference"`
	TopTier    bool   `json:"top_tier"`
}
