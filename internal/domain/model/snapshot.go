package model

// Snapshot is the resume state of one team as of one week. It is derived,
// never stored: a pure function of the games with Week <= AsOfWeek. Nothing
// in a Snapshot may depend on a later game.
type Snapshot struct {
	TeamID   string `json:"team_id"`
	Season   int    `json:"season"`
	AsOfWeek int    `json:"as_of_week"`

	// Record.
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	GamesPlayed int     `json:"games_played"`
	WinPct      float64 `json:"win_pct"`
	ConfWins    int     `json:"conference_wins"`
	ConfLosses  int     `json:"conference_losses"`
	NonConfWins int     `json:"non_conference_wins"`

	// Strength of schedule.
	SOS         float64 `json:"sos_score"`
	WeightedSOS float64 `json:"weighted_sos_score"`
	SOSOfSOS    float64 `json:"sos_of_sos"`

	// Quality wins and bad losses, tiered by the most recent authoritative
	// ranking before AsOfWeek.
	WinsVsTop10   int `json:"wins_vs_top10"`
	WinsVsTop25   int `json:"wins_vs_top25"`
	WinsVsWinning int `json:"wins_vs_winning_teams"`
	WinsVsTopTier int `json:"wins_vs_top_tier"`
	NotableWins   int `json:"notable_wins"`
	BadLosses     int `json:"bad_losses"`
	LossesVsTop10 int `json:"losses_vs_top10"`

	RecordStrength        float64 `json:"record_strength_score"`
	RecordStrengthPerGame float64 `json:"record_strength_per_game"`

	// Head-to-head wins over currently ranked opponents.
	H2HWinsVsRanked int `json:"head_to_head_wins_vs_ranked"`
	H2HWinsVsTop10  int `json:"head_to_head_wins_vs_top10"`
	H2HWinsVsTop25  int `json:"head_to_head_wins_vs_top25"`

	// Common opponents, restricted to the top-25 opponent pool.
	CommonOppCount     int     `json:"common_opponents_count"`
	CommonOppWinPct    float64 `json:"common_opponents_win_pct"`
	CommonOppAvgMargin float64 `json:"common_opponents_avg_margin"`

	// Dominance proxies (margin thresholds, no play-by-play data).
	DominantWins    int     `json:"dominant_wins"`
	ComfortableWins int     `json:"comfortable_wins"`
	DominantWinPct  float64 `json:"dominant_win_pct"`

	// Average scoring margin per game with a known margin (signed).
	PointDifferential float64 `json:"point_differential"`

	// Momentum.
	WinStreak      int     `json:"current_win_streak"`
	WonLast        bool    `json:"won_last_game"`
	LastOppQuality float64 `json:"last_opponent_quality"`

	// Conference.
	Conference   string `json:"conference"`
	TopTier      bool   `json:"top_tier"`
	ConfChampion bool   `json:"is_conference_champion"`
}
