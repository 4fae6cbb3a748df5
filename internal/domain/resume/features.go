package resume

import (
	"sort"

	"cfpsim/internal/domain/model"
)

// appearance is one decided game from a single team's perspective.
type appearance struct {
	gameID      string
	week        int
	oppID       string
	won         bool
	margin      int // signed from this team's perspective
	marginKnown bool
	confGame    bool
}

// weekIndex holds the shared aggregates for one as-of week: per-team
// appearance lists, prior-poll tier sets, and the bounded common-opponent
// pool. Building it once makes the batch path cheap.
type weekIndex struct {
	asOfWeek int
	season   int
	prior    model.Poll
	rankOf   map[string]int // team -> prior-poll rank, absent when unranked
	apps     map[string][]appearance
	// poolOpp maps each prior-poll top-25 team to its opponent set, the
	// bounded pool for common-opponent comparison.
	poolOpp map[string]map[string]bool
}

func (c *Calculator) buildIndex(asOfWeek int) *weekIndex {
	idx := &weekIndex{
		asOfWeek: asOfWeek,
		prior:    c.priorPoll(asOfWeek),
		rankOf:   make(map[string]int),
		apps:     make(map[string][]appearance),
		poolOpp:  make(map[string]map[string]bool),
	}
	for i, id := range idx.prior.TeamIDs {
		idx.rankOf[id] = i + 1
	}

	// Games arrive week-sorted from the ledger, so appearance lists stay
	// week-ordered without another sort.
	for _, g := range c.ledger.GamesThrough(asOfWeek) {
		if idx.season == 0 {
			idx.season = g.Season
		}
		if !g.Result.Decided {
			continue
		}
		marginKnown := g.Result.MarginKnown && !c.degraded[g.ID]
		winner, loser := g.Result.WinnerID, g.LoserID()
		idx.apps[winner] = append(idx.apps[winner], appearance{
			gameID: g.ID, week: g.Week, oppID: loser, won: true,
			margin: g.Result.Margin, marginKnown: marginKnown, confGame: g.ConferenceGame,
		})
		idx.apps[loser] = append(idx.apps[loser], appearance{
			gameID: g.ID, week: g.Week, oppID: winner, won: false,
			margin: -g.Result.Margin, marginKnown: marginKnown, confGame: g.ConferenceGame,
		})
	}

	for i, id := range idx.prior.TeamIDs {
		if i >= commonOpponentPool {
			break
		}
		opps := make(map[string]bool)
		for _, a := range idx.apps[id] {
			opps[a.oppID] = true
		}
		idx.poolOpp[id] = opps
	}
	return idx
}

// recordAt tallies a team's decided games with week <= w.
func (idx *weekIndex) recordAt(teamID string, w int) (wins, games int) {
	for _, a := range idx.apps[teamID] {
		if a.week > w {
			break
		}
		games++
		if a.won {
			wins++
		}
	}
	return wins, games
}

func (idx *weekIndex) winPctAt(teamID string, w int) float64 {
	wins, games := idx.recordAt(teamID, w)
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

// plainSOS is the mean win percentage of a team's opponents, each taken as
// of the week the game was played (no look-ahead).
func (idx *weekIndex) plainSOS(teamID string) float64 {
	apps := idx.apps[teamID]
	if len(apps) == 0 {
		return 0
	}
	var sum float64
	for _, a := range apps {
		sum += idx.winPctAt(a.oppID, a.week)
	}
	return sum / float64(len(apps))
}

// winValue classifies a win for record strength; stricter tiers win ties.
func (idx *weekIndex) winValue(a appearance) float64 {
	switch rank := idx.rankOf[a.oppID]; {
	case rank > 0 && rank <= 10:
		return winVsTop10Value
	case rank > 0 && rank <= 25:
		return winVsTop25Value
	case idx.winPctAt(a.oppID, a.week) > 0.5:
		return winVsWinningValue
	default:
		return winBaseValue
	}
}

func (idx *weekIndex) lossValue(a appearance) float64 {
	if rank := idx.rankOf[a.oppID]; rank > 0 && rank <= 10 {
		return lossVsTop10Value
	}
	if idx.winPctAt(a.oppID, a.week) < 0.5 {
		return lossBadValue
	}
	return lossBaseValue
}

func (c *Calculator) snapshot(idx *weekIndex, teamID string) model.Snapshot {
	team := c.teams[teamID]
	s := model.Snapshot{
		TeamID:     teamID,
		Season:     idx.season,
		AsOfWeek:   idx.asOfWeek,
		Conference: team.Conference,
		TopTier:    team.TopTier,
	}
	if idx.asOfWeek >= c.finalWeek && c.champions[teamID] {
		s.ConfChampion = true
	}

	apps := idx.apps[teamID]
	if len(apps) == 0 {
		// Bye-affected or not-yet-started team: zero resume, sorts last.
		return s
	}

	var recordStrength float64
	var marginSum, marginGames int
	var winsWithMargin int
	for _, a := range apps {
		s.GamesPlayed++
		rank := idx.rankOf[a.oppID]
		oppWinPct := idx.winPctAt(a.oppID, a.week)
		oppWins, _ := idx.recordAt(a.oppID, a.week)

		if a.won {
			s.Wins++
			if a.confGame {
				s.ConfWins++
			} else {
				s.NonConfWins++
			}
			if rank > 0 && rank <= 10 {
				s.WinsVsTop10++
			}
			if rank > 0 && rank <= 25 {
				s.WinsVsTop25++
			}
			if oppWinPct > 0.5 {
				s.WinsVsWinning++
			}
			if c.teams[a.oppID].TopTier {
				s.WinsVsTopTier++
			}
			if oppWins >= 8 {
				s.NotableWins++
			}
			if rank > 0 {
				s.H2HWinsVsRanked++
				if rank <= 10 {
					s.H2HWinsVsTop10++
				}
				if rank <= 25 {
					s.H2HWinsVsTop25++
				}
			}
			if a.marginKnown {
				winsWithMargin++
				if a.margin >= dominantMargin {
					s.DominantWins++
				}
				if a.margin >= comfortableMargin {
					s.ComfortableWins++
				}
			}
			recordStrength += idx.winValue(a)
		} else {
			s.Losses++
			if a.confGame {
				s.ConfLosses++
			}
			if rank > 0 && rank <= 10 {
				s.LossesVsTop10++
			}
			if oppWinPct < 0.5 {
				s.BadLosses++
			}
			recordStrength += idx.lossValue(a)
		}
		if a.marginKnown {
			marginSum += a.margin
			marginGames++
		}
	}

	s.WinPct = float64(s.Wins) / float64(s.GamesPlayed)
	s.RecordStrength = recordStrength
	s.RecordStrengthPerGame = recordStrength / float64(s.GamesPlayed)
	if winsWithMargin > 0 {
		s.DominantWinPct = float64(s.DominantWins) / float64(winsWithMargin)
	}
	if marginGames > 0 {
		s.PointDifferential = float64(marginSum) / float64(marginGames)
	}

	s.SOS = idx.plainSOS(teamID)
	s.WeightedSOS = c.weightedSOS(idx, apps)
	s.SOSOfSOS = c.sosOfSOS(idx, apps)

	s.CommonOppCount, s.CommonOppWinPct, s.CommonOppAvgMargin = c.commonOpponents(idx, teamID, apps)

	s.WinStreak, s.WonLast, s.LastOppQuality = c.momentum(apps)

	return s
}

// weightedSOS weights each opponent's win percentage by its prior-poll
// tier: top-10 counts 3x, top-25 2x, everyone else 1x.
func (c *Calculator) weightedSOS(idx *weekIndex, apps []appearance) float64 {
	if len(apps) == 0 {
		return 0
	}
	var sum float64
	for _, a := range apps {
		weight := 1.0
		switch rank := idx.rankOf[a.oppID]; {
		case rank > 0 && rank <= 10:
			weight = 3.0
		case rank > 0 && rank <= 25:
			weight = 2.0
		}
		sum += idx.winPctAt(a.oppID, a.week) * weight
	}
	return sum / float64(len(apps))
}

// sosOfSOS is the mean of the opponents' own plain SOS. A coarse
// second-order statistic; its only use is as a minor separator.
func (c *Calculator) sosOfSOS(idx *weekIndex, apps []appearance) float64 {
	if len(apps) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(apps))
	var sum float64
	var n int
	for _, a := range apps {
		if seen[a.oppID] {
			continue
		}
		seen[a.oppID] = true
		sum += idx.plainSOS(a.oppID)
		n++
	}
	return sum / float64(n)
}

// commonOpponents compares a team against the bounded pool of opponents
// shared with prior-poll top-25 teams. A deliberate approximation: full
// pairwise comparison across ~130 teams is not worth the cost.
func (c *Calculator) commonOpponents(idx *weekIndex, teamID string, apps []appearance) (int, float64, float64) {
	common := make(map[string]bool)
	for poolTeam, poolOpps := range idx.poolOpp {
		if poolTeam == teamID {
			continue
		}
		for _, a := range apps {
			if poolOpps[a.oppID] {
				common[a.oppID] = true
			}
		}
	}
	if len(common) == 0 {
		return 0, 0, 0
	}

	var games, wins int
	var marginSum, marginGames int
	for _, a := range apps {
		if !common[a.oppID] {
			continue
		}
		games++
		if a.won {
			wins++
		}
		if a.marginKnown {
			marginSum += a.margin
			marginGames++
		}
	}
	winPct := 0.0
	if games > 0 {
		winPct = float64(wins) / float64(games)
	}
	avgMargin := 0.0
	if marginGames > 0 {
		avgMargin = float64(marginSum) / float64(marginGames)
	}
	return len(common), winPct, avgMargin
}

// momentum reports the current win streak ending at the as-of week, the
// last result, and a coarse last-opponent quality signal.
func (c *Calculator) momentum(apps []appearance) (int, bool, float64) {
	streak := 0
	for i := len(apps) - 1; i >= 0; i-- {
		if !apps[i].won {
			break
		}
		streak++
	}
	last := apps[len(apps)-1]
	quality := 0.5
	if c.teams[last.oppID].TopTier {
		quality = 1.0
	}
	return streak, last.won, quality
}

// SortSnapshots orders snapshots by team id. Batch output passes through
// here so goroutine completion order can never leak into ranking input.
func SortSnapshots(s []model.Snapshot) {
	sort.Slice(s, func(i, j int) bool { return s[i].TeamID < s[j].TeamID })
}
