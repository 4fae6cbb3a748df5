// Package playoff applies the fixed selection and seeding rules to a
// computed ranking: five auto-bid conference champions, at-large fill to
// twelve, byes for the top four champions, and a single-elimination
// bracket with no reseeding.
package playoff

import (
	"fmt"
	"sort"

	"cfpsim/internal/domain/model"
)

// Field shape constants, fixed by rule.
const (
	FieldSize    = 12
	AutoBidCount = 5
	ByeSeeds     = 4
)

// Selector holds the full ranking and the season's conference champions.
type Selector struct {
	entries   []model.RankingEntry
	rankOf    map[string]int
	confOf    map[string]string
	champions map[string]bool
}

// NewSelector builds a Selector from a complete (not just top-25) ranking
// and the conference -> champion team id mapping.
func NewSelector(entries []model.RankingEntry, champions map[string]string) *Selector {
	s := &Selector{
		entries:   entries,
		rankOf:    make(map[string]int, len(entries)),
		confOf:    make(map[string]string),
		champions: make(map[string]bool, len(champions)),
	}
	for _, e := range entries {
		s.rankOf[e.TeamID] = e.Rank
		s.confOf[e.TeamID] = e.Snapshot.Conference
	}
	for conf, teamID := range champions {
		s.champions[teamID] = true
		if s.confOf[teamID] == "" {
			s.confOf[teamID] = conf
		}
	}
	return s
}

// Select runs the staged selection and returns the seeded field plus the
// bracket. Fewer than five champions fills what it can; zero champions is
// rejected with ErrInsufficientChampions rather than producing an invalid
// bracket.
func (s *Selector) Select() ([]model.PlayoffTeam, []model.BracketMatchup, error) {
	autoBids, err := s.autoBids()
	if err != nil {
		return nil, nil, err
	}

	field := s.fillAtLarge(autoBids)
	seeded := s.seed(field, autoBids)

	var bracket []model.BracketMatchup
	if len(seeded) == FieldSize {
		bracket = buildBracket(seeded)
	}
	return seeded, bracket, nil
}

// autoBids picks the highest-ranked conference champions. A champion is
// never excluded by rank alone.
func (s *Selector) autoBids() (map[string]bool, error) {
	var champs []model.RankingEntry
	for _, e := range s.entries {
		if s.champions[e.TeamID] {
			champs = append(champs, e)
		}
	}
	if len(champs) == 0 {
		return nil, fmt.Errorf("select playoff field: %w", ErrInsufficientChampions)
	}
	// Entries arrive rank-ordered, so champs is already rank-ordered.
	n := AutoBidCount
	if len(champs) < n {
		n = len(champs)
	}
	auto := make(map[string]bool, n)
	for _, e := range champs[:n] {
		auto[e.TeamID] = true
	}
	return auto, nil
}

// fillAtLarge walks the ranking and fills the non-auto-bid slots in rank
// order. An auto-bid champion ranked outside the field displaces the
// lowest at-large team implicitly: every auto-bid is in the field no
// matter its rank, and the at-large count shrinks to make room.
func (s *Selector) fillAtLarge(autoBids map[string]bool) []model.PlayoffTeam {
	atLargeSlots := FieldSize - len(autoBids)

	var field []model.PlayoffTeam
	atLarge := 0
	for _, e := range s.entries {
		isAuto := autoBids[e.TeamID]
		if !isAuto {
			if atLarge >= atLargeSlots {
				continue
			}
			atLarge++
		}
		field = append(field, model.PlayoffTeam{
			TeamID:     e.TeamID,
			Rank:       e.Rank,
			AutoBid:    isAuto,
			Conference: s.confOf[e.TeamID],
		})
		// The field fills exactly when the last auto-bid or at-large team
		// is reached in rank order; nothing below can belong to it.
		if len(field) == FieldSize {
			break
		}
	}
	return field
}

// seed assigns 1..12. The four highest-ranked auto-bid champions take
// seeds 1-4 (byes) by their own relative rank. Champions pulled in from
// outside the natural cut are forced to the bottom seeds; everyone else
// seeds 5 up by rank.
func (s *Selector) seed(field []model.PlayoffTeam, autoBids map[string]bool) []model.PlayoffTeam {
	sort.Slice(field, func(i, j int) bool { return field[i].Rank < field[j].Rank })

	var byes []model.PlayoffTeam
	for _, t := range field {
		if t.AutoBid && len(byes) < ByeSeeds {
			byes = append(byes, t)
		}
	}
	isBye := make(map[string]bool, len(byes))
	for i := range byes {
		byes[i].Seed = i + 1
		isBye[byes[i].TeamID] = true
	}

	// Displaced champions: auto-bids without a bye whose rank falls
	// outside the field size. They take the last seeds, in rank order.
	var displaced, regular []model.PlayoffTeam
	for _, t := range field {
		switch {
		case isBye[t.TeamID]:
		case t.AutoBid && t.Rank > FieldSize:
			displaced = append(displaced, t)
		default:
			regular = append(regular, t)
		}
	}

	seeded := append([]model.PlayoffTeam{}, byes...)
	seed := ByeSeeds + 1
	for _, t := range regular {
		t.Seed = seed
		seed++
		seeded = append(seeded, t)
	}
	// Force displaced champions to the final seeds (11 and 12 when two).
	seed = FieldSize - len(displaced) + 1
	for _, t := range displaced {
		t.Seed = seed
		seed++
		seeded = append(seeded, t)
	}

	sort.Slice(seeded, func(i, j int) bool { return seeded[i].Seed < seeded[j].Seed })
	return seeded
}

// buildBracket emits the fixed single-elimination structure. First-round
// pairings are 5v12, 6v11, 7v10, 8v9 with the higher seed hosting; each
// bye seed's quarterfinal opponent is fixed by bracket position, never
// reseeded.
func buildBracket(seeded []model.PlayoffTeam) []model.BracketMatchup {
	team := make(map[int]string, len(seeded))
	for _, t := range seeded {
		team[t.Seed] = t.TeamID
	}

	firstRound := [4][2]int{{5, 12}, {6, 11}, {7, 10}, {8, 9}}
	quarterHosts := [4]int{4, 3, 2, 1} // QF_i hosts pair against FR_i winner

	bracket := make([]model.BracketMatchup, 0, 11)
	for i, pair := range firstRound {
		bracket = append(bracket, model.BracketMatchup{
			Round: model.RoundFirst,
			Game:  fmt.Sprintf("FR%d", i+1),
			SeedA: pair[0], TeamA: team[pair[0]],
			SeedB: pair[1], TeamB: team[pair[1]],
		})
	}
	for i, host := range quarterHosts {
		bracket = append(bracket, model.BracketMatchup{
			Round: model.RoundQuarterfinal,
			Game:  fmt.Sprintf("QF%d", i+1),
			SeedA: host, TeamA: team[host],
			// SeedB 0: opponent is the FR winner at this bracket position.
		})
	}
	bracket = append(bracket,
		model.BracketMatchup{Round: model.RoundSemifinal, Game: "SF1"},
		model.BracketMatchup{Round: model.RoundSemifinal, Game: "SF2"},
		model.BracketMatchup{Round: model.RoundChampionship, Game: "NC"},
	)
	return bracket
}
