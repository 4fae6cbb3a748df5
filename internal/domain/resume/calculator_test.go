package resume_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cfpsim/internal/domain/ledger"
	"cfpsim/internal/domain/model"
	"cfpsim/internal/domain/resume"
)

var testTeams = []model.Team{
	{ID: "alabama", Conference: "SEC", TopTier: true},
	{ID: "georgia", Conference: "SEC", TopTier: true},
	{ID: "boise", Conference: "MW"},
	{ID: "tulane", Conference: "AAC"},
}

// week-1 poll: georgia ranked 1 (top 10), boise ranked 11 (top 25 only).
var testPolls = []model.Poll{{
	Season: 2024, Week: 1,
	TeamIDs: []string{
		"georgia", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10",
		"boise",
	},
}}

func testGames() []model.Game {
	return []model.Game{
		{
			ID: "g1", Season: 2024, Week: 2, HomeID: "alabama", AwayID: "georgia", ConferenceGame: true,
			Result: model.Result{Decided: true, WinnerID: "alabama", Margin: 21, MarginKnown: true},
		},
		{
			ID: "g2", Season: 2024, Week: 3, HomeID: "boise", AwayID: "alabama",
			Result: model.Result{Decided: true, WinnerID: "boise", Margin: 7, MarginKnown: true},
		},
		{
			ID: "g3", Season: 2024, Week: 5, HomeID: "tulane", AwayID: "boise",
			Result: model.Result{Decided: true, WinnerID: "tulane", Margin: 3, MarginKnown: true},
		},
	}
}

func mustLedger(t *testing.T, games []model.Game, overrides map[string]string) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Build(games, overrides)
	if err != nil {
		t.Fatalf("build ledger: %v", err)
	}
	return l
}

func TestCalculator_Snapshot(t *testing.T) {
	Convey("Given a three-game ledger and a week-1 poll", t, func() {
		l := mustLedger(t, testGames(), nil)
		calc := resume.NewCalculator(l, testTeams, testPolls)

		Convey("When computing alabama's resume as of week 3", func() {
			s := calc.Snapshot("alabama", 3)

			Convey("Then the record and quality counts match the ledger", func() {
				So(s.GamesPlayed, ShouldEqual, 2)
				So(s.Wins, ShouldEqual, 1)
				So(s.Losses, ShouldEqual, 1)
				So(s.WinPct, ShouldEqual, 0.5)
				So(s.ConfWins, ShouldEqual, 1)
				So(s.WinsVsTop10, ShouldEqual, 1)
				So(s.WinsVsTop25, ShouldEqual, 1)
				So(s.H2HWinsVsTop10, ShouldEqual, 1)
				So(s.H2HWinsVsRanked, ShouldEqual, 1)
			})

			Convey("And record strength rewards the top-10 win and tolerates the loss", func() {
				// win vs top 10 (+3.0), loss to a winning team (-1.0)
				So(s.RecordStrength, ShouldEqual, 2.0)
				So(s.RecordStrengthPerGame, ShouldEqual, 1.0)
			})

			Convey("And margin features use the known margins", func() {
				So(s.DominantWins, ShouldEqual, 1)
				So(s.ComfortableWins, ShouldEqual, 1)
				So(s.DominantWinPct, ShouldEqual, 1.0)
				So(s.PointDifferential, ShouldEqual, 7.0) // (21 - 7) / 2
			})

			Convey("And schedule strength has no look-ahead", func() {
				// georgia as of week 2: 0-1; boise as of week 3: 1-0.
				So(s.SOS, ShouldEqual, 0.5)
			})

			Convey("And momentum reflects the week-3 loss", func() {
				So(s.WinStreak, ShouldEqual, 0)
				So(s.WonLast, ShouldBeFalse)
				So(s.LastOppQuality, ShouldEqual, 0.5)
			})
		})

		Convey("When a team has no decided games yet", func() {
			s := calc.Snapshot("tulane", 3)

			Convey("Then the snapshot is zero-valued but keeps identity fields", func() {
				So(s.GamesPlayed, ShouldEqual, 0)
				So(s.Wins, ShouldEqual, 0)
				So(s.WinPct, ShouldEqual, 0)
				So(s.RecordStrength, ShouldEqual, 0)
				So(s.TeamID, ShouldEqual, "tulane")
				So(s.Conference, ShouldEqual, "AAC")
			})
		})

		Convey("When later games exist in the ledger", func() {
			Convey("Then a week-2 snapshot is identical to one computed without them", func() {
				early := mustLedger(t, testGames()[:1], nil)
				earlyCalc := resume.NewCalculator(early, testTeams, testPolls)
				So(calc.Snapshot("alabama", 2), ShouldResemble, earlyCalc.Snapshot("alabama", 2))
				So(calc.Snapshot("georgia", 2), ShouldResemble, earlyCalc.Snapshot("georgia", 2))
			})
		})
	})
}

func TestCalculator_OverriddenResults(t *testing.T) {
	Convey("Given the week-2 game flipped to georgia by an override", t, func() {
		l := mustLedger(t, testGames(), map[string]string{"g1": "georgia"})
		calc := resume.NewCalculator(l, testTeams, testPolls)

		Convey("When computing georgia's resume as of week 3", func() {
			s := calc.Snapshot("georgia", 3)

			Convey("Then the win counts but margin features stay neutral", func() {
				So(s.Wins, ShouldEqual, 1)
				So(s.Losses, ShouldEqual, 0)
				So(s.DominantWins, ShouldEqual, 0)
				So(s.ComfortableWins, ShouldEqual, 0)
				So(s.DominantWinPct, ShouldEqual, 0)
				So(s.PointDifferential, ShouldEqual, 0)
			})
		})

		Convey("When computing alabama's resume as of week 3", func() {
			s := calc.Snapshot("alabama", 3)

			Convey("Then the flipped game is a loss with no margin contribution", func() {
				So(s.Wins, ShouldEqual, 0)
				So(s.Losses, ShouldEqual, 2)
				// only g2's margin (-7) is known
				So(s.PointDifferential, ShouldEqual, -7.0)
			})
		})

		Convey("When comparing against the baseline ledger", func() {
			baseCalc := resume.NewCalculator(mustLedger(t, testGames(), nil), testTeams, testPolls)

			Convey("Then only the flipped game's participants change tallies", func() {
				flipped := calc.Snapshot("boise", 5)
				base := baseCalc.Snapshot("boise", 5)
				So(flipped.Wins, ShouldEqual, base.Wins)
				So(flipped.Losses, ShouldEqual, base.Losses)

				So(calc.Snapshot("alabama", 5).Losses, ShouldEqual, baseCalc.Snapshot("alabama", 5).Losses+1)
				So(calc.Snapshot("georgia", 5).Wins, ShouldEqual, baseCalc.Snapshot("georgia", 5).Wins+1)
			})
		})
	})
}

func TestCalculator_RecordStrengthSeparation(t *testing.T) {
	Convey("Given two unbeaten teams, one with ranked wins and one without", t, func() {
		teams := []model.Team{
			{ID: "x"}, {ID: "y"},
			{ID: "r1"}, {ID: "r2"}, {ID: "u1"}, {ID: "u2"},
		}
		polls := []model.Poll{{Season: 2024, Week: 1, TeamIDs: []string{"r1", "r2"}}}
		games := []model.Game{
			{ID: "x1", Season: 2024, Week: 2, HomeID: "x", AwayID: "r1",
				Result: model.Result{Decided: true, WinnerID: "x", Margin: 10, MarginKnown: true}},
			{ID: "x2", Season: 2024, Week: 3, HomeID: "x", AwayID: "r2",
				Result: model.Result{Decided: true, WinnerID: "x", Margin: 10, MarginKnown: true}},
			{ID: "y1", Season: 2024, Week: 2, HomeID: "y", AwayID: "u1",
				Result: model.Result{Decided: true, WinnerID: "y", Margin: 10, MarginKnown: true}},
			{ID: "y2", Season: 2024, Week: 3, HomeID: "y", AwayID: "u2",
				Result: model.Result{Decided: true, WinnerID: "y", Margin: 10, MarginKnown: true}},
		}
		calc := resume.NewCalculator(mustLedger(t, games, nil), teams, polls)

		Convey("Then the ranked wins produce strictly more record strength", func() {
			x := calc.Snapshot("x", 4)
			y := calc.Snapshot("y", 4)
			So(x.Wins, ShouldEqual, y.Wins)
			So(x.RecordStrength, ShouldBeGreaterThan, y.RecordStrength)
		})
	})
}

func TestCalculator_ChampionFlag(t *testing.T) {
	Convey("Given georgia is the SEC champion", t, func() {
		l := mustLedger(t, testGames(), nil)
		calc := resume.NewCalculator(l, testTeams, testPolls,
			resume.WithChampions(map[string]string{"SEC": "georgia"}),
			resume.WithFinalWeek(15),
		)

		Convey("Then the flag is off before the final week", func() {
			So(calc.Snapshot("georgia", 3).ConfChampion, ShouldBeFalse)
		})

		Convey("And on at the final week", func() {
			So(calc.Snapshot("georgia", 15).ConfChampion, ShouldBeTrue)
			So(calc.Snapshot("alabama", 15).ConfChampion, ShouldBeFalse)
		})
	})
}

func TestCalculator_All(t *testing.T) {
	Convey("Given a calculator over the test ledger", t, func() {
		l := mustLedger(t, testGames(), nil)
		calc := resume.NewCalculator(l, testTeams, testPolls, resume.WithWorkerCount(2))

		Convey("When computing the batch as of week 5", func() {
			all, err := calc.All(context.Background(), 5)
			So(err, ShouldBeNil)

			Convey("Then output covers every ledger team in id order", func() {
				So(len(all), ShouldEqual, 4)
				ids := make([]string, len(all))
				for i, s := range all {
					ids[i] = s.TeamID
				}
				So(ids, ShouldResemble, []string{"alabama", "boise", "georgia", "tulane"})
			})

			Convey("And each entry matches the single-team path", func() {
				for _, s := range all {
					So(s, ShouldResemble, calc.Snapshot(s.TeamID, 5))
				}
			})

			Convey("And a second batch is identical", func() {
				again, err := calc.All(context.Background(), 5)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, all)
			})
		})
	})
}
