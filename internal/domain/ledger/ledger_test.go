package ledger_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cfpsim/internal/domain/ledger"
	"cfpsim/internal/domain/model"
)

func decided(id string, week int, home, away, winner string, margin int) model.Game {
	return model.Game{
		ID: id, Season: 2024, Week: week, HomeID: home, AwayID: away,
		Result: model.Result{Decided: true, WinnerID: winner, Margin: margin, MarginKnown: true},
	}
}

func TestBuild(t *testing.T) {
	base := []model.Game{
		decided("g3", 2, "C", "D", "C", 3),
		decided("g1", 1, "A", "B", "A", 14),
		decided("g2", 1, "C", "A", "C", 7),
	}

	Convey("Given a set of base games", t, func() {
		Convey("When built with no overrides", func() {
			l, err := ledger.Build(base, nil)
			So(err, ShouldBeNil)

			Convey("Then games come back in (week, id) order", func() {
				games := l.Games()
				So(len(games), ShouldEqual, 3)
				So(games[0].ID, ShouldEqual, "g1")
				So(games[1].ID, ShouldEqual, "g2")
				So(games[2].ID, ShouldEqual, "g3")
			})

			Convey("And input order never matters", func() {
				shuffled := []model.Game{base[1], base[2], base[0]}
				l2, err := ledger.Build(shuffled, nil)
				So(err, ShouldBeNil)
				So(l2.Games(), ShouldResemble, l.Games())
			})

			Convey("And GamesThrough cuts at the week boundary", func() {
				So(len(l.GamesThrough(1)), ShouldEqual, 2)
				So(len(l.GamesThrough(2)), ShouldEqual, 3)
				So(len(l.GamesThrough(0)), ShouldEqual, 0)
			})

			Convey("And TeamIDs lists every participant sorted", func() {
				So(l.TeamIDs(), ShouldResemble, []string{"A", "B", "C", "D"})
			})
		})

		Convey("When an override flips a result", func() {
			l, err := ledger.Build(base, map[string]string{"g1": "B"})
			So(err, ShouldBeNil)

			Convey("Then the winner changes and the margin is unknown", func() {
				g, ok := l.Game("g1")
				So(ok, ShouldBeTrue)
				So(g.Result.Decided, ShouldBeTrue)
				So(g.Result.WinnerID, ShouldEqual, "B")
				So(g.Result.MarginKnown, ShouldBeFalse)
			})

			Convey("And the game is reported as degraded", func() {
				So(l.DegradedGameIDs(), ShouldResemble, []string{"g1"})
			})
		})

		Convey("When an override restates the actual winner", func() {
			l, err := ledger.Build(base, map[string]string{"g1": "A"})
			So(err, ShouldBeNil)

			Convey("Then the real margin survives and nothing degrades", func() {
				g, _ := l.Game("g1")
				So(g.Result.WinnerID, ShouldEqual, "A")
				So(g.Result.Margin, ShouldEqual, 14)
				So(g.Result.MarginKnown, ShouldBeTrue)
				So(l.DegradedGameIDs(), ShouldBeEmpty)
			})
		})

		Convey("When an override decides an unplayed game", func() {
			undecided := append(base, model.Game{
				ID: "g4", Season: 2024, Week: 3, HomeID: "B", AwayID: "D",
			})
			l, err := ledger.Build(undecided, map[string]string{"g4": "D"})
			So(err, ShouldBeNil)

			g, _ := l.Game("g4")
			So(g.Result.Decided, ShouldBeTrue)
			So(g.Result.WinnerID, ShouldEqual, "D")
			So(g.Result.MarginKnown, ShouldBeFalse)
			So(l.DegradedGameIDs(), ShouldResemble, []string{"g4"})
		})

		Convey("When an override names an unknown game", func() {
			_, err := ledger.Build(base, map[string]string{"nope": "A"})
			So(err, ShouldWrap, ledger.ErrUnknownGame)
		})

		Convey("When an override names a non-participant winner", func() {
			_, err := ledger.Build(base, map[string]string{"g1": "D"})
			So(err, ShouldWrap, ledger.ErrInvalidOverride)
		})

		Convey("When base games share an id", func() {
			dup := append(base, decided("g1", 4, "X", "Y", "X", 1))
			_, err := ledger.Build(dup, nil)
			So(err, ShouldWrap, ledger.ErrDuplicateGame)
		})
	})
}
