package scoring_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cfpsim/internal/domain/model"
	"cfpsim/internal/domain/scoring"
)

func TestLinearModel_Score(t *testing.T) {
	Convey("Given the default linear model", t, func() {
		m := scoring.NewLinearModel()
		snap := model.Snapshot{
			TeamID: "alabama", Wins: 10, Losses: 2, GamesPlayed: 12,
			WinPct: 10.0 / 12.0, SOS: 0.61, WeightedSOS: 0.82, SOSOfSOS: 0.55,
			RecordStrength: 14.5, H2HWinsVsTop10: 2, CommonOppWinPct: 0.75,
			DominantWinPct: 0.6, WinStreak: 4,
		}

		Convey("When scoring the same snapshot repeatedly", func() {
			first, err := m.Score(context.Background(), snap)
			So(err, ShouldBeNil)

			Convey("Then every score is bit-identical", func() {
				for i := 0; i < 100; i++ {
					again, err := m.Score(context.Background(), snap)
					So(err, ShouldBeNil)
					So(again, ShouldEqual, first)
				}
			})
		})

		Convey("When one resume is strictly better", func() {
			better := snap
			better.WinPct = 1.0
			better.RecordStrength = 20.0

			Convey("Then it scores lower", func() {
				a, _ := m.Score(context.Background(), snap)
				b, _ := m.Score(context.Background(), better)
				So(b, ShouldBeLessThan, a)
			})
		})
	})

	Convey("Given a model with explicit weights", t, func() {
		m := scoring.NewLinearModel(
			scoring.WithWeights(map[string]float64{"wins": -1.0, "losses": 2.0}),
			scoring.WithBias(10.0),
		)

		Convey("Then the score is the exact weighted sum", func() {
			got, err := m.Score(context.Background(), model.Snapshot{Wins: 4, Losses: 3})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 10.0-4.0+6.0)
		})

		Convey("And unknown feature names contribute nothing", func() {
			m2 := scoring.NewLinearModel(
				scoring.WithWeights(map[string]float64{"wins": -1.0, "no_such_feature": 99.0}),
				scoring.WithBias(0),
			)
			got, err := m2.Score(context.Background(), model.Snapshot{Wins: 4})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, -4.0)
		})
	})
}
