package seasondata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cfpsim/internal/adapters/seasondata"
)

const seasonJSON = `{
	"season": 2024,
	"teams": [
		{"team_id": "alabama", "conference": "SEC", "top_tier": true},
		{"team_id": "georgia", "conference": "SEC", "top_tier": true}
	],
	"games": [
		{
			"game_id": "g1", "season": 2024, "week": 2,
			"home_id": "alabama", "away_id": "georgia",
			"result": {"decided": true, "winner_id": "alabama", "margin": 7, "margin_known": true}
		}
	],
	"rankings": [{"season": 2024, "week": 1, "team_ids": ["georgia", "alabama"]}],
	"champions": {"SEC": "georgia"}
}`

func writeSeason(t *testing.T, dir string, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write season file: %v", err)
	}
}

func TestFileSource_Season(t *testing.T) {
	ctx := context.Background()

	Convey("Given a data directory with one season file", t, func() {
		dir := t.TempDir()
		writeSeason(t, dir, "2024.json", seasonJSON)
		src := seasondata.NewFileSource(dir)

		Convey("When loading that season", func() {
			data, err := src.Season(ctx, 2024)
			So(err, ShouldBeNil)

			Convey("Then every section is populated", func() {
				So(data.Season, ShouldEqual, 2024)
				So(len(data.Teams), ShouldEqual, 2)
				So(len(data.Games), ShouldEqual, 1)
				So(len(data.Polls), ShouldEqual, 1)
				So(data.Champions["SEC"], ShouldEqual, "georgia")
			})

			Convey("And the current week falls back to the latest decided game", func() {
				So(data.CurrentWeek, ShouldEqual, 2)
			})
		})

		Convey("When the season file does not exist", func() {
			_, err := src.Season(ctx, 1993)
			So(err, ShouldWrap, seasondata.ErrSeasonNotFound)
		})

		Convey("When the season file is not valid JSON", func() {
			writeSeason(t, dir, "2025.json", "{nope")
			_, err := src.Season(ctx, 2025)
			So(err, ShouldWrap, seasondata.ErrBadSeasonFile)
		})
	})
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()

	Convey("Given a cached source over a file source", t, func() {
		dir := t.TempDir()
		writeSeason(t, dir, "2024.json", seasonJSON)
		src := seasondata.NewCachedSource(seasondata.NewFileSource(dir))

		Convey("When the same season loads twice", func() {
			first, err := src.Season(ctx, 2024)
			So(err, ShouldBeNil)

			// removing the file proves the second read comes from memory
			So(os.Remove(filepath.Join(dir, "2024.json")), ShouldBeNil)

			second, err := src.Season(ctx, 2024)
			So(err, ShouldBeNil)

			Convey("Then the cache serves it and counts one season", func() {
				So(second, ShouldResemble, first)
				So(src.Count(), ShouldEqual, 1)
			})
		})

		Convey("When a load fails", func() {
			_, err := src.Season(ctx, 1800)
			So(err, ShouldWrap, seasondata.ErrSeasonNotFound)

			Convey("Then nothing is cached", func() {
				So(src.Count(), ShouldEqual, 0)
			})
		})
	})
}
