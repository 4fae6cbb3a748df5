package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cfpsim/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then Load returns the defaults", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.DataDir, ShouldEqual, "data/seasons")
			So(cfg.FinalWeek, ShouldEqual, 15)
			So(cfg.ComparableDelta, ShouldEqual, 0.1)
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CFPSIM_ADDR", ":7070")
	t.Setenv("CFPSIM_WORKER_COUNT", "4")
	t.Setenv("CFPSIM_COMPARABLE_DELTA", "0.25")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env values win over defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.WorkerCount, ShouldEqual, 4)
			So(cfg.ComparableDelta, ShouldEqual, 0.25)
		})

		Convey("And untouched keys keep their defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.FinalWeek, ShouldEqual, 15)
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfpsim.yaml")
	body := "addr: \":6060\"\ndata_dir: /srv/seasons\nfinal_week: 16\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CFPSIM_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then file values layer over defaults", func() {
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.DataDir, ShouldEqual, "/srv/seasons")
			So(cfg.FinalWeek, ShouldEqual, 16)
			So(cfg.LogLevel, ShouldEqual, "info")
		})
	})
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfpsim.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CFPSIM_CONFIG", path)
	t.Setenv("CFPSIM_ADDR", ":5050")

	Convey("Given both a file and an env value for the same key", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env wins over the file", func() {
			So(cfg.Addr, ShouldEqual, ":5050")
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CFPSIM_CONFIG", "/no/such/file.yaml")

	Convey("Given a config file path that does not exist", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then Load fails with the load sentinel", func() {
			So(err, ShouldWrap, config.ErrLoadConfig)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]struct {
		key, value string
	}{
		"non-positive worker count": {"CFPSIM_WORKER_COUNT", "0"},
		"negative comparable delta": {"CFPSIM_COMPARABLE_DELTA", "-1"},
		"non-positive final week":   {"CFPSIM_FINAL_WEEK", "0"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			Convey("Given an invalid "+name, t, func() {
				_, err := config.Load(context.Background())

				Convey("Then validation rejects it", func() {
					So(err, ShouldWrap, config.ErrInvalidConfig)
				})
			})
		})
	}
}
