// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file/env on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds per-season JSON files from the historical data source.
	DataDir string `koanf:"data_dir"`

	// WorkerCount bounds the parallel batch resume computation.
	WorkerCount int `koanf:"worker_count"`

	// FinalWeek is the season's terminal week; the conference-champion
	// flag and the playoff stages only activate at or after it.
	FinalWeek int `koanf:"final_week"`

	// ComparableDelta is the score distance at which the head-to-head
	// override rule treats two teams as comparable.
	ComparableDelta float64 `koanf:"comparable_delta"`

	// ScorerWeights maps resume feature names to linear model weights.
	// Empty means the built-in stand-in weights.
	ScorerWeights map[string]float64 `koanf:"scorer_weights"`

	// ScorerBias is the linear model intercept, used only when
	// ScorerWeights is set.
	ScorerBias float64 `koanf:"scorer_bias"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DataDir:         "data/seasons",
		WorkerCount:     runtime.NumCPU(),
		FinalWeek:       15,
		ComparableDelta: 0.1,
		ScorerBias:      70.0,
	}
}
