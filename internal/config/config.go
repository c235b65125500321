// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ActivityQueueSize bounds the in-memory activity event queue.
	ActivityQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxTalentLimit caps GET /talents?limit.
	MaxTalentLimit int `koanf:"max_talent_limit"`

	// OverallWeights maps skill names to their overall-score weights.
	OverallWeights map[string]float64 `koanf:"overall_weights"`

	// DefaultSkillWeight is used for skills absent from OverallWeights.
	DefaultSkillWeight float64 `koanf:"default_skill_weight"`

	// BaseMarketValue anchors the market value formula.
	BaseMarketValue int `koanf:"base_market_value"`

	// MatchThreshold is the minimum compatibility score a team match must
	// strictly exceed to be returned.
	MatchThreshold float64 `koanf:"match_threshold"`

	// SnapshotIntervalMS controls how often the store publishes snapshots.
	SnapshotIntervalMS int `koanf:"snapshot_interval_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		ActivityQueueSize: 100_000,
		WorkerCount:       runtime.NumCPU() * 4,
		DedupeSize:        250_000,
		MaxTalentLimit:    100,
		OverallWeights: map[string]float64{
			"technical":      0.3,
			"problemSolving": 0.25,
			"collaboration":  0.15,
		},
		DefaultSkillWeight: 0.1,
		BaseMarketValue:    50_000,
		MatchThreshold:     70,
		SnapshotIntervalMS: 1000,
	}
}
