// Package config defines converter configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Default frame window applied to every file in a batch.
const DefaultTotalFrames = 8999

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TotalFrames is the upper bound of the valid frame window.
	TotalFrames int `koanf:"total_frames"`

	// WorkerCount sets the number of pipeline workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory file job queue.
	QueueSize int `koanf:"queue_size"`

	// StrictOverlap fails a file on overlapping events instead of
	// resolving them last-write-wins.
	StrictOverlap bool `koanf:"strict_overlap"`

	// MetricsAddr, when non-empty, serves Prometheus metrics on this
	// address for the duration of the batch, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// PlotWidth and PlotHeight size the generated SVG plots in pixels.
	PlotWidth  int `koanf:"plot_width"`
	PlotHeight int `koanf:"plot_height"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		TotalFrames: DefaultTotalFrames,
		WorkerCount: runtime.NumCPU(),
		QueueSize:   1024,
		PlotWidth:   960,
		PlotHeight:  200,
	}
}
