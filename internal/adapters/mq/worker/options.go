// Package worker runs the per-file pipeline concurrently.
package worker

import (
	"github.com/flylab/groomtrack/pkg/logger"
)

// Option applies a configuration option to the FileWorker.
type Option func(*FileWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *FileWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *FileWorker) {
		if l != nil {
			w.logger = l
		}
	}
}
