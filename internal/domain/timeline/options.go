// Package timeline projects clamped events onto a dense per-frame table.
package timeline

import (
	"github.com/flylab/groomtrack/pkg/logger"
)

// Option applies a configuration option to the EventProjector.
type Option func(*EventProjector)

// WithStrictOverlap makes overlapping events a failure instead of
// resolving them last-write-wins. Default semantics stay unchanged.
func WithStrictOverlap() Option {
	return func(p *EventProjector) {
		p.strict = true
	}
}

// WithLogger sets a custom logger for the projector.
func WithLogger(l logger.Logger) Option {
	return func(p *EventProjector) {
		if l != nil {
			p.logger = l
		}
	}
}
