// Package pairing turns a validated frame sequence into clamped grooming
// events with stable identifiers.
package pairing

import (
	"context"

	"github.com/flylab/groomtrack/internal/domain/model"
	"github.com/flylab/groomtrack/pkg/logger"
	"github.com/flylab/groomtrack/pkg/metrics"
)

// Builder pairs frame markers into events.
type Builder interface {
	// Build pairs frames (0,1), (2,3), ... into events clamped to
	// [1, totalFrames]. The whole file fails on the first invalid pair;
	// no partial event list is returned.
	Build(ctx context.Context, frames []int, totalFrames int) ([]model.Event, error)
}

// EventBuilder implements Builder.
type EventBuilder struct {
	logger logger.Logger
}

// Option applies a configuration option to the EventBuilder.
type Option func(*EventBuilder)

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *EventBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewEventBuilder creates a builder with configuration options.
func NewEventBuilder(opts ...Option) *EventBuilder {
	b := &EventBuilder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build pairs and clamps the sequence. The even-length invariant is
// re-checked here because the builder may be called without the
// extractor having run first.
//
// Ordering of checks matters: every pair passes the start<=stop check
// before any clamping happens, so a pair that would only be valid after
// clamping still fails. A pair lying entirely outside [1, totalFrames]
// inverts under clamping; such events cover no valid frame and are
// dropped rather than returned with start > stop.
func (b *EventBuilder) Build(ctx context.Context, frames []int, totalFrames int) ([]model.Event, error) {
	if len(frames)%2 != 0 {
		return nil, &UnpairedSequenceError{Count: len(frames)}
	}

	// Validate every pair before clamping anything.
	for i := 0; i < len(frames); i += 2 {
		if frames[i] > frames[i+1] {
			return nil, &InvalidPairError{Start: frames[i], Stop: frames[i+1], Index: i / 2}
		}
	}

	events := make([]model.Event, 0, len(frames)/2)
	for i := 0; i < len(frames); i += 2 {
		ev := model.Event{
			ID:    i/2 + 1,
			Start: frames[i],
			Stop:  frames[i+1],
		}
		if ev.Start < 1 {
			ev.Start = 1
			ev.StartClamped = true
			metrics.RecordFrameClamped()
			if b.logger != nil {
				b.logger.Warn(ctx, "event start clamped to frame 1",
					logger.Int("event_id", ev.ID),
					logger.Int("start", frames[i]),
				)
			}
		}
		if ev.Stop > totalFrames {
			ev.Stop = totalFrames
			ev.StopClamped = true
			metrics.RecordFrameClamped()
			if b.logger != nil {
				b.logger.Warn(ctx, "event stop clamped to frame window",
					logger.Int("event_id", ev.ID),
					logger.Int("stop", frames[i+1]),
					logger.Int("total_frames", totalFrames),
				)
			}
		}
		// A pair lying wholly outside the window inverts under clamping
		// and covers no valid frame; drop it, keeping later ids stable.
		if ev.Start > ev.Stop {
			if b.logger != nil {
				b.logger.Warn(ctx, "event outside frame window dropped",
					logger.Int("event_id", ev.ID),
					logger.Int("start", frames[i]),
					logger.Int("stop", frames[i+1]),
					logger.Int("total_frames", totalFrames),
				)
			}
			continue
		}
		events = append(events, ev)
	}

	metrics.RecordEventsBuilt(len(events))
	return events, nil
}
