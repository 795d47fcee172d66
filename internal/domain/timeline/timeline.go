// Package timeline projects clamped events onto a dense per-frame table.
package timeline

import (
	"context"

	"github.com/flylab/groomtrack/internal/domain/model"
	"github.com/flylab/groomtrack/pkg/logger"
	"github.com/flylab/groomtrack/pkg/metrics"
)

// Projector expands events into a timeline.
type Projector interface {
	// Project returns one row per frame 1..totalFrames. Deterministic
	// given identical inputs; no side effects.
	Project(ctx context.Context, events []model.Event, totalFrames int) (model.Timeline, error)
}

// EventProjector implements Projector with last-write-wins overlap
// resolution by default.
type EventProjector struct {
	strict bool
	logger logger.Logger
}

// NewProjector creates a projector with configuration options.
func NewProjector(opts ...Option) *EventProjector {
	p := &EventProjector{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project marks every frame in [event.Start, event.Stop] inclusive, in
// list order. When two events share frames the later one's ID wins; in
// strict mode the first shared frame fails the file instead.
func (p *EventProjector) Project(ctx context.Context, events []model.Event, totalFrames int) (model.Timeline, error) {
	rows := make(model.Timeline, totalFrames)
	for i := range rows {
		rows[i] = model.TimelineRow{Frame: i + 1}
	}

	for _, ev := range events {
		overlapped := 0
		for f := ev.Start; f <= ev.Stop; f++ {
			row := &rows[f-1]
			if row.Active {
				if p.strict {
					return nil, &OverlapError{Frame: f, FirstID: row.EventID, SecondID: ev.ID}
				}
				overlapped++
			}
			row.Active = true
			row.EventID = ev.ID
		}
		if overlapped > 0 {
			metrics.RecordOverlapResolved(overlapped)
			if p.logger != nil {
				p.logger.Warn(ctx, "overlapping events resolved last-write-wins",
					logger.Int("event_id", ev.ID),
					logger.Int("frames", overlapped),
				)
			}
		}
	}

	return rows, nil
}
