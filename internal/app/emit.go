package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flylab/groomtrack/internal/adapters/plot"
	"github.com/flylab/groomtrack/internal/adapters/table"
	"github.com/flylab/groomtrack/internal/domain/model"
	"github.com/flylab/groomtrack/pkg/logger"
)

const outputFilePermission = 0o644

// emit writes every output artifact for the batch: per-file tables and
// plots for successful files, the consolidated summary, and the error
// log when any file failed.
func (r *Runner) emit(ctx context.Context, report *model.BatchReport) error {
	var summaries []model.FileSummary
	failures := 0

	for _, o := range report.Outcomes {
		if o.Failed() {
			failures++
			continue
		}
		if err := r.emitFile(ctx, o); err != nil {
			return err
		}
		summaries = append(summaries, o.Summary)
	}

	if err := writeTo(filepath.Join(r.outputDir, "summary.csv"), func(f *os.File) error {
		return table.WriteSummaryCSV(f, summaries, report.Summary)
	}); err != nil {
		return err
	}

	// The error log is omitted entirely for a clean batch.
	if failures > 0 {
		if err := writeTo(filepath.Join(r.outputDir, "error_log.csv"), func(f *os.File) error {
			return table.WriteErrorLogCSV(f, report.Outcomes)
		}); err != nil {
			return err
		}
	}

	r.logger.Info(ctx, "outputs written",
		logger.String("dir", r.outputDir),
		logger.Int("files", len(summaries)),
		logger.Int("failures", failures),
	)
	return nil
}

// emitFile writes the timeline table, event table, and both plots for
// one successful file.
func (r *Runner) emitFile(_ context.Context, o model.FileOutcome) error {
	base := strings.TrimSuffix(o.Filename, filepath.Ext(o.Filename))

	if err := writeTo(filepath.Join(r.outputDir, base+"_timeline.csv"), func(f *os.File) error {
		return table.WriteTimelineCSV(f, o.Timeline)
	}); err != nil {
		return err
	}
	if err := writeTo(filepath.Join(r.outputDir, base+"_events.csv"), func(f *os.File) error {
		return table.WriteEventsCSV(f, o.Events)
	}); err != nil {
		return err
	}
	if err := writeTo(filepath.Join(r.outputDir, base+"_timeline.svg"), func(f *os.File) error {
		return plot.TimelineSVG(f, o.Timeline, r.plotOpts)
	}); err != nil {
		return err
	}
	return writeTo(filepath.Join(r.outputDir, base+"_durations.svg"), func(f *os.File) error {
		return plot.DurationBoxSVG(f, o.Summary.Durations, r.plotOpts)
	})
}

func writeTo(path string, write func(*os.File) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
