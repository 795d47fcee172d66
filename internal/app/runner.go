// Package app provides the batch orchestrator that drives the per-file
// pipeline over one or many annotation files.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/flylab/groomtrack/internal/adapters/discover"
	filequeue "github.com/flylab/groomtrack/internal/adapters/mq/queue"
	workerpool "github.com/flylab/groomtrack/internal/adapters/mq/worker"
	"github.com/flylab/groomtrack/internal/adapters/outcome"
	"github.com/flylab/groomtrack/internal/adapters/plot"
	"github.com/flylab/groomtrack/internal/adapters/table"
	"github.com/flylab/groomtrack/internal/config"
	"github.com/flylab/groomtrack/internal/domain/dedupe"
	"github.com/flylab/groomtrack/internal/domain/extract"
	"github.com/flylab/groomtrack/internal/domain/model"
	"github.com/flylab/groomtrack/internal/domain/pairing"
	"github.com/flylab/groomtrack/internal/domain/summary"
	"github.com/flylab/groomtrack/internal/domain/timeline"
	"github.com/flylab/groomtrack/pkg/logger"
)

// Runner orchestrates extract -> pairing -> timeline -> summary over a
// batch of files, isolating per-file failures.
type Runner struct {
	// Configuration
	totalFrames   int
	workerCount   int
	queueSize     int
	strictOverlap bool
	outputDir     string
	plotOpts      plot.Options

	// Core components, built in New
	extractor extract.Extractor
	builder   pairing.Builder
	projector timeline.Projector

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithTotalFrames sets the valid frame window bound applied to every file.
func WithTotalFrames(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.totalFrames = n
		}
	}
}

// WithWorkerCount sets the number of pipeline workers.
func WithWorkerCount(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workerCount = n
		}
	}
}

// WithQueueSize bounds the file job queue.
func WithQueueSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.queueSize = n
		}
	}
}

// WithStrictOverlap fails files on overlapping events instead of
// resolving them last-write-wins.
func WithStrictOverlap(strict bool) Option {
	return func(r *Runner) {
		r.strictOverlap = strict
	}
}

// WithOutputDir enables table and plot emission into the directory.
// When empty, Run produces the report without writing files.
func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		r.outputDir = dir
	}
}

// WithPlotOptions sizes the emitted SVG plots.
func WithPlotOptions(opts plot.Options) Option {
	return func(r *Runner) {
		if opts.Width > 0 && opts.Height > 0 {
			r.plotOpts = opts
		}
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New constructs a Runner with default configuration.
func New(opts ...Option) *Runner {
	r := &Runner{
		totalFrames: config.DefaultTotalFrames,
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
		plotOpts:    plot.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("batch")
	}

	r.extractor = extract.NewFrameExtractor(extract.WithLogger(r.logger))
	r.builder = pairing.NewEventBuilder(pairing.WithLogger(r.logger))
	projOpts := []timeline.Option{timeline.WithLogger(r.logger)}
	if r.strictOverlap {
		projOpts = append(projOpts, timeline.WithStrictOverlap())
	}
	r.projector = timeline.NewProjector(projOpts...)

	return r
}

// Run processes every annotation file under input and returns the batch
// report. Validation failures never abort the batch; only discovery and
// output errors do.
func (r *Runner) Run(ctx context.Context, input string) (*model.BatchReport, error) {
	runID := uuid.New().String()

	files, err := discover.Discover(input)
	if err != nil {
		return nil, err
	}

	// A file listed twice is processed once. The deduper is scoped to
	// this run so the Runner can be reused for another batch.
	deduper := dedupe.NewInMemoryDeduper()
	unique := files[:0]
	for _, f := range files {
		abs, aerr := filepath.Abs(f)
		if aerr != nil {
			abs = f
		}
		if deduper.SeenAndRecord(ctx, abs) {
			r.logger.Warn(ctx, "duplicate input skipped", logger.String("file", f))
			continue
		}
		unique = append(unique, f)
	}
	files = unique

	r.logger.Info(ctx, "starting batch",
		logger.String("run_id", runID),
		logger.Int("files", len(files)),
		logger.Int("total_frames", r.totalFrames),
		logger.Int("workers", r.workerCount),
	)

	collector := outcome.NewCollector(len(files))
	q := filequeue.NewInMemoryQueue(filequeue.WithCapacity(maxInt(r.queueSize, len(files))))
	for i, f := range files {
		if !q.Enqueue(ctx, filequeue.FileJob{Path: f, Index: i}) {
			_ = q.Close()
			return nil, fmt.Errorf("enqueue failed for %s", f)
		}
	}
	// All jobs are in; workers exit when the queue drains.
	_ = q.Close()

	pool := workerpool.NewPool(r.workerCount, q, workerpool.PipelineFunc(r.processFile), collector)
	pool.Start(ctx)
	if err := pool.Wait(ctx); err != nil {
		pool.Stop()
		return nil, err
	}

	outcomes := collector.Outcomes()
	var summaries []model.FileSummary
	for _, o := range outcomes {
		if !o.Failed() {
			summaries = append(summaries, o.Summary)
		}
	}

	report := &model.BatchReport{
		RunID:    runID,
		Summary:  summary.Aggregate(summaries, len(outcomes), r.totalFrames),
		Outcomes: outcomes,
	}

	if r.outputDir != "" {
		if err := r.emit(ctx, report); err != nil {
			return nil, err
		}
	}

	r.logger.Info(ctx, "batch complete",
		logger.String("run_id", runID),
		logger.Int("total", report.Summary.TotalFiles),
		logger.Int("successful", report.Summary.Successful),
		logger.Int("faulty", report.Summary.Faulty),
	)
	return report, nil
}

// processFile runs the full pipeline for one file. It never returns an
// error: every failure, including panics from unexpected input, is
// folded into the outcome so sibling files keep processing.
func (r *Runner) processFile(ctx context.Context, path string) (o model.FileOutcome) {
	name := filepath.Base(path)
	o = model.FileOutcome{Filename: name}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(ctx, "pipeline panic recovered",
				logger.String("file", name),
				logger.Any("panic", rec),
			)
			o.Err = &model.FailureRecord{
				Kind:   model.KindReadFailure,
				Detail: fmt.Sprintf("unexpected failure: %v", rec),
			}
		}
	}()

	tbl, err := table.ReadCSV(path)
	if err != nil {
		o.Err = failureFrom(err)
		return o
	}

	frames, err := r.extractor.Extract(ctx, tbl)
	if err != nil {
		o.Err = failureFrom(err)
		return o
	}

	events, err := r.builder.Build(ctx, frames, r.totalFrames)
	if err != nil {
		o.Err = failureFrom(err)
		return o
	}

	tl, err := r.projector.Project(ctx, events, r.totalFrames)
	if err != nil {
		o.Err = failureFrom(err)
		return o
	}

	o.Events = events
	o.Timeline = tl
	o.Summary = summary.Summarize(name, tl, events, r.totalFrames)
	return o
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
