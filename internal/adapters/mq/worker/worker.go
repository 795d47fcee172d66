// Package worker runs the per-file pipeline concurrently over queued
// file jobs. Files are independent, so parallelizing them does not
// change observable results as long as outcomes are collected through
// the thread-safe collector.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/flylab/groomtrack/internal/adapters/mq/queue"
	"github.com/flylab/groomtrack/internal/domain/model"
	"github.com/flylab/groomtrack/pkg/logger"
	"github.com/flylab/groomtrack/pkg/metrics"
)

// Default worker configuration constants.
const (
	workerShutdownTimeout = 5 * time.Second
)

// Pipeline processes one annotation file to completion. It must not
// return an error: validation failures are folded into the outcome.
type Pipeline interface {
	Process(ctx context.Context, path string) model.FileOutcome
}

// PipelineFunc adapts a function to the Pipeline interface.
type PipelineFunc func(ctx context.Context, path string) model.FileOutcome

func (f PipelineFunc) Process(ctx context.Context, path string) model.FileOutcome {
	return f(ctx, path)
}

// Collector receives each file's outcome exactly once.
type Collector interface {
	Record(index int, outcome model.FileOutcome) error
}

// Queue defines how workers receive file jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.FileJob
}

// Worker processes file jobs until its queue drains.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// FileWorker implements Worker.
type FileWorker struct {
	queue     Queue
	pipeline  Pipeline
	collector Collector
	name      string

	// Shutdown control
	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewFileWorker creates a new worker with configuration options.
func NewFileWorker(q Queue, p Pipeline, c Collector, opts ...Option) *FileWorker {
	w := &FileWorker{
		queue:     q,
		pipeline:  p,
		collector: c,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *FileWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				// Queue drained, worker is finished.
				return
			}
			w.processJob(ctx, job)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *FileWorker) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob runs the pipeline for one file and records the outcome.
func (w *FileWorker) processJob(ctx context.Context, job queue.FileJob) {
	start := time.Now()
	outcome := w.pipeline.Process(ctx, job.Path)
	metrics.RecordFileProcessingLatency(float64(time.Since(start).Milliseconds()))

	if outcome.Failed() {
		metrics.RecordFileFailed()
		metrics.RecordValidationError(outcome.Err.Kind)
	} else {
		metrics.RecordFileProcessed()
	}

	if err := w.collector.Record(job.Index, outcome); err != nil {
		w.logger.Error(ctx, "recording outcome failed",
			logger.String("file", job.Path),
			logger.Error(err),
		)
	}
}

// Pool manages multiple workers.
type Pool struct {
	workers []*FileWorker

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, p Pipeline, c Collector) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*FileWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewFileWorker(q, p, c, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Wait blocks until every worker has drained and exited, or ctx is done.
func (p *Pool) Wait(ctx context.Context) error {
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "wait canceled before workers drained", logger.Int("worker_id", i))
			return ctx.Err()
		}
	}
	return nil
}

// Stop forces all workers to stop without waiting for the queue to drain.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		w.stopOnce.Do(func() { close(w.shutdown) })
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}
