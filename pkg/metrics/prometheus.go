// Package metrics provides Prometheus metrics for the groomtrack batch converter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the converter.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Batch outcome metrics
	filesProcessed prometheus.Counter
	filesFailed    prometheus.Counter

	// Core pipeline metrics
	eventsBuilt      prometheus.Counter
	framesClamped    prometheus.Counter
	overlapsResolved prometheus.Counter
	validationErrors *prometheus.CounterVec

	// Pipeline performance
	fileProcessingLatency prometheus.Histogram

	// Operational health
	queueSize   prometheus.Gauge
	workerCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "groomtrack",
		subsystem:        "batch",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_processed_total",
		Help:      "Total number of annotation files processed successfully",
	})

	m.filesFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_failed_total",
		Help:      "Total number of annotation files rejected by validation",
	})

	m.eventsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_built_total",
		Help:      "Total number of grooming events derived from frame pairs",
	})

	m.framesClamped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_clamped_total",
		Help:      "Total number of event bounds clamped into the valid frame window",
	})

	m.overlapsResolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overlaps_resolved_total",
		Help:      "Total number of overlapping frames resolved last-write-wins",
	})

	m.validationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_errors_total",
		Help:      "Total number of validation failures by error kind",
	}, []string{"kind"})

	m.fileProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "file_processing_latency_milliseconds",
		Help:      "Histogram of per-file pipeline latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of file jobs waiting in the queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of pipeline workers",
	})
}

// RecordFileProcessed increments the successful files counter.
func RecordFileProcessed() {
	globalManager.filesProcessed.Inc()
}

// RecordFileFailed increments the failed files counter.
func RecordFileFailed() {
	globalManager.filesFailed.Inc()
}

// RecordEventsBuilt adds to the derived events counter.
func RecordEventsBuilt(n int) {
	globalManager.eventsBuilt.Add(float64(n))
}

// RecordFrameClamped increments the clamped bounds counter.
func RecordFrameClamped() {
	globalManager.framesClamped.Inc()
}

// RecordOverlapResolved adds to the overlap resolution counter.
func RecordOverlapResolved(frames int) {
	globalManager.overlapsResolved.Add(float64(frames))
}

// RecordValidationError increments the validation failure counter for a kind.
func RecordValidationError(kind string) {
	globalManager.validationErrors.WithLabelValues(kind).Inc()
}

// RecordFileProcessingLatency records per-file pipeline latency in milliseconds.
func RecordFileProcessingLatency(latencyMs float64) {
	globalManager.fileProcessingLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size gauge.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateWorkerCount sets the worker count gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// GetRegistry returns the custom registry for exposing metrics over HTTP.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
