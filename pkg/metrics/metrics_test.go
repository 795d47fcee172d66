package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			registryOpt := WithRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("And all metric families register on that registry", func() {
				// The unobserved label vec exports no family yet.
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldEqual, 8)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording batch outcomes", func() {
			Convey("Then it should record processed files", func() {
				So(func() {
					RecordFileProcessed()
					RecordFileProcessed()
				}, ShouldNotPanic)
			})

			Convey("And it should record failed files", func() {
				So(func() {
					RecordFileFailed()
				}, ShouldNotPanic)
			})

			Convey("And it should record validation errors by kind", func() {
				So(func() {
					RecordValidationError("Missing Column")
					RecordValidationError("Odd Entry Count")
					RecordValidationError("Missing Column")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording pipeline metrics", func() {
			Convey("Then it should record built events and clamps", func() {
				So(func() {
					RecordEventsBuilt(3)
					RecordFrameClamped()
					RecordOverlapResolved(12)
				}, ShouldNotPanic)
			})

			Convey("And it should record processing latency", func() {
				So(func() {
					RecordFileProcessingLatency(1.5)
					RecordFileProcessingLatency(20.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When updating operational gauges", func() {
			Convey("Then it should update queue size and worker count", func() {
				So(func() {
					UpdateQueueSize(100)
					UpdateQueueSize(0)
					UpdateWorkerCount(8)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When gathering after recording", func() {
			RecordFileProcessed()
			families, err := GetRegistry().Gather()

			Convey("Then the batch metrics are exposed", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["groomtrack_batch_files_processed_total"], ShouldBeTrue)
				So(names["groomtrack_batch_queue_size"], ShouldBeTrue)
			})
		})
	})
}
