package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	queue "github.com/flylab/groomtrack/internal/adapters/mq/queue"
	worker "github.com/flylab/groomtrack/internal/adapters/mq/worker"
	"github.com/flylab/groomtrack/internal/domain/model"
	"github.com/flylab/groomtrack/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// memCollector is a minimal thread-safe Collector for tests.
type memCollector struct {
	mu       sync.Mutex
	recorded map[int]model.FileOutcome
}

func newMemCollector() *memCollector {
	return &memCollector{recorded: make(map[int]model.FileOutcome)}
}

func (c *memCollector) Record(index int, o model.FileOutcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recorded[index] = o
	return nil
}

func (c *memCollector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.recorded)
}

func TestPool(t *testing.T) {
	Convey("Given a pool over a queue of file jobs", t, func() {
		ctx := context.Background()

		pipeline := worker.PipelineFunc(func(_ context.Context, path string) model.FileOutcome {
			if path == "bad.csv" {
				return model.FileOutcome{
					Filename: path,
					Err:      &model.FailureRecord{Kind: model.KindOddEntryCount, Detail: "odd"},
				}
			}
			return model.FileOutcome{Filename: path}
		})

		Convey("When the queue drains", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(8))
			jobs := []string{"a.csv", "bad.csv", "c.csv", "d.csv"}
			for i, p := range jobs {
				So(q.Enqueue(ctx, queue.FileJob{Path: p, Index: i}), ShouldBeTrue)
			}
			So(q.Close(), ShouldBeNil)

			collector := newMemCollector()
			pool := worker.NewPool(3, q, pipeline, collector)
			pool.Start(ctx)

			waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			err := pool.Wait(waitCtx)

			Convey("Then every job is processed exactly once", func() {
				So(err, ShouldBeNil)
				So(collector.len(), ShouldEqual, len(jobs))
			})

			Convey("And failures are outcomes, not aborts", func() {
				So(err, ShouldBeNil)
				So(collector.recorded[1].Failed(), ShouldBeTrue)
				So(collector.recorded[1].Err.Kind, ShouldEqual, model.KindOddEntryCount)
				So(collector.recorded[2].Failed(), ShouldBeFalse)
			})
		})

		Convey("When the context is canceled before the queue closes", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))
			collector := newMemCollector()
			pool := worker.NewPool(2, q, pipeline, collector)

			runCtx, cancel := context.WithCancel(ctx)
			pool.Start(runCtx)
			cancel()

			waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
			defer waitCancel()

			Convey("Then the workers exit cleanly", func() {
				So(pool.Wait(waitCtx), ShouldBeNil)
			})
		})
	})
}
