// Package outcome collects per-file results from concurrent pipeline
// workers into a deterministic, write-once batch record.
package outcome

import (
	"fmt"
	"sync"

	"github.com/flylab/groomtrack/internal/domain/model"
)

// Collector provides write access for workers and ordered read access
// for aggregation.
type Collector interface {
	// Record stores the outcome for the file at the given discovery
	// index. Each index is write-once; a second Record for the same
	// index fails with ErrDuplicateRecord.
	Record(index int, o model.FileOutcome) error

	// Outcomes returns all recorded outcomes in discovery order.
	// Only valid after every worker has drained.
	Outcomes() []model.FileOutcome

	// Len returns the number of recorded outcomes.
	Len() int
}

// memoryCollector implements Collector over a pre-sized slice so
// discovery order survives arbitrary worker interleaving.
type memoryCollector struct {
	mu       sync.Mutex
	outcomes []model.FileOutcome
	recorded []bool
	count    int
}

// NewCollector creates a collector for a batch of n files.
func NewCollector(n int) Collector {
	return &memoryCollector{
		outcomes: make([]model.FileOutcome, n),
		recorded: make([]bool, n),
	}
}

func (c *memoryCollector) Record(index int, o model.FileOutcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.outcomes) {
		return fmt.Errorf("%w: index %d of %d", ErrIndexOutOfRange, index, len(c.outcomes))
	}
	if c.recorded[index] {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, o.Filename)
	}
	c.outcomes[index] = o
	c.recorded[index] = true
	c.count++
	return nil
}

func (c *memoryCollector) Outcomes() []model.FileOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.FileOutcome, 0, c.count)
	for i, ok := range c.recorded {
		if ok {
			out = append(out, c.outcomes[i])
		}
	}
	return out
}

func (c *memoryCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
