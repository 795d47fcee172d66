// Package model contains domain models passed between layers.
package model

// Event is one annotated grooming span derived from a consecutive
// (start, stop) frame pair. Bounds are post-clamp and inclusive.
type Event struct {
	ID    int // 1-based, sequential in pair order
	Start int
	Stop  int

	// Clamp diagnostics: true when the corresponding bound was forced
	// into the valid [1, totalFrames] window.
	StartClamped bool
	StopClamped  bool
}

// Duration returns the number of frames the event covers, inclusive.
func (e Event) Duration() int {
	return e.Stop - e.Start + 1
}

// TimelineRow is one dense per-frame record.
type TimelineRow struct {
	Frame   int
	Active  bool
	EventID int // 0 = no event
}

// Timeline covers frames 1..totalFrames, one row per frame.
type Timeline []TimelineRow

// ActiveFrames counts rows marked active.
func (t Timeline) ActiveFrames() int {
	n := 0
	for _, row := range t {
		if row.Active {
			n++
		}
	}
	return n
}

// FileSummary holds per-file descriptive statistics.
type FileSummary struct {
	Filename          string
	NumEvents         int
	TotalActiveFrames int
	AvgDuration       float64
	MedianDuration    float64
	StdDuration       float64
	ActivePercentage  float64

	// Durations keeps the per-event durations so batch aggregation can
	// recompute stats over the concatenated list rather than averaging
	// the per-file averages.
	Durations []int
}

// BatchSummary aggregates statistics across all successful files.
type BatchSummary struct {
	TotalFiles        int
	Successful        int
	Faulty            int
	NumEvents         int
	TotalActiveFrames int
	AvgDuration       float64
	MedianDuration    float64
	StdDuration       float64
	OverallPercentage float64
}

// Failure kind strings as they appear in the error log table.
const (
	KindMissingColumn    = "Missing Column"
	KindNonNumericValue  = "Non-numeric Values"
	KindOddEntryCount    = "Odd Entry Count"
	KindNonIncreasing    = "Non-increasing Frames"
	KindUnpairedSequence = "Unpaired Sequence"
	KindInvalidPair      = "Invalid Pair"
	KindOverlap          = "Overlapping Events"
	KindReadFailure      = "Read Failure"
)

// FailureRecord captures a per-file validation failure as structured data.
type FailureRecord struct {
	Kind   string
	Detail string

	// Frame carries the offending value for ordering failures only.
	Frame    int
	HasFrame bool
}

// FileOutcome is the tagged per-file result. Err is nil on success.
// It is write-once: the orchestrator records each file exactly once.
type FileOutcome struct {
	Filename string
	Events   []Event
	Timeline Timeline
	Summary  FileSummary
	Err      *FailureRecord
}

// Failed reports whether the file was rejected.
func (o FileOutcome) Failed() bool {
	return o.Err != nil
}

// BatchReport is the final result of a run.
type BatchReport struct {
	RunID    string
	Summary  BatchSummary
	Outcomes []FileOutcome
}
