// Package summary derives per-file and cross-file descriptive statistics
// from timelines and event lists.
package summary

import (
	"math"
	"sort"

	"github.com/flylab/groomtrack/internal/domain/model"
)

const percentScale = 100.0

// Summarize computes per-file statistics. An empty event list yields
// zeros for every duration stat, never NaN.
func Summarize(filename string, tl model.Timeline, events []model.Event, totalFrames int) model.FileSummary {
	durations := make([]int, len(events))
	for i, ev := range events {
		durations[i] = ev.Duration()
	}

	active := tl.ActiveFrames()
	s := model.FileSummary{
		Filename:          filename,
		NumEvents:         len(events),
		TotalActiveFrames: active,
		AvgDuration:       mean(durations),
		MedianDuration:    median(durations),
		StdDuration:       stddev(durations),
		Durations:         durations,
	}
	if totalFrames > 0 {
		s.ActivePercentage = float64(active) / float64(totalFrames) * percentScale
	}
	return s
}

// Aggregate computes batch statistics over the successful subset.
// Duration stats are recomputed over the concatenation of every file's
// per-event durations, not over the per-file averages. The overall
// percentage is 0 when no file succeeded.
func Aggregate(summaries []model.FileSummary, totalFiles, totalFrames int) model.BatchSummary {
	b := model.BatchSummary{
		TotalFiles: totalFiles,
		Successful: len(summaries),
		Faulty:     totalFiles - len(summaries),
	}

	var all []int
	for _, s := range summaries {
		b.NumEvents += s.NumEvents
		b.TotalActiveFrames += s.TotalActiveFrames
		all = append(all, s.Durations...)
	}

	b.AvgDuration = mean(all)
	b.MedianDuration = median(all)
	b.StdDuration = stddev(all)

	if b.Successful > 0 && totalFrames > 0 {
		b.OverallPercentage = float64(b.TotalActiveFrames) / float64(b.Successful*totalFrames) * percentScale
	}
	return b
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// stddev is the population standard deviation (divisor N, not N-1).
func stddev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := float64(v) - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
