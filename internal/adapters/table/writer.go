package table

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/flylab/groomtrack/internal/domain/model"
)

// OverallRow labels the aggregate row in the summary report.
const OverallRow = "OVERALL"

// floatPrecision controls how statistics are rendered in reports.
const floatPrecision = 2

// WriteTimelineCSV writes the dense per-frame table.
// Columns: Frame, GroomingFlag, EventID.
func WriteTimelineCSV(w io.Writer, tl model.Timeline) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Frame", "GroomingFlag", "EventID"}); err != nil {
		return err
	}
	for _, row := range tl {
		flag := "0"
		if row.Active {
			flag = "1"
		}
		rec := []string{
			strconv.Itoa(row.Frame),
			flag,
			strconv.Itoa(row.EventID),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEventsCSV writes the event table with post-clamp bounds.
// Columns: EventID, StartFrame, StopFrame.
func WriteEventsCSV(w io.Writer, events []model.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"EventID", "StartFrame", "StopFrame"}); err != nil {
		return err
	}
	for _, ev := range events {
		rec := []string{
			strconv.Itoa(ev.ID),
			strconv.Itoa(ev.Start),
			strconv.Itoa(ev.Stop),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes one row per successful file plus the OVERALL row.
func WriteSummaryCSV(w io.Writer, summaries []model.FileSummary, batch model.BatchSummary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"filename", "num_events", "total_grooming_frames",
		"avg_event_duration", "median_event_duration", "std_event_duration",
		"grooming_percentage",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		rec := []string{
			s.Filename,
			strconv.Itoa(s.NumEvents),
			strconv.Itoa(s.TotalActiveFrames),
			formatFloat(s.AvgDuration),
			formatFloat(s.MedianDuration),
			formatFloat(s.StdDuration),
			formatFloat(s.ActivePercentage),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	overall := []string{
		OverallRow,
		strconv.Itoa(batch.NumEvents),
		strconv.Itoa(batch.TotalActiveFrames),
		formatFloat(batch.AvgDuration),
		formatFloat(batch.MedianDuration),
		formatFloat(batch.StdDuration),
		formatFloat(batch.OverallPercentage),
	}
	if err := cw.Write(overall); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteErrorLogCSV writes one row per failed file. The frame column is
// populated only for ordering failures.
func WriteErrorLogCSV(w io.Writer, outcomes []model.FileOutcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"filename", "error_type", "details", "frame"}); err != nil {
		return err
	}
	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}
		frame := ""
		if o.Err.HasFrame {
			frame = strconv.Itoa(o.Err.Frame)
		}
		rec := []string{o.Filename, o.Err.Kind, o.Err.Detail, frame}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', floatPrecision, 64)
}
