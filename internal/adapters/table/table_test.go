package table_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	table "github.com/flylab/groomtrack/internal/adapters/table"
	"github.com/flylab/groomtrack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	Convey("Given an ImageJ-style CSV file", t, func() {
		path := writeTemp(t, "Number,Area,Frame\n1,100,100\n2,100,150\n3,100,200\n4,100,250\n")

		Convey("When reading it", func() {
			cols, err := table.ReadCSV(path)

			Convey("Then the Frame column comes back in row order", func() {
				So(err, ShouldBeNil)
				So(cols.Len(), ShouldEqual, 4)

				cells, ok := cols.Column("Frame")
				So(ok, ShouldBeTrue)
				So(cells, ShouldResemble, []string{"100", "150", "200", "250"})
			})

			Convey("And an absent column reports missing", func() {
				So(err, ShouldBeNil)
				_, ok := cols.Column("Slice")
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a ragged CSV file", t, func() {
		path := writeTemp(t, "Number,Frame\n1,100\n2\n3,200\n")

		Convey("When reading it", func() {
			cols, err := table.ReadCSV(path)

			Convey("Then short rows read as empty cells", func() {
				So(err, ShouldBeNil)
				cells, ok := cols.Column("Frame")
				So(ok, ShouldBeTrue)
				So(cells, ShouldResemble, []string{"100", "", "200"})
			})
		})
	})

	Convey("Given an empty file", t, func() {
		path := writeTemp(t, "")

		Convey("When reading it", func() {
			_, err := table.ReadCSV(path)

			Convey("Then it fails as a read error", func() {
				So(errors.Is(err, table.ErrReadTable), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing file", t, func() {
		Convey("When reading it", func() {
			_, err := table.ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))

			Convey("Then it fails as a read error", func() {
				So(errors.Is(err, table.ErrReadTable), ShouldBeTrue)
			})
		})
	})
}

func TestWriters(t *testing.T) {
	Convey("Given a small timeline", t, func() {
		tl := model.Timeline{
			{Frame: 1, Active: false, EventID: 0},
			{Frame: 2, Active: true, EventID: 1},
			{Frame: 3, Active: true, EventID: 1},
		}

		Convey("When writing the timeline table", func() {
			var b strings.Builder
			err := table.WriteTimelineCSV(&b, tl)

			Convey("Then the layout matches Frame,GroomingFlag,EventID", func() {
				So(err, ShouldBeNil)
				So(b.String(), ShouldEqual, "Frame,GroomingFlag,EventID\n1,0,0\n2,1,1\n3,1,1\n")
			})
		})
	})

	Convey("Given an event list", t, func() {
		events := []model.Event{
			{ID: 1, Start: 100, Stop: 150},
			{ID: 2, Start: 480, Stop: 500, StopClamped: true},
		}

		Convey("When writing the event table", func() {
			var b strings.Builder
			err := table.WriteEventsCSV(&b, events)

			Convey("Then rows carry post-clamp bounds", func() {
				So(err, ShouldBeNil)
				So(b.String(), ShouldEqual, "EventID,StartFrame,StopFrame\n1,100,150\n2,480,500\n")
			})
		})
	})

	Convey("Given per-file summaries and a batch summary", t, func() {
		summaries := []model.FileSummary{
			{Filename: "a.csv", NumEvents: 2, TotalActiveFrames: 102, AvgDuration: 51, MedianDuration: 51, ActivePercentage: 20.4},
		}
		batch := model.BatchSummary{
			NumEvents: 2, TotalActiveFrames: 102,
			AvgDuration: 51, MedianDuration: 51, OverallPercentage: 20.4,
		}

		Convey("When writing the summary report", func() {
			var b strings.Builder
			err := table.WriteSummaryCSV(&b, summaries, batch)

			Convey("Then there is one row per file plus OVERALL", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(b.String()), "\n")
				So(lines, ShouldHaveLength, 3)
				So(lines[0], ShouldEqual, "filename,num_events,total_grooming_frames,avg_event_duration,median_event_duration,std_event_duration,grooming_percentage")
				So(lines[1], ShouldStartWith, "a.csv,2,102,51.00,51.00,0.00,20.40")
				So(lines[2], ShouldStartWith, "OVERALL,2,102,")
			})
		})
	})

	Convey("Given outcomes with failures", t, func() {
		outcomes := []model.FileOutcome{
			{Filename: "good.csv"},
			{Filename: "bad.csv", Err: &model.FailureRecord{
				Kind:     model.KindNonIncreasing,
				Detail:   "frame 140 at position 2 is not greater than its predecessor",
				Frame:    140,
				HasFrame: true,
			}},
			{Filename: "worse.csv", Err: &model.FailureRecord{
				Kind:   model.KindMissingColumn,
				Detail: `required column "Frame" missing`,
			}},
		}

		Convey("When writing the error log", func() {
			var b strings.Builder
			err := table.WriteErrorLogCSV(&b, outcomes)

			Convey("Then only failed files appear", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(b.String()), "\n")
				So(lines, ShouldHaveLength, 3)
				So(lines[1], ShouldStartWith, "bad.csv,Non-increasing Frames,")
				So(lines[1], ShouldEndWith, ",140")
			})

			Convey("And the frame cell is empty for non-ordering failures", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(b.String()), "\n")
				So(lines[2], ShouldEndWith, ",")
			})
		})
	})
}
