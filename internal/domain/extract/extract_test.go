package extract_test

import (
	"context"
	"errors"
	"testing"

	extract "github.com/flylab/groomtrack/internal/domain/extract"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeTable implements the Table contract for tests.
type fakeTable struct {
	columns map[string][]string
}

func (t *fakeTable) Column(name string) ([]string, bool) {
	cells, ok := t.columns[name]
	return cells, ok
}

func imageJTable(frames []string) *fakeTable {
	return &fakeTable{columns: map[string][]string{
		"Number": {"1", "2", "3", "4"},
		"Area":   {"100", "100", "100", "100"},
		"Frame":  frames,
	}}
}

func TestFrameExtractor_Extract(t *testing.T) {
	Convey("Given a frame extractor", t, func() {
		e := extract.NewFrameExtractor()
		ctx := context.Background()

		Convey("When extracting from a valid table", func() {
			frames, err := e.Extract(ctx, imageJTable([]string{"100", "150", "200", "250"}))

			Convey("Then it should return the sequence in row order", func() {
				So(err, ShouldBeNil)
				So(frames, ShouldResemble, []int{100, 150, 200, 250})
			})
		})

		Convey("When the table carries integral float cells", func() {
			frames, err := e.Extract(ctx, imageJTable([]string{"100.0", "150", "200.0", "250"}))

			Convey("Then conversion is lossless and succeeds", func() {
				So(err, ShouldBeNil)
				So(frames, ShouldResemble, []int{100, 150, 200, 250})
			})
		})

		Convey("When the Frame column is missing", func() {
			table := &fakeTable{columns: map[string][]string{
				"Number": {"1", "2"},
				"Area":   {"100", "100"},
			}}
			frames, err := e.Extract(ctx, table)

			Convey("Then it should fail with a missing column error", func() {
				So(frames, ShouldBeNil)
				So(errors.Is(err, extract.ErrMissingColumn), ShouldBeTrue)

				var mce *extract.MissingColumnError
				So(errors.As(err, &mce), ShouldBeTrue)
				So(mce.Column, ShouldEqual, "Frame")
			})
		})

		Convey("When a cell is not numeric", func() {
			frames, err := e.Extract(ctx, imageJTable([]string{"100", "abc", "200", "250"}))

			Convey("Then it should fail with a non-numeric error carrying the cell", func() {
				So(frames, ShouldBeNil)
				So(errors.Is(err, extract.ErrNonNumericValue), ShouldBeTrue)

				var nne *extract.NonNumericError
				So(errors.As(err, &nne), ShouldBeTrue)
				So(nne.Value, ShouldEqual, "abc")
				So(nne.Position, ShouldEqual, 1)
			})
		})

		Convey("When a cell is a fractional float", func() {
			_, err := e.Extract(ctx, imageJTable([]string{"100", "150.5", "200", "250"}))

			Convey("Then lossy conversion is rejected", func() {
				So(errors.Is(err, extract.ErrNonNumericValue), ShouldBeTrue)
			})
		})

		Convey("When the entry count is odd", func() {
			table := imageJTable([]string{"100", "150", "200"})
			frames, err := e.Extract(ctx, table)

			Convey("Then it should fail with an odd entry count error", func() {
				So(frames, ShouldBeNil)
				So(errors.Is(err, extract.ErrOddEntryCount), ShouldBeTrue)

				var oce *extract.OddEntryCountError
				So(errors.As(err, &oce), ShouldBeTrue)
				So(oce.Count, ShouldEqual, 3)
			})
		})

		Convey("When frames are not strictly increasing", func() {
			frames, err := e.Extract(ctx, imageJTable([]string{"100", "150", "140", "250"}))

			Convey("Then it should carry the offending value and position", func() {
				So(frames, ShouldBeNil)
				So(errors.Is(err, extract.ErrNonIncreasing), ShouldBeTrue)

				var nie *extract.NonIncreasingError
				So(errors.As(err, &nie), ShouldBeTrue)
				So(nie.Frame, ShouldEqual, 140)
				So(nie.Position, ShouldEqual, 2)
			})
		})

		Convey("When frames contain an equal adjacent pair", func() {
			_, err := e.Extract(ctx, imageJTable([]string{"100", "100", "200", "250"}))

			Convey("Then equality also violates strict increase", func() {
				So(errors.Is(err, extract.ErrNonIncreasing), ShouldBeTrue)
			})
		})

		Convey("When the table is empty", func() {
			frames, err := e.Extract(ctx, imageJTable(nil))

			Convey("Then an empty sequence is valid", func() {
				So(err, ShouldBeNil)
				So(frames, ShouldHaveLength, 0)
			})
		})

		Convey("When a custom column name is configured", func() {
			custom := extract.NewFrameExtractor(extract.WithColumn("Slice"))
			table := &fakeTable{columns: map[string][]string{
				"Slice": {"10", "20"},
			}}
			frames, err := custom.Extract(ctx, table)

			Convey("Then it reads the configured column", func() {
				So(err, ShouldBeNil)
				So(frames, ShouldResemble, []int{10, 20})
			})
		})
	})
}
