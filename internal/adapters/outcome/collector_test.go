package outcome_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	outcome "github.com/flylab/groomtrack/internal/adapters/outcome"
	"github.com/flylab/groomtrack/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCollector(t *testing.T) {
	Convey("Given a collector for three files", t, func() {
		c := outcome.NewCollector(3)

		Convey("When outcomes arrive out of order", func() {
			So(c.Record(2, model.FileOutcome{Filename: "c.csv"}), ShouldBeNil)
			So(c.Record(0, model.FileOutcome{Filename: "a.csv"}), ShouldBeNil)
			So(c.Record(1, model.FileOutcome{Filename: "b.csv"}), ShouldBeNil)

			Convey("Then Outcomes returns them in discovery order", func() {
				got := c.Outcomes()
				So(got, ShouldHaveLength, 3)
				So(got[0].Filename, ShouldEqual, "a.csv")
				So(got[1].Filename, ShouldEqual, "b.csv")
				So(got[2].Filename, ShouldEqual, "c.csv")
			})
		})

		Convey("When the same index is recorded twice", func() {
			So(c.Record(1, model.FileOutcome{Filename: "b.csv"}), ShouldBeNil)
			err := c.Record(1, model.FileOutcome{Filename: "b.csv"})

			Convey("Then the write-once contract rejects it", func() {
				So(errors.Is(err, outcome.ErrDuplicateRecord), ShouldBeTrue)
				So(c.Len(), ShouldEqual, 1)
			})
		})

		Convey("When an index is out of range", func() {
			err := c.Record(3, model.FileOutcome{Filename: "d.csv"})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, outcome.ErrIndexOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When only some outcomes are recorded", func() {
			So(c.Record(1, model.FileOutcome{Filename: "b.csv"}), ShouldBeNil)

			Convey("Then Outcomes skips the gaps", func() {
				got := c.Outcomes()
				So(got, ShouldHaveLength, 1)
				So(got[0].Filename, ShouldEqual, "b.csv")
			})
		})
	})

	Convey("Given concurrent workers recording", t, func() {
		const n = 32
		c := outcome.NewCollector(n)

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_ = c.Record(i, model.FileOutcome{Filename: fmt.Sprintf("f%02d.csv", i)})
			}(i)
		}
		wg.Wait()

		Convey("Then every outcome lands exactly once, in order", func() {
			got := c.Outcomes()
			So(got, ShouldHaveLength, n)
			for i, o := range got {
				So(o.Filename, ShouldEqual, fmt.Sprintf("f%02d.csv", i))
			}
		})
	})
}
