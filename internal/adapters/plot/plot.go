// Package plot renders SVG visualizations of timelines and event
// duration distributions. It is a pure consumer of the core's tables.
package plot

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/flylab/groomtrack/internal/domain/model"
)

// Options sizes the generated SVG.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns the standard plot dimensions.
func DefaultOptions() Options {
	return Options{Width: 960, Height: 200}
}

const (
	marginX = 40
	marginY = 30
)

// TimelineSVG renders the grooming timeline as a strip chart: one
// horizontal band with a filled span for every contiguous active run.
func TimelineSVG(w io.Writer, tl model.Timeline, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}

	var b strings.Builder
	openSVG(&b, opts)

	total := len(tl)
	plotW := float64(opts.Width - 2*marginX)
	bandY := marginY
	bandH := opts.Height - 2*marginY

	// Band outline and axis labels
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.1f" height="%d" fill="#f5f5f5" stroke="#999"/>`+"\n",
		marginX, bandY, plotW, bandH)
	fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="11" fill="#333">1</text>`+"\n", marginX, opts.Height-marginY+15)
	fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="11" fill="#333" text-anchor="end">%d</text>`+"\n",
		float64(marginX)+plotW, opts.Height-marginY+15, total)

	for _, run := range activeRuns(tl) {
		x := float64(marginX) + float64(run.start-1)/float64(total)*plotW
		width := float64(run.stop-run.start+1) / float64(total) * plotW
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(&b, `<rect x="%.2f" y="%d" width="%.2f" height="%d" fill="#2b8cbe"><title>event %d: frames %d-%d</title></rect>`+"\n",
			x, bandY, width, bandH, run.eventID, run.start, run.stop)
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// DurationBoxSVG renders a box plot of event durations (in frames) with
// whiskers at the min and max. An empty duration list yields a labeled
// empty chart rather than an error.
func DurationBoxSVG(w io.Writer, durations []int, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions()
	}

	var b strings.Builder
	openSVG(&b, opts)

	if len(durations) == 0 {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="13" fill="#666">no events</text>`+"\n",
			opts.Width/2-30, opts.Height/2)
		b.WriteString("</svg>\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	sorted := make([]int, len(durations))
	copy(sorted, durations)
	sort.Ints(sorted)

	lo := float64(sorted[0])
	hi := float64(sorted[len(sorted)-1])
	q1 := quantile(sorted, 0.25)
	med := quantile(sorted, 0.5)
	q3 := quantile(sorted, 0.75)

	span := hi - lo
	if span == 0 {
		span = 1 // all durations equal; draw a degenerate box
	}
	plotW := float64(opts.Width - 2*marginX)
	scale := func(v float64) float64 {
		return float64(marginX) + (v-lo)/span*plotW
	}

	midY := opts.Height / 2
	boxH := opts.Height/2 - marginY

	// Whiskers
	fmt.Fprintf(&b, `<line x1="%.2f" y1="%d" x2="%.2f" y2="%d" stroke="#333"/>`+"\n",
		scale(lo), midY, scale(q1), midY)
	fmt.Fprintf(&b, `<line x1="%.2f" y1="%d" x2="%.2f" y2="%d" stroke="#333"/>`+"\n",
		scale(q3), midY, scale(hi), midY)
	fmt.Fprintf(&b, `<line x1="%.2f" y1="%d" x2="%.2f" y2="%d" stroke="#333"/>`+"\n",
		scale(lo), midY-boxH/2, scale(lo), midY+boxH/2)
	fmt.Fprintf(&b, `<line x1="%.2f" y1="%d" x2="%.2f" y2="%d" stroke="#333"/>`+"\n",
		scale(hi), midY-boxH/2, scale(hi), midY+boxH/2)

	// Box and median
	fmt.Fprintf(&b, `<rect x="%.2f" y="%d" width="%.2f" height="%d" fill="#a6bddb" stroke="#333"/>`+"\n",
		scale(q1), midY-boxH, scale(q3)-scale(q1), 2*boxH)
	fmt.Fprintf(&b, `<line x1="%.2f" y1="%d" x2="%.2f" y2="%d" stroke="#333" stroke-width="2"/>`+"\n",
		scale(med), midY-boxH, scale(med), midY+boxH)

	// Scale labels
	fmt.Fprintf(&b, `<text x="%.2f" y="%d" font-size="11" fill="#333">%d</text>`+"\n",
		scale(lo), opts.Height-8, sorted[0])
	fmt.Fprintf(&b, `<text x="%.2f" y="%d" font-size="11" fill="#333" text-anchor="end">%d</text>`+"\n",
		scale(hi), opts.Height-8, sorted[len(sorted)-1])

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func openSVG(b *strings.Builder, opts Options) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
}

type run struct {
	start, stop, eventID int
}

// activeRuns collapses the dense timeline into contiguous active spans.
// A change of event id starts a new run so overlap resolution stays
// visible in the plot.
func activeRuns(tl model.Timeline) []run {
	var runs []run
	for _, row := range tl {
		if !row.Active {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].stop == row.Frame-1 && runs[n-1].eventID == row.EventID {
			runs[n-1].stop = row.Frame
			continue
		}
		runs = append(runs, run{start: row.Frame, stop: row.Frame, eventID: row.EventID})
	}
	return runs
}

// quantile uses linear interpolation over the sorted values.
func quantile(sorted []int, q float64) float64 {
	if len(sorted) == 1 {
		return float64(sorted[0])
	}
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	frac := pos - float64(i)
	if i+1 >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}
	return float64(sorted[i]) + frac*float64(sorted[i+1]-sorted[i])
}
