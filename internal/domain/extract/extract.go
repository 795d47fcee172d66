// Package extract validates annotation tables and pulls out the ordered
// frame-index sequence that the rest of the pipeline consumes.
package extract

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/flylab/groomtrack/pkg/logger"
)

// FrameColumn is the column a well-formed annotation table must carry.
const FrameColumn = "Frame"

// Table is the minimal input contract: a named column of raw cells in
// row order. It decouples the extractor from any tabular library.
type Table interface {
	// Column returns the raw cells of the named column and whether the
	// column exists.
	Column(name string) ([]string, bool)
}

// Extractor turns a table into a validated frame sequence.
type Extractor interface {
	// Extract returns the frame values in original row order, or a
	// validation error. It never mutates the table.
	Extract(ctx context.Context, t Table) ([]int, error)
}

// FrameExtractor implements Extractor for ImageJ-style annotation tables.
type FrameExtractor struct {
	column string
	logger logger.Logger
}

// Option applies a configuration option to the FrameExtractor.
type Option func(*FrameExtractor)

// WithColumn overrides the frame column name.
func WithColumn(name string) Option {
	return func(e *FrameExtractor) {
		if name != "" {
			e.column = name
		}
	}
}

// WithLogger sets a custom logger for the extractor.
func WithLogger(l logger.Logger) Option {
	return func(e *FrameExtractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewFrameExtractor creates an extractor with configuration options.
func NewFrameExtractor(opts ...Option) *FrameExtractor {
	e := &FrameExtractor{
		column: FrameColumn,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract validates the frame column and returns the integer sequence.
// Validation order: column presence, numeric conversion, even cardinality,
// strict increase. The first violation wins.
func (e *FrameExtractor) Extract(ctx context.Context, t Table) ([]int, error) {
	cells, ok := t.Column(e.column)
	if !ok {
		return nil, &MissingColumnError{Column: e.column}
	}

	frames := make([]int, len(cells))
	for i, cell := range cells {
		v, err := parseFrame(cell)
		if err != nil {
			return nil, &NonNumericError{Value: cell, Position: i}
		}
		frames[i] = v
	}

	if len(frames)%2 != 0 {
		return nil, &OddEntryCountError{Count: len(frames)}
	}

	for i := 1; i < len(frames); i++ {
		if frames[i] <= frames[i-1] {
			return nil, &NonIncreasingError{Frame: frames[i], Position: i}
		}
	}

	if e.logger != nil {
		e.logger.Debug(ctx, "extracted frame sequence", logger.Int("frames", len(frames)))
	}
	return frames, nil
}

// parseFrame converts a raw cell to an integer without loss. Plain
// integers and integral floats ("100", "100.0") are accepted; anything
// else is rejected.
func parseFrame(cell string) (int, error) {
	s := strings.TrimSpace(cell)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}
