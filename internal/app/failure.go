package app

import (
	"errors"

	"github.com/flylab/groomtrack/internal/domain/extract"
	"github.com/flylab/groomtrack/internal/domain/model"
	"github.com/flylab/groomtrack/internal/domain/pairing"
	"github.com/flylab/groomtrack/internal/domain/timeline"
)

// failureFrom converts a pipeline error into the structured failure
// record that ends up in the error log. Errors outside the validation
// taxonomy (unreadable file, bad CSV) are recorded as read failures
// rather than escaping the batch.
func failureFrom(err error) *model.FailureRecord {
	rec := &model.FailureRecord{Detail: err.Error()}

	var nonIncreasing *extract.NonIncreasingError
	switch {
	case errors.Is(err, extract.ErrMissingColumn):
		rec.Kind = model.KindMissingColumn
	case errors.Is(err, extract.ErrNonNumericValue):
		rec.Kind = model.KindNonNumericValue
	case errors.Is(err, extract.ErrOddEntryCount):
		rec.Kind = model.KindOddEntryCount
	case errors.As(err, &nonIncreasing):
		rec.Kind = model.KindNonIncreasing
		rec.Frame = nonIncreasing.Frame
		rec.HasFrame = true
	case errors.Is(err, pairing.ErrUnpairedSequence):
		rec.Kind = model.KindUnpairedSequence
	case errors.Is(err, pairing.ErrInvalidPair):
		rec.Kind = model.KindInvalidPair
	case errors.Is(err, timeline.ErrOverlappingEvents):
		rec.Kind = model.KindOverlap
	default:
		rec.Kind = model.KindReadFailure
	}
	return rec
}
