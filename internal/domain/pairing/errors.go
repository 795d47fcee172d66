package pairing

import (
	"errors"
	"fmt"
)

// Sentinel kinds for pairing errors.
var (
	ErrUnpairedSequence = errors.New("frame sequence has no even pairing")
	ErrInvalidPair      = errors.New("pair start exceeds stop")
)

// UnpairedSequenceError reports an odd-length sequence reaching the
// builder. Unreachable when the extractor ran first.
type UnpairedSequenceError struct {
	Count int
}

func (e *UnpairedSequenceError) Error() string {
	return fmt.Sprintf("cannot pair %d frame entries: even count required", e.Count)
}

func (e *UnpairedSequenceError) Unwrap() error { return ErrUnpairedSequence }

// InvalidPairError reports a pair whose start exceeds its stop,
// checked before clamping. Index is the 0-based pair index.
type InvalidPairError struct {
	Start int
	Stop  int
	Index int
}

func (e *InvalidPairError) Error() string {
	return fmt.Sprintf("invalid pair %d: start (%d) > stop (%d)", e.Index, e.Start, e.Stop)
}

func (e *InvalidPairError) Unwrap() error { return ErrInvalidPair }
