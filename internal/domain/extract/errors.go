package extract

import (
	"errors"
	"fmt"
)

// Sentinel kinds for extraction errors. Typed errors below unwrap to
// these so callers can branch with errors.Is and still recover the
// offending value with errors.As.
var (
	ErrMissingColumn   = errors.New("required column missing")
	ErrNonNumericValue = errors.New("non-numeric frame value")
	ErrOddEntryCount   = errors.New("odd number of frame entries")
	ErrNonIncreasing   = errors.New("frames not strictly increasing")
)

// MissingColumnError reports an absent frame column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q missing", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// NonNumericError reports a cell that cannot convert to an integer
// without loss.
type NonNumericError struct {
	Value    string
	Position int
}

func (e *NonNumericError) Error() string {
	return fmt.Sprintf("non-numeric frame value %q at row %d", e.Value, e.Position)
}

func (e *NonNumericError) Unwrap() error { return ErrNonNumericValue }

// OddEntryCountError reports an unpairable number of frame values.
type OddEntryCountError struct {
	Count int
}

func (e *OddEntryCountError) Error() string {
	return fmt.Sprintf("odd number of frame entries: %d", e.Count)
}

func (e *OddEntryCountError) Unwrap() error { return ErrOddEntryCount }

// NonIncreasingError reports the first strict-increase violation,
// carrying the offending value and its position.
type NonIncreasingError struct {
	Frame    int
	Position int
}

func (e *NonIncreasingError) Error() string {
	return fmt.Sprintf("frame %d at position %d is not greater than its predecessor", e.Frame, e.Position)
}

func (e *NonIncreasingError) Unwrap() error { return ErrNonIncreasing }
