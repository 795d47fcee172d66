package timeline

import (
	"errors"
	"fmt"
)

// Sentinel kinds for projection errors.
var (
	ErrOverlappingEvents = errors.New("overlapping events")
)

// OverlapError reports the first frame claimed by two events. Only
// produced in strict mode.
type OverlapError struct {
	Frame    int
	FirstID  int
	SecondID int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("frame %d claimed by events %d and %d", e.Frame, e.FirstID, e.SecondID)
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingEvents }
