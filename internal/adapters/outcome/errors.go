package outcome

import "errors"

// Sentinel kinds for collector errors.
var (
	ErrDuplicateRecord = errors.New("outcome already recorded")
	ErrIndexOutOfRange = errors.New("outcome index out of range")
)
