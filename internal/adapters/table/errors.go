package table

import "errors"

// Sentinel kinds for table I/O errors.
var (
	ErrReadTable = errors.New("read table failed")
)
