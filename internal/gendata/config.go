// Package gendata produces synthetic ImageJ-style annotation CSVs for
// testing and demos.
package gendata

// Corruption kinds a generated file can carry.
const (
	CorruptNone          = ""
	CorruptMissingColumn = "missing-column"
	CorruptNonNumeric    = "non-numeric"
	CorruptOddCount      = "odd-count"
	CorruptNonIncreasing = "non-increasing"
)

// Config controls generation.
type Config struct {
	// NumFiles is how many annotation files to produce.
	NumFiles int

	// EventsPerFile is how many (start, stop) pairs each file carries.
	EventsPerFile int

	// TotalFrames bounds the generated frame values.
	TotalFrames int

	// CorruptEvery injects one corrupted file per N files; 0 disables
	// corruption entirely.
	CorruptEvery int

	// OutputDir receives the generated files.
	OutputDir string
}

// DefaultConfig returns generation defaults matching the converter's
// default frame window.
func DefaultConfig() Config {
	return Config{
		NumFiles:      10,
		EventsPerFile: 5,
		TotalFrames:   8999,
		CorruptEvery:  0,
	}
}

// Stats reports what was generated.
type Stats struct {
	FilesWritten int
	Corrupted    int
	Events       int
}
