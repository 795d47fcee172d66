// Package discover resolves the --input argument into an ordered list
// of annotation files.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel kinds for discovery errors.
var (
	ErrInputMissing = errors.New("input path does not exist")
	ErrNoInputFiles = errors.New("no csv files found")
)

// Discover returns the CSV files under path. A .csv file resolves to
// itself; a directory to its immediate *.csv children sorted by name so
// batch output order is deterministic.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
		return nil, err
	}

	if !info.IsDir() {
		if !isCSV(path) {
			return nil, fmt.Errorf("%w: %s is not a csv file", ErrNoInputFiles, path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isCSV(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, path)
	}
	sort.Strings(files)
	return files, nil
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
