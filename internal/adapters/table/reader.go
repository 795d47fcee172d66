package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV parses a delimited file with a header row into Columns.
func ReadCSV(path string) (*Columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadTable, err)
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) (*Columns, error) {
	cr := csv.NewReader(r)
	// ImageJ exports occasionally carry ragged rows; missing cells read
	// as empty instead of failing the parse.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrReadTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadTable, err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadTable, err)
		}
		rows = append(rows, record)
	}
	return NewColumns(header, rows), nil
}
