// Package table adapts delimited text files to the minimal column
// contract the domain consumes, and writes the output tables whose
// shapes the core dictates.
package table

// Columns is an in-memory table with named columns. It satisfies the
// domain's Table contract.
type Columns struct {
	headers []string
	index   map[string]int
	rows    [][]string
}

// NewColumns builds a table from a header row and data rows. Short rows
// read as empty cells.
func NewColumns(headers []string, rows [][]string) *Columns {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return &Columns{headers: headers, index: idx, rows: rows}
}

// Column returns the raw cells of the named column in row order.
func (c *Columns) Column(name string) ([]string, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	cells := make([]string, len(c.rows))
	for r, row := range c.rows {
		if i < len(row) {
			cells[r] = row[i]
		}
	}
	return cells, true
}

// Headers returns the column names in file order.
func (c *Columns) Headers() []string {
	return c.headers
}

// Len returns the number of data rows.
func (c *Columns) Len() int {
	return len(c.rows)
}
