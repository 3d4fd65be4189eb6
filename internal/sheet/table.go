// Package sheet loads a spreadsheet sheet into an in-memory table keyed by
// column header and writes the table back out as a complete workbook.
package sheet

import "fmt"

// Table is an ordered header plus rows of string cells. Row order is the
// order of the sheet; row 0 is the first data row below the header.
//
// Cells loaded from a workbook also remember their stored value, formula and
// style, so Save writes untouched cells back unchanged.
type Table struct {
	Header []string
	Rows   [][]string

	cells map[cellKey]cellMeta
}

type cellKey struct {
	row, col int
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the column named name
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// Column returns one value per row for the named column. Cells missing from
// short rows read as "".
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}

	values := make([]string, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, idx)
	}
	return values, nil
}

// EnsureColumn returns the index of the named column, appending an empty
// column when it does not exist yet
func (t *Table) EnsureColumn(name string) int {
	if idx, ok := t.ColumnIndex(name); ok {
		return idx
	}
	t.Header = append(t.Header, name)
	return len(t.Header) - 1
}

// Cell returns the value at row, col or "" when the row is shorter
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Set stores value at row, col, growing the row as needed
func (t *Table) Set(row, col int, value string) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
	delete(t.cells, cellKey{row, col})
}

// Clone returns a deep copy of t
func (t *Table) Clone() *Table {
	c := &Table{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	if t.cells != nil {
		c.cells = make(map[cellKey]cellMeta, len(t.cells))
		for k, v := range t.cells {
			c.cells[k] = v
		}
	}
	return c
}

// Head returns up to n rows padded to the header width
func (t *Table) Head(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	head := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Header))
		for j := range row {
			row[j] = t.Cell(i, j)
		}
		head = append(head, row)
	}
	return head
}
