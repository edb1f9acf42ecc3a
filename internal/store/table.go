package store

import "github.com/nguyentantai21042004/meetlog/internal/summary"

// Table is the in-memory form of the store. Every row has len(Header) cells.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) columnIndex(column string) int {
	for i, h := range t.Header {
		if h == column {
			return i
		}
	}
	return -1
}

// Value returns the cell of data row i (0-based) under column.
func (t Table) Value(i int, column string) (string, bool) {
	idx := t.columnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return "", false
	}
	return t.Rows[i][idx], true
}

// appendRow extends the header with row's new columns, pads existing rows
// with empty cells, then adds row.
func (t *Table) appendRow(row *summary.Row) {
	for _, col := range row.Columns() {
		if t.columnIndex(col) < 0 {
			t.Header = append(t.Header, col)
		}
	}

	for i, r := range t.Rows {
		if len(r) < len(t.Header) {
			t.Rows[i] = append(r, make([]string, len(t.Header)-len(r))...)
		}
	}

	cells := make([]string, len(t.Header))
	for i, h := range t.Header {
		cells[i], _ = row.Get(h)
	}
	t.Rows = append(t.Rows, cells)
}
