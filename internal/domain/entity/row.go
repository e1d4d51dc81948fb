package entity

import "strings"

// Row is one normalized record: logical column to raw cell value.
// Rows are never mutated; trimming and typed coercion happen on read.
type Row map[LogicalColumn]string

// Text returns the trimmed value of col, or "" when the column is absent.
func (r Row) Text(col LogicalColumn) string {
	return strings.TrimSpace(r[col])
}

// Raw returns the cell exactly as parsed.
func (r Row) Raw(col LogicalColumn) string {
	return r[col]
}
