package entity

// RawMatrix holds the cells of a delimited file exactly as tokenized.
// The first row is the header row. It is produced once per load and never mutated.
type RawMatrix struct {
	Rows [][]string
}

// Header returns the header row, or nil when the matrix is empty.
func (m RawMatrix) Header() []string {
	if len(m.Rows) == 0 {
		return nil
	}
	return m.Rows[0]
}

// Records returns every row after the header.
func (m RawMatrix) Records() [][]string {
	if len(m.Rows) < 2 {
		return nil
	}
	return m.Rows[1:]
}

// Len returns the number of rows including the header.
func (m RawMatrix) Len() int {
	return len(m.Rows)
}
