// Package rows turns parsed records into logical rows and reads typed values from them.
package rows

import (
	"strings"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
)

// Normalize maps every record of m to a Row keyed by the logical columns of s.
// Cells are kept as parsed; records shorter than the header read as empty strings.
func Normalize(m entity.RawMatrix, s entity.Schema) []entity.Row {
	records := m.Records()
	out := make([]entity.Row, 0, len(records))
	for _, rec := range records {
		row := make(entity.Row, len(s.Resolved))
		for col, rc := range s.Resolved {
			if rc.Index < len(rec) {
				row[col] = rec[rc.Index]
			} else {
				row[col] = ""
			}
		}
		out = append(out, row)
	}
	return out
}

// Number reads col of r as a number.
func Number(r entity.Row, col entity.LogicalColumn) float64 {
	return ToNumber(r.Text(col))
}

// IsTruthy reads a flag cell: "", "0", "0.0" and "false" are false, anything else is true.
func IsTruthy(v string) bool {
	t := strings.TrimSpace(v)
	switch {
	case t == "", t == "0", t == "0.0":
		return false
	case strings.EqualFold(t, "false"):
		return false
	}
	return true
}

// Flag reads col of r as a flag.
func Flag(r entity.Row, col entity.LogicalColumn) bool {
	return IsTruthy(r.Text(col))
}
