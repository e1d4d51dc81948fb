// Package tabular reads and writes the semicolon-delimited text exports the
// dashboards are fed with.
//
// The grammar is RFC 4180 quoting with a configurable delimiter, tolerant of
// hand-edited files: an unterminated quote at end of input closes implicitly.
package tabular

import (
	"strings"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
)

const (
	// DefaultDelimiter is the field separator of the source exports.
	DefaultDelimiter = ';'

	// LineTerminator is the canonical record separator, used by Parse after
	// normalization and by Format when writing.
	LineTerminator = "\n"

	quote = '"'
	bom   = "\uFEFF"
)

// Parse tokenizes text into a RawMatrix.
//
// Line endings are normalized to LF first. Delimiters and line breaks inside an
// open quote are literal, and a doubled quote inside an open quote is an escaped
// quote. Rows whose cells are all blank after trimming are dropped.
func Parse(text string, delim rune) entity.RawMatrix {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	text = strings.TrimPrefix(text, bom)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var (
		rows     [][]string
		row      []string
		cur      strings.Builder
		inQuotes bool
		touched  bool
	)

	endField := func() {
		row = append(row, cur.String())
		cur.Reset()
	}
	endRow := func() {
		endField()
		if !blank(row) {
			rows = append(rows, row)
		}
		row = nil
		touched = false
	}

	src := []rune(text)
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == quote:
			touched = true
			if inQuotes && i+1 < len(src) && src[i+1] == quote {
				cur.WriteRune(quote)
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			touched = true
			endField()
		case ch == '\n' && !inQuotes:
			endRow()
		default:
			touched = true
			cur.WriteRune(ch)
		}
	}

	// Trailing row without a terminal newline. An open quote is closed implicitly.
	if touched || cur.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return entity.RawMatrix{Rows: rows}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
