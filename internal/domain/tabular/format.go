package tabular

import (
	"regexp"
	"strings"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
)

// AllPlaceholder replaces an empty ("all") selection in suggested filenames.
const AllPlaceholder = "Todos"

const maxFilePart = 80

// Format serializes records with the same grammar Parse reads.
// A field is quoted when it holds the delimiter, a quote or a line break;
// quotes inside are doubled. Lines are joined with LineTerminator.
func Format(records [][]string, delim rune) string {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	sep := string(delim)
	lines := make([]string, len(records))
	for i, rec := range records {
		fields := make([]string, len(rec))
		for j, f := range rec {
			fields[j] = escapeField(f, delim)
		}
		lines[i] = strings.Join(fields, sep)
	}
	return strings.Join(lines, LineTerminator)
}

func escapeField(s string, delim rune) string {
	if !strings.ContainsRune(s, delim) && !strings.ContainsAny(s, "\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportRows writes the resolved header strings of cols followed by one line per
// row. Columns that did not resolve are skipped.
func ExportRows(rows []entity.Row, schema entity.Schema, cols []entity.LogicalColumn, delim rune) ([]string, [][]string, string) {
	present := make([]entity.LogicalColumn, 0, len(cols))
	for _, c := range cols {
		if schema.Has(c) {
			present = append(present, c)
		}
	}

	header := schema.HeadersFor(present)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := make([]string, len(present))
		for i, c := range present {
			rec[i] = r.Raw(c)
		}
		body = append(body, rec)
		records = append(records, rec)
	}
	return header, body, Format(records, delim)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// SafeFilePart reduces s to alphanumerics, '-' and '_' (runs of anything else
// become a single '_'), caps it at 80 characters and falls back to
// AllPlaceholder when nothing is left.
func SafeFilePart(s string) string {
	out := unsafeFileChars.ReplaceAllString(strings.TrimSpace(s), "_")
	if len(out) > maxFilePart {
		out = out[:maxFilePart]
	}
	if out == "" {
		return AllPlaceholder
	}
	return out
}

// SelectionFilePart renders a multi-select selection as one filename part.
func SelectionFilePart(values []string) string {
	if len(values) == 0 {
		return AllPlaceholder
	}
	return SafeFilePart(strings.Join(values, "-"))
}

// SuggestFilename joins prefix and the sanitized parts with '_' and appends ext.
func SuggestFilename(prefix, ext string, parts ...string) string {
	name := []string{SafeFilePart(prefix)}
	for _, p := range parts {
		name = append(name, SafeFilePart(p))
	}
	return strings.Join(name, "_") + "." + strings.TrimPrefix(ext, ".")
}
