// Package locale holds the text folding and collation rules shared by the
// schema resolver, the filter cascade and the aggregator.
package locale

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tag is the locale used for ordering option lists and category labels.
var Tag = language.Spanish

var (
	collatorMu sync.Mutex
	collator   = collate.New(Tag)

	printerMu sync.Mutex
	printer   = message.NewPrinter(Tag)
)

// StripDiacritics removes combining marks after canonical decomposition,
// so "ALMACÉN" becomes "ALMACEN".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold trims, uppercases, strips diacritics and collapses internal whitespace.
func Fold(s string) string {
	s = StripDiacritics(strings.ToUpper(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// Compare orders two strings with locale-aware collation.
func Compare(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// Less reports whether a sorts before b. Strings that collate equal fall back
// to byte order so the result is deterministic.
func Less(a, b string) bool {
	if c := Compare(a, b); c != 0 {
		return c < 0
	}
	return a < b
}

// SortStrings sorts values in place with locale-aware collation.
func SortStrings(values []string) {
	sort.SliceStable(values, func(i, j int) bool { return Less(values[i], values[j]) })
}

// FormatInt renders n with the locale's digit grouping.
func FormatInt(n int) string {
	printerMu.Lock()
	defer printerMu.Unlock()
	return printer.Sprintf("%d", n)
}

// FormatNumber renders f with two decimals and the locale's separators.
func FormatNumber(f float64) string {
	printerMu.Lock()
	defer printerMu.Unlock()
	return printer.Sprintf("%.2f", f)
}
