package rows

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
)

// ToNumber reads a locale-formatted number. Blank or unparseable cells read as 0.
func ToNumber(s string) float64 {
	n, _ := ParseNumber(s)
	return n
}

// ParseNumber is ToNumber that also reports whether the cell held a number.
// A blank cell is 0 and counts as parsed.
//
// When the value has a comma every '.' is a thousands separator and the comma is
// the decimal separator ("1.234,56"). A trailing '%' is ignored.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSuffix(s, "%")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

var (
	dayFirst  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})$`)
	yearFirst = regexp.MustCompile(`^(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})$`)
	monthOnly = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// ParseDate reads dd/mm/yyyy, dd-mm-yyyy or yyyy-mm-dd. Day and month may have
// one or two digits. Anything else, including impossible calendar dates such as
// 31/02/2025, returns nil.
func ParseDate(s string) *time.Time {
	t, ok := ParseDateOK(s)
	if !ok {
		return nil
	}
	return &t
}

// ParseDateOK is ParseDate returning a value and a success flag.
func ParseDateOK(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if m := dayFirst.FindStringSubmatch(s); m != nil {
		return civil(m[3], m[2], m[1])
	}
	if m := yearFirst.FindStringSubmatch(s); m != nil {
		return civil(m[1], m[2], m[3])
	}
	return time.Time{}, false
}

func civil(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// time.Date normaliza 31/02 para 03/03
	if t.Day() != d || int(t.Month()) != mo {
		return time.Time{}, false
	}
	return t, true
}

// MonthKey formats t as yyyy-mm, which sorts chronologically as a string.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// IsMonthKey reports whether s is already a yyyy-mm key.
func IsMonthKey(s string) bool {
	return monthOnly.MatchString(s)
}

// Bucketer derives the month key of a row. ok is false for unbucketable rows.
type Bucketer func(r entity.Row) (key string, ok bool)

// MonthBucketer buckets rows by the date in col.
func MonthBucketer(col entity.LogicalColumn) Bucketer {
	return func(r entity.Row) (string, bool) {
		t, ok := ParseDateOK(r.Text(col))
		if !ok {
			return "", false
		}
		return MonthKey(t), true
	}
}

// MonthLabelBucketer prefers a yyyy-mm label column and falls back to a date
// column, then to reading the label itself as a date.
func MonthLabelBucketer(labelCol, dateCol entity.LogicalColumn) Bucketer {
	return func(r entity.Row) (string, bool) {
		label := r.Text(labelCol)
		if IsMonthKey(label) {
			return label, true
		}
		if t, ok := ParseDateOK(r.Text(dateCol)); ok {
			return MonthKey(t), true
		}
		if t, ok := ParseDateOK(label); ok {
			return MonthKey(t), true
		}
		return "", false
	}
}
