package entity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Percent is a percentage in the 0..100 range. NaN means "undefined"
// (division by a zero total) and is rendered as JSON null.
type Percent float64

// Undefined returns the undefined percentage sentinel.
func Undefined() Percent {
	return Percent(math.NaN())
}

// IsUndefined reports whether p is the undefined sentinel.
func (p Percent) IsUndefined() bool {
	return math.IsNaN(float64(p)) || math.IsInf(float64(p), 0)
}

// String renders p with one decimal and a decimal comma ("70,5%"), or "-" when undefined.
func (p Percent) String() string {
	if p.IsUndefined() {
		return "-"
	}
	return strings.Replace(strconv.FormatFloat(float64(p), 'f', 1, 64), ".", ",", 1) + "%"
}

// MarshalJSON encodes undefined percentages as null.
func (p Percent) MarshalJSON() ([]byte, error) {
	if p.IsUndefined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON decodes null as the undefined sentinel.
func (p *Percent) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Undefined()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Percent(f)
	return nil
}

// CategoryBucket is one row of a distinct-entity category aggregation.
type CategoryBucket struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage Percent `json:"percentage"`
}

// TimeBucket holds measure sums for one month key.
type TimeBucket struct {
	Key         string                    `json:"key"`
	Sums        map[LogicalColumn]float64 `json:"sums"`
	Percentages map[LogicalColumn]Percent `json:"percentages"`
	Total       float64                   `json:"total"`
	Rows        int                       `json:"rows"`
}

// CountBucket holds the row count and per-flag counts for one month key.
type CountBucket struct {
	Key   string                `json:"key"`
	Count int                   `json:"count"`
	Flags map[LogicalColumn]int `json:"flags"`
}

// FlagCount is the number of rows whose flag column is set.
type FlagCount struct {
	Column     LogicalColumn `json:"column"`
	Label      string        `json:"label"`
	Count      int           `json:"count"`
	Percentage Percent       `json:"percentage"`
}

// AverageBucket holds per-measure means for one month key.
type AverageBucket struct {
	Key      string                    `json:"key"`
	Averages map[LogicalColumn]float64 `json:"averages"`
	Rows     int                       `json:"rows"`
}
