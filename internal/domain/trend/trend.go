// Package trend classifies period-over-period changes of measure shares.
package trend

import (
	"fmt"
	"math"
	"sort"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
)

// Epsilon is the smallest difference, in percentage points, that counts as a change.
const Epsilon = 1e-6

// Compare classifies current against previous for one measure.
// An undefined operand yields DirectionNoPreviousPeriod; otherwise the sign of
// the difference picks Up, Down or Flat from the polarity.
func Compare(measure entity.LogicalColumn, current, previous entity.Percent, p entity.Polarity) entity.DeltaResult {
	res := entity.DeltaResult{Measure: measure, Current: current, Previous: previous}
	if current.IsUndefined() || previous.IsUndefined() {
		res.Diff = entity.Undefined()
		res.Direction = entity.DirectionNoPreviousPeriod
		return res
	}

	diff := float64(current) - float64(previous)
	res.Diff = entity.Percent(diff)
	switch {
	case math.Abs(diff) < Epsilon:
		res.Direction = p.Flat
	case diff > 0:
		res.Direction = p.Up
	default:
		res.Direction = p.Down
	}
	return res
}

// PreviousKey returns the key of the latest bucket before current.
func PreviousKey(buckets []entity.TimeBucket, current string) (string, bool) {
	keys := make([]string, 0, len(buckets))
	for _, b := range buckets {
		keys = append(keys, b.Key)
	}
	sort.Strings(keys)
	prev := ""
	for _, k := range keys {
		if k >= current {
			break
		}
		prev = k
	}
	return prev, prev != ""
}

// CompareBuckets compares the percentage share of every measure in the bucket
// keyed currentKey with the bucket chronologically before it. Every measure must
// have a polarity in table; it is never inferred. The returned key is empty
// unless both buckets exist.
func CompareBuckets(buckets []entity.TimeBucket, currentKey string, measures []entity.LogicalColumn, table entity.PolarityTable) (string, []entity.DeltaResult, error) {
	for _, m := range measures {
		if _, ok := table[m]; !ok {
			return "", nil, fmt.Errorf("no polarity rule for measure %s", m)
		}
	}

	var cur, prev entity.TimeBucket
	curFound, prevFound := false, false
	prevKey, ok := PreviousKey(buckets, currentKey)
	for _, b := range buckets {
		switch {
		case b.Key == currentKey:
			cur, curFound = b, true
		case ok && b.Key == prevKey:
			prev, prevFound = b, true
		}
	}

	out := make([]entity.DeltaResult, len(measures))
	for i, m := range measures {
		c, p := entity.Undefined(), entity.Undefined()
		if curFound {
			c = share(cur, m)
		}
		if prevFound {
			p = share(prev, m)
		}
		out[i] = Compare(m, c, p, table[m])
	}
	if !curFound || !prevFound {
		prevKey = ""
	}
	return prevKey, out, nil
}

func share(b entity.TimeBucket, m entity.LogicalColumn) entity.Percent {
	p, ok := b.Percentages[m]
	if !ok {
		return entity.Undefined()
	}
	return p
}
