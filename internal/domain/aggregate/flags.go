package aggregate

import (
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/rows"
)

// CountByBucket counts rows per month key and, within each month, the rows
// whose flag columns are set.
func CountByBucket(rs []entity.Row, bucket rows.Bucketer, flags []entity.LogicalColumn) []entity.CountBucket {
	accs := make(map[string]*entity.CountBucket)
	for _, r := range rs {
		key, ok := bucket(r)
		if !ok {
			continue
		}
		b, found := accs[key]
		if !found {
			b = &entity.CountBucket{Key: key, Flags: make(map[entity.LogicalColumn]int, len(flags))}
			for _, f := range flags {
				b.Flags[f] = 0
			}
			accs[key] = b
		}
		b.Count++
		for _, f := range flags {
			if rows.Flag(r, f) {
				b.Flags[f]++
			}
		}
	}

	keys := sortedKeys(accs)
	out := make([]entity.CountBucket, len(keys))
	for i, k := range keys {
		out[i] = *accs[k]
	}
	return out
}

// FlagTotals counts the rows with each flag set, in flag order. The percentage
// is the share of the flag among all flag hits.
func FlagTotals(rs []entity.Row, flags []entity.LogicalColumn, labels map[entity.LogicalColumn]string) []entity.FlagCount {
	out := make([]entity.FlagCount, len(flags))
	total := 0
	for i, f := range flags {
		out[i] = entity.FlagCount{Column: f, Label: labelOf(labels, f)}
		for _, r := range rs {
			if rows.Flag(r, f) {
				out[i].Count++
			}
		}
		total += out[i].Count
	}
	for i := range out {
		out[i].Percentage = percentOf(float64(out[i].Count), float64(total))
	}
	return out
}

// TopFlag returns the flag with the most hits. Ties go to the earlier flag and
// ok is false when no flag has any hit.
func TopFlag(counts []entity.FlagCount) (top entity.FlagCount, ok bool) {
	for _, c := range counts {
		if c.Count > top.Count {
			top = c
			ok = true
		}
	}
	return top, ok
}

func labelOf(labels map[entity.LogicalColumn]string, col entity.LogicalColumn) string {
	if l, ok := labels[col]; ok && l != "" {
		return l
	}
	return string(col)
}
