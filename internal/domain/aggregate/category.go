// Package aggregate builds the category and per-month views of a filtered row set.
// Every function recomputes from scratch and never mutates its input.
package aggregate

import (
	"sort"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/locale"
)

// EmptyLabel names the category of rows whose category cell is blank.
const EmptyLabel = "(Vacío)"

// percentOf returns part/total*100, or the undefined sentinel when total is zero.
func percentOf(part, total float64) entity.Percent {
	if total == 0 {
		return entity.Undefined()
	}
	return entity.Percent(part / total * 100)
}

// DistinctByCategory counts the distinct values of keyCol within each value of
// categoryCol. Rows with a blank key are skipped; a blank category is reported
// as emptyLabel. Percentages are taken over the sum of all group counts.
// Buckets are sorted by count descending, then label with locale collation.
func DistinctByCategory(rs []entity.Row, categoryCol, keyCol entity.LogicalColumn, emptyLabel string) []entity.CategoryBucket {
	groups := make(map[string]map[string]struct{})
	for _, r := range rs {
		key := r.Text(keyCol)
		if key == "" {
			continue
		}
		label := r.Text(categoryCol)
		if label == "" {
			label = emptyLabel
		}
		set, ok := groups[label]
		if !ok {
			set = make(map[string]struct{})
			groups[label] = set
		}
		set[key] = struct{}{}
	}

	total := 0
	out := make([]entity.CategoryBucket, 0, len(groups))
	for label, set := range groups {
		out = append(out, entity.CategoryBucket{Label: label, Count: len(set)})
		total += len(set)
	}
	for i := range out {
		out[i].Percentage = percentOf(float64(out[i].Count), float64(total))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return locale.Less(out[i].Label, out[j].Label)
	})
	return out
}

// DistinctCount counts the distinct non-blank values of keyCol over the rows
// accepted by pred. A nil pred accepts every row.
func DistinctCount(rs []entity.Row, keyCol entity.LogicalColumn, pred func(entity.Row) bool) int {
	seen := make(map[string]struct{})
	for _, r := range rs {
		if pred != nil && !pred(r) {
			continue
		}
		if key := r.Text(keyCol); key != "" {
			seen[key] = struct{}{}
		}
	}
	return len(seen)
}
