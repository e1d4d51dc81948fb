package aggregate

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/rows"
)

type sumAcc struct {
	sums map[entity.LogicalColumn]decimal.Decimal
	rows int
}

func newSumAcc() *sumAcc {
	return &sumAcc{sums: make(map[entity.LogicalColumn]decimal.Decimal)}
}

func (a *sumAcc) add(r entity.Row, measures []entity.LogicalColumn) {
	a.rows++
	for _, m := range measures {
		a.sums[m] = a.sums[m].Add(decimal.NewFromFloat(rows.Number(r, m)))
	}
}

func (a *sumAcc) bucket(key string, measures []entity.LogicalColumn) entity.TimeBucket {
	b := entity.TimeBucket{
		Key:         key,
		Sums:        make(map[entity.LogicalColumn]float64, len(measures)),
		Percentages: make(map[entity.LogicalColumn]entity.Percent, len(measures)),
		Rows:        a.rows,
	}
	total := decimal.Zero
	for _, m := range measures {
		total = total.Add(a.sums[m])
	}
	b.Total = total.InexactFloat64()
	for _, m := range measures {
		sum := a.sums[m]
		b.Sums[m] = sum.InexactFloat64()
		if total.IsZero() {
			b.Percentages[m] = entity.Undefined()
			continue
		}
		b.Percentages[m] = entity.Percent(sum.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64())
	}
	return b
}

// SumByBucket sums measures per month key. Rows the bucketer rejects are left out.
// Each measure's percentage is its share of the bucket total across measures.
// Buckets come back in chronological order.
func SumByBucket(rs []entity.Row, bucket rows.Bucketer, measures []entity.LogicalColumn) []entity.TimeBucket {
	accs := make(map[string]*sumAcc)
	for _, r := range rs {
		key, ok := bucket(r)
		if !ok {
			continue
		}
		acc, found := accs[key]
		if !found {
			acc = newSumAcc()
			accs[key] = acc
		}
		acc.add(r, measures)
	}

	keys := sortedKeys(accs)
	out := make([]entity.TimeBucket, len(keys))
	for i, k := range keys {
		out[i] = accs[k].bucket(k, measures)
	}
	return out
}

// Totals is SumByBucket over every row as a single bucket with an empty key.
// Rows without a valid date are included.
func Totals(rs []entity.Row, measures []entity.LogicalColumn) entity.TimeBucket {
	acc := newSumAcc()
	for _, r := range rs {
		acc.add(r, measures)
	}
	return acc.bucket("", measures)
}

// FindBucket returns the bucket with the given key.
func FindBucket(buckets []entity.TimeBucket, key string) (entity.TimeBucket, bool) {
	for _, b := range buckets {
		if b.Key == key {
			return b, true
		}
	}
	return entity.TimeBucket{}, false
}

// AverageByBucket averages each measure per month key. Blank cells are not
// counted as zero; a measure with no values in a bucket averages to 0.
func AverageByBucket(rs []entity.Row, bucket rows.Bucketer, measures []entity.LogicalColumn) []entity.AverageBucket {
	type acc struct {
		values map[entity.LogicalColumn]stats.Float64Data
		rows   int
	}
	accs := make(map[string]*acc)
	for _, r := range rs {
		key, ok := bucket(r)
		if !ok {
			continue
		}
		a, found := accs[key]
		if !found {
			a = &acc{values: make(map[entity.LogicalColumn]stats.Float64Data)}
			accs[key] = a
		}
		a.rows++
		for _, m := range measures {
			if r.Text(m) == "" {
				continue
			}
			a.values[m] = append(a.values[m], rows.Number(r, m))
		}
	}

	keys := sortedKeys(accs)
	out := make([]entity.AverageBucket, len(keys))
	for i, k := range keys {
		a := accs[k]
		b := entity.AverageBucket{Key: k, Rows: a.rows, Averages: make(map[entity.LogicalColumn]float64, len(measures))}
		for _, m := range measures {
			mean, err := stats.Mean(a.values[m])
			if err != nil {
				mean = 0
			}
			b.Averages[m] = mean
		}
		out[i] = b
	}
	return out
}

// month keys are yyyy-mm, so lexical order is chronological
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
