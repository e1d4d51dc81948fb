package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/rows"
)

func inventoryRows() []entity.Row {
	mk := func(client, material, status, free string) entity.Row {
		return entity.Row{
			entity.ColWarehouse: client,
			entity.ColMaterial:  material,
			entity.ColStatus:    status,
			entity.ColFreeQty:   free,
		}
	}
	return []entity.Row{
		mk("A", "M1", "LOW", "0"),
		mk("A", "M1", "LOW", "0"),
		mk("A", "M2", "OK", "5"),
	}
}

func TestInventoryScenario(t *testing.T) {
	rs := inventoryRows()

	assert.Equal(t, 2, DistinctCount(rs, entity.ColMaterial, nil))
	available := DistinctCount(rs, entity.ColMaterial, func(r entity.Row) bool {
		return rows.Number(r, entity.ColFreeQty) > 0
	})
	assert.Equal(t, 1, available)

	cats := DistinctByCategory(rs, entity.ColStatus, entity.ColMaterial, EmptyLabel)
	require.Len(t, cats, 2)
	assert.Equal(t, "LOW", cats[0].Label)
	assert.Equal(t, 1, cats[0].Count)
	assert.InDelta(t, 50.0, float64(cats[0].Percentage), 1e-9)
	assert.Equal(t, "OK", cats[1].Label)
	assert.InDelta(t, 50.0, float64(cats[1].Percentage), 1e-9)
}

func TestDistinctByCategorySortAndEmptyLabel(t *testing.T) {
	rs := []entity.Row{
		{entity.ColStatus: "Obsoleto", entity.ColMaterial: "M1"},
		{entity.ColStatus: "activo", entity.ColMaterial: "M2"},
		{entity.ColStatus: "Bloqueado", entity.ColMaterial: "M3"},
		{entity.ColStatus: "Bloqueado", entity.ColMaterial: "M4"},
		{entity.ColStatus: "", entity.ColMaterial: "M5"},
		{entity.ColStatus: "Obsoleto", entity.ColMaterial: ""},
	}
	cats := DistinctByCategory(rs, entity.ColStatus, entity.ColMaterial, EmptyLabel)
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{"Bloqueado", "(Vacío)", "activo", "Obsoleto"}, labels)
}

func TestCategoryPercentagesSumTo100(t *testing.T) {
	var rs []entity.Row
	statuses := []string{"A", "B", "C"}
	for i := 0; i < 7; i++ {
		rs = append(rs, entity.Row{
			entity.ColStatus:   statuses[i%3],
			entity.ColMaterial: string(rune('a' + i)),
		})
	}
	cats := DistinctByCategory(rs, entity.ColStatus, entity.ColMaterial, EmptyLabel)
	sum := 0.0
	for _, c := range cats {
		sum += float64(c.Percentage)
	}
	assert.InDelta(t, 100.0, sum, 0.01)
}

func TestDistinctVsSumConsistency(t *testing.T) {
	rs := []entity.Row{
		{entity.ColStatus: "X", entity.ColMaterial: "M1"},
		{entity.ColStatus: "X", entity.ColMaterial: "M1"},
		{entity.ColStatus: "Y", entity.ColMaterial: "M2"},
		{entity.ColStatus: "Z", entity.ColMaterial: "M3"},
		{entity.ColStatus: "Z", entity.ColMaterial: "M4"},
	}
	total := 0
	for _, c := range DistinctByCategory(rs, entity.ColStatus, entity.ColMaterial, EmptyLabel) {
		total += c.Count
	}
	assert.Equal(t, DistinctCount(rs, entity.ColMaterial, nil), total)
}

func TestEmptyAggregationIsUndefined(t *testing.T) {
	assert.Empty(t, DistinctByCategory(nil, entity.ColStatus, entity.ColMaterial, EmptyLabel))

	tot := Totals([]entity.Row{{entity.ColOnTime: "0"}}, []entity.LogicalColumn{entity.ColOnTime})
	assert.True(t, tot.Percentages[entity.ColOnTime].IsUndefined())
}

var deliveries = []entity.LogicalColumn{entity.ColOnTime, entity.ColLate, entity.ColNotDelivered}

func delivery(date, at, ft, no string) entity.Row {
	return entity.Row{
		entity.ColExpectedDate: date,
		entity.ColOnTime:       at,
		entity.ColLate:         ft,
		entity.ColNotDelivered: no,
	}
}

func TestSumByBucket(t *testing.T) {
	rs := []entity.Row{
		delivery("10/02/2025", "7", "2", "1"),
		delivery("02/01/2025", "1,5", "0,5", "0"),
		delivery("2025-01-20", "0,5", "", "2"),
		delivery("sin fecha", "100", "100", "100"),
	}
	buckets := SumByBucket(rs, rows.MonthBucketer(entity.ColExpectedDate), deliveries)
	require.Len(t, buckets, 2)

	jan := buckets[0]
	assert.Equal(t, "2025-01", jan.Key)
	assert.Equal(t, 2, jan.Rows)
	assert.InDelta(t, 2.0, jan.Sums[entity.ColOnTime], 1e-9)
	assert.InDelta(t, 4.5, jan.Total, 1e-9)
	assert.InDelta(t, 2.0/4.5*100, float64(jan.Percentages[entity.ColOnTime]), 1e-9)

	feb := buckets[1]
	assert.Equal(t, "2025-02", feb.Key)
	assert.InDelta(t, 70.0, float64(feb.Percentages[entity.ColOnTime]), 1e-9)
	assert.InDelta(t, 20.0, float64(feb.Percentages[entity.ColLate]), 1e-9)

	sum := 0.0
	for _, m := range deliveries {
		sum += float64(feb.Percentages[m])
	}
	assert.InDelta(t, 100.0, sum, 0.01)

	b, ok := FindBucket(buckets, "2025-02")
	assert.True(t, ok)
	assert.Equal(t, feb, b)
	_, ok = FindBucket(buckets, "2025-03")
	assert.False(t, ok)
}

func TestTotalsIncludesUndatedRows(t *testing.T) {
	rs := []entity.Row{
		delivery("10/02/2025", "7", "2", "1"),
		delivery("", "3", "0", "0"),
	}
	tot := Totals(rs, deliveries)
	assert.Equal(t, "", tot.Key)
	assert.InDelta(t, 13.0, tot.Total, 1e-9)
	assert.InDelta(t, 10.0, tot.Sums[entity.ColOnTime], 1e-9)
}

func TestCountByBucketAndFlags(t *testing.T) {
	const area1, area2 entity.LogicalColumn = "AREA_1", "AREA_2"
	flags := []entity.LogicalColumn{area1, area2}
	rs := []entity.Row{
		{entity.ColMonthLabel: "2025-03", area1: "1", area2: "0"},
		{entity.ColMonthLabel: "2025-03", area1: "X", area2: "1"},
		{entity.ColMonthLabel: "2025-01", area1: "", area2: "true"},
		{entity.ColMonthLabel: "marzo", area1: "1"},
	}
	bucket := rows.MonthLabelBucketer(entity.ColMonthLabel, entity.ColDate)

	counts := CountByBucket(rs, bucket, flags)
	require.Len(t, counts, 2)
	assert.Equal(t, "2025-01", counts[0].Key)
	assert.Equal(t, 1, counts[0].Count)
	assert.Equal(t, 0, counts[0].Flags[area1])
	assert.Equal(t, 2, counts[1].Count)
	assert.Equal(t, 2, counts[1].Flags[area1])

	totals := FlagTotals(rs, flags, map[entity.LogicalColumn]string{area1: "Almacén"})
	require.Len(t, totals, 2)
	assert.Equal(t, "Almacén", totals[0].Label)
	assert.Equal(t, 3, totals[0].Count)
	assert.Equal(t, "AREA_2", totals[1].Label)
	assert.Equal(t, 2, totals[1].Count)
	assert.InDelta(t, 60.0, float64(totals[0].Percentage), 1e-9)

	top, ok := TopFlag(totals)
	assert.True(t, ok)
	assert.Equal(t, area1, top.Column)
}

func TestTopFlagTiesAndEmpty(t *testing.T) {
	_, ok := TopFlag([]entity.FlagCount{{Column: "A"}, {Column: "B"}})
	assert.False(t, ok)

	top, ok := TopFlag([]entity.FlagCount{{Column: "A", Count: 2}, {Column: "B", Count: 2}})
	assert.True(t, ok)
	assert.Equal(t, entity.LogicalColumn("A"), top.Column)
}

func TestAverageByBucket(t *testing.T) {
	rs := []entity.Row{
		{entity.ColDate: "01/03/2025", entity.ColAvailability: "80%", "STOCK_NULL": "4"},
		{entity.ColDate: "15/03/2025", entity.ColAvailability: "90 %", "STOCK_NULL": ""},
		{entity.ColDate: "01/04/2025", entity.ColAvailability: "", "STOCK_NULL": "2"},
	}
	measures := []entity.LogicalColumn{entity.ColAvailability, "STOCK_NULL"}
	avgs := AverageByBucket(rs, rows.MonthBucketer(entity.ColDate), measures)
	require.Len(t, avgs, 2)
	assert.Equal(t, "2025-03", avgs[0].Key)
	assert.InDelta(t, 85.0, avgs[0].Averages[entity.ColAvailability], 1e-9)
	assert.InDelta(t, 4.0, avgs[0].Averages["STOCK_NULL"], 1e-9)
	assert.Equal(t, 0.0, avgs[1].Averages[entity.ColAvailability])
}
