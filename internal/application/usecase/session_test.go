package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

func loadSession(t *testing.T, name, text string) *Session {
	t.Helper()
	uc := NewDashboardUseCase(&fakeSource{texts: map[string]string{"data.csv": text}}, &fakeExport{}, &fakeConsole{}, nil)
	sess, err := uc.Load(context.Background(), dataset(name), []string{"data.csv"})
	require.NoError(t, err)
	return sess
}

func share(t *testing.T, ms []entity.MeasureShare, col entity.LogicalColumn) entity.MeasureShare {
	t.Helper()
	for _, m := range ms {
		if m.Measure == col {
			return m
		}
	}
	t.Fatalf("measure %s not found", col)
	return entity.MeasureShare{}
}

func TestComplianceDefaultsToLatestMonth(t *testing.T) {
	dash := loadSession(t, "cumplimiento", complianceCSV).Dashboard()

	assert.Equal(t, 3, dash.RowCount)
	assert.Equal(t, 2, dash.Filtered)

	k := dash.KPIs
	assert.Equal(t, 30.0, k.GeneralTotal)
	assert.InDelta(t, 80, float64(share(t, k.General, entity.ColOnTime).Share), 1e-9)

	assert.Equal(t, "2025-02", k.CurrentPeriod)
	assert.Equal(t, "2025-01", k.PreviousPeriod)
	assert.Equal(t, 20.0, k.CurrentTotal)
	assert.InDelta(t, 80, float64(share(t, k.Current, entity.ColOnTime).Share), 1e-9)
	assert.InDelta(t, 15, float64(share(t, k.Current, entity.ColLate).Share), 1e-9)
	assert.InDelta(t, 5, float64(share(t, k.Current, entity.ColNotDelivered).Share), 1e-9)

	require.Len(t, k.Deltas, 3)
	directions := map[entity.LogicalColumn]entity.Direction{}
	for _, d := range k.Deltas {
		directions[d.Measure] = d.Direction
	}
	assert.Equal(t, entity.DirectionImproved, directions[entity.ColOnTime])
	assert.Equal(t, entity.DirectionImproved, directions[entity.ColLate])
	assert.Equal(t, entity.DirectionWorsened, directions[entity.ColNotDelivered])

	require.Len(t, dash.Series, 2)
	assert.Equal(t, "2025-01", dash.Series[0].Key)

	assert.Equal(t, []string{"A", "B"}, dash.Options["client"])
	assert.Equal(t, []string{"2025-01", "2025-02"}, dash.Options["month"])
	_, hasGCOC := dash.Options["gcoc"]
	assert.False(t, hasGCOC, "dimension without a resolved column is dropped")
}

func TestComplianceSelectionRecomputes(t *testing.T) {
	sess := loadSession(t, "cumplimiento", complianceCSV)

	dash, err := sess.SetSelection("client", []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Filtered)
	assert.Equal(t, []string{"X"}, dash.Options["classification"])
	assert.InDelta(t, 60, float64(share(t, dash.KPIs.Current, entity.ColOnTime).Share), 1e-9)
	for _, d := range dash.KPIs.Deltas {
		if d.Measure == entity.ColOnTime {
			assert.Equal(t, entity.DirectionWorsened, d.Direction)
			assert.InDelta(t, -20, float64(d.Diff), 1e-9)
		}
	}

	dash, err = sess.SetSelection("month", []string{"2025-01"})
	require.NoError(t, err)
	assert.Equal(t, "2025-01", dash.KPIs.CurrentPeriod)
	assert.Equal(t, "", dash.KPIs.PreviousPeriod)
	for _, d := range dash.KPIs.Deltas {
		assert.Equal(t, entity.DirectionNoPreviousPeriod, d.Direction)
	}

	dash = sess.Reset()
	assert.Equal(t, 2, dash.Filtered)
}

func TestApplyFiltersUsesCascadeOrder(t *testing.T) {
	sess := loadSession(t, "cumplimiento", complianceCSV)

	// classification is given first but must not be reset by the client filter.
	dash, err := sess.ApplyFilters([]types.FilterArg{
		{Dimension: "classification", Values: []string{"X"}},
		{Dimension: "client", Values: []string{"A"}},
	}, "2025-01")
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Filtered)
	assert.Equal(t, []string{"X"}, dash.Selections[1].Values)
	assert.Equal(t, []string{"2025-01"}, dash.Selections[2].Values)
	assert.False(t, dash.Selections[2].Defaulted)

	_, err = sess.ApplyFilters([]types.FilterArg{{Dimension: "nope"}}, "")
	assert.ErrorIs(t, err, types.ErrUnknownDimension)
}

func TestComplianceExportKeepsNotDeliveredRows(t *testing.T) {
	sess := loadSession(t, "cumplimiento", complianceCSV)

	blob, err := sess.Export()
	require.NoError(t, err)
	assert.Equal(t, "NO_ENTREGADOS_Todos_Todos_2025-02.csv", blob.Filename)
	assert.Equal(t, 1, blob.Rows)
	assert.Equal(t, []string{"CLIENTE", "FECHA ENTREGA", "ENTREGADOS AT", "ENTREGADOS FT", "NO ENTREGADOS"}, blob.Header)
	assert.Equal(t, []string{"A", "10/02/2025", "6", "3", "1"}, blob.Records[0])

	_, err = sess.SetSelection("client", []string{"B"})
	require.NoError(t, err)
	_, err = sess.Export()
	assert.ErrorIs(t, err, types.ErrNothingToExport)
}

func TestInventoryScenario(t *testing.T) {
	dash := loadSession(t, "mm", inventoryCSV).Dashboard()

	assert.Equal(t, 2, dash.KPIs.DistinctTotal)
	assert.Equal(t, 1, dash.KPIs.DistinctAvailable)
	assert.InDelta(t, 50, float64(dash.KPIs.AvailableShare), 1e-9)
	assert.Equal(t, []entity.CategoryBucket{
		{Label: "LOW", Count: 1, Percentage: 50},
		{Label: "OK", Count: 1, Percentage: 50},
	}, dash.Categories)
}

func TestDelaysView(t *testing.T) {
	dash := loadSession(t, "demoras", delaysCSV).Dashboard()

	k := dash.KPIs
	assert.Equal(t, "2025-02", k.CurrentPeriod)
	assert.Equal(t, 3, k.PeriodCount)
	assert.Equal(t, "Compras", k.TopFlag)
	assert.Equal(t, 2, k.TopFlagCount)
	assert.InDelta(t, 50, float64(k.TopFlagShare), 1e-9)

	require.Len(t, dash.Counts, 2)
	assert.Equal(t, 1, dash.Counts[0].Count)
	assert.Equal(t, 3, dash.Counts[1].Count)

	require.Len(t, dash.Motives, 2)
	assert.Equal(t, 0, dash.Motives[0].Count)
	assert.Equal(t, 2, dash.Motives[1].Count)
	assert.InDelta(t, 100, float64(dash.Motives[1].Percentage), 1e-9)
}

func TestDelaysWithoutMonthColumnFails(t *testing.T) {
	uc := NewDashboardUseCase(&fakeSource{texts: map[string]string{"d.csv": "CLIENTE;COMPRAS\nA;1\n"}}, &fakeExport{}, &fakeConsole{}, nil)

	_, err := uc.Load(context.Background(), dataset("demoras"), []string{"d.csv"})
	assert.ErrorIs(t, err, types.ErrMissingColumn)
}

func TestEvolutionAverages(t *testing.T) {
	dash := loadSession(t, "evolucion", evolutionCSV).Dashboard()

	require.Len(t, dash.Averages, 2)
	jan := dash.Averages[0]
	assert.Equal(t, "2025-01", jan.Key)
	assert.InDelta(t, 90, jan.Averages[entity.ColAvailability], 1e-9)
	assert.InDelta(t, 5, jan.Averages["STOCK_NULL"], 1e-9)

	feb := dash.Averages[1]
	assert.InDelta(t, 95, feb.Averages[entity.ColAvailability], 1e-9)
}
