package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
	"github.com/diillson/supply-kpi-dashboard-go/pkg/console"
)

func TestLoadEmptyDataset(t *testing.T) {
	uc := NewDashboardUseCase(&fakeSource{texts: map[string]string{"e.csv": "CLIENTE;ENTREGADOS AT\n"}}, &fakeExport{}, &fakeConsole{}, nil)

	_, err := uc.Load(context.Background(), dataset("cumplimiento"), []string{"e.csv"})
	assert.ErrorIs(t, err, types.ErrEmptyDataset)
}

func TestLoadMissingRequiredColumns(t *testing.T) {
	uc := NewDashboardUseCase(&fakeSource{texts: map[string]string{"m.csv": "ALMACEN;MATERIAL\nA;M1\n"}}, &fakeExport{}, &fakeConsole{}, nil)

	_, err := uc.Load(context.Background(), dataset("mm"), []string{"m.csv"})
	require.ErrorIs(t, err, types.ErrMissingColumn)
	assert.Contains(t, err.Error(), "m.csv")
	assert.Contains(t, err.Error(), "FREE_QTY")
}

func TestLoadFallsBackToConfiguredSources(t *testing.T) {
	src := &fakeSource{texts: map[string]string{"CUMPLIMIENTO.csv": complianceCSV}}
	uc := NewDashboardUseCase(src, &fakeExport{}, &fakeConsole{}, nil)

	sess, err := uc.Load(context.Background(), dataset("cumplimiento"), nil)
	require.NoError(t, err)
	assert.Equal(t, "CUMPLIMIENTO.csv", sess.Source())
	assert.Equal(t, []string{"CUMPLIMIENTO_2025.csv", "CUMPLIMIENTO.csv"}, src.tried)

	got, err := uc.Session("cumplimiento")
	require.NoError(t, err)
	assert.Equal(t, sess.ID(), got.ID())
}

func TestFailedReloadMarksPreviousSessionStale(t *testing.T) {
	src := &fakeSource{texts: map[string]string{"data.csv": complianceCSV}}
	uc := NewDashboardUseCase(src, &fakeExport{}, &fakeConsole{}, nil)

	first, err := uc.Load(context.Background(), dataset("cumplimiento"), []string{"data.csv"})
	require.NoError(t, err)
	assert.False(t, first.Stale())

	_, err = uc.Load(context.Background(), dataset("cumplimiento"), []string{"gone.csv"})
	require.ErrorIs(t, err, types.ErrRetrieval)

	current, err := uc.Session("cumplimiento")
	require.NoError(t, err)
	assert.Equal(t, first.ID(), current.ID())
	assert.True(t, current.Stale())
	assert.True(t, current.Dashboard().Stale)
}

func TestSessionBeforeLoad(t *testing.T) {
	uc := NewDashboardUseCase(&fakeSource{}, &fakeExport{}, &fakeConsole{}, nil)
	_, err := uc.Session("cumplimiento")
	assert.ErrorIs(t, err, types.ErrNoSession)
}

func TestConcurrentLoadsSucceed(t *testing.T) {
	src := &fakeSource{texts: map[string]string{"data.csv": complianceCSV}}
	uc := NewDashboardUseCase(src, &fakeExport{}, &fakeConsole{}, nil)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Load(context.Background(), dataset("cumplimiento"), []string{"data.csv"})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, int(src.calls.Load()), 5)
	_, err := uc.Session("cumplimiento")
	assert.NoError(t, err)
}

func TestLoadReportsCoercionWarnings(t *testing.T) {
	text := "CLIENTE;FECHA ENTREGA;ENTREGADOS AT;ENTREGADOS FT;NO ENTREGADOS\n" +
		"A;15/01/2025;abc;0;0\n"
	con := &fakeConsole{}
	uc := NewDashboardUseCase(&fakeSource{texts: map[string]string{"w.csv": text}}, &fakeExport{}, con, nil)

	sess, err := uc.Load(context.Background(), dataset("cumplimiento"), []string{"w.csv"})
	require.NoError(t, err)
	require.Len(t, sess.Warnings(), 1)
	assert.Equal(t, "ENTREGADOS AT", sess.Warnings()[0].Column)
	require.Len(t, con.warnings, 1)
	assert.Contains(t, con.warnings[0], "abc")
}

func TestRunDashboardRendersAndExports(t *testing.T) {
	src := &fakeSource{texts: map[string]string{"data.csv": complianceCSV}}
	exp := &fakeExport{}
	con := &fakeConsole{}
	uc := NewDashboardUseCase(src, exp, con, nil)

	args := &types.CLIArgs{
		Dataset:    "cumplimiento",
		Sources:    []string{"data.csv"},
		Filters:    []types.FilterArg{{Dimension: "client", Values: []string{"A"}}},
		ReportType: []string{"csv", "json", "pdf"},
		Dir:        "out",
		Trend:      true,
		Options:    true,
	}
	require.NoError(t, uc.RunDashboard(context.Background(), types.DefaultConfig(), args))

	out := con.out.String()
	assert.Contains(t, out, "Cumplimiento de entregas")
	assert.Contains(t, out, "Entregados AT")
	assert.Contains(t, out, "2025-02")

	require.Len(t, exp.blobs, 1)
	assert.Equal(t, "NO_ENTREGADOS_A_Todos_2025-02.csv", exp.blobs[0].Filename)
	require.Len(t, exp.dashs, 2)
	assert.Equal(t, 1, exp.dashs[0].Filtered)
	assert.Len(t, con.success, 3)
	assert.Len(t, con.trends, 3)
}

func TestRunDashboardUnknownDataset(t *testing.T) {
	uc := NewDashboardUseCase(&fakeSource{}, &fakeExport{}, &fakeConsole{}, nil)
	err := uc.RunDashboard(context.Background(), types.DefaultConfig(), &types.CLIArgs{Dataset: "nope"})
	assert.ErrorIs(t, err, types.ErrUnknownDataset)
}

func TestRunDashboardMonthWithoutTimeDimension(t *testing.T) {
	uc := NewDashboardUseCase(&fakeSource{texts: map[string]string{"data.csv": inventoryCSV}}, &fakeExport{}, &fakeConsole{}, nil)
	err := uc.RunDashboard(context.Background(), types.DefaultConfig(), &types.CLIArgs{
		Dataset: "mm",
		Sources: []string{"data.csv"},
		Month:   "2025-01",
	})
	assert.ErrorIs(t, err, types.ErrUnknownDimension)
}

func TestTrendSeriesUsesPolarity(t *testing.T) {
	sess := loadSession(t, "cumplimiento", complianceCSV)
	titles, charts := trendSeries(sess.Dataset(), sess.Dashboard())

	require.Equal(t, []string{"Entregados AT", "Entregados FT", "No entregados"}, titles)
	require.Len(t, charts[0], 2)
	assert.True(t, charts[0][0].Share)
	assert.Equal(t, entity.Direction(""), charts[0][0].Direction)
	// 2025-01 -> 2025-02: AT 80 -> 80, FT 20 -> 15, NE 0 -> 5
	assert.Equal(t, entity.DirectionImproved, charts[0][1].Direction)
	assert.Equal(t, entity.DirectionImproved, charts[1][1].Direction)
	assert.Equal(t, entity.DirectionWorsened, charts[2][1].Direction)
	assert.True(t, charts[2][1].Defined)
}

func TestTrendSeriesWithoutRuleStaysUnclassified(t *testing.T) {
	sess := loadSession(t, "evolucion", evolutionCSV)
	_, charts := trendSeries(sess.Dataset(), sess.Dashboard())

	require.NotEmpty(t, charts)
	for _, points := range charts {
		for _, p := range points {
			assert.Equal(t, entity.Direction(""), p.Direction)
		}
	}
}

func TestRenderUsesPalette(t *testing.T) {
	con := &fakeConsole{}
	uc := NewDashboardUseCase(&fakeSource{texts: map[string]string{"data.csv": delaysCSV}}, &fakeExport{}, con, nil)
	sess, err := uc.Load(context.Background(), dataset("demoras"), []string{"data.csv"})
	require.NoError(t, err)

	uc.renderDashboard(sess.Dataset(), sess.Dashboard())

	out := con.out.String()
	assert.Contains(t, out, console.BoldRed("3"))
	assert.Contains(t, out, console.BrightYellow("Compras"))
}
