package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/trend"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/locale"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
	"github.com/diillson/supply-kpi-dashboard-go/pkg/console"
)

func (uc *DashboardUseCase) renderDashboard(ds types.DatasetConfig, dash entity.Dashboard) {
	title := ds.Title
	if title == "" {
		title = ds.Name
	}
	uc.console.Println()
	uc.console.Println(console.BrightMagenta(fmt.Sprintf("%s (%s)", title, dash.Source)))
	if dash.Stale {
		uc.console.LogWarning("Showing data from a previous load; the last reload failed")
	}
	uc.console.Println(selectionLine(dash.Selections))
	uc.console.Printf("Filas: %s de %s\n", locale.FormatInt(dash.Filtered), locale.FormatInt(dash.RowCount))

	switch dash.Kind {
	case entity.KindCompliance:
		uc.renderCompliance(dash)
	case entity.KindInventory:
		uc.renderInventory(dash)
	case entity.KindDelays:
		uc.renderDelays(dash)
	case entity.KindEvolution:
		uc.renderEvolution(dash)
	}
}

func selectionLine(sels []entity.Selection) string {
	parts := make([]string, 0, len(sels))
	for _, s := range sels {
		value := "Todos"
		if !s.All() {
			value = strings.Join(s.Values, ", ")
		}
		if s.Defaulted {
			value += " (último)"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", s.Dimension, pterm.FgCyan.Sprint(value)))
	}
	return strings.Join(parts, " | ")
}

func labelFor(labels map[entity.LogicalColumn]string, col entity.LogicalColumn) string {
	if l := labels[col]; l != "" {
		return l
	}
	return string(col)
}

func (uc *DashboardUseCase) renderCompliance(dash entity.Dashboard) {
	k := dash.KPIs

	table := uc.console.CreateTable()
	table.AddColumn("Indicador")
	table.AddColumn(fmt.Sprintf("General\n(%s)", locale.FormatNumber(k.GeneralTotal)))
	current := k.CurrentPeriod
	if current == "" {
		current = "Actual"
	}
	table.AddColumn(fmt.Sprintf("%s\n(%s)", current, locale.FormatNumber(k.CurrentTotal)))
	previous := k.PreviousPeriod
	if previous == "" {
		previous = "sin mes anterior"
	}
	table.AddColumn(fmt.Sprintf("vs %s", previous))

	deltas := make(map[entity.LogicalColumn]entity.DeltaResult, len(k.Deltas))
	for _, d := range k.Deltas {
		deltas[d.Measure] = d
	}
	for i, g := range k.General {
		var cur entity.MeasureShare
		if i < len(k.Current) {
			cur = k.Current[i]
		}
		table.AddRow(
			pterm.FgMagenta.Sprint(g.Label),
			fmt.Sprintf("%s\n%s", locale.FormatNumber(g.Sum), g.Share),
			fmt.Sprintf("%s\n%s", locale.FormatNumber(cur.Sum), cur.Share),
			deltaText(deltas[g.Measure]),
		)
	}
	uc.console.Print(table.Render())

	if len(dash.Series) == 0 {
		return
	}
	series := uc.console.CreateTable()
	series.AddColumn("Mes")
	for _, g := range k.General {
		series.AddColumn(g.Label)
	}
	series.AddColumn("Total")
	for _, b := range dash.Series {
		cells := []interface{}{b.Key}
		for _, g := range k.General {
			cells = append(cells, b.Percentages[g.Measure].String())
		}
		cells = append(cells, locale.FormatNumber(b.Total))
		series.AddRow(cells...)
	}
	uc.console.Print(series.Render())
}

func deltaText(d entity.DeltaResult) string {
	if d.Measure == "" || d.Direction == entity.DirectionNoPreviousPeriod {
		return pterm.FgDarkGray.Sprint("N/A")
	}
	diff := strings.TrimSuffix(d.Diff.String(), "%") + " pp"
	if d.Diff > 0 {
		diff = "+" + diff
	}
	switch d.Direction {
	case entity.DirectionImproved:
		return pterm.FgGreen.Sprintf("⬆ %s", diff)
	case entity.DirectionWorsened:
		return pterm.FgRed.Sprintf("⬇ %s", diff)
	default:
		return pterm.FgYellow.Sprintf("➡ %s", diff)
	}
}

func (uc *DashboardUseCase) renderInventory(dash entity.Dashboard) {
	k := dash.KPIs
	uc.console.Printf("Materiales: %s | Con stock libre: %s (%s)\n",
		console.BrightCyan(locale.FormatInt(k.DistinctTotal)),
		console.BrightGreen(locale.FormatInt(k.DistinctAvailable)),
		k.AvailableShare)

	table := uc.console.CreateTable()
	table.AddColumn("Estado")
	table.AddColumn("Materiales")
	table.AddColumn("%")
	for _, c := range dash.Categories {
		table.AddRow(pterm.FgYellow.Sprint(c.Label), locale.FormatInt(c.Count), c.Percentage.String())
	}
	uc.console.Print(table.Render())
}

func (uc *DashboardUseCase) renderDelays(dash entity.Dashboard) {
	k := dash.KPIs
	period := k.CurrentPeriod
	if period == "" {
		period = "todos los meses"
	}
	uc.console.Printf("Demoras en %s: %s\n", period, console.BoldRed(locale.FormatInt(k.PeriodCount)))
	if k.TopFlag != "" {
		uc.console.Printf("Principal área: %s (%s, %s)\n", console.BrightYellow(k.TopFlag), locale.FormatInt(k.TopFlagCount), k.TopFlagShare)
	}

	for _, group := range []struct {
		title string
		flags []entity.FlagCount
	}{
		{"Área", dash.Flags},
		{"Motivo", dash.Motives},
	} {
		if len(group.flags) == 0 {
			continue
		}
		table := uc.console.CreateTable()
		table.AddColumn(group.title)
		table.AddColumn("Casos")
		table.AddColumn("%")
		for _, f := range group.flags {
			table.AddRow(f.Label, locale.FormatInt(f.Count), f.Percentage.String())
		}
		uc.console.Print(table.Render())
	}
}

func (uc *DashboardUseCase) renderEvolution(dash entity.Dashboard) {
	if len(dash.Averages) == 0 {
		uc.console.LogWarning("No monthly data to show")
		return
	}
	cols := averageColumns(dash.Averages)

	table := uc.console.CreateTable()
	table.AddColumn("Mes")
	for _, c := range cols {
		table.AddColumn(labelFor(dash.Labels, c))
	}
	table.AddColumn("Filas")
	for _, b := range dash.Averages {
		cells := []interface{}{b.Key}
		for _, c := range cols {
			cells = append(cells, locale.FormatNumber(b.Averages[c]))
		}
		cells = append(cells, locale.FormatInt(b.Rows))
		table.AddRow(cells...)
	}
	uc.console.Print(table.Render())
}

func averageColumns(buckets []entity.AverageBucket) []entity.LogicalColumn {
	seen := make(map[entity.LogicalColumn]bool)
	var cols []entity.LogicalColumn
	for _, b := range buckets {
		for c := range b.Averages {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	return cols
}

func (uc *DashboardUseCase) renderOptions(sess *Session, dash entity.Dashboard) {
	table := uc.console.CreateTable()
	table.AddColumn("Filtro")
	table.AddColumn("Opciones")
	for _, sel := range dash.Selections {
		opts, err := sess.Options(sel.Dimension)
		if err != nil {
			continue
		}
		table.AddRow(pterm.FgMagenta.Sprint(sel.Dimension), strings.Join(opts, "\n"))
	}
	uc.console.Print(table.Render())
}

// trendSeries builds one chart per measure from the series the dashboard kind
// provides. Each point carries the direction of its change against the point
// before it, taken from the polarity table; measures without a rule stay
// unclassified.
func trendSeries(ds types.DatasetConfig, dash entity.Dashboard) (titles []string, charts [][]types.TrendPoint) {
	table := ds.PolarityTable()

	switch dash.Kind {
	case entity.KindCompliance:
		for _, m := range types.MeasureColumns(ds.Measures) {
			points := make([]types.TrendPoint, 0, len(dash.Series))
			for _, b := range dash.Series {
				pct, ok := b.Percentages[m]
				points = append(points, types.TrendPoint{
					Period:  b.Key,
					Value:   float64(pct),
					Defined: ok && !pct.IsUndefined(),
					Share:   true,
				})
			}
			classify(points, m, table)
			titles = append(titles, labelFor(dash.Labels, m))
			charts = append(charts, points)
		}
	case entity.KindDelays:
		points := make([]types.TrendPoint, 0, len(dash.Counts))
		for _, b := range dash.Counts {
			points = append(points, types.TrendPoint{Period: b.Key, Value: float64(b.Count), Defined: true})
		}
		titles = append(titles, "Demoras")
		charts = append(charts, points)
	case entity.KindEvolution:
		for _, m := range averageColumns(dash.Averages) {
			points := make([]types.TrendPoint, 0, len(dash.Averages))
			for _, b := range dash.Averages {
				v, ok := b.Averages[m]
				points = append(points, types.TrendPoint{Period: b.Key, Value: v, Defined: ok})
			}
			classify(points, m, table)
			titles = append(titles, labelFor(dash.Labels, m))
			charts = append(charts, points)
		}
	}
	return titles, charts
}

// classify sets Direction on every point after the first using the rule for m.
func classify(points []types.TrendPoint, m entity.LogicalColumn, table entity.PolarityTable) {
	rule, ok := table[m]
	if !ok {
		return
	}
	value := func(p types.TrendPoint) entity.Percent {
		if !p.Defined {
			return entity.Undefined()
		}
		return entity.Percent(p.Value)
	}
	for i := 1; i < len(points); i++ {
		points[i].Direction = trend.Compare(m, value(points[i]), value(points[i-1]), rule).Direction
	}
}

func (uc *DashboardUseCase) renderTrend(ds types.DatasetConfig, dash entity.Dashboard) {
	titles, charts := trendSeries(ds, dash)
	if len(charts) == 0 {
		uc.console.LogWarning("No monthly series available for %s", ds.Name)
		return
	}
	for i, points := range charts {
		uc.console.DisplayTrendBars(titles[i], points)
	}
}
