package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/locale"
)

type section struct {
	title   string
	content string
}

func (r *ExportRepositoryImpl) ExportToPDF(dash entity.Dashboard, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(s section) {
		if s.content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(s.title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(s.content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("Supply KPI Dashboard | %s | sesión %s", dash.ComputedAt.Format("2006-01-02 15:04"), dash.SessionID)
		pdf.CellFormat(0, 10, tr(footer), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s (%s)", dash.Dataset, dash.Kind)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	info := fmt.Sprintf("  Fuente: %s | Filas: %s de %s", dash.Source, locale.FormatInt(dash.Filtered), locale.FormatInt(dash.RowCount))
	if dash.Stale {
		info += " | DESACTUALIZADO"
	}
	pdf.CellFormat(0, 8, tr(info), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	for _, s := range summarySections(dash) {
		drawSection(s)
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// summarySections renders the dashboard as plain text blocks, one per view.
func summarySections(dash entity.Dashboard) []section {
	label := func(col entity.LogicalColumn) string {
		if l, ok := dash.Labels[col]; ok && l != "" {
			return l
		}
		return string(col)
	}

	var out []section

	var filters []string
	for _, s := range dash.Selections {
		v := "Todos"
		if !s.All() {
			v = strings.Join(s.Values, ", ")
		}
		if s.Defaulted {
			v += " (último mes)"
		}
		filters = append(filters, fmt.Sprintf("%s: %s", s.Dimension, v))
	}
	out = append(out, section{"Filtros", strings.Join(filters, "\n")})

	k := dash.KPIs
	switch dash.Kind {
	case entity.KindInventory:
		out = append(out, section{"Indicadores", fmt.Sprintf(
			"Materiales distintos: %s\nMateriales con libre utilización: %s (%s)",
			locale.FormatInt(k.DistinctTotal), locale.FormatInt(k.DistinctAvailable), k.AvailableShare)})

	case entity.KindCompliance:
		var b strings.Builder
		fmt.Fprintf(&b, "General (%s)\n", locale.FormatNumber(k.GeneralTotal))
		for _, m := range k.General {
			fmt.Fprintf(&b, "  %s: %s (%s)\n", m.Label, locale.FormatNumber(m.Sum), m.Share)
		}
		if k.CurrentPeriod != "" {
			fmt.Fprintf(&b, "Mes %s (%s)\n", k.CurrentPeriod, locale.FormatNumber(k.CurrentTotal))
			for _, m := range k.Current {
				fmt.Fprintf(&b, "  %s: %s (%s)\n", m.Label, locale.FormatNumber(m.Sum), m.Share)
			}
		}
		out = append(out, section{"Indicadores", strings.TrimSpace(b.String())})

		var deltas []string
		for _, d := range k.Deltas {
			if d.Direction == entity.DirectionNoPreviousPeriod {
				deltas = append(deltas, fmt.Sprintf("%s: %s (sin mes anterior)", label(d.Measure), d.Current))
				continue
			}
			deltas = append(deltas, fmt.Sprintf("%s: %s vs %s (%+.1f pp, %s)",
				label(d.Measure), d.Current, d.Previous, float64(d.Diff), d.Direction))
		}
		title := "Variación mensual"
		if k.PreviousPeriod != "" {
			title = fmt.Sprintf("Variación %s vs %s", k.CurrentPeriod, k.PreviousPeriod)
		}
		out = append(out, section{title, strings.Join(deltas, "\n")})

	case entity.KindDelays:
		kpi := fmt.Sprintf("Demoras en la selección: %s", locale.FormatInt(k.PeriodCount))
		if k.TopFlag != "" {
			kpi += fmt.Sprintf("\nÁrea con más demoras: %s, %s (%s)", k.TopFlag, locale.FormatInt(k.TopFlagCount), k.TopFlagShare)
		}
		out = append(out, section{"Indicadores", kpi})
	}

	if len(dash.Categories) > 0 {
		var lines []string
		for _, c := range dash.Categories {
			lines = append(lines, fmt.Sprintf("%s: %s (%s)", c.Label, locale.FormatInt(c.Count), c.Percentage))
		}
		out = append(out, section{"Estados", strings.Join(lines, "\n")})
	}

	if len(dash.Series) > 0 {
		var lines []string
		for _, b := range dash.Series {
			parts := make([]string, 0, len(b.Percentages))
			for _, col := range sortedColumns(b.Percentages) {
				parts = append(parts, fmt.Sprintf("%s %s", label(col), b.Percentages[col]))
			}
			lines = append(lines, fmt.Sprintf("%s  %s", b.Key, strings.Join(parts, " | ")))
		}
		out = append(out, section{"Evolución mensual", strings.Join(lines, "\n")})
	}

	if len(dash.Counts) > 0 {
		var lines []string
		for _, c := range dash.Counts {
			lines = append(lines, fmt.Sprintf("%s: %s", c.Key, locale.FormatInt(c.Count)))
		}
		out = append(out, section{"Demoras por mes", strings.Join(lines, "\n")})
	}

	flagLines := func(fs []entity.FlagCount) string {
		var lines []string
		for _, f := range fs {
			lines = append(lines, fmt.Sprintf("%s: %s (%s)", f.Label, locale.FormatInt(f.Count), f.Percentage))
		}
		return strings.Join(lines, "\n")
	}
	out = append(out, section{"Áreas", flagLines(dash.Flags)})
	out = append(out, section{"Motivos", flagLines(dash.Motives)})

	if len(dash.Averages) > 0 {
		var lines []string
		for _, a := range dash.Averages {
			parts := make([]string, 0, len(a.Averages))
			for _, col := range sortedColumns(a.Averages) {
				parts = append(parts, fmt.Sprintf("%s %s", label(col), locale.FormatNumber(a.Averages[col])))
			}
			lines = append(lines, fmt.Sprintf("%s  %s", a.Key, strings.Join(parts, " | ")))
		}
		out = append(out, section{"Promedios mensuales", strings.Join(lines, "\n")})
	}

	return out
}

func sortedColumns[V any](m map[entity.LogicalColumn]V) []entity.LogicalColumn {
	cols := make([]entity.LogicalColumn, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	return cols
}
