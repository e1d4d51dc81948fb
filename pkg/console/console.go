package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BoldRed       = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightCyan    = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

type tone int

const (
	toneNeutral tone = iota
	toneGood
	toneBad
	toneNoRule
)

// toneOf traduz a direção calculada pela regra de polaridade.
func toneOf(d entity.Direction) tone {
	switch d {
	case entity.DirectionImproved:
		return toneGood
	case entity.DirectionWorsened:
		return toneBad
	case "":
		return toneNoRule
	default:
		return toneNeutral
	}
}

// trendChange formata a variação entre dois meses: pontos percentuais para
// participações, valor absoluto para as demais séries. A cor vem de
// cur.Direction; sem regra a variação aparece como "sin regla".
func trendChange(prev, cur types.TrendPoint) (string, tone) {
	if !prev.Defined || !cur.Defined {
		return "N/A", toneNeutral
	}
	unit := ""
	if cur.Share {
		unit = " pp"
	}
	text := strings.Replace(fmt.Sprintf("%+.1f", cur.Value-prev.Value), ".", ",", 1)
	if text == "+0,0" || text == "-0,0" {
		text = "0,0"
	}
	text += unit
	t := toneOf(cur.Direction)
	if t == toneNoRule {
		text += " (sin regla)"
	}
	return text, t
}

func paint(t tone, s string) string {
	switch t {
	case toneGood:
		return BrightGreen(s)
	case toneBad:
		return BoldRed(s)
	case toneNoRule:
		return pterm.FgDarkGray.Sprint(s)
	default:
		return BrightYellow(s)
	}
}

// DisplayTrendBars exibe a evolução mensal de uma série em barras.
func (c *Console) DisplayTrendBars(title string, points []types.TrendPoint) {
	if len(points) == 0 {
		pterm.Warning.Printfln("No monthly data for %s", title)
		return
	}

	// participações usam escala fixa 0..100; o resto, o maior valor da série
	scale := 100.0
	header := "%"
	if !points[0].Share {
		header = "Valor"
		scale = 0
		for _, p := range points {
			if p.Defined && p.Value > scale {
				scale = p.Value
			}
		}
	}

	tableData := pterm.TableData{
		{"Mes", header, "", "Variación"},
	}

	for i, p := range points {
		value := "-"
		bar := ""
		if p.Defined {
			value = strings.Replace(fmt.Sprintf("%.1f", p.Value), ".", ",", 1)
			if p.Share {
				value += "%"
			}
			if scale > 0 && p.Value > 0 {
				bar = strings.Repeat("█", int(math.Round(p.Value/scale*40)))
			}
		}

		change := ""
		barColor := BrightCyan(bar)
		if i > 0 {
			text, t := trendChange(points[i-1], p)
			change = paint(t, text)
			barColor = paint(t, bar)
		}

		tableData = append(tableData, []string{p.Period, value, barColor, change})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
