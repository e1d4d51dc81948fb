package types

import "github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayTrendBars(title string, points []TrendPoint)
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// TrendPoint is one bar of a month-over-month trend chart.
// Direction is the classification of the change from the previous point; it
// is empty for the first point and for series without a polarity rule. Share
// marks values in the 0..100 range (changes in percentage points); other
// series are scaled to their largest value.
type TrendPoint struct {
	Period    string           `json:"period"`
	Value     float64          `json:"value"`
	Defined   bool             `json:"defined"`
	Direction entity.Direction `json:"direction,omitempty"`
	Share     bool             `json:"share"`
}
