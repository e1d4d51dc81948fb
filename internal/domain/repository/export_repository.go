package repository

import (
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
)

type ExportRepository interface {
	// Filtered rows
	ExportToCSV(blob entity.ExportBlob, outputDir string) (string, error)
	ExportToXLSX(blob entity.ExportBlob, outputDir string) (string, error)

	// Dashboard snapshot
	ExportToJSON(dash entity.Dashboard, filename, outputDir string) (string, error)
	ExportToPDF(dash entity.Dashboard, filename, outputDir string) (string, error)
}
