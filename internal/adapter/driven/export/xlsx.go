package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
)

const sheetName = "Datos"

// ExportToXLSX grava as linhas filtradas numa planilha, com o mesmo nome do CSV.
func (r *ExportRepositoryImpl) ExportToXLSX(blob entity.ExportBlob, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(blob.Filename), filepath.Ext(blob.Filename))
	if base == "" {
		base = "export"
	}
	outputFilename := filepath.Join(dir, base+".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("error preparing sheet: %w", err)
	}

	for i, h := range blob.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", fmt.Errorf("error writing header: %w", err)
		}
	}
	if len(blob.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(blob.Header), 1)
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			_ = f.SetCellStyle(sheetName, "A1", last, style)
		}
	}

	for rIdx, rec := range blob.Records {
		for c, v := range rec {
			cell, _ := excelize.CoordinatesToCellName(c+1, rIdx+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", fmt.Errorf("error writing row %d: %w", rIdx+1, err)
			}
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}
	return filepath.Abs(outputFilename)
}
