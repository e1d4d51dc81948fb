package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/tabular"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- Linhas filtradas ---

// ExportToCSV grava o conteúdo já formatado com o nome sugerido pelo blob.
func (r *ExportRepositoryImpl) ExportToCSV(blob entity.ExportBlob, outputDir string) (string, error) {
	dir, err := ensureDir(outputDir)
	if err != nil {
		return "", err
	}

	name := blob.Filename
	if name == "" {
		name = tabular.SuggestFilename(tabular.AllPlaceholder, "csv")
	}
	outputFilename := filepath.Join(dir, filepath.Base(name))

	if err := os.WriteFile(outputFilename, []byte(blob.Content), 0o644); err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// --- Snapshot do dashboard ---

func (r *ExportRepositoryImpl) ExportToJSON(dash entity.Dashboard, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(dash); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func ensureDir(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return dir, nil
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	dir, err := ensureDir(dir)
	if err != nil {
		return "", err
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", tabular.SafeFilePart(base), timestamp, ext)
	return filepath.Join(dir, filename), nil
}
