package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
)

// FileRepository lê datasets do disco local.
type FileRepository struct {
	baseDir string
}

// NewFileRepository cria um FileRepository. Locais relativos são resolvidos a partir de baseDir.
func NewFileRepository(baseDir string) repository.SourceRepository {
	return &FileRepository{baseDir: baseDir}
}

func (r *FileRepository) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := location
	if r.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("error accessing %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return string(data), nil
}
