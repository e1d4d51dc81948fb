package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
)

// HTTPRepository busca datasets via HTTP(S). Qualquer status fora de 2xx é falha.
type HTTPRepository struct {
	httpClient *http.Client
}

// NewHTTPRepository cria um HTTPRepository com o timeout informado (0 = sem limite).
func NewHTTPRepository(timeout time.Duration) repository.SourceRepository {
	return &HTTPRepository{httpClient: &http.Client{Timeout: timeout}}
}

func (r *HTTPRepository) Fetch(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s returned HTTP %d", location, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", location, err)
	}
	return string(body), nil
}
