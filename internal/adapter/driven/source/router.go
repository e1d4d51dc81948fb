// Package source holds the adapters that retrieve dataset text.
package source

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// Router picks the adapter for a location by its scheme: s3:// goes to S3,
// http:// and https:// go to HTTP, anything else is a file path.
type Router struct {
	File repository.SourceRepository
	HTTP repository.SourceRepository
	S3   repository.SourceRepository
}

// NewRouter builds a Router with every adapter configured from cfg.
func NewRouter(cfg types.SourceConfig) repository.SourceRepository {
	var timeout time.Duration
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Router{
		File: NewFileRepository(cfg.BaseDir),
		HTTP: NewHTTPRepository(timeout),
		S3:   NewS3Repository(cfg.AWSProfile, cfg.AWSRegion),
	}
}

func (r *Router) Fetch(ctx context.Context, location string) (string, error) {
	var repo repository.SourceRepository
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, s3Scheme):
		repo = r.S3
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		repo = r.HTTP
	default:
		repo = r.File
	}
	if repo == nil {
		return "", errors.New("no source adapter configured for " + location)
	}
	return repo.Fetch(ctx, location)
}
