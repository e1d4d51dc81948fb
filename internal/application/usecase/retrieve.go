package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

// fetchFirst tries each candidate location in order and returns the text of
// the first one that can be read, with the location it came from.
func fetchFirst(ctx context.Context, repo repository.SourceRepository, candidates []string) (string, string, error) {
	if len(candidates) == 0 {
		return "", "", &types.RetrievalError{Err: errors.New("no source locations configured")}
	}

	var errs []error
	for _, loc := range candidates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		text, err := repo.Fetch(ctx, loc)
		if err == nil {
			return text, loc, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", loc, err))
	}

	return "", "", &types.RetrievalError{
		Sources: append([]string(nil), candidates...),
		Err:     errors.Join(errs...),
	}
}
