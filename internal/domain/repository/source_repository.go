package repository

import "context"

// SourceRepository retrieves the raw text of a dataset from one location
// (a file path, an http(s) URL or an s3:// object).
type SourceRepository interface {
	Fetch(ctx context.Context, location string) (string, error)
}
