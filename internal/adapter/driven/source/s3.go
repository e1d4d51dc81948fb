package source

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/repository"
)

const s3Scheme = "s3://"

// S3Repository lê objetos s3://bucket/key com o SDK v2, reaproveitando o cliente.
type S3Repository struct {
	profile string
	region  string

	mu     sync.Mutex
	client *s3.Client
}

// NewS3Repository cria um S3Repository. profile e region vazios usam a cadeia padrão do SDK.
func NewS3Repository(profile, region string) repository.SourceRepository {
	return &S3Repository{profile: profile, region: region}
}

// ParseS3Location splits s3://bucket/key into its parts.
func ParseS3Location(location string) (bucket, key string, err error) {
	if !strings.HasPrefix(location, s3Scheme) {
		return "", "", fmt.Errorf("not an s3 location: %s", location)
	}
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q, expected s3://bucket/key", location)
	}
	return bucket, key, nil
}

func (r *S3Repository) getClient(ctx context.Context) (*s3.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.profile))
	}
	if r.region != "" {
		opts = append(opts, config.WithRegion(r.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %q: %w", r.profile, err)
	}

	r.client = s3.NewFromConfig(cfg)
	return r.client, nil
}

func (r *S3Repository) Fetch(ctx context.Context, location string) (string, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return "", err
	}

	client, err := r.getClient(ctx)
	if err != nil {
		return "", err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("error getting %s: %w", location, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", location, err)
	}
	return string(data), nil
}
