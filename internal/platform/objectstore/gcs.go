package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type gcsStore struct {
	log     *logger.Logger
	client  *storage.Client
	bucket  string
	baseURL string
}

func gcsClientOptions(cfg Config) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	switch {
	case strings.TrimSpace(cfg.GCSEndpoint) != "":
		opts = append(opts, option.WithEndpoint(cfg.GCSEndpoint), option.WithoutAuthentication())
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

func NewGCS(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	client, err := storage.NewClient(ctx, gcsClientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	baseURL := strings.TrimSpace(cfg.PublicBaseURL)
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://storage.googleapis.com/%s", cfg.Bucket)
	}
	log.Info("Object storage initialized", "bucket", cfg.Bucket, "public_base_url", baseURL)
	return &gcsStore{log: log, client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (s *gcsStore) Put(ctx context.Context, key string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentTypeForKey(key)
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, s.bucket, err)
	}
	return nil
}

func (s *gcsStore) URL(key string) string {
	return joinURL(s.baseURL, key)
}
