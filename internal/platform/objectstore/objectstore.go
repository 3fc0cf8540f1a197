// Package objectstore persists uploaded recipe images to the local disk,
// Google Cloud Storage or an S3-compatible bucket.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Store interface {
	Put(ctx context.Context, key string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	// URL returns the public address under which key is served.
	URL(key string) string
}

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCS   Mode = "gcs"
	ModeS3    Mode = "s3"
)

type Config struct {
	Mode Mode

	// local
	Root string

	// PublicBaseURL prefixes object keys in URL(); required for local mode.
	PublicBaseURL string

	// gcs + s3
	Bucket string

	// gcs
	CredentialsJSON string
	CredentialsFile string
	GCSEndpoint     string

	// s3
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type ConfigError struct {
	Mode  string
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q, %q)", e.Mode, ModeLocal, ModeGCS, ModeS3)
	}
	return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires %s", e.Mode, e.Field)
}

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeLocal:
		return ModeLocal, nil
	case ModeGCS:
		return ModeGCS, nil
	case ModeS3:
		return ModeS3, nil
	default:
		return "", &ConfigError{Mode: raw}
	}
}

func Validate(cfg Config) error {
	switch cfg.Mode {
	case ModeLocal:
		if strings.TrimSpace(cfg.Root) == "" {
			return &ConfigError{Mode: string(cfg.Mode), Field: "MEDIA_ROOT"}
		}
	case ModeGCS:
		if strings.TrimSpace(cfg.Bucket) == "" {
			return &ConfigError{Mode: string(cfg.Mode), Field: "RECIPE_IMAGE_BUCKET"}
		}
	case ModeS3:
		if strings.TrimSpace(cfg.Bucket) == "" {
			return &ConfigError{Mode: string(cfg.Mode), Field: "RECIPE_IMAGE_BUCKET"}
		}
		if strings.TrimSpace(cfg.Region) == "" {
			return &ConfigError{Mode: string(cfg.Mode), Field: "S3_REGION"}
		}
	default:
		return &ConfigError{Mode: string(cfg.Mode)}
	}
	return nil
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	storeLog := log.With("service", "ObjectStore", "mode", string(cfg.Mode))
	switch cfg.Mode {
	case ModeGCS:
		return NewGCS(ctx, storeLog, cfg)
	case ModeS3:
		return NewS3(ctx, storeLog, cfg)
	default:
		return NewLocal(storeLog, cfg)
	}
}

func joinURL(base, key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
