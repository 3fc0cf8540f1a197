package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

const (
	DefaultRecipeImagePrefix = "recipes/images/"
	maxImageBytes            = 10 << 20
)

// DecodedImage is an uploaded image after base64 decoding and format sniffing.
type DecodedImage struct {
	Data   []byte
	Format string
	Ext    string
}

// DecodeImageDataURI accepts "data:image/<fmt>;base64,<payload>" or a bare
// base64 payload and checks that the bytes really are png, jpeg, gif or webp.
func DecodeImageDataURI(raw string) (*DecodedImage, error) {
	const op = "Recipes.Image.Decode"
	invalid := func(msg string) error {
		fields := domainagg.FieldErrors{}
		fields.Add("image", msg)
		return domainagg.NewValidation(op, fields)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalid(msgMustHaveImage)
	}
	payload := raw
	if strings.HasPrefix(raw, "data:") {
		comma := strings.IndexByte(raw, ',')
		if comma < 0 {
			return nil, invalid("Upload a valid image.")
		}
		header := raw[len("data:"):comma]
		if !strings.HasSuffix(header, ";base64") {
			return nil, invalid("Upload a valid image.")
		}
		payload = raw[comma+1:]
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxImageBytes {
		return nil, invalid("Image is too large.")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, invalid("Upload a valid image.")
		}
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, invalid("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	ext := format
	if format == "jpeg" {
		ext = "jpg"
	}
	return &DecodedImage{Data: data, Format: format, Ext: ext}, nil
}

type ImageService interface {
	// SaveRecipeImage decodes raw and stores it under a generated key, which it returns.
	SaveRecipeImage(ctx context.Context, raw string) (string, error)
	DeleteImage(ctx context.Context, key string) error
	URL(key string) string
}

type imageService struct {
	log    *logger.Logger
	store  objectstore.Store
	prefix string
}

func NewImageService(log *logger.Logger, store objectstore.Store, prefix string) ImageService {
	prefix = strings.TrimLeft(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultRecipeImagePrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &imageService{
		log:    log.With("service", "ImageService"),
		store:  store,
		prefix: prefix,
	}
}

func (is *imageService) SaveRecipeImage(ctx context.Context, raw string) (string, error) {
	img, err := DecodeImageDataURI(raw)
	if err != nil {
		return "", err
	}
	key := is.prefix + uuid.NewString() + "." + img.Ext
	if err := is.store.Put(ctx, key, bytes.NewReader(img.Data)); err != nil {
		is.log.Error("Failed to store recipe image", "key", key, "error", err)
		return "", fmt.Errorf("store recipe image: %w", err)
	}
	return key, nil
}

func (is *imageService) DeleteImage(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if err := is.store.Delete(ctx, key); err != nil {
		is.log.Warn("Failed to delete recipe image", "key", key, "error", err)
		return fmt.Errorf("delete recipe image: %w", err)
	}
	return nil
}

func (is *imageService) URL(key string) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}
	return is.store.URL(key)
}
