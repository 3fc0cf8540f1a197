package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// ErrReferenceFileMissing is returned when a reference data file cannot be found.
var ErrReferenceFileMissing = errors.New("reference data file not found")

type ingredientRow struct {
	Name            string `json:"name" yaml:"name"`
	MeasurementUnit string `json:"measurement_unit" yaml:"measurement_unit"`
}

type tagRow struct {
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Color string `json:"color" yaml:"color"`
}

// LoadResult counts rows read from a file and how many of them were new.
type LoadResult struct {
	Read    int
	Created int
}

type ReferenceLoader interface {
	LoadIngredients(ctx context.Context, dir string) (LoadResult, error)
	LoadTags(ctx context.Context, dir string) (LoadResult, error)
}

type referenceLoader struct {
	log            *logger.Logger
	tagRepo        repos.TagRepo
	ingredientRepo repos.IngredientRepo
	reference      ReferenceService
}

func NewReferenceLoader(log *logger.Logger, tagRepo repos.TagRepo, ingredientRepo repos.IngredientRepo, reference ReferenceService) ReferenceLoader {
	return &referenceLoader{
		log:            log.With("service", "ReferenceLoader"),
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		reference:      reference,
	}
}

// LoadIngredients get-or-creates every row of ingredients.{json,yaml,yml} in dir.
// Rows written before a failure stay; rerunning is safe.
func (l *referenceLoader) LoadIngredients(ctx context.Context, dir string) (LoadResult, error) {
	var rows []ingredientRow
	path, err := readReferenceFile(dir, "ingredients", &rows)
	if err != nil {
		return LoadResult{}, fmt.Errorf("ingredients: %w", err)
	}
	res := LoadResult{Read: len(rows)}
	dbc := dbctx.Context{Ctx: ctx}
	for i, row := range rows {
		name, unit := strings.TrimSpace(row.Name), strings.TrimSpace(row.MeasurementUnit)
		if name == "" || unit == "" {
			return res, fmt.Errorf("ingredients: row %d: name and measurement_unit are required", i)
		}
		_, created, err := l.ingredientRepo.GetOrCreate(dbc, &types.Ingredient{Name: name, MeasurementUnit: unit})
		if err != nil {
			return res, fmt.Errorf("ingredients: row %d: %w", i, err)
		}
		if created {
			res.Created++
		}
	}
	l.invalidate(ctx)
	l.log.Info("Ingredients uploaded", "file", path, "read", res.Read, "created", res.Created)
	return res, nil
}

func (l *referenceLoader) LoadTags(ctx context.Context, dir string) (LoadResult, error) {
	var rows []tagRow
	path, err := readReferenceFile(dir, "tags", &rows)
	if err != nil {
		return LoadResult{}, fmt.Errorf("tags: %w", err)
	}
	res := LoadResult{Read: len(rows)}
	dbc := dbctx.Context{Ctx: ctx}
	for i, row := range rows {
		tag := &types.Tag{
			Name:  strings.TrimSpace(row.Name),
			Slug:  strings.TrimSpace(row.Slug),
			Color: strings.TrimSpace(row.Color),
		}
		if tag.Name == "" || tag.Slug == "" || tag.Color == "" {
			return res, fmt.Errorf("tags: row %d: name, slug and color are required", i)
		}
		_, created, err := l.tagRepo.GetOrCreate(dbc, tag)
		if err != nil {
			return res, fmt.Errorf("tags: row %d: %w", i, err)
		}
		if created {
			res.Created++
		}
	}
	l.invalidate(ctx)
	l.log.Info("Tags uploaded", "file", path, "read", res.Read, "created", res.Created)
	return res, nil
}

func (l *referenceLoader) invalidate(ctx context.Context) {
	if l.reference == nil {
		return
	}
	if err := l.reference.Invalidate(ctx); err != nil {
		l.log.Warn("Reference cache invalidation failed", "error", err)
	}
}

// readReferenceFile decodes the first of <base>.json, <base>.yaml, <base>.yml found in dir.
func readReferenceFile(dir, base string, dst any) (string, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(dir, base+ext)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return path, fmt.Errorf("read %s: %w", path, err)
		}
		if ext == ".json" {
			err = json.Unmarshal(raw, dst)
		} else {
			err = yaml.Unmarshal(raw, dst)
		}
		if err != nil {
			return path, fmt.Errorf("decode %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: %s.json in %s", ErrReferenceFileMissing, base, dir)
}
