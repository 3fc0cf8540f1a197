package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/cache"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const (
	referenceCachePrefix = "reference:"
	tagsCacheKey         = referenceCachePrefix + "tags"
	ingredientsCacheKey  = referenceCachePrefix + "ingredients:"
)

// ReferenceService serves the read-only tag and ingredient catalogues.
type ReferenceService interface {
	ListTags(ctx context.Context) ([]*types.Tag, error)
	GetTag(ctx context.Context, tagID uuid.UUID) (*types.Tag, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error)
	GetIngredient(ctx context.Context, ingredientID uuid.UUID) (*types.Ingredient, error)
	// Invalidate drops every cached listing; called after reference data is reloaded.
	Invalidate(ctx context.Context) error
}

type referenceService struct {
	log            *logger.Logger
	cache          cache.Cache
	tagRepo        repos.TagRepo
	ingredientRepo repos.IngredientRepo
}

func NewReferenceService(log *logger.Logger, c cache.Cache, tagRepo repos.TagRepo, ingredientRepo repos.IngredientRepo) ReferenceService {
	if c == nil {
		c = cache.Noop()
	}
	return &referenceService{
		log:            log.With("service", "ReferenceService"),
		cache:          c,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (rs *referenceService) ListTags(ctx context.Context) ([]*types.Tag, error) {
	var cached []*types.Tag
	if rs.cacheGet(ctx, tagsCacheKey, &cached) {
		return cached, nil
	}
	tags, err := rs.tagRepo.GetAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	rs.cacheSet(ctx, tagsCacheKey, tags)
	return tags, nil
}

func (rs *referenceService) GetTag(ctx context.Context, tagID uuid.UUID) (*types.Tag, error) {
	tag, err := rs.tagRepo.GetByID(dbctx.Context{Ctx: ctx}, tagID)
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if tag == nil {
		return nil, domainagg.NotFound("Reference.Tag.Get", "Not found.")
	}
	return tag, nil
}

// ListIngredients returns ingredients whose name starts with namePrefix,
// ignoring case. An empty prefix lists everything.
func (rs *referenceService) ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error) {
	prefix := strings.ToLower(strings.TrimSpace(namePrefix))
	key := ingredientsCacheKey + prefix
	var cached []*types.Ingredient
	if rs.cacheGet(ctx, key, &cached) {
		return cached, nil
	}
	ingredients, err := rs.ingredientRepo.SearchByNamePrefix(dbctx.Context{Ctx: ctx}, prefix)
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	rs.cacheSet(ctx, key, ingredients)
	return ingredients, nil
}

func (rs *referenceService) GetIngredient(ctx context.Context, ingredientID uuid.UUID) (*types.Ingredient, error) {
	ing, err := rs.ingredientRepo.GetByID(dbctx.Context{Ctx: ctx}, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	if ing == nil {
		return nil, domainagg.NotFound("Reference.Ingredient.Get", "Not found.")
	}
	return ing, nil
}

func (rs *referenceService) Invalidate(ctx context.Context) error {
	if err := rs.cache.DeletePrefix(ctx, referenceCachePrefix); err != nil {
		return fmt.Errorf("invalidate reference cache: %w", err)
	}
	return nil
}

// Cache failures degrade to a store read.
func (rs *referenceService) cacheGet(ctx context.Context, key string, dst any) bool {
	ok, err := rs.cache.Get(ctx, key, dst)
	if err != nil {
		rs.log.Warn("Reference cache read failed", "key", key, "error", err)
		return false
	}
	return ok
}

func (rs *referenceService) cacheSet(ctx context.Context, key string, val any) {
	if err := rs.cache.Set(ctx, key, val); err != nil {
		rs.log.Warn("Reference cache write failed", "key", key, "error", err)
	}
}
