package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// RecipeListQuery carries the list filters. The two flag filters only apply
// to an authenticated caller.
type RecipeListQuery struct {
	AuthorID         uuid.UUID
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Offset           int
	Limit            int
}

type RecipeService interface {
	List(ctx context.Context, q RecipeListQuery) ([]*types.Recipe, int64, error)
	Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error)
	Create(ctx context.Context, in RecipeInput) (*types.Recipe, error)
	// Update replaces the recipe's fields, tags and ingredient amounts. An
	// empty in.Image keeps the stored image.
	Update(ctx context.Context, recipeID uuid.UUID, in RecipeInput) (*types.Recipe, error)
	Delete(ctx context.Context, recipeID uuid.UUID) error
}

type recipeService struct {
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
	assembly   domainagg.RecipeAggregate
	images     ImageService
	bounds     Bounds
}

func NewRecipeService(log *logger.Logger, recipeRepo repos.RecipeRepo, assembly domainagg.RecipeAggregate, images ImageService, bounds Bounds) RecipeService {
	return &recipeService{
		log:        log.With("service", "RecipeService"),
		recipeRepo: recipeRepo,
		assembly:   assembly,
		images:     images,
		bounds:     bounds.normalized(),
	}
}

func (rs *recipeService) List(ctx context.Context, q RecipeListQuery) ([]*types.Recipe, int64, error) {
	filter := repos.RecipeFilter{AuthorID: q.AuthorID, TagSlugs: q.TagSlugs}
	if viewerID := ctxutil.ViewerID(ctx); viewerID != uuid.Nil {
		if q.IsFavorited {
			filter.FavoritedBy = viewerID
		}
		if q.IsInShoppingCart {
			filter.InCartOf = viewerID
		}
	}
	dbc := dbctx.Context{Ctx: ctx}
	total, err := rs.recipeRepo.Count(dbc, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}
	list, err := rs.recipeRepo.List(dbc, filter, q.Offset, q.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	return list, total, nil
}

func (rs *recipeService) Get(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error) {
	rec, err := rs.recipeRepo.GetByID(dbctx.Context{Ctx: ctx}, recipeID)
	if err != nil {
		return nil, fmt.Errorf("error fetching recipe: %w", err)
	}
	if rec == nil {
		return nil, domainagg.NotFound("Recipes.Recipe.Get", "Not found.")
	}
	return rec, nil
}

// Create validates the payload, stores the image, then assembles the recipe
// in one transaction. The stored image is removed again if assembly fails.
func (rs *recipeService) Create(ctx context.Context, in RecipeInput) (*types.Recipe, error) {
	const op = "Recipes.Recipe.Create"
	authorID, err := requireViewer(ctx, op)
	if err != nil {
		return nil, err
	}
	if err := ValidateRecipeInput(in, rs.bounds, true); err != nil {
		return nil, err
	}
	key, err := rs.images.SaveRecipeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	amounts, tagIDs := toAggregateInputs(in)
	rec, err := rs.assembly.Create(ctx, authorID, recipeFields(in, key), amounts, tagIDs)
	if err != nil {
		rs.discardImage(ctx, key)
		return nil, err
	}
	rs.log.Info("Recipe created", "recipe_id", rec.ID, "user_id", authorID)
	return rec, nil
}

func (rs *recipeService) Update(ctx context.Context, recipeID uuid.UUID, in RecipeInput) (*types.Recipe, error) {
	const op = "Recipes.Recipe.Update"
	current, err := rs.requireAuthor(ctx, op, recipeID)
	if err != nil {
		return nil, err
	}
	if err := ValidateRecipeInput(in, rs.bounds, false); err != nil {
		return nil, err
	}

	key := ""
	if strings.TrimSpace(in.Image) != "" {
		key, err = rs.images.SaveRecipeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
	}

	amounts, tagIDs := toAggregateInputs(in)
	rec, err := rs.assembly.Update(ctx, recipeID, recipeFields(in, key), amounts, tagIDs)
	if err != nil {
		rs.discardImage(ctx, key)
		return nil, err
	}
	if key != "" && current.Image != "" && current.Image != key {
		rs.discardImage(ctx, current.Image)
	}
	return rec, nil
}

func (rs *recipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
	const op = "Recipes.Recipe.Delete"
	current, err := rs.requireAuthor(ctx, op, recipeID)
	if err != nil {
		return err
	}
	n, err := rs.recipeRepo.Delete(dbctx.Context{Ctx: ctx}, recipeID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if n == 0 {
		return domainagg.NotFound(op, "Not found.")
	}
	rs.discardImage(ctx, current.Image)
	return nil
}

// requireAuthor loads the recipe and checks the caller wrote it.
func (rs *recipeService) requireAuthor(ctx context.Context, op string, recipeID uuid.UUID) (*types.Recipe, error) {
	viewerID, err := requireViewer(ctx, op)
	if err != nil {
		return nil, err
	}
	current, err := rs.recipeRepo.GetByID(dbctx.Context{Ctx: ctx}, recipeID)
	if err != nil {
		return nil, fmt.Errorf("error fetching recipe: %w", err)
	}
	if current == nil {
		return nil, domainagg.NotFound(op, "Not found.")
	}
	if current.AuthorID != viewerID {
		return nil, domainagg.Forbidden(op, "You do not have permission to perform this action.")
	}
	return current, nil
}

func (rs *recipeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := rs.images.DeleteImage(context.WithoutCancel(ctx), key); err != nil {
		rs.log.Warn("Orphaned recipe image", "key", key, "error", err)
	}
}

func recipeFields(in RecipeInput, imageKey string) domainagg.RecipeFields {
	return domainagg.RecipeFields{
		Name:        strings.TrimSpace(in.Name),
		Text:        in.Text,
		Image:       imageKey,
		CookingTime: in.CookingTime,
	}
}
