package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// MembershipService backs the favorite and shopping cart toggles. POST and
// DELETE share the recipe existence check and differ only in the write.
type MembershipService interface {
	Add(ctx context.Context, kind types.MembershipKind, recipeID uuid.UUID) (*types.Recipe, error)
	Remove(ctx context.Context, kind types.MembershipKind, recipeID uuid.UUID) error
}

type membershipService struct {
	log        *logger.Logger
	recipeRepo repos.RecipeRepo
	byKind     map[types.MembershipKind]repos.MembershipRepo
}

func NewMembershipService(log *logger.Logger, recipeRepo repos.RecipeRepo, markers ...repos.MembershipRepo) MembershipService {
	byKind := make(map[types.MembershipKind]repos.MembershipRepo, len(markers))
	for _, m := range markers {
		if m != nil {
			byKind[m.Kind()] = m
		}
	}
	return &membershipService{
		log:        log.With("service", "MembershipService"),
		recipeRepo: recipeRepo,
		byKind:     byKind,
	}
}

func (ms *membershipService) Add(ctx context.Context, kind types.MembershipKind, recipeID uuid.UUID) (*types.Recipe, error) {
	op := "Recipes." + membershipLabel(kind) + ".Create"
	viewerID, repo, err := ms.prepare(ctx, op, kind)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	recipe, err := ms.recipeRepo.GetByID(dbc, recipeID)
	if err != nil {
		return nil, fmt.Errorf("error fetching recipe: %w", err)
	}
	if recipe == nil {
		return nil, domainagg.NotFound(op, msgNoSuchRecipe)
	}

	marked, err := repo.Exists(dbc, viewerID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", kind, err)
	}
	if err := ValidateMembership(kind, marked); err != nil {
		return nil, err
	}

	if err := repo.Create(dbc, viewerID, recipeID); err != nil {
		mapped := dataagg.MapError(op, err)
		switch domainagg.CodeOf(mapped) {
		case domainagg.CodeConflict:
			return nil, domainagg.NewError(domainagg.CodeConflict, op, alreadyMarkedMessage(kind), err)
		case domainagg.CodePreconditionFailed:
			// recipe deleted between the lookup and the insert
			return nil, domainagg.NotFound(op, msgNoSuchRecipe)
		}
		ms.log.Error("Failed to mark recipe", "kind", string(kind), "error", err)
		return nil, mapped
	}
	return recipe, nil
}

func (ms *membershipService) Remove(ctx context.Context, kind types.MembershipKind, recipeID uuid.UUID) error {
	op := "Recipes." + membershipLabel(kind) + ".Delete"
	viewerID, repo, err := ms.prepare(ctx, op, kind)
	if err != nil {
		return err
	}
	dbc := dbctx.Context{Ctx: ctx}
	exists, err := ms.recipeRepo.Exists(dbc, recipeID)
	if err != nil {
		return fmt.Errorf("error checking recipe: %w", err)
	}
	if !exists {
		return domainagg.NotFound(op, msgNoSuchRecipe)
	}
	n, err := repo.Delete(dbc, viewerID, recipeID)
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if n == 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, msgNoSuchRecipe, nil)
	}
	return nil
}

func (ms *membershipService) prepare(ctx context.Context, op string, kind types.MembershipKind) (uuid.UUID, repos.MembershipRepo, error) {
	viewerID, err := requireViewer(ctx, op)
	if err != nil {
		return uuid.Nil, nil, err
	}
	repo := ms.byKind[kind]
	if repo == nil {
		return uuid.Nil, nil, domainagg.NewError(domainagg.CodeInternal, op, fmt.Sprintf("no store for membership kind %q", kind), nil)
	}
	return viewerID, repo, nil
}
