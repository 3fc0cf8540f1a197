package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// AuthorPreview is the recipe preview embedded in a subscriber view.
type AuthorPreview struct {
	Recipes      []*types.Recipe
	RecipesCount int64
}

type SubscriptionService interface {
	// Subscribe makes the caller follow authorID and returns the author.
	Subscribe(ctx context.Context, authorID uuid.UUID) (*types.User, error)
	Unsubscribe(ctx context.Context, authorID uuid.UUID) error
	ListSubscriptions(dbc dbctx.Context, offset, limit int) ([]*types.User, int64, error)
	// LoadAuthorPreviews returns up to recipesLimit newest recipes per author
	// plus the full count; a negative limit means no cap.
	LoadAuthorPreviews(dbc dbctx.Context, authorIDs []uuid.UUID, recipesLimit int) (map[uuid.UUID]AuthorPreview, error)
}

type subscriptionService struct {
	log              *logger.Logger
	userRepo         repos.UserRepo
	subscriptionRepo repos.SubscriptionRepo
	recipeRepo       repos.RecipeRepo
}

func NewSubscriptionService(log *logger.Logger, userRepo repos.UserRepo, subscriptionRepo repos.SubscriptionRepo, recipeRepo repos.RecipeRepo) SubscriptionService {
	return &subscriptionService{
		log:              log.With("service", "SubscriptionService"),
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		recipeRepo:       recipeRepo,
	}
}

func (ss *subscriptionService) Subscribe(ctx context.Context, authorID uuid.UUID) (*types.User, error) {
	const op = "Users.Subscription.Create"
	viewerID, err := requireViewer(ctx, op)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	author, err := ss.requireAuthor(dbc, op, authorID)
	if err != nil {
		return nil, err
	}

	exists, err := ss.subscriptionRepo.Exists(dbc, viewerID, authorID)
	if err != nil {
		return nil, fmt.Errorf("check subscription: %w", err)
	}
	if err := ValidateSubscription(viewerID, authorID, exists); err != nil {
		return nil, err
	}

	if _, err := ss.subscriptionRepo.Create(dbc, viewerID, authorID); err != nil {
		mapped := dataagg.MapError(op, err)
		switch domainagg.CodeOf(mapped) {
		case domainagg.CodeConflict:
			// the unique index caught a concurrent duplicate
			return nil, domainagg.NewError(domainagg.CodeConflict, op, msgAlreadySubscribed, err)
		case domainagg.CodeValidation:
			return nil, domainagg.NewError(domainagg.CodeValidation, op, msgSelfSubscribe, err)
		}
		ss.log.Error("Failed to create subscription", "error", err)
		return nil, mapped
	}
	return author, nil
}

func (ss *subscriptionService) Unsubscribe(ctx context.Context, authorID uuid.UUID) error {
	const op = "Users.Subscription.Delete"
	viewerID, err := requireViewer(ctx, op)
	if err != nil {
		return err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := ss.requireAuthor(dbc, op, authorID); err != nil {
		return err
	}
	n, err := ss.subscriptionRepo.Delete(dbc, viewerID, authorID)
	if err != nil {
		return dataagg.MapError(op, err)
	}
	if n == 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, msgNoSuchSubscribe, nil)
	}
	return nil
}

func (ss *subscriptionService) ListSubscriptions(dbc dbctx.Context, offset, limit int) ([]*types.User, int64, error) {
	const op = "Users.Subscription.List"
	viewerID, err := requireViewer(dbc.Ctx, op)
	if err != nil {
		return nil, 0, err
	}
	total, err := ss.subscriptionRepo.CountByUser(dbc, viewerID)
	if err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}
	authorIDs, err := ss.subscriptionRepo.ListAuthorIDs(dbc, viewerID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	if len(authorIDs) == 0 {
		return []*types.User{}, total, nil
	}
	authors, err := ss.userRepo.GetByIDs(dbc, authorIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("load authors: %w", err)
	}
	byID := make(map[uuid.UUID]*types.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	// keep subscription order
	out := make([]*types.User, 0, len(authorIDs))
	for _, id := range authorIDs {
		if a := byID[id]; a != nil {
			out = append(out, a)
		}
	}
	return out, total, nil
}

func (ss *subscriptionService) LoadAuthorPreviews(dbc dbctx.Context, authorIDs []uuid.UUID, recipesLimit int) (map[uuid.UUID]AuthorPreview, error) {
	out := make(map[uuid.UUID]AuthorPreview, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	counts, err := ss.recipeRepo.CountByAuthors(dbc, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("count author recipes: %w", err)
	}
	for _, id := range authorIDs {
		list, err := ss.recipeRepo.ListByAuthor(dbc, id, recipesLimit)
		if err != nil {
			return nil, fmt.Errorf("list author recipes: %w", err)
		}
		out[id] = AuthorPreview{Recipes: list, RecipesCount: counts[id]}
	}
	return out, nil
}

func (ss *subscriptionService) requireAuthor(dbc dbctx.Context, op string, authorID uuid.UUID) (*types.User, error) {
	author, err := ss.userRepo.GetByID(dbc, authorID)
	if err != nil {
		return nil, fmt.Errorf("error fetching author: %w", err)
	}
	if author == nil {
		return nil, domainagg.NotFound(op, msgNoSuchAuthor)
	}
	return author, nil
}

func requireViewer(ctx context.Context, op string) (uuid.UUID, error) {
	id := ctxutil.ViewerID(ctx)
	if id == uuid.Nil {
		return uuid.Nil, domainagg.Unauthorized(op, "Authentication credentials were not provided.")
	}
	return id, nil
}
