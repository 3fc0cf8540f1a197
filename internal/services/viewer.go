package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// ViewerFlags are the caller-relative booleans rendered next to recipes and authors.
// The zero value answers false for everything.
type ViewerFlags struct {
	Favorited  map[uuid.UUID]bool
	InCart     map[uuid.UUID]bool
	Subscribed map[uuid.UUID]bool
}

func (f ViewerFlags) IsFavorited(recipeID uuid.UUID) bool      { return f.Favorited[recipeID] }
func (f ViewerFlags) IsInShoppingCart(recipeID uuid.UUID) bool { return f.InCart[recipeID] }
func (f ViewerFlags) IsSubscribed(authorID uuid.UUID) bool     { return f.Subscribed[authorID] }

type ViewerService interface {
	LoadViewerFlags(ctx context.Context, viewerID uuid.UUID, recipeIDs, authorIDs []uuid.UUID) (ViewerFlags, error)
}

type viewerService struct {
	log              *logger.Logger
	favoriteRepo     repos.MembershipRepo
	shoppingCartRepo repos.MembershipRepo
	subscriptionRepo repos.SubscriptionRepo
}

func NewViewerService(log *logger.Logger, favoriteRepo, shoppingCartRepo repos.MembershipRepo, subscriptionRepo repos.SubscriptionRepo) ViewerService {
	return &viewerService{
		log:              log.With("service", "ViewerService"),
		favoriteRepo:     favoriteRepo,
		shoppingCartRepo: shoppingCartRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// LoadViewerFlags resolves the three flag sets in parallel. An anonymous
// viewer gets empty flags without touching the store.
func (vs *viewerService) LoadViewerFlags(ctx context.Context, viewerID uuid.UUID, recipeIDs, authorIDs []uuid.UUID) (ViewerFlags, error) {
	var flags ViewerFlags
	if viewerID == uuid.Nil {
		return flags, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	if len(recipeIDs) > 0 {
		g.Go(func() error {
			m, err := vs.favoriteRepo.RecipeIDsMarked(dbc, viewerID, recipeIDs)
			if err != nil {
				return fmt.Errorf("load favorited flags: %w", err)
			}
			flags.Favorited = m
			return nil
		})
		g.Go(func() error {
			m, err := vs.shoppingCartRepo.RecipeIDsMarked(dbc, viewerID, recipeIDs)
			if err != nil {
				return fmt.Errorf("load shopping cart flags: %w", err)
			}
			flags.InCart = m
			return nil
		})
	}
	if len(authorIDs) > 0 {
		g.Go(func() error {
			m, err := vs.subscriptionRepo.AuthorIDsFollowed(dbc, viewerID, authorIDs)
			if err != nil {
				return fmt.Errorf("load subscription flags: %w", err)
			}
			flags.Subscribed = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		vs.log.Warn("Viewer flag lookup failed", "error", err)
		return ViewerFlags{}, err
	}
	return flags, nil
}
