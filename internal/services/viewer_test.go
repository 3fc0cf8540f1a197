package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

func TestViewerFlagsAnonymousAreFalseWithoutQueries(t *testing.T) {
	// nil repos: any lookup would panic
	svc := NewViewerService(logger.Nop(), nil, nil, nil)
	recipeID, authorID := uuid.New(), uuid.New()

	flags, err := svc.LoadViewerFlags(context.Background(), uuid.Nil, []uuid.UUID{recipeID}, []uuid.UUID{authorID})
	require.NoError(t, err)
	require.False(t, flags.IsFavorited(recipeID))
	require.False(t, flags.IsInShoppingCart(recipeID))
	require.False(t, flags.IsSubscribed(authorID))
}

func TestViewerFlagsReflectStoredMarkers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cook := testutil.SeedUser(t, ctx, h.db, "cook")
	viewer := testutil.SeedUser(t, ctx, h.db, "viewer")
	tag := testutil.SeedTag(t, ctx, h.db, "bbq")
	liked := testutil.SeedRecipe(t, ctx, h.db, cook, "Ribs", []*types.Tag{tag})
	other := testutil.SeedRecipe(t, ctx, h.db, cook, "Wings", []*types.Tag{tag})

	dbc := dbctx.Context{Ctx: ctx}
	require.NoError(t, h.favorites.Create(dbc, viewer.ID, liked.ID))
	require.NoError(t, h.cart.Create(dbc, viewer.ID, other.ID))
	_, err := h.subs.Create(dbc, viewer.ID, cook.ID)
	require.NoError(t, err)

	svc := NewViewerService(h.log, h.favorites, h.cart, h.subs)
	recipeIDs := []uuid.UUID{liked.ID, other.ID}
	authorIDs := []uuid.UUID{cook.ID, viewer.ID}

	flags, err := svc.LoadViewerFlags(ctx, viewer.ID, recipeIDs, authorIDs)
	require.NoError(t, err)
	require.True(t, flags.IsFavorited(liked.ID))
	require.False(t, flags.IsFavorited(other.ID))
	require.True(t, flags.IsInShoppingCart(other.ID))
	require.False(t, flags.IsInShoppingCart(liked.ID))
	require.True(t, flags.IsSubscribed(cook.ID))
	require.False(t, flags.IsSubscribed(viewer.ID))

	// same data, anonymous caller
	flags, err = svc.LoadViewerFlags(ctx, uuid.Nil, recipeIDs, authorIDs)
	require.NoError(t, err)
	require.False(t, flags.IsFavorited(liked.ID))
	require.False(t, flags.IsInShoppingCart(other.ID))
	require.False(t, flags.IsSubscribed(cook.ID))
}
