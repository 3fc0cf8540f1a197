package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestAggregateAmountsSumsPerIngredient(t *testing.T) {
	eggs := &types.Ingredient{ID: uuid.New(), Name: "eggs", MeasurementUnit: "pcs"}
	flour := &types.Ingredient{ID: uuid.New(), Name: "flour", MeasurementUnit: "cup"}
	rows := []*types.IngredientAmount{
		{IngredientID: eggs.ID, Ingredient: eggs, Amount: 2},
		{IngredientID: eggs.ID, Ingredient: eggs, Amount: 3},
		{IngredientID: flour.ID, Ingredient: flour, Amount: 1},
	}

	lines := AggregateAmounts(rows)
	require.Len(t, lines, 2)
	require.Equal(t, "eggs", lines[0].Name)
	require.EqualValues(t, 5, lines[0].Amount)
	require.Equal(t, "flour", lines[1].Name)
	require.EqualValues(t, 1, lines[1].Amount)
}

func TestRenderShoppingList(t *testing.T) {
	require.Equal(t, ShoppingListHeader, RenderShoppingList(nil))

	out := RenderShoppingList([]ShoppingListLine{
		{Name: "eggs", Unit: "pcs", Amount: 5},
		{Name: "flour", Unit: "cup", Amount: 1},
	})
	require.Equal(t, "Shopping list:\n\neggs, 5 pcs\nflour, 1 cup\n", out)
}

func TestBuildShoppingListAcrossCart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cook := testutil.SeedUser(t, ctx, h.db, "cook")
	shopper := testutil.SeedUser(t, ctx, h.db, "shopper")
	tag := testutil.SeedTag(t, ctx, h.db, "dinner")
	eggs := testutil.SeedIngredient(t, ctx, h.db, "eggs", "pcs")
	flour := testutil.SeedIngredient(t, ctx, h.db, "flour", "cup")

	a := testutil.SeedRecipe(t, ctx, h.db, cook, "A", []*types.Tag{tag}, testutil.AmountSeed{Ingredient: eggs, Amount: 2})
	b := testutil.SeedRecipe(t, ctx, h.db, cook, "B", []*types.Tag{tag},
		testutil.AmountSeed{Ingredient: eggs, Amount: 3},
		testutil.AmountSeed{Ingredient: flour, Amount: 1},
	)
	// not in the cart
	testutil.SeedRecipe(t, ctx, h.db, cook, "C", []*types.Tag{tag}, testutil.AmountSeed{Ingredient: flour, Amount: 50})

	dbc := dbctx.Context{Ctx: ctx}
	require.NoError(t, h.cart.Create(dbc, shopper.ID, a.ID))
	require.NoError(t, h.cart.Create(dbc, shopper.ID, b.ID))

	svc := NewShoppingListService(h.log, h.cart, h.amounts)
	lines, err := svc.BuildShoppingList(ctx, shopper.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	text := RenderShoppingList(lines)
	require.Equal(t, 1, strings.Count(text, "eggs, 5 pcs\n"))
	require.Equal(t, 1, strings.Count(text, "flour, 1 cup\n"))
}

func TestBuildShoppingListEmptyCart(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, h.db, "nobody")

	svc := NewShoppingListService(h.log, h.cart, h.amounts)
	lines, err := svc.BuildShoppingList(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, lines)
	require.Equal(t, ShoppingListHeader, RenderShoppingList(lines))
}
