package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Tag {
	tb.Helper()
	t := &types.Tag{
		ID:    uuid.New(),
		Name:  "Tag " + slug,
		Slug:  slug,
		Color: fmt.Sprintf("#%06x", uuid.New().ID()&0xffffff),
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return t
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, name, unit string) *types.Ingredient {
	tb.Helper()
	ing := &types.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

// AmountSeed pairs an ingredient with an amount for SeedRecipe.
type AmountSeed struct {
	Ingredient *types.Ingredient
	Amount     int
}

// SeedRecipe writes a recipe with its tag links and amount rows directly.
func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, author *types.User, name string, tags []*types.Tag, amounts ...AmountSeed) *types.Recipe {
	tb.Helper()
	rec := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        name,
		Text:        "text of " + name,
		Image:       "recipes/images/" + uuid.NewString() + ".png",
		CookingTime: 10,
	}
	if err := tx.WithContext(ctx).Omit("Tags", "IngredientAmounts").Create(rec).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	if len(tags) > 0 {
		if err := tx.WithContext(ctx).Model(rec).Association("Tags").Append(tags); err != nil {
			tb.Fatalf("seed recipe tags: %v", err)
		}
	}
	for _, a := range amounts {
		row := &types.IngredientAmount{RecipeID: rec.ID, IngredientID: a.Ingredient.ID, Amount: a.Amount}
		if err := tx.WithContext(ctx).Omit("Ingredient").Create(row).Error; err != nil {
			tb.Fatalf("seed amount: %v", err)
		}
	}
	return rec
}
