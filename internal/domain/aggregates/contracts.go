package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

// WriteTxOwnership defines who owns write transaction boundaries.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate means aggregate write methods start/manage atomic DB transactions internally.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// Contract describes aggregate-level policy expectations.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	Notes            string
}

// Aggregate is the common marker for all aggregate contracts.
type Aggregate interface {
	Contract() Contract
}

// RecipeFields are the scalar columns of a recipe write.
type RecipeFields struct {
	Name        string
	Text        string
	Image       string // object key; empty on update keeps the stored image
	CookingTime int
}

// AmountInput is one (ingredient, amount) pair of a recipe write.
type AmountInput struct {
	IngredientID uuid.UUID
	Amount       int
}

// RecipeAggregate binds a recipe row to its tag links and ingredient amount
// rows. Every write runs in one transaction and replaces the full set of
// links; nothing is merged.
type RecipeAggregate interface {
	Aggregate
	Create(ctx context.Context, authorID uuid.UUID, fields RecipeFields, amounts []AmountInput, tagIDs []uuid.UUID) (*recipes.Recipe, error)
	Update(ctx context.Context, recipeID uuid.UUID, fields RecipeFields, amounts []AmountInput, tagIDs []uuid.UUID) (*recipes.Recipe, error)
}

var RecipeAggregateContract = Contract{
	Name:             "recipe",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	Notes:            "recipe row, tag links and ingredient amount rows commit together; updates replace links wholesale",
}
