package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const (
	ShoppingListHeader   = "Shopping list:\n\n"
	ShoppingListFilename = "shopping_list.txt"
)

// ShoppingListLine is the summed amount of one ingredient across a cart.
type ShoppingListLine struct {
	IngredientID uuid.UUID
	Name         string
	Unit         string
	Amount       int64
}

type ShoppingListService interface {
	BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]ShoppingListLine, error)
}

type shoppingListService struct {
	log              *logger.Logger
	shoppingCartRepo repos.MembershipRepo
	amountRepo       repos.IngredientAmountRepo
}

func NewShoppingListService(log *logger.Logger, shoppingCartRepo repos.MembershipRepo, amountRepo repos.IngredientAmountRepo) ShoppingListService {
	return &shoppingListService{
		log:              log.With("service", "ShoppingListService"),
		shoppingCartRepo: shoppingCartRepo,
		amountRepo:       amountRepo,
	}
}

// BuildShoppingList sums every ingredient amount across the recipes in the
// user's cart. An empty cart yields no lines.
func (ss *shoppingListService) BuildShoppingList(ctx context.Context, userID uuid.UUID) ([]ShoppingListLine, error) {
	dbc := dbctx.Context{Ctx: ctx}
	recipeIDs, err := ss.shoppingCartRepo.RecipeIDsByUser(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(recipeIDs) == 0 {
		return []ShoppingListLine{}, nil
	}
	rows, err := ss.amountRepo.GetByRecipeIDs(dbc, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load cart ingredients: %w", err)
	}
	lines := AggregateAmounts(rows)
	ss.log.Debug("Shopping list built", "user_id", userID, "recipes", len(recipeIDs), "lines", len(lines))
	return lines, nil
}

// AggregateAmounts groups rows by ingredient id and sums the amounts. Lines
// come back ordered by name, then unit, then id.
func AggregateAmounts(rows []*types.IngredientAmount) []ShoppingListLine {
	byID := make(map[uuid.UUID]*ShoppingListLine)
	for _, row := range rows {
		if row == nil {
			continue
		}
		line, ok := byID[row.IngredientID]
		if !ok {
			line = &ShoppingListLine{IngredientID: row.IngredientID}
			if row.Ingredient != nil {
				line.Name = row.Ingredient.Name
				line.Unit = row.Ingredient.MeasurementUnit
			}
			byID[row.IngredientID] = line
		}
		line.Amount += int64(row.Amount)
	}

	out := make([]ShoppingListLine, 0, len(byID))
	for _, line := range byID {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Unit != out[j].Unit {
			return out[i].Unit < out[j].Unit
		}
		return out[i].IngredientID.String() < out[j].IngredientID.String()
	})
	return out
}

// RenderShoppingList formats lines as "<name>, <amount> <unit>" under a fixed header.
func RenderShoppingList(lines []ShoppingListLine) string {
	var b strings.Builder
	b.WriteString(ShoppingListHeader)
	for _, l := range lines {
		fmt.Fprintf(&b, "%s, %d %s\n", l.Name, l.Amount, l.Unit)
	}
	return b.String()
}
