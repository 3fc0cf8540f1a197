package aggregates

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

type RecipeAggregateDeps struct {
	Base BaseDeps

	Recipes     repos.RecipeRepo
	Amounts     repos.IngredientAmountRepo
	Tags        repos.TagRepo
	Ingredients repos.IngredientRepo
}

type recipeAggregate struct {
	deps RecipeAggregateDeps
}

func NewRecipeAggregate(deps RecipeAggregateDeps) domainagg.RecipeAggregate {
	deps.Base = deps.Base.withDefaults()
	return &recipeAggregate{deps: deps}
}

func (a *recipeAggregate) Contract() domainagg.Contract {
	return domainagg.RecipeAggregateContract
}

func (a *recipeAggregate) configured(op string) error {
	if a.deps.Recipes == nil || a.deps.Amounts == nil || a.deps.Tags == nil || a.deps.Ingredients == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}
	return nil
}

func (a *recipeAggregate) Create(ctx context.Context, authorID uuid.UUID, fields domainagg.RecipeFields, amounts []domainagg.AmountInput, tagIDs []uuid.UUID) (*types.Recipe, error) {
	const op = "Recipes.Recipe.Create"
	if err := a.configured(op); err != nil {
		return nil, err
	}
	if authorID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing author_id", nil)
	}
	if err := checkShape(op, fields, amounts, tagIDs, true); err != nil {
		return nil, err
	}

	var out *types.Recipe
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		tags, err := a.resolveReferences(dbc, op, amounts, tagIDs)
		if err != nil {
			return err
		}

		rec := &types.Recipe{
			AuthorID:    authorID,
			Name:        strings.TrimSpace(fields.Name),
			Text:        fields.Text,
			Image:       fields.Image,
			CookingTime: fields.CookingTime,
		}
		if _, err := a.deps.Recipes.Create(dbc, rec); err != nil {
			return err
		}
		if err := a.writeLinks(dbc, rec, amounts, tags); err != nil {
			return err
		}

		loaded, err := a.deps.Recipes.GetByID(dbc, rec.ID)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the scalar fields and replaces every tag link and amount
// row with the supplied sets. An empty fields.Image keeps the stored image.
func (a *recipeAggregate) Update(ctx context.Context, recipeID uuid.UUID, fields domainagg.RecipeFields, amounts []domainagg.AmountInput, tagIDs []uuid.UUID) (*types.Recipe, error) {
	const op = "Recipes.Recipe.Update"
	if err := a.configured(op); err != nil {
		return nil, err
	}
	if err := checkShape(op, fields, amounts, tagIDs, false); err != nil {
		return nil, err
	}

	var out *types.Recipe
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		current, err := a.deps.Recipes.GetByID(dbc, recipeID)
		if err != nil {
			return err
		}
		if current == nil {
			return domainagg.NotFound(op, fmt.Sprintf("recipe not found: %s", recipeID))
		}

		tags, err := a.resolveReferences(dbc, op, amounts, tagIDs)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         strings.TrimSpace(fields.Name),
			"text":         fields.Text,
			"cooking_time": fields.CookingTime,
		}
		if fields.Image != "" {
			updates["image"] = fields.Image
		}
		if err := a.deps.Recipes.UpdateFields(dbc, recipeID, updates); err != nil {
			return err
		}

		if _, err := a.deps.Amounts.DeleteByRecipeID(dbc, recipeID); err != nil {
			return err
		}
		if err := a.writeLinks(dbc, &types.Recipe{ID: recipeID}, amounts, tags); err != nil {
			return err
		}

		loaded, err := a.deps.Recipes.GetByID(dbc, recipeID)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *recipeAggregate) writeLinks(dbc dbctx.Context, rec *types.Recipe, amounts []domainagg.AmountInput, tags []*types.Tag) error {
	if err := a.deps.Recipes.ReplaceTags(dbc, rec, tags); err != nil {
		return err
	}
	rows := make([]*types.IngredientAmount, 0, len(amounts))
	for _, in := range amounts {
		rows = append(rows, &types.IngredientAmount{
			RecipeID:     rec.ID,
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
		})
	}
	_, err := a.deps.Amounts.BulkCreate(dbc, rows)
	return err
}

// resolveReferences loads the referenced tags and confirms every ingredient
// exists. Unknown ids are reported as field errors.
func (a *recipeAggregate) resolveReferences(dbc dbctx.Context, op string, amounts []domainagg.AmountInput, tagIDs []uuid.UUID) ([]*types.Tag, error) {
	fields := domainagg.FieldErrors{}

	tags, err := a.deps.Tags.GetByIDs(dbc, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		found := make(map[uuid.UUID]bool, len(tags))
		for _, t := range tags {
			found[t.ID] = true
		}
		for _, id := range tagIDs {
			if !found[id] {
				fields.Add("tags", fmt.Sprintf("Invalid pk %q - object does not exist.", id.String()))
			}
		}
	}

	ingredientIDs := make([]uuid.UUID, 0, len(amounts))
	for _, in := range amounts {
		ingredientIDs = append(ingredientIDs, in.IngredientID)
	}
	ingredients, err := a.deps.Ingredients.GetByIDs(dbc, ingredientIDs)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ingredientIDs) {
		found := make(map[uuid.UUID]bool, len(ingredients))
		for _, ing := range ingredients {
			found[ing.ID] = true
		}
		for _, id := range ingredientIDs {
			if !found[id] {
				fields.Add("ingredients", fmt.Sprintf("Invalid pk %q - object does not exist.", id.String()))
			}
		}
	}

	if err := domainagg.NewValidation(op, fields); err != nil {
		return nil, err
	}
	return tags, nil
}

// checkShape guards the structural invariants that must hold for any stored
// recipe regardless of caller-side validation.
func checkShape(op string, fields domainagg.RecipeFields, amounts []domainagg.AmountInput, tagIDs []uuid.UUID, requireImage bool) error {
	errs := domainagg.FieldErrors{}
	if len(tagIDs) == 0 {
		errs.Add("tags", "At least one tag is required.")
	}
	seenTags := map[uuid.UUID]bool{}
	for _, id := range tagIDs {
		if seenTags[id] {
			errs.Add("tags", "Tags must not repeat.")
			break
		}
		seenTags[id] = true
	}
	if len(amounts) == 0 {
		errs.Add("ingredients", "At least one ingredient is required.")
	}
	seenIngredients := map[uuid.UUID]bool{}
	for _, in := range amounts {
		if seenIngredients[in.IngredientID] {
			errs.Add("ingredients", "Ingredients must not repeat.")
			break
		}
		seenIngredients[in.IngredientID] = true
	}
	for _, in := range amounts {
		if in.Amount <= 0 {
			errs.Add("ingredients", "Amount must be positive.")
			break
		}
	}
	if fields.CookingTime <= 0 {
		errs.Add("cooking_time", "Cooking time must be positive.")
	}
	if requireImage && strings.TrimSpace(fields.Image) == "" {
		errs.Add("image", "Image is required.")
	}
	return domainagg.NewValidation(op, errs)
}
