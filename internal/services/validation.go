package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

// Bounds are the inclusive limits for cooking_time (minutes) and ingredient amounts.
type Bounds struct {
	CookingTimeMin int
	CookingTimeMax int
	AmountMin      int
	AmountMax      int
}

func DefaultBounds() Bounds {
	return Bounds{
		CookingTimeMin: 1,
		CookingTimeMax: 10080,
		AmountMin:      1,
		AmountMax:      10000,
	}
}

// normalized fills zero fields from DefaultBounds and never lets a minimum drop below 1.
func (b Bounds) normalized() Bounds {
	def := DefaultBounds()
	if b.CookingTimeMin <= 0 {
		b.CookingTimeMin = def.CookingTimeMin
	}
	if b.CookingTimeMax <= 0 {
		b.CookingTimeMax = def.CookingTimeMax
	}
	if b.AmountMin <= 0 {
		b.AmountMin = def.AmountMin
	}
	if b.AmountMax <= 0 {
		b.AmountMax = def.AmountMax
	}
	return b
}

type IngredientInput struct {
	ID     uuid.UUID
	Amount int
}

// RecipeInput is a proposed recipe write before anything is persisted.
// Image holds the raw upload (a data URI); it is decoded after validation.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	Ingredients []IngredientInput
	Tags        []uuid.UUID
}

const (
	msgCookingTimePositive = "Cooking time must be more than 0 min"
	msgMustHaveIngredients = "must have ingredients"
	msgIngredientsRepeat   = "ingredients should not repeat"
	msgMustHaveTags        = "must have tags"
	msgTagsRepeat          = "tags should not repeat"
	msgMustHaveImage       = "must have image"
	msgFieldRequired       = "This field is required."

	msgAlreadySubscribed = "already subscribed"
	msgSelfSubscribe     = "can't subscribe to yourself"
	msgNoSuchSubscribe   = "no such subscribe"
	msgNoSuchAuthor      = "no such author"
	msgNoSuchRecipe      = "no such recipe"
)

// ValidateRecipeInput runs every local check on a recipe payload and
// reports all failures at once, keyed by field.
func ValidateRecipeInput(in RecipeInput, bounds Bounds, requireImage bool) error {
	const op = "Recipes.Recipe.Validate"
	b := bounds.normalized()
	errs := domainagg.FieldErrors{}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs.Add("name", msgFieldRequired)
	case len([]rune(name)) > 200:
		errs.Add("name", "Ensure this field has no more than 200 characters.")
	}
	if strings.TrimSpace(in.Text) == "" {
		errs.Add("text", msgFieldRequired)
	}

	switch {
	case in.CookingTime <= 0:
		errs.Add("cooking_time", msgCookingTimePositive)
	case in.CookingTime < b.CookingTimeMin:
		errs.Add("cooking_time", fmt.Sprintf("Ensure this value is greater than or equal to %d.", b.CookingTimeMin))
	case in.CookingTime > b.CookingTimeMax:
		errs.Add("cooking_time", fmt.Sprintf("Ensure this value is less than or equal to %d.", b.CookingTimeMax))
	}

	if len(in.Ingredients) == 0 {
		errs.Add("ingredients", msgMustHaveIngredients)
	}
	seenIngredients := make(map[uuid.UUID]bool, len(in.Ingredients))
	repeated, outOfBounds := false, false
	for _, ing := range in.Ingredients {
		if ing.ID == uuid.Nil {
			errs.Add("ingredients", "Ingredient id is required.")
			continue
		}
		if seenIngredients[ing.ID] {
			repeated = true
		}
		seenIngredients[ing.ID] = true
		if ing.Amount < b.AmountMin || ing.Amount > b.AmountMax {
			outOfBounds = true
		}
	}
	if repeated {
		errs.Add("ingredients", msgIngredientsRepeat)
	}
	if outOfBounds {
		errs.Add("ingredients", fmt.Sprintf("Amount must be between %d and %d.", b.AmountMin, b.AmountMax))
	}

	if len(in.Tags) == 0 {
		errs.Add("tags", msgMustHaveTags)
	}
	seenTags := make(map[uuid.UUID]bool, len(in.Tags))
	for _, id := range in.Tags {
		if seenTags[id] {
			errs.Add("tags", msgTagsRepeat)
			break
		}
		seenTags[id] = true
	}

	if requireImage && strings.TrimSpace(in.Image) == "" {
		errs.Add("image", msgMustHaveImage)
	}

	return domainagg.NewValidation(op, errs)
}

// ValidateSubscription rejects a follow edge that already exists or points at the follower.
func ValidateSubscription(followerID, authorID uuid.UUID, alreadyFollows bool) error {
	const op = "Users.Subscription.Validate"
	if alreadyFollows {
		return domainagg.NewError(domainagg.CodeConflict, op, msgAlreadySubscribed, nil)
	}
	if followerID == authorID {
		return domainagg.NewError(domainagg.CodeValidation, op, msgSelfSubscribe, nil)
	}
	return nil
}

// ValidateMembership rejects marking a recipe that is already marked for the user.
func ValidateMembership(kind types.MembershipKind, alreadyMarked bool) error {
	if !alreadyMarked {
		return nil
	}
	return domainagg.NewError(domainagg.CodeConflict, "Recipes."+membershipLabel(kind)+".Validate", alreadyMarkedMessage(kind), nil)
}

func alreadyMarkedMessage(kind types.MembershipKind) string {
	switch kind {
	case types.MembershipShoppingCart:
		return "Recipe already in cart"
	default:
		return "Recipe already in favorite"
	}
}

func membershipLabel(kind types.MembershipKind) string {
	switch kind {
	case types.MembershipShoppingCart:
		return "ShoppingCart"
	default:
		return "Favorite"
	}
}

func toAggregateInputs(in RecipeInput) ([]domainagg.AmountInput, []uuid.UUID) {
	amounts := make([]domainagg.AmountInput, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		amounts = append(amounts, domainagg.AmountInput{IngredientID: ing.ID, Amount: ing.Amount})
	}
	tags := append([]uuid.UUID(nil), in.Tags...)
	return amounts, tags
}
