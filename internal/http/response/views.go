package response

import (
	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

// Flags answers the caller-relative questions a view needs.
type Flags interface {
	IsFavorited(recipeID uuid.UUID) bool
	IsInShoppingCart(recipeID uuid.UUID) bool
	IsSubscribed(authorID uuid.UUID) bool
}

// ImageURL turns a stored image key into a public URL.
type ImageURL func(key string) string

type noFlags struct{}

func (noFlags) IsFavorited(uuid.UUID) bool      { return false }
func (noFlags) IsInShoppingCart(uuid.UUID) bool { return false }
func (noFlags) IsSubscribed(uuid.UUID) bool     { return false }

// NoFlags is the flag set of an anonymous caller.
var NoFlags Flags = noFlags{}

type TagOut struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

type IngredientOut struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// IngredientAmountOut is an ingredient as listed inside a recipe; ID is the ingredient's id.
type IngredientAmountOut struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type CreatedUserOut struct {
	Email     string    `json:"email"`
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type UserOut struct {
	CreatedUserOut
	IsSubscribed bool `json:"is_subscribed"`
}

type BriefRecipeOut struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type RecipeOut struct {
	ID               uuid.UUID             `json:"id"`
	Tags             []TagOut              `json:"tags"`
	Author           UserOut               `json:"author"`
	Ingredients      []IngredientAmountOut `json:"ingredients"`
	IsFavorited      bool                  `json:"is_favorited"`
	IsInShoppingCart bool                  `json:"is_in_shopping_cart"`
	Name             string                `json:"name"`
	Image            string                `json:"image"`
	Text             string                `json:"text"`
	CookingTime      int                   `json:"cooking_time"`
}

type SubscriberOut struct {
	UserOut
	Recipes      []BriefRecipeOut `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

func TagView(t *types.Tag) TagOut {
	return TagOut{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func TagViews(tags []*types.Tag) []TagOut {
	out := make([]TagOut, 0, len(tags))
	for _, t := range tags {
		if t != nil {
			out = append(out, TagView(t))
		}
	}
	return out
}

func IngredientView(i *types.Ingredient) IngredientOut {
	return IngredientOut{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func IngredientViews(list []*types.Ingredient) []IngredientOut {
	out := make([]IngredientOut, 0, len(list))
	for _, i := range list {
		if i != nil {
			out = append(out, IngredientView(i))
		}
	}
	return out
}

func IngredientAmountView(a *types.IngredientAmount) IngredientAmountOut {
	out := IngredientAmountOut{ID: a.IngredientID, Amount: a.Amount}
	if a.Ingredient != nil {
		out.Name = a.Ingredient.Name
		out.MeasurementUnit = a.Ingredient.MeasurementUnit
	}
	return out
}

func CreatedUserView(u *types.User) CreatedUserOut {
	return CreatedUserOut{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func UserView(u *types.User, flags Flags) UserOut {
	return UserOut{CreatedUserOut: CreatedUserView(u), IsSubscribed: flags.IsSubscribed(u.ID)}
}

func BriefRecipeView(r *types.Recipe, imageURL ImageURL) BriefRecipeOut {
	return BriefRecipeOut{
		ID:          r.ID,
		Name:        r.Name,
		Image:       imageURL(r.Image),
		CookingTime: r.CookingTime,
	}
}

func BriefRecipeViews(list []*types.Recipe, imageURL ImageURL) []BriefRecipeOut {
	out := make([]BriefRecipeOut, 0, len(list))
	for _, r := range list {
		if r != nil {
			out = append(out, BriefRecipeView(r, imageURL))
		}
	}
	return out
}

// RecipeView is the full recipe: the brief fields plus tags, author,
// ingredient amounts and the caller's flags.
func RecipeView(r *types.Recipe, flags Flags, imageURL ImageURL) RecipeOut {
	brief := BriefRecipeView(r, imageURL)
	out := RecipeOut{
		ID:               brief.ID,
		Tags:             TagViews(r.Tags),
		Ingredients:      make([]IngredientAmountOut, 0, len(r.IngredientAmounts)),
		IsFavorited:      flags.IsFavorited(r.ID),
		IsInShoppingCart: flags.IsInShoppingCart(r.ID),
		Name:             brief.Name,
		Image:            brief.Image,
		Text:             r.Text,
		CookingTime:      brief.CookingTime,
	}
	if r.Author != nil {
		out.Author = UserView(r.Author, flags)
	}
	for _, a := range r.IngredientAmounts {
		if a != nil {
			out.Ingredients = append(out.Ingredients, IngredientAmountView(a))
		}
	}
	return out
}

func RecipeViews(list []*types.Recipe, flags Flags, imageURL ImageURL) []RecipeOut {
	out := make([]RecipeOut, 0, len(list))
	for _, r := range list {
		if r != nil {
			out = append(out, RecipeView(r, flags, imageURL))
		}
	}
	return out
}

// SubscriberView is an author with a capped preview of their recipes and
// the uncapped recipe count.
func SubscriberView(u *types.User, flags Flags, recipes []*types.Recipe, recipesCount int64, imageURL ImageURL) SubscriberOut {
	return SubscriberOut{
		UserOut:      UserView(u, flags),
		Recipes:      BriefRecipeViews(recipes, imageURL),
		RecipesCount: recipesCount,
	}
}
