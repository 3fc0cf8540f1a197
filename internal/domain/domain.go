package domain

import (
	"github.com/yungbote/foodgram-backend/internal/domain/auth"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

type (
	User         = user.User
	Subscription = user.Subscription
	UserToken    = auth.UserToken

	Tag              = recipes.Tag
	Ingredient       = recipes.Ingredient
	IngredientAmount = recipes.IngredientAmount
	Recipe           = recipes.Recipe
	Favorite         = recipes.Favorite
	ShoppingCart     = recipes.ShoppingCart
	MembershipKind   = recipes.MembershipKind
)

const (
	MembershipFavorite     = recipes.MembershipFavorite
	MembershipShoppingCart = recipes.MembershipShoppingCart
)

// AllModels lists every persisted entity in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&UserToken{},
		&Subscription{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&IngredientAmount{},
		&Favorite{},
		&ShoppingCart{},
	}
}
