package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Repos struct {
	User             repos.UserRepo
	UserToken        repos.UserTokenRepo
	Subscription     repos.SubscriptionRepo
	Tag              repos.TagRepo
	Ingredient       repos.IngredientRepo
	Recipe           repos.RecipeRepo
	IngredientAmount repos.IngredientAmountRepo
	Favorite         repos.MembershipRepo
	ShoppingCart     repos.MembershipRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		UserToken:        repos.NewUserTokenRepo(db, log),
		Subscription:     repos.NewSubscriptionRepo(db, log),
		Tag:              repos.NewTagRepo(db, log),
		Ingredient:       repos.NewIngredientRepo(db, log),
		Recipe:           repos.NewRecipeRepo(db, log),
		IngredientAmount: repos.NewIngredientAmountRepo(db, log),
		Favorite:         repos.NewFavoriteRepo(db, log),
		ShoppingCart:     repos.NewShoppingCartRepo(db, log),
	}
}
