package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos/auth"
	"github.com/yungbote/foodgram-backend/internal/data/repos/recipes"
	"github.com/yungbote/foodgram-backend/internal/data/repos/user"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type SubscriptionRepo = user.SubscriptionRepo
type UserTokenRepo = auth.UserTokenRepo

type TagRepo = recipes.TagRepo
type IngredientRepo = recipes.IngredientRepo
type RecipeRepo = recipes.RecipeRepo
type RecipeFilter = recipes.RecipeFilter
type IngredientAmountRepo = recipes.IngredientAmountRepo
type MembershipRepo = recipes.MembershipRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }
func NewSubscriptionRepo(db *gorm.DB, log *logger.Logger) SubscriptionRepo {
	return user.NewSubscriptionRepo(db, log)
}
func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}

func NewTagRepo(db *gorm.DB, log *logger.Logger) TagRepo { return recipes.NewTagRepo(db, log) }
func NewIngredientRepo(db *gorm.DB, log *logger.Logger) IngredientRepo {
	return recipes.NewIngredientRepo(db, log)
}
func NewRecipeRepo(db *gorm.DB, log *logger.Logger) RecipeRepo { return recipes.NewRecipeRepo(db, log) }
func NewIngredientAmountRepo(db *gorm.DB, log *logger.Logger) IngredientAmountRepo {
	return recipes.NewIngredientAmountRepo(db, log)
}

func NewFavoriteRepo(db *gorm.DB, log *logger.Logger) MembershipRepo {
	r, _ := recipes.NewMembershipRepo(db, log, types.MembershipFavorite)
	return r
}

func NewShoppingCartRepo(db *gorm.DB, log *logger.Logger) MembershipRepo {
	r, _ := recipes.NewMembershipRepo(db, log, types.MembershipShoppingCart)
	return r
}
