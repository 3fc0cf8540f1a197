package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/cache"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type Services struct {
	Auth            services.AuthService
	User            services.UserService
	Subscription    services.SubscriptionService
	Reference       services.ReferenceService
	ReferenceLoader services.ReferenceLoader
	Image           services.ImageService
	Recipe          services.RecipeService
	Membership      services.MembershipService
	ShoppingList    services.ShoppingListService
	Viewer          services.ViewerService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c cache.Cache, store objectstore.Store) Services {
	log.Info("Wiring services...")

	reference := services.NewReferenceService(log, c, r.Tag, r.Ingredient)
	images := services.NewImageService(log, store, cfg.Recipes.ImagePrefix)
	assembly := aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log},
		Recipes:     r.Recipe,
		Amounts:     r.IngredientAmount,
		Tags:        r.Tag,
		Ingredients: r.Ingredient,
	})
	bounds := services.Bounds{
		CookingTimeMin: cfg.Recipes.CookingTimeMin,
		CookingTimeMax: cfg.Recipes.CookingTimeMax,
		AmountMin:      cfg.Recipes.AmountMin,
		AmountMax:      cfg.Recipes.AmountMax,
	}

	return Services{
		Auth:            services.NewAuthService(db, log, r.User, r.UserToken, cfg.Auth.JWTSecretKey, cfg.Auth.AccessTokenTTL.Duration),
		User:            services.NewUserService(db, log, r.User),
		Subscription:    services.NewSubscriptionService(log, r.User, r.Subscription, r.Recipe),
		Reference:       reference,
		ReferenceLoader: services.NewReferenceLoader(log, r.Tag, r.Ingredient, reference),
		Image:           images,
		Recipe:          services.NewRecipeService(log, r.Recipe, assembly, images, bounds),
		Membership:      services.NewMembershipService(log, r.Recipe, r.Favorite, r.ShoppingCart),
		ShoppingList:    services.NewShoppingListService(log, r.ShoppingCart, r.IngredientAmount),
		Viewer:          services.NewViewerService(log, r.Favorite, r.ShoppingCart, r.Subscription),
	}
}
