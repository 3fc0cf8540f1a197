package app

import (
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/http"
	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health     *httpH.HealthHandler
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Tag        *httpH.TagHandler
	Ingredient *httpH.IngredientHandler
	Recipe     *httpH.RecipeHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	paging := httpH.Paging{DefaultLimit: cfg.Recipes.PageSize, MaxLimit: cfg.Recipes.MaxPageSize}
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		Auth:       httpH.NewAuthHandler(services.Auth),
		User:       httpH.NewUserHandler(services.User, services.Subscription, services.Viewer, services.Image, paging),
		Tag:        httpH.NewTagHandler(services.Reference),
		Ingredient: httpH.NewIngredientHandler(services.Reference),
		Recipe:     httpH.NewRecipeHandler(services.Recipe, services.Membership, services.ShoppingList, services.Viewer, services.Image, paging),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	routerCfg := http.RouterConfig{
		Log:               log,
		ServiceName:       cfg.ServiceName,
		CORSAllowOrigins:  cfg.CORSAllowOrigins,
		RequestTimeout:    cfg.RequestTimeout.Duration,
		AuthMiddleware:    middleware.Auth,
		AuthHandler:       handlers.Auth,
		UserHandler:       handlers.User,
		TagHandler:        handlers.Tag,
		IngredientHandler: handlers.Ingredient,
		RecipeHandler:     handlers.Recipe,
		HealthHandler:     handlers.Health,
	}
	if mode, _ := objectstore.ParseMode(cfg.Storage.Mode); mode == objectstore.ModeLocal {
		routerCfg.MediaRoot = cfg.Storage.MediaRoot
		routerCfg.MediaPath = mediaPath(cfg.Storage.MediaURL)
	}
	return http.NewServer(routerCfg)
}

// mediaPath extracts the route prefix from MEDIA_URL, which may be a bare
// path ("/media") or an absolute URL ("https://cdn.example/media").
func mediaPath(mediaURL string) string {
	if u, err := url.Parse(strings.TrimSpace(mediaURL)); err == nil && u.Path != "" {
		return u.Path
	}
	return "/media"
}
