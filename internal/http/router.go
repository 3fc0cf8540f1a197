package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log              *logger.Logger
	ServiceName      string
	CORSAllowOrigins []string
	RequestTimeout   time.Duration

	// MediaRoot is served under MediaPath when images live on the local disk.
	MediaRoot string
	MediaPath string

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler       *httpH.AuthHandler
	UserHandler       *httpH.UserHandler
	TagHandler        *httpH.TagHandler
	IngredientHandler *httpH.IngredientHandler
	RecipeHandler     *httpH.RecipeHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	response.RegisterJSONTagNames()

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRequestContext(cfg.RequestTimeout))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSAllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Media
	if cfg.MediaRoot != "" {
		mediaPath := "/" + strings.Trim(cfg.MediaPath, "/")
		if mediaPath == "/" {
			mediaPath = "/media"
		}
		r.Static(mediaPath, cfg.MediaRoot)
	}

	optional := func(c *gin.Context) { c.Next() }
	required := optional
	if cfg.AuthMiddleware != nil {
		optional = cfg.AuthMiddleware.OptionalAuth()
		required = cfg.AuthMiddleware.RequireAuth()
	}

	api := r.Group("/api")
	api.Use(optional)

	// Auth
	if cfg.AuthHandler != nil {
		api.POST("/auth/token/login", cfg.AuthHandler.Login)
		api.POST("/auth/token/logout", required, cfg.AuthHandler.Logout)
	}

	// Users
	if cfg.UserHandler != nil {
		api.GET("/users", cfg.UserHandler.List)
		api.POST("/users", cfg.UserHandler.Create)
		api.GET("/users/me", required, cfg.UserHandler.GetMe)
		api.POST("/users/set_password", required, cfg.UserHandler.SetPassword)
		api.GET("/users/subscriptions", required, cfg.UserHandler.Subscriptions)
		api.GET("/users/:id", cfg.UserHandler.Get)
		api.POST("/users/:id/subscribe", required, cfg.UserHandler.Subscribe)
		api.DELETE("/users/:id/subscribe", required, cfg.UserHandler.Unsubscribe)
	}

	// Reference data
	if cfg.TagHandler != nil {
		api.GET("/tags", cfg.TagHandler.List)
		api.GET("/tags/:id", cfg.TagHandler.Get)
	}
	if cfg.IngredientHandler != nil {
		api.GET("/ingredients", cfg.IngredientHandler.List)
		api.GET("/ingredients/:id", cfg.IngredientHandler.Get)
	}

	// Recipes
	if cfg.RecipeHandler != nil {
		api.GET("/recipes", cfg.RecipeHandler.List)
		api.POST("/recipes", required, cfg.RecipeHandler.Create)
		api.GET("/recipes/download_shopping_cart", required, cfg.RecipeHandler.DownloadShoppingCart)
		api.GET("/recipes/:id", cfg.RecipeHandler.Get)
		api.PATCH("/recipes/:id", required, cfg.RecipeHandler.Update)
		api.PUT("/recipes/:id", required, cfg.RecipeHandler.Update)
		api.DELETE("/recipes/:id", required, cfg.RecipeHandler.Delete)
		api.POST("/recipes/:id/favorite", required, cfg.RecipeHandler.AddFavorite)
		api.DELETE("/recipes/:id/favorite", required, cfg.RecipeHandler.RemoveFavorite)
		api.POST("/recipes/:id/shopping_cart", required, cfg.RecipeHandler.AddToShoppingCart)
		api.DELETE("/recipes/:id/shopping_cart", required, cfg.RecipeHandler.RemoveFromShoppingCart)
	}

	return r
}
