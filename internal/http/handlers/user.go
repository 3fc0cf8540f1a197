package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type UserHandler struct {
	userService         services.UserService
	subscriptionService services.SubscriptionService
	viewerService       services.ViewerService
	imageService        services.ImageService
	paging              Paging
}

func NewUserHandler(
	userService services.UserService,
	subscriptionService services.SubscriptionService,
	viewerService services.ViewerService,
	imageService services.ImageService,
	paging Paging,
) *UserHandler {
	return &UserHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
		viewerService:       viewerService,
		imageService:        imageService,
		paging:              paging,
	}
}

// GET /api/users
func (uh *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page := response.ParsePage(c, uh.paging.DefaultLimit, uh.paging.MaxLimit)
	users, total, err := uh.userService.List(dbctx.Context{Ctx: ctx}, page.Offset(), page.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	flags, err := loadFlags(ctx, uh.viewerService, nil, userIDs(users))
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]response.UserOut, 0, len(users))
	for _, u := range users {
		out = append(out, response.UserView(u, flags))
	}
	response.RespondOK(c, response.NewPaginated(c, page, total, out))
}

// POST /api/users
func (uh *UserHandler) Create(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email,max=254"`
		Username  string `json:"username" binding:"required,max=149"`
		FirstName string `json:"first_name" binding:"required,max=150"`
		LastName  string `json:"last_name" binding:"required,max=150"`
		Password  string `json:"password" binding:"required,max=72"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.BindError("Users.User.Create", err))
		return
	}
	u, err := uh.userService.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, response.CreatedUserView(u))
}

// GET /api/users/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.UserView(me, response.NoFlags))
}

// GET /api/users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := pathID(c, "Users.User.Get")
	if err != nil {
		response.Error(c, err)
		return
	}
	u, err := uh.userService.Get(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	flags, err := loadFlags(ctx, uh.viewerService, nil, []uuid.UUID{u.ID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.UserView(u, flags))
}

// POST /api/users/set_password
func (uh *UserHandler) SetPassword(c *gin.Context) {
	var req struct {
		NewPassword     string `json:"new_password" binding:"required,max=72"`
		CurrentPassword string `json:"current_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.BindError("Users.Password.Set", err))
		return
	}
	if err := uh.userService.SetPassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/users/subscriptions?recipes_limit=
func (uh *UserHandler) Subscriptions(c *gin.Context) {
	ctx := c.Request.Context()
	page := response.ParsePage(c, uh.paging.DefaultLimit, uh.paging.MaxLimit)
	authors, total, err := uh.subscriptionService.ListSubscriptions(dbctx.Context{Ctx: ctx}, page.Offset(), page.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := uh.subscriberViews(c, authors)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.NewPaginated(c, page, total, out))
}

// POST /api/users/:id/subscribe?recipes_limit=
func (uh *UserHandler) Subscribe(c *gin.Context) {
	id, err := pathID(c, "Users.Subscription.Create")
	if err != nil {
		response.Error(c, err)
		return
	}
	author, err := uh.subscriptionService.Subscribe(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := uh.subscriberViews(c, []*types.User{author})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, out[0])
}

// DELETE /api/users/:id/subscribe
func (uh *UserHandler) Unsubscribe(c *gin.Context) {
	id, err := pathID(c, "Users.Subscription.Delete")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := uh.subscriptionService.Unsubscribe(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (uh *UserHandler) subscriberViews(c *gin.Context, authors []*types.User) ([]response.SubscriberOut, error) {
	ctx := c.Request.Context()
	ids := userIDs(authors)
	previews, err := uh.subscriptionService.LoadAuthorPreviews(dbctx.Context{Ctx: ctx}, ids, response.ParseRecipesLimit(c))
	if err != nil {
		return nil, err
	}
	flags, err := loadFlags(ctx, uh.viewerService, nil, ids)
	if err != nil {
		return nil, err
	}
	out := make([]response.SubscriberOut, 0, len(authors))
	for _, a := range authors {
		p := previews[a.ID]
		out = append(out, response.SubscriberView(a, flags, p.Recipes, p.RecipesCount, uh.imageService.URL))
	}
	return out, nil
}
