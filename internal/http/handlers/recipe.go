package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type RecipeHandler struct {
	recipeService       services.RecipeService
	membershipService   services.MembershipService
	shoppingListService services.ShoppingListService
	viewerService       services.ViewerService
	imageService        services.ImageService
	paging              Paging
}

func NewRecipeHandler(
	recipeService services.RecipeService,
	membershipService services.MembershipService,
	shoppingListService services.ShoppingListService,
	viewerService services.ViewerService,
	imageService services.ImageService,
	paging Paging,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:       recipeService,
		membershipService:   membershipService,
		shoppingListService: shoppingListService,
		viewerService:       viewerService,
		imageService:        imageService,
		paging:              paging,
	}
}

type recipeRequest struct {
	Ingredients []struct {
		ID     uuid.UUID `json:"id"`
		Amount int       `json:"amount"`
	} `json:"ingredients"`
	Tags        []uuid.UUID `json:"tags"`
	Image       string      `json:"image"`
	Name        string      `json:"name" binding:"max=200"`
	Text        string      `json:"text"`
	CookingTime int         `json:"cooking_time"`
}

func (r recipeRequest) input() services.RecipeInput {
	in := services.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		Image:       r.Image,
		CookingTime: r.CookingTime,
		Tags:        r.Tags,
		Ingredients: make([]services.IngredientInput, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		in.Ingredients = append(in.Ingredients, services.IngredientInput{ID: ing.ID, Amount: ing.Amount})
	}
	return in
}

// GET /api/recipes?author=&tags=&is_favorited=&is_in_shopping_cart=
func (rh *RecipeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page := response.ParsePage(c, rh.paging.DefaultLimit, rh.paging.MaxLimit)
	q := services.RecipeListQuery{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      truthy(c.Query("is_favorited")),
		IsInShoppingCart: truthy(c.Query("is_in_shopping_cart")),
		Offset:           page.Offset(),
		Limit:            page.Limit,
	}
	if raw := c.Query("author"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			// an author that cannot exist matches nothing
			response.RespondOK(c, response.NewPaginated[response.RecipeOut](c, page, 0, nil))
			return
		}
		q.AuthorID = authorID
	}
	list, total, err := rh.recipeService.List(ctx, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	recipeIDs, authorIDs := recipeFlagTargets(list)
	flags, err := loadFlags(ctx, rh.viewerService, recipeIDs, authorIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.NewPaginated(c, page, total, response.RecipeViews(list, flags, rh.imageService.URL)))
}

// GET /api/recipes/:id
func (rh *RecipeHandler) Get(c *gin.Context) {
	id, err := pathID(c, "Recipes.Recipe.Get")
	if err != nil {
		response.Error(c, err)
		return
	}
	recipe, err := rh.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	rh.respondRecipe(c, http.StatusOK, recipe)
}

// POST /api/recipes
func (rh *RecipeHandler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.BindError("Recipes.Recipe.Create", err))
		return
	}
	recipe, err := rh.recipeService.Create(c.Request.Context(), req.input())
	if err != nil {
		response.Error(c, err)
		return
	}
	rh.respondRecipe(c, http.StatusCreated, recipe)
}

// PATCH|PUT /api/recipes/:id
func (rh *RecipeHandler) Update(c *gin.Context) {
	id, err := pathID(c, "Recipes.Recipe.Update")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.BindError("Recipes.Recipe.Update", err))
		return
	}
	recipe, err := rh.recipeService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		response.Error(c, err)
		return
	}
	rh.respondRecipe(c, http.StatusOK, recipe)
}

// DELETE /api/recipes/:id
func (rh *RecipeHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "Recipes.Recipe.Delete")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := rh.recipeService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/recipes/:id/favorite
func (rh *RecipeHandler) AddFavorite(c *gin.Context) {
	rh.addMembership(c, types.MembershipFavorite)
}

// DELETE /api/recipes/:id/favorite
func (rh *RecipeHandler) RemoveFavorite(c *gin.Context) {
	rh.removeMembership(c, types.MembershipFavorite)
}

// POST /api/recipes/:id/shopping_cart
func (rh *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	rh.addMembership(c, types.MembershipShoppingCart)
}

// DELETE /api/recipes/:id/shopping_cart
func (rh *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	rh.removeMembership(c, types.MembershipShoppingCart)
}

// GET /api/recipes/download_shopping_cart
func (rh *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	ctx := c.Request.Context()
	lines, err := rh.shoppingListService.BuildShoppingList(ctx, ctxutil.ViewerID(ctx))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ShoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(services.RenderShoppingList(lines)))
}

func (rh *RecipeHandler) addMembership(c *gin.Context, kind types.MembershipKind) {
	id, err := pathID(c, "Recipes.Membership.Create")
	if err != nil {
		response.Error(c, err)
		return
	}
	recipe, err := rh.membershipService.Add(c.Request.Context(), kind, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, response.BriefRecipeView(recipe, rh.imageService.URL))
}

func (rh *RecipeHandler) removeMembership(c *gin.Context, kind types.MembershipKind) {
	id, err := pathID(c, "Recipes.Membership.Delete")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := rh.membershipService.Remove(c.Request.Context(), kind, id); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (rh *RecipeHandler) respondRecipe(c *gin.Context, status int, recipe *types.Recipe) {
	ctx := c.Request.Context()
	flags, err := loadFlags(ctx, rh.viewerService, []uuid.UUID{recipe.ID}, []uuid.UUID{recipe.AuthorID})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(status, response.RecipeView(recipe, flags, rh.imageService.URL))
}
