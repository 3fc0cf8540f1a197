package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type IngredientHandler struct {
	reference services.ReferenceService
}

func NewIngredientHandler(reference services.ReferenceService) *IngredientHandler {
	return &IngredientHandler{reference: reference}
}

// GET /api/ingredients?name=<prefix>
func (ih *IngredientHandler) List(c *gin.Context) {
	list, err := ih.reference.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.IngredientViews(list))
}

// GET /api/ingredients/:id
func (ih *IngredientHandler) Get(c *gin.Context) {
	id, err := pathID(c, "Recipes.Ingredient.Get")
	if err != nil {
		response.Error(c, err)
		return
	}
	ing, err := ih.reference.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.IngredientView(ing))
}
