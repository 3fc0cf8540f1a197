package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type TagHandler struct {
	reference services.ReferenceService
}

func NewTagHandler(reference services.ReferenceService) *TagHandler {
	return &TagHandler{reference: reference}
}

// GET /api/tags
func (th *TagHandler) List(c *gin.Context) {
	tags, err := th.reference.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.TagViews(tags))
}

// GET /api/tags/:id
func (th *TagHandler) Get(c *gin.Context) {
	id, err := pathID(c, "Recipes.Tag.Get")
	if err != nil {
		response.Error(c, err)
		return
	}
	tag, err := th.reference.GetTag(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, response.TagView(tag))
}
