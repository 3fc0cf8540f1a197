package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/services"
)

// Paging is the list window configuration shared by the paginated endpoints.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// pathID parses :id. Anything that is not a uuid cannot name a row, so it is a 404.
func pathID(c *gin.Context, op string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return uuid.Nil, domainagg.NotFound(op, "Not found.")
	}
	return id, nil
}

func recipeFlagTargets(list []*types.Recipe) (recipeIDs, authorIDs []uuid.UUID) {
	seen := map[uuid.UUID]bool{}
	for _, r := range list {
		if r == nil {
			continue
		}
		recipeIDs = append(recipeIDs, r.ID)
		if !seen[r.AuthorID] {
			seen[r.AuthorID] = true
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}
	return recipeIDs, authorIDs
}

func userIDs(list []*types.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(list))
	for _, u := range list {
		if u != nil {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func loadFlags(ctx context.Context, viewer services.ViewerService, recipeIDs, authorIDs []uuid.UUID) (services.ViewerFlags, error) {
	return viewer.LoadViewerFlags(ctx, ctxutil.ViewerID(ctx), recipeIDs, authorIDs)
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
