package recipes

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// MembershipRepo stores (user, recipe) markers for one MembershipKind.
type MembershipRepo interface {
	Kind() types.MembershipKind
	Create(dbc dbctx.Context, userID, recipeID uuid.UUID) error
	Exists(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error)
	Delete(dbc dbctx.Context, userID, recipeID uuid.UUID) (int64, error)
	RecipeIDsByUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
	RecipeIDsMarked(dbc dbctx.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]bool, error)
}

type membershipRepo struct {
	db    *gorm.DB
	log   *logger.Logger
	kind  types.MembershipKind
	table string
}

func NewMembershipRepo(db *gorm.DB, baseLog *logger.Logger, kind types.MembershipKind) (MembershipRepo, error) {
	if recipes.NewMembershipRow(kind, uuid.Nil, uuid.Nil) == nil {
		return nil, fmt.Errorf("unknown membership kind %q", kind)
	}
	return &membershipRepo{
		db:    db,
		log:   baseLog.With("repo", "MembershipRepo", "kind", string(kind)),
		kind:  kind,
		table: string(kind),
	}, nil
}

func (r *membershipRepo) Kind() types.MembershipKind { return r.kind }

// Create relies on the (user_id, recipe_id) unique index to reject duplicates.
func (r *membershipRepo) Create(dbc dbctx.Context, userID, recipeID uuid.UUID) error {
	row := recipes.NewMembershipRow(r.kind, userID, recipeID)
	return dbc.DB(r.db).Create(row).Error
}

func (r *membershipRepo) Exists(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Table(r.table).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *membershipRepo) Delete(dbc dbctx.Context, userID, recipeID uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(recipes.NewMembershipRow(r.kind, uuid.Nil, uuid.Nil))
	return res.RowsAffected, res.Error
}

func (r *membershipRepo) RecipeIDsByUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := dbc.DB(r.db).
		Table(r.table).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *membershipRepo) RecipeIDsMarked(dbc dbctx.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(candidates) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	if err := dbc.DB(r.db).
		Table(r.table).
		Where("user_id = ? AND recipe_id IN ?", userID, candidates).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
