package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const amountBatchSize = 200

type IngredientAmountRepo interface {
	BulkCreate(dbc dbctx.Context, rows []*types.IngredientAmount) ([]*types.IngredientAmount, error)
	DeleteByRecipeID(dbc dbctx.Context, recipeID uuid.UUID) (int64, error)
	GetByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.IngredientAmount, error)
}

type ingredientAmountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientAmountRepo(db *gorm.DB, baseLog *logger.Logger) IngredientAmountRepo {
	return &ingredientAmountRepo{db: db, log: baseLog.With("repo", "IngredientAmountRepo")}
}

func (r *ingredientAmountRepo) BulkCreate(dbc dbctx.Context, rows []*types.IngredientAmount) ([]*types.IngredientAmount, error) {
	if len(rows) == 0 {
		return []*types.IngredientAmount{}, nil
	}
	if err := dbc.DB(r.db).Omit("Ingredient").CreateInBatches(&rows, amountBatchSize).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ingredientAmountRepo) DeleteByRecipeID(dbc dbctx.Context, recipeID uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).
		Where("recipe_id = ?", recipeID).
		Delete(&types.IngredientAmount{})
	return res.RowsAffected, res.Error
}

// GetByRecipeIDs loads amount rows with their ingredient.
func (r *ingredientAmountRepo) GetByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.IngredientAmount, error) {
	out := []*types.IngredientAmount{}
	if len(recipeIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Preload("Ingredient").
		Where("recipe_id IN ?", recipeIDs).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
