package recipes

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type IngredientRepo interface {
	GetAll(dbc dbctx.Context) ([]*types.Ingredient, error)
	SearchByNamePrefix(dbc dbctx.Context, prefix string) ([]*types.Ingredient, error)
	GetByIDs(dbc dbctx.Context, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error)
	GetByID(dbc dbctx.Context, ingredientID uuid.UUID) (*types.Ingredient, error)
	GetOrCreate(dbc dbctx.Context, ingredient *types.Ingredient) (*types.Ingredient, bool, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (r *ingredientRepo) GetAll(dbc dbctx.Context) ([]*types.Ingredient, error) {
	var out []*types.Ingredient
	if err := dbc.DB(r.db).
		Order("name ASC").
		Order("measurement_unit ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByNamePrefix matches case-insensitively; an empty prefix returns everything.
func (r *ingredientRepo) SearchByNamePrefix(dbc dbctx.Context, prefix string) ([]*types.Ingredient, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return r.GetAll(dbc)
	}
	var out []*types.Ingredient
	if err := dbc.DB(r.db).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(prefix))+"%").
		Order("name ASC").
		Order("measurement_unit ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ingredientRepo) GetByIDs(dbc dbctx.Context, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error) {
	out := []*types.Ingredient{}
	if len(ingredientIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", ingredientIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ingredientRepo) GetByID(dbc dbctx.Context, ingredientID uuid.UUID) (*types.Ingredient, error) {
	var ing types.Ingredient
	err := dbc.DB(r.db).Where("id = ?", ingredientID).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepo) GetOrCreate(dbc dbctx.Context, ingredient *types.Ingredient) (*types.Ingredient, bool, error) {
	if ingredient == nil {
		return nil, false, errors.New("nil ingredient")
	}
	var existing types.Ingredient
	err := dbc.DB(r.db).
		Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if err := dbc.DB(r.db).Create(ingredient).Error; err != nil {
		return nil, false, err
	}
	return ingredient, true, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
