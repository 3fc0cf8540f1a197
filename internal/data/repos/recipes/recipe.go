package recipes

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// RecipeFilter narrows a recipe listing. Zero values disable a clause; tag
// slugs are OR-ed together.
type RecipeFilter struct {
	AuthorID    uuid.UUID
	TagSlugs    []string
	FavoritedBy uuid.UUID
	InCartOf    uuid.UUID
}

type RecipeRepo interface {
	Create(dbc dbctx.Context, recipe *types.Recipe) (*types.Recipe, error)
	UpdateFields(dbc dbctx.Context, recipeID uuid.UUID, updates map[string]interface{}) error
	GetByID(dbc dbctx.Context, recipeID uuid.UUID) (*types.Recipe, error)
	GetByIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.Recipe, error)
	List(dbc dbctx.Context, filter RecipeFilter, offset, limit int) ([]*types.Recipe, error)
	Count(dbc dbctx.Context, filter RecipeFilter) (int64, error)
	ListByAuthor(dbc dbctx.Context, authorID uuid.UUID, limit int) ([]*types.Recipe, error)
	CountByAuthors(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Delete(dbc dbctx.Context, recipeID uuid.UUID) (int64, error)
	ReplaceTags(dbc dbctx.Context, recipe *types.Recipe, tags []*types.Tag) error
	Exists(dbc dbctx.Context, recipeID uuid.UUID) (bool, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) Create(dbc dbctx.Context, recipe *types.Recipe) (*types.Recipe, error) {
	if recipe == nil {
		return nil, errors.New("nil recipe")
	}
	// Associations are written explicitly by the caller.
	if err := dbc.DB(r.db).Omit("Tags", "IngredientAmounts", "Author").Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *recipeRepo) UpdateFields(dbc dbctx.Context, recipeID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Model(&types.Recipe{}).
		Where("id = ?", recipeID).
		Updates(updates).Error
}

func (r *recipeRepo) preloaded(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag.name ASC") }).
		Preload("IngredientAmounts.Ingredient")
}

// GetByID loads the recipe with author, tags and ingredient amounts; nil when missing.
func (r *recipeRepo) GetByID(dbc dbctx.Context, recipeID uuid.UUID) (*types.Recipe, error) {
	var rec types.Recipe
	err := r.preloaded(dbc.DB(r.db)).Where("id = ?", recipeID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByIDs returns fully loaded recipes in newest-first order.
func (r *recipeRepo) GetByIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.Recipe, error) {
	out := []*types.Recipe{}
	if len(recipeIDs) == 0 {
		return out, nil
	}
	if err := r.preloaded(dbc.DB(r.db)).
		Where("id IN ?", recipeIDs).
		Order("pub_date DESC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) filtered(dbc dbctx.Context, f RecipeFilter) *gorm.DB {
	base := dbc.DB(r.db)
	sub := base.Session(&gorm.Session{NewDB: true})
	q := base.Model(&types.Recipe{})
	if f.AuthorID != uuid.Nil {
		q = q.Where("recipe.author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		q = q.Where("recipe.id IN (?)", sub.
			Table("recipe_tag").
			Select("recipe_tag.recipe_id").
			Joins("JOIN tag ON tag.id = recipe_tag.tag_id").
			Where("tag.slug IN ?", f.TagSlugs))
	}
	if f.FavoritedBy != uuid.Nil {
		q = q.Where("recipe.id IN (?)", sub.
			Table("favorite").
			Select("recipe_id").
			Where("user_id = ?", f.FavoritedBy))
	}
	if f.InCartOf != uuid.Nil {
		q = q.Where("recipe.id IN (?)", sub.
			Table("shopping_cart").
			Select("recipe_id").
			Where("user_id = ?", f.InCartOf))
	}
	return q
}

func (r *recipeRepo) List(dbc dbctx.Context, filter RecipeFilter, offset, limit int) ([]*types.Recipe, error) {
	var ids []uuid.UUID
	q := r.filtered(dbc, filter).Order("recipe.pub_date DESC").Order("recipe.id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("recipe.id", &ids).Error; err != nil {
		return nil, err
	}
	return r.GetByIDs(dbc, ids)
}

func (r *recipeRepo) Count(dbc dbctx.Context, filter RecipeFilter) (int64, error) {
	var count int64
	if err := r.filtered(dbc, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByAuthor returns the author's newest recipes; limit < 0 means no cap.
func (r *recipeRepo) ListByAuthor(dbc dbctx.Context, authorID uuid.UUID, limit int) ([]*types.Recipe, error) {
	out := []*types.Recipe{}
	if limit == 0 {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("author_id = ?", authorID).
		Order("pub_date DESC").
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) CountByAuthors(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := map[uuid.UUID]int64{}
	if len(authorIDs) == 0 {
		return out, nil
	}
	type row struct {
		AuthorID uuid.UUID
		N        int64
	}
	var rows []row
	if err := dbc.DB(r.db).
		Model(&types.Recipe{}).
		Select("author_id, COUNT(*) AS n").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.AuthorID] = rw.N
	}
	return out, nil
}

// Delete removes the recipe; amounts, tag links and memberships cascade.
func (r *recipeRepo) Delete(dbc dbctx.Context, recipeID uuid.UUID) (int64, error) {
	var affected int64
	err := dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&types.Recipe{ID: recipeID}).Association("Tags").Clear(); err != nil {
			return err
		}
		res := tx.Where("id = ?", recipeID).Delete(&types.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// ReplaceTags drops every existing tag link of the recipe and links tags.
func (r *recipeRepo) ReplaceTags(dbc dbctx.Context, recipe *types.Recipe, tags []*types.Tag) error {
	if recipe == nil || recipe.ID == uuid.Nil {
		return errors.New("recipe id required")
	}
	tx := dbc.DB(r.db)
	if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
		return err
	}
	if len(tags) == 0 {
		recipe.Tags = []*types.Tag{}
		return nil
	}
	return tx.Model(recipe).Association("Tags").Append(tags)
}

func (r *recipeRepo) Exists(dbc dbctx.Context, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.Recipe{}).
		Where("id = ?", recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
