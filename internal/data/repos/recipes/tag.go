package recipes

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type TagRepo interface {
	GetAll(dbc dbctx.Context) ([]*types.Tag, error)
	GetByIDs(dbc dbctx.Context, tagIDs []uuid.UUID) ([]*types.Tag, error)
	GetByID(dbc dbctx.Context, tagID uuid.UUID) (*types.Tag, error)
	GetBySlugs(dbc dbctx.Context, slugs []string) ([]*types.Tag, error)
	// GetOrCreate matches on every field and inserts when nothing matches.
	GetOrCreate(dbc dbctx.Context, tag *types.Tag) (*types.Tag, bool, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) GetAll(dbc dbctx.Context) ([]*types.Tag, error) {
	var out []*types.Tag
	if err := dbc.DB(r.db).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) GetByIDs(dbc dbctx.Context, tagIDs []uuid.UUID) ([]*types.Tag, error) {
	out := []*types.Tag{}
	if len(tagIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", tagIDs).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) GetByID(dbc dbctx.Context, tagID uuid.UUID) (*types.Tag, error) {
	var t types.Tag
	err := dbc.DB(r.db).Where("id = ?", tagID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepo) GetBySlugs(dbc dbctx.Context, slugs []string) ([]*types.Tag, error) {
	out := []*types.Tag{}
	if len(slugs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("slug IN ?", slugs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) GetOrCreate(dbc dbctx.Context, tag *types.Tag) (*types.Tag, bool, error) {
	if tag == nil {
		return nil, false, errors.New("nil tag")
	}
	var existing types.Tag
	err := dbc.DB(r.db).
		Where("name = ? AND slug = ? AND color = ?", tag.Name, tag.Slug, tag.Color).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if err := dbc.DB(r.db).Create(tag).Error; err != nil {
		return nil, false, err
	}
	return tag, true, nil
}
