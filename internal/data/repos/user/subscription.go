package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type SubscriptionRepo interface {
	Create(dbc dbctx.Context, userID, authorID uuid.UUID) (*types.Subscription, error)
	Exists(dbc dbctx.Context, userID, authorID uuid.UUID) (bool, error)
	Delete(dbc dbctx.Context, userID, authorID uuid.UUID) (int64, error)
	ListAuthorIDs(dbc dbctx.Context, userID uuid.UUID, offset, limit int) ([]uuid.UUID, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	AuthorIDsFollowed(dbc dbctx.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]bool, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

// Create inserts the edge. A duplicate or self edge fails at the constraint layer.
func (r *subscriptionRepo) Create(dbc dbctx.Context, userID, authorID uuid.UUID) (*types.Subscription, error) {
	row := &types.Subscription{UserID: userID, AuthorID: authorID}
	if err := dbc.DB(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *subscriptionRepo) Exists(dbc dbctx.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subscriptionRepo) Delete(dbc dbctx.Context, userID, authorID uuid.UUID) (int64, error) {
	res := dbc.DB(r.db).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&types.Subscription{})
	return res.RowsAffected, res.Error
}

func (r *subscriptionRepo) ListAuthorIDs(dbc dbctx.Context, userID uuid.UUID, offset, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := dbc.DB(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *subscriptionRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *subscriptionRepo) AuthorIDsFollowed(dbc dbctx.Context, userID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(candidates) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	if err := dbc.DB(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, candidates).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
