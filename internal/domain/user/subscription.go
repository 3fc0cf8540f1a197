package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is a directed follow edge from UserID to AuthorID.
// The unique index and the check constraint back the no-duplicate and
// no-self-follow rules at the store level.
type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_user_author,priority:1;check:chk_subscription_not_self,user_id <> author_id" json:"user_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscription_user_author,priority:2" json:"author_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Author   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (Subscription) TableName() string { return "subscription" }

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
