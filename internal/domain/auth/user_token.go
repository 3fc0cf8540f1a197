package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

// UserToken is an issued access token. Logout deletes the row, which
// invalidates the token even before its JWT expiry.
type UserToken struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AccessToken string     `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
	ExpiresAt   time.Time  `gorm:"not null;index;column:expires_at" json:"expires_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (UserToken) TableName() string { return "user_token" }

func (t *UserToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
