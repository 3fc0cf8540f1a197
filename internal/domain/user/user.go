package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UsernameMaxLength = 149
	EmailMaxLength    = 254
	NameMaxLength     = 150

	// bcrypt ignores everything past 72 bytes and refuses to hash it.
	PasswordMaxBytes = 72
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;size:254;column:email" json:"email"`
	Username  string    `gorm:"uniqueIndex;not null;size:149;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"not null;size:150;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;size:150;column:last_name" json:"last_name"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
