package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"uniqueIndex;not null;size:200;column:name" json:"name"`
	Slug  string    `gorm:"uniqueIndex;not null;size:200;column:slug" json:"slug"`
	Color string    `gorm:"uniqueIndex;not null;size:7;column:color" json:"color"`
}

func (Tag) TableName() string { return "tag" }

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
