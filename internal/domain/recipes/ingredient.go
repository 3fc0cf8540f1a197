package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null;size:200;index;uniqueIndex:idx_ingredient_name_unit,priority:1;column:name" json:"name"`
	MeasurementUnit string    `gorm:"not null;size:200;uniqueIndex:idx_ingredient_name_unit,priority:2;column:measurement_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredient" }

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IngredientAmount says how much of one ingredient a recipe needs. Rows are
// replaced wholesale whenever the recipe is updated.
type IngredientAmount struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_ingredient_amount_recipe_ingredient,priority:1" json:"recipe_id"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_ingredient_amount_recipe_ingredient,priority:2" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"constraint:OnDelete:CASCADE;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`
	Amount       int         `gorm:"not null;check:chk_ingredient_amount_positive,amount > 0" json:"amount"`
}

func (IngredientAmount) TableName() string { return "ingredient_amount" }

func (a *IngredientAmount) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
