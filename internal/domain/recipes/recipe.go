package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

type Recipe struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Author   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`

	Name        string `gorm:"not null;size:200;column:name" json:"name"`
	Text        string `gorm:"not null;type:text;column:text" json:"text"`
	Image       string `gorm:"not null;column:image" json:"image"` // object key under the recipe image prefix
	CookingTime int    `gorm:"not null;column:cooking_time;check:chk_recipe_cooking_time_positive,cooking_time > 0" json:"cooking_time"`

	Tags              []*Tag              `gorm:"many2many:recipe_tag;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	IngredientAmounts []*IngredientAmount `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`

	PubDate   time.Time `gorm:"not null;index;column:pub_date" json:"pub_date"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }

// BeforeCreate assigns the id and stamps pub_date once; updates never touch it.
func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.PubDate.IsZero() {
		r.PubDate = time.Now().UTC()
	}
	return nil
}

// Favorite and ShoppingCart are (user, recipe) membership markers.
type Favorite struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe,priority:1" json:"user_id"`
	RecipeID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_favorite_user_recipe,priority:2" json:"recipe_id"`
	User     *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Recipe   *Recipe    `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Favorite) TableName() string { return "favorite" }

func (f *Favorite) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type ShoppingCart struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shopping_cart_user_recipe,priority:1" json:"user_id"`
	RecipeID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_shopping_cart_user_recipe,priority:2" json:"recipe_id"`
	User     *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Recipe   *Recipe    `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ShoppingCart) TableName() string { return "shopping_cart" }

func (s *ShoppingCart) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// MembershipKind names the marker table a membership row lives in.
type MembershipKind string

const (
	MembershipFavorite     MembershipKind = "favorite"
	MembershipShoppingCart MembershipKind = "shopping_cart"
)

// NewMembershipRow builds the model for kind; nil for an unknown kind.
func NewMembershipRow(kind MembershipKind, userID, recipeID uuid.UUID) any {
	switch kind {
	case MembershipFavorite:
		return &Favorite{UserID: userID, RecipeID: recipeID}
	case MembershipShoppingCart:
		return &ShoppingCart{UserID: userID, RecipeID: recipeID}
	default:
		return nil
	}
}
