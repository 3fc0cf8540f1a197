package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// identity + auth
		&types.User{},
		&types.UserToken{},
		&types.Subscription{},

		// reference data
		&types.Tag{},
		&types.Ingredient{},

		// recipes
		&types.Recipe{},
		&types.IngredientAmount{},
		&types.Favorite{},
		&types.ShoppingCart{},
	)
}

// EnsureRecipeIndexes adds the Postgres-only indexes GORM tags cannot express.
func EnsureRecipeIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != DriverPostgres {
		return nil
	}
	// Case-insensitive prefix search on ingredient names.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ingredient_lower_name
		ON ingredient (lower(name) text_pattern_ops);
	`).Error; err != nil {
		return fmt.Errorf("create idx_ingredient_lower_name: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_recipe_author_pub_date
		ON recipe (author_id, pub_date DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_recipe_author_pub_date: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_recipe_tag_tag_id ON recipe_tag (tag_id);`).Error; err != nil {
		return fmt.Errorf("create idx_recipe_tag_tag_id: %w", err)
	}
	return nil
}

// Migrate runs the full schema setup.
func Migrate(db *gorm.DB) error {
	if err := AutoMigrateAll(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := EnsureRecipeIndexes(db); err != nil {
		return err
	}
	return nil
}
