package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/model"
)

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Recipe{},
		&model.RecipeBookmark{},
		&model.MealPlan{},
	}
}

// RunMigrations creates or updates the schema for every model. On postgres it
// also adds GIN indexes for the JSON columns the catalog filters on.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		stmts := []string{
			`CREATE INDEX IF NOT EXISTS idx_recipes_dietary_tags ON recipes USING GIN (dietary_tags)`,
			`CREATE INDEX IF NOT EXISTS idx_recipes_tags ON recipes USING GIN (tags)`,
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
	}

	logging.Info().Str("driver", db.Dialector.Name()).Int("models", len(Models())).Msg("migrations applied")
	return nil
}
