package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/model"
)

type BookmarkRepository interface {
	// Add is idempotent: bookmarking twice keeps one row.
	Add(ctx context.Context, bookmark *model.RecipeBookmark) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	// ListRecipes returns the visible recipes userID bookmarked, newest bookmark first.
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error)
}

type bookmarkRepository struct {
	store
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{store{db: db}}
}

func (r *bookmarkRepository) Add(ctx context.Context, bookmark *model.RecipeBookmark) error {
	err := r.run(ctx, "bookmarks.add", func(db *gorm.DB) error {
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(bookmark).Error
	})
	return translate("bookmarks.add", "bookmark", bookmark.RecipeID.String(), err)
}

func (r *bookmarkRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := r.run(ctx, "bookmarks.remove", func(db *gorm.DB) error {
		res := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.RecipeBookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("bookmarks.remove", "bookmark", recipeID.String(), err)
}

func (r *bookmarkRepository) ListRecipes(ctx context.Context, userID uuid.UUID) ([]model.Recipe, error) {
	recipes := []model.Recipe{}
	err := r.run(ctx, "bookmarks.list", func(db *gorm.DB) error {
		return db.Model(&model.Recipe{}).
			Joins("JOIN recipe_bookmarks ON recipe_bookmarks.recipe_id = recipes.id").
			Where("recipe_bookmarks.user_id = ?", userID).
			Scopes(catalog.Visible).
			Order("recipe_bookmarks.created_at DESC").
			Order("recipes.id ASC").
			Find(&recipes).Error
	})
	return recipes, translate("bookmarks.list", "bookmark", "", err)
}
