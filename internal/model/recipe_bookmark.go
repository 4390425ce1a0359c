package model

import (
	"time"

	"github.com/google/uuid"
)

type RecipeBookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_bookmarks_user_recipe" json:"recipeId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_bookmarks_user_recipe;index" json:"userId"`
}

func (RecipeBookmark) TableName() string {
	return "recipe_bookmarks"
}
