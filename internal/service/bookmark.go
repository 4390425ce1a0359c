package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/types"
)

// BookmarkService manages a user's saved recipes.
type BookmarkService struct {
	bookmarks repository.BookmarkRepository
	recipes   repository.RecipeRepository
	profiles  *ProfileService
}

func NewBookmarkService(bookmarks repository.BookmarkRepository, recipes repository.RecipeRepository, profiles *ProfileService) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, recipes: recipes, profiles: profiles}
}

// Save bookmarks a visible recipe. Saving twice is not an error.
func (s *BookmarkService) Save(ctx context.Context, userID, recipeID uuid.UUID) error {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if !recipe.Visible() {
		return apperror.NotFound("recipe", recipeID.String())
	}
	return s.bookmarks.Add(ctx, &model.RecipeBookmark{
		ID:       uuid.New(),
		RecipeID: recipeID,
		UserID:   userID,
	})
}

func (s *BookmarkService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.bookmarks.Remove(ctx, userID, recipeID)
}

func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID) ([]types.RecipeView, error) {
	recipes, err := s.bookmarks.ListRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiles.RecipeViews(ctx, recipes)
}
