package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/testhelpers"
)

func TestBookmarkRepository(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	recipes := NewRecipeRepository(db)
	repo := NewBookmarkRepository(db)
	ctx := context.Background()

	author, reader := uuid.New(), uuid.New()
	soup := testhelpers.NewRecipe(author, "Soup")
	hidden := testhelpers.NewRecipe(author, "Hidden")
	hidden.IsApproved = false
	require.NoError(t, recipes.Create(ctx, soup))
	require.NoError(t, recipes.Create(ctx, hidden))

	for _, id := range []uuid.UUID{soup.ID, soup.ID, hidden.ID} {
		require.NoError(t, repo.Add(ctx, &model.RecipeBookmark{ID: uuid.New(), UserID: reader, RecipeID: id}))
	}

	var count int64
	require.NoError(t, db.Model(&model.RecipeBookmark{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	list, err := repo.ListRecipes(ctx, reader)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, titles(list))

	require.NoError(t, repo.Remove(ctx, reader, soup.ID))
	assert.ErrorIs(t, repo.Remove(ctx, reader, soup.ID), apperror.ErrNotFound)

	list, err = repo.ListRecipes(ctx, reader)
	require.NoError(t, err)
	assert.Empty(t, list)
}
