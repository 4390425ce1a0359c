package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/service"
	"github.com/pageza/recipehub/backend/internal/testhelpers"
	"github.com/pageza/recipehub/backend/internal/validation"
)

func TestDemoRecipesAreValid(t *testing.T) {
	inputs, err := LoadDemoRecipes()
	require.NoError(t, err)
	require.NotEmpty(t, inputs)
	for i := range inputs {
		assert.NoError(t, validation.ValidateStruct(&inputs[i]), inputs[i].Title)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	users := repository.NewUserRepository(db)
	recipes := service.NewRecipeService(repository.NewRecipeRepository(db),
		service.NewProfileService(users), nil, catalog.NewBuilder(0, 0), true)
	seeder := &Seeder{Users: users, Recipes: recipes}
	ctx := context.Background()

	inputs, err := LoadDemoRecipes()
	require.NoError(t, err)

	first, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(demoCooks), first.Users)
	assert.Equal(t, len(inputs), first.Recipes)
	assert.Equal(t, len(inputs)*(len(demoCooks)-1), first.Ratings)

	page, err := recipes.List(ctx, catalog.Params{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, page.Recipes, len(inputs))
	for _, r := range page.Recipes {
		assert.Equal(t, len(demoCooks)-1, r.TotalRatings)
	}

	second, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)
}
