package service

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/testhelpers"
	"github.com/pageza/recipehub/backend/internal/types"
)

type testEnv struct {
	db        *gorm.DB
	recipes   *RecipeService
	plans     *MealPlanService
	bookmarks *BookmarkService
	profiles  *ProfileService
	author    *model.User
	admin     *model.User
	clock     time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.SetupSQLite(t)

	recipeRepo := repository.NewRecipeRepository(db)
	profiles := NewProfileService(repository.NewUserRepository(db))

	env := &testEnv{
		db:       db,
		profiles: profiles,
		author:   testhelpers.NewUser(model.RoleUser),
		admin:    testhelpers.NewUser(model.RoleAdmin),
		clock:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	testhelpers.Insert(t, db, env.author, env.admin)

	env.recipes = NewRecipeService(recipeRepo, profiles, nil, catalog.NewBuilder(12, 100), true)
	env.recipes.now = env.now
	env.plans = NewMealPlanService(repository.NewMealPlanRepository(db), recipeRepo)
	env.plans.now = env.now
	env.bookmarks = NewBookmarkService(repository.NewBookmarkRepository(db), recipeRepo, profiles)
	return env
}

func (e *testEnv) now() time.Time {
	return e.clock
}

func (e *testEnv) advance(d time.Duration) {
	e.clock = e.clock.Add(d)
}

func (e *testEnv) authorPrincipal() types.Principal {
	return types.Principal{UserID: e.author.ID, Role: e.author.Role}
}

func (e *testEnv) adminPrincipal() types.Principal {
	return types.Principal{UserID: e.admin.ID, Role: e.admin.Role}
}

// insertRecipe stores a visible recipe by the env author.
func (e *testEnv) insertRecipe(t *testing.T, title string) *model.Recipe {
	t.Helper()
	r := testhelpers.NewRecipe(e.author.ID, title)
	testhelpers.Insert(t, e.db, r)
	return r
}

func validInput() *types.RecipeInput {
	timer := 8
	calories := 540.0
	return &types.RecipeInput{
		Title:       "Lemon Risotto",
		Description: "Creamy risotto finished with lemon zest",
		Category:    model.CategoryDinner,
		Cuisine:     "italian",
		DietaryTags: []string{"vegetarian", "gluten-free"},
		Tags:        []string{" Comfort ", "rice"},
		Ingredients: []types.IngredientInput{
			{Name: "Arborio rice", Quantity: 300, Unit: "grams"},
			{Name: "Lemon", Quantity: 1, Unit: "whole"},
		},
		Instructions: []types.StepInput{
			{StepNumber: 1, Description: "Toast the rice"},
			{StepNumber: 2, Description: "Add stock a ladle at a time", Timer: &timer},
		},
		PrepTime:      10,
		CookingTime:   25,
		Difficulty:    model.DifficultyMedium,
		Servings:      4,
		Images:        []string{"https://cdn.example.com/risotto.jpg"},
		NutritionInfo: &types.NutritionInput{Calories: &calories},
	}
}

func ptr[T any](v T) *T {
	return &v
}
