package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/testhelpers"
	"github.com/pageza/recipehub/backend/internal/types"
)

func TestMealPlanUpsertReplacesWholeGrid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oats := env.insertRecipe(t, "Overnight Oats")
	curry := env.insertRecipe(t, "Green Curry")
	user := env.admin.ID

	first, err := env.plans.UpsertPlan(ctx, user, &types.MealPlanRequest{
		WeekStartDate: "2025-03-10",
		Meals: []types.DayMealsInput{
			{Day: model.Tuesday, Dinner: &curry.ID},
			{Day: model.Monday, Breakfast: &oats.ID, Snacks: []uuid.UUID{curry.ID}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", first.WeekStartDate)
	require.Len(t, first.Meals, 2)
	assert.Equal(t, model.Monday, first.Meals[0].Day)
	require.NotNil(t, first.Meals[0].Breakfast)
	assert.Equal(t, "Overnight Oats", first.Meals[0].Breakfast.Title)
	assert.Len(t, first.Meals[0].Snacks, 1)

	env.advance(time.Hour)
	second, err := env.plans.UpsertPlan(ctx, user, &types.MealPlanRequest{
		WeekStartDate: "2025-03-10",
		Meals:         []types.DayMealsInput{{Day: model.Friday, Lunch: &oats.ID}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Meals, 1)
	assert.Equal(t, model.Friday, second.Meals[0].Day)

	var count int64
	require.NoError(t, env.db.Model(&model.MealPlan{}).Where("user_id = ?", user).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMealPlanGetMissReturnsNil(t *testing.T) {
	env := newTestEnv(t)
	plan, err := env.plans.GetPlan(context.Background(), env.admin.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestMealPlanGetNormalizesWeekStart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	soup := env.insertRecipe(t, "Miso Soup")

	_, err := env.plans.UpsertPlan(ctx, env.admin.ID, &types.MealPlanRequest{
		WeekStartDate: "2025-03-10",
		Meals:         []types.DayMealsInput{{Day: model.Sunday, Dinner: &soup.ID}},
	})
	require.NoError(t, err)

	plan, err := env.plans.GetPlan(ctx, env.admin.ID, time.Date(2025, 3, 10, 18, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, plan)
	require.NotNil(t, plan.Meals[0].Dinner)
	assert.Equal(t, "Miso Soup", plan.Meals[0].Dinner.Title)
	assert.Equal(t, model.DifficultyEasy, plan.Meals[0].Dinner.Difficulty)
}

func TestMealPlanRejectsUnknownRecipe(t *testing.T) {
	env := newTestEnv(t)
	missing := uuid.New()

	_, err := env.plans.UpsertPlan(context.Background(), env.admin.ID, &types.MealPlanRequest{
		WeekStartDate: "2025-03-10",
		Meals:         []types.DayMealsInput{{Day: model.Monday, Lunch: &missing}},
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMealPlanRejectsOthersDrafts(t *testing.T) {
	env := newTestEnv(t)
	draft := testhelpers.NewRecipe(env.author.ID, "Unfinished")
	draft.IsPublished = false
	testhelpers.Insert(t, env.db, draft)
	req := &types.MealPlanRequest{
		WeekStartDate: "2025-03-10",
		Meals:         []types.DayMealsInput{{Day: model.Monday, Lunch: &draft.ID}},
	}

	_, err := env.plans.UpsertPlan(context.Background(), env.admin.ID, req)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = env.plans.UpsertPlan(context.Background(), env.author.ID, req)
	assert.NoError(t, err)
}

func TestMealPlanValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.plans.UpsertPlan(context.Background(), env.admin.ID, &types.MealPlanRequest{
		WeekStartDate: "10/03/2025",
		Meals: []types.DayMealsInput{
			{Day: "someday"},
			{Day: model.Monday},
			{Day: model.Monday},
		},
	})

	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["weekStartDate"])
	assert.True(t, fields["meals"])
	assert.True(t, fields["meals[0].day"])
}

func TestMealPlanRepeatedDayIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.plans.UpsertPlan(ctx, env.admin.ID, &types.MealPlanRequest{
		WeekStartDate: "2025-03-10",
		Meals: []types.DayMealsInput{
			{Day: model.Friday},
			{Day: model.Friday},
		},
	})

	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "meals", verr.Fields[0].Field)
	assert.Equal(t, "unique", verr.Fields[0].Tag)

	plan, err := env.plans.GetPlan(ctx, env.admin.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestMealPlanDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	week := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := env.plans.UpsertPlan(ctx, env.admin.ID, &types.MealPlanRequest{WeekStartDate: "2025-03-10"})
	require.NoError(t, err)

	require.NoError(t, env.plans.DeletePlan(ctx, env.admin.ID, week))
	assert.ErrorIs(t, env.plans.DeletePlan(ctx, env.admin.ID, week), apperror.ErrNotFound)
}
