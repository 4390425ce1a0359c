package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/metrics"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/types"
	"github.com/pageza/recipehub/backend/internal/validation"
)

// MealPlanService manages one weekly plan per user and week.
type MealPlanService struct {
	plans   repository.MealPlanRepository
	recipes repository.RecipeRepository
	now     func() time.Time
}

func NewMealPlanService(plans repository.MealPlanRepository, recipes repository.RecipeRepository) *MealPlanService {
	return &MealPlanService{
		plans:   plans,
		recipes: recipes,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// UpsertPlan stores req as the user's plan for the week, replacing the
// whole grid of an existing plan. Days missing from req end up empty.
func (s *MealPlanService) UpsertPlan(ctx context.Context, userID uuid.UUID, req *types.MealPlanRequest) (*types.MealPlanView, error) {
	if req == nil {
		return nil, apperror.Validation("body", "required", "body is required")
	}
	if err := validateMealPlanRequest(req); err != nil {
		return nil, err
	}
	weekStart, err := types.ParseWeekStart(req.WeekStartDate)
	if err != nil {
		return nil, apperror.Validation("weekStartDate", "datetime", "weekStartDate must be a date in the form 2006-01-02")
	}

	now := s.now()
	plan := &model.MealPlan{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		UserID:        userID,
		WeekStartDate: datatypes.Date(model.NormalizeWeekStart(weekStart)),
		Meals:         toDayMeals(req.Meals),
	}

	recipes, err := s.plannableRecipes(ctx, userID, plan.RecipeIDs())
	if err != nil {
		return nil, err
	}
	for _, id := range plan.RecipeIDs() {
		if _, ok := recipes[id]; !ok {
			return nil, apperror.NotFound("recipe", id.String())
		}
	}

	stored, err := s.plans.Upsert(ctx, plan)
	if err != nil {
		return nil, err
	}
	metrics.MealPlanUpserts.Inc()
	logging.Ctx(ctx).Debug().
		Str("user_id", userID.String()).
		Str("week_start", req.WeekStartDate).
		Msg("meal plan saved")
	return buildPlanView(stored, recipes), nil
}

// GetPlan returns nil, nil when the user has no plan for the week.
func (s *MealPlanService) GetPlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*types.MealPlanView, error) {
	plan, err := s.plans.Find(ctx, userID, model.NormalizeWeekStart(weekStart))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	recipes, err := s.plannableRecipes(ctx, userID, plan.RecipeIDs())
	if err != nil {
		return nil, err
	}
	return buildPlanView(plan, recipes), nil
}

func (s *MealPlanService) DeletePlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	return s.plans.Delete(ctx, userID, model.NormalizeWeekStart(weekStart))
}

// plannableRecipes loads the referenced recipes a user may see: visible
// ones and the user's own drafts.
func (s *MealPlanService) plannableRecipes(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*model.Recipe, error) {
	found, err := s.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*model.Recipe, len(found))
	for i := range found {
		r := &found[i]
		if r.Visible() || r.AuthorID == userID {
			out[r.ID] = r
		}
	}
	return out, nil
}

func toDayMeals(in []types.DayMealsInput) []model.DayMeals {
	days := make([]model.DayMeals, len(in))
	for i, d := range in {
		snacks := d.Snacks
		if snacks == nil {
			snacks = []uuid.UUID{}
		}
		days[i] = model.DayMeals{
			Day:       d.Day,
			Breakfast: d.Breakfast,
			Lunch:     d.Lunch,
			Dinner:    d.Dinner,
			Snacks:    snacks,
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return dayIndex(days[i].Day) < dayIndex(days[j].Day)
	})
	return days
}

func dayIndex(day string) int {
	for i, d := range model.WeekDays {
		if d == day {
			return i
		}
	}
	return len(model.WeekDays)
}

// buildPlanView resolves recipe references to projections. References to
// recipes that are gone or hidden are left empty.
func buildPlanView(plan *model.MealPlan, recipes map[uuid.UUID]*model.Recipe) *types.MealPlanView {
	project := func(id *uuid.UUID) *types.RecipeProjection {
		if id == nil {
			return nil
		}
		r, ok := recipes[*id]
		if !ok {
			return nil
		}
		p := types.NewRecipeProjection(r)
		return &p
	}

	meals := make([]types.DayMealsView, len(plan.Meals))
	for i, day := range plan.Meals {
		snacks := make([]types.RecipeProjection, 0, len(day.Snacks))
		for _, id := range day.Snacks {
			if p := project(&id); p != nil {
				snacks = append(snacks, *p)
			}
		}
		meals[i] = types.DayMealsView{
			Day:       day.Day,
			Breakfast: project(day.Breakfast),
			Lunch:     project(day.Lunch),
			Dinner:    project(day.Dinner),
			Snacks:    snacks,
		}
	}

	return &types.MealPlanView{
		ID:            plan.ID,
		UserID:        plan.UserID,
		WeekStartDate: time.Time(plan.WeekStartDate).Format(time.DateOnly),
		Meals:         meals,
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}
}

// validateMealPlanRequest reports tag violations and repeated days together.
func validateMealPlanRequest(req *types.MealPlanRequest) error {
	verr := &apperror.ValidationError{}
	if err := validation.ValidateStruct(req); err != nil {
		var tagErr *apperror.ValidationError
		if !errors.As(err, &tagErr) {
			return err
		}
		verr.Fields = append(verr.Fields, tagErr.Fields...)
	}

	seen := make(map[string]bool, len(req.Meals))
	for _, d := range req.Meals {
		if d.Day != "" && seen[d.Day] {
			verr.Add("meals", "unique", "meals must not contain duplicate days")
			break
		}
		seen[d.Day] = true
	}
	return verr.OrNil()
}
