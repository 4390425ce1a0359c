package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipehub/backend/internal/model"
)

type MealPlanRepository interface {
	// Upsert inserts the plan or, when (UserID, WeekStartDate) already
	// exists, replaces its meals and updated time. The stored plan is returned.
	Upsert(ctx context.Context, plan *model.MealPlan) (*model.MealPlan, error)
	Find(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*model.MealPlan, error)
	Delete(ctx context.Context, userID uuid.UUID, weekStart time.Time) error
}

type mealPlanRepository struct {
	store
}

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{store{db: db}}
}

func planKey(userID uuid.UUID, weekStart time.Time) string {
	return userID.String() + "/" + weekStart.Format(time.DateOnly)
}

func (r *mealPlanRepository) Upsert(ctx context.Context, plan *model.MealPlan) (*model.MealPlan, error) {
	weekStart := time.Time(plan.WeekStartDate)
	var stored model.MealPlan
	err := r.run(ctx, "meal_plans.upsert", func(db *gorm.DB) error {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"meals", "updated_at"}),
		}).Create(plan).Error
		if err != nil {
			return err
		}
		return db.First(&stored, "user_id = ? AND week_start_date = ?", plan.UserID, plan.WeekStartDate).Error
	})
	if err != nil {
		return nil, translate("meal_plans.upsert", "meal plan", planKey(plan.UserID, weekStart), err)
	}
	return &stored, nil
}

func (r *mealPlanRepository) Find(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := r.run(ctx, "meal_plans.find", func(db *gorm.DB) error {
		return db.First(&plan, "user_id = ? AND week_start_date = ?", userID, datatypes.Date(weekStart)).Error
	})
	if err != nil {
		return nil, translate("meal_plans.find", "meal plan", planKey(userID, weekStart), err)
	}
	return &plan, nil
}

func (r *mealPlanRepository) Delete(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	err := r.run(ctx, "meal_plans.delete", func(db *gorm.DB) error {
		res := db.Where("user_id = ? AND week_start_date = ?", userID, datatypes.Date(weekStart)).
			Delete(&model.MealPlan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate("meal_plans.delete", "meal plan", planKey(userID, weekStart), err)
}
