package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DayMeals are the recipe references planned for one day of the week.
type DayMeals struct {
	Day       string      `json:"day"`
	Breakfast *uuid.UUID  `json:"breakfast,omitempty"`
	Lunch     *uuid.UUID  `json:"lunch,omitempty"`
	Dinner    *uuid.UUID  `json:"dinner,omitempty"`
	Snacks    []uuid.UUID `json:"snacks"`
}

// RecipeIDs returns every recipe referenced by the day, breakfast first.
func (d DayMeals) RecipeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, 3+len(d.Snacks))
	for _, id := range []*uuid.UUID{d.Breakfast, d.Lunch, d.Dinner} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return append(ids, d.Snacks...)
}

// MealPlan is unique per (UserID, WeekStartDate).
type MealPlan struct {
	ID            uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time                     `json:"createdAt"`
	UpdatedAt     time.Time                     `json:"updatedAt"`
	UserID        uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex:idx_meal_plans_user_week" json:"userId"`
	WeekStartDate datatypes.Date                `gorm:"not null;uniqueIndex:idx_meal_plans_user_week" json:"weekStartDate"`
	Meals         datatypes.JSONSlice[DayMeals] `json:"meals"`
}

// RecipeIDs returns the distinct recipe ids referenced anywhere in the plan.
func (p *MealPlan) RecipeIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, day := range p.Meals {
		for _, id := range day.RecipeIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// NormalizeWeekStart maps any instant to midnight UTC of its calendar date.
func NormalizeWeekStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
