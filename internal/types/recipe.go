package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipehub/backend/internal/model"
)

type RatingView struct {
	User      model.PublicProfile `json:"user"`
	Rating    int                 `json:"rating"`
	Review    string              `json:"review,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// RecipeView is a recipe with its author and rating authors resolved to
// public profiles.
type RecipeView struct {
	*model.Recipe
	Author     model.PublicProfile `json:"author"`
	Ratings    []RatingView        `json:"ratings"`
	LikesCount int                 `json:"likesCount"`
	// ScaledTo is set when ingredient quantities were scaled for display.
	ScaledTo *int `json:"scaledServings,omitempty"`
}

// RecipeProjection is the reduced recipe shown inside a meal plan.
type RecipeProjection struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Images      []string  `json:"images"`
	CookingTime int       `json:"cookingTime"`
	Difficulty  string    `json:"difficulty"`
}

func NewRecipeProjection(r *model.Recipe) RecipeProjection {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return RecipeProjection{
		ID:          r.ID,
		Title:       r.Title,
		Images:      images,
		CookingTime: r.CookingTime,
		Difficulty:  r.Difficulty,
	}
}

type DayMealsView struct {
	Day       string             `json:"day"`
	Breakfast *RecipeProjection  `json:"breakfast"`
	Lunch     *RecipeProjection  `json:"lunch"`
	Dinner    *RecipeProjection  `json:"dinner"`
	Snacks    []RecipeProjection `json:"snacks"`
}

type MealPlanView struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"userId"`
	WeekStartDate string         `json:"weekStartDate"`
	Meals         []DayMealsView `json:"meals"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
