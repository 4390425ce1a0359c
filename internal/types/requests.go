package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeInput is the body of recipe create and update requests.
type RecipeInput struct {
	Title         string            `json:"title" validate:"required,min=3,max=100"`
	Description   string            `json:"description" validate:"required,max=1000"`
	Category      string            `json:"category" validate:"required,oneof=breakfast lunch dinner desserts drinks snacks appetizers"`
	Cuisine       string            `json:"cuisine" validate:"omitempty,oneof=italian chinese indian mexican mediterranean american french thai japanese other"`
	DietaryTags   []string          `json:"dietaryTags" validate:"dive,oneof=vegetarian vegan keto gluten-free dairy-free paleo low-carb pescatarian nut-free soy-free"`
	Tags          []string          `json:"tags" validate:"dive,required,max=30,lowercase"`
	Ingredients   []IngredientInput `json:"ingredients" validate:"required,min=1,dive"`
	Instructions  []StepInput       `json:"instructions" validate:"required,min=1,dive"`
	PrepTime      int               `json:"prepTime" validate:"required,gte=1"`
	CookingTime   int               `json:"cookingTime" validate:"required,gte=1"`
	Difficulty    string            `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Servings      int               `json:"servings" validate:"required,gte=1,lte=100"`
	Images        []string          `json:"images" validate:"dive,weburl"`
	VideoURL      string            `json:"videoUrl" validate:"omitempty,weburl"`
	NutritionInfo *NutritionInput   `json:"nutritionInfo"`
	IsPublished   *bool             `json:"isPublished"`
	IsPremium     bool              `json:"isPremium"`
}

type IngredientInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	Unit     string  `json:"unit" validate:"required,oneof=cups tbsp tsp grams kg pounds oz liters ml pieces cloves slices pinch dash whole"`
}

type StepInput struct {
	StepNumber  int    `json:"stepNumber" validate:"gte=1"`
	Description string `json:"description" validate:"required,max=500"`
	Image       string `json:"image" validate:"omitempty,weburl"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,weburl"`
	Timer       *int   `json:"timer" validate:"omitempty,gte=0"`
}

type NutritionInput struct {
	Calories *float64 `json:"calories" validate:"omitempty,gte=0"`
	Protein  *float64 `json:"protein" validate:"omitempty,gte=0"`
	Carbs    *float64 `json:"carbs" validate:"omitempty,gte=0"`
	Fat      *float64 `json:"fat" validate:"omitempty,gte=0"`
	Fiber    *float64 `json:"fiber" validate:"omitempty,gte=0"`
	Sugar    *float64 `json:"sugar" validate:"omitempty,gte=0"`
	Sodium   *float64 `json:"sodium" validate:"omitempty,gte=0"`
}

type RateRecipeRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

type PublishRequest struct {
	Published *bool `json:"published" validate:"required"`
}

type ApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// MealPlanRequest is the full weekly grid submitted by a user. Days left
// out are cleared.
type MealPlanRequest struct {
	WeekStartDate string          `json:"weekStartDate" validate:"required,datetime=2006-01-02"`
	Meals         []DayMealsInput `json:"meals" validate:"max=7,dive"`
}

type DayMealsInput struct {
	Day       string      `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Breakfast *uuid.UUID  `json:"breakfast"`
	Lunch     *uuid.UUID  `json:"lunch"`
	Dinner    *uuid.UUID  `json:"dinner"`
	Snacks    []uuid.UUID `json:"snacks" validate:"max=10"`
}

// ParseWeekStart parses a YYYY-MM-DD date as midnight UTC.
func ParseWeekStart(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}
