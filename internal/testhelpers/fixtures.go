package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipehub/backend/internal/model"
)

// NewUser returns an unsaved active user with unique username and email.
func NewUser(role string) *model.User {
	id := uuid.New()
	return &model.User{
		ID:                 id,
		Username:           "cook-" + id.String()[:8],
		Email:              fmt.Sprintf("cook-%s@example.com", id.String()[:8]),
		PasswordHash:       "not-a-real-hash",
		Role:               role,
		ProfileImage:       "https://cdn.example.com/avatars/" + id.String() + ".png",
		IsActive:           true,
		DietaryPreferences: []string{},
	}
}

// NewRecipe returns an unsaved, approved and published recipe by author.
func NewRecipe(author uuid.UUID, title string) *model.Recipe {
	now := time.Now().UTC()
	return &model.Recipe{
		ID:          uuid.New(),
		AuthorID:    author,
		Title:       title,
		Description: "A reliable weeknight " + title,
		Category:    model.CategoryDinner,
		Cuisine:     "italian",
		DietaryTags: []string{"vegetarian"},
		Tags:        []string{"weeknight"},
		Ingredients: []model.Ingredient{
			{Name: "Spaghetti", Quantity: 200, Unit: "grams"},
			{Name: "Garlic", Quantity: 2, Unit: "cloves"},
		},
		Instructions: []model.InstructionStep{
			{StepNumber: 1, Description: "Boil the pasta"},
			{StepNumber: 2, Description: "Toss with garlic"},
		},
		PrepTime:     10,
		CookingTime:  15,
		TotalTime:    25,
		Difficulty:   model.DifficultyEasy,
		Servings:     4,
		Images:       []string{},
		Ratings:      []model.Rating{},
		Likes:        []uuid.UUID{},
		IsApproved:   true,
		IsPublished:  true,
		PublishedAt:  &now,
		LastModified: now,
		Version:      1,
	}
}

// Insert saves every value or fails the test.
func Insert(t *testing.T, db *gorm.DB, values ...interface{}) {
	t.Helper()
	for _, v := range values {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("failed to insert %T: %v", v, err)
		}
	}
}
