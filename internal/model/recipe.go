package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Ingredient quantities are expressed against the recipe's Servings.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type InstructionStep struct {
	StepNumber  int    `json:"stepNumber"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Timer       *int   `json:"timer,omitempty"`
}

// Rating is one user's rating of a recipe. A recipe holds at most one per UserID.
type Rating struct {
	UserID    uuid.UUID `json:"userId"`
	Value     int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Recipe is the single canonical recipe record. AverageRating and TotalRatings
// are derived from Ratings and are only ever written by the ratings ledger.
type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"authorId"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:20;not null;index" json:"category"`
	Cuisine     string    `gorm:"size:20" json:"cuisine,omitempty"`

	DietaryTags  datatypes.JSONSlice[string]          `json:"dietaryTags"`
	Tags         datatypes.JSONSlice[string]          `json:"tags"`
	Ingredients  datatypes.JSONSlice[Ingredient]      `json:"ingredients"`
	Instructions datatypes.JSONSlice[InstructionStep] `json:"instructions"`

	PrepTime    int    `gorm:"not null" json:"prepTime"`
	CookingTime int    `gorm:"not null" json:"cookingTime"`
	TotalTime   int    `gorm:"not null" json:"totalTime"`
	Difficulty  string `gorm:"size:10;not null;index" json:"difficulty"`
	Servings    int    `gorm:"not null" json:"servings"`

	Images   datatypes.JSONSlice[string] `json:"images"`
	VideoURL string                      `gorm:"size:500" json:"videoUrl,omitempty"`

	Nutrition NutritionInfo `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutritionInfo"`

	Ratings       datatypes.JSONSlice[Rating] `json:"ratings"`
	AverageRating float64                     `gorm:"not null;index" json:"averageRating"`
	TotalRatings  int                         `gorm:"not null" json:"totalRatings"`

	Views int64                          `gorm:"not null;index" json:"views"`
	Likes datatypes.JSONSlice[uuid.UUID] `json:"likes"`

	IsApproved   bool       `gorm:"not null;index:idx_recipes_visibility" json:"isApproved"`
	IsPublished  bool       `gorm:"not null;index:idx_recipes_visibility" json:"isPublished"`
	IsPremium    bool       `gorm:"not null" json:"isPremium"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	LastModified time.Time  `gorm:"not null" json:"lastModified"`

	// Version guards read-modify-write updates of the document.
	Version int `gorm:"not null" json:"-"`
}

// LikesCount is the number of distinct users who liked the recipe.
func (r *Recipe) LikesCount() int {
	return len(r.Likes)
}

// Visible reports whether the recipe may appear in catalog results.
func (r *Recipe) Visible() bool {
	return r.IsApproved && r.IsPublished
}

// MarkPublished records the first publication time; later calls keep it.
func (r *Recipe) MarkPublished(now time.Time) {
	if r.IsPublished && r.PublishedAt == nil {
		published := now
		r.PublishedAt = &published
	}
}
