// Package ratings maintains the one-rating-per-user ledger of a recipe and
// the aggregate derived from it.
package ratings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/model"
)

const (
	MinRating       = 1
	MaxRating       = 5
	MaxReviewLength = 500
)

// Aggregate is the derived rating summary stored on a recipe.
type Aggregate struct {
	AverageRating float64
	TotalRatings  int
}

// Upsert returns a new ratings slice in which userID has exactly one entry
// carrying value and review. An existing entry keeps its position.
func Upsert(existing []model.Rating, userID uuid.UUID, value int, review string, now time.Time) ([]model.Rating, error) {
	verr := &apperror.ValidationError{}
	if userID == uuid.Nil {
		verr.Add("userId", "required", "userId is required")
	}
	if value < MinRating || value > MaxRating {
		verr.Add("rating", "range", "rating must be between 1 and 5")
	}
	if len([]rune(review)) > MaxReviewLength {
		verr.Add("review", "max", "review must be at most 500 characters")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	out := make([]model.Rating, len(existing), len(existing)+1)
	copy(out, existing)
	for i := range out {
		if out[i].UserID == userID {
			out[i].Value = value
			out[i].Review = review
			out[i].CreatedAt = now
			return out, nil
		}
	}
	return append(out, model.Rating{
		UserID:    userID,
		Value:     value,
		Review:    review,
		CreatedAt: now,
	}), nil
}

// Recompute derives the aggregate from ratings. The average is rounded
// half away from zero to one decimal; an empty ledger yields zeros.
func Recompute(ratings []model.Rating) Aggregate {
	if len(ratings) == 0 {
		return Aggregate{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	avg, _ := decimal.NewFromInt(int64(sum)).
		DivRound(decimal.NewFromInt(int64(len(ratings))), 8).
		Round(1).
		Float64()
	return Aggregate{AverageRating: avg, TotalRatings: len(ratings)}
}

// Apply upserts the rating into the recipe and refreshes its aggregate and
// lastModified in one step, so the two are never persisted out of sync.
func Apply(recipe *model.Recipe, userID uuid.UUID, value int, review string, now time.Time) error {
	updated, err := Upsert(recipe.Ratings, userID, value, review, now)
	if err != nil {
		return err
	}
	recipe.Ratings = updated
	agg := Recompute(updated)
	recipe.AverageRating = agg.AverageRating
	recipe.TotalRatings = agg.TotalRatings
	recipe.LastModified = now
	return nil
}
