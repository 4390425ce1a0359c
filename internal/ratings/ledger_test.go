package ratings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/model"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestUpsertAppendsNewUser(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()

	got, err := Upsert(nil, u1, 4, "good", now)
	require.NoError(t, err)
	got, err = Upsert(got, u2, 2, "", now)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, u1, got[0].UserID)
	assert.Equal(t, 4, got[0].Value)
	assert.Equal(t, u2, got[1].UserID)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	u1, u2 := uuid.New(), uuid.New()
	existing := []model.Rating{
		{UserID: u1, Value: 5, Review: "great", CreatedAt: now.Add(-time.Hour)},
		{UserID: u2, Value: 3, CreatedAt: now.Add(-time.Hour)},
	}

	got, err := Upsert(existing, u1, 1, "changed my mind", now)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, u1, got[0].UserID)
	assert.Equal(t, 1, got[0].Value)
	assert.Equal(t, "changed my mind", got[0].Review)
	assert.Equal(t, now, got[0].CreatedAt)
	// the caller's slice is not modified
	assert.Equal(t, 5, existing[0].Value)
}

func TestUpsertSameUserRepeatedlyKeepsOneEntry(t *testing.T) {
	u := uuid.New()
	var got []model.Rating
	var err error
	for _, v := range []int{3, 5, 1, 4, 2} {
		got, err = Upsert(got, u, v, "", now)
		require.NoError(t, err)
	}
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Value)
}

func TestUpsertValidation(t *testing.T) {
	_, err := Upsert(nil, uuid.Nil, 6, "", now)
	require.ErrorIs(t, err, apperror.ErrValidation)

	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	_, err = Upsert(nil, uuid.New(), 0, "", now)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		avg    float64
		total  int
	}{
		{"empty", nil, 0, 0},
		{"single", []int{4}, 4, 1},
		{"whole", []int{5, 4, 3}, 4.0, 3},
		{"rounds half up", []int{5, 4, 4, 4}, 4.3, 4},
		{"rounds down", []int{5, 5, 4}, 4.7, 3},
		{"thirds", []int{1, 2, 2}, 1.7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := make([]model.Rating, len(tt.values))
			for i, v := range tt.values {
				rs[i] = model.Rating{UserID: uuid.New(), Value: v}
			}
			agg := Recompute(rs)
			assert.Equal(t, tt.avg, agg.AverageRating)
			assert.Equal(t, tt.total, agg.TotalRatings)
		})
	}
}

func TestApplyWorkedExample(t *testing.T) {
	recipe := &model.Recipe{}
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, v := range []int{5, 4, 3} {
		require.NoError(t, Apply(recipe, users[i], v, "", now))
	}
	assert.Equal(t, 4.0, recipe.AverageRating)
	assert.Equal(t, 3, recipe.TotalRatings)

	newcomer := uuid.New()
	require.NoError(t, Apply(recipe, newcomer, 2, "", now))
	assert.Equal(t, 3.5, recipe.AverageRating)
	assert.Equal(t, 4, recipe.TotalRatings)

	require.NoError(t, Apply(recipe, newcomer, 5, "", now))
	assert.Equal(t, 4.3, recipe.AverageRating)
	assert.Equal(t, 4, recipe.TotalRatings)
	assert.Equal(t, now, recipe.LastModified)
}
