package scaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/model"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		base      int
		requested int
		want      float64
	}{
		{"upscale", 200, 4, 6, 300},
		{"identity", 1.25, 3, 3, 1.25},
		{"halve", 2, 4, 2, 1},
		{"fractional", 1, 3, 1, 1.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scale(tt.quantity, tt.base, tt.requested)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScaleLinearity(t *testing.T) {
	for _, q := range []float64{0.5, 1, 7.3, 200} {
		for _, s := range []int{1, 2, 4, 12} {
			same, err := Scale(q, s, s)
			require.NoError(t, err)
			double, err := Scale(q, s, 2*s)
			require.NoError(t, err)

			assert.InDelta(t, q, same, 1e-9)
			assert.InDelta(t, 2*same, double, 1e-9)
		}
	}
}

func TestScaleRejectsNonPositiveServings(t *testing.T) {
	_, err := Scale(1, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidServings)
	_, err = Scale(1, 4, -1)
	assert.ErrorIs(t, err, ErrInvalidServings)
}

func TestIngredientsDoesNotMutateInput(t *testing.T) {
	ings := []model.Ingredient{
		{Name: "flour", Quantity: 1, Unit: "cups"},
		{Name: "salt", Quantity: 0.5, Unit: "tsp"},
	}

	scaled, err := Ingredients(ings, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 0.67, scaled[0].Quantity)
	assert.Equal(t, 0.33, scaled[1].Quantity)
	assert.Equal(t, "cups", scaled[0].Unit)
	assert.Equal(t, 1.0, ings[0].Quantity)
	assert.Equal(t, 0.5, ings[1].Quantity)
}
