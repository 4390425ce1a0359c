// Package scaling converts ingredient quantities between serving counts.
package scaling

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pageza/recipehub/backend/internal/model"
)

var ErrInvalidServings = errors.New("servings must be positive")

// Scale returns quantity * requested / base. The result is not rounded.
func Scale(quantity float64, base, requested int) (float64, error) {
	if base <= 0 || requested <= 0 {
		return 0, ErrInvalidServings
	}
	return quantity * float64(requested) / float64(base), nil
}

// Display rounds a scaled quantity to two decimal places for presentation.
func Display(quantity float64) float64 {
	v, _ := decimal.NewFromFloat(quantity).Round(2).Float64()
	return v
}

// Ingredients returns a scaled copy of ings with display rounding applied.
// The input slice is left untouched.
func Ingredients(ings []model.Ingredient, base, requested int) ([]model.Ingredient, error) {
	out := make([]model.Ingredient, len(ings))
	for i, ing := range ings {
		q, err := Scale(ing.Quantity, base, requested)
		if err != nil {
			return nil, err
		}
		ing.Quantity = Display(q)
		out[i] = ing
	}
	return out, nil
}
