package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorCollectsEveryField(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("title", "min", "title must be at least 3 characters").
		Add("servings", "max", "servings must be at most 100")

	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "title must be at least 3 characters; servings must be at most 100", verr.Error())
	assert.ErrorIs(t, verr, ErrValidation)
}

func TestValidationErrorOrNil(t *testing.T) {
	assert.NoError(t, (&ValidationError{}).OrNil())

	var nilErr *ValidationError
	assert.NoError(t, nilErr.OrNil())

	assert.Error(t, Validation("rating", "range", "rating must be between 1 and 5").OrNil())
}

func TestSentinelMatching(t *testing.T) {
	wrapped := fmt.Errorf("loading recipe: %w", NotFound("recipe", "abc"))
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, "loading recipe: recipe not found with id abc", wrapped.Error())

	assert.ErrorIs(t, Conflict("meal plan", "user/week"), ErrConflict)
	assert.ErrorIs(t, Forbidden("nope"), ErrForbidden)
}

func TestStoreErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Store("save recipe", cause)

	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "save recipe", storeErr.Op)
}
