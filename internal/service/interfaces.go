package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/types"
)

// IRecipeService defines the recipe lifecycle and catalog operations
type IRecipeService interface {
	Create(ctx context.Context, principal types.Principal, in *types.RecipeInput) (*types.RecipeView, error)
	// Get returns the recipe detail. servings > 0 scales ingredient
	// quantities for display; viewer may be nil for anonymous callers.
	Get(ctx context.Context, id uuid.UUID, viewer *types.Principal, servings int) (*types.RecipeView, error)
	List(ctx context.Context, params catalog.Params) (*catalog.Page[types.RecipeView], error)
	Popular(ctx context.Context, limit int) ([]types.RecipeView, error)
	ByAuthor(ctx context.Context, authorID uuid.UUID) ([]types.RecipeView, error)
	Update(ctx context.Context, principal types.Principal, id uuid.UUID, in *types.RecipeInput) (*types.RecipeView, error)
	Rate(ctx context.Context, id, userID uuid.UUID, rating int, review string) (*types.RecipeView, error)
	ToggleLike(ctx context.Context, id, userID uuid.UUID) (*types.RecipeView, error)
	IncrementViews(ctx context.Context, id uuid.UUID) bool
	SetPublished(ctx context.Context, principal types.Principal, id uuid.UUID, published bool) (*types.RecipeView, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*types.RecipeView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IMealPlanService defines the weekly meal plan operations
type IMealPlanService interface {
	UpsertPlan(ctx context.Context, userID uuid.UUID, req *types.MealPlanRequest) (*types.MealPlanView, error)
	// GetPlan returns nil without error when the week has no plan.
	GetPlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*types.MealPlanView, error)
	DeletePlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) error
}

// IBookmarkService defines saved-recipe operations
type IBookmarkService interface {
	Save(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]types.RecipeView, error)
}

// IMediaResolver turns a stored-asset reference into a public URL.
type IMediaResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

var (
	_ IRecipeService   = (*RecipeService)(nil)
	_ IMealPlanService = (*MealPlanService)(nil)
	_ IBookmarkService = (*BookmarkService)(nil)
	_ IMediaResolver   = (*S3MediaResolver)(nil)
	_ IMediaResolver   = PassthroughResolver{}
)
