package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/types"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) view(args mock.Arguments) (*types.RecipeView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

func (m *MockRecipeService) views(args mock.Arguments) ([]types.RecipeView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeView), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, principal types.Principal, in *types.RecipeInput) (*types.RecipeView, error) {
	return m.view(m.Called(ctx, principal, in))
}

func (m *MockRecipeService) Get(ctx context.Context, id uuid.UUID, viewer *types.Principal, servings int) (*types.RecipeView, error) {
	return m.view(m.Called(ctx, id, viewer, servings))
}

func (m *MockRecipeService) List(ctx context.Context, params catalog.Params) (*catalog.Page[types.RecipeView], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Page[types.RecipeView]), args.Error(1)
}

func (m *MockRecipeService) Popular(ctx context.Context, limit int) ([]types.RecipeView, error) {
	return m.views(m.Called(ctx, limit))
}

func (m *MockRecipeService) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]types.RecipeView, error) {
	return m.views(m.Called(ctx, authorID))
}

func (m *MockRecipeService) Update(ctx context.Context, principal types.Principal, id uuid.UUID, in *types.RecipeInput) (*types.RecipeView, error) {
	return m.view(m.Called(ctx, principal, id, in))
}

func (m *MockRecipeService) Rate(ctx context.Context, id, userID uuid.UUID, rating int, review string) (*types.RecipeView, error) {
	return m.view(m.Called(ctx, id, userID, rating, review))
}

func (m *MockRecipeService) ToggleLike(ctx context.Context, id, userID uuid.UUID) (*types.RecipeView, error) {
	return m.view(m.Called(ctx, id, userID))
}

func (m *MockRecipeService) IncrementViews(ctx context.Context, id uuid.UUID) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *MockRecipeService) SetPublished(ctx context.Context, principal types.Principal, id uuid.UUID, published bool) (*types.RecipeView, error) {
	return m.view(m.Called(ctx, principal, id, published))
}

func (m *MockRecipeService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*types.RecipeView, error) {
	return m.view(m.Called(ctx, id, approved))
}

func (m *MockRecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockMealPlanService is a mock implementation of service.IMealPlanService
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) UpsertPlan(ctx context.Context, userID uuid.UUID, req *types.MealPlanRequest) (*types.MealPlanView, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MealPlanView), args.Error(1)
}

func (m *MockMealPlanService) GetPlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*types.MealPlanView, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MealPlanView), args.Error(1)
}

func (m *MockMealPlanService) DeletePlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	return m.Called(ctx, userID, weekStart).Error(0)
}
