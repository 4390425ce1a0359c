package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/mocks"
	"github.com/pageza/recipehub/backend/internal/model"
	"github.com/pageza/recipehub/backend/internal/types"
)

const secret = "api-handler-test-secret-0123456789"

type fixture struct {
	engine  *gin.Engine
	recipes *mocks.MockRecipeService
	plans   *mocks.MockMealPlanService
	tokens  *middleware.TokenVerifier
}

func setup(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		engine:  gin.New(),
		recipes: &mocks.MockRecipeService{},
		plans:   &mocks.MockMealPlanService{},
		tokens:  middleware.NewTokenVerifier(secret),
	}
	f.engine.Use(middleware.ErrorHandler())
	v1 := f.engine.Group("/api/v1")
	NewRecipeHandler(f.recipes, nil, f.tokens, nil, nil).RegisterRoutes(v1)
	NewMealPlanHandler(f.plans, f.tokens).RegisterRoutes(v1)
	NewAdminHandler(f.recipes, f.tokens).RegisterRoutes(v1)
	t.Cleanup(func() {
		f.recipes.AssertExpectations(t)
		f.plans.AssertExpectations(t)
	})
	return f
}

func (f *fixture) token(t *testing.T, role string) (types.Principal, string) {
	p := types.Principal{UserID: uuid.New(), Role: role}
	tok, err := f.tokens.Sign(p, time.Hour)
	require.NoError(t, err)
	return p, tok
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestListRecipesPassesParams(t *testing.T) {
	f := setup(t)
	want := catalog.Params{
		Page:      2,
		Limit:     5,
		Category:  model.CategoryDinner,
		Dietary:   []string{"vegan", "keto", "paleo"},
		Search:    "soup",
		SortBy:    "views",
		SortOrder: "asc",
	}
	page := &catalog.Page[types.RecipeView]{
		Recipes:    []types.RecipeView{},
		Pagination: catalog.NewPagination(2, 5, 7),
	}
	f.recipes.On("List", mock.Anything, want).Return(page, nil).Once()

	w := f.do(http.MethodGet,
		"/api/v1/recipes?page=2&limit=5&category=dinner&dietary=vegan,keto&dietary=paleo&search=soup&sortBy=views&sortOrder=asc", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got catalog.Page[types.RecipeView]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Pagination.TotalPages)
	assert.True(t, got.Pagination.HasPrevPage)
	assert.False(t, got.Pagination.HasNextPage)
}

func TestMalformedQueryCollectsEveryField(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodGet, "/api/v1/recipes?page=two&limit=ten", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := errorBody(t, w)
	assert.Equal(t, "validation failed", resp.Error)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "page", resp.Details[0].Field)
	assert.Equal(t, "limit", resp.Details[1].Field)
}

func TestStoreFailureIs503WithoutInternals(t *testing.T) {
	f := setup(t)
	id := uuid.New()
	f.recipes.On("Get", mock.Anything, id, (*types.Principal)(nil), 0).
		Return(nil, apperror.Store("recipes.find_by_id", errors.New("dial tcp 10.0.0.5:5432: connection refused"))).Once()

	w := f.do(http.MethodGet, "/api/v1/recipes/"+id.String(), "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestGetRecipeRejectsBadIDAndServings(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodGet, "/api/v1/recipes/not-a-uuid", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", errorBody(t, w).Details[0].Field)

	w = f.do(http.MethodGet, "/api/v1/recipes/"+uuid.NewString()+"?servings=lots", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "servings", errorBody(t, w).Details[0].Field)
}

func TestGetRecipePassesViewer(t *testing.T) {
	f := setup(t)
	p, tok := f.token(t, model.RoleUser)
	id := uuid.New()
	recipe := &types.RecipeView{Recipe: &model.Recipe{ID: id, Title: "Draft"}}
	f.recipes.On("Get", mock.Anything, id, &p, 6).Return(recipe, nil).Once()

	w := f.do(http.MethodGet, "/api/v1/recipes/"+id.String()+"?servings=6", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Draft"`)
}

func TestCreateRecipeRequiresToken(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPost, "/api/v1/recipes", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodPost, "/api/v1/recipes", "garbage", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeBadJSON(t *testing.T) {
	f := setup(t)
	_, tok := f.token(t, model.RoleUser)

	w := f.do(http.MethodPost, "/api/v1/recipes", tok, `{"title":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "body", errorBody(t, w).Details[0].Field)
}

func TestCreateRecipeValidationDetails(t *testing.T) {
	f := setup(t)
	p, tok := f.token(t, model.RoleUser)
	verr := &apperror.ValidationError{}
	verr.Add("title", "required", "title is required")
	verr.Add("servings", "lte", "servings must be less than or equal to 100")
	f.recipes.On("Create", mock.Anything, p, mock.AnythingOfType("*types.RecipeInput")).Return(nil, verr).Once()

	w := f.do(http.MethodPost, "/api/v1/recipes", tok, `{"servings":500}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := errorBody(t, w)
	assert.Len(t, resp.Details, 2)
}

func TestRateRecipeForwardsPayload(t *testing.T) {
	f := setup(t)
	p, tok := f.token(t, model.RoleUser)
	id := uuid.New()
	f.recipes.On("Rate", mock.Anything, id, p.UserID, 5, "perfect").
		Return(&types.RecipeView{Recipe: &model.Recipe{ID: id, AverageRating: 5, TotalRatings: 1}}, nil).Once()

	w := f.do(http.MethodPost, "/api/v1/recipes/"+id.String()+"/ratings", tok, `{"rating":5,"review":"perfect"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"averageRating":5`)
}

func TestUpdateForbidden(t *testing.T) {
	f := setup(t)
	p, tok := f.token(t, model.RoleUser)
	id := uuid.New()
	f.recipes.On("Update", mock.Anything, p, id, mock.Anything).
		Return(nil, apperror.Forbidden("only the author or an admin may modify this recipe")).Once()

	w := f.do(http.MethodPut, "/api/v1/recipes/"+id.String(), tok, `{}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	f := setup(t)
	_, userTok := f.token(t, model.RoleUser)
	_, adminTok := f.token(t, model.RoleAdmin)
	id := uuid.New()

	w := f.do(http.MethodDelete, "/api/v1/admin/recipes/"+id.String(), userTok, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	f.recipes.On("Delete", mock.Anything, id).Return(nil).Once()
	w = f.do(http.MethodDelete, "/api/v1/admin/recipes/"+id.String(), adminTok, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMealPlanWeekStartParsing(t *testing.T) {
	f := setup(t)
	p, tok := f.token(t, model.RoleUser)

	w := f.do(http.MethodGet, "/api/v1/meal-plans", tok, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/api/v1/meal-plans?weekStart=10/03/2025", tok, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	week := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f.plans.On("GetPlan", mock.Anything, p.UserID, week).Return(nil, nil).Once()
	w = f.do(http.MethodGet, "/api/v1/meal-plans?weekStart=2025-03-10", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mealPlan":null}`, w.Body.String())
}
