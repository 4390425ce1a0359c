package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/service"
	"github.com/pageza/recipehub/backend/internal/types"
)

type RecipeHandler struct {
	recipes       service.IRecipeService
	bookmarks     service.IBookmarkService
	verifier      *middleware.TokenVerifier
	createLimiter *middleware.RateLimiter
	rateLimiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipes service.IRecipeService, bookmarks service.IBookmarkService, verifier *middleware.TokenVerifier, createLimiter, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:       recipes,
		bookmarks:     bookmarks,
		verifier:      verifier,
		createLimiter: createLimiter,
		rateLimiter:   rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.Authenticate(h.verifier)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/popular", h.PopularRecipes)
		recipes.GET("/:id", middleware.OptionalAuth(h.verifier), h.GetRecipe)

		recipes.POST("", auth, h.createLimiter.Middleware(), h.CreateRecipe)
		recipes.PUT("/:id", auth, h.UpdateRecipe)
		recipes.PATCH("/:id/publish", auth, h.SetPublished)
		recipes.POST("/:id/ratings", auth, h.rateLimiter.Middleware(), h.RateRecipe)
		recipes.POST("/:id/like", auth, h.ToggleLike)
		recipes.POST("/:id/bookmark", auth, h.SaveBookmark)
		recipes.DELETE("/:id/bookmark", auth, h.RemoveBookmark)
	}
}

// ListRecipes serves the catalog: approved and published recipes only.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	verr := &apperror.ValidationError{}
	params := catalog.Params{
		Page:       queryInt(c, "page", verr),
		Limit:      queryInt(c, "limit", verr),
		Category:   c.Query("category"),
		Dietary:    queryList(c, "dietary"),
		Difficulty: c.Query("difficulty"),
		Search:     c.Query("search"),
		Ingredient: c.Query("ingredient"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}
	if err := verr.OrNil(); err != nil {
		fail(c, err)
		return
	}

	page, err := h.recipes.List(c.Request.Context(), params)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) PopularRecipes(c *gin.Context) {
	verr := &apperror.ValidationError{}
	limit := queryInt(c, "limit", verr)
	if err := verr.OrNil(); err != nil {
		fail(c, err)
		return
	}
	recipes, err := h.recipes.Popular(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns the detail view. ?servings=N scales ingredient quantities.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	verr := &apperror.ValidationError{}
	servings := queryInt(c, "servings", verr)
	if err := verr.OrNil(); err != nil {
		fail(c, err)
		return
	}

	viewer, _ := middleware.PrincipalFrom(c)
	recipe, err := h.recipes.Get(c.Request.Context(), id, viewer, servings)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var in types.RecipeInput
	if !bindJSON(c, &in) {
		return
	}
	recipe, err := h.recipes.Create(c.Request.Context(), p, &in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in types.RecipeInput
	if !bindJSON(c, &in) {
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), p, id, &in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) SetPublished(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.PublishRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Published == nil {
		fail(c, apperror.Validation("published", "required", "published is required"))
		return
	}
	recipe, err := h.recipes.SetPublished(c.Request.Context(), p, id, *req.Published)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.RateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipes.Rate(c.Request.Context(), id, p.UserID, req.Rating, req.Review)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) ToggleLike(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.ToggleLike(c.Request.Context(), id, p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) SaveBookmark(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.bookmarks.Save(c.Request.Context(), p.UserID, id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *RecipeHandler) RemoveBookmark(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.bookmarks.Remove(c.Request.Context(), p.UserID, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
