package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/service"
	"github.com/pageza/recipehub/backend/internal/types"
)

// AdminHandler exposes moderation endpoints.
type AdminHandler struct {
	recipes  service.IRecipeService
	verifier *middleware.TokenVerifier
}

func NewAdminHandler(recipes service.IRecipeService, verifier *middleware.TokenVerifier) *AdminHandler {
	return &AdminHandler{recipes: recipes, verifier: verifier}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.Authenticate(h.verifier), middleware.RequireAdmin())
	{
		admin.PATCH("/recipes/:id/approval", h.SetApproval)
		admin.DELETE("/recipes/:id", h.DeleteRecipe)
	}
}

func (h *AdminHandler) SetApproval(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.ApprovalRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Approved == nil {
		fail(c, apperror.Validation("approved", "required", "approved is required"))
		return
	}
	recipe, err := h.recipes.SetApproval(c.Request.Context(), id, *req.Approved)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *AdminHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	logging.Ctx(c.Request.Context()).Info().
		Str("recipe_id", id.String()).
		Str("admin_id", p.UserID.String()).
		Msg("recipe removed by admin")
	c.Status(http.StatusNoContent)
}
