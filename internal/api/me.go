package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/service"
)

// MeHandler serves the caller's own dashboard lists.
type MeHandler struct {
	recipes   service.IRecipeService
	bookmarks service.IBookmarkService
	verifier  *middleware.TokenVerifier
}

func NewMeHandler(recipes service.IRecipeService, bookmarks service.IBookmarkService, verifier *middleware.TokenVerifier) *MeHandler {
	return &MeHandler{recipes: recipes, bookmarks: bookmarks, verifier: verifier}
}

func (h *MeHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/me")
	me.Use(middleware.Authenticate(h.verifier))
	{
		me.GET("/recipes", h.MyRecipes)
		me.GET("/bookmarks", h.MyBookmarks)
	}
}

// MyRecipes includes drafts and recipes awaiting approval.
func (h *MeHandler) MyRecipes(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.ByAuthor(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *MeHandler) MyBookmarks(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	recipes, err := h.bookmarks.List(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
