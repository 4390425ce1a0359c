package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/service"
	"github.com/pageza/recipehub/backend/internal/types"
)

type MealPlanHandler struct {
	plans    service.IMealPlanService
	verifier *middleware.TokenVerifier
}

func NewMealPlanHandler(plans service.IMealPlanService, verifier *middleware.TokenVerifier) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, verifier: verifier}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	plans.Use(middleware.Authenticate(h.verifier))
	{
		plans.GET("", h.GetPlan)
		plans.PUT("", h.UpsertPlan)
		plans.DELETE("", h.DeletePlan)
	}
}

// GetPlan answers {"mealPlan": null} when the week has no plan.
func (h *MealPlanHandler) GetPlan(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	week, ok := weekStartParam(c)
	if !ok {
		return
	}
	plan, err := h.plans.GetPlan(c.Request.Context(), p.UserID, week)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": plan})
}

func (h *MealPlanHandler) UpsertPlan(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req types.MealPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.plans.UpsertPlan(c.Request.Context(), p.UserID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": plan})
}

func (h *MealPlanHandler) DeletePlan(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	week, ok := weekStartParam(c)
	if !ok {
		return
	}
	if err := h.plans.DeletePlan(c.Request.Context(), p.UserID, week); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func weekStartParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("weekStart")
	if raw == "" {
		fail(c, apperror.Validation("weekStart", "required", "weekStart is required"))
		return time.Time{}, false
	}
	week, err := types.ParseWeekStart(raw)
	if err != nil {
		fail(c, apperror.Validation("weekStart", "datetime", "weekStart must be a date in the form 2006-01-02"))
		return time.Time{}, false
	}
	return week, true
}
