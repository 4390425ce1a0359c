package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/recipehub/backend/internal/api"
	"github.com/pageza/recipehub/backend/internal/middleware"
)

// Handlers groups the API handlers mounted by SetupRouter.
type Handlers struct {
	Health    *api.HealthHandler
	Recipes   *api.RecipeHandler
	MealPlans *api.MealPlanHandler
	Me        *api.MeHandler
	Admin     *api.AdminHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
		middleware.CORS(allowedOrigins),
	)

	router.GET("/health", h.Health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	h.Recipes.RegisterRoutes(v1)
	h.MealPlans.RegisterRoutes(v1)
	h.Me.RegisterRoutes(v1)
	h.Admin.RegisterRoutes(v1)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "route not found"})
	})
	return router
}
