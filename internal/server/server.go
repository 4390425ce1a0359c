package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipehub/backend/config"
	"github.com/pageza/recipehub/backend/internal/api"
	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/router"
	"github.com/pageza/recipehub/backend/internal/service"
)

const Version = "v1.0.0"

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// Options carries the optional collaborators of the server. A nil Redis
// client disables rate limiting; a nil Media resolver stores references as-is.
type Options struct {
	Redis *redis.Client
	Media service.IMediaResolver
}

// New wires repositories, services and handlers on top of db.
func New(cfg *config.Config, db *gorm.DB, opts Options) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	recipeRepo := repository.NewRecipeRepository(db)
	profiles := service.NewProfileService(repository.NewUserRepository(db))
	builder := catalog.NewBuilder(cfg.CatalogDefaultLimit, cfg.CatalogMaxLimit)

	recipes := service.NewRecipeService(recipeRepo, profiles, opts.Media, builder, cfg.RecipesAutoApprove)
	plans := service.NewMealPlanService(repository.NewMealPlanRepository(db), recipeRepo)
	bookmarks := service.NewBookmarkService(repository.NewBookmarkRepository(db), recipeRepo, profiles)

	verifier := middleware.NewTokenVerifier(cfg.JWTSecret)
	handlers := router.Handlers{
		Health: api.NewHealthHandler(db, Version),
		Recipes: api.NewRecipeHandler(recipes, bookmarks, verifier,
			middleware.NewRecipeCreationRateLimiter(opts.Redis),
			middleware.NewRatingRateLimiter(opts.Redis)),
		MealPlans: api.NewMealPlanHandler(plans, verifier),
		Me:        api.NewMeHandler(recipes, bookmarks, verifier),
		Admin:     api.NewAdminHandler(recipes, verifier),
	}

	return &Server{
		cfg:    cfg,
		router: router.SetupRouter(handlers, cfg.AllowedOrigins()),
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logging.Info().Str("addr", s.cfg.Addr()).Str("environment", s.cfg.Environment.String()).Msg("server starting")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
