// Command seed fills an empty database with a small demo catalog.
package main

import (
	"context"

	"github.com/pageza/recipehub/backend/config"
	"github.com/pageza/recipehub/backend/internal/catalog"
	"github.com/pageza/recipehub/backend/internal/database"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/repository"
	"github.com/pageza/recipehub/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	users := repository.NewUserRepository(db)
	recipes := service.NewRecipeService(
		repository.NewRecipeRepository(db),
		service.NewProfileService(users),
		nil,
		catalog.NewBuilder(cfg.CatalogDefaultLimit, cfg.CatalogMaxLimit),
		true,
	)

	seeder := &Seeder{Users: users, Recipes: recipes}
	res, err := seeder.Seed(context.Background())
	if err != nil {
		logging.Fatal().Err(err).Msg("seeding failed")
	}
	logging.Info().
		Int("users", res.Users).
		Int("recipes", res.Recipes).
		Int("ratings", res.Ratings).
		Msg("seed complete")
}
