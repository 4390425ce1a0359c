package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipehub/backend/config"
	"github.com/pageza/recipehub/backend/internal/database"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/server"
	"github.com/pageza/recipehub/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := config.ValidateConfig(cfg); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	opts := server.Options{}

	// Rate limiting is optional: without redis the limits are not enforced.
	if cfg.RedisURL != "" || cfg.RedisHost != "" {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		} else {
			opts.Redis = client
			defer closeRedis(client)
		}
	}

	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to configure S3")
		}
		opts.Media = service.NewS3MediaResolver(s3cfg)
		logging.Info().Str("bucket", cfg.S3BucketName).Msg("media references resolved against S3")
	}

	srv := server.New(cfg, db, opts)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("received signal")
	}

	logging.Info().Msg("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logging.Fatal().Err(err).Msg("server shutdown error")
	}
	logging.Info().Msg("server stopped")
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close redis client")
	}
}
