// Command admin performs account maintenance against the recipe database.
//
//	admin create-admin -email ops@example.com -username ops -password ...
//	admin reset-admin  -email ops@example.com -password ...
//	admin list-users
//	admin set-role     -id <uuid> -role user|admin
//	admin delete-user  -id <uuid>
//	admin issue-token  -id <uuid> [-ttl 24h]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pageza/recipehub/backend/config"
	"github.com/pageza/recipehub/backend/internal/database"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/middleware"
	"github.com/pageza/recipehub/backend/internal/repository"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}

	cli := &CLI{
		Users:  repository.NewUserRepository(db),
		Tokens: middleware.NewTokenVerifier(cfg.JWTSecret),
		Out:    os.Stdout,
	}
	if err := cli.Run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
