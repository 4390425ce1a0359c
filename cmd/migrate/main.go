package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pageza/recipehub/backend/config"
	"github.com/pageza/recipehub/backend/internal/database"
	"github.com/pageza/recipehub/backend/internal/logging"
)

func main() {
	status := flag.Bool("status", false, "Report which tables exist without migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}

	if *status {
		missing := 0
		for _, m := range database.Models() {
			exists := db.Migrator().HasTable(m)
			if !exists {
				missing++
			}
			fmt.Printf("%-24T present=%t\n", m, exists)
		}
		if missing > 0 {
			os.Exit(1)
		}
		return
	}

	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	fmt.Println("All migrations applied successfully.")
}
