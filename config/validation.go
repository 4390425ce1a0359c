package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the loaded configuration and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.DBDriver {
	case "postgres":
		for field, value := range map[string]string{
			"DB_HOST":     cfg.DBHost,
			"DB_PORT":     cfg.DBPort,
			"DB_USER":     cfg.DBUser,
			"DB_PASSWORD": cfg.DBPassword,
			"DB_NAME":     cfg.DBName,
		} {
			if value == "" {
				errs = append(errs, ValidationError{field, "is required for the postgres driver"})
			}
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for the sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", "must be postgres or sqlite"})
	}

	if cfg.JWTSecret == "" {
		source := "jwt_secret secret"
		if cfg.Environment == CI {
			source = "JWT_SECRET environment variable"
		}
		errs = append(errs, ValidationError{"JWT_SECRET", source + " is required"})
	} else if cfg.Environment == Production && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{"JWT_SECRET", "must be at least 32 characters in production"})
	}

	if cfg.Environment == Production && cfg.DBDriver != "postgres" {
		errs = append(errs, ValidationError{"DB_DRIVER", "production requires postgres"})
	}

	if cfg.CatalogDefaultLimit < 1 {
		errs = append(errs, ValidationError{"CATALOG_DEFAULT_LIMIT", "must be positive"})
	}
	if cfg.CatalogMaxLimit < cfg.CatalogDefaultLimit {
		errs = append(errs, ValidationError{"CATALOG_MAX_LIMIT", "must not be below CATALOG_DEFAULT_LIMIT"})
	}

	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}
