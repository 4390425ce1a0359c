package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `mapstructure:"-"`

	// Server configuration
	ServerPort       string `mapstructure:"SERVER_PORT"`
	ServerHost       string `mapstructure:"SERVER_HOST"`
	CorsAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`

	// Database configuration
	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSL_MODE"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// Redis configuration
	RedisURL      string `mapstructure:"REDIS_URL"`
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// JWT configuration
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Media storage. An empty bucket stores media references unchanged.
	S3BucketName string `mapstructure:"S3_BUCKET_NAME"`
	AWSRegion    string `mapstructure:"AWS_REGION"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Catalog paging
	CatalogDefaultLimit int `mapstructure:"CATALOG_DEFAULT_LIMIT"`
	CatalogMaxLimit     int `mapstructure:"CATALOG_MAX_LIMIT"`

	// New recipes skip moderation when set.
	RecipesAutoApprove bool `mapstructure:"RECIPES_AUTO_APPROVE"`
}

var envKeys = []string{
	"SERVER_PORT", "SERVER_HOST", "CORS_ALLOW_ORIGINS",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "SQLITE_PATH",
	"REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET",
	"S3_BUCKET_NAME", "AWS_REGION",
	"LOG_LEVEL", "LOG_FORMAT",
	"CATALOG_DEFAULT_LIMIT", "CATALOG_MAX_LIMIT", "RECIPES_AUTO_APPROVE",
}

// secretKeys maps docker secret file names to the config key they override.
var secretKeys = map[string]string{
	"db_user":        "DB_USER",
	"db_password":    "DB_PASSWORD",
	"jwt_secret":     "JWT_SECRET",
	"redis_password": "REDIS_PASSWORD",
	"redis_url":      "REDIS_URL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "recipehub")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "recipehub.db")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CATALOG_DEFAULT_LIMIT", 12)
	v.SetDefault("CATALOG_MAX_LIMIT", 100)
	v.SetDefault("RECIPES_AUTO_APPROVE", true)
}

// LoadConfig reads the configuration from environment variables, overlays
// docker secrets outside CI, and validates the result for the detected environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	switch env {
	case CI:
		// CI passes secrets as TEST_* variables
		for _, key := range []string{"DB_PASSWORD", "JWT_SECRET", "REDIS_PASSWORD", "REDIS_URL"} {
			if val := os.Getenv("TEST_" + key); val != "" {
				v.Set(key, val)
			}
		}
	case Development, Test, Production:
		for name, key := range secretKeys {
			if val := readSecret(name); val != "" {
				v.Set(key, val)
			}
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Environment = env

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds the lib/pq style connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CorsAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
