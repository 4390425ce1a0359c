package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/config"
	"github.com/pageza/recipehub/backend/internal/model"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	require.NoError(t, HealthCheck(context.Background(), db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&model.MealPlan{}, "idx_meal_plans_user_week"))

	user := model.User{ID: uuid.New(), Username: "cook", Email: "cook@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, db.Create(&user).Error)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "://bad"})
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}
