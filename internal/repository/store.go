// Package repository is the gorm-backed document store behind the catalog,
// recipe lifecycle and meal plan services.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/metrics"
)

// ErrStaleVersion means a versioned update lost a race with another writer.
var ErrStaleVersion = errors.New("recipe was modified concurrently")

type store struct {
	db *gorm.DB
}

// run executes fn with a context-bound session and records store metrics.
// Not-found and conflict outcomes are not counted as store failures.
func (s store) run(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	start := time.Now()
	err := fn(s.db.WithContext(ctx))
	failure := err
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrStaleVersion) {
		failure = nil
	}
	metrics.RecordStoreOp(op, start, failure)
	return err
}

// translate maps gorm errors onto the apperror taxonomy.
func translate(op, resource, key string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleVersion):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(resource, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict(resource, key)
	default:
		return apperror.Store(op, err)
	}
}
