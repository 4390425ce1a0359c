package service

import (
	"context"
	"errors"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/logging"
	"github.com/pageza/recipehub/backend/internal/metrics"
)

// ErrAssetNotFound is returned when a media reference names an object
// that is not in the bucket.
var ErrAssetNotFound = errors.New("media asset not found")

// ObjectStore is the slice of the S3 client the resolver needs.
// *config.S3Config satisfies it.
type ObjectStore interface {
	ObjectExists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

// S3MediaResolver accepts absolute http(s) URLs as-is and resolves bare
// object keys to public bucket URLs after checking they exist. Bucket
// lookups go through a circuit breaker so a failing S3 endpoint does not
// stall every recipe write.
type S3MediaResolver struct {
	store ObjectStore
	cb    *gobreaker.CircuitBreaker[bool]
	name  string
}

func NewS3MediaResolver(store ObjectStore) *S3MediaResolver {
	name := "s3-media"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[bool](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &S3MediaResolver{store: store, cb: cb, name: name}
}

func (r *S3MediaResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if isAbsoluteURL(ref) {
		return ref, nil
	}
	key := strings.TrimPrefix(ref, "/")

	exists, err := r.cb.Execute(func() (bool, error) {
		return r.store.ObjectExists(ctx, key)
	})
	if err != nil {
		result := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			result = "rejected"
		}
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, result).Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("media lookup failed")
		return "", apperror.Store("media.resolve", err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(r.name, "success").Inc()

	if !exists {
		return "", ErrAssetNotFound
	}
	return r.store.PublicURL(key), nil
}

// PassthroughResolver is used when no bucket is configured. References
// are stored unchanged and must already be absolute URLs.
type PassthroughResolver struct{}

func (PassthroughResolver) Resolve(_ context.Context, ref string) (string, error) {
	return ref, nil
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
