package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/types"
)

func withPrincipal(p *types.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	limiter := NewRecipeCreationRateLimiter(nil)
	r := gin.New()
	r.POST("/", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	for i := 0; i < 30; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestRateLimiterWithRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	limiter := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Hour,
		Limit:     2,
		KeyPrefix: "test:" + uuid.NewString(),
		PerRecipe: true,
	})
	principal := &types.Principal{UserID: uuid.New(), Role: "user"}
	r := gin.New()
	r.POST("/recipes/:id/ratings", withPrincipal(principal), limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	post := func(recipe string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes/"+recipe+"/ratings", nil))
		return w
	}

	assert.Equal(t, http.StatusOK, post("a").Code)
	w := post("a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, post("a").Code)
	assert.Equal(t, http.StatusOK, post("b").Code)
}
