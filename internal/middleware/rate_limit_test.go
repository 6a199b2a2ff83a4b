package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterFailsOpenWhenRedisUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Nothing listens here; every Redis call errors out immediately.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	limiter := NewAIRateLimiter(client)

	r := gin.New()
	r.POST("/guarded", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestAIRateLimiterDefaults(t *testing.T) {
	limiter := NewAIRateLimiter(nil)
	assert.Equal(t, 20, limiter.config.Limit)
	assert.Equal(t, time.Hour, limiter.config.Window)
	assert.Equal(t, "rate_limit:ai", limiter.config.KeyPrefix)
}
