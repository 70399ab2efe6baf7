package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestDefaultRateLimitConfig(t *testing.T) {
	config := DefaultRateLimitConfig()

	if config.RequestsPerSecond != 50 {
		t.Errorf("RequestsPerSecond = %d, want 50", config.RequestsPerSecond)
	}
	if config.BurstSize != 20 {
		t.Errorf("BurstSize = %d, want 20", config.BurstSize)
	}
	if config.UseRedis {
		t.Error("UseRedis should default to false")
	}
}

func TestLocalRateLimiter_Allow(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.RequestsPerSecond = 1
	config.BurstSize = 3

	rl := NewLocalRateLimiter(config)
	defer rl.Stop()

	// Burst capacity admits the first requests.
	for i := 0; i < 3; i++ {
		if !rl.Allow("client-1") {
			t.Errorf("Request %d should be allowed within burst", i+1)
		}
	}

	// The bucket is now drained.
	if rl.Allow("client-1") {
		t.Error("Request past burst should be rejected")
	}

	// Other clients have their own bucket.
	if !rl.Allow("client-2") {
		t.Error("Different client should be allowed")
	}

	allowed, rejected := rl.GetStats()
	if allowed != 4 {
		t.Errorf("allowed = %d, want 4", allowed)
	}
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}
}

func TestLocalRateLimiter_Refill(t *testing.T) {
	config := DefaultRateLimitConfig()
	config.RequestsPerSecond = 100
	config.BurstSize = 1

	rl := NewLocalRateLimiter(config)
	defer rl.Stop()

	if !rl.Allow("client-1") {
		t.Fatal("First request should be allowed")
	}
	if rl.Allow("client-1") {
		t.Fatal("Second immediate request should be rejected")
	}

	// 100 tokens/s refills one token within 10ms to 50ms.
	time.Sleep(50 * time.Millisecond)
	if !rl.Allow("client-1") {
		t.Error("Request after refill should be allowed")
	}
}

func TestRateLimitMiddleware_Local(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := DefaultRateLimitConfig()
	config.RequestsPerSecond = 1
	config.BurstSize = 2

	router := gin.New()
	router.Use(RateLimitMiddleware(config))
	router.POST("/checkin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/checkin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("Burst requests = %v, want 200s first", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("Third request status = %d, want %d", statuses[2], http.StatusTooManyRequests)
	}
}
