package api

import (
	"context"
	"fmt"
	"net/http"

	"alcyxob/fitlocal/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit guards the endpoints that call the plan and review generator.
// A nil limiter or a non-positive allowance disables it.
func RateLimit(rateLimiter RequestRateLimiter, key string, allowedPerMin int, metricsManager *metrics.Manager) gin.HandlerFunc {
	if rateLimiter == nil || allowedPerMin <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		res, err := rateLimiter.Allow(
			c.Request.Context(),
			key,
			redis_rate.PerMinute(allowedPerMin),
		)
		if err != nil {
			log.Errorf("rate limit %s: %s", key, err)
			abortWithError(c, http.StatusInternalServerError, "rate limit internal error")
			return
		}

		if res.Allowed > 0 {
			c.Next()
			return
		}

		if metricsManager != nil {
			metricsManager.CounterRateLimited.Inc()
		}
		abortWithError(
			c,
			http.StatusTooEarly,
			fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
		)
	}
}
