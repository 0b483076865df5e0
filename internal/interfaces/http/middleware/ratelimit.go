package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bid-labs/ticketgen/internal/infrastructure/ratelimit"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
	"github.com/bid-labs/ticketgen/internal/shared/utils"
)

// RateLimiter throttles an endpoint group per client IP. A nil limiter or a
// zero limit disables it.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	scope   string
	limits  ratelimit.Limits
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, perMinute int64, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		limits:  ratelimit.Limits{PerMinute: perMinute},
		logger:  log,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil || rl.limits.PerMinute <= 0 {
			c.Next()
			return
		}

		key := rl.scope + ":" + c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.limits)
		if err != nil {
			// Redis unavailable: let the request through
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
