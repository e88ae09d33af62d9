package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/visitra-hq/visitra/internal/infrastructure/ratelimit"
	"github.com/visitra-hq/visitra/internal/shared/logger"
	"github.com/visitra-hq/visitra/internal/shared/utils"
)

// SubmitLimiter throttles ticket submissions per user so a single account
// cannot flood the queue.
type SubmitLimiter struct {
	limiter ratelimit.SubmitLimiter
	logger  logger.Interface
}

func NewSubmitLimiter(limiter ratelimit.SubmitLimiter, log logger.Interface) *SubmitLimiter {
	return &SubmitLimiter{
		limiter: limiter,
		logger:  log,
	}
}

// Limit enforces the submission quota. Must run after RequireAuth. When the
// limiter backend is unavailable the request is allowed through; throttling
// is protection, not a gate.
func (l *SubmitLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserIDFromContext(c)
		if userID == 0 {
			c.Next()
			return
		}

		allowed, err := l.limiter.AllowSubmission(c.Request.Context(), userID)
		if err != nil {
			l.logger.Warnw("rate limiter unavailable, allowing request",
				"user_id", userID, "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many submissions, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
