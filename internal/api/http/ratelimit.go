package http

import (
	"context"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/kit-service/internal/observability"
	"github.com/spec-kit/kit-service/internal/ratelimit"
	apperrors "github.com/spec-kit/kit-service/pkg/util"
)

// Allower decides whether a client may make another request.
type Allower interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// SubmissionRateLimit limits form submissions per client IP. Limiter failures
// let the request through.
func SubmissionRateLimit(limiter Allower, metrics *observability.Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		decision, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			metrics.RecordRateLimited()
			return apperrors.NewRateLimited(retryAfter)
		}
		return c.Next()
	}
}
