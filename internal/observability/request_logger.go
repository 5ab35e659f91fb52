package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns a request id and logs each request once it completes.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := utils.CopyString(c.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.Locals("request_id", requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		duration := time.Since(start)
		route, method := RouteLabels(c)
		metrics.RecordRequest(route, method, status, duration)

		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("latency", duration),
		)
		return err
	}
}

// RouteLabels returns the matched route pattern (or the raw path when nothing
// matched) and the method. Both are copied out of fiber's request buffers,
// which are reused once the handler returns.
func RouteLabels(c *fiber.Ctx) (route, method string) {
	route = c.Route().Path
	if route == "" {
		route = c.Path()
	}
	return utils.CopyString(route), utils.CopyString(c.Method())
}
