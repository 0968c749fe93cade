package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

// Logger writes one structured entry per request once the handler chain has
// finished, so the final status is known.
func Logger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		fields := logrus.Fields{
			"request_id": RequestIDFrom(c),
			"method":     utils.CopyString(c.Method()),
			"path":       utils.CopyString(c.Path()),
			"status":     status,
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000,
		}
		if sess, ok := SessionFrom(c); ok {
			fields["user_id"] = sess.UserID
			fields["role"] = sess.Role
		}

		entry := log.WithFields(fields)
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("http_request")
		case status >= fiber.StatusBadRequest:
			entry.Warn("http_request")
		default:
			entry.Info("http_request")
		}
		return err
	}
}
