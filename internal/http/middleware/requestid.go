package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the fiber locals key the request id is stored under.
	RequestIDLocalKey = "request_id"
)

// RequestID reads X-Request-ID or mints a UUID, stores it in locals, echoes it
// on the response and tags the active span with it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The header value aliases the request buffer; the span outlives it.
		id := utils.CopyString(c.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		trace.SpanFromContext(c.UserContext()).SetAttributes(attribute.String("http.request_id", id))
		return c.Next()
	}
}

// RequestIDFrom returns the id stored by RequestID, or "" outside of it.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocalKey).(string)
	return id
}
