package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"barangay/internal/model"
)

// SessionLocalKey is the fiber locals key the authenticated session lives under.
const SessionLocalKey = "session"

// TokenParser turns a bearer token into the session it was issued for.
type TokenParser interface {
	Parse(token string) (model.Session, error)
}

// Authenticate requires a valid "Authorization: Bearer <token>" header.
func Authenticate(p TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		sess, err := p.Parse(strings.TrimSpace(token))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals(SessionLocalKey, sess)
		trace.SpanFromContext(c.UserContext()).SetAttributes(
			attribute.String("enduser.id", sess.UserID),
			attribute.String("enduser.role", string(sess.Role)),
		)
		return c.Next()
	}
}

// RequireRole rejects sessions of any other role. It must run after Authenticate.
func RequireRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if sess.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "requires role "+string(role))
		}
		return c.Next()
	}
}

func SessionFrom(c *fiber.Ctx) (model.Session, bool) {
	sess, ok := c.Locals(SessionLocalKey).(model.Session)
	return sess, ok
}
