package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"barangay/internal/identity"
	"barangay/internal/model"
)

// TokenIssuer mints the bearer token returned on login and registration.
type TokenIssuer interface {
	Issue(u model.User) (string, time.Time, error)
}

type loginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type authResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

func issue(c *fiber.Ctx, iss TokenIssuer, u model.User, status int) error {
	token, exp, err := iss.Issue(u)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(authResponse{Token: token, ExpiresAt: exp, User: u})
}

// Login
//
// @Summary Sign in as a resident or admin
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} authResponse
// @Failure 401 {object} errorPayload
// @Router /auth/login [post]
func Login(ids identity.Service, iss TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body loginRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if body.Role == "" {
			body.Role = model.RoleResident
		}
		u, err := ids.Login(body.Email, body.Password, body.Role)
		if err != nil {
			return respondError(c, err)
		}
		return issue(c, iss, u, fiber.StatusOK)
	}
}

// Register
//
// @Summary Create an account and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body identity.RegisterInput true "new account"
// @Success 201 {object} authResponse
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /auth/register [post]
func Register(ids identity.Service, iss TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in identity.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		u, err := ids.Register(in)
		if err != nil {
			return respondError(c, err)
		}
		return issue(c, iss, u, fiber.StatusCreated)
	}
}
