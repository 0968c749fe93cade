package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"barangay/internal/apperr"
	"barangay/internal/http/middleware"
	"barangay/internal/ledger"
)

type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes the standard error envelope. message must be safe to show
// to a client.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// respondError maps a domain error onto a status and code. Domain error texts
// are written for clients; anything unrecognised becomes a bare 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, apperr.ErrInvalidTransition):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ledger.ErrDocumentUnavailable):
		return writeError(c, fiber.StatusConflict, "DOCUMENT_UNAVAILABLE", err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not allowed")
	case errors.Is(err, apperr.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, apperr.ErrUnavailable):
		return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler is the global fiber error handler. It covers errors returned
// from middleware and routing; handlers write their own errors.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return respondError(c, err)
		}

		switch fe.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fe.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, fe.Code, "UNAUTHORIZED", fe.Message)
		case fiber.StatusForbidden:
			return writeError(c, fe.Code, "FORBIDDEN", fe.Message)
		case fiber.StatusNotFound:
			return writeError(c, fe.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fe.Code, "PAYLOAD_TOO_LARGE", "request body too large")
		}
		return writeError(c, fe.Code, "INTERNAL_ERROR", "internal server error")
	}
}
