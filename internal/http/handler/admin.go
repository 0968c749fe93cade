package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"barangay/internal/identity"
	"barangay/internal/ledger"
	"barangay/internal/model"
	"barangay/internal/service"
)

type notesBody struct {
	Notes string `json:"notes"`
}

// parseNotes reads an optional {"notes": "..."} body.
func parseNotes(c *fiber.Ctx) (string, error) {
	if len(c.Body()) == 0 {
		return "", nil
	}
	var body notesBody
	if err := c.BodyParser(&body); err != nil {
		return "", err
	}
	return body.Notes, nil
}

// ListRequests
//
// @Summary All requests, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "request status"
// @Param payment_status query string false "payment status"
// @Param resident_id query string false "resident id"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "page offset" default(0)
// @Success 200 {object} service.RequestListResult
// @Failure 400 {object} errorPayload
// @Router /admin/requests [get]
func ListRequests(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		f := ledger.Filter{
			Status:        model.RequestStatus(c.Query("status")),
			PaymentStatus: model.PaymentStatus(c.Query("payment_status")),
			ResidentID:    c.Query("resident_id"),
		}

		res, err := svc.List(c.UserContext(), session(c), f, limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// @Summary Admin dashboard counts and recent requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdminDashboard
// @Router /admin/dashboard [get]
func Dashboard(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Dashboard(c.UserContext(), session(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(d)
	}
}

// TransitionRequest applies approve, reject, process or ready.
//
// @Summary Move a request through its workflow
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "request id"
// @Param action path string true "approve, reject, process or ready"
// @Param body body notesBody false "optional notes"
// @Success 200 {object} model.DocumentRequest
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /admin/requests/{id}/{action} [post]
func TransitionRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		action, err := ledger.ParseAction(c.Params("action"))
		if err != nil {
			return respondError(c, err)
		}
		notes, err := parseNotes(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		req, err := svc.Transition(c.UserContext(), session(c), c.Params("id"), action, notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(req)
	}
}

// @Summary Payments awaiting or past review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "payment status"
// @Success 200 {array} model.DocumentRequest
// @Router /admin/payments [get]
func PaymentQueue(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.PaymentQueue(c.UserContext(), session(c), model.PaymentStatus(c.Query("status")))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// ReviewPayment verifies or rejects a pending payment.
//
// @Summary Review a payment
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "request id"
// @Param decision path string true "verify or reject"
// @Param body body notesBody false "optional notes"
// @Success 200 {object} model.DocumentRequest
// @Failure 409 {object} errorPayload
// @Router /admin/payments/{id}/{decision} [post]
func ReviewPayment(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := service.ParsePaymentDecision(c.Params("decision"))
		if err != nil {
			return respondError(c, err)
		}
		notes, err := parseNotes(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		req, err := svc.ReviewPayment(c.UserContext(), session(c), c.Params("id"), decision, notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(req)
	}
}

// PaymentProof streams the uploaded proof image.
//
// @Summary Proof of payment image
// @Tags admin
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "request id"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /admin/payments/{id}/proof [get]
func PaymentProof(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.PaymentProof(c.UserContext(), session(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(info.Size))
	}
}

// @Summary Residents, optionally filtered by name or email
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "search text"
// @Success 200 {array} model.Resident
// @Router /admin/residents [get]
func ListResidents(ids identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": ids.ListResidents(c.Query("q"))})
	}
}

// @Summary Resident counts by verification status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} identity.ResidentStats
// @Router /admin/residents/stats [get]
func ResidentStats(ids identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(ids.ResidentStats())
	}
}

// @Summary Mark a pending resident as verified
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "resident id"
// @Success 200 {object} model.Resident
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /admin/residents/{id}/verify [post]
func VerifyResident(ids identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := ids.VerifyResident(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	}
}
