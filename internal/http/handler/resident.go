package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"barangay/internal/http/middleware"
	"barangay/internal/model"
	"barangay/internal/service"
)

type createRequestBody struct {
	Type    model.DocumentType `json:"type"`
	Purpose string             `json:"purpose"`
}

type paymentBody struct {
	Method    model.PaymentMethod `json:"payment_method" form:"payment_method"`
	Reference string              `json:"payment_reference" form:"payment_reference"`
	Proof     string              `json:"payment_proof" form:"payment_proof"`
}

func session(c *fiber.Ctx) model.Session {
	sess, _ := middleware.SessionFrom(c)
	return sess
}

// ListMyRequests
//
// @Summary The caller's document requests
// @Tags resident
// @Produce json
// @Security BearerAuth
// @Param status query string false "request status"
// @Success 200 {array} model.DocumentRequest
// @Router /me/requests [get]
func ListMyRequests(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListMine(c.UserContext(), session(c), model.RequestStatus(c.Query("status")))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// @Summary Request counts for the caller
// @Tags resident
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ledger.Stats
// @Router /me/stats [get]
func MyStats(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext(), session(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(st)
	}
}

// CreateRequest
//
// @Summary Request a document
// @Tags resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createRequestBody true "document type and purpose"
// @Success 201 {object} model.DocumentRequest
// @Failure 400 {object} errorPayload
// @Router /me/requests [post]
func CreateRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body createRequestBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		req, err := svc.Create(c.UserContext(), session(c), body.Type, body.Purpose)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(req)
	}
}

// GetRequest serves both the resident and the admin route; the service
// decides what the session may see.
//
// @Summary One request
// @Tags resident,admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "request id"
// @Success 200 {object} model.DocumentRequest
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /me/requests/{id} [get]
// @Router /admin/requests/{id} [get]
func GetRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := svc.Get(c.UserContext(), session(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(req)
	}
}

// CancelRequest withdraws a request that is not completed yet.
//
// @Summary Cancel a request
// @Tags resident
// @Security BearerAuth
// @Param id path string true "request id"
// @Success 204
// @Failure 409 {object} errorPayload
// @Router /me/requests/{id} [delete]
func CancelRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Cancel(c.UserContext(), session(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SubmitPayment accepts JSON with a proof reference, or multipart/form-data
// with the proof image in the "proof" field.
//
// @Summary Submit payment for a request
// @Tags resident
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "request id"
// @Param payment_method formData string true "payment method"
// @Param payment_reference formData string true "payment reference"
// @Param proof formData file false "proof of payment"
// @Success 200 {object} model.DocumentRequest
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /me/requests/{id}/payment [post]
func SubmitPayment(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body paymentBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		in := service.PaymentInput{
			Method:    body.Method,
			Reference: body.Reference,
			ProofRef:  body.Proof,
		}

		if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
			if fh, err := c.FormFile("proof"); err == nil {
				f, err := fh.Open()
				if err != nil {
					return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
				}
				defer f.Close()

				ct := fh.Header.Get("Content-Type")
				if ct == "" {
					ct = "application/octet-stream"
				}
				in.Proof = f
				in.ProofFilename = fh.Filename
				in.ProofContentType = ct
				in.ProofSize = fh.Size
			}
		}

		req, err := svc.SubmitPayment(c.UserContext(), session(c), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(req)
	}
}

// @Summary Download URL of an issued document
// @Tags resident
// @Produce json
// @Security BearerAuth
// @Param id path string true "request id"
// @Success 200 {object} map[string]string
// @Failure 409 {object} errorPayload
// @Router /me/requests/{id}/download [get]
func DownloadDocument(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.Download(c.UserContext(), session(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"download_url": url})
	}
}
