package handler

import (
	"github.com/gofiber/fiber/v2"

	"barangay/internal/identity"
)

// GetProfile
//
// @Summary The caller's resident profile and household
// @Tags resident
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Resident
// @Failure 404 {object} errorPayload
// @Router /me/profile [get]
func GetProfile(ids identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := ids.FindResident(session(c).UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	}
}

// @Summary Edit the caller's contact details
// @Tags resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body identity.ProfileUpdate true "fields to change"
// @Success 200 {object} model.Resident
// @Failure 400 {object} errorPayload
// @Router /me/profile [put]
func UpdateProfile(ids identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body identity.ProfileUpdate
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		r, err := ids.UpdateProfile(session(c).UserID, body)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	}
}

// AddHouseholdMember
//
// @Summary Add a member to the caller's household
// @Tags resident
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body identity.HouseholdMemberInput true "first name, last name and relationship are required"
// @Success 201 {object} model.Resident
// @Failure 400 {object} errorPayload
// @Router /me/household [post]
func AddHouseholdMember(ids identity.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body identity.HouseholdMemberInput
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		r, err := ids.AddHouseholdMember(session(c).UserID, body)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}
