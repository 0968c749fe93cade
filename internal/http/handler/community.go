package handler

import (
	"github.com/gofiber/fiber/v2"

	"barangay/internal/community"
	"barangay/internal/model"
	"barangay/internal/settings"
)

// CommunityBoard is the read-only community content served publicly.
type CommunityBoard interface {
	Announcements(f community.AnnouncementFilter) []model.Announcement
	Directory() []community.DirectoryGroup
	Emergency() []model.EmergencyContact
}

// ListAnnouncements
//
// @Summary Active announcements, most important first
// @Tags community
// @Produce json
// @Param type query string false "announcement type"
// @Param audience query string false "viewer audience"
// @Success 200 {array} model.Announcement
// @Router /announcements [get]
func ListAnnouncements(b CommunityBoard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := community.AnnouncementFilter{
			Type:     model.AnnouncementType(c.Query("type")),
			Audience: model.Audience(c.Query("audience")),
		}
		return c.JSON(fiber.Map{"data": b.Announcements(f)})
	}
}

// @Summary Public directory grouped by category
// @Tags community
// @Produce json
// @Success 200 {array} community.DirectoryGroup
// @Router /directory [get]
func ListDirectory(b CommunityBoard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": b.Directory()})
	}
}

// @Summary Emergency hotlines
// @Tags community
// @Produce json
// @Success 200 {array} model.EmergencyContact
// @Router /directory/emergency [get]
func ListEmergencyContacts(b CommunityBoard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": b.Emergency()})
	}
}

// GetSettings exposes the barangay profile, fees and accepted payment methods.
//
// @Summary Barangay settings
// @Tags community
// @Produce json
// @Success 200 {object} settings.AppSettings
// @Router /settings [get]
func GetSettings(s *settings.AppSettings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(s)
	}
}
