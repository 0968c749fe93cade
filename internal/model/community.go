package model

import "time"

type AnnouncementType string

const (
	AnnouncementGeneral     AnnouncementType = "general"
	AnnouncementEvent       AnnouncementType = "event"
	AnnouncementEmergency   AnnouncementType = "emergency"
	AnnouncementMaintenance AnnouncementType = "maintenance"
	AnnouncementHealth      AnnouncementType = "health"
	AnnouncementSafety      AnnouncementType = "safety"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities, urgent first. Unknown priorities rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceResidents Audience = "residents"
	AudienceOfficials Audience = "officials"
)

type Announcement struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Content        string           `json:"content"`
	Type           AnnouncementType `json:"type"`
	Priority       Priority         `json:"priority"`
	PublishDate    time.Time        `json:"publish_date"`
	ExpiryDate     *time.Time       `json:"expiry_date,omitempty"`
	AuthorID       string           `json:"author_id"`
	AuthorName     string           `json:"author_name"`
	ImageURL       string           `json:"image_url,omitempty"`
	IsActive       bool             `json:"is_active"`
	TargetAudience Audience         `json:"target_audience"`
}

type DirectoryCategory string

const (
	CategoryBarangayOfficials  DirectoryCategory = "barangay_officials"
	CategoryEmergencyServices  DirectoryCategory = "emergency_services"
	CategoryGovernmentAgencies DirectoryCategory = "government_agencies"
	CategoryUtilities          DirectoryCategory = "utilities"
	CategoryHealthServices     DirectoryCategory = "health_services"
	CategoryEducation          DirectoryCategory = "education"
)

var DirectoryCategories = []DirectoryCategory{
	CategoryBarangayOfficials,
	CategoryEmergencyServices,
	CategoryGovernmentAgencies,
	CategoryUtilities,
	CategoryHealthServices,
	CategoryEducation,
}

type DirectoryEntry struct {
	ID             string            `json:"id"`
	Category       DirectoryCategory `json:"category"`
	Name           string            `json:"name"`
	Position       string            `json:"position,omitempty"`
	PhoneNumber    string            `json:"phone_number"`
	Email          string            `json:"email,omitempty"`
	Address        string            `json:"address,omitempty"`
	Description    string            `json:"description,omitempty"`
	IsEmergency    bool              `json:"is_emergency"`
	IsActive       bool              `json:"is_active"`
	MapURL         string            `json:"map_url,omitempty"`
	Website        string            `json:"website,omitempty"`
	OperatingHours string            `json:"operating_hours,omitempty"`
}

type EmergencyContact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Type        string `json:"type"`
	IsActive    bool   `json:"is_active"`
}
