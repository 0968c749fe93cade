// Package seed provides the demo dataset the server starts with when no
// database is configured.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"barangay/internal/model"
)

type Dataset struct {
	Residents     []model.Resident
	Admins        []model.Admin
	Requests      []model.DocumentRequest
	Announcements []model.Announcement
	Directory     []model.DirectoryEntry
	Emergency     []model.EmergencyContact
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(t time.Time) *time.Time { return &t }

// Demo returns a fresh copy of the demo dataset on every call.
func Demo() Dataset {
	return Dataset{
		Residents:     residents(),
		Admins:        admins(),
		Requests:      requests(),
		Announcements: announcements(),
		Directory:     directory(),
		Emergency:     emergency(),
	}
}

func residents() []model.Resident {
	return []model.Resident{
		{
			User: model.User{
				ID: "1", Email: "juan.delacruz@email.com", FirstName: "Juan", LastName: "Dela Cruz",
				Role: model.RoleResident, BarangayID: "brgy-001", PhoneNumber: "+639123456789",
				Address:   "123 Rizal Street, Barangay San Antonio",
				CreatedAt: date(2024, time.January, 15), UpdatedAt: date(2024, time.January, 15),
			},
			VerificationStatus: model.VerificationVerified,
			HouseholdMembers: []model.HouseholdMember{
				{ID: "hm-1", FirstName: "Maria", LastName: "Dela Cruz", Relationship: "Spouse", BirthDate: date(1985, time.March, 20), Occupation: "Teacher"},
				{ID: "hm-2", FirstName: "Jose", LastName: "Dela Cruz", Relationship: "Son", BirthDate: date(2010, time.July, 15), Occupation: "Student"},
			},
		},
		{
			User: model.User{
				ID: "2", Email: "maria.santos@email.com", FirstName: "Maria", LastName: "Santos",
				Role: model.RoleResident, BarangayID: "brgy-001", PhoneNumber: "+639987654321",
				Address:   "456 Bonifacio Avenue, Barangay San Antonio",
				CreatedAt: date(2024, time.February, 1), UpdatedAt: date(2024, time.February, 1),
			},
			VerificationStatus: model.VerificationVerified,
		},
	}
}

func admins() []model.Admin {
	return []model.Admin{
		{
			User: model.User{
				ID: "admin-1", Email: "captain@barangay.gov.ph", FirstName: "Roberto", LastName: "Gonzales",
				Role: model.RoleAdmin, BarangayID: "brgy-001", PhoneNumber: "+639111222333",
				CreatedAt: date(2023, time.January, 1), UpdatedAt: date(2024, time.January, 1),
			},
			Position: "Barangay Captain",
			Permissions: []model.AdminPermission{
				model.PermissionManageDocuments, model.PermissionManagePayments, model.PermissionManageResidents,
				model.PermissionManageAnnouncements, model.PermissionManageDirectory, model.PermissionGenerateReports,
			},
		},
		{
			User: model.User{
				ID: "admin-2", Email: "secretary@barangay.gov.ph", FirstName: "Ana", LastName: "Reyes",
				Role: model.RoleAdmin, BarangayID: "brgy-001", PhoneNumber: "+639444555666",
				CreatedAt: date(2023, time.January, 1), UpdatedAt: date(2024, time.January, 1),
			},
			Position: "Barangay Secretary",
			Permissions: []model.AdminPermission{
				model.PermissionManageDocuments, model.PermissionManageResidents, model.PermissionManageAnnouncements,
			},
		},
	}
}

func requests() []model.DocumentRequest {
	return []model.DocumentRequest{
		{
			ID: "doc-1", ResidentID: "1", Type: model.DocumentBarangayClearance, Status: model.StatusCompleted,
			Purpose: "Employment requirement", RequestDate: date(2024, time.January, 20),
			ProcessedDate: at(date(2024, time.January, 22)), ProcessedBy: "admin-1",
			PaymentStatus: model.PaymentVerified, PaymentAmount: decimal.NewFromInt(50), PaymentMethod: model.MethodGCash,
			ReferenceNumber: "BC-2024-001", DocumentURL: "https://example.com/documents/bc-2024-001.pdf",
		},
		{
			ID: "doc-2", ResidentID: "1", Type: model.DocumentCertificateOfResidency, Status: model.StatusProcessing,
			Purpose: "Bank account opening", RequestDate: date(2024, time.January, 25),
			PaymentStatus: model.PaymentVerified, PaymentAmount: decimal.NewFromInt(30), PaymentMethod: model.MethodPayMaya,
			ReferenceNumber: "CR-2024-001",
		},
		{
			ID: "doc-3", ResidentID: "2", Type: model.DocumentBusinessPermit, Status: model.StatusPaymentNeeded,
			Purpose: "Small business registration", RequestDate: date(2024, time.January, 28),
			PaymentStatus: model.PaymentUnpaid, PaymentAmount: decimal.NewFromInt(200),
			ReferenceNumber: "BP-2024-001",
		},
	}
}

func announcements() []model.Announcement {
	return []model.Announcement{
		{
			ID: "ann-1", Title: "Community Clean-up Drive",
			Content: "Join us this Saturday, February 3rd, for our monthly community clean-up drive. " +
				"Meeting point at the Barangay Hall at 6:00 AM. Bring your own cleaning materials.",
			Type: model.AnnouncementEvent, Priority: model.PriorityMedium,
			PublishDate: date(2024, time.January, 30), ExpiryDate: at(date(2024, time.February, 3)),
			AuthorID: "admin-1", AuthorName: "Roberto Gonzales", IsActive: true, TargetAudience: model.AudienceAll,
		},
		{
			ID: "ann-2", Title: "Water Interruption Notice",
			Content: "Water supply will be temporarily interrupted on February 5th from 8:00 AM to 5:00 PM " +
				"for maintenance work on the main pipeline.",
			Type: model.AnnouncementMaintenance, Priority: model.PriorityHigh,
			PublishDate: date(2024, time.February, 1), ExpiryDate: at(date(2024, time.February, 5)),
			AuthorID: "admin-2", AuthorName: "Ana Reyes", IsActive: true, TargetAudience: model.AudienceAll,
		},
		{
			ID: "ann-3", Title: "Free Medical Check-up",
			Content: "Free medical check-up and consultation available at the Barangay Health Center " +
				"every Wednesday from 9:00 AM to 3:00 PM.",
			Type: model.AnnouncementHealth, Priority: model.PriorityMedium,
			PublishDate: date(2024, time.January, 15),
			AuthorID:    "admin-1", AuthorName: "Roberto Gonzales", IsActive: true, TargetAudience: model.AudienceResidents,
		},
	}
}

func directory() []model.DirectoryEntry {
	const office = "Mon-Fri 8:00 AM - 5:00 PM"
	return []model.DirectoryEntry{
		{ID: "dir-1", Category: model.CategoryBarangayOfficials, Name: "Roberto Gonzales", Position: "Barangay Captain",
			PhoneNumber: "+639111222333", Email: "captain@barangay.gov.ph", Address: "Barangay Hall, San Antonio",
			IsActive: true, OperatingHours: office},
		{ID: "dir-2", Category: model.CategoryBarangayOfficials, Name: "Ana Reyes", Position: "Barangay Secretary",
			PhoneNumber: "+639444555666", Email: "secretary@barangay.gov.ph", Address: "Barangay Hall, San Antonio",
			IsActive: true, OperatingHours: office},
		{ID: "dir-3", Category: model.CategoryEmergencyServices, Name: "Philippine National Police - Station 5",
			PhoneNumber: "117", Address: "Police Station 5, Main Road", Description: "Emergency police services",
			IsEmergency: true, IsActive: true, OperatingHours: "24/7"},
		{ID: "dir-4", Category: model.CategoryEmergencyServices, Name: "Bureau of Fire Protection",
			PhoneNumber: "116", Address: "Fire Station, Central District", Description: "Fire emergency services",
			IsEmergency: true, IsActive: true, OperatingHours: "24/7"},
		{ID: "dir-5", Category: model.CategoryEmergencyServices, Name: "Emergency Medical Services",
			PhoneNumber: "911", Address: "District Hospital", Description: "Medical emergency services",
			IsEmergency: true, IsActive: true, OperatingHours: "24/7"},
		{ID: "dir-6", Category: model.CategoryGovernmentAgencies, Name: "DSWD Local Office",
			PhoneNumber: "+639777888999", Email: "dswd.local@gov.ph", Address: "Government Center, 2nd Floor",
			Description: "Social welfare and development services", IsActive: true, OperatingHours: office},
		{ID: "dir-7", Category: model.CategoryUtilities, Name: "Manila Water Company",
			PhoneNumber: "+632-1627-7000", Email: "customercare@manilawater.com", Address: "Water District Office",
			Description: "Water supply services", IsActive: true, OperatingHours: office},
		{ID: "dir-8", Category: model.CategoryUtilities, Name: "MERALCO",
			PhoneNumber: "16211", Email: "customercare@meralco.com.ph", Address: "Electric Company Branch",
			Description: "Electric power services", IsActive: true, OperatingHours: office},
	}
}

func emergency() []model.EmergencyContact {
	return []model.EmergencyContact{
		{ID: "em-1", Name: "Police Emergency", PhoneNumber: "117", Type: "police", IsActive: true},
		{ID: "em-2", Name: "Fire Emergency", PhoneNumber: "116", Type: "fire", IsActive: true},
		{ID: "em-3", Name: "Medical Emergency", PhoneNumber: "911", Type: "medical", IsActive: true},
		{ID: "em-4", Name: "Disaster Response", PhoneNumber: "+639123456789", Type: "disaster", IsActive: true},
	}
}
