package model

import "time"

type Role string

const (
	RoleResident Role = "resident"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleResident || r == RoleAdmin
}

// Session identifies the authenticated caller of an operation.
type Session struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

func (s Session) IsAdmin() bool    { return s.Role == RoleAdmin }
func (s Session) IsResident() bool { return s.Role == RoleResident }

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type AdminPermission string

const (
	PermissionManageDocuments     AdminPermission = "manage_documents"
	PermissionManagePayments      AdminPermission = "manage_payments"
	PermissionManageResidents     AdminPermission = "manage_residents"
	PermissionManageAnnouncements AdminPermission = "manage_announcements"
	PermissionManageDirectory     AdminPermission = "manage_directory"
	PermissionGenerateReports     AdminPermission = "generate_reports"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	BarangayID   string    `json:"barangay_id"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Address      string    `json:"address,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type HouseholdMember struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Relationship string    `json:"relationship"`
	BirthDate    time.Time `json:"birth_date"`
	Occupation   string    `json:"occupation,omitempty"`
}

type Resident struct {
	User
	HouseholdMembers   []HouseholdMember  `json:"household_members,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
}

type Admin struct {
	User
	Position    string            `json:"position"`
	Permissions []AdminPermission `json:"permissions"`
}

func (a Admin) Can(p AdminPermission) bool {
	for _, have := range a.Permissions {
		if have == p {
			return true
		}
	}
	return false
}
