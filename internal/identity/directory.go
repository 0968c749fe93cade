// Package identity keeps the demo user directory and issues the bearer tokens
// that carry a model.Session across requests.
package identity

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"barangay/internal/apperr"
	"barangay/internal/model"
)

// DemoPassword is the single password every demo account signs in with.
const DemoPassword = "password123"

const defaultBarangayID = "brgy-001"

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", apperr.ErrConflict)
	ErrUserNotFound       = fmt.Errorf("resident %w", apperr.ErrNotFound)
)

type RegisterInput struct {
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	ConfirmPassword string     `json:"confirm_password"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	PhoneNumber     string     `json:"phone_number"`
	Address         string     `json:"address"`
	Role            model.Role `json:"role"`
}

func (in *RegisterInput) validate() error {
	required := []struct{ field, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"email", in.Email},
		{"password", in.Password},
		{"confirm_password", in.ConfirmPassword},
		{"phone_number", in.PhoneNumber},
		{"address", in.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperr.Required(r.field)
		}
	}
	if in.Password != in.ConfirmPassword {
		return &apperr.FieldError{Field: "confirm_password", Reason: "does not match password"}
	}
	if in.Role == "" {
		in.Role = model.RoleResident
	}
	if !in.Role.Valid() {
		return &apperr.FieldError{Field: "role", Reason: "must be resident or admin"}
	}
	return nil
}

type ResidentStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// Service is the identity surface the HTTP layer depends on.
type Service interface {
	Login(email, password string, role model.Role) (model.User, error)
	Register(in RegisterInput) (model.User, error)
	FindResident(id string) (model.Resident, error)
	ListResidents(query string) []model.Resident
	ResidentStats() ResidentStats
	VerifyResident(id string) (model.Resident, error)
	UpdateProfile(id string, in ProfileUpdate) (model.Resident, error)
	AddHouseholdMember(residentID string, in HouseholdMemberInput) (model.Resident, error)
}

// Directory is an in-memory Service.
type Directory struct {
	mu        sync.RWMutex
	residents []model.Resident
	admins    []model.Admin
	now       func() time.Time
}

var _ Service = (*Directory)(nil)

func NewDirectory(residents []model.Resident, admins []model.Admin) *Directory {
	return &Directory{
		residents: append([]model.Resident(nil), residents...),
		admins:    append([]model.Admin(nil), admins...),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login finds the account by email within the requested role.
func (d *Directory) Login(email, password string, role model.Role) (model.User, error) {
	if strings.TrimSpace(email) == "" {
		return model.User{}, apperr.Required("email")
	}
	if password == "" {
		return model.User{}, apperr.Required("password")
	}
	if password != DemoPassword {
		return model.User{}, ErrInvalidCredentials
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	switch role {
	case model.RoleResident:
		for _, r := range d.residents {
			if strings.EqualFold(r.Email, email) {
				return r.User, nil
			}
		}
	case model.RoleAdmin:
		for _, a := range d.admins {
			if strings.EqualFold(a.Email, email) {
				return a.User, nil
			}
		}
	default:
		return model.User{}, &apperr.FieldError{Field: "role", Reason: "must be resident or admin"}
	}
	return model.User{}, ErrInvalidCredentials
}

// Register creates a resident (pending verification) or a staff admin.
func (d *Directory) Register(in RegisterInput) (model.User, error) {
	if err := in.validate(); err != nil {
		return model.User{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.emailTaken(in.Email) {
		return model.User{}, ErrEmailTaken
	}
	now := d.now()
	u := model.User{
		ID:          "user-" + uuid.NewString(),
		Email:       strings.TrimSpace(in.Email),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		Role:        in.Role,
		BarangayID:  defaultBarangayID,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Address:     strings.TrimSpace(in.Address),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Role == model.RoleAdmin {
		d.admins = append(d.admins, model.Admin{
			User:        u,
			Position:    "Staff",
			Permissions: []model.AdminPermission{model.PermissionManageDocuments},
		})
		return u, nil
	}
	d.residents = append(d.residents, model.Resident{User: u, VerificationStatus: model.VerificationPending})
	return u, nil
}

func (d *Directory) emailTaken(email string) bool {
	for _, r := range d.residents {
		if strings.EqualFold(r.Email, email) {
			return true
		}
	}
	for _, a := range d.admins {
		if strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}

func (d *Directory) FindResident(id string) (model.Resident, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if r := d.resident(id); r != nil {
		return cloneResident(*r), nil
	}
	return model.Resident{}, ErrUserNotFound
}

// ListResidents matches query against full name and email case-insensitively
// and against the phone number verbatim. An empty query returns everyone,
// sorted by last then first name.
func (d *Directory) ListResidents(query string) []model.Resident {
	q := strings.TrimSpace(query)
	lq := strings.ToLower(q)

	d.mu.RLock()
	out := make([]model.Resident, 0, len(d.residents))
	for _, r := range d.residents {
		if q == "" ||
			strings.Contains(strings.ToLower(r.FullName()), lq) ||
			strings.Contains(strings.ToLower(r.Email), lq) ||
			(r.PhoneNumber != "" && strings.Contains(r.PhoneNumber, q)) {
			out = append(out, r)
		}
	}
	d.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out
}

func (d *Directory) ResidentStats() ResidentStats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := ResidentStats{Total: len(d.residents)}
	for _, r := range d.residents {
		switch r.VerificationStatus {
		case model.VerificationVerified:
			s.Verified++
		case model.VerificationPending:
			s.Pending++
		case model.VerificationRejected:
			s.Rejected++
		}
	}
	return s
}

// VerifyResident approves a resident who is still pending.
func (d *Directory) VerifyResident(id string) (model.Resident, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.residents {
		r := &d.residents[i]
		if r.ID != id {
			continue
		}
		if r.VerificationStatus != model.VerificationPending {
			return model.Resident{}, fmt.Errorf("%w: resident is %s", apperr.ErrInvalidTransition, r.VerificationStatus)
		}
		r.VerificationStatus = model.VerificationVerified
		r.UpdatedAt = d.now()
		return *r, nil
	}
	return model.Resident{}, ErrUserNotFound
}
