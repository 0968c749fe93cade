package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"barangay/internal/apperr"
	"barangay/internal/model"
)

// ProfileUpdate carries the resident-editable profile fields. Blank fields
// keep their current value.
type ProfileUpdate struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type HouseholdMemberInput struct {
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Relationship string     `json:"relationship"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Occupation   string     `json:"occupation,omitempty"`
}

func (in HouseholdMemberInput) validate() error {
	required := []struct{ field, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"relationship", in.Relationship},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperr.Required(r.field)
		}
	}
	return nil
}

// UpdateProfile edits the resident's own contact details.
func (d *Directory) UpdateProfile(id string, in ProfileUpdate) (model.Resident, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r := d.resident(id)
	if r == nil {
		return model.Resident{}, ErrUserNotFound
	}
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&r.FirstName, in.FirstName)
	set(&r.LastName, in.LastName)
	set(&r.PhoneNumber, in.PhoneNumber)
	set(&r.Address, in.Address)
	r.UpdatedAt = d.now()
	return cloneResident(*r), nil
}

// AddHouseholdMember appends a member to the resident's household.
func (d *Directory) AddHouseholdMember(residentID string, in HouseholdMemberInput) (model.Resident, error) {
	if err := in.validate(); err != nil {
		return model.Resident{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	r := d.resident(residentID)
	if r == nil {
		return model.Resident{}, ErrUserNotFound
	}
	m := model.HouseholdMember{
		ID:           "hm-" + uuid.NewString(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Relationship: strings.TrimSpace(in.Relationship),
		Occupation:   strings.TrimSpace(in.Occupation),
	}
	if in.BirthDate != nil {
		m.BirthDate = in.BirthDate.UTC()
	}
	r.HouseholdMembers = append(r.HouseholdMembers, m)
	r.UpdatedAt = d.now()
	return cloneResident(*r), nil
}

// resident must be called with d.mu held.
func (d *Directory) resident(id string) *model.Resident {
	for i := range d.residents {
		if d.residents[i].ID == id {
			return &d.residents[i]
		}
	}
	return nil
}

func cloneResident(r model.Resident) model.Resident {
	r.HouseholdMembers = append([]model.HouseholdMember(nil), r.HouseholdMembers...)
	return r
}
