package mocks

import (
	"github.com/stretchr/testify/mock"

	"barangay/internal/identity"
	"barangay/internal/model"
)

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Login(email, password string, role model.Role) (model.User, error) {
	args := m.Called(email, password, role)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockIdentityService) Register(in identity.RegisterInput) (model.User, error) {
	args := m.Called(in)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockIdentityService) FindResident(id string) (model.Resident, error) {
	args := m.Called(id)
	return args.Get(0).(model.Resident), args.Error(1)
}

func (m *MockIdentityService) ListResidents(query string) []model.Resident {
	args := m.Called(query)
	return args.Get(0).([]model.Resident)
}

func (m *MockIdentityService) ResidentStats() identity.ResidentStats {
	args := m.Called()
	return args.Get(0).(identity.ResidentStats)
}

func (m *MockIdentityService) VerifyResident(id string) (model.Resident, error) {
	args := m.Called(id)
	return args.Get(0).(model.Resident), args.Error(1)
}

func (m *MockIdentityService) UpdateProfile(id string, in identity.ProfileUpdate) (model.Resident, error) {
	args := m.Called(id, in)
	return args.Get(0).(model.Resident), args.Error(1)
}

func (m *MockIdentityService) AddHouseholdMember(residentID string, in identity.HouseholdMemberInput) (model.Resident, error) {
	args := m.Called(residentID, in)
	return args.Get(0).(model.Resident), args.Error(1)
}
