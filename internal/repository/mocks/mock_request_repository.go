package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"barangay/internal/model"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Save(ctx context.Context, req *model.DocumentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRequestRepository) List(ctx context.Context) ([]model.DocumentRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentRequest), args.Error(1)
}
