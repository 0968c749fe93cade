package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"barangay/internal/ledger"
	"barangay/internal/model"
	"barangay/internal/service"
	"barangay/internal/storage"
)

type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) request(args mock.Arguments) (*model.DocumentRequest, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentRequest), args.Error(1)
}

func (m *MockRequestService) Create(ctx context.Context, sess model.Session, t model.DocumentType, purpose string) (*model.DocumentRequest, error) {
	return m.request(m.Called(ctx, sess, t, purpose))
}

func (m *MockRequestService) Get(ctx context.Context, sess model.Session, id string) (*model.DocumentRequest, error) {
	return m.request(m.Called(ctx, sess, id))
}

func (m *MockRequestService) ListMine(ctx context.Context, sess model.Session, status model.RequestStatus) ([]model.DocumentRequest, error) {
	args := m.Called(ctx, sess, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentRequest), args.Error(1)
}

func (m *MockRequestService) Stats(ctx context.Context, sess model.Session) (*ledger.Stats, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Stats), args.Error(1)
}

func (m *MockRequestService) Cancel(ctx context.Context, sess model.Session, id string) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockRequestService) SubmitPayment(ctx context.Context, sess model.Session, id string, in service.PaymentInput) (*model.DocumentRequest, error) {
	return m.request(m.Called(ctx, sess, id, in))
}

func (m *MockRequestService) Download(ctx context.Context, sess model.Session, id string) (string, error) {
	args := m.Called(ctx, sess, id)
	return args.String(0), args.Error(1)
}

func (m *MockRequestService) List(ctx context.Context, sess model.Session, f ledger.Filter, limit, offset int) (*service.RequestListResult, error) {
	args := m.Called(ctx, sess, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RequestListResult), args.Error(1)
}

func (m *MockRequestService) Dashboard(ctx context.Context, sess model.Session) (*service.AdminDashboard, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminDashboard), args.Error(1)
}

func (m *MockRequestService) Transition(ctx context.Context, sess model.Session, id string, a ledger.Action, notes string) (*model.DocumentRequest, error) {
	return m.request(m.Called(ctx, sess, id, a, notes))
}

func (m *MockRequestService) ReviewPayment(ctx context.Context, sess model.Session, id string, d service.PaymentDecision, notes string) (*model.DocumentRequest, error) {
	return m.request(m.Called(ctx, sess, id, d, notes))
}

func (m *MockRequestService) PaymentQueue(ctx context.Context, sess model.Session, status model.PaymentStatus) ([]model.DocumentRequest, error) {
	args := m.Called(ctx, sess, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentRequest), args.Error(1)
}

func (m *MockRequestService) PaymentProof(ctx context.Context, sess model.Session, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
