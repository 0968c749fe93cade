package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"barangay/internal/apperr"
	"barangay/internal/ledger"
	"barangay/internal/model"
	repoMocks "barangay/internal/repository/mocks"
	"barangay/internal/seed"
	"barangay/internal/settings"
	"barangay/internal/storage"
	storeMocks "barangay/internal/storage/mocks"
)

var (
	juan  = model.Session{UserID: "1", Role: model.RoleResident}
	maria = model.Session{UserID: "2", Role: model.RoleResident}
	staff = model.Session{UserID: "admin-1", Role: model.RoleAdmin}
)

func newSeededLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	led := ledger.New(settings.Default(),
		ledger.WithClock(func() time.Time {
			now = now.Add(time.Minute)
			return now
		}),
		ledger.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}),
	)
	require.NoError(t, led.Load(seed.Demo().Requests...))
	return led
}

func TestRequestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		sess       model.Session
		docType    model.DocumentType
		setupMocks func(mRepo *repoMocks.MockRequestRepository)
		wantErr    error
		wantErrMsg string
		wantLen    int
	}{
		{
			name:    "happy path",
			sess:    juan,
			docType: model.DocumentCertificateOfIndigency,
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {
				mRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *model.DocumentRequest) bool {
					return r.ID == "new-1" && r.ResidentID == "1" && r.Status == model.StatusPending
				})).Return(nil)
			},
			wantLen: 4,
		},
		{
			name:       "unknown type never reaches the repository",
			sess:       juan,
			docType:    "passport",
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {},
			wantErr:    apperr.ErrValidation,
			wantLen:    3,
		},
		{
			name:       "admin cannot create",
			sess:       staff,
			docType:    model.DocumentBarangayClearance,
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {},
			wantErr:    apperr.ErrForbidden,
			wantLen:    3,
		},
		{
			name:    "repository failure rolls back the ledger",
			sess:    juan,
			docType: model.DocumentBarangayClearance,
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {
				mRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))
			},
			wantErrMsg: "persist request new-1: db down",
			wantLen:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := newSeededLedger(t)
			mRepo := new(repoMocks.MockRequestRepository)
			tt.setupMocks(mRepo)
			svc := NewRequestService(led, WithRepository(mRepo))

			got, err := svc.Create(context.Background(), tt.sess, tt.docType, "  Scholarship  ")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Scholarship", got.Purpose)
				assert.True(t, strings.HasPrefix(got.ReferenceNumber, "CERTIFICATEOFINDIGENCY-"), got.ReferenceNumber)
			}
			assert.Equal(t, tt.wantLen, led.Len())
			mRepo.AssertExpectations(t)
		})
	}
}

func TestRequestService_SubmitPayment(t *testing.T) {
	upload := func() PaymentInput {
		return PaymentInput{
			Method:           model.MethodGCash,
			Reference:        "GC-123",
			Proof:            strings.NewReader("png bytes"),
			ProofFilename:    "receipt.PNG",
			ProofContentType: "image/png",
			ProofSize:        9,
		}
	}
	isProofKey := mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "payment-proofs/") && strings.HasSuffix(key, ".png")
	})
	echoKey := func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
		return storage.ObjectInfo{Key: key, Size: opt.Size}
	}

	tests := []struct {
		name        string
		sess        model.Session
		in          PaymentInput
		noStore     bool
		setupMocks  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository)
		wantErr     error
		wantErrMsg  string
		wantPayment model.PaymentStatus
	}{
		{
			name: "uploads proof and records payment",
			sess: maria,
			in:   upload(),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {
				mStore.On("Put", mock.Anything, isProofKey, mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
					return o.ContentType == "image/png" && o.Metadata["doc-request-id"] == "doc-3"
				})).Return(echoKey, nil)
				mRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *model.DocumentRequest) bool {
					return storage.IsObjectKey(r.PaymentProof) && r.PaymentStatus == model.PaymentPendingVerification
				})).Return(nil)
			},
			wantPayment: model.PaymentPendingVerification,
		},
		{
			name:       "proof reference without upload",
			sess:       maria,
			in:         PaymentInput{Method: model.MethodPayMaya, Reference: "PM-1", ProofRef: "img://1"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {
				mRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
			},
			wantPayment: model.PaymentPendingVerification,
		},
		{
			name:        "client reference into the bucket is refused",
			sess:        maria,
			in:          PaymentInput{Method: model.MethodGCash, Reference: "GC-2", ProofRef: "payment-proofs/someone-elses.png"},
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {},
			wantErr:     apperr.ErrValidation,
			wantPayment: model.PaymentUnpaid,
		},
		{
			name:        "client reference to an issued document is refused",
			sess:        maria,
			in:          PaymentInput{Method: model.MethodGCash, Reference: "GC-3", ProofRef: "documents/clearance.pdf"},
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {},
			wantErr:     ErrProofKeyNotAllowed,
			wantPayment: model.PaymentUnpaid,
		},
		{
			name:        "upload without storage",
			sess:        maria,
			in:          upload(),
			noStore:     true,
			setupMocks:  func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {},
			wantErr:     ErrStorageUnavailable,
			wantPayment: model.PaymentUnpaid,
		},
		{
			name: "storage put failure",
			sess: maria,
			in:   upload(),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {
				mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("bucket gone"))
			},
			wantErrMsg:  "upload payment proof: bucket gone",
			wantPayment: model.PaymentUnpaid,
		},
		{
			name: "ledger rejection removes the upload",
			sess: juan,
			in:   upload(),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {
				mStore.On("Put", mock.Anything, isProofKey, mock.Anything, mock.Anything).Return(echoKey, nil)
				mStore.On("Delete", mock.Anything, isProofKey).Return(nil)
			},
			wantErr:     apperr.ErrForbidden,
			wantPayment: model.PaymentUnpaid,
		},
		{
			name: "repository failure restores the record and removes the upload",
			sess: maria,
			in:   upload(),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {
				mStore.On("Put", mock.Anything, isProofKey, mock.Anything, mock.Anything).Return(echoKey, nil)
				mRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db fail"))
				mStore.On("Delete", mock.Anything, isProofKey).Return(nil)
			},
			wantErrMsg:  "persist request doc-3: db fail",
			wantPayment: model.PaymentUnpaid,
		},
		{
			name: "failed rollback is reported",
			sess: maria,
			in:   upload(),
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRequestRepository) {
				mStore.On("Put", mock.Anything, isProofKey, mock.Anything, mock.Anything).Return(echoKey, nil)
				mRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db fail"))
				mStore.On("Delete", mock.Anything, isProofKey).Return(errors.New("delete fail"))
			},
			wantErrMsg:  "persist request doc-3: db fail; rollback delete failed: delete fail",
			wantPayment: model.PaymentUnpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := newSeededLedger(t)
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockRequestRepository)
			tt.setupMocks(mStore, mRepo)

			opts := []Option{WithRepository(mRepo)}
			if !tt.noStore {
				opts = append(opts, WithStorage(mStore, time.Minute))
			}
			svc := NewRequestService(led, opts...)

			got, err := svc.SubmitPayment(context.Background(), tt.sess, "doc-3", tt.in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.in.Method, got.PaymentMethod)
			}

			cur, err := led.Get("doc-3")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPayment, cur.PaymentStatus)
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestRequestService_Cancel(t *testing.T) {
	t.Run("deletes from repository", func(t *testing.T) {
		led := newSeededLedger(t)
		mRepo := new(repoMocks.MockRequestRepository)
		mRepo.On("Delete", mock.Anything, "doc-2").Return(nil)
		svc := NewRequestService(led, WithRepository(mRepo))

		require.NoError(t, svc.Cancel(context.Background(), juan, "doc-2"))
		_, err := led.Get("doc-2")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository failure restores the record", func(t *testing.T) {
		led := newSeededLedger(t)
		mRepo := new(repoMocks.MockRequestRepository)
		mRepo.On("Delete", mock.Anything, "doc-2").Return(errors.New("db fail"))
		svc := NewRequestService(led, WithRepository(mRepo))

		err := svc.Cancel(context.Background(), juan, "doc-2")
		assert.EqualError(t, err, "delete request doc-2: db fail")
		cur, err := led.Get("doc-2")
		require.NoError(t, err)
		assert.Equal(t, model.StatusProcessing, cur.Status)
		assert.Equal(t, 3, led.Len())
	})

	t.Run("completed request cannot be cancelled", func(t *testing.T) {
		mRepo := new(repoMocks.MockRequestRepository)
		svc := NewRequestService(newSeededLedger(t), WithRepository(mRepo))

		err := svc.Cancel(context.Background(), juan, "doc-1")
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
		mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestRequestService_Transition(t *testing.T) {
	tests := []struct {
		name       string
		sess       model.Session
		id         string
		action     ledger.Action
		setupMocks func(mRepo *repoMocks.MockRequestRepository)
		wantErr    error
		wantErrMsg string
		wantStatus model.RequestStatus
	}{
		{
			name:   "ready persists the new status",
			sess:   staff,
			id:     "doc-2",
			action: ledger.ActionReady,
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {
				mRepo.On("Save", mock.Anything, mock.MatchedBy(func(r *model.DocumentRequest) bool {
					return r.Status == model.StatusReadyForPickup && r.ProcessedBy == "admin-1"
				})).Return(nil)
			},
			wantStatus: model.StatusReadyForPickup,
		},
		{
			name:       "resident is forbidden",
			sess:       juan,
			id:         "doc-2",
			action:     ledger.ActionReady,
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {},
			wantErr:    apperr.ErrForbidden,
			wantStatus: model.StatusProcessing,
		},
		{
			name:       "wrong source state",
			sess:       staff,
			id:         "doc-3",
			action:     ledger.ActionReady,
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {},
			wantErr:    apperr.ErrInvalidTransition,
			wantStatus: model.StatusPaymentNeeded,
		},
		{
			name:   "repository failure restores the previous status",
			sess:   staff,
			id:     "doc-2",
			action: ledger.ActionReady,
			setupMocks: func(mRepo *repoMocks.MockRequestRepository) {
				mRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db fail"))
			},
			wantErrMsg: "persist request doc-2: db fail",
			wantStatus: model.StatusProcessing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			led := newSeededLedger(t)
			mRepo := new(repoMocks.MockRequestRepository)
			tt.setupMocks(mRepo)
			svc := NewRequestService(led, WithRepository(mRepo))

			_, err := svc.Transition(context.Background(), tt.sess, tt.id, tt.action, "")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
			}
			cur, err := led.Get(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, cur.Status)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestRequestService_ReviewPayment(t *testing.T) {
	ctx := context.Background()
	led := newSeededLedger(t)
	svc := NewRequestService(led)

	_, err := svc.SubmitPayment(ctx, maria, "doc-3", PaymentInput{Method: model.MethodGCash, Reference: "GC-9", ProofRef: "img://9"})
	require.NoError(t, err)

	_, err = svc.ReviewPayment(ctx, staff, "doc-3", "maybe", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ReviewPayment(ctx, maria, "doc-3", DecisionVerify, "")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	got, err := svc.ReviewPayment(ctx, staff, "doc-3", DecisionVerify, "Receipt matches")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentVerified, got.PaymentStatus)
	assert.Equal(t, "Receipt matches", got.Notes)

	_, err = svc.ReviewPayment(ctx, staff, "doc-3", DecisionReject, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestParsePaymentDecision(t *testing.T) {
	d, err := ParsePaymentDecision("reject")
	require.NoError(t, err)
	assert.Equal(t, DecisionReject, d)

	_, err = ParsePaymentDecision("REJECT")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRequestService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("external URL is returned as is", func(t *testing.T) {
		svc := NewRequestService(newSeededLedger(t))
		url, err := svc.Download(ctx, juan, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/documents/bc-2024-001.pdf", url)
	})

	stored := func(t *testing.T) *ledger.Ledger {
		led := newSeededLedger(t)
		rec, err := led.Get("doc-1")
		require.NoError(t, err)
		rec.DocumentURL = "documents/bc-2024-001.pdf"
		led.Restore(rec)
		return led
	}

	t.Run("object key is presigned", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mStore.On("PresignGet", mock.Anything, "documents/bc-2024-001.pdf", 5*time.Minute).
			Return("https://minio.local/signed", nil)
		svc := NewRequestService(stored(t), WithStorage(mStore, 5*time.Minute))

		url, err := svc.Download(ctx, juan, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "https://minio.local/signed", url)
		mStore.AssertExpectations(t)
	})

	t.Run("object key without storage", func(t *testing.T) {
		svc := NewRequestService(stored(t))
		_, err := svc.Download(ctx, juan, "doc-1")
		assert.ErrorIs(t, err, apperr.ErrUnavailable)
	})

	t.Run("not completed", func(t *testing.T) {
		svc := NewRequestService(newSeededLedger(t))
		_, err := svc.Download(ctx, juan, "doc-2")
		assert.ErrorIs(t, err, ledger.ErrDocumentUnavailable)
	})

	t.Run("someone else's request", func(t *testing.T) {
		svc := NewRequestService(newSeededLedger(t))
		_, err := svc.Download(ctx, maria, "doc-1")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestRequestService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewRequestService(newSeededLedger(t))

	tests := []struct {
		name          string
		sess          model.Session
		filter        ledger.Filter
		limit, offset int
		wantIDs       []string
		wantTotal     int
		wantErr       error
	}{
		{name: "defaults newest first", sess: staff, wantIDs: []string{"doc-3", "doc-2", "doc-1"}, wantTotal: 3},
		{name: "page", sess: staff, limit: 1, offset: 1, wantIDs: []string{"doc-2"}, wantTotal: 3},
		{name: "offset past end", sess: staff, offset: 10, wantIDs: []string{}, wantTotal: 3},
		{name: "negative offset", sess: staff, limit: 2, offset: -4, wantIDs: []string{"doc-3", "doc-2"}, wantTotal: 3},
		{name: "by payment status", sess: staff, filter: ledger.Filter{PaymentStatus: model.PaymentVerified}, wantIDs: []string{"doc-2", "doc-1"}, wantTotal: 2},
		{name: "bad status", sess: staff, filter: ledger.Filter{Status: "lost"}, wantErr: apperr.ErrValidation},
		{name: "resident forbidden", sess: juan, wantErr: apperr.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(ctx, tt.sess, tt.filter, tt.limit, tt.offset)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(res.Items))
			for _, r := range res.Items {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, res.Total)
		})
	}
}

func TestRequestService_ResidentViews(t *testing.T) {
	ctx := context.Background()
	svc := NewRequestService(newSeededLedger(t))

	mine, err := svc.ListMine(ctx, juan, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	processing, err := svc.ListMine(ctx, juan, model.StatusProcessing)
	require.NoError(t, err)
	require.Len(t, processing, 1)
	assert.Equal(t, "doc-2", processing[0].ID)

	_, err = svc.ListMine(ctx, juan, "lost")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	st, err := svc.Stats(ctx, juan)
	require.NoError(t, err)
	assert.Equal(t, ledger.Stats{Total: 2, Completed: 1, Processing: 1}, *st)

	_, err = svc.Stats(ctx, staff)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	got, err := svc.Get(ctx, staff, "doc-3")
	require.NoError(t, err)
	assert.Equal(t, "BP-2024-001", got.ReferenceNumber)
}

func TestRequestService_Dashboard(t *testing.T) {
	ctx := context.Background()
	svc := NewRequestService(newSeededLedger(t))

	d, err := svc.Dashboard(ctx, staff)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Total)
	assert.Equal(t, 1, d.CompletedRequests)
	require.Len(t, d.RecentRequests, 3)
	assert.Equal(t, "doc-3", d.RecentRequests[0].ID)

	_, err = svc.Dashboard(ctx, juan)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestRequestService_PaymentProof(t *testing.T) {
	ctx := context.Background()
	led := newSeededLedger(t)
	rec, err := led.Get("doc-2")
	require.NoError(t, err)
	rec.PaymentProof = "payment-proofs/abc.png"
	led.Restore(rec)

	mStore := new(storeMocks.MockStorage)
	body := io.NopCloser(strings.NewReader("png"))
	mStore.On("Get", mock.Anything, "payment-proofs/abc.png").
		Return(body, storage.ObjectInfo{Key: "payment-proofs/abc.png", ContentType: "image/png"}, nil)
	svc := NewRequestService(led, WithStorage(mStore, time.Minute))

	rc, info, err := svc.PaymentProof(ctx, staff, "doc-2")
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, body, rc)

	_, _, err = svc.PaymentProof(ctx, staff, "doc-1")
	assert.ErrorIs(t, err, ErrNoProof)

	_, _, err = svc.PaymentProof(ctx, juan, "doc-2")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = svc.PaymentProof(ctx, staff, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	mStore.AssertExpectations(t)
}

func TestRequestService_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc := NewRequestService(newSeededLedger(t), WithMetrics(m))

	_, err := svc.Create(ctx, juan, model.DocumentBarangayClearance, "Travel")
	require.NoError(t, err)
	_, err = svc.Create(ctx, juan, "passport", "Travel")
	require.Error(t, err)
	_, err = svc.Get(ctx, maria, "doc-1")
	require.Error(t, err)
	_, err = svc.Transition(ctx, staff, "doc-1", ledger.ActionApprove, "")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("create", "validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("get", "forbidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("transition_approve", "invalid_transition")))
}

func TestLoadLedger(t *testing.T) {
	ctx := context.Background()
	fallback := seed.Demo().Requests

	t.Run("no repository loads fallback", func(t *testing.T) {
		led := ledger.New(settings.Default())
		n, err := LoadLedger(ctx, led, nil, fallback)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 3, led.Len())
	})

	t.Run("empty repository is seeded", func(t *testing.T) {
		led := ledger.New(settings.Default())
		mRepo := new(repoMocks.MockRequestRepository)
		mRepo.On("List", ctx).Return([]model.DocumentRequest{}, nil)
		mRepo.On("Save", ctx, mock.Anything).Return(nil).Times(3)

		n, err := LoadLedger(ctx, led, mRepo, seed.Demo().Requests)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		mRepo.AssertExpectations(t)
	})

	t.Run("stored rows win over fallback", func(t *testing.T) {
		led := ledger.New(settings.Default())
		mRepo := new(repoMocks.MockRequestRepository)
		mRepo.On("List", ctx).Return(seed.Demo().Requests[:1], nil)

		n, err := LoadLedger(ctx, led, mRepo, fallback)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		mRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("list failure", func(t *testing.T) {
		led := ledger.New(settings.Default())
		mRepo := new(repoMocks.MockRequestRepository)
		mRepo.On("List", ctx).Return(nil, errors.New("db fail"))

		_, err := LoadLedger(ctx, led, mRepo, fallback)
		assert.EqualError(t, err, "list stored requests: db fail")
		assert.Zero(t, led.Len())
	})
}
