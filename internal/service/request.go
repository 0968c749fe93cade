package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"barangay/internal/apperr"
	"barangay/internal/ledger"
	"barangay/internal/model"
	"barangay/internal/repository"
	"barangay/internal/storage"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	recentCount     = 3
)

var (
	ErrStorageUnavailable = fmt.Errorf("object storage %w", apperr.ErrUnavailable)
	ErrNoProof            = fmt.Errorf("payment proof %w", apperr.ErrNotFound)
	ErrProofKeyNotAllowed = &apperr.FieldError{Field: "payment_proof", Reason: "must be uploaded as a file when it names a stored object"}
)

var tracer = otel.Tracer("barangay/internal/service")

// RequestListResult is a page of requests plus the unpaginated total.
type RequestListResult struct {
	Items []model.DocumentRequest `json:"data"`
	Total int                     `json:"total"`
}

// AdminDashboard is the landing view for administrators.
type AdminDashboard struct {
	ledger.Dashboard
	RecentRequests []model.DocumentRequest `json:"recent_requests"`
}

// PaymentInput is a resident's payment submission. Proof, when set, is uploaded
// to object storage and its key replaces ProofRef.
type PaymentInput struct {
	Method           model.PaymentMethod
	Reference        string
	ProofRef         string
	Proof            io.Reader
	ProofFilename    string
	ProofContentType string
	ProofSize        int64
}

type PaymentDecision string

const (
	DecisionVerify PaymentDecision = "verify"
	DecisionReject PaymentDecision = "reject"
)

func ParsePaymentDecision(s string) (PaymentDecision, error) {
	switch d := PaymentDecision(s); d {
	case DecisionVerify, DecisionReject:
		return d, nil
	}
	return "", &apperr.FieldError{Field: "decision", Reason: "must be verify or reject"}
}

// RequestService is the use-case layer over the document request ledger.
type RequestService interface {
	// Create opens a new request for the calling resident.
	Create(ctx context.Context, sess model.Session, t model.DocumentType, purpose string) (*model.DocumentRequest, error)

	// Get returns a request the session may see.
	Get(ctx context.Context, sess model.Session, id string) (*model.DocumentRequest, error)

	// ListMine lists the calling resident's requests, optionally by status.
	ListMine(ctx context.Context, sess model.Session, status model.RequestStatus) ([]model.DocumentRequest, error)

	Stats(ctx context.Context, sess model.Session) (*ledger.Stats, error)

	// Cancel removes one of the resident's requests.
	Cancel(ctx context.Context, sess model.Session, id string) error

	// SubmitPayment uploads the proof if one is attached, then records the payment.
	// The uploaded object is deleted again if the ledger or the database rejects it.
	SubmitPayment(ctx context.Context, sess model.Session, id string, in PaymentInput) (*model.DocumentRequest, error)

	// Download returns a URL for the issued document; stored documents get a presigned URL.
	Download(ctx context.Context, sess model.Session, id string) (string, error)

	// List is the paginated admin listing, newest first.
	List(ctx context.Context, sess model.Session, f ledger.Filter, limit, offset int) (*RequestListResult, error)

	Dashboard(ctx context.Context, sess model.Session) (*AdminDashboard, error)

	// Transition applies an admin action (approve, reject, process, ready).
	Transition(ctx context.Context, sess model.Session, id string, a ledger.Action, notes string) (*model.DocumentRequest, error)

	ReviewPayment(ctx context.Context, sess model.Session, id string, d PaymentDecision, notes string) (*model.DocumentRequest, error)

	PaymentQueue(ctx context.Context, sess model.Session, status model.PaymentStatus) ([]model.DocumentRequest, error)

	// PaymentProof streams an uploaded proof image to an admin.
	PaymentProof(ctx context.Context, sess model.Session, id string) (io.ReadCloser, storage.ObjectInfo, error)
}

type Option func(*requestService)

// WithRepository mirrors every committed mutation to repo.
func WithRepository(repo repository.RequestRepository) Option {
	return func(s *requestService) { s.repo = repo }
}

// WithStorage enables proof uploads and presigned downloads.
func WithStorage(store storage.Storage, presignTTL time.Duration) Option {
	return func(s *requestService) {
		s.store = store
		s.presignTTL = presignTTL
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *requestService) { s.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(s *requestService) { s.metrics = m }
}

type requestService struct {
	led        *ledger.Ledger
	repo       repository.RequestRepository
	store      storage.Storage
	presignTTL time.Duration
	log        logrus.FieldLogger
	metrics    *Metrics

	// writeMu keeps a ledger mutation and its persistence together so a
	// rollback restores exactly the state the mutation started from.
	writeMu sync.Mutex
}

func NewRequestService(led *ledger.Ledger, opts ...Option) RequestService {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &requestService{led: led, log: discard, presignTTL: 15 * time.Minute}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// start opens a span for op; the returned func closes it and records the outcome.
func (s *requestService) start(ctx context.Context, op string, sess model.Session) (context.Context, func(*error)) {
	ctx, span := tracer.Start(ctx, "RequestService."+op)
	span.SetAttributes(
		attribute.String("session.user_id", sess.UserID),
		attribute.String("session.role", string(sess.Role)),
	)
	return ctx, func(errp *error) {
		err := *errp
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if resultLabel(err) == "error" {
				s.log.WithFields(logrus.Fields{"operation": op, "user_id": sess.UserID}).WithError(err).Error("request operation failed")
			}
		}
		span.End()
		s.metrics.observe(op, err)
	}
}

func (s *requestService) save(ctx context.Context, rec model.DocumentRequest, undo func()) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, &rec); err != nil {
		undo()
		return fmt.Errorf("persist request %s: %w", rec.ID, err)
	}
	return nil
}

func (s *requestService) Create(ctx context.Context, sess model.Session, t model.DocumentType, purpose string) (out *model.DocumentRequest, err error) {
	ctx, done := s.start(ctx, "create", sess)
	defer done(&err)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := s.led.Create(sess, t, purpose)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, rec, func() { s.led.Remove(rec.ID) }); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"doc_request_id":   rec.ID,
		"reference_number": rec.ReferenceNumber,
		"type":             rec.Type,
		"resident_id":      rec.ResidentID,
	}).Info("document request created")
	return &rec, nil
}

func (s *requestService) Get(ctx context.Context, sess model.Session, id string) (out *model.DocumentRequest, err error) {
	_, done := s.start(ctx, "get", sess)
	defer done(&err)

	rec, err := s.led.Lookup(sess, id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *requestService) ListMine(ctx context.Context, sess model.Session, status model.RequestStatus) (out []model.DocumentRequest, err error) {
	_, done := s.start(ctx, "list_mine", sess)
	defer done(&err)

	if !sess.IsResident() {
		return nil, ledger.ErrForbidden
	}
	if status == "" {
		return s.led.ListByResident(sess.UserID), nil
	}
	if !status.Valid() {
		return nil, &apperr.FieldError{Field: "status", Reason: "is not a known status"}
	}
	return s.led.ListByStatus(sess.UserID, status), nil
}

func (s *requestService) Stats(ctx context.Context, sess model.Session) (out *ledger.Stats, err error) {
	_, done := s.start(ctx, "stats", sess)
	defer done(&err)

	if !sess.IsResident() {
		return nil, ledger.ErrForbidden
	}
	st := s.led.Stats(sess.UserID)
	return &st, nil
}

func (s *requestService) Cancel(ctx context.Context, sess model.Session, id string) (err error) {
	ctx, done := s.start(ctx, "cancel", sess)
	defer done(&err)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rec, err := s.led.Cancel(sess, id)
	if err != nil {
		return err
	}
	if s.repo != nil {
		if err := s.repo.Delete(ctx, id); err != nil {
			s.led.Restore(rec)
			return fmt.Errorf("delete request %s: %w", id, err)
		}
	}
	s.log.WithFields(logrus.Fields{"doc_request_id": id, "status": rec.Status}).Info("document request cancelled")
	return nil
}

func (s *requestService) SubmitPayment(ctx context.Context, sess model.Session, id string, in PaymentInput) (out *model.DocumentRequest, err error) {
	ctx, done := s.start(ctx, "submit_payment", sess)
	defer done(&err)

	proofRef := in.ProofRef
	uploaded := ""
	// Only keys minted by an upload below may point into the bucket; a
	// client-named key would let PaymentProof stream someone else's object.
	if in.Proof == nil && storage.IsObjectKey(proofRef) {
		return nil, ErrProofKeyNotAllowed
	}
	if in.Proof != nil {
		if s.store == nil {
			return nil, ErrStorageUnavailable
		}
		key, err := storage.ObjectKey(storage.PrefixPaymentProofs, in.ProofFilename)
		if err != nil {
			return nil, err
		}
		info, err := s.store.Put(ctx, key, in.Proof, storage.PutObjectOptions{
			Size:        in.ProofSize,
			ContentType: in.ProofContentType,
			Metadata: map[string]string{
				"original-filename": in.ProofFilename,
				"doc-request-id":    id,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("upload payment proof: %w", err)
		}
		uploaded = info.Key
		proofRef = info.Key
	}

	rec, err := s.submit(ctx, sess, id, ledger.PaymentSubmission{Method: in.Method, Reference: in.Reference, Proof: proofRef})
	if err != nil {
		if uploaded != "" {
			if delErr := s.store.Delete(ctx, uploaded); delErr != nil {
				return nil, fmt.Errorf("%w; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"doc_request_id": rec.ID,
		"payment_method": rec.PaymentMethod,
		"proof_uploaded": uploaded != "",
	}).Info("payment submitted")
	return rec, nil
}

func (s *requestService) submit(ctx context.Context, sess model.Session, id string, p ledger.PaymentSubmission) (*model.DocumentRequest, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	before, _ := s.led.Get(id)
	rec, err := s.led.SubmitPayment(sess, id, p)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, rec, func() { s.led.Restore(before) }); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *requestService) Download(ctx context.Context, sess model.Session, id string) (out string, err error) {
	ctx, done := s.start(ctx, "download", sess)
	defer done(&err)

	ref, err := s.led.Download(sess, id)
	if err != nil {
		return "", err
	}
	if !storage.IsObjectKey(ref) {
		return ref, nil
	}
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	return s.store.PresignGet(ctx, ref, s.presignTTL)
}

func (s *requestService) List(ctx context.Context, sess model.Session, f ledger.Filter, limit, offset int) (out *RequestListResult, err error) {
	_, done := s.start(ctx, "list", sess)
	defer done(&err)

	if !sess.IsAdmin() {
		return nil, ledger.ErrForbidden
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, &apperr.FieldError{Field: "status", Reason: "is not a known status"}
	}
	if f.PaymentStatus != "" && !f.PaymentStatus.Valid() {
		return nil, &apperr.FieldError{Field: "payment_status", Reason: "is not a known payment status"}
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	all := s.led.List(f)
	res := &RequestListResult{Items: []model.DocumentRequest{}, Total: len(all)}
	if offset < len(all) {
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		res.Items = all[offset:end]
	}
	return res, nil
}

func (s *requestService) Dashboard(ctx context.Context, sess model.Session) (out *AdminDashboard, err error) {
	_, done := s.start(ctx, "dashboard", sess)
	defer done(&err)

	if !sess.IsAdmin() {
		return nil, ledger.ErrForbidden
	}
	return &AdminDashboard{Dashboard: s.led.Dashboard(), RecentRequests: s.led.Recent(recentCount)}, nil
}

func (s *requestService) Transition(ctx context.Context, sess model.Session, id string, a ledger.Action, notes string) (out *model.DocumentRequest, err error) {
	ctx, done := s.start(ctx, "transition_"+string(a), sess)
	defer done(&err)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	before, _ := s.led.Get(id)
	rec, err := s.led.Transition(sess, id, a, notes)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, rec, func() { s.led.Restore(before) }); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"doc_request_id": rec.ID,
		"action":         a,
		"from":           before.Status,
		"to":             rec.Status,
		"admin_id":       sess.UserID,
	}).Info("document request status changed")
	return &rec, nil
}

func (s *requestService) ReviewPayment(ctx context.Context, sess model.Session, id string, d PaymentDecision, notes string) (out *model.DocumentRequest, err error) {
	ctx, done := s.start(ctx, "review_payment", sess)
	defer done(&err)

	review := s.led.VerifyPayment
	switch d {
	case DecisionVerify:
	case DecisionReject:
		review = s.led.RejectPayment
	default:
		return nil, &apperr.FieldError{Field: "decision", Reason: "must be verify or reject"}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	before, _ := s.led.Get(id)
	rec, err := review(sess, id, notes)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, rec, func() { s.led.Restore(before) }); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"doc_request_id": rec.ID,
		"payment_status": rec.PaymentStatus,
		"admin_id":       sess.UserID,
	}).Info("payment reviewed")
	return &rec, nil
}

func (s *requestService) PaymentQueue(ctx context.Context, sess model.Session, status model.PaymentStatus) (out []model.DocumentRequest, err error) {
	_, done := s.start(ctx, "payment_queue", sess)
	defer done(&err)

	if !sess.IsAdmin() {
		return nil, ledger.ErrForbidden
	}
	if status != "" && !status.Valid() {
		return nil, &apperr.FieldError{Field: "status", Reason: "is not a known payment status"}
	}
	return s.led.PaymentQueue(status), nil
}

func (s *requestService) PaymentProof(ctx context.Context, sess model.Session, id string) (rc io.ReadCloser, info storage.ObjectInfo, err error) {
	ctx, done := s.start(ctx, "payment_proof", sess)
	defer done(&err)

	if !sess.IsAdmin() {
		return nil, storage.ObjectInfo{}, ledger.ErrForbidden
	}
	rec, err := s.led.Get(id)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	if !storage.IsObjectKey(rec.PaymentProof) {
		return nil, storage.ObjectInfo{}, ErrNoProof
	}
	if s.store == nil {
		return nil, storage.ObjectInfo{}, ErrStorageUnavailable
	}
	return s.store.Get(ctx, rec.PaymentProof)
}
