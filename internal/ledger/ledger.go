// Package ledger holds the authoritative set of document requests and enforces
// the request and payment state machines over them.
//
// Every operation runs under a single mutex and either applies completely or
// leaves the ledger untouched. Records handed out are copies; callers mutate the
// ledger only through its methods.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"barangay/internal/apperr"
	"barangay/internal/model"
)

// FeeSchedule supplies document fees and the accepted payment methods.
type FeeSchedule interface {
	Fee(t model.DocumentType) (decimal.Decimal, bool)
	Accepts(m model.PaymentMethod) bool
}

// PaymentSubmission is what a resident sends when paying for a request.
type PaymentSubmission struct {
	Method    model.PaymentMethod
	Reference string
	Proof     string
}

type Option func(*Ledger)

// WithClock overrides the time source used for request and review timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides how new request ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

type Ledger struct {
	mu    sync.Mutex
	fees  FeeSchedule
	now   func() time.Time
	newID func() string

	order      []string
	byID       map[string]*model.DocumentRequest
	byRef      map[string]string
	lastSuffix int64
}

func New(fees FeeSchedule, opts ...Option) *Ledger {
	l := &Ledger{
		fees:  fees,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
		byID:  make(map[string]*model.DocumentRequest),
		byRef: make(map[string]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load inserts existing records, e.g. seed data or rows read back from the
// database. The batch is validated as a whole and nothing is inserted if any
// record is rejected.
func (l *Ledger) Load(reqs ...model.DocumentRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make(map[string]bool, len(reqs))
	refs := make(map[string]bool, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		if err := validateRecord(r); err != nil {
			return fmt.Errorf("load %q: %w", r.ID, err)
		}
		if _, ok := l.byID[r.ID]; ok || ids[r.ID] {
			return fmt.Errorf("load %q: id %w", r.ID, apperr.ErrConflict)
		}
		if _, ok := l.byRef[r.ReferenceNumber]; ok || refs[r.ReferenceNumber] {
			return fmt.Errorf("load %q: %w: %s", r.ID, ErrDuplicateReference, r.ReferenceNumber)
		}
		ids[r.ID] = true
		refs[r.ReferenceNumber] = true
	}
	for _, r := range reqs {
		l.insert(r.Clone())
	}
	return nil
}

func validateRecord(r *model.DocumentRequest) error {
	switch {
	case r.ID == "":
		return apperr.Required("id")
	case r.ResidentID == "":
		return apperr.Required("resident_id")
	case r.ReferenceNumber == "":
		return apperr.Required("reference_number")
	case !r.Type.Valid():
		return ErrUnknownDocumentType
	case !r.Status.Valid():
		return &apperr.FieldError{Field: "status", Reason: "is not a known status"}
	case !r.PaymentStatus.Valid():
		return &apperr.FieldError{Field: "payment_status", Reason: "is not a known payment status"}
	case r.PaymentAmount.IsNegative():
		return &apperr.FieldError{Field: "payment_amount", Reason: "must not be negative"}
	case r.Status == model.StatusCompleted && r.PaymentStatus != model.PaymentVerified:
		return invalidTransition("completed request without a verified payment")
	}
	return nil
}

func (l *Ledger) insert(r model.DocumentRequest) {
	l.order = append(l.order, r.ID)
	l.byID[r.ID] = &r
	l.byRef[r.ReferenceNumber] = r.ID
}

// Create opens a new request for the resident in sess.
func (l *Ledger) Create(sess model.Session, t model.DocumentType, purpose string) (model.DocumentRequest, error) {
	if !sess.IsResident() || sess.UserID == "" {
		return model.DocumentRequest{}, ErrForbidden
	}
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return model.DocumentRequest{}, apperr.Required("purpose")
	}
	if !t.Valid() {
		return model.DocumentRequest{}, ErrUnknownDocumentType
	}
	fee, ok := l.fees.Fee(t)
	if !ok {
		return model.DocumentRequest{}, ErrUnknownDocumentType
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	r := model.DocumentRequest{
		ID:              l.newID(),
		ResidentID:      sess.UserID,
		Type:            t,
		Status:          model.StatusPending,
		Purpose:         purpose,
		RequestDate:     now,
		PaymentStatus:   model.PaymentUnpaid,
		PaymentAmount:   fee,
		ReferenceNumber: l.nextReference(t, now),
	}
	l.insert(r)
	return r.Clone(), nil
}

// nextReference derives TYPE-<millis>, bumping the suffix until it is unused.
func (l *Ledger) nextReference(t model.DocumentType, now time.Time) string {
	prefix := strings.ToUpper(strings.ReplaceAll(string(t), "_", ""))
	suffix := now.UnixMilli()
	if suffix <= l.lastSuffix {
		suffix = l.lastSuffix + 1
	}
	for {
		ref := prefix + "-" + strconv.FormatInt(suffix, 10)
		if _, taken := l.byRef[ref]; !taken {
			l.lastSuffix = suffix
			return ref
		}
		suffix++
	}
}

// SubmitPayment records a resident's payment and moves it to pending verification.
func (l *Ledger) SubmitPayment(sess model.Session, id string, p PaymentSubmission) (model.DocumentRequest, error) {
	if err := l.validatePayment(p); err != nil {
		return model.DocumentRequest{}, err
	}
	if !sess.IsResident() {
		return model.DocumentRequest{}, ErrForbidden
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, err := l.owned(sess, id)
	if err != nil {
		return model.DocumentRequest{}, err
	}
	if r.PaymentStatus != model.PaymentUnpaid {
		return model.DocumentRequest{}, invalidTransition("payment is already %s", r.PaymentStatus)
	}
	r.PaymentStatus = model.PaymentPendingVerification
	r.PaymentMethod = p.Method
	r.PaymentReference = strings.TrimSpace(p.Reference)
	r.PaymentProof = p.Proof
	return r.Clone(), nil
}

func (l *Ledger) validatePayment(p PaymentSubmission) error {
	switch {
	case p.Method == "":
		return apperr.Required("payment_method")
	case !p.Method.Valid() || !l.fees.Accepts(p.Method):
		return &apperr.FieldError{Field: "payment_method", Reason: "is not accepted"}
	case strings.TrimSpace(p.Reference) == "":
		return apperr.Required("payment_reference")
	case p.Proof == "":
		return apperr.Required("payment_proof")
	}
	return nil
}

func (l *Ledger) VerifyPayment(sess model.Session, id, notes string) (model.DocumentRequest, error) {
	return l.reviewPayment(sess, id, model.PaymentVerified, notes)
}

func (l *Ledger) RejectPayment(sess model.Session, id, notes string) (model.DocumentRequest, error) {
	return l.reviewPayment(sess, id, model.PaymentRejected, notes)
}

func (l *Ledger) reviewPayment(sess model.Session, id string, to model.PaymentStatus, notes string) (model.DocumentRequest, error) {
	if !sess.IsAdmin() {
		return model.DocumentRequest{}, ErrForbidden
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.byID[id]
	if !ok {
		return model.DocumentRequest{}, ErrNotFound
	}
	if r.PaymentStatus != model.PaymentPendingVerification {
		return model.DocumentRequest{}, invalidTransition("payment is %s, not pending verification", r.PaymentStatus)
	}
	now := l.now()
	r.PaymentStatus = to
	r.PaymentReviewedBy = sess.UserID
	r.PaymentReviewedDate = &now
	if notes != "" {
		r.Notes = notes
	}
	return r.Clone(), nil
}

func (l *Ledger) Approve(sess model.Session, id, notes string) (model.DocumentRequest, error) {
	return l.Transition(sess, id, ActionApprove, notes)
}

func (l *Ledger) Reject(sess model.Session, id, notes string) (model.DocumentRequest, error) {
	return l.Transition(sess, id, ActionReject, notes)
}

func (l *Ledger) Process(sess model.Session, id, notes string) (model.DocumentRequest, error) {
	return l.Transition(sess, id, ActionProcess, notes)
}

func (l *Ledger) MarkReady(sess model.Session, id, notes string) (model.DocumentRequest, error) {
	return l.Transition(sess, id, ActionReady, notes)
}

// Transition applies an admin action to a request's status.
func (l *Ledger) Transition(sess model.Session, id string, a Action, notes string) (model.DocumentRequest, error) {
	tr, ok := transitions[a]
	if !ok {
		return model.DocumentRequest{}, &apperr.FieldError{Field: "action", Reason: "is not supported"}
	}
	if !sess.IsAdmin() {
		return model.DocumentRequest{}, ErrForbidden
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.byID[id]
	if !ok {
		return model.DocumentRequest{}, ErrNotFound
	}
	if r.Status != tr.from {
		return model.DocumentRequest{}, invalidTransition("cannot %s a request that is %s", a, r.Status)
	}
	if tr.guard != nil {
		if err := tr.guard(r); err != nil {
			return model.DocumentRequest{}, err
		}
	}
	now := l.now()
	r.Status = tr.to
	r.ProcessedDate = &now
	r.ProcessedBy = sess.UserID
	if notes != "" {
		r.Notes = notes
	}
	return r.Clone(), nil
}

// Cancel removes a resident's own request. Anything short of completed may be cancelled.
func (l *Ledger) Cancel(sess model.Session, id string) (model.DocumentRequest, error) {
	if !sess.IsResident() {
		return model.DocumentRequest{}, ErrForbidden
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, err := l.owned(sess, id)
	if err != nil {
		return model.DocumentRequest{}, err
	}
	if r.Status == model.StatusCompleted {
		return model.DocumentRequest{}, invalidTransition("completed requests cannot be cancelled")
	}
	out := r.Clone()
	l.remove(id)
	return out, nil
}

// Download returns the issued document's location once the request is completed.
func (l *Ledger) Download(sess model.Session, id string) (string, error) {
	r, err := l.Lookup(sess, id)
	if err != nil {
		return "", err
	}
	if r.Status != model.StatusCompleted || r.DocumentURL == "" {
		return "", ErrDocumentUnavailable
	}
	return r.DocumentURL, nil
}

// Restore puts back a record exactly as given, replacing any record with the
// same id. It exists to undo a mutation whose persistence failed.
func (l *Ledger) Restore(r model.DocumentRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.byID[r.ID]; ok {
		delete(l.byRef, cur.ReferenceNumber)
		c := r.Clone()
		l.byID[r.ID] = &c
		l.byRef[c.ReferenceNumber] = c.ID
		return
	}
	l.insert(r.Clone())
}

// Remove deletes a record by id and reports whether it existed.
func (l *Ledger) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.byID[id]; !ok {
		return false
	}
	l.remove(id)
	return true
}

func (l *Ledger) remove(id string) {
	r := l.byID[id]
	delete(l.byID, id)
	delete(l.byRef, r.ReferenceNumber)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// owned returns the live record if it belongs to the session's resident.
func (l *Ledger) owned(sess model.Session, id string) (*model.DocumentRequest, error) {
	r, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.ResidentID != sess.UserID {
		return nil, ErrForbidden
	}
	return r, nil
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
