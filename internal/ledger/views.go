package ledger

import (
	"sort"

	"barangay/internal/model"
)

// Stats counts a resident's requests per bucket. Rejected and ready-for-pickup
// requests land in no bucket, so the buckets may sum to less than Total.
type Stats struct {
	Total         int `json:"total"`
	Completed     int `json:"completed"`
	Processing    int `json:"processing"`
	Pending       int `json:"pending"`
	PaymentNeeded int `json:"payment_needed"`
}

type Dashboard struct {
	Total             int `json:"total"`
	PendingRequests   int `json:"pending_requests"`
	PaymentsToVerify  int `json:"payments_to_verify"`
	CompletedRequests int `json:"completed_requests"`
}

// Filter narrows admin listings. Zero fields match everything.
type Filter struct {
	Status        model.RequestStatus
	PaymentStatus model.PaymentStatus
	ResidentID    string
}

func (f Filter) match(r *model.DocumentRequest) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.PaymentStatus != "" && r.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.ResidentID != "" && r.ResidentID != f.ResidentID {
		return false
	}
	return true
}

// Get returns any record by id, regardless of owner.
func (l *Ledger) Get(id string) (model.DocumentRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.byID[id]
	if !ok {
		return model.DocumentRequest{}, ErrNotFound
	}
	return r.Clone(), nil
}

func (l *Ledger) GetByReference(ref string) (model.DocumentRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.byRef[ref]
	if !ok {
		return model.DocumentRequest{}, ErrNotFound
	}
	return l.byID[id].Clone(), nil
}

// Lookup returns a record visible to the session: admins see every request,
// residents only their own.
func (l *Ledger) Lookup(sess model.Session, id string) (model.DocumentRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.byID[id]
	if !ok {
		return model.DocumentRequest{}, ErrNotFound
	}
	switch {
	case sess.IsAdmin():
	case sess.IsResident() && r.ResidentID == sess.UserID:
	default:
		return model.DocumentRequest{}, ErrForbidden
	}
	return r.Clone(), nil
}

// ListByResident returns a resident's requests in insertion order.
func (l *Ledger) ListByResident(residentID string) []model.DocumentRequest {
	return l.collect(Filter{ResidentID: residentID})
}

func (l *Ledger) ListByStatus(residentID string, status model.RequestStatus) []model.DocumentRequest {
	return l.collect(Filter{ResidentID: residentID, Status: status})
}

func (l *Ledger) Stats(residentID string) Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s Stats
	for _, id := range l.order {
		r := l.byID[id]
		if r.ResidentID != residentID {
			continue
		}
		s.Total++
		switch r.Status {
		case model.StatusCompleted:
			s.Completed++
		case model.StatusProcessing:
			s.Processing++
		case model.StatusPending:
			s.Pending++
		case model.StatusPaymentNeeded:
			s.PaymentNeeded++
		}
	}
	return s
}

// List returns matching requests, newest first. Requests with equal dates keep
// their insertion order.
func (l *Ledger) List(f Filter) []model.DocumentRequest {
	out := l.collect(f)
	newestFirst(out)
	return out
}

// PaymentQueue lists requests that carry a payment to look at: anything with a
// proof attached or a payment status past unpaid. An empty status matches all.
func (l *Ledger) PaymentQueue(status model.PaymentStatus) []model.DocumentRequest {
	l.mu.Lock()
	out := make([]model.DocumentRequest, 0)
	for _, id := range l.order {
		r := l.byID[id]
		if r.PaymentProof == "" && r.PaymentStatus == model.PaymentUnpaid {
			continue
		}
		if status != "" && r.PaymentStatus != status {
			continue
		}
		out = append(out, r.Clone())
	}
	l.mu.Unlock()

	newestFirst(out)
	return out
}

func (l *Ledger) Dashboard() Dashboard {
	l.mu.Lock()
	defer l.mu.Unlock()

	d := Dashboard{Total: len(l.order)}
	for _, r := range l.byID {
		if r.Status == model.StatusPending {
			d.PendingRequests++
		}
		if r.Status == model.StatusCompleted {
			d.CompletedRequests++
		}
		if r.PaymentStatus == model.PaymentPendingVerification {
			d.PaymentsToVerify++
		}
	}
	return d
}

// Recent returns up to n of the newest requests.
func (l *Ledger) Recent(n int) []model.DocumentRequest {
	out := l.List(Filter{})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func (l *Ledger) collect(f Filter) []model.DocumentRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.DocumentRequest, 0)
	for _, id := range l.order {
		if r := l.byID[id]; f.match(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

func newestFirst(rs []model.DocumentRequest) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].RequestDate.After(rs[j].RequestDate)
	})
}
