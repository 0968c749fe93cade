package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is one of the documents a resident can request.
type DocumentType string

const (
	DocumentBarangayClearance      DocumentType = "barangay_clearance"
	DocumentCertificateOfResidency DocumentType = "certificate_of_residency"
	DocumentCertificateOfIndigency DocumentType = "certificate_of_indigency"
	DocumentBusinessPermit         DocumentType = "business_permit"
	DocumentCedula                 DocumentType = "cedula"
	DocumentBarangayID             DocumentType = "barangay_id"
)

// DocumentTypes lists every requestable document in display order.
var DocumentTypes = []DocumentType{
	DocumentBarangayClearance,
	DocumentCertificateOfResidency,
	DocumentCertificateOfIndigency,
	DocumentBusinessPermit,
	DocumentCedula,
	DocumentBarangayID,
}

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentBarangayClearance,
		DocumentCertificateOfResidency,
		DocumentCertificateOfIndigency,
		DocumentBusinessPermit,
		DocumentCedula,
		DocumentBarangayID:
		return true
	}
	return false
}

// RequestStatus tracks a request through review and processing.
type RequestStatus string

const (
	StatusPending        RequestStatus = "pending"
	StatusPaymentNeeded  RequestStatus = "payment_needed"
	StatusProcessing     RequestStatus = "processing"
	StatusReadyForPickup RequestStatus = "ready_for_pickup"
	StatusCompleted      RequestStatus = "completed"
	StatusRejected       RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending,
		StatusPaymentNeeded,
		StatusProcessing,
		StatusReadyForPickup,
		StatusCompleted,
		StatusRejected:
		return true
	}
	return false
}

// PaymentStatus evolves independently of RequestStatus.
type PaymentStatus string

const (
	PaymentUnpaid              PaymentStatus = "unpaid"
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentVerified            PaymentStatus = "verified"
	PaymentRejected            PaymentStatus = "rejected"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentPendingVerification, PaymentVerified, PaymentRejected:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodGCash          PaymentMethod = "gcash"
	MethodPayMaya        PaymentMethod = "paymaya"
	MethodBankTransfer   PaymentMethod = "bank_transfer"
	MethodCash           PaymentMethod = "cash"
	MethodOverTheCounter PaymentMethod = "over_the_counter"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodGCash, MethodPayMaya, MethodBankTransfer, MethodCash, MethodOverTheCounter:
		return true
	}
	return false
}

// DocumentRequest is a resident's request for a barangay document together
// with the state of its payment.
type DocumentRequest struct {
	ID                  string          `json:"id" db:"id"`
	ResidentID          string          `json:"resident_id" db:"resident_id"`
	Type                DocumentType    `json:"type" db:"type"`
	Status              RequestStatus   `json:"status" db:"status"`
	Purpose             string          `json:"purpose" db:"purpose"`
	RequestDate         time.Time       `json:"request_date" db:"request_date"`
	ProcessedDate       *time.Time      `json:"processed_date,omitempty" db:"processed_date"`
	CompletedDate       *time.Time      `json:"completed_date,omitempty" db:"completed_date"`
	ProcessedBy         string          `json:"processed_by,omitempty" db:"processed_by"`
	PaymentStatus       PaymentStatus   `json:"payment_status" db:"payment_status"`
	PaymentAmount       decimal.Decimal `json:"payment_amount" db:"payment_amount"`
	PaymentMethod       PaymentMethod   `json:"payment_method,omitempty" db:"payment_method"`
	PaymentReference    string          `json:"payment_reference,omitempty" db:"payment_reference"`
	PaymentProof        string          `json:"payment_proof,omitempty" db:"payment_proof"`
	PaymentReviewedBy   string          `json:"payment_reviewed_by,omitempty" db:"payment_reviewed_by"`
	PaymentReviewedDate *time.Time      `json:"payment_reviewed_date,omitempty" db:"payment_reviewed_date"`
	ReferenceNumber     string          `json:"reference_number" db:"reference_number"`
	Notes               string          `json:"notes,omitempty" db:"notes"`
	DocumentURL         string          `json:"document_url,omitempty" db:"document_url"`
}

// Clone returns a deep copy so callers never share time pointers with the ledger.
func (r DocumentRequest) Clone() DocumentRequest {
	r.ProcessedDate = cloneTime(r.ProcessedDate)
	r.CompletedDate = cloneTime(r.CompletedDate)
	r.PaymentReviewedDate = cloneTime(r.PaymentReviewedDate)
	return r
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
