package settings

import (
	"fmt"

	"github.com/shopspring/decimal"

	"barangay/internal/config"
	"barangay/internal/model"
)

type ContactInfo struct {
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// AppSettings is the barangay's public configuration: who it is, when it is
// open, what each document costs and how residents may pay.
type AppSettings struct {
	BarangayName   string                                `json:"barangay_name"`
	ContactInfo    ContactInfo                           `json:"contact_info"`
	OperatingHours string                                `json:"operating_hours"`
	DocumentFees   map[model.DocumentType]decimal.Decimal `json:"document_fees"`
	PaymentMethods []model.PaymentMethod                 `json:"payment_methods"`
}

// Default returns the stock fee schedule used when nothing is configured.
func Default() *AppSettings {
	return &AppSettings{
		BarangayName: "Barangay San Antonio",
		ContactInfo: ContactInfo{
			Address:     "123 Barangay Hall Road, San Antonio, Quezon City",
			PhoneNumber: "+632-8123-4567",
			Email:       "info@barangaysanantonio.gov.ph",
		},
		OperatingHours: "Monday to Friday: 8:00 AM - 5:00 PM",
		DocumentFees: map[model.DocumentType]decimal.Decimal{
			model.DocumentBarangayClearance:      decimal.NewFromInt(50),
			model.DocumentCertificateOfResidency: decimal.NewFromInt(30),
			model.DocumentCertificateOfIndigency: decimal.NewFromInt(25),
			model.DocumentBusinessPermit:         decimal.NewFromInt(200),
			model.DocumentCedula:                 decimal.NewFromInt(35),
			model.DocumentBarangayID:             decimal.NewFromInt(40),
		},
		PaymentMethods: []model.PaymentMethod{
			model.MethodGCash,
			model.MethodPayMaya,
			model.MethodBankTransfer,
			model.MethodCash,
			model.MethodOverTheCounter,
		},
	}
}

// FromConfig builds settings from the environment-backed configuration.
func FromConfig(cfg config.SettingsConfig) (*AppSettings, error) {
	s := &AppSettings{
		BarangayName: cfg.BarangayName,
		ContactInfo: ContactInfo{
			Address:     cfg.Address,
			PhoneNumber: cfg.PhoneNumber,
			Email:       cfg.Email,
		},
		OperatingHours: cfg.OperatingHours,
		DocumentFees: map[model.DocumentType]decimal.Decimal{
			model.DocumentBarangayClearance:      cfg.FeeBarangayClearance,
			model.DocumentCertificateOfResidency: cfg.FeeCertificateOfResidency,
			model.DocumentCertificateOfIndigency: cfg.FeeCertificateOfIndigency,
			model.DocumentBusinessPermit:         cfg.FeeBusinessPermit,
			model.DocumentCedula:                 cfg.FeeCedula,
			model.DocumentBarangayID:             cfg.FeeBarangayID,
		},
	}
	for t, fee := range s.DocumentFees {
		if fee.IsNegative() {
			return nil, fmt.Errorf("fee for %s must not be negative", t)
		}
	}
	for _, raw := range cfg.PaymentMethods {
		m := model.PaymentMethod(raw)
		if !m.Valid() {
			return nil, fmt.Errorf("unknown payment method %q", raw)
		}
		s.PaymentMethods = append(s.PaymentMethods, m)
	}
	return s, nil
}

// Fee returns the configured fee for a document type.
func (s *AppSettings) Fee(t model.DocumentType) (decimal.Decimal, bool) {
	fee, ok := s.DocumentFees[t]
	return fee, ok
}

// Accepts reports whether m is one of the enabled payment methods.
func (s *AppSettings) Accepts(m model.PaymentMethod) bool {
	for _, have := range s.PaymentMethods {
		if have == m {
			return true
		}
	}
	return false
}
