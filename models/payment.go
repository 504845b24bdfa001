package models

import "time"

const (
	PaymentTypeRent     = "rent"
	PaymentTypeSecurity = "security"
)

// Derived payment statuses. "pending" only ever comes from the zero-amount
// record synthesized when a guest moves in without paying; the ledger itself
// produces "full" or "partial".
const (
	PaymentStatusFull    = "full"
	PaymentStatusPartial = "partial"
	PaymentStatusPending = "pending"
)

// PaymentRecord is append-only. Corrections are made by appending offsetting
// records, never by editing history.
type PaymentRecord struct {
	Month         string    `json:"month"`
	Amount        int       `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentType   string    `json:"payment_type"`
	PaymentStatus string    `json:"payment_status"`
	BalanceAmount int       `json:"balance_amount"`
	PreviousTotal int       `json:"previous_total"`
	NewTotal      int       `json:"new_total"`
	TotalDue      int       `json:"total_due"`
	Notes         string    `json:"notes,omitempty"`
}

// ValidPaymentType reports whether t is a recognized ledger type.
func ValidPaymentType(t string) bool {
	return t == PaymentTypeRent || t == PaymentTypeSecurity
}
