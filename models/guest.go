package models

import "time"

// Guest is embedded in its room's guests JSON column and is exclusively
// owned by that room. It is never stored as a standalone row.
type Guest struct {
	UserID        string     `json:"user_id"`
	Username      string     `json:"username"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Aadhar        string     `json:"aadhar"`
	DateOfJoining time.Time  `json:"date_of_joining"`
	DateOfLeaving *time.Time `json:"date_of_leaving,omitempty"`

	RentPaid     bool `json:"rent_paid"`
	SecurityPaid bool `json:"security_paid"`

	RentHistory     []PaymentRecord `json:"rent_history"`
	SecurityHistory []PaymentRecord `json:"security_history"`

	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}

// History returns the ledger slice for the given payment type.
func (g *Guest) History(paymentType string) []PaymentRecord {
	if paymentType == PaymentTypeSecurity {
		return g.SecurityHistory
	}
	return g.RentHistory
}

// RentPaidForMonth sums every rent record for one month. Rent resets each
// period, so the month is part of the ledger key.
func (g *Guest) RentPaidForMonth(month string) int {
	total := 0
	for _, p := range g.RentHistory {
		if p.Month == month {
			total += p.Amount
		}
	}
	return total
}

// SecurityPaidTotal sums the whole security history. The deposit is a single
// whole-stay obligation, so months are ignored.
func (g *Guest) SecurityPaidTotal() int {
	total := 0
	for _, p := range g.SecurityHistory {
		total += p.Amount
	}
	return total
}
