package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"pg-backend/models"
	"pg-backend/repository"

	"gorm.io/gorm"
)

// ReportService derives read-only views over the full room collection.
// Everything here is a pure fold over the fetched rooms; an empty result is
// a valid answer, never an error.
type ReportService struct {
	rooms repository.RoomRepository
	now   func() time.Time
}

func NewReportService(rooms repository.RoomRepository) *ReportService {
	return &ReportService{rooms: rooms, now: func() time.Time { return time.Now().UTC() }}
}

type PaymentDetailsFilter struct {
	RoomNumber  string
	GuestName   string
	Month       string
	Year        string
	PaymentType string
}

// PaymentDetail is one aggregated row per (guest, room, month, type).
type PaymentDetail struct {
	RoomNumber    string     `json:"room_number"`
	RoomType      string     `json:"room_type"`
	GuestName     string     `json:"guest_name"`
	GuestPhone    string     `json:"guest_phone"`
	GuestEmail    string     `json:"guest_email"`
	GuestAadhar   string     `json:"guest_aadhar"`
	PaymentMonth  string     `json:"payment_month"`
	PaymentType   string     `json:"payment_type"`
	PaymentAmount int        `json:"payment_amount"`
	PaymentMethod string     `json:"payment_method"`
	PaymentDate   *time.Time `json:"payment_date"`
	PaymentStatus string     `json:"payment_status"`
	BalanceAmount int        `json:"balance_amount"`
	TotalAmount   int        `json:"total_amount"`
	Notes         string     `json:"notes,omitempty"`
}

type OverdueItem struct {
	Type        string `json:"type"`
	Month       string `json:"month"`
	Outstanding int    `json:"outstanding"`
	TotalDue    int    `json:"total_due"`
	TotalPaid   int    `json:"total_paid"`
}

type OverdueGuest struct {
	RoomNumber        string        `json:"room_number"`
	RoomType          string        `json:"room_type"`
	GuestName         string        `json:"guest_name"`
	GuestPhone        string        `json:"guest_phone"`
	GuestEmail        string        `json:"guest_email"`
	TotalOutstanding  int           `json:"total_outstanding"`
	LatestOverdueDate *time.Time    `json:"latest_overdue_date"`
	DaysOverdue       int           `json:"days_overdue"`
	OverdueTypes      []OverdueItem `json:"overdue_types"`
}

type Tally struct {
	Count  int `json:"count"`
	Amount int `json:"amount"`
}

type MethodSummary struct {
	Count  int               `json:"count"`
	Amount int               `json:"amount"`
	ByType map[string]*Tally `json:"by_type"`
}

type MonthSummary struct {
	Count  int               `json:"count"`
	Amount int               `json:"amount"`
	ByType map[string]*Tally `json:"by_type"`
}

type TypeSummary struct {
	TotalPayments   int `json:"total_payments"`
	TotalAmount     int `json:"total_amount"`
	PaidPayments    int `json:"paid_payments"`
	PaidAmount      int `json:"paid_amount"`
	PendingPayments int `json:"pending_payments"`
	PendingAmount   int `json:"pending_amount"`
	OverduePayments int `json:"overdue_payments"`
	OverdueAmount   int `json:"overdue_amount"`
}

type PaymentAnalytics struct {
	TotalPayments   int `json:"total_payments"`
	TotalAmount     int `json:"total_amount"`
	PaidPayments    int `json:"paid_payments"`
	PaidAmount      int `json:"paid_amount"`
	PendingPayments int `json:"pending_payments"`
	PendingAmount   int `json:"pending_amount"`
	OverduePayments int `json:"overdue_payments"`
	OverdueAmount   int `json:"overdue_amount"`

	MonthlySummary       map[string]*MonthSummary  `json:"monthly_summary"`
	PaymentMethodSummary map[string]*MethodSummary `json:"payment_method_summary"`
	PaymentMethodAmounts map[string]int            `json:"payment_method_amounts"`
	PaymentTypeSummary   map[string]*TypeSummary   `json:"payment_type_summary"`
}

var monthNames = map[string]string{
	"january": "January", "february": "February", "march": "March",
	"april": "April", "may": "May", "june": "June", "july": "July",
	"august": "August", "september": "September", "october": "October",
	"november": "November", "december": "December",
}

// Raw payment methods collapse into a fixed vocabulary for analytics.
var paymentMethodVocabulary = map[string]string{
	"Cash":          "cash",
	"UPI":           "online",
	"Online":        "online",
	"Bank Transfer": "bank_transfer",
	"Cheque":        "cheque",
}

func normalizePaymentMethod(raw string) string {
	if normalized, ok := paymentMethodVocabulary[raw]; ok {
		return normalized
	}
	return "other"
}

// PaymentDetails aggregates every record into one row per
// (guest, room, month, type), newest payment first.
func (s *ReportService) PaymentDetails(filter PaymentDetailsFilter) ([]PaymentDetail, error) {
	var rooms []models.Room
	var err error
	if filter.RoomNumber != "" {
		// An unknown room is an empty report; a failing store is an error.
		room, getErr := s.rooms.GetByNumber(filter.RoomNumber)
		switch {
		case getErr == nil:
			rooms = []models.Room{*room}
		case !errors.Is(getErr, gorm.ErrRecordNotFound):
			return nil, getErr
		}
	} else {
		rooms, err = s.rooms.All()
		if err != nil {
			return nil, err
		}
	}

	type aggregate struct {
		detail  PaymentDetail
		methods []string
		notes   []string
	}
	grouped := map[string]*aggregate{}

	for ri := range rooms {
		room := &rooms[ri]
		for gi := range room.Guests {
			guest := &room.Guests[gi]
			if filter.GuestName != "" &&
				!strings.Contains(strings.ToLower(guest.Username), strings.ToLower(filter.GuestName)) {
				continue
			}

			for _, paymentType := range paymentTypesFor(filter.PaymentType) {
				totalAmount := room.DueAmount(paymentType)
				for _, payment := range guest.History(paymentType) {
					if !matchesMonth(payment.Month, filter.Month) {
						continue
					}
					if filter.Year != "" && payment.PaymentDate.Format("2006") != filter.Year {
						continue
					}

					key := guest.Username + "_" + room.RoomNumber + "_" + payment.Month + "_" + paymentType
					agg, ok := grouped[key]
					if !ok {
						agg = &aggregate{detail: PaymentDetail{
							RoomNumber:   room.RoomNumber,
							RoomType:     room.RoomType,
							GuestName:    guest.Username,
							GuestPhone:   guest.Phone,
							GuestEmail:   guest.Email,
							GuestAadhar:  guest.Aadhar,
							PaymentMonth: payment.Month,
							PaymentType:  paymentType,
							TotalAmount:  totalAmount,
						}}
						grouped[key] = agg
					}

					agg.detail.PaymentAmount += payment.Amount
					if payment.PaymentMethod != "" && !containsString(agg.methods, payment.PaymentMethod) {
						agg.methods = append(agg.methods, payment.PaymentMethod)
					}
					if payment.Notes != "" {
						agg.notes = append(agg.notes, payment.Notes)
					}
					date := payment.PaymentDate
					if agg.detail.PaymentDate == nil || date.After(*agg.detail.PaymentDate) {
						agg.detail.PaymentDate = &date
					}
				}
			}
		}
	}

	details := make([]PaymentDetail, 0, len(grouped))
	for _, agg := range grouped {
		d := agg.detail
		switch {
		case d.PaymentAmount >= d.TotalAmount:
			d.PaymentStatus = models.PaymentStatusFull
			d.BalanceAmount = 0
		case d.PaymentAmount > 0:
			d.PaymentStatus = models.PaymentStatusPartial
			d.BalanceAmount = d.TotalAmount - d.PaymentAmount
		default:
			d.PaymentStatus = models.PaymentStatusPending
			d.BalanceAmount = d.TotalAmount
		}
		if len(agg.methods) > 0 {
			d.PaymentMethod = strings.Join(agg.methods, ", ")
		} else {
			d.PaymentMethod = "N/A"
		}
		d.Notes = strings.Join(agg.notes, "; ")
		details = append(details, d)
	}

	sort.SliceStable(details, func(i, j int) bool {
		di, dj := details[i].PaymentDate, details[j].PaymentDate
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.After(*dj)
		}
	})
	return details, nil
}

// OverduePayments accumulates, per guest, every obligation that is short of
// its due amount and whose earliest payment activity predates now. Rent is
// evaluated per month; the security deposit as one whole-stay obligation.
// typeFilter optionally narrows to one ledger; anything unrecognized means
// both.
func (s *ReportService) OverduePayments(typeFilter string) ([]OverdueGuest, error) {
	rooms, err := s.rooms.All()
	if err != nil {
		return nil, err
	}
	now := s.now()
	includeRent, includeSecurity := includedTypes(typeFilter)

	var overdue []OverdueGuest
	for ri := range rooms {
		room := &rooms[ri]
		for gi := range room.Guests {
			guest := &room.Guests[gi]
			entry := OverdueGuest{
				RoomNumber: room.RoomNumber,
				RoomType:   room.RoomType,
				GuestName:  guest.Username,
				GuestPhone: guest.Phone,
				GuestEmail: guest.Email,
			}

			// Rent: one group per month.
			byMonth := map[string][]models.PaymentRecord{}
			if includeRent {
				for _, p := range guest.RentHistory {
					if p.Month == "" {
						continue
					}
					byMonth[p.Month] = append(byMonth[p.Month], p)
				}
			}
			for month, payments := range byMonth {
				totalPaid := 0
				var earliest *time.Time
				for _, p := range payments {
					totalPaid += p.Amount
					date := p.PaymentDate
					if earliest == nil || date.Before(*earliest) {
						earliest = &date
					}
				}
				outstanding := maxInt(0, room.RentAmount-totalPaid)
				if outstanding > 0 && earliest != nil && earliest.Before(now) {
					entry.TotalOutstanding += outstanding
					entry.OverdueTypes = append(entry.OverdueTypes, OverdueItem{
						Type:        models.PaymentTypeRent,
						Month:       month,
						Outstanding: outstanding,
						TotalDue:    room.RentAmount,
						TotalPaid:   totalPaid,
					})
					if entry.LatestOverdueDate == nil || earliest.After(*entry.LatestOverdueDate) {
						entry.LatestOverdueDate = earliest
					}
				}
			}

			// Security: a single obligation over the whole stay.
			securityPaid := guest.SecurityPaidTotal()
			securityOutstanding := maxInt(0, room.SecurityDeposit-securityPaid)
			if includeSecurity && securityOutstanding > 0 {
				var earliest *time.Time
				for _, p := range guest.SecurityHistory {
					date := p.PaymentDate
					if earliest == nil || date.Before(*earliest) {
						earliest = &date
					}
				}
				if earliest != nil && earliest.Before(now) {
					entry.TotalOutstanding += securityOutstanding
					entry.OverdueTypes = append(entry.OverdueTypes, OverdueItem{
						Type:        models.PaymentTypeSecurity,
						Month:       "N/A",
						Outstanding: securityOutstanding,
						TotalDue:    room.SecurityDeposit,
						TotalPaid:   securityPaid,
					})
					if entry.LatestOverdueDate == nil || earliest.After(*entry.LatestOverdueDate) {
						entry.LatestOverdueDate = earliest
					}
				}
			}

			if entry.TotalOutstanding > 0 {
				if entry.LatestOverdueDate != nil {
					entry.DaysOverdue = int(now.Sub(*entry.LatestOverdueDate).Hours() / 24)
				}
				overdue = append(overdue, entry)
			}
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysOverdue > overdue[j].DaysOverdue
	})
	return overdue, nil
}

// PaymentAnalytics tallies every record across every room, optionally
// narrowed to one ledger type. Reads mutate nothing, so back-to-back calls
// with no intervening writes are identical.
func (s *ReportService) PaymentAnalytics(typeFilter string) (*PaymentAnalytics, error) {
	rooms, err := s.rooms.All()
	if err != nil {
		return nil, err
	}
	now := s.now()
	types := paymentTypesFor(typeFilter)

	analytics := &PaymentAnalytics{
		MonthlySummary:       map[string]*MonthSummary{},
		PaymentMethodSummary: map[string]*MethodSummary{},
		PaymentMethodAmounts: map[string]int{},
		PaymentTypeSummary:   map[string]*TypeSummary{},
	}
	for _, paymentType := range types {
		analytics.PaymentTypeSummary[paymentType] = &TypeSummary{}
	}

	for ri := range rooms {
		room := &rooms[ri]
		for gi := range room.Guests {
			guest := &room.Guests[gi]
			for _, paymentType := range types {
				typeSummary := analytics.PaymentTypeSummary[paymentType]
				for _, payment := range guest.History(paymentType) {
					analytics.TotalPayments++
					analytics.TotalAmount += payment.Amount
					typeSummary.TotalPayments++
					typeSummary.TotalAmount += payment.Amount

					method := normalizePaymentMethod(payment.PaymentMethod)
					ms, ok := analytics.PaymentMethodSummary[method]
					if !ok {
						ms = &MethodSummary{ByType: map[string]*Tally{}}
						analytics.PaymentMethodSummary[method] = ms
					}
					if ms.ByType[paymentType] == nil {
						ms.ByType[paymentType] = &Tally{}
					}
					ms.Count++
					ms.Amount += payment.Amount
					ms.ByType[paymentType].Count++
					ms.ByType[paymentType].Amount += payment.Amount
					analytics.PaymentMethodAmounts[method] += payment.Amount

					month := payment.Month
					if month == "" {
						month = "Unknown"
					}
					mo, ok := analytics.MonthlySummary[month]
					if !ok {
						mo = &MonthSummary{ByType: map[string]*Tally{}}
						analytics.MonthlySummary[month] = mo
					}
					if mo.ByType[paymentType] == nil {
						mo.ByType[paymentType] = &Tally{}
					}
					mo.Count++
					mo.Amount += payment.Amount
					mo.ByType[paymentType].Count++
					mo.ByType[paymentType].Amount += payment.Amount

					switch payment.PaymentStatus {
					case models.PaymentStatusFull:
						analytics.PaidPayments++
						analytics.PaidAmount += payment.Amount
						typeSummary.PaidPayments++
						typeSummary.PaidAmount += payment.Amount
					case models.PaymentStatusPending, models.PaymentStatusPartial:
						analytics.PendingPayments++
						analytics.PendingAmount += payment.Amount
						typeSummary.PendingPayments++
						typeSummary.PendingAmount += payment.Amount
						if payment.PaymentDate.Before(now) {
							analytics.OverduePayments++
							analytics.OverdueAmount += payment.Amount
							typeSummary.OverduePayments++
							typeSummary.OverdueAmount += payment.Amount
						}
					}
				}
			}
		}
	}
	return analytics, nil
}

func paymentTypesFor(filter string) []string {
	if models.ValidPaymentType(filter) {
		return []string{filter}
	}
	return []string{models.PaymentTypeRent, models.PaymentTypeSecurity}
}

func includedTypes(filter string) (rent, security bool) {
	switch filter {
	case models.PaymentTypeRent:
		return true, false
	case models.PaymentTypeSecurity:
		return false, true
	default:
		return true, true
	}
}

// matchesMonth accepts a month name ("august") or a "YYYY-MM" key. Any other
// non-empty filter matches nothing.
func matchesMonth(paymentMonth, filter string) bool {
	if filter == "" {
		return true
	}
	if name, ok := monthNames[strings.ToLower(filter)]; ok {
		return paymentMonth == name
	}
	if len(filter) == 7 && strings.Contains(filter, "-") {
		return paymentMonth == filter
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
