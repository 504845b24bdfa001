package services

import (
	"fmt"
	"log"
	"time"

	"pg-backend/models"
	"pg-backend/repository"
)

// TemplateKind selects the message template at the external email sink.
type TemplateKind string

const (
	TemplateReminder TemplateKind = "reminder"
	TemplateOverdue  TemplateKind = "overdue"
)

// MessageContext is everything the sink needs to render either template.
type MessageContext struct {
	GuestName     string
	RoomNumber    string
	PaymentMonth  string
	Amount        int
	BalanceAmount int
	DaysOverdue   int
}

// Sender is the external email delivery sink. The policy layer only decides
// who is owed what; delivery success is the sink's verdict.
type Sender interface {
	Send(recipient string, kind TemplateKind, ctx MessageContext) bool
}

type PaymentNotification struct {
	RoomNumber    string    `json:"room_number"`
	GuestName     string    `json:"guest_name"`
	GuestPhone    string    `json:"guest_phone"`
	PaymentMonth  string    `json:"payment_month"`
	Amount        int       `json:"amount"`
	BalanceAmount int       `json:"balance_amount"`
	PaymentDate   time.Time `json:"payment_date"`
	DaysOverdue   int       `json:"days_overdue,omitempty"`
	DaysRemaining int       `json:"days_remaining,omitempty"`
}

type PaymentNotifications struct {
	Overdue  []PaymentNotification `json:"overdue"`
	DueToday []PaymentNotification `json:"due_today"`
	DueSoon  []PaymentNotification `json:"due_soon"`
}

type PendingGuest struct {
	RoomNumber   string `json:"room_number"`
	RoomType     string `json:"room_type"`
	GuestName    string `json:"guest_name"`
	GuestPhone   string `json:"guest_phone"`
	GuestEmail   string `json:"guest_email"`
	RentAmount   int    `json:"rent_amount"`
	PaymentMonth string `json:"payment_month"`
	PaymentYear  int    `json:"payment_year"`
}

type SendResult struct {
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
	Skipped bool `json:"skipped"`
}

// NotificationService decides which guests are owed reminders and on what
// cadence, and hands the actual delivery to the Sender.
type NotificationService struct {
	rooms    repository.RoomRepository
	activity *ActivityService
	sender   Sender
	now      func() time.Time
}

func NewNotificationService(rooms repository.RoomRepository, activity *ActivityService, sender Sender) *NotificationService {
	return &NotificationService{
		rooms:    rooms,
		activity: activity,
		sender:   sender,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source and returns s. The monthly gate is
// calendar-driven, so pinning the clock pins the gate.
func (s *NotificationService) WithClock(clock func() time.Time) *NotificationService {
	s.now = clock
	return s
}

// PaymentNotifications partitions unpaid rent records by how far their
// payment date sits from now: past → overdue, today → due_today, within
// three days → due_soon.
func (s *NotificationService) PaymentNotifications() (*PaymentNotifications, error) {
	rooms, err := s.rooms.All()
	if err != nil {
		return nil, err
	}
	now := s.now()

	result := &PaymentNotifications{
		Overdue:  []PaymentNotification{},
		DueToday: []PaymentNotification{},
		DueSoon:  []PaymentNotification{},
	}
	for ri := range rooms {
		room := &rooms[ri]
		for gi := range room.Guests {
			guest := &room.Guests[gi]
			for _, payment := range guest.RentHistory {
				if payment.PaymentStatus != models.PaymentStatusPending &&
					payment.PaymentStatus != models.PaymentStatusPartial {
					continue
				}
				daysDiff := int(payment.PaymentDate.Sub(now).Hours() / 24)
				n := PaymentNotification{
					RoomNumber:    room.RoomNumber,
					GuestName:     guest.Username,
					GuestPhone:    guest.Phone,
					PaymentMonth:  payment.Month,
					Amount:        payment.Amount,
					BalanceAmount: payment.BalanceAmount,
					PaymentDate:   payment.PaymentDate,
				}
				switch {
				case daysDiff < 0:
					n.DaysOverdue = -daysDiff
					result.Overdue = append(result.Overdue, n)
				case daysDiff == 0:
					result.DueToday = append(result.DueToday, n)
				case daysDiff <= 3:
					n.DaysRemaining = daysDiff
					result.DueSoon = append(result.DueSoon, n)
				}
			}
		}
	}
	return result, nil
}

// PendingMonthlyGuests lists guests with no full rent payment recorded for
// the current calendar month, keyed either "YYYY-MM" or month name + year.
func (s *NotificationService) PendingMonthlyGuests() ([]PendingGuest, error) {
	rooms, err := s.rooms.All()
	if err != nil {
		return nil, err
	}
	now := s.now()
	monthKey := now.Format("2006-01")
	monthName := now.Format("January")

	pending := []PendingGuest{}
	for ri := range rooms {
		room := &rooms[ri]
		for gi := range room.Guests {
			guest := &room.Guests[gi]
			paid := false
			for _, payment := range guest.RentHistory {
				if payment.PaymentStatus != models.PaymentStatusFull {
					continue
				}
				if payment.Month == monthKey ||
					(payment.Month == monthName && payment.PaymentDate.Year() == now.Year()) {
					paid = true
					break
				}
			}
			if !paid {
				pending = append(pending, PendingGuest{
					RoomNumber:   room.RoomNumber,
					RoomType:     room.RoomType,
					GuestName:    guest.Username,
					GuestPhone:   guest.Phone,
					GuestEmail:   guest.Email,
					RentAmount:   room.RentAmount,
					PaymentMonth: monthName,
					PaymentYear:  now.Year(),
				})
			}
		}
	}
	return pending, nil
}

// SendBulkNotifications delivers a reminder or overdue notice for every
// pending/partial rent record. Per-guest failures never abort the batch; a
// guest whose email cannot be resolved counts as failed.
func (s *NotificationService) SendBulkNotifications() SendResult {
	var result SendResult
	notifications, err := s.PaymentNotifications()
	if err != nil {
		log.Printf("❌ bulk notifications aborted: %v", err)
		return result
	}
	rooms, err := s.rooms.All()
	if err != nil {
		log.Printf("❌ bulk notifications aborted: %v", err)
		return result
	}

	dispatch := func(n PaymentNotification, kind TemplateKind) {
		email := guestEmail(rooms, n.GuestName)
		if email == "" {
			result.Failed++
			log.Printf("✗ no email found for %s", n.GuestName)
			return
		}
		ok := s.sender.Send(email, kind, MessageContext{
			GuestName:     n.GuestName,
			RoomNumber:    n.RoomNumber,
			PaymentMonth:  n.PaymentMonth,
			Amount:        n.Amount,
			BalanceAmount: n.BalanceAmount,
			DaysOverdue:   n.DaysOverdue,
		})
		if ok {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	for _, n := range notifications.Overdue {
		dispatch(n, TemplateOverdue)
	}
	for _, n := range notifications.DueToday {
		dispatch(n, TemplateReminder)
	}
	for _, n := range notifications.DueSoon {
		dispatch(n, TemplateReminder)
	}

	s.activity.Log(models.ActivityNotificationsSent,
		fmt.Sprintf("Bulk payment notifications dispatched: %d sent, %d failed", result.Sent, result.Failed),
		"", "", nil)
	log.Printf("✅ Bulk notifications completed: %d sent, %d failed", result.Sent, result.Failed)
	return result
}

// MonthlyRemindersDue reports whether the monthly-reminder policy gate is
// open. Reminders go out on the 5th of the month only.
func (s *NotificationService) MonthlyRemindersDue() bool {
	return s.now().Day() == 5
}

// RunMonthlyReminders sends the current month's rent reminder to every guest
// without a full payment for the month. Without force it is a no-op unless
// today is the 5th; the gate is policy, not ledger state.
func (s *NotificationService) RunMonthlyReminders(force bool) SendResult {
	if !force && !s.MonthlyRemindersDue() {
		log.Printf("Monthly reminders skipped: today is day %d, not the 5th", s.now().Day())
		return SendResult{Skipped: true}
	}

	var result SendResult
	pending, err := s.PendingMonthlyGuests()
	if err != nil {
		log.Printf("❌ monthly reminders aborted: %v", err)
		return result
	}

	log.Printf("Sending monthly reminders to %d guest(s)...", len(pending))
	for _, guest := range pending {
		if guest.GuestEmail == "" {
			result.Failed++
			log.Printf("✗ no email found for %s", guest.GuestName)
			continue
		}
		ok := s.sender.Send(guest.GuestEmail, TemplateReminder, MessageContext{
			GuestName:    guest.GuestName,
			RoomNumber:   guest.RoomNumber,
			PaymentMonth: fmt.Sprintf("%s %d", guest.PaymentMonth, guest.PaymentYear),
			Amount:       guest.RentAmount,
		})
		if ok {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	s.activity.Log(models.ActivityNotificationsSent,
		fmt.Sprintf("Monthly rent reminders dispatched: %d sent, %d failed", result.Sent, result.Failed),
		"", "", nil)
	log.Printf("✅ Monthly reminders completed: %d sent, %d failed", result.Sent, result.Failed)
	return result
}

func guestEmail(rooms []models.Room, guestName string) string {
	for ri := range rooms {
		for gi := range rooms[ri].Guests {
			if rooms[ri].Guests[gi].Username == guestName {
				return rooms[ri].Guests[gi].Email
			}
		}
	}
	return ""
}
