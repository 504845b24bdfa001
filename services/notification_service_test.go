package services

import (
	"sync"
	"testing"
	"time"

	"pg-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	Recipient string
	Kind      TemplateKind
	Ctx       MessageContext
}

// fakeSender records every dispatch; recipients listed in rejected fail to
// deliver.
type fakeSender struct {
	mu       sync.Mutex
	sent     []sentMessage
	rejected map[string]bool
}

func (f *fakeSender) Send(recipient string, kind TemplateKind, ctx MessageContext) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rejected[recipient] {
		return false
	}
	f.sent = append(f.sent, sentMessage{Recipient: recipient, Kind: kind, Ctx: ctx})
	return true
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func newNotificationEnv(t *testing.T) (*testEnv, *NotificationService, *fakeSender) {
	t.Helper()
	env := newTestEnv(t)
	sender := &fakeSender{rejected: map[string]bool{}}
	svc := NewNotificationService(env.rooms, env.activity, sender)
	return env, svc, sender
}

func TestPaymentNotificationsPartition(t *testing.T) {
	env, svc, _ := newNotificationEnv(t)
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	room := &models.Room{
		RoomNumber: "101", RoomType: "double", Capacity: 4,
		RentAmount: 12000, CurrentOccupancy: 3, Status: models.RoomStatusAvailable,
		Guests: []models.Guest{
			{
				UserID: "g-1", Username: "asha", Phone: "1", Email: "a@x.in",
				RentHistory: []models.PaymentRecord{{
					Month: "2025-08", Amount: 5000, PaymentStatus: models.PaymentStatusPartial,
					BalanceAmount: 7000, PaymentDate: now.Add(-49 * time.Hour),
				}},
			},
			{
				UserID: "g-2", Username: "ravi", Phone: "2", Email: "r@x.in",
				RentHistory: []models.PaymentRecord{{
					Month: "2025-08", Amount: 0, PaymentStatus: models.PaymentStatusPending,
					BalanceAmount: 12000, PaymentDate: now.Add(5 * time.Hour),
				}},
			},
			{
				UserID: "g-3", Username: "meena", Phone: "3", Email: "m@x.in",
				RentHistory: []models.PaymentRecord{
					{
						Month: "2025-08", Amount: 0, PaymentStatus: models.PaymentStatusPending,
						BalanceAmount: 12000, PaymentDate: now.Add(48 * time.Hour),
					},
					{
						Month: "2025-07", Amount: 12000, PaymentStatus: models.PaymentStatusFull,
						PaymentDate: now.Add(-30 * 24 * time.Hour),
					},
				},
			},
		},
	}
	require.NoError(t, env.rooms.Create(room))

	notifications, err := svc.PaymentNotifications()
	require.NoError(t, err)

	require.Len(t, notifications.Overdue, 1)
	assert.Equal(t, "asha", notifications.Overdue[0].GuestName)
	assert.Equal(t, 2, notifications.Overdue[0].DaysOverdue)
	assert.Equal(t, 7000, notifications.Overdue[0].BalanceAmount)

	require.Len(t, notifications.DueToday, 1)
	assert.Equal(t, "ravi", notifications.DueToday[0].GuestName)

	require.Len(t, notifications.DueSoon, 1)
	assert.Equal(t, "meena", notifications.DueSoon[0].GuestName)
	assert.Equal(t, 2, notifications.DueSoon[0].DaysRemaining)
}

func TestPaymentNotificationsSkipsSettled(t *testing.T) {
	env, svc, _ := newNotificationEnv(t)
	env.freeze(time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC))
	env.createRoom(t, "101", 1, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{
		Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111",
		RentAmountPaid: 12000, SecurityAmountPaid: 12000,
	})

	notifications, err := svc.PaymentNotifications()
	require.NoError(t, err)
	assert.Empty(t, notifications.Overdue)
	assert.Empty(t, notifications.DueToday)
	assert.Empty(t, notifications.DueSoon)
}

func TestPendingMonthlyGuests(t *testing.T) {
	env, svc, _ := newNotificationEnv(t)
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	env.freeze(now)

	env.createRoom(t, "101", 2, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{
		Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111", RentAmountPaid: 12000,
	})
	env.addGuest(t, "101", AddGuestInput{
		Username: "ravi", Phone: "2", Email: "r@x.in", Aadhar: "2222", RentAmountPaid: 5000,
	})

	pending, err := svc.PendingMonthlyGuests()
	require.NoError(t, err)
	require.Len(t, pending, 1, "a partial month is still pending")

	entry := pending[0]
	assert.Equal(t, "ravi", entry.GuestName)
	assert.Equal(t, "August", entry.PaymentMonth)
	assert.Equal(t, 2025, entry.PaymentYear)
	assert.Equal(t, 12000, entry.RentAmount)
}

func TestPendingMonthlyGuestsMonthNameRecords(t *testing.T) {
	env, svc, _ := newNotificationEnv(t)
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	room := &models.Room{
		RoomNumber: "201", RoomType: "single", Capacity: 1,
		RentAmount: 8000, CurrentOccupancy: 1, Status: models.RoomStatusOccupied,
		Guests: []models.Guest{{
			UserID: "g-1", Username: "meena", Phone: "3", Email: "m@x.in",
			RentHistory: []models.PaymentRecord{{
				Month: "August", Amount: 8000, PaymentStatus: models.PaymentStatusFull,
				PaymentDate: time.Date(2025, 8, 3, 0, 0, 0, 0, time.UTC),
			}},
		}},
	}
	require.NoError(t, env.rooms.Create(room))

	pending, err := svc.PendingMonthlyGuests()
	require.NoError(t, err)
	assert.Empty(t, pending, "month-name records from the same year count as paid")
}

func TestSendBulkNotifications(t *testing.T) {
	env, svc, sender := newNotificationEnv(t)
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	room := &models.Room{
		RoomNumber: "101", RoomType: "double", Capacity: 4,
		RentAmount: 12000, CurrentOccupancy: 3, Status: models.RoomStatusAvailable,
		Guests: []models.Guest{
			{
				UserID: "g-1", Username: "asha", Phone: "1", Email: "a@x.in",
				RentHistory: []models.PaymentRecord{{
					Month: "2025-08", Amount: 5000, PaymentStatus: models.PaymentStatusPartial,
					BalanceAmount: 7000, PaymentDate: now.Add(-49 * time.Hour),
				}},
			},
			{
				UserID: "g-2", Username: "ravi", Phone: "2", Email: "r@x.in",
				RentHistory: []models.PaymentRecord{{
					Month: "2025-08", Amount: 0, PaymentStatus: models.PaymentStatusPending,
					BalanceAmount: 12000, PaymentDate: now,
				}},
			},
			{
				// No email on file; delivery cannot even be attempted.
				UserID: "g-3", Username: "meena", Phone: "3",
				RentHistory: []models.PaymentRecord{{
					Month: "2025-08", Amount: 0, PaymentStatus: models.PaymentStatusPending,
					BalanceAmount: 12000, PaymentDate: now.Add(48 * time.Hour),
				}},
			},
		},
	}
	require.NoError(t, env.rooms.Create(room))
	sender.rejected["r@x.in"] = true

	result := svc.SendBulkNotifications()

	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 2, result.Failed, "sink rejection and a missing email both count as failed")
	assert.False(t, result.Skipped)

	messages := sender.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "a@x.in", messages[0].Recipient)
	assert.Equal(t, TemplateOverdue, messages[0].Kind)
	assert.Equal(t, 2, messages[0].Ctx.DaysOverdue)

	types := env.activityTypes(t, 10)
	assert.Contains(t, types, models.ActivityNotificationsSent)
}

func TestMonthlyRemindersGate(t *testing.T) {
	env, svc, sender := newNotificationEnv(t)
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	env.freeze(now)

	env.createRoom(t, "101", 2, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{
		Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111", RentAmountPaid: 5000,
	})

	assert.False(t, svc.MonthlyRemindersDue())
	result := svc.RunMonthlyReminders(false)
	assert.True(t, result.Skipped, "off the 5th, an unforced run is a no-op")
	assert.Empty(t, sender.messages())

	result = svc.RunMonthlyReminders(true)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Failed)

	messages := sender.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "a@x.in", messages[0].Recipient)
	assert.Equal(t, TemplateReminder, messages[0].Kind)
	assert.Equal(t, "August 2025", messages[0].Ctx.PaymentMonth)
	assert.Equal(t, 12000, messages[0].Ctx.Amount)
}

func TestMonthlyRemindersOnTheFifth(t *testing.T) {
	env, svc, sender := newNotificationEnv(t)
	now := time.Date(2025, 8, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	env.freeze(now)

	env.createRoom(t, "101", 2, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{
		Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111",
	})

	assert.True(t, svc.MonthlyRemindersDue())
	result := svc.RunMonthlyReminders(false)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, result.Sent)
	assert.Len(t, sender.messages(), 1)
}
