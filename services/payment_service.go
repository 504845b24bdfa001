package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pg-backend/models"
	"pg-backend/repository"

	"gorm.io/gorm"
)

// PaymentService is the append-only ledger. Rent is keyed per month and
// resets each period; the security deposit is a single whole-stay obligation
// paid down across any number of records.
type PaymentService struct {
	rooms    repository.RoomRepository
	activity *ActivityService
	now      func() time.Time
}

func NewPaymentService(rooms repository.RoomRepository, activity *ActivityService) *PaymentService {
	return &PaymentService{rooms: rooms, activity: activity, now: func() time.Time { return time.Now().UTC() }}
}

type AddPaymentInput struct {
	PaymentType   string `json:"payment_type"`
	Amount        int    `json:"amount" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	Month         string `json:"month"`
	Notes         string `json:"notes"`
}

func (s *PaymentService) Add(roomNumber, userID string, in AddPaymentInput) (*models.PaymentRecord, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be greater than 0", ErrInvalidArgument)
	}
	if in.PaymentType == "" {
		in.PaymentType = models.PaymentTypeRent
	}
	if !models.ValidPaymentType(in.PaymentType) {
		return nil, fmt.Errorf("%w: unknown payment type %q", ErrInvalidArgument, in.PaymentType)
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = "Cash"
	}
	if in.Month == "" {
		in.Month = s.now().Format("2006-01")
	}

	var (
		record    models.PaymentRecord
		guestName string
	)
	room, err := s.rooms.Mutate(roomNumber, func(room *models.Room) error {
		guest := room.FindGuest(userID)
		if guest == nil {
			return fmt.Errorf("%w: guest %s in room %s", ErrNotFound, userID, roomNumber)
		}
		guestName = guest.Username

		totalDue := room.DueAmount(in.PaymentType)

		// The prior slice the new payment settles against: same-month rent
		// records, or the entire security history.
		var previousTotal int
		if in.PaymentType == models.PaymentTypeSecurity {
			previousTotal = guest.SecurityPaidTotal()
		} else {
			previousTotal = guest.RentPaidForMonth(in.Month)
		}
		newTotal := previousTotal + in.Amount

		status := models.PaymentStatusPartial
		if newTotal >= totalDue {
			status = models.PaymentStatusFull
		}

		now := s.now()
		record = models.PaymentRecord{
			Month:         in.Month,
			Amount:        in.Amount,
			PaymentMethod: in.PaymentMethod,
			PaymentDate:   now,
			PaymentType:   in.PaymentType,
			PaymentStatus: status,
			BalanceAmount: maxInt(0, totalDue-newTotal),
			PreviousTotal: previousTotal,
			NewTotal:      newTotal,
			TotalDue:      totalDue,
			Notes:         in.Notes,
		}

		if in.PaymentType == models.PaymentTypeSecurity {
			guest.SecurityHistory = append(guest.SecurityHistory, record)
			guest.SecurityPaid = status == models.PaymentStatusFull
		} else {
			guest.RentHistory = append(guest.RentHistory, record)
			guest.RentPaid = status == models.PaymentStatusFull
		}
		guest.LastPaymentDate = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return nil, err
	}

	s.activity.Log(models.ActivityPaymentReceived,
		fmt.Sprintf("₹%d %s payment received from %s for room %s (%s)",
			record.Amount, record.PaymentType, guestName, room.RoomNumber, record.PaymentStatus),
		room.RoomNumber, guestName, &record.Amount)

	if record.PaymentStatus == models.PaymentStatusFull {
		completion := fmt.Sprintf("Full rent for %s", record.Month)
		if record.PaymentType == models.PaymentTypeSecurity {
			completion = "Full security deposit"
		}
		s.activity.Log(models.ActivityPaymentCompleted,
			fmt.Sprintf("%s received from %s for room %s", completion, guestName, room.RoomNumber),
			room.RoomNumber, guestName, &record.NewTotal)
	}

	log.Printf("✅ %s payment ₹%d recorded for %s in room %s (%s, balance ₹%d)",
		record.PaymentType, record.Amount, guestName, room.RoomNumber,
		record.PaymentStatus, record.BalanceAmount)
	return &record, nil
}
