package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pg-backend/models"
	"pg-backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestService owns the embedded guest roster and, with it, room occupancy
// and the occupancy-driven status transitions.
type GuestService struct {
	rooms    repository.RoomRepository
	activity *ActivityService
	now      func() time.Time
}

func NewGuestService(rooms repository.RoomRepository, activity *ActivityService) *GuestService {
	return &GuestService{rooms: rooms, activity: activity, now: func() time.Time { return time.Now().UTC() }}
}

type AddGuestInput struct {
	UserID        string     `json:"user_id"`
	Username      string     `json:"username" binding:"required"`
	Phone         string     `json:"phone" binding:"required"`
	Email         string     `json:"email" binding:"required"`
	Aadhar        string     `json:"aadhar" binding:"required"`
	DateOfJoining *time.Time `json:"date_of_joining"`

	// Optional move-in payments; each seeds the guest's first ledger record.
	RentAmountPaid        int    `json:"rent_amount_paid"`
	SecurityAmountPaid    int    `json:"security_amount_paid"`
	RentPaymentMethod     string `json:"rent_payment_method"`
	SecurityPaymentMethod string `json:"security_payment_method"`
}

type UpdateGuestInput struct {
	Username      *string    `json:"username"`
	Phone         *string    `json:"phone"`
	Email         *string    `json:"email"`
	Aadhar        *string    `json:"aadhar"`
	DateOfLeaving *time.Time `json:"date_of_leaving"`
}

func (s *GuestService) Add(roomNumber string, in AddGuestInput) (*models.Guest, error) {
	if in.RentAmountPaid < 0 || in.SecurityAmountPaid < 0 {
		return nil, fmt.Errorf("%w: initial payment amounts cannot be negative", ErrInvalidArgument)
	}
	if in.RentPaymentMethod == "" {
		in.RentPaymentMethod = "UPI"
	}
	if in.SecurityPaymentMethod == "" {
		in.SecurityPaymentMethod = "UPI"
	}

	var added models.Guest
	room, err := s.rooms.Mutate(roomNumber, func(room *models.Room) error {
		if room.CurrentOccupancy >= room.Capacity {
			return fmt.Errorf("%w: room %s", ErrCapacityExceeded, roomNumber)
		}

		now := s.now()
		guest := models.Guest{
			UserID:        in.UserID,
			Username:      in.Username,
			Phone:         in.Phone,
			Email:         in.Email,
			Aadhar:        in.Aadhar,
			DateOfJoining: now,
		}
		if guest.UserID == "" {
			guest.UserID = uuid.NewString()
		}
		if in.DateOfJoining != nil {
			guest.DateOfJoining = *in.DateOfJoining
		}

		// Every guest starts with exactly one record per ledger, so history
		// slices are never empty even with nothing paid.
		rent := initialPaymentRecord(models.PaymentTypeRent,
			in.RentAmountPaid, room.RentAmount, in.RentPaymentMethod, now)
		security := initialPaymentRecord(models.PaymentTypeSecurity,
			in.SecurityAmountPaid, room.SecurityDeposit, in.SecurityPaymentMethod, now)
		guest.RentHistory = []models.PaymentRecord{rent}
		guest.SecurityHistory = []models.PaymentRecord{security}
		guest.RentPaid = rent.PaymentStatus == models.PaymentStatusFull
		guest.SecurityPaid = security.PaymentStatus == models.PaymentStatusFull

		room.Guests = append(room.Guests, guest)
		room.CurrentOccupancy++
		if room.CurrentOccupancy >= room.Capacity {
			room.Status = models.RoomStatusOccupied
		}

		added = guest
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return nil, err
	}

	s.activity.Log(models.ActivityGuestAdded,
		fmt.Sprintf("Guest %s added to room %s", added.Username, room.RoomNumber),
		room.RoomNumber, added.Username, nil)

	log.Printf("✅ Guest %s added to room %s (occupancy %d/%d)",
		added.Username, room.RoomNumber, room.CurrentOccupancy, room.Capacity)
	return &added, nil
}

func (s *GuestService) Remove(roomNumber, userID string) error {
	var (
		removedName   string
		statusFlipped bool
	)
	room, err := s.rooms.Mutate(roomNumber, func(room *models.Room) error {
		idx := -1
		for i := range room.Guests {
			if room.Guests[i].UserID == userID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: guest %s in room %s", ErrNotFound, userID, roomNumber)
		}

		removedName = room.Guests[idx].Username
		room.Guests = append(room.Guests[:idx], room.Guests[idx+1:]...)
		room.CurrentOccupancy--
		if room.CurrentOccupancy == 0 && room.Status != models.RoomStatusAvailable {
			room.Status = models.RoomStatusAvailable
			statusFlipped = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return err
	}

	s.activity.Log(models.ActivityGuestRemoved,
		fmt.Sprintf("Guest %s removed from room %s", removedName, room.RoomNumber),
		room.RoomNumber, removedName, nil)
	if statusFlipped {
		s.activity.Log(models.ActivityRoomStatusChanged,
			fmt.Sprintf("Room %s status changed to available (became empty)", room.RoomNumber),
			room.RoomNumber, "", nil)
	}
	return nil
}

func (s *GuestService) UpdateDetails(roomNumber, userID string, in UpdateGuestInput) (*models.Guest, error) {
	var (
		updated models.Guest
		fields  []string
	)
	room, err := s.rooms.Mutate(roomNumber, func(room *models.Room) error {
		guest := room.FindGuest(userID)
		if guest == nil {
			return fmt.Errorf("%w: guest %s in room %s", ErrNotFound, userID, roomNumber)
		}
		if in.Username != nil {
			guest.Username = *in.Username
			fields = append(fields, "username")
		}
		if in.Phone != nil {
			guest.Phone = *in.Phone
			fields = append(fields, "phone")
		}
		if in.Email != nil {
			guest.Email = *in.Email
			fields = append(fields, "email")
		}
		if in.Aadhar != nil {
			guest.Aadhar = *in.Aadhar
			fields = append(fields, "aadhar")
		}
		if in.DateOfLeaving != nil {
			guest.DateOfLeaving = in.DateOfLeaving
			fields = append(fields, "date_of_leaving")
		}
		updated = *guest
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return nil, err
	}

	if len(fields) > 0 {
		s.activity.Log(models.ActivityGuestUpdated,
			fmt.Sprintf("Guest %s details updated in room %s", updated.Username, room.RoomNumber),
			room.RoomNumber, updated.Username, nil)
	}
	return &updated, nil
}

func (s *GuestService) ListGuests(roomNumber string) ([]models.Guest, error) {
	room, err := s.rooms.GetByNumber(roomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return nil, err
	}
	return room.Guests, nil
}

// initialPaymentRecord seeds a guest ledger at move-in. Zero paid becomes an
// explicit pending record rather than an empty history.
func initialPaymentRecord(paymentType string, paid, due int, method string, now time.Time) models.PaymentRecord {
	record := models.PaymentRecord{
		Month:         now.Format("2006-01"),
		Amount:        paid,
		PaymentMethod: method,
		PaymentDate:   now,
		PaymentType:   paymentType,
		PreviousTotal: 0,
		NewTotal:      paid,
		TotalDue:      due,
		BalanceAmount: maxInt(0, due-paid),
	}

	label := "rent payment"
	if paymentType == models.PaymentTypeSecurity {
		label = "security deposit"
	}

	switch {
	case paid <= 0:
		record.Amount = 0
		record.NewTotal = 0
		record.PaymentMethod = "N/A"
		record.PaymentStatus = models.PaymentStatusPending
		record.BalanceAmount = due
		record.Notes = fmt.Sprintf("No initial %s", label)
	case paid >= due:
		record.PaymentStatus = models.PaymentStatusFull
		record.Notes = fmt.Sprintf("Initial %s at move-in: ₹%d", label, paid)
	default:
		record.PaymentStatus = models.PaymentStatusPartial
		record.Notes = fmt.Sprintf("Initial %s at move-in: ₹%d", label, paid)
	}
	return record
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
