package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room statuses. "occupied" is set when occupancy reaches capacity and
// "available" when it drops to zero; "maintenance" is only ever set by an
// explicit admin update.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room is the unit of atomicity: every guest and every payment record lives
// embedded inside its room row, so a single row update covers the whole
// read-modify-append cycle.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber      string `gorm:"column:room_number;uniqueIndex;type:varchar(50)" json:"room_number"`
	RoomType        string `gorm:"column:room_type;type:varchar(50);index" json:"room_type"`
	Capacity        int    `json:"capacity"`
	RentAmount      int    `gorm:"column:rent_amount" json:"rent_amount"`
	SecurityDeposit int    `gorm:"column:security_deposit" json:"security_deposit"`

	CurrentOccupancy int    `gorm:"column:current_occupancy" json:"current_occupancy"`
	Status           string `gorm:"type:varchar(20);index" json:"status"`

	Guests datatypes.JSONSlice[Guest] `gorm:"column:guests" json:"guests"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DueAmount returns the obligation a payment of the given type is settled
// against: the monthly rent or the one-time security deposit.
func (r *Room) DueAmount(paymentType string) int {
	if paymentType == PaymentTypeSecurity {
		return r.SecurityDeposit
	}
	return r.RentAmount
}

// FindGuest returns a pointer into the embedded guest slice, or nil.
func (r *Room) FindGuest(userID string) *Guest {
	for i := range r.Guests {
		if r.Guests[i].UserID == userID {
			return &r.Guests[i]
		}
	}
	return nil
}
