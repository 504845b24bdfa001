package models

import "time"

// Activity types recorded by mutating operations.
const (
	ActivityRoomCreated       = "room_created"
	ActivityRoomUpdated       = "room_updated"
	ActivityRoomDeleted       = "room_deleted"
	ActivityRoomStatusChanged = "room_status_changed"
	ActivityGuestAdded        = "guest_added"
	ActivityGuestRemoved      = "guest_removed"
	ActivityGuestUpdated      = "guest_updated"
	ActivityPaymentReceived   = "payment_received"
	ActivityPaymentCompleted  = "payment_completed"
	ActivityNotificationsSent = "notifications_sent"
)

// Activity is the append-only audit log. Rows are never updated or deleted
// here; retention is an external concern.
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ActivityType string    `gorm:"column:activity_type;type:varchar(50);index" json:"activity_type"`
	Description  string    `gorm:"type:text" json:"description"`
	RoomNumber   string    `gorm:"column:room_number;type:varchar(50)" json:"room_number,omitempty"`
	GuestName    string    `gorm:"column:guest_name;type:varchar(100)" json:"guest_name,omitempty"`
	Amount       *int      `json:"amount,omitempty"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
}
