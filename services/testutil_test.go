package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"pg-backend/models"
	"pg-backend/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// testEnv wires the full service stack onto an in-memory SQLite database.
type testEnv struct {
	db       *gorm.DB
	rooms    repository.RoomRepository
	activity *ActivityService
	roomSvc  *RoomService
	guestSvc *GuestService
	paySvc   *PaymentService
	reports  *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Room{}, &models.Activity{}))

	rooms := repository.NewRoomRepository(db)
	activity := NewActivityService(repository.NewActivityRepository(db))

	return &testEnv{
		db:       db,
		rooms:    rooms,
		activity: activity,
		roomSvc:  NewRoomService(rooms, activity),
		guestSvc: NewGuestService(rooms, activity),
		paySvc:   NewPaymentService(rooms, activity),
		reports:  NewReportService(rooms),
	}
}

// freeze pins every service clock to a fixed instant.
func (e *testEnv) freeze(now time.Time) {
	clock := func() time.Time { return now }
	e.guestSvc.now = clock
	e.paySvc.now = clock
	e.reports.now = clock
}

func (e *testEnv) createRoom(t *testing.T, number string, capacity, rent, security int) *models.Room {
	t.Helper()
	room, err := e.roomSvc.Create(CreateRoomInput{
		RoomNumber:      number,
		RoomType:        "double",
		Capacity:        capacity,
		RentAmount:      rent,
		SecurityDeposit: security,
	})
	require.NoError(t, err)
	return room
}

func (e *testEnv) addGuest(t *testing.T, roomNumber string, in AddGuestInput) *models.Guest {
	t.Helper()
	guest, err := e.guestSvc.Add(roomNumber, in)
	require.NoError(t, err)
	return guest
}

// activityTypes returns recent activity types, oldest first.
func (e *testEnv) activityTypes(t *testing.T, limit int) []string {
	t.Helper()
	activities, err := e.activity.Recent(limit)
	require.NoError(t, err)
	types := make([]string, 0, len(activities))
	for i := len(activities) - 1; i >= 0; i-- {
		types = append(types, activities[i].ActivityType)
	}
	return types
}
