package services

import (
	"testing"

	"pg-backend/models"
	"pg-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomInitializesEmpty(t *testing.T) {
	env := newTestEnv(t)

	room := env.createRoom(t, "101", 2, 12000, 12000)

	assert.Equal(t, 0, room.CurrentOccupancy)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
	assert.Empty(t, room.Guests)

	fetched, err := env.roomSvc.Get("101")
	require.NoError(t, err)
	assert.NotNil(t, fetched.Guests, "guest roster must round-trip as an empty list, not null")
}

func TestCreateRoomValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.roomSvc.Create(CreateRoomInput{RoomNumber: "  ", RoomType: "single", Capacity: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = env.roomSvc.Create(CreateRoomInput{RoomNumber: "101", RoomType: "single", Capacity: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 2, 12000, 12000)

	_, err := env.roomSvc.Create(CreateRoomInput{
		RoomNumber: "101", RoomType: "single", Capacity: 1,
		RentAmount: 8000, SecurityDeposit: 8000,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetRoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.roomSvc.Get("404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRoomPartialMerge(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 2, 12000, 12000)

	newRent := 13000
	room, err := env.roomSvc.Update("101", UpdateRoomInput{RentAmount: &newRent})
	require.NoError(t, err)

	assert.Equal(t, 13000, room.RentAmount)
	assert.Equal(t, 2, room.Capacity, "untouched fields keep their values")
	assert.Equal(t, 12000, room.SecurityDeposit)
}

func TestUpdateRoomCapacityBelowOccupancy(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 3, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111"})
	env.addGuest(t, "101", AddGuestInput{Username: "ravi", Phone: "2", Email: "r@x.in", Aadhar: "2222"})

	one := 1
	_, err := env.roomSvc.Update("101", UpdateRoomInput{Capacity: &one})
	assert.ErrorIs(t, err, ErrConflict)

	room, err := env.roomSvc.Get("101")
	require.NoError(t, err)
	assert.Equal(t, 3, room.Capacity, "rejected update must not write")
	assert.Equal(t, 2, room.CurrentOccupancy)
}

func TestUpdateRoomCapacityRecomputesStatus(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 2, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111"})
	env.addGuest(t, "101", AddGuestInput{Username: "ravi", Phone: "2", Email: "r@x.in", Aadhar: "2222"})

	room, err := env.roomSvc.Get("101")
	require.NoError(t, err)
	require.Equal(t, models.RoomStatusOccupied, room.Status)

	// Raising capacity reopens the room.
	three := 3
	room, err = env.roomSvc.Update("101", UpdateRoomInput{Capacity: &three})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)

	// Lowering it back to the occupancy fills it again.
	two := 2
	room, err = env.roomSvc.Update("101", UpdateRoomInput{Capacity: &two})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOccupied, room.Status)
}

func TestUpdateRoomCapacityKeepsMaintenance(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 2, 12000, 12000)

	maintenance := models.RoomStatusMaintenance
	_, err := env.roomSvc.Update("101", UpdateRoomInput{Status: &maintenance})
	require.NoError(t, err)

	four := 4
	room, err := env.roomSvc.Update("101", UpdateRoomInput{Capacity: &four})
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, room.Status)
}

func TestDeleteRoomWithOccupants(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 2, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111"})

	err := env.roomSvc.Delete("101")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.roomSvc.Get("101")
	assert.NoError(t, err)
}

func TestDeleteEmptyRoom(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 2, 12000, 12000)

	require.NoError(t, env.roomSvc.Delete("101"))

	_, err := env.roomSvc.Get("101")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, env.roomSvc.Delete("101"), ErrNotFound)
}

func TestListRoomsFilter(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 1, 8000, 8000)
	env.createRoom(t, "102", 2, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111"})

	occupied, err := env.roomSvc.List(repository.RoomFilter{Status: models.RoomStatusOccupied})
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, "101", occupied[0].RoomNumber)

	minOcc := 1
	busy, err := env.roomSvc.List(repository.RoomFilter{MinOccupancy: &minOcc})
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, "101", busy[0].RoomNumber)
}

func TestRoomStatistics(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 1, 8000, 8000)
	env.createRoom(t, "102", 2, 12000, 12000)
	env.createRoom(t, "103", 2, 12000, 12000)
	env.addGuest(t, "101", AddGuestInput{Username: "asha", Phone: "1", Email: "a@x.in", Aadhar: "1111"})

	maintenance := models.RoomStatusMaintenance
	_, err := env.roomSvc.Update("103", UpdateRoomInput{Status: &maintenance})
	require.NoError(t, err)

	stats, err := env.roomSvc.Statistics()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalRooms)
	assert.Equal(t, int64(1), stats.AvailableRooms)
	assert.Equal(t, int64(1), stats.OccupiedRooms)
	assert.Equal(t, int64(1), stats.MaintenanceRooms)
	assert.InDelta(t, 33.33, stats.OccupancyRate, 0.01)
}

func TestActivityTrailForRoomLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.createRoom(t, "101", 2, 12000, 12000)
	require.NoError(t, env.roomSvc.Delete("101"))

	types := env.activityTypes(t, 10)
	assert.Contains(t, types, models.ActivityRoomCreated)
	assert.Contains(t, types, models.ActivityRoomDeleted)
}
