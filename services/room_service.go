package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"pg-backend/models"
	"pg-backend/repository"

	"gorm.io/gorm"
)

type RoomService struct {
	rooms    repository.RoomRepository
	activity *ActivityService
}

func NewRoomService(rooms repository.RoomRepository, activity *ActivityService) *RoomService {
	return &RoomService{rooms: rooms, activity: activity}
}

// CreateRoomInput carries the admin-supplied room fields. Occupancy and the
// guest list are always initialized by the service, never by the caller.
type CreateRoomInput struct {
	RoomNumber      string `json:"room_number" binding:"required"`
	RoomType        string `json:"room_type" binding:"required"`
	Capacity        int    `json:"capacity" binding:"required"`
	RentAmount      int    `json:"rent_amount" binding:"required"`
	SecurityDeposit int    `json:"security_deposit" binding:"required"`
	Status          string `json:"status"`
}

// UpdateRoomInput is a partial merge; nil fields are left untouched.
type UpdateRoomInput struct {
	RoomType        *string `json:"room_type"`
	Capacity        *int    `json:"capacity"`
	RentAmount      *int    `json:"rent_amount"`
	SecurityDeposit *int    `json:"security_deposit"`
	Status          *string `json:"status"`
}

type RoomStatistics struct {
	TotalRooms       int64   `json:"total_rooms"`
	AvailableRooms   int64   `json:"available_rooms"`
	OccupiedRooms    int64   `json:"occupied_rooms"`
	MaintenanceRooms int64   `json:"maintenance_rooms"`
	OccupancyRate    float64 `json:"occupancy_rate"`
}

func (s *RoomService) Create(in CreateRoomInput) (*models.Room, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if in.RoomNumber == "" {
		return nil, fmt.Errorf("%w: room number is required", ErrInvalidArgument)
	}
	if in.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than 0", ErrInvalidArgument)
	}
	if in.Status == "" {
		in.Status = models.RoomStatusAvailable
	}

	room := &models.Room{
		RoomNumber:       in.RoomNumber,
		RoomType:         in.RoomType,
		Capacity:         in.Capacity,
		RentAmount:       in.RentAmount,
		SecurityDeposit:  in.SecurityDeposit,
		CurrentOccupancy: 0,
		Status:           in.Status,
		Guests:           []models.Guest{},
	}

	if err := s.rooms.Create(room); err != nil {
		if errors.Is(err, repository.ErrDuplicateRoom) {
			return nil, fmt.Errorf("%w: room %s already exists", ErrConflict, in.RoomNumber)
		}
		return nil, err
	}

	s.activity.Log(models.ActivityRoomCreated,
		fmt.Sprintf("Room %s created with capacity %d", room.RoomNumber, room.Capacity),
		room.RoomNumber, "", &room.RentAmount)

	log.Printf("✅ Room %s created", room.RoomNumber)
	return room, nil
}

func (s *RoomService) Get(roomNumber string) (*models.Room, error) {
	room, err := s.rooms.GetByNumber(roomNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return nil, err
	}
	return room, nil
}

func (s *RoomService) List(filter repository.RoomFilter) ([]models.Room, error) {
	return s.rooms.List(filter)
}

// Update merges the partial input into the room. Occupancy is owned by the
// guest roster and is never writable here, but a capacity change recomputes
// the stored status so it cannot go stale against the new capacity.
func (s *RoomService) Update(roomNumber string, in UpdateRoomInput) (*models.Room, error) {
	room, err := s.rooms.Mutate(roomNumber, func(room *models.Room) error {
		if in.RoomType != nil {
			room.RoomType = *in.RoomType
		}
		if in.RentAmount != nil {
			room.RentAmount = *in.RentAmount
		}
		if in.SecurityDeposit != nil {
			room.SecurityDeposit = *in.SecurityDeposit
		}
		if in.Status != nil {
			room.Status = *in.Status
		}
		if in.Capacity != nil {
			if *in.Capacity <= 0 {
				return fmt.Errorf("%w: capacity must be greater than 0", ErrInvalidArgument)
			}
			if *in.Capacity < room.CurrentOccupancy {
				return fmt.Errorf("%w: capacity %d below current occupancy %d",
					ErrConflict, *in.Capacity, room.CurrentOccupancy)
			}
			room.Capacity = *in.Capacity
			// A capacity change invalidates the stored status, so it is
			// recomputed instead of trusted. Maintenance is only ever set
			// explicitly and is left alone.
			if room.Status != models.RoomStatusMaintenance {
				room.Status = deriveStatus(room.CurrentOccupancy, room.Capacity)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return nil, err
	}

	s.activity.Log(models.ActivityRoomUpdated,
		fmt.Sprintf("Room %s details updated", roomNumber), roomNumber, "", nil)
	return room, nil
}

func (s *RoomService) Delete(roomNumber string) error {
	room, err := s.Get(roomNumber)
	if err != nil {
		return err
	}
	if room.CurrentOccupancy > 0 {
		return fmt.Errorf("%w: cannot delete room %s with %d occupant(s)",
			ErrConflict, roomNumber, room.CurrentOccupancy)
	}
	if err := s.rooms.Delete(roomNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: room %s", ErrNotFound, roomNumber)
		}
		return err
	}

	s.activity.Log(models.ActivityRoomDeleted,
		fmt.Sprintf("Room %s deleted", roomNumber), roomNumber, "", nil)
	log.Printf("✅ Room %s deleted", roomNumber)
	return nil
}

func (s *RoomService) Statistics() (*RoomStatistics, error) {
	total, err := s.rooms.Count()
	if err != nil {
		return nil, err
	}
	available, err := s.rooms.CountByStatus(models.RoomStatusAvailable)
	if err != nil {
		return nil, err
	}
	occupied, err := s.rooms.CountByStatus(models.RoomStatusOccupied)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.rooms.CountByStatus(models.RoomStatusMaintenance)
	if err != nil {
		return nil, err
	}

	stats := &RoomStatistics{
		TotalRooms:       total,
		AvailableRooms:   available,
		OccupiedRooms:    occupied,
		MaintenanceRooms: maintenance,
	}
	if total > 0 {
		stats.OccupancyRate = float64(occupied) / float64(total) * 100
	}
	return stats, nil
}

// deriveStatus is the pure status function of occupancy vs capacity: full
// rooms are occupied, everything else has space and is available.
func deriveStatus(occupancy, capacity int) string {
	if occupancy >= capacity {
		return models.RoomStatusOccupied
	}
	return models.RoomStatusAvailable
}
