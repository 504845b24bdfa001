package repository

import (
	"errors"
	"strings"

	"pg-backend/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateRoom is returned when a room number collides with the unique
// index.
var ErrDuplicateRoom = errors.New("room number already exists")

// RoomFilter narrows List results. Nil fields are ignored.
type RoomFilter struct {
	RoomType     string
	Status       string
	MinOccupancy *int
	MaxOccupancy *int
}

// RoomRepository hides the row-per-room storage layout so the services only
// ever see whole rooms. Mutate is the single write path for anything that
// touches the embedded guest ledger.
type RoomRepository interface {
	Create(room *models.Room) error
	GetByNumber(roomNumber string) (*models.Room, error)
	List(filter RoomFilter) ([]models.Room, error)
	All() ([]models.Room, error)
	Delete(roomNumber string) error
	// Mutate loads the room inside a transaction, applies fn and writes the
	// whole row back. On MySQL the row is locked for the duration, which is
	// this store's atomic single-document update: two racing payments for
	// the same guest serialize instead of losing an append.
	Mutate(roomNumber string, fn func(room *models.Room) error) (*models.Room, error)
	CountByStatus(status string) (int64, error)
	Count() (int64, error)
}

type gormRoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &gormRoomRepository{db: db}
}

func (r *gormRoomRepository) Create(room *models.Room) error {
	if err := r.db.Create(room).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateRoom
		}
		return err
	}
	return nil
}

func (r *gormRoomRepository) GetByNumber(roomNumber string) (*models.Room, error) {
	var room models.Room
	if err := r.db.Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *gormRoomRepository) List(filter RoomFilter) ([]models.Room, error) {
	q := r.db.Model(&models.Room{})
	if filter.RoomType != "" {
		q = q.Where("room_type = ?", filter.RoomType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinOccupancy != nil {
		q = q.Where("current_occupancy >= ?", *filter.MinOccupancy)
	}
	if filter.MaxOccupancy != nil {
		q = q.Where("current_occupancy <= ?", *filter.MaxOccupancy)
	}
	var rooms []models.Room
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *gormRoomRepository) All() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *gormRoomRepository) Delete(roomNumber string) error {
	result := r.db.Where("room_number = ?", roomNumber).Delete(&models.Room{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRoomRepository) Mutate(roomNumber string, fn func(room *models.Room) error) (*models.Room, error) {
	var room models.Room
	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("room_number = ?", roomNumber)
		// SQLite (tests) has no FOR UPDATE; its writes serialize anyway.
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&room).Error; err != nil {
			return err
		}
		if err := fn(&room); err != nil {
			return err
		}
		return tx.Save(&room).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *gormRoomRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Room{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *gormRoomRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Room{}).Count(&n).Error
	return n, err
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	// SQLite wording, hit by the test database.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
