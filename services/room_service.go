package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

// ErrInvalidRoomRequest covers malformed room payloads (negative price).
var ErrInvalidRoomRequest = errors.New("room price must not be negative")

// RoomService is the room directory: CRUD on room records, photo payloads
// and the availability query the booking flow's search screen uses.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// AddNewRoom persists a room with an optional photo payload.
func (s *RoomService) AddNewRoom(photo []byte, roomType string, roomPrice float64) (models.Room, error) {
	if roomPrice < 0 {
		return models.Room{}, ErrInvalidRoomRequest
	}
	room := models.Room{
		RoomType:  roomType,
		RoomPrice: roomPrice,
	}
	if len(photo) > 0 {
		room.Photo = photo
	}
	if err := s.DB.Create(&room).Error; err != nil {
		return models.Room{}, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// GetAllRoomTypes returns the distinct room categories currently on offer.
func (s *RoomService) GetAllRoomTypes() ([]string, error) {
	var types []string
	err := s.DB.Model(&models.Room{}).
		Distinct("room_type").
		Order("room_type").
		Pluck("room_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return types, nil
}

// GetRoomByID fetches a room without its bookings; the booking flow loads
// those explicitly inside its own transaction.
func (s *RoomService) GetRoomByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("fetch room %d: %w", id, err)
	}
	return room, nil
}

// GetRoomWithBookings fetches a room with its booking list loaded, for
// read views that show the room's history.
func (s *RoomService) GetRoomWithBookings(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Bookings").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("fetch room %d with bookings: %w", id, err)
	}
	return room, nil
}

// GetRoomPhotoByRoomID returns the raw photo bytes, which may be empty.
func (s *RoomService) GetRoomPhotoByRoomID(id uint) ([]byte, error) {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return nil, err
	}
	return room.Photo, nil
}

// UpdateRoom applies a partial update: nil fields are left untouched.
func (s *RoomService) UpdateRoom(id uint, roomType *string, roomPrice *float64, photo []byte) (models.Room, error) {
	room, err := s.GetRoomByID(id)
	if err != nil {
		return models.Room{}, err
	}

	updates := map[string]interface{}{}
	if roomType != nil {
		updates["room_type"] = *roomType
	}
	if roomPrice != nil {
		if *roomPrice < 0 {
			return models.Room{}, ErrInvalidRoomRequest
		}
		updates["room_price"] = *roomPrice
	}
	if len(photo) > 0 {
		updates["photo"] = photo
	}
	if len(updates) == 0 {
		return room, nil
	}

	if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
		return models.Room{}, fmt.Errorf("update room %d: %w", id, err)
	}
	return s.GetRoomByID(id)
}

// DeleteRoom removes the room and all of its bookings. The cascade is issued
// explicitly as a two-step delete rather than relying on object-graph
// semantics; deleting an absent room is a no-op.
func (s *RoomService) DeleteRoom(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return fmt.Errorf("delete bookings for room %d: %w", id, err)
		}
		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return fmt.Errorf("delete room %d: %w", id, err)
		}
		return nil
	})
}

// GetAvailableRooms returns rooms of the given type with no booking that
// conflicts with the requested interval. The conflict test is the same rule
// BookingService applies in memory, pushed down to the storage layer as a
// NOT EXISTS subquery so it scales past an in-process scan.
func (s *RoomService) GetAvailableRooms(checkIn, checkOut time.Time, roomType string) ([]models.Room, error) {
	if checkOut.Before(checkIn) {
		return nil, ErrInvalidBookingRequest
	}

	conflicts := s.DB.Model(&models.Booking{}).
		Select("1").
		Where("bookings.room_id = rooms.id").
		Where(`bookings.check_in = ?
			OR ? < bookings.check_out
			OR (bookings.check_in < ? AND ? < bookings.check_out)
			OR (? < bookings.check_in AND bookings.check_out = ?)
			OR (? < bookings.check_in AND bookings.check_out < ?)
			OR (bookings.check_out = ? AND bookings.check_in = ?)
			OR (bookings.check_out = ? AND ? = ?)`,
			checkIn,
			checkOut,
			checkIn, checkIn,
			checkIn, checkOut,
			checkIn, checkOut,
			checkIn, checkOut,
			checkIn, checkOut, checkIn,
		)

	var rooms []models.Room
	err := s.DB.
		Where("room_type = ?", roomType).
		Where("NOT EXISTS (?)", conflicts).
		Order("id").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("find available rooms: %w", err)
	}
	return rooms, nil
}
