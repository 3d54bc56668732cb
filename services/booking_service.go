package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvalidBookingRequest is returned when the requested date range is
	// malformed (check-out strictly before check-in).
	ErrInvalidBookingRequest = errors.New("check-in date must come before check-out date")

	// ErrRoomUnavailable is returned when the requested dates conflict with
	// an existing booking for the room.
	ErrRoomUnavailable = errors.New("room is unavailable for the selected dates")

	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// BookingService wraps *gorm.DB with the booking lifecycle: availability
// check, acceptance with confirmation code, cancellation and lookups.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// SaveBooking validates the requested stay against the room's existing
// bookings and, if accepted, persists it and returns the confirmation code.
// The room row is locked and the check-and-insert runs in one transaction so
// two concurrent requests for the same room cannot both pass the check
// against the same snapshot.
func (s *BookingService) SaveBooking(roomID uint, booking *models.Booking) (string, error) {
	if booking.CheckOutDate.Before(booking.CheckInDate) {
		return "", ErrInvalidBookingRequest
	}

	// Re-derive the total in case the caller set the counts directly.
	booking.SetNumAdults(booking.NumAdults)

	var confirmationCode string
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockForUpdate(tx).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("fetch room %d: %w", roomID, err)
		}

		var existing []models.Booking
		if err := tx.Where("room_id = ?", room.ID).Find(&existing).Error; err != nil {
			return fmt.Errorf("load bookings for room %d: %w", room.ID, err)
		}

		if !roomIsAvailable(booking, existing) {
			return ErrRoomUnavailable
		}

		booking.RoomID = room.ID

		// The confirmation code carries a unique index; regenerate on the
		// off chance of a collision.
		const maxAttempts = 5
		var createErr error
		for attempt := 0; attempt < maxAttempts; attempt++ {
			code, err := utils.GenerateConfirmationCode(utils.ConfirmationCodeLength)
			if err != nil {
				return fmt.Errorf("generate confirmation code: %w", err)
			}
			booking.ConfirmationCode = code

			createErr = tx.Create(booking).Error
			if createErr == nil {
				break
			}
			if !isDuplicateKeyError(createErr) {
				return fmt.Errorf("create booking: %w", createErr)
			}
		}
		if createErr != nil {
			return fmt.Errorf("create booking after %d attempts: %w", maxAttempts, createErr)
		}

		if !room.IsBooked {
			if err := tx.Model(&room).Update("is_booked", true).Error; err != nil {
				return fmt.Errorf("flag room %d as booked: %w", room.ID, err)
			}
		}

		booking.Room = room
		confirmationCode = booking.ConfirmationCode
		return nil
	})
	if txErr != nil {
		return "", txErr
	}
	return confirmationCode, nil
}

// CancelBooking deletes the booking by id. Deleting an absent id is a no-op,
// not an error, so cancellation is idempotent.
func (s *BookingService) CancelBooking(bookingID uint) error {
	if err := s.DB.Delete(&models.Booking{}, bookingID).Error; err != nil {
		return fmt.Errorf("delete booking %d: %w", bookingID, err)
	}
	return nil
}

// FindByConfirmationCode looks a booking up by its human-facing code.
func (s *BookingService) FindByConfirmationCode(code string) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Room").Where("confirmation_code = ?", code).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("find booking by confirmation code: %w", err)
	}
	return booking, nil
}

// GetAllBookings returns every booking with its room loaded.
func (s *BookingService) GetAllBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.Preload("Room").Order("id").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// GetAllBookingsByRoomID returns the room's bookings, unfiltered by date.
// Read-view helper; not part of the accept/reject path.
func (s *BookingService) GetAllBookingsByRoomID(roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.DB.Where("room_id = ?", roomID).Order("id").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings for room %d: %w", roomID, err)
	}
	return bookings, nil
}

// roomIsAvailable reports whether the requested stay conflicts with none of
// the room's existing bookings. The check is "no existing booking conflicts",
// not "some existing booking permits".
func roomIsAvailable(request *models.Booking, existing []models.Booking) bool {
	for i := range existing {
		if bookingsOverlap(request, &existing[i]) {
			return false
		}
	}
	return true
}

// bookingsOverlap is the availability rule, kept case by case. The second
// case is deliberately conservative: any request ending before an existing
// stay ends is rejected, even when the ranges never touch. Do not collapse
// these into a single inequality.
func bookingsOverlap(request, existing *models.Booking) bool {
	rIn, rOut := request.CheckInDate, request.CheckOutDate
	eIn, eOut := existing.CheckInDate, existing.CheckOutDate

	switch {
	case rIn.Equal(eIn):
		return true
	case rOut.Before(eOut):
		return true
	case rIn.After(eIn) && rIn.Before(eOut):
		return true
	case rIn.Before(eIn) && rOut.Equal(eOut):
		return true
	case rIn.Before(eIn) && rOut.After(eOut):
		return true
	case rIn.Equal(eOut) && rOut.Equal(eIn):
		return true
	case rIn.Equal(eOut) && rOut.Equal(rIn):
		return true
	}
	return false
}

// lockForUpdate adds a row lock on dialects that support it. sqlite (used in
// tests) has no SELECT ... FOR UPDATE; its writes are serialized anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// isDuplicateKeyError classifies unique-index violations across the mysql
// driver and the sqlite driver used in tests.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
