package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room is the aggregate root: deleting a room deletes its bookings
// (RoomService issues the two-step delete explicitly; the FK constraint
// backs it up for hard deletes).
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomType  string  `gorm:"column:room_type;size:100;index" json:"roomType"`
	RoomPrice float64 `gorm:"column:room_price" json:"roomPrice"`

	// Set on the first accepted booking and never cleared; past stays are
	// not expired.
	IsBooked bool `gorm:"column:is_booked;default:false" json:"isBooked"`

	// Opaque binary payload; served base64-encoded in list responses.
	Photo []byte `gorm:"column:photo" json:"-"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Bookings []Booking `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}
