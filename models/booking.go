package models

import "time"

// Booking belongs to exactly one Room. A booking is constructed transient
// (no id, no confirmation code); BookingService assigns both on acceptance.
// Bookings are hard-deleted on cancellation, so there is no DeletedAt here.
type Booking struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	RoomID uint `gorm:"column:room_id;index" json:"roomId"`

	CheckInDate  time.Time `gorm:"column:check_in" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out" json:"checkOutDate"`

	GuestFullName string `gorm:"column:guest_full_name;size:255" json:"guestFullName"`
	GuestEmail    string `gorm:"column:guest_email;size:255" json:"guestEmail"`

	NumAdults   int `gorm:"column:adults" json:"numOfAdults"`
	NumChildren int `gorm:"column:children" json:"numOfChildren"`
	TotalGuests int `gorm:"column:total_guests" json:"totalNumOfGuests"`

	ConfirmationCode string `gorm:"column:confirmation_code;size:64;uniqueIndex" json:"bookingConfirmationCode"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}

// SetNumAdults updates the adult count and keeps TotalGuests in sync.
func (b *Booking) SetNumAdults(n int) {
	b.NumAdults = n
	b.recalcTotalGuests()
}

// SetNumChildren updates the child count and keeps TotalGuests in sync.
func (b *Booking) SetNumChildren(n int) {
	b.NumChildren = n
	b.recalcTotalGuests()
}

func (b *Booking) recalcTotalGuests() {
	b.TotalGuests = b.NumAdults + b.NumChildren
}
