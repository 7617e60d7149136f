package model

import "time"

// ReservationStatus is a state of the reservation lifecycle.
type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "pending"
	ReservationConfirmed  ReservationStatus = "confirmed"
	ReservationCheckedIn  ReservationStatus = "checked_in"
	ReservationCheckedOut ReservationStatus = "checked_out"
	ReservationCancelled  ReservationStatus = "cancelled"
)

// ActiveReservationStatuses are the statuses that occupy, or will occupy, a room.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationCheckedIn,
}

// Valid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled:
		return true
	}
	return false
}

// Active reports whether s holds the room.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationCheckedIn
}

// Reservation books a room for a guest over [CheckInDate, CheckOutDate).
type Reservation struct {
	ID              int64             `gorm:"primaryKey" json:"id"`
	GuestID         int64             `gorm:"index;not null" json:"guest_id"`
	RoomID          int64             `gorm:"index:idx_reservation_room_dates;not null" json:"room_id"`
	CheckInDate     time.Time         `gorm:"index:idx_reservation_room_dates;not null" json:"check_in_date"`
	CheckOutDate    time.Time         `gorm:"index:idx_reservation_room_dates;not null" json:"check_out_date"`
	Status          ReservationStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	TotalPrice      float64           `gorm:"not null" json:"total_price"`
	NumberOfGuests  int               `gorm:"not null;default:1" json:"number_of_guests"`
	SpecialRequests *string           `gorm:"type:text" json:"special_requests"`
	CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null" json:"updated_at"`

	// Associations
	Guest *Guest `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Room  *Room  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
