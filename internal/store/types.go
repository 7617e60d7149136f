package store

import (
	"time"

	"hotel-management-backend/internal/model"
)

// Page selects a window of a listing.
type Page struct {
	Skip  int
	Limit int
}

// RoomFilter narrows a room listing. Zero values match everything.
type RoomFilter struct {
	Status      model.RoomStatus
	MinCapacity int
	Page
}

// ReservationFilter narrows a reservation listing or count. Zero values match everything.
type ReservationFilter struct {
	GuestID   int64
	RoomID    int64
	Statuses  []model.ReservationStatus
	ExcludeID int64
	Page
}

// OverlapQuery describes a candidate stay [CheckIn, CheckOut) for a room.
type OverlapQuery struct {
	RoomID    int64
	CheckIn   time.Time
	CheckOut  time.Time
	ExcludeID int64
}
