package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"hotel-management-backend/internal/hotel"
	"hotel-management-backend/internal/store"
)

// Version is reported by the welcome endpoint.
const Version = "1.0.0"

// Handler holds shared dependencies for API handlers.
type Handler struct {
	appName      string
	rooms        *hotel.Rooms
	guests       *hotel.Guests
	reservations *hotel.Reservations
	webpush      *webpush.Options
}

// NewHandler creates a new API handler. notifier and webpushOptions may be nil
// when push notifications are not configured.
func NewHandler(appName string, s store.Store, notifier hotel.Notifier, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		appName:      appName,
		rooms:        hotel.NewRooms(s),
		guests:       hotel.NewGuests(s),
		reservations: hotel.NewReservations(s, notifier),
		webpush:      webpushOptions,
	}
}
