package hotel

import (
	"context"
	"time"

	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

const day = 24 * time.Hour

// Nights is the number of whole days between check-in and check-out.
// Partial days are truncated toward zero.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / day)
}

// TotalPrice is the nightly rate of the room times the number of nights.
func TotalPrice(ctx context.Context, st store.Store, roomID int64, checkIn, checkOut time.Time) (float64, error) {
	room, err := st.GetRoom(ctx, roomID)
	if err != nil {
		return 0, notFound(err, "room %d", roomID)
	}
	return priceFor(room, checkIn, checkOut), nil
}

func priceFor(room *model.Room, checkIn, checkOut time.Time) float64 {
	return room.Price * float64(Nights(checkIn, checkOut))
}
