package hotel

import (
	"context"
	"time"

	"hotel-management-backend/internal/store"
)

// Overlaps reports whether an existing stay [exIn, exOut) conflicts with a
// candidate stay [in, out). The candidate conflicts when it starts during the
// existing stay, ends during it, or contains it. Comparisons are literal, so
// malformed ranges are evaluated as given.
func Overlaps(exIn, exOut, in, out time.Time) bool {
	startsDuring := !exIn.After(in) && exOut.After(in)
	endsDuring := exIn.Before(out) && !exOut.Before(out)
	contains := !exIn.Before(in) && !exOut.After(out)
	return startsDuring || endsDuring || contains
}

// IsAvailable reports whether no active reservation of the room conflicts
// with [checkIn, checkOut). A non-zero excludeID leaves that reservation out
// of the search, so a reservation never conflicts with itself.
func IsAvailable(ctx context.Context, st store.Store, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	if _, err := st.GetRoom(ctx, roomID); err != nil {
		return false, notFound(err, "room %d", roomID)
	}
	return isAvailable(ctx, st, roomID, checkIn, checkOut, excludeID)
}

func isAvailable(ctx context.Context, st store.Store, roomID int64, checkIn, checkOut time.Time, excludeID int64) (bool, error) {
	conflicts, err := st.CountOverlapping(ctx, store.OverlapQuery{
		RoomID:    roomID,
		CheckIn:   checkIn.UTC(),
		CheckOut:  checkOut.UTC(),
		ExcludeID: excludeID,
	})
	if err != nil {
		return false, err
	}
	return conflicts == 0, nil
}
