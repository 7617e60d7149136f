package hotel

import (
	"context"
	"fmt"

	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

// Trigger is the reservation change that prompts a room status recomputation.
// Besides the reservation statuses it can be TriggerCreated or TriggerDeleted.
type Trigger string

const (
	TriggerCreated Trigger = "created"
	TriggerDeleted Trigger = "deleted"
)

// StatusTrigger wraps a reservation status as a Trigger.
func StatusTrigger(s model.ReservationStatus) Trigger {
	return Trigger(s)
}

// roomHoldingStatuses keep a room marked reserved after another booking is
// cancelled or deleted.
var roomHoldingStatuses = []model.ReservationStatus{
	model.ReservationPending,
	model.ReservationConfirmed,
}

// SyncRoomStatus recomputes the status of a room after one of its
// reservations changed. It locks the room row for the rest of the transaction.
func SyncRoomStatus(ctx context.Context, st store.Store, roomID int64, trigger Trigger) error {
	room, err := st.LockRoom(ctx, roomID)
	if err != nil {
		return notFound(err, "room %d", roomID)
	}
	return syncRoomStatus(ctx, st, room, trigger)
}

// syncRoomStatus applies the rule table, first match wins:
//
//	created                 -> reserved
//	checked_in              -> occupied
//	checked_out             -> available
//	cancelled or deleted    -> available, unless another booking is pending or confirmed
//
// Any other trigger leaves the room alone, and so does maintenance.
func syncRoomStatus(ctx context.Context, st store.Store, room *model.Room, trigger Trigger) error {
	if room.Status == model.RoomStatusMaintenance {
		return nil
	}

	var next model.RoomStatus
	switch trigger {
	case TriggerCreated:
		next = model.RoomStatusReserved
	case StatusTrigger(model.ReservationCheckedIn):
		next = model.RoomStatusOccupied
	case StatusTrigger(model.ReservationCheckedOut):
		next = model.RoomStatusAvailable
	case StatusTrigger(model.ReservationCancelled), TriggerDeleted:
		holding, err := st.CountReservations(ctx, store.ReservationFilter{
			RoomID:   room.ID,
			Statuses: roomHoldingStatuses,
		})
		if err != nil {
			return fmt.Errorf("failed to scan reservations of room %d: %w", room.ID, err)
		}
		if holding > 0 {
			return nil
		}
		next = model.RoomStatusAvailable
	default:
		return nil
	}

	if room.Status == next {
		return nil
	}
	if err := st.SetRoomStatus(ctx, room.ID, next); err != nil {
		return err
	}
	room.Status = next
	return nil
}
