package hotel

import (
	"context"
	"log"
	"slices"
	"time"

	"hotel-management-backend/internal/apperr"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

// Notifier is told about reservations whose status changed once the change is committed.
type Notifier interface {
	Dispatch(reservationID int64)
}

// NewReservation is the input of Reservations.Create.
type NewReservation struct {
	GuestID         int64
	RoomID          int64
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	SpecialRequests *string
}

// ReservationUpdate carries the fields of a partial update; nil fields keep their value.
type ReservationUpdate struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	Status          *model.ReservationStatus
	NumberOfGuests  *int
	SpecialRequests *string
}

// Reservations manages the reservation lifecycle. Every mutating operation
// runs in a single transaction that also covers the room status update.
type Reservations struct {
	store    store.Store
	notifier Notifier
}

// NewReservations creates the lifecycle manager. notifier may be nil.
func NewReservations(st store.Store, notifier Notifier) *Reservations {
	return &Reservations{store: st, notifier: notifier}
}

// Get returns a reservation by id.
func (m *Reservations) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	r, err := m.store.GetReservation(ctx, id)
	if err != nil {
		return nil, notFound(err, "reservation %d", id)
	}
	return r, nil
}

// List returns reservations matching the filter.
func (m *Reservations) List(ctx context.Context, filter store.ReservationFilter) ([]model.Reservation, error) {
	for _, s := range filter.Statuses {
		if !s.Valid() {
			return nil, apperr.Validationf("unknown reservation status %q", s)
		}
	}
	filter.Page = normalizePage(filter.Page)
	return m.store.ListReservations(ctx, filter)
}

// ListForGuest returns every reservation of a guest.
func (m *Reservations) ListForGuest(ctx context.Context, guestID int64) ([]model.Reservation, error) {
	if _, err := m.store.GetGuest(ctx, guestID); err != nil {
		return nil, notFound(err, "guest %d", guestID)
	}
	return m.store.ListReservations(ctx, store.ReservationFilter{GuestID: guestID})
}

// ListForRoom returns every reservation of a room.
func (m *Reservations) ListForRoom(ctx context.Context, roomID int64) ([]model.Reservation, error) {
	if _, err := m.store.GetRoom(ctx, roomID); err != nil {
		return nil, notFound(err, "room %d", roomID)
	}
	return m.store.ListReservations(ctx, store.ReservationFilter{RoomID: roomID})
}

// Quote prices a prospective stay without booking it.
func (m *Reservations) Quote(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (float64, error) {
	if err := validateStay(checkIn, checkOut); err != nil {
		return 0, err
	}
	return TotalPrice(ctx, m.store, roomID, checkIn, checkOut)
}

// Create books a room for a guest. The reservation starts pending and the room becomes reserved.
func (m *Reservations) Create(ctx context.Context, in NewReservation) (*model.Reservation, error) {
	checkIn, checkOut := in.CheckIn.UTC(), in.CheckOut.UTC()
	if err := validateStay(checkIn, checkOut); err != nil {
		return nil, err
	}
	if in.NumberOfGuests < 1 {
		return nil, apperr.Validationf("number of guests must be at least 1")
	}

	var created *model.Reservation
	err := m.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetGuest(ctx, in.GuestID); err != nil {
			return notFound(err, "guest %d", in.GuestID)
		}
		room, err := tx.LockRoom(ctx, in.RoomID)
		if err != nil {
			return notFound(err, "room %d", in.RoomID)
		}

		available, err := isAvailable(ctx, tx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !available {
			return apperr.Conflictf("room %s is not available for the selected dates", room.RoomNumber)
		}
		if in.NumberOfGuests > room.Capacity {
			return apperr.Validationf("number of guests exceeds room capacity (%d)", room.Capacity)
		}

		r := &model.Reservation{
			GuestID:         in.GuestID,
			RoomID:          room.ID,
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Status:          model.ReservationPending,
			TotalPrice:      priceFor(room, checkIn, checkOut),
			NumberOfGuests:  in.NumberOfGuests,
			SpecialRequests: in.SpecialRequests,
		}
		if err := tx.CreateReservation(ctx, r); err != nil {
			return err
		}
		if err := syncRoomStatus(ctx, tx, room, TriggerCreated); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Reservation %d created for guest %d in room %d", created.ID, created.GuestID, created.RoomID)
	m.notify(created.ID)
	return created, nil
}

// Update applies the supplied fields. Changing either date re-checks
// availability against the other reservations of the room and reprices the stay.
func (m *Reservations) Update(ctx context.Context, id int64, upd ReservationUpdate) (*model.Reservation, error) {
	return m.mutate(ctx, id, func(ctx context.Context, tx store.Store, r *model.Reservation, room *model.Room) error {
		return m.apply(ctx, tx, r, room, upd)
	})
}

// Confirm moves a pending reservation to confirmed.
func (m *Reservations) Confirm(ctx context.Context, id int64) (*model.Reservation, error) {
	return m.transition(ctx, id, model.ReservationConfirmed, model.ReservationPending)
}

// Cancel cancels a pending or confirmed reservation. The room is released
// unless another booking still holds it.
func (m *Reservations) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	return m.transition(ctx, id, model.ReservationCancelled, model.ReservationPending, model.ReservationConfirmed)
}

// CheckIn moves a confirmed reservation to checked_in and marks the room occupied.
func (m *Reservations) CheckIn(ctx context.Context, id int64) (*model.Reservation, error) {
	return m.transition(ctx, id, model.ReservationCheckedIn, model.ReservationConfirmed)
}

// CheckOut moves a checked-in reservation to checked_out and frees the room.
func (m *Reservations) CheckOut(ctx context.Context, id int64) (*model.Reservation, error) {
	return m.transition(ctx, id, model.ReservationCheckedOut, model.ReservationCheckedIn)
}

// Delete removes a reservation and releases its room unless another booking still holds it.
func (m *Reservations) Delete(ctx context.Context, id int64) error {
	err := m.store.WithTx(ctx, func(tx store.Store) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return notFound(err, "reservation %d", id)
		}
		room, err := tx.LockRoom(ctx, r.RoomID)
		if err != nil {
			return notFound(err, "room %d", r.RoomID)
		}
		if err := tx.DeleteReservation(ctx, id); err != nil {
			return notFound(err, "reservation %d", id)
		}
		return syncRoomStatus(ctx, tx, room, TriggerDeleted)
	})
	if err != nil {
		return err
	}
	log.Printf("Reservation %d deleted", id)
	return nil
}

// transition is a guarded status change expressed as a partial update.
func (m *Reservations) transition(ctx context.Context, id int64, to model.ReservationStatus, from ...model.ReservationStatus) (*model.Reservation, error) {
	return m.mutate(ctx, id, func(ctx context.Context, tx store.Store, r *model.Reservation, room *model.Room) error {
		if !slices.Contains(from, r.Status) {
			return apperr.InvalidTransitionf("reservation %d is %s; cannot move to %s", r.ID, r.Status, to)
		}
		return m.apply(ctx, tx, r, room, ReservationUpdate{Status: &to})
	})
}

type mutation func(ctx context.Context, tx store.Store, r *model.Reservation, room *model.Room) error

// mutate loads the reservation and locks its room inside a transaction,
// runs fn, and notifies once the transaction committed a status change.
func (m *Reservations) mutate(ctx context.Context, id int64, fn mutation) (*model.Reservation, error) {
	var (
		updated    *model.Reservation
		prevStatus model.ReservationStatus
	)
	err := m.store.WithTx(ctx, func(tx store.Store) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return notFound(err, "reservation %d", id)
		}
		room, err := tx.LockRoom(ctx, r.RoomID)
		if err != nil {
			return notFound(err, "room %d", r.RoomID)
		}
		prevStatus = r.Status
		if err := fn(ctx, tx, r, room); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status != prevStatus {
		log.Printf("Reservation %d moved from %s to %s", updated.ID, prevStatus, updated.Status)
		m.notify(updated.ID)
	}
	return updated, nil
}

// apply validates and writes a partial update, then lets the room follow the supplied status.
func (m *Reservations) apply(ctx context.Context, tx store.Store, r *model.Reservation, room *model.Room, upd ReservationUpdate) error {
	if upd.Status != nil && !upd.Status.Valid() {
		return apperr.Validationf("unknown reservation status %q", *upd.Status)
	}
	if upd.NumberOfGuests != nil {
		if *upd.NumberOfGuests < 1 {
			return apperr.Validationf("number of guests must be at least 1")
		}
		if *upd.NumberOfGuests > room.Capacity {
			return apperr.Validationf("number of guests exceeds room capacity (%d)", room.Capacity)
		}
	}

	checkIn, checkOut := r.CheckInDate, r.CheckOutDate
	if upd.CheckIn != nil {
		checkIn = upd.CheckIn.UTC()
	}
	if upd.CheckOut != nil {
		checkOut = upd.CheckOut.UTC()
	}
	datesChanged := upd.CheckIn != nil || upd.CheckOut != nil
	if datesChanged {
		if err := validateStay(checkIn, checkOut); err != nil {
			return err
		}
	}

	// A cancelled or checked-out stay no longer holds the room, so bringing
	// it back must claim the dates again.
	reactivated := upd.Status != nil && upd.Status.Active() && !r.Status.Active()
	if datesChanged || reactivated {
		available, err := isAvailable(ctx, tx, room.ID, checkIn, checkOut, r.ID)
		if err != nil {
			return err
		}
		if !available {
			return apperr.Conflictf("room %s is not available for the selected dates", room.RoomNumber)
		}
	}
	if datesChanged {
		r.CheckInDate, r.CheckOutDate = checkIn, checkOut
		r.TotalPrice = priceFor(room, checkIn, checkOut)
	}

	if upd.Status != nil {
		r.Status = *upd.Status
	}
	if upd.NumberOfGuests != nil {
		r.NumberOfGuests = *upd.NumberOfGuests
	}
	if upd.SpecialRequests != nil {
		r.SpecialRequests = upd.SpecialRequests
	}

	if err := tx.SaveReservation(ctx, r); err != nil {
		return err
	}
	if upd.Status != nil {
		return syncRoomStatus(ctx, tx, room, StatusTrigger(*upd.Status))
	}
	return nil
}

func (m *Reservations) notify(id int64) {
	if m.notifier != nil {
		m.notifier.Dispatch(id)
	}
}

func validateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperr.Validationf("check-in and check-out dates are required")
	}
	if !checkOut.After(checkIn) {
		return apperr.Validationf("check_out_date must be after check_in_date")
	}
	return nil
}
