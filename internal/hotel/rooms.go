package hotel

import (
	"context"
	"log"
	"strings"
	"time"

	"hotel-management-backend/internal/apperr"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/parse"
	"hotel-management-backend/internal/store"
)

// NewRoom is the input of Rooms.Create.
type NewRoom struct {
	RoomNumber  string
	RoomType    model.RoomType
	Price       float64
	Status      model.RoomStatus
	Floor       *int
	Capacity    int
	Description *string
}

// RoomUpdate carries the fields of a partial room update; nil fields keep their value.
type RoomUpdate struct {
	RoomNumber  *string
	RoomType    *model.RoomType
	Price       *float64
	Status      *model.RoomStatus
	Floor       *int
	Capacity    *int
	Description *string
}

// Rooms administers the room inventory.
type Rooms struct {
	store store.Store
}

func NewRooms(st store.Store) *Rooms {
	return &Rooms{store: st}
}

// Create adds a room. The floor is derived from the room number when omitted.
func (s *Rooms) Create(ctx context.Context, in NewRoom) (*model.Room, error) {
	room := &model.Room{
		RoomNumber:  strings.TrimSpace(in.RoomNumber),
		RoomType:    in.RoomType,
		Price:       in.Price,
		Status:      in.Status,
		Floor:       in.Floor,
		Capacity:    in.Capacity,
		Description: in.Description,
	}
	if room.Status == "" {
		room.Status = model.RoomStatusAvailable
	}
	if room.Capacity == 0 {
		room.Capacity = 1
	}
	if err := validateRoom(room); err != nil {
		return nil, err
	}
	if room.Floor == nil {
		if parsed, err := parse.RoomNumber(room.RoomNumber); err == nil {
			room.Floor = &parsed.Floor
		}
	}

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		taken, err := tx.RoomNumberExists(ctx, room.RoomNumber, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflictf("room number %s already exists", room.RoomNumber)
		}
		return tx.CreateRoom(ctx, room)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Room %s created with id %d", room.RoomNumber, room.ID)
	return room, nil
}

// Get returns a room by id.
func (s *Rooms) Get(ctx context.Context, id int64) (*model.Room, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return nil, notFound(err, "room %d", id)
	}
	return room, nil
}

// List returns rooms matching the filter.
func (s *Rooms) List(ctx context.Context, filter store.RoomFilter) ([]model.Room, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Validationf("unknown room status %q", filter.Status)
	}
	filter.Page = normalizePage(filter.Page)
	return s.store.ListRooms(ctx, filter)
}

// Update applies the supplied fields. A manual status change, such as taking
// a room into maintenance, is written as given.
func (s *Rooms) Update(ctx context.Context, id int64, upd RoomUpdate) (*model.Room, error) {
	var room *model.Room
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		room, err = tx.LockRoom(ctx, id)
		if err != nil {
			return notFound(err, "room %d", id)
		}

		if upd.RoomNumber != nil {
			number := strings.TrimSpace(*upd.RoomNumber)
			if number != room.RoomNumber {
				taken, err := tx.RoomNumberExists(ctx, number, room.ID)
				if err != nil {
					return err
				}
				if taken {
					return apperr.Conflictf("room number %s already exists", number)
				}
			}
			room.RoomNumber = number
		}
		if upd.RoomType != nil {
			room.RoomType = *upd.RoomType
		}
		if upd.Price != nil {
			room.Price = *upd.Price
		}
		if upd.Status != nil {
			room.Status = *upd.Status
		}
		if upd.Floor != nil {
			room.Floor = upd.Floor
		}
		if upd.Capacity != nil {
			room.Capacity = *upd.Capacity
		}
		if upd.Description != nil {
			room.Description = upd.Description
		}

		if err := validateRoom(room); err != nil {
			return err
		}
		return tx.SaveRoom(ctx, room)
	})
	if err != nil {
		return nil, err
	}
	return room, nil
}

// Delete removes a room that no reservation references.
func (s *Rooms) Delete(ctx context.Context, id int64) error {
	return s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := tx.LockRoom(ctx, id); err != nil {
			return notFound(err, "room %d", id)
		}
		refs, err := tx.CountReservations(ctx, store.ReservationFilter{RoomID: id})
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperr.Conflictf("room %d is referenced by %d reservation(s)", id, refs)
		}
		return notFound(tx.DeleteRoom(ctx, id), "room %d", id)
	})
}

// Available lists the rooms whose status is available.
func (s *Rooms) Available(ctx context.Context) ([]model.Room, error) {
	return s.store.ListRooms(ctx, store.RoomFilter{Status: model.RoomStatusAvailable})
}

// AvailableFor lists the rooms, outside maintenance and large enough for the
// party, that have no conflicting reservation over [checkIn, checkOut).
func (s *Rooms) AvailableFor(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]model.Room, error) {
	if err := validateStay(checkIn, checkOut); err != nil {
		return nil, err
	}
	rooms, err := s.store.ListRooms(ctx, store.RoomFilter{MinCapacity: guests})
	if err != nil {
		return nil, err
	}

	free := make([]model.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Status == model.RoomStatusMaintenance {
			continue
		}
		ok, err := isAvailable(ctx, s.store, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, room)
		}
	}
	return free, nil
}

func validateRoom(room *model.Room) error {
	switch {
	case room.RoomNumber == "":
		return apperr.Validationf("room number is required")
	case !room.RoomType.Valid():
		return apperr.Validationf("unknown room type %q", room.RoomType)
	case room.Price <= 0:
		return apperr.Validationf("price must be positive")
	case !room.Status.Valid():
		return apperr.Validationf("unknown room status %q", room.Status)
	case room.Capacity < 1:
		return apperr.Validationf("capacity must be at least 1")
	}
	return nil
}
