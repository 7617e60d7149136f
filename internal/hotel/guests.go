package hotel

import (
	"context"
	"log"
	"strings"

	"hotel-management-backend/internal/apperr"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/store"
)

// NewGuest is the input of Guests.Create.
type NewGuest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   *string
	IDNumber  string
}

// GuestUpdate carries the fields of a partial guest update; nil fields keep their value.
type GuestUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	IDNumber  *string
}

// Guests registers guests and their push subscriptions.
type Guests struct {
	store store.Store
}

func NewGuests(st store.Store) *Guests {
	return &Guests{store: st}
}

// Create registers a guest. Email and id number must be unused.
func (s *Guests) Create(ctx context.Context, in NewGuest) (*model.Guest, error) {
	guest := &model.Guest{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   in.Address,
		IDNumber:  strings.TrimSpace(in.IDNumber),
	}
	if err := validateGuest(guest); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := checkGuestUnique(ctx, tx, guest, 0); err != nil {
			return err
		}
		return tx.CreateGuest(ctx, guest)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Guest %d registered", guest.ID)
	return guest, nil
}

// Get returns a guest by id.
func (s *Guests) Get(ctx context.Context, id int64) (*model.Guest, error) {
	guest, err := s.store.GetGuest(ctx, id)
	if err != nil {
		return nil, notFound(err, "guest %d", id)
	}
	return guest, nil
}

// GetByEmail looks a guest up by email address.
func (s *Guests) GetByEmail(ctx context.Context, email string) (*model.Guest, error) {
	guest, err := s.store.GetGuestByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFound(err, "guest with email %s", email)
	}
	return guest, nil
}

// List returns a page of guests.
func (s *Guests) List(ctx context.Context, page store.Page) ([]model.Guest, error) {
	return s.store.ListGuests(ctx, normalizePage(page))
}

// Update applies the supplied fields, keeping email and id number unique.
func (s *Guests) Update(ctx context.Context, id int64, upd GuestUpdate) (*model.Guest, error) {
	var guest *model.Guest
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		guest, err = tx.GetGuest(ctx, id)
		if err != nil {
			return notFound(err, "guest %d", id)
		}

		if upd.FirstName != nil {
			guest.FirstName = strings.TrimSpace(*upd.FirstName)
		}
		if upd.LastName != nil {
			guest.LastName = strings.TrimSpace(*upd.LastName)
		}
		if upd.Email != nil {
			guest.Email = normalizeEmail(*upd.Email)
		}
		if upd.Phone != nil {
			guest.Phone = strings.TrimSpace(*upd.Phone)
		}
		if upd.Address != nil {
			guest.Address = upd.Address
		}
		if upd.IDNumber != nil {
			guest.IDNumber = strings.TrimSpace(*upd.IDNumber)
		}

		if err := validateGuest(guest); err != nil {
			return err
		}
		if err := checkGuestUnique(ctx, tx, guest, guest.ID); err != nil {
			return err
		}
		return tx.SaveGuest(ctx, guest)
	})
	if err != nil {
		return nil, err
	}
	return guest, nil
}

// Delete removes a guest that owns no reservations.
func (s *Guests) Delete(ctx context.Context, id int64) error {
	return s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := tx.GetGuest(ctx, id); err != nil {
			return notFound(err, "guest %d", id)
		}
		owned, err := tx.CountReservations(ctx, store.ReservationFilter{GuestID: id})
		if err != nil {
			return err
		}
		if owned > 0 {
			return apperr.Conflictf("cannot delete guest %d with existing reservations", id)
		}
		return notFound(tx.DeleteGuest(ctx, id), "guest %d", id)
	})
}

// Subscribe registers a browser push subscription for the guest.
func (s *Guests) Subscribe(ctx context.Context, guestID int64, endpoint, p256dh, auth string) (*model.PushSubscription, error) {
	if endpoint == "" || p256dh == "" || auth == "" {
		return nil, apperr.Validationf("endpoint, p256dh and auth are required")
	}
	if _, err := s.store.GetGuest(ctx, guestID); err != nil {
		return nil, notFound(err, "guest %d", guestID)
	}
	sub := &model.PushSubscription{
		Endpoint: endpoint,
		GuestID:  guestID,
		P256DH:   p256dh,
		Auth:     auth,
	}
	if err := s.store.SaveSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Unsubscribe removes one of the guest's push subscriptions.
func (s *Guests) Unsubscribe(ctx context.Context, guestID int64, endpoint string) error {
	return notFound(s.store.DeleteSubscription(ctx, guestID, endpoint), "subscription for guest %d", guestID)
}

// Subscriptions lists the guest's push subscriptions.
func (s *Guests) Subscriptions(ctx context.Context, guestID int64) ([]model.PushSubscription, error) {
	if _, err := s.store.GetGuest(ctx, guestID); err != nil {
		return nil, notFound(err, "guest %d", guestID)
	}
	return s.store.ListSubscriptions(ctx, guestID)
}

func checkGuestUnique(ctx context.Context, tx store.Store, guest *model.Guest, excludeID int64) error {
	taken, err := tx.GuestEmailExists(ctx, guest.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflictf("email already registered")
	}
	taken, err = tx.GuestIDNumberExists(ctx, guest.IDNumber, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflictf("id number already registered")
	}
	return nil
}

func validateGuest(g *model.Guest) error {
	switch {
	case g.FirstName == "" || g.LastName == "":
		return apperr.Validationf("first and last name are required")
	case g.Email == "" || !strings.Contains(g.Email, "@"):
		return apperr.Validationf("a valid email is required")
	case g.Phone == "":
		return apperr.Validationf("phone is required")
	case g.IDNumber == "":
		return apperr.Validationf("id number is required")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
