// Package hotel implements the reservation scheduling and availability rules
// of the hotel: room availability, pricing, the reservation lifecycle and
// the room status that follows from it.
package hotel

import (
	"errors"

	"hotel-management-backend/internal/apperr"
	"hotel-management-backend/internal/store"
)

// DefaultListLimit bounds listings when the caller does not ask for a size.
const DefaultListLimit = 100

// notFound turns a missing store record into an apperr.ErrNotFound naming what was looked up.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFoundf(format, args...)
	}
	return err
}

func normalizePage(p store.Page) store.Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	return p
}
