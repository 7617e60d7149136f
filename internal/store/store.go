package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"hotel-management-backend/internal/apperr"
	"hotel-management-backend/internal/model"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	// WithTx runs fn inside a transaction. The Store passed to fn is bound to
	// that transaction; returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id int64) (*model.Room, error)
	LockRoom(ctx context.Context, id int64) (*model.Room, error)
	ListRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error)
	SaveRoom(ctx context.Context, room *model.Room) error
	SetRoomStatus(ctx context.Context, id int64, status model.RoomStatus) error
	DeleteRoom(ctx context.Context, id int64) error
	RoomNumberExists(ctx context.Context, number string, excludeID int64) (bool, error)

	CreateGuest(ctx context.Context, guest *model.Guest) error
	GetGuest(ctx context.Context, id int64) (*model.Guest, error)
	GetGuestByEmail(ctx context.Context, email string) (*model.Guest, error)
	ListGuests(ctx context.Context, page Page) ([]model.Guest, error)
	SaveGuest(ctx context.Context, guest *model.Guest) error
	DeleteGuest(ctx context.Context, id int64) error
	GuestEmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	GuestIDNumberExists(ctx context.Context, idNumber string, excludeID int64) (bool, error)

	CreateReservation(ctx context.Context, r *model.Reservation) error
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error)
	CountReservations(ctx context.Context, filter ReservationFilter) (int64, error)
	CountOverlapping(ctx context.Context, q OverlapQuery) (int64, error)
	SaveReservation(ctx context.Context, r *model.Reservation) error
	DeleteReservation(ctx context.Context, id int64) error

	SaveSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, guestID int64, endpoint string) error
	ListSubscriptions(ctx context.Context, guestID int64) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// first loads a single record by primary key, translating a missing row into ErrNotFound.
func first[T any](ctx context.Context, db *gorm.DB, what string, id int64) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s %d: %w", what, id, err)
	}
	return &out, nil
}

// exists reports whether any row matches the condition, ignoring excludeID.
func exists(ctx context.Context, db *gorm.DB, m any, column string, value any, excludeID int64) (bool, error) {
	q := db.WithContext(ctx).Model(m).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SQLSTATE codes postgres reports for unique and exclusion constraint violations.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// writeErr wraps a failed insert or update of what. A write rejected by a
// unique index or by the reservation overlap constraint becomes a conflict.
func writeErr(err error, verb, what string) error {
	if isConstraintConflict(err) {
		return apperr.Conflictf("cannot %s %s: it conflicts with an existing record", verb, what)
	}
	return fmt.Errorf("failed to %s %s: %w", verb, what, err)
}

func isConstraintConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func paginate(q *gorm.DB, page Page) *gorm.DB {
	if page.Skip > 0 {
		q = q.Offset(page.Skip)
	}
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	return q
}
