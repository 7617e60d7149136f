package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-management-backend/internal/model"
)

// overlapCondition matches an existing stay against a candidate [in, out):
// it starts during the candidate's first night, ends during the candidate,
// or lies entirely within it. gorm parenthesizes the disjunction when it is
// combined with the other filters.
const overlapCondition = "(check_in_date <= ? AND check_out_date > ?)" +
	" OR (check_in_date < ? AND check_out_date >= ?)" +
	" OR (check_in_date >= ? AND check_out_date <= ?)"

func (s *gormStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return writeErr(err, "create", fmt.Sprintf("reservation for room %d", r.RoomID))
	}
	return nil
}

func (s *gormStore) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	return first[model.Reservation](ctx, s.db, "reservation", id)
}

func (s *gormStore) ListReservations(ctx context.Context, filter ReservationFilter) ([]model.Reservation, error) {
	var reservations []model.Reservation
	q := paginate(s.filterReservations(ctx, filter), filter.Page)
	if err := q.Order("check_in_date, id").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *gormStore) CountReservations(ctx context.Context, filter ReservationFilter) (int64, error) {
	var count int64
	if err := s.filterReservations(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

// CountOverlapping counts active reservations of the room whose stay conflicts with the query range.
func (s *gormStore) CountOverlapping(ctx context.Context, q OverlapQuery) (int64, error) {
	in, out := q.CheckIn, q.CheckOut
	query := s.filterReservations(ctx, ReservationFilter{
		RoomID:    q.RoomID,
		Statuses:  model.ActiveReservationStatuses,
		ExcludeID: q.ExcludeID,
	}).Where(overlapCondition, in, in, out, out, in, out)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to check overlapping reservations for room %d: %w", q.RoomID, err)
	}
	return count, nil
}

func (s *gormStore) SaveReservation(ctx context.Context, r *model.Reservation) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(r).Error; err != nil {
		return writeErr(err, "save", fmt.Sprintf("reservation %d", r.ID))
	}
	return nil
}

func (s *gormStore) DeleteReservation(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Reservation{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete reservation %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) filterReservations(ctx context.Context, filter ReservationFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&model.Reservation{})
	if filter.RoomID != 0 {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.GuestID != 0 {
		q = q.Where("guest_id = ?", filter.GuestID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.ExcludeID != 0 {
		q = q.Where("id <> ?", filter.ExcludeID)
	}
	return q
}
