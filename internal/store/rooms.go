package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"hotel-management-backend/internal/model"
)

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return writeErr(err, "create", fmt.Sprintf("room %q", room.RoomNumber))
	}
	return nil
}

func (s *gormStore) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	return first[model.Room](ctx, s.db, "room", id)
}

// LockRoom loads a room with a row lock held until the surrounding transaction
// ends, serializing writers that touch the same room's reservations.
func (s *gormStore) LockRoom(ctx context.Context, id int64) (*model.Room, error) {
	return first[model.Room](ctx, s.db.Clauses(clause.Locking{Strength: "UPDATE"}), "room", id)
}

func (s *gormStore) ListRooms(ctx context.Context, filter RoomFilter) ([]model.Room, error) {
	q := s.db.WithContext(ctx).Model(&model.Room{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinCapacity > 0 {
		q = q.Where("capacity >= ?", filter.MinCapacity)
	}

	var rooms []model.Room
	if err := paginate(q, filter.Page).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) SaveRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Save(room).Error; err != nil {
		return writeErr(err, "save", fmt.Sprintf("room %d", room.ID))
	}
	return nil
}

func (s *gormStore) SetRoomStatus(ctx context.Context, id int64, status model.RoomStatus) error {
	err := s.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to set status of room %d: %w", id, err)
	}
	return nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Room{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) RoomNumberExists(ctx context.Context, number string, excludeID int64) (bool, error) {
	found, err := exists(ctx, s.db, &model.Room{}, "room_number", number, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to look up room number %q: %w", number, err)
	}
	return found, nil
}
