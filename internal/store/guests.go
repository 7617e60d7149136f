package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-management-backend/internal/model"
)

func (s *gormStore) CreateGuest(ctx context.Context, guest *model.Guest) error {
	if err := s.db.WithContext(ctx).Create(guest).Error; err != nil {
		return writeErr(err, "create", fmt.Sprintf("guest %q", guest.Email))
	}
	return nil
}

func (s *gormStore) GetGuest(ctx context.Context, id int64) (*model.Guest, error) {
	return first[model.Guest](ctx, s.db, "guest", id)
}

func (s *gormStore) GetGuestByEmail(ctx context.Context, email string) (*model.Guest, error) {
	var guest model.Guest
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up guest by email: %w", err)
	}
	return &guest, nil
}

func (s *gormStore) ListGuests(ctx context.Context, page Page) ([]model.Guest, error) {
	var guests []model.Guest
	if err := paginate(s.db.WithContext(ctx), page).Order("id").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *gormStore) SaveGuest(ctx context.Context, guest *model.Guest) error {
	if err := s.db.WithContext(ctx).Save(guest).Error; err != nil {
		return writeErr(err, "save", fmt.Sprintf("guest %d", guest.ID))
	}
	return nil
}

// DeleteGuest removes a guest together with its push subscriptions.
func (s *gormStore) DeleteGuest(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guest_id = ?", id).Delete(&model.PushSubscription{}).Error; err != nil {
			return fmt.Errorf("failed to delete subscriptions of guest %d: %w", id, err)
		}
		res := tx.Delete(&model.Guest{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete guest %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *gormStore) GuestEmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	found, err := exists(ctx, s.db, &model.Guest{}, "email", email, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to look up guest email: %w", err)
	}
	return found, nil
}

func (s *gormStore) GuestIDNumberExists(ctx context.Context, idNumber string, excludeID int64) (bool, error) {
	found, err := exists(ctx, s.db, &model.Guest{}, "id_number", idNumber, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to look up guest id number: %w", err)
	}
	return found, nil
}
