package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"hotel-management-backend/internal/model"
)

// SaveSubscription creates or replaces a push subscription keyed by endpoint.
func (s *gormStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"guest_id", "p256dh", "auth"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to save subscription for guest %d: %w", sub.GuestID, err)
	}
	return nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, guestID int64, endpoint string) error {
	res := s.db.WithContext(ctx).
		Where("guest_id = ? AND endpoint = ?", guestID, endpoint).
		Delete(&model.PushSubscription{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListSubscriptions(ctx context.Context, guestID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Where("guest_id = ?", guestID).Order("created_at").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions for guest %d: %w", guestID, err)
	}
	return subs, nil
}
