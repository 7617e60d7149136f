package model

import "time"

// PushSubscription holds the information for a guest's browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	GuestID   int64     `gorm:"index;not null" json:"guest_id"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"-"`
	Auth      string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// Associations
	Guest *Guest `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
