package model

import "time"

// Guest is a person who can hold reservations.
type Guest struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:50;not null" json:"first_name"`
	LastName  string    `gorm:"size:50;not null" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone     string    `gorm:"size:15;not null" json:"phone"`
	Address   *string   `json:"address"`
	IDNumber  string    `gorm:"column:id_number;uniqueIndex;size:64;not null" json:"id_number"` // Government ID or passport
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
