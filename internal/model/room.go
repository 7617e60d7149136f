package model

// RoomType is the category of a room.
type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeSuite  RoomType = "suite"
	RoomTypeDeluxe RoomType = "deluxe"
)

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe:
		return true
	}
	return false
}

// RoomStatus is the occupancy state of a room.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusReserved    RoomStatus = "reserved"
)

// Valid reports whether s is one of the known room statuses.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusReserved:
		return true
	}
	return false
}

// Room represents a bookable hotel room.
type Room struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	RoomNumber  string     `gorm:"uniqueIndex;size:32;not null" json:"room_number"`
	RoomType    RoomType   `gorm:"type:varchar(16);not null" json:"room_type"`
	Price       float64    `gorm:"not null" json:"price"` // Nightly rate
	Status      RoomStatus `gorm:"type:varchar(16);not null;default:available;index" json:"status"`
	Floor       *int       `json:"floor"`
	Capacity    int        `gorm:"not null;default:1" json:"capacity"`
	Description *string    `gorm:"type:text" json:"description"`
}
