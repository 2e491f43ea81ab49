package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomStatus represents the operational state of a room
type RoomStatus string

const (
	RoomStatusActive      RoomStatus = "ACTIVE"
	RoomStatusInactive    RoomStatus = "INACTIVE"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

// Room is a physical clinic room managed through admin config
type Room struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Floor     *string    `gorm:"type:varchar(50)" json:"floor,omitempty"`
	Status    RoomStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
