package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor is the consulting-room profile linked to a DOCTOR user account.
// ConsultationFee is the current fee; visits snapshot it at creation time
// so later fee changes never alter historical billing.
type Doctor struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	Name            string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Specialization  string     `gorm:"type:varchar(100);not null" json:"specialization"`
	ConsultationFee float64    `gorm:"not null;default:0" json:"consultation_fee"`
	RoomNumber      string     `gorm:"type:varchar(50)" json:"room_number"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
