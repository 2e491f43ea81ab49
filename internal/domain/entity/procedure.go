package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Procedure is a catalog entry for orderable clinical procedures.
// DefaultFee is the flat charge; HourlyRate, when set, is billed on top
// for the time the procedure actually ran.
type Procedure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name       string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Department *string   `gorm:"type:varchar(100)" json:"department,omitempty"`
	DefaultFee float64   `gorm:"not null;default:0" json:"default_fee"`
	HourlyRate *float64  `json:"hourly_rate,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Procedure) TableName() string {
	return "procedures"
}

func (p *Procedure) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
