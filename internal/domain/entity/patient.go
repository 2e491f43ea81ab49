package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender enum values match the intake form options
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Patient represents a registered patient.
// PatientCode is the human-facing registration number (P-YYYYMMDD-NNNN),
// distinct from the primary key.
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientCode string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_code"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Age         int       `gorm:"not null" json:"age"`
	Gender      Gender    `gorm:"type:varchar(10);not null" json:"gender"`
	Phone       string    `gorm:"type:varchar(30);not null;index" json:"phone"`
	Address     *string   `gorm:"type:text" json:"address,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
