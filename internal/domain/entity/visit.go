package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitStatus represents a visit's position in its lifecycle
type VisitStatus string

const (
	VisitStatusWaiting        VisitStatus = "WAITING"
	VisitStatusInConsultation VisitStatus = "IN_CONSULTATION"
	VisitStatusCompleted      VisitStatus = "COMPLETED"
)

// Visit is one patient-doctor encounter. TokenNumber is the queue
// position for the doctor's reset-day; VisitDate anchors the visit to
// that day. ConsultationFee is snapshotted from the doctor at creation.
type Visit struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"doctor_id"`
	TokenNumber     int         `gorm:"not null" json:"token_number"`
	VisitDate       time.Time   `gorm:"autoCreateTime;index" json:"visit_date"`
	Status          VisitStatus `gorm:"type:varchar(20);not null;default:'WAITING';index" json:"status"`
	IsEmergency     bool        `gorm:"not null;default:false" json:"is_emergency"`
	ConsultationFee float64     `gorm:"not null;default:0" json:"consultation_fee"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Visit) TableName() string {
	return "visits"
}

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// IsWaiting checks if the visit is still in the queue
func (v *Visit) IsWaiting() bool {
	return v.Status == VisitStatusWaiting
}

// IsCompleted checks if the visit reached its terminal state
func (v *Visit) IsCompleted() bool {
	return v.Status == VisitStatusCompleted
}
