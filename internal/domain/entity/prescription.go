package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prescription is the doctor's diagnosis and medicine list for a visit
type Prescription struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VisitID       uuid.UUID `gorm:"type:uuid;not null;index" json:"visit_id"`
	Diagnosis     *string   `gorm:"type:text" json:"diagnosis,omitempty"`
	ClinicalNotes *string   `gorm:"type:text" json:"clinical_notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Visit     Visit                  `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
	Medicines []PrescriptionMedicine `gorm:"foreignKey:PrescriptionID" json:"medicines,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PrescriptionMedicine is one medicine line on a prescription
type PrescriptionMedicine struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PrescriptionID uuid.UUID `gorm:"type:uuid;not null;index" json:"prescription_id"`
	MedicineName   string    `gorm:"type:varchar(255);not null" json:"medicine_name"`
	Dosage         string    `gorm:"type:varchar(100);not null" json:"dosage"`
	Frequency      string    `gorm:"type:varchar(100);not null" json:"frequency"`
	Duration       string    `gorm:"type:varchar(100);not null" json:"duration"`
	Instructions   *string   `gorm:"type:text" json:"instructions,omitempty"`
}

func (PrescriptionMedicine) TableName() string {
	return "prescription_medicines"
}

func (m *PrescriptionMedicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
