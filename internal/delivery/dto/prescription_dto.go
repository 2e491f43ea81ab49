package dto

import (
	"time"

	"github.com/google/uuid"
)

type PrescriptionMedicineRequest struct {
	MedicineName string  `json:"medicine_name" validate:"required,max=150"`
	Dosage       string  `json:"dosage" validate:"required,max=100"`
	Frequency    string  `json:"frequency" validate:"required,max=100"`
	Duration     string  `json:"duration" validate:"required,max=100"`
	Instructions *string `json:"instructions" validate:"omitempty,max=255"`
}

type CreatePrescriptionRequest struct {
	VisitID       uuid.UUID                     `json:"visit_id" validate:"required"`
	Diagnosis     *string                       `json:"diagnosis" validate:"omitempty,max=500"`
	ClinicalNotes *string                       `json:"clinical_notes" validate:"omitempty,max=1000"`
	Medicines     []PrescriptionMedicineRequest `json:"medicines" validate:"required,min=1,dive"`
}

type PrescriptionMedicineResponse struct {
	ID           uuid.UUID `json:"id"`
	MedicineName string    `json:"medicine_name"`
	Dosage       string    `json:"dosage"`
	Frequency    string    `json:"frequency"`
	Duration     string    `json:"duration"`
	Instructions *string   `json:"instructions,omitempty"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID                      `json:"id"`
	VisitID       uuid.UUID                      `json:"visit_id"`
	Diagnosis     *string                        `json:"diagnosis,omitempty"`
	ClinicalNotes *string                        `json:"clinical_notes,omitempty"`
	Medicines     []PrescriptionMedicineResponse `json:"medicines"`
	CreatedAt     time.Time                      `json:"created_at"`
}
