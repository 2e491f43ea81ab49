package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateVisitRequest struct {
	PatientID   uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID    uuid.UUID `json:"doctor_id" validate:"required"`
	IsEmergency bool      `json:"is_emergency"`
}

type VisitResponse struct {
	ID              uuid.UUID        `json:"id"`
	PatientID       uuid.UUID        `json:"patient_id"`
	DoctorID        uuid.UUID        `json:"doctor_id"`
	TokenNumber     int              `json:"token_number"`
	VisitDate       time.Time        `json:"visit_date"`
	Status          string           `json:"status"`
	IsEmergency     bool             `json:"is_emergency"`
	ConsultationFee float64          `json:"consultation_fee"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	Doctor          *DoctorResponse  `json:"doctor,omitempty"`
}

type VisitListResponse struct {
	Visits []VisitResponse `json:"visits"`
	Total  int             `json:"total"`
}

// DoctorQueueEntry is a waiting visit annotated with the minutes the
// patient has been waiting since check-in.
type DoctorQueueEntry struct {
	VisitResponse
	TimeWaiting int `json:"time_waiting"`
}

type DoctorQueueResponse struct {
	DoctorID uuid.UUID          `json:"doctor_id"`
	Queue    []DoctorQueueEntry `json:"queue"`
	Total    int                `json:"total"`
}
