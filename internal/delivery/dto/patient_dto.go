package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=150"`
	Age     int     `json:"age" validate:"gte=0,lte=150"`
	Gender  string  `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Phone   string  `json:"phone" validate:"required,min=5,max=30"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

type SearchPatientsRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientCode string    `json:"patient_code"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Phone       string    `json:"phone"`
	Address     *string   `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}
