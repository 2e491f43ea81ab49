package dto

import "github.com/google/uuid"

type UpdateDoctorRequest struct {
	Name            *string  `json:"name" validate:"omitempty,min=2,max=150"`
	Specialization  *string  `json:"specialization" validate:"omitempty,max=100"`
	ConsultationFee *float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
	RoomNumber      *string  `json:"room_number" validate:"omitempty,max=20"`
}

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	ConsultationFee float64   `json:"consultation_fee"`
	RoomNumber      string    `json:"room_number"`
}
