package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Code   string  `json:"code" validate:"required,max=20"`
	Name   string  `json:"name" validate:"required,max=100"`
	Floor  *string `json:"floor" validate:"omitempty,max=50"`
	Status string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE MAINTENANCE"`
}

type UpdateRoomRequest struct {
	Code   *string `json:"code" validate:"omitempty,max=20"`
	Name   *string `json:"name" validate:"omitempty,max=100"`
	Floor  *string `json:"floor" validate:"omitempty,max=50"`
	Status *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE MAINTENANCE"`
}

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Floor     *string   `json:"floor,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateProcedureRequest struct {
	Code       string   `json:"code" validate:"required,max=20"`
	Name       string   `json:"name" validate:"required,max=150"`
	Department *string  `json:"department" validate:"omitempty,max=100"`
	DefaultFee float64  `json:"default_fee" validate:"gte=0"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
}

type UpdateProcedureRequest struct {
	Code       *string  `json:"code" validate:"omitempty,max=20"`
	Name       *string  `json:"name" validate:"omitempty,max=150"`
	Department *string  `json:"department" validate:"omitempty,max=100"`
	DefaultFee *float64 `json:"default_fee" validate:"omitempty,gte=0"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,gte=0"`
}

type ProcedureResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Department *string   `json:"department,omitempty"`
	DefaultFee float64   `json:"default_fee"`
	HourlyRate *float64  `json:"hourly_rate,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
