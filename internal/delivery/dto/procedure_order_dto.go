package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProcedureOrderRequest struct {
	VisitID     uuid.UUID `json:"visit_id" validate:"required"`
	ProcedureID uuid.UUID `json:"procedure_id" validate:"required"`
	Notes       *string   `json:"notes" validate:"omitempty,max=500"`
}

type ProcedureOrderResponse struct {
	ID          uuid.UUID          `json:"id"`
	VisitID     uuid.UUID          `json:"visit_id"`
	ProcedureID uuid.UUID          `json:"procedure_id"`
	Status      string             `json:"status"`
	Notes       *string            `json:"notes,omitempty"`
	StartedAt   *time.Time         `json:"started_at,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	Procedure   *ProcedureResponse `json:"procedure,omitempty"`
	Visit       *VisitResponse     `json:"visit,omitempty"`
}

type ProcedureOrderListResponse struct {
	Orders []ProcedureOrderResponse `json:"orders"`
	Total  int                      `json:"total"`
}
