package converter

import (
	"github.com/google/uuid"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
)

// ProcedureToResponse converts a Procedure entity to ProcedureResponse DTO
func ProcedureToResponse(procedure *entity.Procedure) *dto.ProcedureResponse {
	if procedure == nil {
		return nil
	}

	return &dto.ProcedureResponse{
		ID:         procedure.ID,
		Code:       procedure.Code,
		Name:       procedure.Name,
		Department: procedure.Department,
		DefaultFee: procedure.DefaultFee,
		HourlyRate: procedure.HourlyRate,
		CreatedAt:  procedure.CreatedAt,
	}
}

// ProceduresToResponses converts a slice of Procedure entities to DTOs
func ProceduresToResponses(procedures []entity.Procedure) []dto.ProcedureResponse {
	responses := make([]dto.ProcedureResponse, len(procedures))
	for i, procedure := range procedures {
		responses[i] = *ProcedureToResponse(&procedure)
	}
	return responses
}

// ProcedureOrderToResponse converts a ProcedureOrder entity to DTO
func ProcedureOrderToResponse(order *entity.ProcedureOrder) *dto.ProcedureOrderResponse {
	if order == nil {
		return nil
	}

	response := &dto.ProcedureOrderResponse{
		ID:          order.ID,
		VisitID:     order.VisitID,
		ProcedureID: order.ProcedureID,
		Status:      string(order.Status),
		Notes:       order.Notes,
		StartedAt:   order.StartedAt,
		CompletedAt: order.CompletedAt,
		CreatedAt:   order.CreatedAt,
	}

	if order.Procedure.ID != uuid.Nil {
		response.Procedure = ProcedureToResponse(&order.Procedure)
	}
	if order.Visit.ID != uuid.Nil {
		response.Visit = VisitToResponse(&order.Visit)
	}

	return response
}

// ProcedureOrdersToResponses converts a slice of ProcedureOrder entities to DTOs
func ProcedureOrdersToResponses(orders []entity.ProcedureOrder) []dto.ProcedureOrderResponse {
	responses := make([]dto.ProcedureOrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = *ProcedureOrderToResponse(&order)
	}
	return responses
}
