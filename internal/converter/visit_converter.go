package converter

import (
	"github.com/google/uuid"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
)

// VisitToResponse converts a Visit entity to VisitResponse DTO
func VisitToResponse(visit *entity.Visit) *dto.VisitResponse {
	if visit == nil {
		return nil
	}

	response := &dto.VisitResponse{
		ID:              visit.ID,
		PatientID:       visit.PatientID,
		DoctorID:        visit.DoctorID,
		TokenNumber:     visit.TokenNumber,
		VisitDate:       visit.VisitDate,
		Status:          string(visit.Status),
		IsEmergency:     visit.IsEmergency,
		ConsultationFee: visit.ConsultationFee,
		CompletedAt:     visit.CompletedAt,
	}

	// Include relations only when they were preloaded
	if visit.Patient.ID != uuid.Nil {
		response.Patient = PatientToResponse(&visit.Patient)
	}
	if visit.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&visit.Doctor)
	}

	return response
}

// VisitsToResponses converts a slice of Visit entities to VisitResponse DTOs
func VisitsToResponses(visits []entity.Visit) []dto.VisitResponse {
	responses := make([]dto.VisitResponse, len(visits))
	for i, visit := range visits {
		responses[i] = *VisitToResponse(&visit)
	}
	return responses
}
