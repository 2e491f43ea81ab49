package converter

import (
	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:          patient.ID,
		PatientCode: patient.PatientCode,
		Name:        patient.Name,
		Age:         patient.Age,
		Gender:      string(patient.Gender),
		Phone:       patient.Phone,
		Address:     patient.Address,
		CreatedAt:   patient.CreatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		responses[i] = *PatientToResponse(&patient)
	}
	return responses
}
