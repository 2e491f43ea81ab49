package converter

import (
	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medicines := make([]dto.PrescriptionMedicineResponse, len(prescription.Medicines))
	for i, medicine := range prescription.Medicines {
		medicines[i] = dto.PrescriptionMedicineResponse{
			ID:           medicine.ID,
			MedicineName: medicine.MedicineName,
			Dosage:       medicine.Dosage,
			Frequency:    medicine.Frequency,
			Duration:     medicine.Duration,
			Instructions: medicine.Instructions,
		}
	}

	return &dto.PrescriptionResponse{
		ID:            prescription.ID,
		VisitID:       prescription.VisitID,
		Diagnosis:     prescription.Diagnosis,
		ClinicalNotes: prescription.ClinicalNotes,
		Medicines:     medicines,
		CreatedAt:     prescription.CreatedAt,
	}
}
