package usecase

import (
	"context"
	"errors"

	"clinic-desk-backend/internal/converter"
	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPrescriptionNotFound = errors.New("prescription not found")

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetByID(ctx context.Context, prescriptionID uuid.UUID) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	visitRepo        repository.VisitRepository
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	visitRepo repository.VisitRepository,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		visitRepo:        visitRepo,
	}
}

func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), req.VisitID)
	if err != nil {
		u.log.Warnf("Failed to find visit %s: %+v", req.VisitID, err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	medicines := make([]entity.PrescriptionMedicine, len(req.Medicines))
	for i, medicine := range req.Medicines {
		medicines[i] = entity.PrescriptionMedicine{
			MedicineName: medicine.MedicineName,
			Dosage:       medicine.Dosage,
			Frequency:    medicine.Frequency,
			Duration:     medicine.Duration,
			Instructions: medicine.Instructions,
		}
	}

	prescription := &entity.Prescription{
		VisitID:       req.VisitID,
		Diagnosis:     req.Diagnosis,
		ClinicalNotes: req.ClinicalNotes,
		Medicines:     medicines,
	}

	if err := u.prescriptionRepo.Create(u.db.WithContext(ctx), prescription); err != nil {
		u.log.Warnf("Failed to create prescription for visit %s: %+v", req.VisitID, err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetByID(ctx context.Context, prescriptionID uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", prescriptionID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return converter.PrescriptionToResponse(prescription), nil
}
