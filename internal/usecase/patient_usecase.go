package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-desk-backend/internal/converter"
	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/domain/repository"
	"clinic-desk-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const patientSearchLimit = 20

const patientHistoryLimit = 50

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetByID(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	Search(ctx context.Context, query string) (*dto.PatientListResponse, error)
	// History returns the patient's most recent visits, newest first.
	History(ctx context.Context, patientID uuid.UUID) (*dto.VisitListResponse, error)
	// TodayVisits returns the patient's visits on the current reset-day.
	TodayVisits(ctx context.Context, patientID uuid.UUID) (*dto.VisitListResponse, error)
}

type patientUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	patientRepo    repository.PatientRepository
	visitRepo      repository.VisitRepository
	settingUsecase SettingUsecase
	sequencer      service.Sequencer
	audit          service.AuditService
	now            func() time.Time
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	settingUsecase SettingUsecase,
	sequencer service.Sequencer,
	audit service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:             db,
		log:            log,
		patientRepo:    patientRepo,
		visitRepo:      visitRepo,
		settingUsecase: settingUsecase,
		sequencer:      sequencer,
		audit:          audit,
		now:            time.Now,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	now := u.now()
	sequence, err := u.sequencer.NextPatientSequence(ctx, now)
	if err != nil {
		u.log.Warnf("Failed to allocate patient sequence: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		PatientCode: fmt.Sprintf("P-%s-%04d", now.Format("20060102"), sequence),
		Name:        req.Name,
		Age:         req.Age,
		Gender:      entity.Gender(req.Gender),
		Phone:       req.Phone,
		Address:     req.Address,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.patientRepo.Create(tx, patient); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionPatientCreate, entity.JSON{
			"patient_id":   patient.ID.String(),
			"patient_code": patient.PatientCode,
		})
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByID(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Search(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.Search(u.db.WithContext(ctx), query, patientSearchLimit)
	if err != nil {
		u.log.Warnf("Failed to search patients %q: %+v", query, err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    int64(len(patients)),
		Limit:    patientSearchLimit,
	}, nil
}

func (u *patientUsecase) History(ctx context.Context, patientID uuid.UUID) (*dto.VisitListResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	visits, err := u.visitRepo.FindByPatient(u.db.WithContext(ctx), patientID, patientHistoryLimit)
	if err != nil {
		u.log.Warnf("Failed to load history for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.VisitListResponse{
		Visits: converter.VisitsToResponses(visits),
		Total:  len(visits),
	}, nil
}

func (u *patientUsecase) TodayVisits(ctx context.Context, patientID uuid.UUID) (*dto.VisitListResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	settings, err := u.settingUsecase.Get(ctx)
	if err != nil {
		return nil, err
	}
	boundary := service.ResetBoundary(settings.TokenResetTime, u.now())

	visits, err := u.visitRepo.FindByPatientSince(u.db.WithContext(ctx), patientID, boundary)
	if err != nil {
		u.log.Warnf("Failed to load today's visits for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.VisitListResponse{
		Visits: converter.VisitsToResponses(visits),
		Total:  len(visits),
	}, nil
}
