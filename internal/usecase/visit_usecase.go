package usecase

import (
	"context"
	"errors"
	"math"
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

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrVisitNotFound      = errors.New("visit not found")
	ErrVisitInvalidStatus = errors.New("visit is not in a valid status for this transition")
)

// Event payloads fanned out by the visit lifecycle
type queueUpdatePayload struct {
	DoctorID     uuid.UUID `json:"doctor_id"`
	CurrentToken int       `json:"current_token"`
	RoomNumber   string    `json:"room_number"`
}

type emergencyActivePayload struct {
	Active      bool      `json:"active"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	TokenNumber int       `json:"token_number"`
	PatientName string    `json:"patient_name"`
	RoomNumber  string    `json:"room_number"`
}

type queueRefreshPayload struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

type VisitUsecase interface {
	Create(ctx context.Context, req *dto.CreateVisitRequest) (*dto.VisitResponse, error)
	// Call transitions a WAITING visit into consultation and announces
	// the new current token.
	Call(ctx context.Context, visitID uuid.UUID) (*dto.VisitResponse, error)
	// Complete closes a visit from any state; skip-ahead corrections by
	// the desk are allowed on purpose.
	Complete(ctx context.Context, visitID uuid.UUID) (*dto.VisitResponse, error)
	GetByID(ctx context.Context, visitID uuid.UUID) (*dto.VisitResponse, error)
	TodayVisits(ctx context.Context) (*dto.VisitListResponse, error)
	DoctorQueue(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorQueueResponse, error)
}

type visitUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	visitRepo      repository.VisitRepository
	patientRepo    repository.PatientRepository
	doctorRepo     repository.DoctorRepository
	settingUsecase SettingUsecase
	sequencer      service.Sequencer
	notifier       service.Notifier
	audit          service.AuditService
	now            func() time.Time
}

func NewVisitUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitRepo repository.VisitRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	settingUsecase SettingUsecase,
	sequencer service.Sequencer,
	notifier service.Notifier,
	audit service.AuditService,
) VisitUsecase {
	return &visitUsecase{
		db:             db,
		log:            log,
		visitRepo:      visitRepo,
		patientRepo:    patientRepo,
		doctorRepo:     doctorRepo,
		settingUsecase: settingUsecase,
		sequencer:      sequencer,
		notifier:       notifier,
		audit:          audit,
		now:            time.Now,
	}
}

func (u *visitUsecase) Create(ctx context.Context, req *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	settings, err := u.settingUsecase.Get(ctx)
	if err != nil {
		return nil, err
	}
	boundary := service.ResetBoundary(settings.TokenResetTime, u.now())

	tokenNumber, err := u.sequencer.NextTokenNumber(ctx, req.DoctorID, boundary)
	if err != nil {
		u.log.Warnf("Failed to allocate token for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}

	visit := &entity.Visit{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		TokenNumber:     tokenNumber,
		VisitDate:       u.now(),
		Status:          entity.VisitStatusWaiting,
		IsEmergency:     req.IsEmergency,
		ConsultationFee: doctor.ConsultationFee,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.visitRepo.Create(tx, visit); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionVisitCreate, entity.JSON{
			"visit_id":     visit.ID.String(),
			"doctor_id":    req.DoctorID.String(),
			"patient_id":   req.PatientID.String(),
			"token_number": tokenNumber,
			"is_emergency": req.IsEmergency,
		})
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to create visit: %+v", err)
		return nil, err
	}

	visit.Patient = *patient
	visit.Doctor = *doctor

	if visit.IsEmergency {
		u.broadcastEmergency(ctx, visit, true)
	}
	u.broadcastQueueRefresh(ctx, visit.DoctorID)

	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) Call(ctx context.Context, visitID uuid.UUID) (*dto.VisitResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find visit %s: %+v", visitID, err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}
	if visit.Status != entity.VisitStatusWaiting {
		return nil, ErrVisitInvalidStatus
	}

	rows, err := u.visitRepo.TransitionStatus(u.db.WithContext(ctx), visitID, entity.VisitStatusWaiting, map[string]interface{}{
		"status": entity.VisitStatusInConsultation,
	})
	if err != nil {
		u.log.Warnf("Failed to call visit %s: %+v", visitID, err)
		return nil, err
	}
	if rows == 0 {
		// Another desk won the transition between our read and write.
		return nil, ErrVisitInvalidStatus
	}
	visit.Status = entity.VisitStatusInConsultation

	u.audit.Record(u.db.WithContext(ctx), actorID(ctx), entity.AuditActionVisitCall, entity.JSON{
		"visit_id":     visit.ID.String(),
		"doctor_id":    visit.DoctorID.String(),
		"token_number": visit.TokenNumber,
	})

	update := queueUpdatePayload{
		DoctorID:     visit.DoctorID,
		CurrentToken: visit.TokenNumber,
		RoomNumber:   visit.Doctor.RoomNumber,
	}
	u.notifier.Broadcast(ctx, service.TopicQueueUpdate, update)
	u.notifier.BroadcastToRoom(ctx, service.DoctorRoom(visit.DoctorID), service.TopicQueueUpdate, update)
	u.notifier.BroadcastToRoom(ctx, service.RoomDisplay, service.TopicQueueUpdate, update)

	if visit.IsEmergency {
		u.broadcastEmergency(ctx, visit, true)
	}
	u.broadcastQueueRefresh(ctx, visit.DoctorID)

	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) Complete(ctx context.Context, visitID uuid.UUID) (*dto.VisitResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find visit %s: %+v", visitID, err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	// Idempotent: re-completing keeps the original completedAt.
	if visit.Status == entity.VisitStatusCompleted {
		return converter.VisitToResponse(visit), nil
	}

	completedAt := u.now()
	err = u.visitRepo.UpdateFields(u.db.WithContext(ctx), visitID, map[string]interface{}{
		"status":       entity.VisitStatusCompleted,
		"completed_at": completedAt,
	})
	if err != nil {
		u.log.Warnf("Failed to complete visit %s: %+v", visitID, err)
		return nil, err
	}
	visit.Status = entity.VisitStatusCompleted
	visit.CompletedAt = &completedAt

	u.audit.Record(u.db.WithContext(ctx), actorID(ctx), entity.AuditActionVisitComplete, entity.JSON{
		"visit_id":  visit.ID.String(),
		"doctor_id": visit.DoctorID.String(),
	})

	if visit.IsEmergency {
		u.broadcastEmergency(ctx, visit, false)
	}
	u.broadcastQueueRefresh(ctx, visit.DoctorID)

	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) GetByID(ctx context.Context, visitID uuid.UUID) (*dto.VisitResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to find visit %s: %+v", visitID, err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}
	return converter.VisitToResponse(visit), nil
}

// TodayVisits lists all visits since the current reset boundary, newest
// first.
func (u *visitUsecase) TodayVisits(ctx context.Context) (*dto.VisitListResponse, error) {
	settings, err := u.settingUsecase.Get(ctx)
	if err != nil {
		return nil, err
	}
	boundary := service.ResetBoundary(settings.TokenResetTime, u.now())

	visits, err := u.visitRepo.FindSince(u.db.WithContext(ctx), boundary)
	if err != nil {
		u.log.Warnf("Failed to list today's visits: %+v", err)
		return nil, err
	}

	return &dto.VisitListResponse{
		Visits: converter.VisitsToResponses(visits),
		Total:  len(visits),
	}, nil
}

// DoctorQueue returns the doctor's live WAITING queue, emergencies
// first, each entry annotated with minutes waited.
func (u *visitUsecase) DoctorQueue(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorQueueResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	settings, err := u.settingUsecase.Get(ctx)
	if err != nil {
		return nil, err
	}
	boundary := service.ResetBoundary(settings.TokenResetTime, u.now())

	visits, err := u.visitRepo.FindWaitingForDoctorSince(u.db.WithContext(ctx), doctorID, boundary)
	if err != nil {
		u.log.Warnf("Failed to load queue for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	now := u.now()
	queue := make([]dto.DoctorQueueEntry, len(visits))
	for i, visit := range visits {
		queue[i] = dto.DoctorQueueEntry{
			VisitResponse: *converter.VisitToResponse(&visit),
			TimeWaiting:   minutesWaiting(visit.VisitDate, now),
		}
	}

	return &dto.DoctorQueueResponse{
		DoctorID: doctorID,
		Queue:    queue,
		Total:    len(queue),
	}, nil
}

// minutesWaiting is the rounded whole minutes since check-in, floored
// at zero for clock skew.
func minutesWaiting(visitDate, now time.Time) int {
	minutes := int(math.Round(now.Sub(visitDate).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}

func (u *visitUsecase) broadcastEmergency(ctx context.Context, visit *entity.Visit, active bool) {
	payload := emergencyActivePayload{
		Active:      active,
		DoctorID:    visit.DoctorID,
		TokenNumber: visit.TokenNumber,
		PatientName: visit.Patient.Name,
		RoomNumber:  visit.Doctor.RoomNumber,
	}
	u.notifier.Broadcast(ctx, service.TopicEmergencyActive, payload)
	u.notifier.BroadcastToRoom(ctx, service.DoctorRoom(visit.DoctorID), service.TopicEmergencyActive, payload)
	u.notifier.BroadcastToRoom(ctx, service.RoomDisplay, service.TopicEmergencyActive, payload)
}

func (u *visitUsecase) broadcastQueueRefresh(ctx context.Context, doctorID uuid.UUID) {
	payload := queueRefreshPayload{DoctorID: doctorID}
	u.notifier.Broadcast(ctx, service.TopicQueueRefresh, payload)
	u.notifier.BroadcastToRoom(ctx, service.DoctorRoom(doctorID), service.TopicQueueRefresh, payload)
}
