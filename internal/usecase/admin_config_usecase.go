package usecase

import (
	"context"
	"errors"

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
	ErrRoomNotFound = errors.New("room not found")
	ErrCodeConflict = errors.New("code is already in use")
)

// AdminConfigUsecase covers the reference data only admins may touch:
// doctor profiles, rooms and the procedure catalog.
type AdminConfigUsecase interface {
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)

	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID uuid.UUID, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID uuid.UUID) error

	CreateProcedure(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.ProcedureResponse, error)
	ListProcedures(ctx context.Context) ([]dto.ProcedureResponse, error)
	UpdateProcedure(ctx context.Context, procedureID uuid.UUID, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error)
	DeleteProcedure(ctx context.Context, procedureID uuid.UUID) error
}

type adminConfigUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	doctorRepo    repository.DoctorRepository
	roomRepo      repository.RoomRepository
	procedureRepo repository.ProcedureRepository
	audit         service.AuditService
}

func NewAdminConfigUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	roomRepo repository.RoomRepository,
	procedureRepo repository.ProcedureRepository,
	audit service.AuditService,
) AdminConfigUsecase {
	return &adminConfigUsecase{
		db:            db,
		log:           log,
		doctorRepo:    doctorRepo,
		roomRepo:      roomRepo,
		procedureRepo: procedureRepo,
		audit:         audit,
	}
}

func (u *adminConfigUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.RoomNumber != nil {
		doctor.RoomNumber = *req.RoomNumber
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.doctorRepo.Update(tx, doctor); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionConfigChange, entity.JSON{
			"entity":    "doctor",
			"doctor_id": doctorID.String(),
		})
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *adminConfigUsecase) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	room := &entity.Room{
		Code:   req.Code,
		Name:   req.Name,
		Floor:  req.Floor,
		Status: entity.RoomStatusActive,
	}
	if req.Status != "" {
		room.Status = entity.RoomStatus(req.Status)
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.roomRepo.Create(tx, room); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionConfigChange, entity.JSON{
			"entity":  "room",
			"room_id": room.ID.String(),
			"code":    room.Code,
		})
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCodeConflict
		}
		u.log.Warnf("Failed to create room: %+v", err)
		return nil, err
	}

	return converter.RoomToResponse(room), nil
}

func (u *adminConfigUsecase) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := u.roomRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list rooms: %+v", err)
		return nil, err
	}
	return converter.RoomsToResponses(rooms), nil
}

func (u *adminConfigUsecase) UpdateRoom(ctx context.Context, roomID uuid.UUID, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	room, err := u.roomRepo.FindByID(u.db.WithContext(ctx), roomID)
	if err != nil {
		u.log.Warnf("Failed to find room %s: %+v", roomID, err)
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	if req.Code != nil {
		room.Code = *req.Code
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Floor != nil {
		room.Floor = req.Floor
	}
	if req.Status != nil {
		room.Status = entity.RoomStatus(*req.Status)
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.roomRepo.Update(tx, room); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionConfigChange, entity.JSON{
			"entity":  "room",
			"room_id": roomID.String(),
		})
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCodeConflict
		}
		u.log.Warnf("Failed to update room %s: %+v", roomID, err)
		return nil, err
	}

	return converter.RoomToResponse(room), nil
}

func (u *adminConfigUsecase) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	room, err := u.roomRepo.FindByID(u.db.WithContext(ctx), roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.roomRepo.Delete(tx, roomID); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionConfigChange, entity.JSON{
			"entity":  "room",
			"room_id": roomID.String(),
			"deleted": true,
		})
		return nil
	})
}

func (u *adminConfigUsecase) CreateProcedure(ctx context.Context, req *dto.CreateProcedureRequest) (*dto.ProcedureResponse, error) {
	procedure := &entity.Procedure{
		Code:       req.Code,
		Name:       req.Name,
		Department: req.Department,
		DefaultFee: req.DefaultFee,
		HourlyRate: req.HourlyRate,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.procedureRepo.Create(tx, procedure); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionConfigChange, entity.JSON{
			"entity":       "procedure",
			"procedure_id": procedure.ID.String(),
			"code":         procedure.Code,
		})
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCodeConflict
		}
		u.log.Warnf("Failed to create procedure: %+v", err)
		return nil, err
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *adminConfigUsecase) ListProcedures(ctx context.Context) ([]dto.ProcedureResponse, error) {
	procedures, err := u.procedureRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list procedures: %+v", err)
		return nil, err
	}
	return converter.ProceduresToResponses(procedures), nil
}

func (u *adminConfigUsecase) UpdateProcedure(ctx context.Context, procedureID uuid.UUID, req *dto.UpdateProcedureRequest) (*dto.ProcedureResponse, error) {
	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), procedureID)
	if err != nil {
		u.log.Warnf("Failed to find procedure %s: %+v", procedureID, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	if req.Code != nil {
		procedure.Code = *req.Code
	}
	if req.Name != nil {
		procedure.Name = *req.Name
	}
	if req.Department != nil {
		procedure.Department = req.Department
	}
	if req.DefaultFee != nil {
		procedure.DefaultFee = *req.DefaultFee
	}
	if req.HourlyRate != nil {
		procedure.HourlyRate = req.HourlyRate
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.procedureRepo.Update(tx, procedure); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionConfigChange, entity.JSON{
			"entity":       "procedure",
			"procedure_id": procedureID.String(),
		})
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCodeConflict
		}
		u.log.Warnf("Failed to update procedure %s: %+v", procedureID, err)
		return nil, err
	}

	return converter.ProcedureToResponse(procedure), nil
}

func (u *adminConfigUsecase) DeleteProcedure(ctx context.Context, procedureID uuid.UUID) error {
	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), procedureID)
	if err != nil {
		return err
	}
	if procedure == nil {
		return ErrProcedureNotFound
	}

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.procedureRepo.Delete(tx, procedureID); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionConfigChange, entity.JSON{
			"entity":       "procedure",
			"procedure_id": procedureID.String(),
			"deleted":      true,
		})
		return nil
	})
}
