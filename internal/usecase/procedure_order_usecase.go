package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-desk-backend/internal/converter"
	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/domain/repository"
	"clinic-desk-backend/internal/service"
	"clinic-desk-backend/pkg/money"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProcedureNotFound           = errors.New("procedure not found")
	ErrProcedureOrderNotFound      = errors.New("procedure order not found")
	ErrProcedureOrderInvalidStatus = errors.New("procedure order is not in a valid status for this transition")
	ErrProcedureNotStarted         = errors.New("procedure order has no start time")
)

type ProcedureOrderUsecase interface {
	Create(ctx context.Context, req *dto.CreateProcedureOrderRequest) (*dto.ProcedureOrderResponse, error)
	Start(ctx context.Context, orderID uuid.UUID) (*dto.ProcedureOrderResponse, error)
	// Complete closes a running order, bills the time-based charge to
	// the visit's invoice and leaves an audit trail either way.
	Complete(ctx context.Context, orderID uuid.UUID) (*dto.ProcedureOrderResponse, error)
	ListForVisit(ctx context.Context, visitID uuid.UUID) (*dto.ProcedureOrderListResponse, error)
	ListOngoing(ctx context.Context) (*dto.ProcedureOrderListResponse, error)
	ListRequested(ctx context.Context) (*dto.ProcedureOrderListResponse, error)
}

type procedureOrderUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	orderRepo      repository.ProcedureOrderRepository
	procedureRepo  repository.ProcedureRepository
	visitRepo      repository.VisitRepository
	invoiceUsecase InvoiceUsecase
	audit          service.AuditService
	now            func() time.Time
}

func NewProcedureOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	orderRepo repository.ProcedureOrderRepository,
	procedureRepo repository.ProcedureRepository,
	visitRepo repository.VisitRepository,
	invoiceUsecase InvoiceUsecase,
	audit service.AuditService,
) ProcedureOrderUsecase {
	return &procedureOrderUsecase{
		db:             db,
		log:            log,
		orderRepo:      orderRepo,
		procedureRepo:  procedureRepo,
		visitRepo:      visitRepo,
		invoiceUsecase: invoiceUsecase,
		audit:          audit,
		now:            time.Now,
	}
}

func (u *procedureOrderUsecase) Create(ctx context.Context, req *dto.CreateProcedureOrderRequest) (*dto.ProcedureOrderResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), req.VisitID)
	if err != nil {
		u.log.Warnf("Failed to find visit %s: %+v", req.VisitID, err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	procedure, err := u.procedureRepo.FindByID(u.db.WithContext(ctx), req.ProcedureID)
	if err != nil {
		u.log.Warnf("Failed to find procedure %s: %+v", req.ProcedureID, err)
		return nil, err
	}
	if procedure == nil {
		return nil, ErrProcedureNotFound
	}

	order := &entity.ProcedureOrder{
		VisitID:     req.VisitID,
		ProcedureID: req.ProcedureID,
		Notes:       req.Notes,
		Status:      entity.ProcedureOrderStatusRequested,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.orderRepo.Create(tx, order); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionProcedureOrder, entity.JSON{
			"order_id":     order.ID.String(),
			"visit_id":     req.VisitID.String(),
			"procedure_id": req.ProcedureID.String(),
		})
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to create procedure order: %+v", err)
		return nil, err
	}

	order.Procedure = *procedure
	return converter.ProcedureOrderToResponse(order), nil
}

func (u *procedureOrderUsecase) Start(ctx context.Context, orderID uuid.UUID) (*dto.ProcedureOrderResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to find procedure order %s: %+v", orderID, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrProcedureOrderNotFound
	}
	if order.Status != entity.ProcedureOrderStatusRequested {
		return nil, ErrProcedureOrderInvalidStatus
	}

	startedAt := u.now()
	rows, err := u.orderRepo.TransitionStatus(u.db.WithContext(ctx), orderID, entity.ProcedureOrderStatusRequested, map[string]interface{}{
		"status":     entity.ProcedureOrderStatusInProgress,
		"started_at": startedAt,
	})
	if err != nil {
		u.log.Warnf("Failed to start procedure order %s: %+v", orderID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrProcedureOrderInvalidStatus
	}
	order.Status = entity.ProcedureOrderStatusInProgress
	order.StartedAt = &startedAt

	u.audit.Record(u.db.WithContext(ctx), actorID(ctx), entity.AuditActionProcedureStart, entity.JSON{
		"order_id": order.ID.String(),
	})

	return converter.ProcedureOrderToResponse(order), nil
}

func (u *procedureOrderUsecase) Complete(ctx context.Context, orderID uuid.UUID) (*dto.ProcedureOrderResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to find procedure order %s: %+v", orderID, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrProcedureOrderNotFound
	}
	if order.Status != entity.ProcedureOrderStatusInProgress {
		return nil, ErrProcedureOrderInvalidStatus
	}
	if order.StartedAt == nil {
		return nil, ErrProcedureNotStarted
	}

	completedAt := u.now()
	durationHours := completedAt.Sub(*order.StartedAt).Hours()
	hourlyRate := 0.0
	if order.Procedure.HourlyRate != nil {
		hourlyRate = *order.Procedure.HourlyRate
	}
	charge := money.Round(order.Procedure.DefaultFee + hourlyRate*durationHours)

	rows, err := u.orderRepo.TransitionStatus(u.db.WithContext(ctx), orderID, entity.ProcedureOrderStatusInProgress, map[string]interface{}{
		"status":       entity.ProcedureOrderStatusCompleted,
		"completed_at": completedAt,
	})
	if err != nil {
		u.log.Warnf("Failed to complete procedure order %s: %+v", orderID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrProcedureOrderInvalidStatus
	}
	order.Status = entity.ProcedureOrderStatusCompleted
	order.CompletedAt = &completedAt

	description := fmt.Sprintf("%s - %.2f hours", order.Procedure.Name, durationHours)
	billed, err := u.invoiceUsecase.AppendProcedureCharge(ctx, order.VisitID, description, charge)
	if err != nil {
		u.log.Warnf("Failed to bill procedure order %s: %+v", orderID, err)
		return nil, err
	}
	if !billed {
		// The order is done but the visit has no (live) invoice, so the
		// charge is dropped. Surface it for reconciliation.
		u.log.Warnf("Procedure order %s completed without an invoice; charge %.2f not billed", orderID, charge)
	}

	u.audit.Record(u.db.WithContext(ctx), actorID(ctx), entity.AuditActionProcedureComplete, entity.JSON{
		"order_id":       order.ID.String(),
		"duration_hours": durationHours,
		"charge":         charge,
		"billed":         billed,
	})

	return converter.ProcedureOrderToResponse(order), nil
}

func (u *procedureOrderUsecase) ListForVisit(ctx context.Context, visitID uuid.UUID) (*dto.ProcedureOrderListResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), visitID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	orders, err := u.orderRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		u.log.Warnf("Failed to list procedure orders for visit %s: %+v", visitID, err)
		return nil, err
	}

	return &dto.ProcedureOrderListResponse{
		Orders: converter.ProcedureOrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

func (u *procedureOrderUsecase) ListOngoing(ctx context.Context) (*dto.ProcedureOrderListResponse, error) {
	return u.listByStatus(ctx, entity.ProcedureOrderStatusInProgress)
}

func (u *procedureOrderUsecase) ListRequested(ctx context.Context) (*dto.ProcedureOrderListResponse, error) {
	return u.listByStatus(ctx, entity.ProcedureOrderStatusRequested)
}

func (u *procedureOrderUsecase) listByStatus(ctx context.Context, status entity.ProcedureOrderStatus) (*dto.ProcedureOrderListResponse, error) {
	orders, err := u.orderRepo.FindByStatus(u.db.WithContext(ctx), status)
	if err != nil {
		u.log.Warnf("Failed to list %s procedure orders: %+v", status, err)
		return nil, err
	}

	return &dto.ProcedureOrderListResponse{
		Orders: converter.ProcedureOrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}
