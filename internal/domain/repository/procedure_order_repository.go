package repository

import (
	"clinic-desk-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcedureOrderRepository interface {
	Create(db *gorm.DB, order *entity.ProcedureOrder) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ProcedureOrder, error)
	FindByVisitID(db *gorm.DB, visitID uuid.UUID) ([]entity.ProcedureOrder, error)
	// FindByStatus lists orders in a status, procedures for emergency
	// visits first, oldest first within each group.
	FindByStatus(db *gorm.DB, status entity.ProcedureOrderStatus) ([]entity.ProcedureOrder, error)
	// TransitionStatus updates an order only while it is in the expected
	// status. Returns affected rows: 0 means a concurrent transition won.
	TransitionStatus(db *gorm.DB, id uuid.UUID, from entity.ProcedureOrderStatus, updates map[string]interface{}) (int64, error)
}
