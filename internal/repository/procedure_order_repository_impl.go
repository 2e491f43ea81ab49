package repository

import (
	"errors"

	"clinic-desk-backend/internal/domain/entity"
	domainRepo "clinic-desk-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type procedureOrderRepository struct{}

func NewProcedureOrderRepository() domainRepo.ProcedureOrderRepository {
	return &procedureOrderRepository{}
}

func (r *procedureOrderRepository) Create(db *gorm.DB, order *entity.ProcedureOrder) error {
	return db.Create(order).Error
}

func (r *procedureOrderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ProcedureOrder, error) {
	var order entity.ProcedureOrder
	err := db.Preload("Procedure").Preload("Visit.Patient").Preload("Visit.Doctor").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *procedureOrderRepository) FindByVisitID(db *gorm.DB, visitID uuid.UUID) ([]entity.ProcedureOrder, error) {
	var orders []entity.ProcedureOrder
	err := db.Preload("Procedure").
		Where("visit_id = ?", visitID).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *procedureOrderRepository) FindByStatus(db *gorm.DB, status entity.ProcedureOrderStatus) ([]entity.ProcedureOrder, error) {
	// IN_PROGRESS orders sort by when they started, REQUESTED by when
	// they were ordered.
	sortColumn := "procedure_orders.created_at"
	if status == entity.ProcedureOrderStatusInProgress {
		sortColumn = "procedure_orders.started_at"
	}

	var orders []entity.ProcedureOrder
	err := db.Preload("Procedure").Preload("Visit.Patient").Preload("Visit.Doctor").
		Joins("JOIN visits ON visits.id = procedure_orders.visit_id").
		Where("procedure_orders.status = ?", status).
		Order("visits.is_emergency DESC, " + sortColumn + " ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionStatus applies updates only while the order is still in the
// expected status, so racing transitions cannot double-apply.
func (r *procedureOrderRepository) TransitionStatus(db *gorm.DB, id uuid.UUID, from entity.ProcedureOrderStatus, updates map[string]interface{}) (int64, error) {
	result := db.Model(&entity.ProcedureOrder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}
