package repository

import (
	"errors"

	"clinic-desk-backend/internal/domain/entity"
	domainRepo "clinic-desk-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type procedureRepository struct{}

func NewProcedureRepository() domainRepo.ProcedureRepository {
	return &procedureRepository{}
}

func (r *procedureRepository) Create(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Create(procedure).Error
}

func (r *procedureRepository) FindAll(db *gorm.DB) ([]entity.Procedure, error) {
	var procedures []entity.Procedure
	err := db.Order("name ASC").Find(&procedures).Error
	if err != nil {
		return nil, err
	}
	return procedures, nil
}

func (r *procedureRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Procedure, error) {
	var procedure entity.Procedure
	err := db.Where("id = ?", id).First(&procedure).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &procedure, nil
}

func (r *procedureRepository) Update(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Save(procedure).Error
}

func (r *procedureRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Procedure{}, "id = ?", id).Error
}
