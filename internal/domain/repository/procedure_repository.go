package repository

import (
	"clinic-desk-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcedureRepository interface {
	Create(db *gorm.DB, procedure *entity.Procedure) error
	FindAll(db *gorm.DB) ([]entity.Procedure, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Procedure, error)
	Update(db *gorm.DB, procedure *entity.Procedure) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
