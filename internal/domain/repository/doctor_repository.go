package repository

import (
	"clinic-desk-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
}
