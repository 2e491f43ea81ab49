package repository

import (
	"time"

	"clinic-desk-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	Search(db *gorm.DB, query string, limit int) ([]entity.Patient, error)
	Count(db *gorm.DB) (int64, error)
	CountCreatedSince(db *gorm.DB, since time.Time) (int64, error)
}
