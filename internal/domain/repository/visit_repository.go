package repository

import (
	"time"

	"clinic-desk-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitRepository interface {
	Create(db *gorm.DB, visit *entity.Visit) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error)
	// CountForDoctorSince counts visits for a doctor anchored on or after
	// the reset boundary; used to seed token allocation.
	CountForDoctorSince(db *gorm.DB, doctorID uuid.UUID, since time.Time) (int64, error)
	// FindWaitingForDoctorSince returns the doctor's live queue:
	// WAITING visits on the current reset-day, emergencies first, then
	// by token number.
	FindWaitingForDoctorSince(db *gorm.DB, doctorID uuid.UUID, since time.Time) ([]entity.Visit, error)
	FindSince(db *gorm.DB, since time.Time) ([]entity.Visit, error)
	FindBetween(db *gorm.DB, from, to time.Time) ([]entity.Visit, error)
	FindByPatient(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Visit, error)
	FindByPatientSince(db *gorm.DB, patientID uuid.UUID, since time.Time) ([]entity.Visit, error)
	// TransitionStatus updates a visit only while it is in the expected
	// status. Returns affected rows: 0 means a concurrent transition won.
	TransitionStatus(db *gorm.DB, id uuid.UUID, from entity.VisitStatus, updates map[string]interface{}) (int64, error)
	UpdateFields(db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}
