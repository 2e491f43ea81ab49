package repository

import (
	"errors"
	"time"

	"clinic-desk-backend/internal/domain/entity"
	domainRepo "clinic-desk-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

// Search matches the exact patient code or phone, or a partial name.
func (r *patientRepository) Search(db *gorm.DB, query string, limit int) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.
		Where("patient_code = ? OR phone = ? OR LOWER(name) LIKE LOWER(?)", query, query, "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Count(&count).Error
	return count, err
}

func (r *patientRepository) CountCreatedSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
