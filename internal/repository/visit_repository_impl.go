package repository

import (
	"errors"
	"time"

	"clinic-desk-backend/internal/domain/entity"
	domainRepo "clinic-desk-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type visitRepository struct{}

func NewVisitRepository() domainRepo.VisitRepository {
	return &visitRepository{}
}

func (r *visitRepository) Create(db *gorm.DB, visit *entity.Visit) error {
	return db.Create(visit).Error
}

func (r *visitRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error) {
	var visit entity.Visit
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&visit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) CountForDoctorSince(db *gorm.DB, doctorID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Visit{}).
		Where("doctor_id = ? AND visit_date >= ?", doctorID, since).
		Count(&count).Error
	return count, err
}

func (r *visitRepository) FindWaitingForDoctorSince(db *gorm.DB, doctorID uuid.UUID, since time.Time) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := db.Preload("Patient").Preload("Doctor").
		Where("doctor_id = ? AND visit_date >= ? AND status = ?", doctorID, since, entity.VisitStatusWaiting).
		Order("is_emergency DESC, token_number ASC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) FindSince(db *gorm.DB, since time.Time) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := db.Preload("Patient").Preload("Doctor").
		Where("visit_date >= ?", since).
		Order("visit_date DESC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) FindBetween(db *gorm.DB, from, to time.Time) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := db.Preload("Doctor").
		Where("visit_date >= ? AND visit_date < ?", from, to).
		Order("visit_date ASC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) FindByPatient(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("visit_date DESC").
		Limit(limit).
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepository) FindByPatientSince(db *gorm.DB, patientID uuid.UUID, since time.Time) ([]entity.Visit, error) {
	var visits []entity.Visit
	err := db.Preload("Doctor").
		Where("patient_id = ? AND visit_date >= ?", patientID, since).
		Order("visit_date DESC").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

// TransitionStatus applies updates only while the visit is still in the
// expected status, so racing transitions cannot double-apply.
func (r *visitRepository) TransitionStatus(db *gorm.DB, id uuid.UUID, from entity.VisitStatus, updates map[string]interface{}) (int64, error) {
	result := db.Model(&entity.Visit{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *visitRepository) UpdateFields(db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	return db.Model(&entity.Visit{}).Where("id = ?", id).Updates(updates).Error
}
