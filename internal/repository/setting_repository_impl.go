package repository

import (
	"clinic-desk-backend/internal/domain/entity"
	domainRepo "clinic-desk-backend/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingRepository struct{}

func NewSettingRepository() domainRepo.SettingRepository {
	return &settingRepository{}
}

func (r *settingRepository) FindAll(db *gorm.DB) ([]entity.Setting, error) {
	var settings []entity.Setting
	err := db.Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepository) Upsert(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entity.Setting{Key: key, Value: value}).Error
}
