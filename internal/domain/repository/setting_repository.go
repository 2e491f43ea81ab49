package repository

import (
	"clinic-desk-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type SettingRepository interface {
	FindAll(db *gorm.DB) ([]entity.Setting, error)
	// Upsert creates or overwrites a setting row by key.
	Upsert(db *gorm.DB, key, value string) error
}
