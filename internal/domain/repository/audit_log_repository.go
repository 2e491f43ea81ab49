package repository

import (
	"clinic-desk-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	List(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error)
}
