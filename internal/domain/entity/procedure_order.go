package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcedureOrderStatus represents a procedure order's lifecycle state
type ProcedureOrderStatus string

const (
	ProcedureOrderStatusRequested  ProcedureOrderStatus = "REQUESTED"
	ProcedureOrderStatusInProgress ProcedureOrderStatus = "IN_PROGRESS"
	ProcedureOrderStatusCompleted  ProcedureOrderStatus = "COMPLETED"
)

// ProcedureOrder is one procedure requested against a visit.
// StartedAt is set only on REQUESTED -> IN_PROGRESS; CompletedAt only
// on IN_PROGRESS -> COMPLETED.
type ProcedureOrder struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	VisitID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"visit_id"`
	ProcedureID uuid.UUID            `gorm:"type:uuid;not null;index" json:"procedure_id"`
	Notes       *string              `gorm:"type:text" json:"notes,omitempty"`
	Status      ProcedureOrderStatus `gorm:"type:varchar(20);not null;default:'REQUESTED';index" json:"status"`
	StartedAt   *time.Time           `json:"started_at,omitempty"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	CreatedAt   time.Time            `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Visit     Visit     `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
	Procedure Procedure `gorm:"foreignKey:ProcedureID" json:"procedure,omitempty"`
}

func (ProcedureOrder) TableName() string {
	return "procedure_orders"
}

func (o *ProcedureOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
