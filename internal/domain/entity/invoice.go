package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceStatus represents invoice lifecycle states.
// DRAFT/ISSUED/PARTIALLY_PAID/PAID are derived from totals after every
// mutation; VOID is sticky and only ever set explicitly.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "DRAFT"
	InvoiceStatusIssued        InvoiceStatus = "ISSUED"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusVoid          InvoiceStatus = "VOID"
)

// ItemCategory classifies invoice line items
type ItemCategory string

const (
	ItemCategoryConsultation ItemCategory = "CONSULTATION"
	ItemCategoryEmergency    ItemCategory = "EMERGENCY"
	ItemCategoryLab          ItemCategory = "LAB"
	ItemCategoryImaging      ItemCategory = "IMAGING"
	ItemCategoryMedicine     ItemCategory = "MEDICINE"
	ItemCategoryProcedure    ItemCategory = "PROCEDURE"
	ItemCategoryOther        ItemCategory = "OTHER"
)

// PaymentMethod enumerates how a payment was taken
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileWallet PaymentMethod = "MOBILE_WALLET"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// Invoice is the bill for a visit (1:1). Subtotal, Total, PaidTotal,
// BalanceDue and the non-VOID statuses are outputs of the ledger
// recompute and must never be written directly by callers.
type Invoice struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	VisitID    uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"visit_id"`
	Discount   float64       `gorm:"not null;default:0" json:"discount"`
	Tax        float64       `gorm:"not null;default:0" json:"tax"`
	Subtotal   float64       `gorm:"not null;default:0" json:"subtotal"`
	Total      float64       `gorm:"not null;default:0" json:"total"`
	PaidTotal  float64       `gorm:"not null;default:0" json:"paid_total"`
	BalanceDue float64       `gorm:"not null;default:0" json:"balance_due"`
	Status     InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	IssuedAt   *time.Time    `json:"issued_at,omitempty"`
	VoidedAt   *time.Time    `json:"voided_at,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Visit    Visit                `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
	Items    []InvoiceItem        `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments []PaymentTransaction `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
	Receipt  *Receipt             `gorm:"foreignKey:InvoiceID" json:"receipt,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsVoid checks if the invoice was voided
func (i *Invoice) IsVoid() bool {
	return i.Status == InvoiceStatusVoid
}

// InvoiceItem is one billable line. LineTotal = Quantity * UnitPrice,
// rounded to cents at creation.
type InvoiceItem struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string       `gorm:"type:varchar(255);not null" json:"description"`
	Category    ItemCategory `gorm:"type:varchar(20);not null" json:"category"`
	Quantity    int          `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64      `gorm:"not null;default:0" json:"unit_price"`
	LineTotal   float64      `gorm:"not null;default:0" json:"line_total"`
	CreatedAt   time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PaymentTransaction is one payment applied to an invoice
type PaymentTransaction struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID uuid.UUID     `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Method    PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Reference *string       `gorm:"type:varchar(100)" json:"reference,omitempty"`
	CreatedAt time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Receipt is an immutable point-in-time snapshot of an invoice, created
// lazily on first request and never regenerated.
type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"invoice_id"`
	ReceiptNumber string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"receipt_number"`
	Snapshot      JSON      `gorm:"type:jsonb" json:"snapshot"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Receipt) TableName() string {
	return "receipts"
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
