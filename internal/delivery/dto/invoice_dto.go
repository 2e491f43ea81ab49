package dto

import (
	"time"

	"github.com/google/uuid"

	"clinic-desk-backend/internal/domain/entity"
)

type CreateInvoiceRequest struct {
	VisitID  uuid.UUID `json:"visit_id" validate:"required"`
	Discount *float64  `json:"discount" validate:"omitempty,gte=0"`
	Tax      *float64  `json:"tax" validate:"omitempty,gte=0"`
}

type AddInvoiceItemRequest struct {
	Description string  `json:"description" validate:"required,max=255"`
	Category    string  `json:"category" validate:"required,oneof=CONSULTATION EMERGENCY LAB IMAGING MEDICINE PROCEDURE OTHER"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type RecordPaymentRequest struct {
	Amount    float64 `json:"amount" validate:"required"`
	Method    string  `json:"method" validate:"required,oneof=CASH CARD BANK_TRANSFER MOBILE_WALLET OTHER"`
	Reference *string `json:"reference" validate:"omitempty,max=100"`
}

type InvoiceItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	LineTotal   float64   `json:"line_total"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentResponse struct {
	ID        uuid.UUID `json:"id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Reference *string   `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ReceiptResponse struct {
	ID            uuid.UUID   `json:"id"`
	InvoiceID     uuid.UUID   `json:"invoice_id"`
	ReceiptNumber string      `json:"receipt_number"`
	Snapshot      entity.JSON `json:"snapshot"`
	CreatedAt     time.Time   `json:"created_at"`
}

type InvoiceResponse struct {
	ID         uuid.UUID             `json:"id"`
	VisitID    uuid.UUID             `json:"visit_id"`
	Status     string                `json:"status"`
	Subtotal   float64               `json:"subtotal"`
	Discount   float64               `json:"discount"`
	Tax        float64               `json:"tax"`
	Total      float64               `json:"total"`
	PaidTotal  float64               `json:"paid_total"`
	BalanceDue float64               `json:"balance_due"`
	IssuedAt   *time.Time            `json:"issued_at,omitempty"`
	VoidedAt   *time.Time            `json:"voided_at,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	Items      []InvoiceItemResponse `json:"items"`
	Payments   []PaymentResponse     `json:"payments"`
	Receipt    *ReceiptResponse      `json:"receipt,omitempty"`
	Visit      *VisitResponse        `json:"visit,omitempty"`
}
