package repository

import (
	"time"

	"clinic-desk-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	// FindByID loads the invoice with items, payments, receipt and the
	// visit's patient/doctor, the full shape the ledger works on.
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	// FindByIDForUpdate is FindByID with the invoice row locked
	// (SELECT ... FOR UPDATE). Ledger mutations read through this so
	// concurrent writers serialize on the row and the items and
	// payments are loaded after the lock is held.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	FindByVisitID(db *gorm.DB, visitID uuid.UUID) (*entity.Invoice, error)
	// UpdateDerived persists the recomputed totals and status in one
	// point write. Only the ledger calls this.
	UpdateDerived(db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	CreateItem(db *gorm.DB, item *entity.InvoiceItem) error
	CreatePayment(db *gorm.DB, payment *entity.PaymentTransaction) error
	FindPaymentsBetween(db *gorm.DB, from, to time.Time) ([]entity.PaymentTransaction, error)
	CreateReceipt(db *gorm.DB, receipt *entity.Receipt) error
	FindReceiptByInvoiceID(db *gorm.DB, invoiceID uuid.UUID) (*entity.Receipt, error)
	CountReceiptsSince(db *gorm.DB, since time.Time) (int64, error)
}
