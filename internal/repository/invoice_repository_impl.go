package repository

import (
	"errors"
	"time"

	"clinic-desk-backend/internal/domain/entity"
	domainRepo "clinic-desk-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func invoicePreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("invoice_items.created_at ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_transactions.created_at ASC") }).
		Preload("Receipt").
		Preload("Visit.Patient").
		Preload("Visit.Doctor")
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Create(invoice).Error
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := invoicePreloads(db).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := invoicePreloads(db.Clauses(clause.Locking{Strength: "UPDATE"})).Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByVisitID(db *gorm.DB, visitID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := invoicePreloads(db).Where("visit_id = ?", visitID).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) UpdateDerived(db *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	return db.Model(&entity.Invoice{}).Where("id = ?", id).Updates(updates).Error
}

func (r *invoiceRepository) CreateItem(db *gorm.DB, item *entity.InvoiceItem) error {
	return db.Create(item).Error
}

func (r *invoiceRepository) CreatePayment(db *gorm.DB, payment *entity.PaymentTransaction) error {
	return db.Create(payment).Error
}

func (r *invoiceRepository) FindPaymentsBetween(db *gorm.DB, from, to time.Time) ([]entity.PaymentTransaction, error) {
	var payments []entity.PaymentTransaction
	err := db.
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *invoiceRepository) CreateReceipt(db *gorm.DB, receipt *entity.Receipt) error {
	return db.Create(receipt).Error
}

func (r *invoiceRepository) FindReceiptByInvoiceID(db *gorm.DB, invoiceID uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := db.Where("invoice_id = ?", invoiceID).First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &receipt, nil
}

func (r *invoiceRepository) CountReceiptsSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Receipt{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
