package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-desk-backend/internal/converter"
	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/domain/repository"
	"clinic-desk-backend/internal/service"
	"clinic-desk-backend/pkg/money"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvoiceVoid     = errors.New("invoice has been voided")
	ErrInvalidAmount   = errors.New("amount must be positive")
)

type InvoiceUsecase interface {
	// Create is idempotent per visit: the second call returns the
	// existing invoice with created=false.
	Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, bool, error)
	GetByID(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error)
	AddItem(ctx context.Context, invoiceID uuid.UUID, req *dto.AddInvoiceItemRequest) (*dto.InvoiceResponse, error)
	Issue(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error)
	Void(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error)
	RecordPayment(ctx context.Context, invoiceID uuid.UUID, req *dto.RecordPaymentRequest) (*dto.InvoiceResponse, error)
	// GetOrCreateReceipt freezes the invoice into an immutable snapshot
	// on first call and returns that same snapshot forever after.
	GetOrCreateReceipt(ctx context.Context, invoiceID uuid.UUID) (*dto.ReceiptResponse, error)

	// AppendProcedureCharge is the ledger entry point used by procedure
	// completion; it reports whether the visit had an invoice to bill.
	AppendProcedureCharge(ctx context.Context, visitID uuid.UUID, description string, charge float64) (bool, error)
}

type invoiceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	invoiceRepo repository.InvoiceRepository
	visitRepo   repository.VisitRepository
	sequencer   service.Sequencer
	audit       service.AuditService
	now         func() time.Time
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	visitRepo repository.VisitRepository,
	sequencer service.Sequencer,
	audit service.AuditService,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:          db,
		log:         log,
		invoiceRepo: invoiceRepo,
		visitRepo:   visitRepo,
		sequencer:   sequencer,
		audit:       audit,
		now:         time.Now,
	}
}

// recomputeTotals derives the invoice's monetary fields from its items
// and payments. Every step rounds to cents so repeated recomputation
// never drifts.
func recomputeTotals(items []entity.InvoiceItem, payments []entity.PaymentTransaction, discount, tax float64) (subtotal, total, paidTotal, balanceDue float64) {
	for _, item := range items {
		subtotal += item.LineTotal
	}
	subtotal = money.Round(subtotal)
	total = money.Round(money.Max0(subtotal - discount + tax))

	for _, payment := range payments {
		paidTotal += payment.Amount
	}
	paidTotal = money.Round(paidTotal)
	balanceDue = money.Round(money.Max0(total - paidTotal))
	return subtotal, total, paidTotal, balanceDue
}

// statusFromTotals derives the non-VOID invoice status. VOID is sticky
// and never produced here.
func statusFromTotals(issuedAt *time.Time, total, balanceDue float64) entity.InvoiceStatus {
	switch {
	case issuedAt == nil:
		return entity.InvoiceStatusDraft
	case total <= 0:
		return entity.InvoiceStatusPaid
	case balanceDue <= 0:
		return entity.InvoiceStatusPaid
	case balanceDue < total:
		return entity.InvoiceStatusPartiallyPaid
	default:
		return entity.InvoiceStatusIssued
	}
}

// applyDerived recomputes the invoice in memory and persists the
// derived fields in one point write.
func (u *invoiceUsecase) applyDerived(tx *gorm.DB, invoice *entity.Invoice) error {
	subtotal, total, paidTotal, balanceDue := recomputeTotals(invoice.Items, invoice.Payments, invoice.Discount, invoice.Tax)
	invoice.Subtotal = subtotal
	invoice.Total = total
	invoice.PaidTotal = paidTotal
	invoice.BalanceDue = balanceDue
	if !invoice.IsVoid() {
		invoice.Status = statusFromTotals(invoice.IssuedAt, total, balanceDue)
	}

	return u.invoiceRepo.UpdateDerived(tx, invoice.ID, map[string]interface{}{
		"subtotal":    invoice.Subtotal,
		"total":       invoice.Total,
		"paid_total":  invoice.PaidTotal,
		"balance_due": invoice.BalanceDue,
		"status":      invoice.Status,
		"issued_at":   invoice.IssuedAt,
		"voided_at":   invoice.VoidedAt,
	})
}

func (u *invoiceUsecase) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, bool, error) {
	existing, err := u.invoiceRepo.FindByVisitID(u.db.WithContext(ctx), req.VisitID)
	if err != nil {
		u.log.Warnf("Failed to find invoice for visit %s: %+v", req.VisitID, err)
		return nil, false, err
	}
	if existing != nil {
		return converter.InvoiceToResponse(existing), false, nil
	}

	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), req.VisitID)
	if err != nil {
		u.log.Warnf("Failed to find visit %s: %+v", req.VisitID, err)
		return nil, false, err
	}
	if visit == nil {
		return nil, false, ErrVisitNotFound
	}

	discount := 0.0
	if req.Discount != nil {
		discount = money.Round(*req.Discount)
	}
	tax := 0.0
	if req.Tax != nil {
		tax = money.Round(*req.Tax)
	}

	invoice := &entity.Invoice{
		VisitID:  req.VisitID,
		Discount: discount,
		Tax:      tax,
		Status:   entity.InvoiceStatusDraft,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.invoiceRepo.Create(tx, invoice); err != nil {
			return err
		}

		fee := money.Round(visit.ConsultationFee)
		consultation := &entity.InvoiceItem{
			InvoiceID:   invoice.ID,
			Description: "Consultation fee",
			Category:    entity.ItemCategoryConsultation,
			Quantity:    1,
			UnitPrice:   fee,
			LineTotal:   fee,
		}
		if err := u.invoiceRepo.CreateItem(tx, consultation); err != nil {
			return err
		}
		invoice.Items = append(invoice.Items, *consultation)

		if visit.IsEmergency {
			surcharge := &entity.InvoiceItem{
				InvoiceID:   invoice.ID,
				Description: "Emergency surcharge",
				Category:    entity.ItemCategoryEmergency,
				Quantity:    1,
				UnitPrice:   0,
				LineTotal:   0,
			}
			if err := u.invoiceRepo.CreateItem(tx, surcharge); err != nil {
				return err
			}
			invoice.Items = append(invoice.Items, *surcharge)
		}

		if err := u.applyDerived(tx, invoice); err != nil {
			return err
		}

		u.audit.Record(tx, actorID(ctx), entity.AuditActionInvoiceCreate, entity.JSON{
			"invoice_id": invoice.ID.String(),
			"visit_id":   req.VisitID.String(),
		})
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			// Another request created the visit's invoice first;
			// return theirs.
			winner, findErr := u.invoiceRepo.FindByVisitID(u.db.WithContext(ctx), req.VisitID)
			if findErr == nil && winner != nil {
				return converter.InvoiceToResponse(winner), false, nil
			}
		}
		u.log.Warnf("Failed to create invoice for visit %s: %+v", req.VisitID, err)
		return nil, false, err
	}

	created, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), invoice.ID)
	if err != nil || created == nil {
		u.log.Warnf("Failed to reload invoice %s: %+v", invoice.ID, err)
		return converter.InvoiceToResponse(invoice), true, nil
	}
	return converter.InvoiceToResponse(created), true, nil
}

func (u *invoiceUsecase) GetByID(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice %s: %+v", invoiceID, err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) AddItem(ctx context.Context, invoiceID uuid.UUID, req *dto.AddInvoiceItemRequest) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = u.invoiceRepo.FindByIDForUpdate(tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return ErrInvoiceNotFound
		}
		if invoice.IsVoid() {
			return ErrInvoiceVoid
		}

		quantity := req.Quantity
		if quantity < 1 {
			quantity = 1
		}
		unitPrice := money.Round(req.UnitPrice)

		item := &entity.InvoiceItem{
			InvoiceID:   invoice.ID,
			Description: req.Description,
			Category:    entity.ItemCategory(req.Category),
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			LineTotal:   money.Line(quantity, unitPrice),
		}
		if err := u.invoiceRepo.CreateItem(tx, item); err != nil {
			return err
		}
		invoice.Items = append(invoice.Items, *item)

		if err := u.applyDerived(tx, invoice); err != nil {
			return err
		}

		u.audit.Record(tx, actorID(ctx), entity.AuditActionInvoiceItemAdd, entity.JSON{
			"invoice_id":  invoice.ID.String(),
			"description": req.Description,
			"line_total":  item.LineTotal,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) Issue(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = u.invoiceRepo.FindByIDForUpdate(tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return ErrInvoiceNotFound
		}
		if invoice.IsVoid() {
			return ErrInvoiceVoid
		}

		// Idempotent: re-issuing keeps the original issuedAt.
		if invoice.IssuedAt == nil {
			issuedAt := u.now()
			invoice.IssuedAt = &issuedAt
		}

		if err := u.applyDerived(tx, invoice); err != nil {
			return err
		}

		u.audit.Record(tx, actorID(ctx), entity.AuditActionInvoiceIssue, entity.JSON{
			"invoice_id": invoice.ID.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}

// Void marks the invoice VOID from any state, even PAID. Payments are
// not reversed.
func (u *invoiceUsecase) Void(ctx context.Context, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = u.invoiceRepo.FindByIDForUpdate(tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return ErrInvoiceNotFound
		}
		if invoice.IsVoid() {
			return nil
		}

		voidedAt := u.now()
		invoice.Status = entity.InvoiceStatusVoid
		invoice.VoidedAt = &voidedAt

		if err := u.applyDerived(tx, invoice); err != nil {
			return err
		}

		u.audit.Record(tx, actorID(ctx), entity.AuditActionInvoiceVoid, entity.JSON{
			"invoice_id": invoice.ID.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req *dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	amount := money.Round(req.Amount)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var invoice *entity.Invoice
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		invoice, err = u.invoiceRepo.FindByIDForUpdate(tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return ErrInvoiceNotFound
		}
		if invoice.IsVoid() {
			return ErrInvoiceVoid
		}

		payment := &entity.PaymentTransaction{
			InvoiceID: invoice.ID,
			Amount:    amount,
			Method:    entity.PaymentMethod(req.Method),
			Reference: req.Reference,
		}
		if err := u.invoiceRepo.CreatePayment(tx, payment); err != nil {
			return err
		}
		invoice.Payments = append(invoice.Payments, *payment)

		if err := u.applyDerived(tx, invoice); err != nil {
			return err
		}

		u.audit.Record(tx, actorID(ctx), entity.AuditActionInvoicePayment, entity.JSON{
			"invoice_id": invoice.ID.String(),
			"amount":     amount,
			"method":     req.Method,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) GetOrCreateReceipt(ctx context.Context, invoiceID uuid.UUID) (*dto.ReceiptResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice %s: %+v", invoiceID, err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	if invoice.Receipt != nil {
		return converter.ReceiptToResponse(invoice.Receipt), nil
	}

	now := u.now()
	sequence, err := u.sequencer.NextReceiptSequence(ctx, now)
	if err != nil {
		u.log.Warnf("Failed to allocate receipt sequence: %+v", err)
		return nil, err
	}
	receiptNumber := fmt.Sprintf("R-%s-%04d", now.Format("20060102"), sequence)

	receipt := &entity.Receipt{
		InvoiceID:     invoice.ID,
		ReceiptNumber: receiptNumber,
		Snapshot:      buildReceiptSnapshot(invoice, receiptNumber, now),
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.invoiceRepo.CreateReceipt(tx, receipt); err != nil {
			return err
		}
		u.audit.Record(tx, actorID(ctx), entity.AuditActionReceiptCreate, entity.JSON{
			"invoice_id":     invoice.ID.String(),
			"receipt_number": receiptNumber,
		})
		return nil
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			// Another request created the receipt first; return theirs.
			existing, findErr := u.invoiceRepo.FindReceiptByInvoiceID(u.db.WithContext(ctx), invoiceID)
			if findErr == nil && existing != nil {
				return converter.ReceiptToResponse(existing), nil
			}
		}
		u.log.Warnf("Failed to create receipt for invoice %s: %+v", invoiceID, err)
		return nil, err
	}

	return converter.ReceiptToResponse(receipt), nil
}

// AppendProcedureCharge adds a PROCEDURE line through the regular
// ledger path. Returns false when the visit has no invoice or the
// invoice is void; the caller decides how loudly to complain.
func (u *invoiceUsecase) AppendProcedureCharge(ctx context.Context, visitID uuid.UUID, description string, charge float64) (bool, error) {
	invoice, err := u.invoiceRepo.FindByVisitID(u.db.WithContext(ctx), visitID)
	if err != nil {
		return false, err
	}
	if invoice == nil || invoice.IsVoid() {
		return false, nil
	}

	_, err = u.AddItem(ctx, invoice.ID, &dto.AddInvoiceItemRequest{
		Description: description,
		Category:    string(entity.ItemCategoryProcedure),
		Quantity:    1,
		UnitPrice:   charge,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// buildReceiptSnapshot freezes the invoice, its lines, payments and the
// patient/doctor identity into an opaque blob. The receipt never
// changes after this, no matter what happens to the invoice.
func buildReceiptSnapshot(invoice *entity.Invoice, receiptNumber string, createdAt time.Time) entity.JSON {
	items := make([]map[string]interface{}, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = map[string]interface{}{
			"description": item.Description,
			"category":    string(item.Category),
			"quantity":    item.Quantity,
			"unit_price":  item.UnitPrice,
			"line_total":  item.LineTotal,
		}
	}

	payments := make([]map[string]interface{}, len(invoice.Payments))
	for i, payment := range invoice.Payments {
		payments[i] = map[string]interface{}{
			"amount":    payment.Amount,
			"method":    string(payment.Method),
			"reference": payment.Reference,
			"paid_at":   payment.CreatedAt.Format(time.RFC3339),
		}
	}

	return entity.JSON{
		"receipt_number": receiptNumber,
		"invoice_id":     invoice.ID.String(),
		"visit_id":       invoice.VisitID.String(),
		"patient": map[string]interface{}{
			"id":           invoice.Visit.Patient.ID.String(),
			"patient_code": invoice.Visit.Patient.PatientCode,
			"name":         invoice.Visit.Patient.Name,
		},
		"doctor": map[string]interface{}{
			"id":          invoice.Visit.Doctor.ID.String(),
			"name":        invoice.Visit.Doctor.Name,
			"room_number": invoice.Visit.Doctor.RoomNumber,
		},
		"totals": map[string]interface{}{
			"subtotal":    invoice.Subtotal,
			"discount":    invoice.Discount,
			"tax":         invoice.Tax,
			"total":       invoice.Total,
			"paid_total":  invoice.PaidTotal,
			"balance_due": invoice.BalanceDue,
			"status":      string(invoice.Status),
		},
		"items":      items,
		"payments":   payments,
		"created_at": createdAt.Format(time.RFC3339),
	}
}
