package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInvoiceUsecaseForTest(t *testing.T, db *gorm.DB, now time.Time) *invoiceUsecase {
	t.Helper()
	uc := NewInvoiceUsecase(
		db,
		testLogger(),
		repository.NewInvoiceRepository(),
		repository.NewVisitRepository(),
		newFakeSequencer(),
		testAudit(),
	).(*invoiceUsecase)
	uc.now = func() time.Time { return now }
	return uc
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateInvoice_SeedsConsultationLine(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, created, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})

	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Consultation fee", resp.Items[0].Description)
	assert.Equal(t, string(entity.ItemCategoryConsultation), resp.Items[0].Category)
	assert.Equal(t, 150.0, resp.Items[0].LineTotal)
	assert.Equal(t, 150.0, resp.Subtotal)
	assert.Equal(t, 150.0, resp.Total)
	assert.Equal(t, 150.0, resp.BalanceDue)
	assert.Equal(t, string(entity.InvoiceStatusDraft), resp.Status)
}

func TestCreateInvoice_EmergencyAddsZeroSurchargeLine(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, true, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, created, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})

	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Emergency surcharge", resp.Items[1].Description)
	assert.Equal(t, 0.0, resp.Items[1].LineTotal)
	assert.Equal(t, 150.0, resp.Total)
}

func TestCreateInvoice_IdempotentPerVisit(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	first, created, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{
		VisitID:  visit.ID,
		Discount: floatPtr(999),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	// The second call's discount must not touch the existing invoice.
	assert.Equal(t, 0.0, second.Discount)
}

func TestCreateInvoice_VisitNotFound(t *testing.T) {
	db := newTestDB(t)
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	_, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: uuid.New()})

	assert.ErrorIs(t, err, ErrVisitNotFound)
}

func TestAddItem_RecomputesTotalsWithDiscountAndTax(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{
		VisitID:  visit.ID,
		Discount: floatPtr(20),
		Tax:      floatPtr(5),
	})
	require.NoError(t, err)

	resp, err = uc.AddItem(context.Background(), resp.ID, &dto.AddInvoiceItemRequest{
		Description: "Blood panel",
		Category:    string(entity.ItemCategoryLab),
		Quantity:    2,
		UnitPrice:   30,
	})
	require.NoError(t, err)

	assert.Equal(t, 160.0, resp.Subtotal)
	// subtotal - discount + tax
	assert.Equal(t, 145.0, resp.Total)
	assert.Equal(t, 145.0, resp.BalanceDue)
}

func TestAddItem_ClampsQuantityToOne(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)

	resp, err = uc.AddItem(context.Background(), resp.ID, &dto.AddInvoiceItemRequest{
		Description: "Dressing",
		Category:    string(entity.ItemCategoryOther),
		Quantity:    0,
		UnitPrice:   12.5,
	})
	require.NoError(t, err)

	item := resp.Items[len(resp.Items)-1]
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 12.5, item.LineTotal)
}

func TestIssue_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	issuedAt := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	uc := newInvoiceUsecaseForTest(t, db, issuedAt)

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)

	first, err := uc.Issue(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, first.IssuedAt)
	assert.Equal(t, string(entity.InvoiceStatusIssued), first.Status)

	uc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	second, err := uc.Issue(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, first.IssuedAt.Unix(), second.IssuedAt.Unix())
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)
	resp, err = uc.Issue(context.Background(), resp.ID)
	require.NoError(t, err)

	resp, err = uc.RecordPayment(context.Background(), resp.ID, &dto.RecordPaymentRequest{
		Amount: 40,
		Method: string(entity.PaymentMethodCash),
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, resp.PaidTotal)
	assert.Equal(t, 60.0, resp.BalanceDue)
	assert.Equal(t, string(entity.InvoiceStatusPartiallyPaid), resp.Status)

	resp, err = uc.RecordPayment(context.Background(), resp.ID, &dto.RecordPaymentRequest{
		Amount: 60,
		Method: string(entity.PaymentMethodCard),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.PaidTotal)
	assert.Equal(t, 0.0, resp.BalanceDue)
	assert.Equal(t, string(entity.InvoiceStatusPaid), resp.Status)
}

func TestRecordPayment_OverpaymentClampsBalanceToZero(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)
	resp, err = uc.Issue(context.Background(), resp.ID)
	require.NoError(t, err)

	resp, err = uc.RecordPayment(context.Background(), resp.ID, &dto.RecordPaymentRequest{
		Amount: 150,
		Method: string(entity.PaymentMethodCash),
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, resp.PaidTotal)
	assert.Equal(t, 0.0, resp.BalanceDue)
	assert.Equal(t, string(entity.InvoiceStatusPaid), resp.Status)
}

func TestRecordPayment_RejectsNonPositiveAmounts(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)

	for _, amount := range []float64{0, -10, 0.001} {
		_, err = uc.RecordPayment(context.Background(), resp.ID, &dto.RecordPaymentRequest{
			Amount: amount,
			Method: string(entity.PaymentMethodCash),
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amount)
	}
}

func TestVoid_IsStickyAndBlocksMutations(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)

	voided, err := uc.Void(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.InvoiceStatusVoid), voided.Status)
	require.NotNil(t, voided.VoidedAt)

	// Voiding again is a no-op.
	again, err := uc.Void(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, voided.VoidedAt.Unix(), again.VoidedAt.Unix())

	_, err = uc.AddItem(context.Background(), resp.ID, &dto.AddInvoiceItemRequest{
		Description: "Late charge",
		Category:    string(entity.ItemCategoryOther),
		Quantity:    1,
		UnitPrice:   10,
	})
	assert.ErrorIs(t, err, ErrInvoiceVoid)

	_, err = uc.RecordPayment(context.Background(), resp.ID, &dto.RecordPaymentRequest{
		Amount: 10,
		Method: string(entity.PaymentMethodCash),
	})
	assert.ErrorIs(t, err, ErrInvoiceVoid)

	_, err = uc.Issue(context.Background(), resp.ID)
	assert.ErrorIs(t, err, ErrInvoiceVoid)
}

func TestGetOrCreateReceipt_NumberFormatAndImmutability(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	uc := newInvoiceUsecaseForTest(t, db, now)

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)
	_, err = uc.Issue(context.Background(), resp.ID)
	require.NoError(t, err)

	receipt, err := uc.GetOrCreateReceipt(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "R-20250310-0001", receipt.ReceiptNumber)
	assert.Equal(t, 100.0, receipt.Snapshot["totals"].(map[string]interface{})["total"])

	// Mutate the invoice after the receipt exists.
	_, err = uc.RecordPayment(context.Background(), resp.ID, &dto.RecordPaymentRequest{
		Amount: 100,
		Method: string(entity.PaymentMethodCash),
	})
	require.NoError(t, err)

	again, err := uc.GetOrCreateReceipt(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.ReceiptNumber, again.ReceiptNumber)
	// The snapshot still shows the pre-payment state.
	assert.Equal(t, 0.0, again.Snapshot["totals"].(map[string]interface{})["paid_total"])
}

func TestAppendProcedureCharge_NoInvoiceReportsUnbilled(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	billed, err := uc.AppendProcedureCharge(context.Background(), visit.ID, "X-Ray - 0.50 hours", 80)
	require.NoError(t, err)
	assert.False(t, billed)
}

func TestAppendProcedureCharge_VoidInvoiceReportsUnbilled(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)
	_, err = uc.Void(context.Background(), resp.ID)
	require.NoError(t, err)

	billed, err := uc.AppendProcedureCharge(context.Background(), visit.ID, "X-Ray - 0.50 hours", 80)
	require.NoError(t, err)
	assert.False(t, billed)
}

func TestStatusFromTotals(t *testing.T) {
	issued := time.Now()

	tests := []struct {
		name       string
		issuedAt   *time.Time
		total      float64
		balanceDue float64
		expected   entity.InvoiceStatus
	}{
		{"unissued stays draft", nil, 100, 100, entity.InvoiceStatusDraft},
		{"zero-total issued is paid", &issued, 0, 0, entity.InvoiceStatusPaid},
		{"settled balance is paid", &issued, 100, 0, entity.InvoiceStatusPaid},
		{"partial balance is partially paid", &issued, 100, 40, entity.InvoiceStatusPartiallyPaid},
		{"untouched balance is issued", &issued, 100, 100, entity.InvoiceStatusIssued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFromTotals(tt.issuedAt, tt.total, tt.balanceDue))
		})
	}
}

func TestRecomputeTotals_RoundsEveryStep(t *testing.T) {
	items := []entity.InvoiceItem{
		{LineTotal: 0.1},
		{LineTotal: 0.2},
	}
	payments := []entity.PaymentTransaction{{Amount: 0.1}}

	subtotal, total, paidTotal, balanceDue := recomputeTotals(items, payments, 0, 0)

	assert.Equal(t, 0.3, subtotal)
	assert.Equal(t, 0.3, total)
	assert.Equal(t, 0.1, paidTotal)
	assert.Equal(t, 0.2, balanceDue)
}

func TestRecomputeTotals_DiscountCannotGoNegative(t *testing.T) {
	items := []entity.InvoiceItem{{LineTotal: 50}}

	_, total, _, balanceDue := recomputeTotals(items, nil, 80, 0)

	assert.Equal(t, 0.0, total)
	assert.Equal(t, 0.0, balanceDue)
}

func TestCreateInvoice_DuplicateVisitReturnsExisting(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	// Slip a rival invoice in between the existence check and the
	// insert, the way a concurrent request would.
	rival := &entity.Invoice{VisitID: visit.ID, Status: entity.InvoiceStatusDraft}
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("rival_invoice_once", func(d *gorm.DB) {
		if raced {
			return
		}
		if _, ok := d.Statement.Dest.(*entity.Invoice); !ok {
			return
		}
		raced = true
		require.NoError(t, db.Create(rival).Error)
	})
	require.NoError(t, err)

	resp, created, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})

	require.NoError(t, err)
	require.True(t, raced)
	assert.False(t, created)
	assert.Equal(t, rival.ID, resp.ID)

	var count int64
	require.NoError(t, db.Model(&entity.Invoice{}).Where("visit_id = ?", visit.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItem_IncludesLinesCommittedByOtherWriters(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newInvoiceUsecaseForTest(t, db, time.Now())

	resp, _, err := uc.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)

	// A line another writer committed after our caller last saw the
	// invoice must be part of the recomputed totals.
	rivalItem := &entity.InvoiceItem{
		InvoiceID:   resp.ID,
		Description: "Dressing kit",
		Category:    entity.ItemCategoryOther,
		Quantity:    1,
		UnitPrice:   25.0,
		LineTotal:   25.0,
	}
	require.NoError(t, db.Create(rivalItem).Error)

	updated, err := uc.AddItem(context.Background(), resp.ID, &dto.AddInvoiceItemRequest{
		Description: "Bandage",
		Category:    string(entity.ItemCategoryMedicine),
		Quantity:    1,
		UnitPrice:   10.0,
	})

	require.NoError(t, err)
	require.Len(t, updated.Items, 3)
	assert.Equal(t, 185.0, updated.Subtotal)
	assert.Equal(t, 185.0, updated.Total)
	assert.Equal(t, 185.0, updated.BalanceDue)
}
