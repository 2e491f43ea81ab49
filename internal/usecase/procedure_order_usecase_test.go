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

type procedureTestEnv struct {
	db      *gorm.DB
	orders  *procedureOrderUsecase
	invoice *invoiceUsecase
	visit   *entity.Visit
}

func newProcedureTestEnv(t *testing.T, now time.Time, hourlyRate *float64) (*procedureTestEnv, *entity.Procedure) {
	t.Helper()
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, now)

	procedure := &entity.Procedure{
		Code:       "XR-01",
		Name:       "X-Ray",
		DefaultFee: 100,
		HourlyRate: hourlyRate,
	}
	require.NoError(t, db.Create(procedure).Error)

	invoiceUC := newInvoiceUsecaseForTest(t, db, now)
	ordersUC := NewProcedureOrderUsecase(
		db,
		testLogger(),
		repository.NewProcedureOrderRepository(),
		repository.NewProcedureRepository(),
		repository.NewVisitRepository(),
		invoiceUC,
		testAudit(),
	).(*procedureOrderUsecase)
	ordersUC.now = func() time.Time { return now }

	return &procedureTestEnv{db: db, orders: ordersUC, invoice: invoiceUC, visit: visit}, procedure
}

func TestProcedureOrder_Lifecycle(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	env, procedure := newProcedureTestEnv(t, start, nil)

	order, err := env.orders.Create(context.Background(), &dto.CreateProcedureOrderRequest{
		VisitID:     env.visit.ID,
		ProcedureID: procedure.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProcedureOrderStatusRequested), order.Status)

	started, err := env.orders.Start(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProcedureOrderStatusInProgress), started.Status)
	require.NotNil(t, started.StartedAt)

	env.orders.now = func() time.Time { return start.Add(30 * time.Minute) }
	completed, err := env.orders.Complete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProcedureOrderStatusCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)
}

func TestProcedureOrder_CompleteBillsTimeBasedCharge(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	rate := 50.0
	env, procedure := newProcedureTestEnv(t, start, &rate)

	invoice, _, err := env.invoice.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: env.visit.ID})
	require.NoError(t, err)

	order, err := env.orders.Create(context.Background(), &dto.CreateProcedureOrderRequest{
		VisitID:     env.visit.ID,
		ProcedureID: procedure.ID,
	})
	require.NoError(t, err)
	_, err = env.orders.Start(context.Background(), order.ID)
	require.NoError(t, err)

	// 100 flat + 50/h over 1.5h = 175.00
	env.orders.now = func() time.Time { return start.Add(90 * time.Minute) }
	_, err = env.orders.Complete(context.Background(), order.ID)
	require.NoError(t, err)

	billed, err := env.invoice.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)

	line := billed.Items[len(billed.Items)-1]
	assert.Equal(t, "X-Ray - 1.50 hours", line.Description)
	assert.Equal(t, string(entity.ItemCategoryProcedure), line.Category)
	assert.Equal(t, 175.0, line.LineTotal)
	assert.Equal(t, 275.0, billed.Subtotal)
}

func TestProcedureOrder_CompleteWithoutInvoiceSucceedsUnbilled(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	env, procedure := newProcedureTestEnv(t, start, nil)

	order, err := env.orders.Create(context.Background(), &dto.CreateProcedureOrderRequest{
		VisitID:     env.visit.ID,
		ProcedureID: procedure.ID,
	})
	require.NoError(t, err)
	_, err = env.orders.Start(context.Background(), order.ID)
	require.NoError(t, err)

	env.orders.now = func() time.Time { return start.Add(time.Hour) }
	completed, err := env.orders.Complete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ProcedureOrderStatusCompleted), completed.Status)
}

func TestProcedureOrder_InvalidTransitions(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	env, procedure := newProcedureTestEnv(t, start, nil)

	order, err := env.orders.Create(context.Background(), &dto.CreateProcedureOrderRequest{
		VisitID:     env.visit.ID,
		ProcedureID: procedure.ID,
	})
	require.NoError(t, err)

	// Complete before Start.
	_, err = env.orders.Complete(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrProcedureOrderInvalidStatus)

	_, err = env.orders.Start(context.Background(), order.ID)
	require.NoError(t, err)

	// Start twice.
	_, err = env.orders.Start(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrProcedureOrderInvalidStatus)

	_, err = env.orders.Complete(context.Background(), order.ID)
	require.NoError(t, err)

	// Complete twice.
	_, err = env.orders.Complete(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrProcedureOrderInvalidStatus)
}

func TestProcedureOrder_CreateValidatesReferences(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	env, procedure := newProcedureTestEnv(t, start, nil)

	_, err := env.orders.Create(context.Background(), &dto.CreateProcedureOrderRequest{
		VisitID:     uuid.New(),
		ProcedureID: procedure.ID,
	})
	assert.ErrorIs(t, err, ErrVisitNotFound)

	_, err = env.orders.Create(context.Background(), &dto.CreateProcedureOrderRequest{
		VisitID:     env.visit.ID,
		ProcedureID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrProcedureNotFound)
}

func TestProcedureOrder_StartUnknownOrder(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	env, _ := newProcedureTestEnv(t, start, nil)

	_, err := env.orders.Start(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProcedureOrderNotFound)
}
