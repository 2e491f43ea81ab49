package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportUsecaseForTest(t *testing.T, db *gorm.DB, now time.Time) *reportUsecase {
	t.Helper()
	settingUsecase := NewSettingUsecase(db, testLogger(), repository.NewSettingRepository(), testAudit())
	uc := NewReportUsecase(
		db,
		testLogger(),
		repository.NewVisitRepository(),
		repository.NewInvoiceRepository(),
		repository.NewPatientRepository(),
		settingUsecase,
	).(*reportUsecase)
	uc.now = func() time.Time { return now }
	return uc
}

func TestDailyVisitsReport_CountsByStatusAndDoctor(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctorA := seedDoctor(t, db, 100.0)
	doctorB := seedDoctor(t, db, 100.0)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	seedVisit(t, db, patient, doctorA, 1, false, day.Add(9*time.Hour))
	seedVisit(t, db, patient, doctorA, 2, false, day.Add(10*time.Hour))
	done := seedVisit(t, db, patient, doctorB, 1, false, day.Add(11*time.Hour))
	completedAt := day.Add(12 * time.Hour)
	require.NoError(t, db.Model(&entity.Visit{}).Where("id = ?", done.ID).Updates(map[string]interface{}{
		"status":       entity.VisitStatusCompleted,
		"completed_at": completedAt,
	}).Error)
	// Out of range: the day before.
	seedVisit(t, db, patient, doctorA, 9, false, day.Add(-2*time.Hour))

	uc := newReportUsecaseForTest(t, db, day.Add(15*time.Hour))

	report, err := uc.DailyVisits(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", report.Date)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.ByStatus[string(entity.VisitStatusWaiting)])
	assert.Equal(t, 1, report.ByStatus[string(entity.VisitStatusCompleted)])
	require.Len(t, report.ByDoctor, 2)
	assert.Equal(t, doctorA.ID, report.ByDoctor[0].DoctorID)
	assert.Equal(t, 2, report.ByDoctor[0].Count)
}

func TestBillingSummary_TotalsByMethod(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	invoiceUC := newInvoiceUsecaseForTest(t, db, time.Now())

	created, _, err := invoiceUC.Create(context.Background(), &dto.CreateInvoiceRequest{VisitID: visit.ID})
	require.NoError(t, err)
	_, err = invoiceUC.RecordPayment(context.Background(), created.ID, &dto.RecordPaymentRequest{
		Amount: 40,
		Method: string(entity.PaymentMethodCash),
	})
	require.NoError(t, err)
	_, err = invoiceUC.RecordPayment(context.Background(), created.ID, &dto.RecordPaymentRequest{
		Amount: 35.5,
		Method: string(entity.PaymentMethodCash),
	})
	require.NoError(t, err)
	_, err = invoiceUC.RecordPayment(context.Background(), created.ID, &dto.RecordPaymentRequest{
		Amount: 24.5,
		Method: string(entity.PaymentMethodCard),
	})
	require.NoError(t, err)

	uc := newReportUsecaseForTest(t, db, time.Now())
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	report, err := uc.BillingSummary(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.TotalAmount)
	assert.Equal(t, 75.5, report.ByMethod[string(entity.PaymentMethodCash)])
	assert.Equal(t, 24.5, report.ByMethod[string(entity.PaymentMethodCard)])
}

func TestQueueStats_AveragesCompletedWaits(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	seedVisit(t, db, patient, doctor, 1, false, now.Add(-time.Hour))
	done := seedVisit(t, db, patient, doctor, 2, false, now.Add(-40*time.Minute))
	require.NoError(t, db.Model(&entity.Visit{}).Where("id = ?", done.ID).Updates(map[string]interface{}{
		"status":       entity.VisitStatusCompleted,
		"completed_at": now.Add(-10 * time.Minute),
	}).Error)

	uc := newReportUsecaseForTest(t, db, now)

	report, err := uc.QueueStats(context.Background())
	require.NoError(t, err)

	require.Len(t, report.ByDoctor, 1)
	stats := report.ByDoctor[0]
	assert.Equal(t, 1, stats.Waiting)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 30.0, stats.AvgWaitMinutes)
}

func TestPatientStats_CountsNewToday(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	old := seedPatient(t, db)
	require.NoError(t, db.Model(&entity.Patient{}).Where("id = ?", old.ID).Update("created_at", now.Add(-48*time.Hour)).Error)
	fresh := seedPatient(t, db)
	require.NoError(t, db.Model(&entity.Patient{}).Where("id = ?", fresh.ID).Update("created_at", now.Add(-time.Hour)).Error)

	uc := newReportUsecaseForTest(t, db, now)

	report, err := uc.PatientStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, report.TotalPatients)
	assert.EqualValues(t, 1, report.NewToday)
}
