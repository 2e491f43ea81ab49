package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/repository"
	"clinic-desk-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVisitUsecaseForTest(t *testing.T, db *gorm.DB, notifier *fakeNotifier, now time.Time) *visitUsecase {
	t.Helper()
	settingUsecase := NewSettingUsecase(db, testLogger(), repository.NewSettingRepository(), testAudit())
	uc := NewVisitUsecase(
		db,
		testLogger(),
		repository.NewVisitRepository(),
		repository.NewPatientRepository(),
		repository.NewDoctorRepository(),
		settingUsecase,
		newFakeSequencer(),
		notifier,
		testAudit(),
	).(*visitUsecase)
	uc.now = func() time.Time { return now }
	return uc
}

func TestCreateVisit_AssignsMonotonicTokens(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, time.Now())

	for expected := 1; expected <= 3; expected++ {
		resp, err := uc.Create(context.Background(), &dto.CreateVisitRequest{
			PatientID: patient.ID,
			DoctorID:  doctor.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, expected, resp.TokenNumber)
		assert.Equal(t, string(entity.VisitStatusWaiting), resp.Status)
	}
}

func TestCreateVisit_TokensAreIndependentPerDoctor(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctorA := seedDoctor(t, db, 150.0)
	doctorB := seedDoctor(t, db, 200.0)
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, time.Now())

	first, err := uc.Create(context.Background(), &dto.CreateVisitRequest{PatientID: patient.ID, DoctorID: doctorA.ID})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), &dto.CreateVisitRequest{PatientID: patient.ID, DoctorID: doctorB.ID})
	require.NoError(t, err)

	assert.Equal(t, 1, first.TokenNumber)
	assert.Equal(t, 1, second.TokenNumber)
}

func TestCreateVisit_SnapshotsConsultationFee(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, time.Now())

	resp, err := uc.Create(context.Background(), &dto.CreateVisitRequest{PatientID: patient.ID, DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.Equal(t, 150.0, resp.ConsultationFee)

	// A later fee change must not alter the stored visit.
	require.NoError(t, db.Model(&entity.Doctor{}).Where("id = ?", doctor.ID).Update("consultation_fee", 300).Error)

	reloaded, err := uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, reloaded.ConsultationFee)
}

func TestCreateVisit_UnknownPatientOrDoctor(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, time.Now())

	_, err := uc.Create(context.Background(), &dto.CreateVisitRequest{PatientID: uuid.New(), DoctorID: doctor.ID})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = uc.Create(context.Background(), &dto.CreateVisitRequest{PatientID: patient.ID, DoctorID: uuid.New()})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateVisit_EmergencyBroadcasts(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	notifier := &fakeNotifier{}
	uc := newVisitUsecaseForTest(t, db, notifier, time.Now())

	_, err := uc.Create(context.Background(), &dto.CreateVisitRequest{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		IsEmergency: true,
	})
	require.NoError(t, err)

	assert.Contains(t, notifier.topicsFor(""), service.TopicEmergencyActive)
	assert.Contains(t, notifier.topicsFor(service.RoomDisplay), service.TopicEmergencyActive)
	assert.Contains(t, notifier.topicsFor(service.DoctorRoom(doctor.ID)), service.TopicQueueRefresh)
}

func TestCallVisit_TransitionsAndAnnouncesToken(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 4, false, time.Now())
	notifier := &fakeNotifier{}
	uc := newVisitUsecaseForTest(t, db, notifier, time.Now())

	resp, err := uc.Call(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.VisitStatusInConsultation), resp.Status)

	assert.Contains(t, notifier.topicsFor(""), service.TopicQueueUpdate)
	assert.Contains(t, notifier.topicsFor(service.RoomDisplay), service.TopicQueueUpdate)

	var announced *queueUpdatePayload
	for _, e := range notifier.events {
		if e.Topic == service.TopicQueueUpdate {
			if payload, ok := e.Payload.(queueUpdatePayload); ok {
				announced = &payload
				break
			}
		}
	}
	require.NotNil(t, announced)
	assert.Equal(t, 4, announced.CurrentToken)
	assert.Equal(t, "101", announced.RoomNumber)
}

func TestCallVisit_RejectsNonWaiting(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, time.Now())

	_, err := uc.Call(context.Background(), visit.ID)
	require.NoError(t, err)

	_, err = uc.Call(context.Background(), visit.ID)
	assert.ErrorIs(t, err, ErrVisitInvalidStatus)
}

func TestCompleteVisit_AllowsSkippingConsultation(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())
	completedAt := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, completedAt)

	// Complete straight from WAITING; the desk corrects skipped calls.
	resp, err := uc.Complete(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.VisitStatusCompleted), resp.Status)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, completedAt.Unix(), resp.CompletedAt.Unix())
}

func TestCompleteVisit_EmergencyClears(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, true, time.Now())
	notifier := &fakeNotifier{}
	uc := newVisitUsecaseForTest(t, db, notifier, time.Now())

	_, err := uc.Complete(context.Background(), visit.ID)
	require.NoError(t, err)

	var cleared *emergencyActivePayload
	for _, e := range notifier.events {
		if e.Topic == service.TopicEmergencyActive && e.Room == "" {
			if payload, ok := e.Payload.(emergencyActivePayload); ok {
				cleared = &payload
			}
		}
	}
	require.NotNil(t, cleared)
	assert.False(t, cleared.Active)
}

func TestDoctorQueue_EmergenciesFirstThenTokenOrder(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	now := time.Now()

	// Checked in as 3, 1, 2; token 2 is an emergency.
	seedVisit(t, db, patient, doctor, 3, false, now.Add(-10*time.Minute))
	seedVisit(t, db, patient, doctor, 1, false, now.Add(-8*time.Minute))
	seedVisit(t, db, patient, doctor, 2, true, now.Add(-5*time.Minute))

	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, now)

	resp, err := uc.DoctorQueue(context.Background(), doctor.ID)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	tokens := []int{resp.Queue[0].TokenNumber, resp.Queue[1].TokenNumber, resp.Queue[2].TokenNumber}
	assert.Equal(t, []int{2, 1, 3}, tokens)
	assert.True(t, resp.Queue[0].IsEmergency)
	assert.Equal(t, 5, resp.Queue[0].TimeWaiting)
	assert.Equal(t, 8, resp.Queue[1].TimeWaiting)
}

func TestDoctorQueue_ExcludesCalledAndCompleted(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	now := time.Now()

	waiting := seedVisit(t, db, patient, doctor, 1, false, now)
	called := seedVisit(t, db, patient, doctor, 2, false, now)

	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, now)
	_, err := uc.Call(context.Background(), called.ID)
	require.NoError(t, err)

	resp, err := uc.DoctorQueue(context.Background(), doctor.ID)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, waiting.ID, resp.Queue[0].ID)
}

func TestDoctorQueue_UnknownDoctor(t *testing.T) {
	db := newTestDB(t)
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, time.Now())

	_, err := uc.DoctorQueue(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestTodayVisits_RespectsResetBoundary(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)

	require.NoError(t, db.Create(&entity.Setting{Key: entity.SettingTokenResetTime, Value: "06:00"}).Error)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seedVisit(t, db, patient, doctor, 1, false, now.Add(-time.Hour))    // after today's 06:00 reset
	seedVisit(t, db, patient, doctor, 9, false, now.Add(-24*time.Hour)) // yesterday
	seedVisit(t, db, patient, doctor, 8, false, now.Add(-4*time.Hour))  // 05:00, before the reset

	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, now)

	resp, err := uc.TodayVisits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Visits[0].TokenNumber)
}

func TestMinutesWaiting_FloorsAtZero(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, minutesWaiting(now.Add(time.Minute), now))
	assert.Equal(t, 0, minutesWaiting(now.Add(20*time.Second), now))
	assert.Equal(t, 3, minutesWaiting(now.Add(-3*time.Minute), now))
}

func TestCompleteVisit_RepeatKeepsCompletedAt(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 150.0)
	visit := seedVisit(t, db, patient, doctor, 1, false, time.Now())

	first := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	uc := newVisitUsecaseForTest(t, db, &fakeNotifier{}, first)
	resp, err := uc.Complete(context.Background(), visit.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.CompletedAt)

	later := newVisitUsecaseForTest(t, db, &fakeNotifier{}, first.Add(time.Hour))
	again, err := later.Complete(context.Background(), visit.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.VisitStatusCompleted), again.Status)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, first.Unix(), again.CompletedAt.Unix())
}
