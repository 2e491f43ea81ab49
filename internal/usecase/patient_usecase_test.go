package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPatientUsecaseForTest(t *testing.T, db *gorm.DB, now time.Time) *patientUsecase {
	t.Helper()
	settingUsecase := NewSettingUsecase(db, testLogger(), repository.NewSettingRepository(), testAudit())
	uc := NewPatientUsecase(
		db,
		testLogger(),
		repository.NewPatientRepository(),
		repository.NewVisitRepository(),
		settingUsecase,
		newFakeSequencer(),
		testAudit(),
	).(*patientUsecase)
	uc.now = func() time.Time { return now }
	return uc
}

func TestCreatePatient_AssignsDailyCode(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := newPatientUsecaseForTest(t, db, now)

	for i := 1; i <= 2; i++ {
		resp, err := uc.Create(context.Background(), &dto.CreatePatientRequest{
			Name:   fmt.Sprintf("Patient %d", i),
			Age:    40,
			Gender: "MALE",
			Phone:  fmt.Sprintf("555-010%d", i),
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("P-20250310-%04d", i), resp.PatientCode)
	}
}

func TestSearchPatients_MatchesCodePhoneAndName(t *testing.T) {
	db := newTestDB(t)
	uc := newPatientUsecaseForTest(t, db, time.Now())

	created, err := uc.Create(context.Background(), &dto.CreatePatientRequest{
		Name:   "Maria Santos",
		Age:    29,
		Gender: "FEMALE",
		Phone:  "555-0199",
	})
	require.NoError(t, err)

	byCode, err := uc.Search(context.Background(), created.PatientCode)
	require.NoError(t, err)
	require.EqualValues(t, 1, byCode.Total)

	byPhone, err := uc.Search(context.Background(), "555-0199")
	require.NoError(t, err)
	require.EqualValues(t, 1, byPhone.Total)

	byName, err := uc.Search(context.Background(), "maria")
	require.NoError(t, err)
	require.EqualValues(t, 1, byName.Total)
	assert.Equal(t, created.ID, byName.Patients[0].ID)

	none, err := uc.Search(context.Background(), "nobody")
	require.NoError(t, err)
	assert.EqualValues(t, 0, none.Total)
}

func TestPatientHistory_UnknownPatient(t *testing.T) {
	db := newTestDB(t)
	uc := newPatientUsecaseForTest(t, db, time.Now())

	_, err := uc.History(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientHistory_ListsVisitsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	patient := seedPatient(t, db)
	doctor := seedDoctor(t, db, 100.0)
	now := time.Now()

	seedVisit(t, db, patient, doctor, 1, false, now.Add(-48*time.Hour))
	seedVisit(t, db, patient, doctor, 2, false, now)

	uc := newPatientUsecaseForTest(t, db, now)

	resp, err := uc.History(context.Background(), patient.ID)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Visits[0].TokenNumber)
	assert.Equal(t, 1, resp.Visits[1].TokenNumber)
}
