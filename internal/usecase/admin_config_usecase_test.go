package usecase

import (
	"context"
	"testing"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminConfigUsecaseForTest(t *testing.T, db *gorm.DB) AdminConfigUsecase {
	t.Helper()
	return NewAdminConfigUsecase(
		db,
		testLogger(),
		repository.NewDoctorRepository(),
		repository.NewRoomRepository(),
		repository.NewProcedureRepository(),
		testAudit(),
	)
}

func TestUpdateDoctor_PatchesOnlyProvidedFields(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db, 150.0)
	uc := newAdminConfigUsecaseForTest(t, db)

	resp, err := uc.UpdateDoctor(context.Background(), doctor.ID, &dto.UpdateDoctorRequest{
		ConsultationFee: floatPtr(200),
		RoomNumber:      stringPtr("205"),
	})
	require.NoError(t, err)

	assert.Equal(t, 200.0, resp.ConsultationFee)
	assert.Equal(t, "205", resp.RoomNumber)
	// Untouched fields survive.
	assert.Equal(t, doctor.Name, resp.Name)
	assert.Equal(t, doctor.Specialization, resp.Specialization)
}

func TestUpdateDoctor_Unknown(t *testing.T) {
	db := newTestDB(t)
	uc := newAdminConfigUsecaseForTest(t, db)

	_, err := uc.UpdateDoctor(context.Background(), uuid.New(), &dto.UpdateDoctorRequest{RoomNumber: stringPtr("1")})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestRoomLifecycle(t *testing.T) {
	db := newTestDB(t)
	uc := newAdminConfigUsecaseForTest(t, db)

	created, err := uc.CreateRoom(context.Background(), &dto.CreateRoomRequest{
		Code: "R-101",
		Name: "Consultation 101",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", created.Status)

	rooms, err := uc.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	updated, err := uc.UpdateRoom(context.Background(), created.ID, &dto.UpdateRoomRequest{
		Status: stringPtr("MAINTENANCE"),
	})
	require.NoError(t, err)
	assert.Equal(t, "MAINTENANCE", updated.Status)
	assert.Equal(t, "R-101", updated.Code)

	require.NoError(t, uc.DeleteRoom(context.Background(), created.ID))

	rooms, err = uc.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRoomNotFound(t *testing.T) {
	db := newTestDB(t)
	uc := newAdminConfigUsecaseForTest(t, db)

	_, err := uc.UpdateRoom(context.Background(), uuid.New(), &dto.UpdateRoomRequest{Name: stringPtr("x")})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	err = uc.DeleteRoom(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestProcedureLifecycle(t *testing.T) {
	db := newTestDB(t)
	uc := newAdminConfigUsecaseForTest(t, db)

	created, err := uc.CreateProcedure(context.Background(), &dto.CreateProcedureRequest{
		Code:       "XR-01",
		Name:       "X-Ray",
		DefaultFee: 100,
		HourlyRate: floatPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, created.DefaultFee)

	updated, err := uc.UpdateProcedure(context.Background(), created.ID, &dto.UpdateProcedureRequest{
		DefaultFee: floatPtr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.DefaultFee)
	require.NotNil(t, updated.HourlyRate)
	assert.Equal(t, 50.0, *updated.HourlyRate)

	procedures, err := uc.ListProcedures(context.Background())
	require.NoError(t, err)
	require.Len(t, procedures, 1)

	require.NoError(t, uc.DeleteProcedure(context.Background(), created.ID))
}

func TestProcedureNotFound(t *testing.T) {
	db := newTestDB(t)
	uc := newAdminConfigUsecaseForTest(t, db)

	_, err := uc.UpdateProcedure(context.Background(), uuid.New(), &dto.UpdateProcedureRequest{Name: stringPtr("x")})
	assert.ErrorIs(t, err, ErrProcedureNotFound)
}
