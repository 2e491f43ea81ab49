package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogList_OperationsLeaveATrail(t *testing.T) {
	db := newTestDB(t)
	patientUC := newPatientUsecaseForTest(t, db, time.Now())
	uc := NewAuditLogUsecase(db, testLogger(), repository.NewAuditLogRepository())

	_, err := patientUC.Create(context.Background(), &dto.CreatePatientRequest{
		Name:   "Jane Smith",
		Age:    34,
		Gender: "FEMALE",
		Phone:  "555-0100",
	})
	require.NoError(t, err)

	resp, err := uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.Total)
	assert.Equal(t, "patient.create", resp.Logs[0].Action)
}

func TestAuditLogList_ClampsPagination(t *testing.T) {
	db := newTestDB(t)
	uc := NewAuditLogUsecase(db, testLogger(), repository.NewAuditLogRepository())

	for _, args := range [][2]int{{0, 0}, {-5, -3}, {1000, 0}} {
		resp, err := uc.List(context.Background(), args[0], args[1])
		require.NoError(t, err)
		assert.NotNil(t, resp)
	}
}
