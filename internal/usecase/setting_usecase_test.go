package usecase

import (
	"context"
	"testing"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSettingUsecaseForTest(t *testing.T, db *gorm.DB) SettingUsecase {
	t.Helper()
	return NewSettingUsecase(db, testLogger(), repository.NewSettingRepository(), testAudit())
}

func stringPtr(v string) *string { return &v }
func boolPtr(v bool) *bool       { return &v }

func TestGetSettings_DefaultsWhenTableEmpty(t *testing.T) {
	db := newTestDB(t)
	uc := newSettingUsecaseForTest(t, db)

	settings, err := uc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "00:00", settings.TokenResetTime)
	assert.False(t, settings.EmergencyProtocolEnabled)
}

func TestUpdateSettings_PersistsAndReturnsMergedView(t *testing.T) {
	db := newTestDB(t)
	uc := newSettingUsecaseForTest(t, db)

	settings, err := uc.Update(context.Background(), &dto.UpdateSettingsRequest{
		TokenResetTime:           stringPtr("06:30"),
		EmergencyProtocolEnabled: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "06:30", settings.TokenResetTime)
	assert.True(t, settings.EmergencyProtocolEnabled)

	// Partial update leaves the other key untouched.
	settings, err = uc.Update(context.Background(), &dto.UpdateSettingsRequest{
		EmergencyProtocolEnabled: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "06:30", settings.TokenResetTime)
	assert.False(t, settings.EmergencyProtocolEnabled)
}

func TestGetSettings_IgnoresMalformedBool(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&entity.Setting{Key: entity.SettingEmergencyProtocolEnabled, Value: "maybe"}).Error)
	uc := newSettingUsecaseForTest(t, db)

	settings, err := uc.Get(context.Background())

	require.NoError(t, err)
	assert.False(t, settings.EmergencyProtocolEnabled)
}
