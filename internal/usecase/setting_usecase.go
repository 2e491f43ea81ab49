package usecase

import (
	"context"
	"strconv"

	"clinic-desk-backend/internal/delivery/dto"
	"clinic-desk-backend/internal/domain/entity"
	"clinic-desk-backend/internal/domain/repository"
	"clinic-desk-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SettingUsecase interface {
	// Get returns the typed clinic settings, falling back to defaults
	// for missing keys.
	Get(ctx context.Context) (entity.AppSettings, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (entity.AppSettings, error)
}

type settingUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	settingRepo repository.SettingRepository
	audit       service.AuditService
}

func NewSettingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingRepo repository.SettingRepository,
	audit service.AuditService,
) SettingUsecase {
	return &settingUsecase{
		db:          db,
		log:         log,
		settingRepo: settingRepo,
		audit:       audit,
	}
}

func (u *settingUsecase) Get(ctx context.Context) (entity.AppSettings, error) {
	settings := entity.DefaultAppSettings()

	rows, err := u.settingRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return settings, err
	}

	for _, row := range rows {
		switch row.Key {
		case entity.SettingTokenResetTime:
			settings.TokenResetTime = row.Value
		case entity.SettingEmergencyProtocolEnabled:
			enabled, err := strconv.ParseBool(row.Value)
			if err == nil {
				settings.EmergencyProtocolEnabled = enabled
			}
		}
	}

	return settings, nil
}

func (u *settingUsecase) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (entity.AppSettings, error) {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.TokenResetTime != nil {
			if err := u.settingRepo.Upsert(tx, entity.SettingTokenResetTime, *req.TokenResetTime); err != nil {
				return err
			}
		}
		if req.EmergencyProtocolEnabled != nil {
			value := strconv.FormatBool(*req.EmergencyProtocolEnabled)
			if err := u.settingRepo.Upsert(tx, entity.SettingEmergencyProtocolEnabled, value); err != nil {
				return err
			}
		}

		u.audit.Record(tx, actorID(ctx), entity.AuditActionSettingsUpdate, entity.JSON{
			"token_reset_time":           req.TokenResetTime,
			"emergency_protocol_enabled": req.EmergencyProtocolEnabled,
		})
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to update settings: %+v", err)
		return entity.AppSettings{}, err
	}

	return u.Get(ctx)
}
