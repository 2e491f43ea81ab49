package entity

import "time"

// Setting keys known to the application
const (
	SettingTokenResetTime           = "tokenResetTime"
	SettingEmergencyProtocolEnabled = "emergencyProtocolEnabled"
)

// Setting is one key/value row of clinic-wide configuration
type Setting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// AppSettings is the typed view over the settings table. TokenResetTime
// is "HH:MM" local time; the queue day rolls over at that moment.
type AppSettings struct {
	TokenResetTime           string `json:"token_reset_time"`
	EmergencyProtocolEnabled bool   `json:"emergency_protocol_enabled"`
}

// DefaultAppSettings are used for keys missing from the table
func DefaultAppSettings() AppSettings {
	return AppSettings{
		TokenResetTime:           "00:00",
		EmergencyProtocolEnabled: false,
	}
}
