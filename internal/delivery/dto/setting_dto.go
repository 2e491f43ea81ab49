package dto

type UpdateSettingsRequest struct {
	TokenResetTime           *string `json:"token_reset_time" validate:"omitempty,datetime=15:04"`
	EmergencyProtocolEnabled *bool   `json:"emergency_protocol_enabled"`
}

type SettingsResponse struct {
	TokenResetTime           string `json:"token_reset_time"`
	EmergencyProtocolEnabled bool   `json:"emergency_protocol_enabled"`
}
