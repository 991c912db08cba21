package dto

import "github.com/plantaohub/plantao_backend/internal/core/domain"

// SettingResponse is the public representation of a configuration entry.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ToSettingResponses converts settings to their response DTOs.
func ToSettingResponses(settings []domain.Setting) []SettingResponse {
	out := make([]SettingResponse, len(settings))
	for i, s := range settings {
		out[i] = SettingResponse{Key: s.Key, Value: s.Value}
	}
	return out
}

// PutSettingRequest replaces the value of one configuration key.
type PutSettingRequest struct {
	Value string `json:"value" binding:"required"`
}
