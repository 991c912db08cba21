package repositories

import (
	"context"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// SettingRepository is the key-value configuration store backing the weight
// table and the scheduling policy.
type SettingRepository interface {
	// FindSetting retrieves a setting by key, or apperrors.ErrNotFound.
	FindSetting(ctx context.Context, key string) (*domain.Setting, error)

	// ListSettings retrieves every setting ordered by key.
	ListSettings(ctx context.Context) ([]domain.Setting, error)

	// SaveSetting inserts or updates a setting.
	SaveSetting(ctx context.Context, setting domain.Setting) error
}
