package services

import (
	"context"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// SettingSvcFacade exposes the administrative configuration store.
type SettingSvcFacade interface {
	// ListSettings lists all configuration entries. Manager-only.
	ListSettings(ctx context.Context, actorID string) ([]domain.Setting, error)

	// PutSetting creates or replaces one entry. Admin-only. Weight keys must
	// parse as decimals, schedule keys as integers.
	PutSetting(ctx context.Context, actorID, key, value, originIP string) error

	// WeightTable loads the score weights, falling back to defaults per
	// absent key.
	WeightTable(ctx context.Context) (domain.WeightTable, error)

	// SchedulePolicy loads the claim-window policy, falling back to defaults.
	SchedulePolicy(ctx context.Context) (domain.SchedulePolicy, error)
}
