package services

import (
	"context"

	"github.com/plantaohub/plantao_backend/internal/dto"
)

// ReportingSvcFacade exposes the aggregate reporting endpoints. Results are
// served through the cache when one is configured.
type ReportingSvcFacade interface {
	// OccupancyTrend returns per-month occupancy for the last months months.
	// Manager-only.
	OccupancyTrend(ctx context.Context, actorID string, months int) (*dto.OccupancyTrendResponse, error)

	// Statistics returns the general statistics snapshot.
	Statistics(ctx context.Context) (*dto.StatisticsResponse, error)
}
