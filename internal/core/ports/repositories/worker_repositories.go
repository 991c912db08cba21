package repositories

import (
	"context"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// RankedWorker pairs a worker with the display name of its user account.
type RankedWorker struct {
	domain.Worker
	Name string `json:"name"`
}

// WorkerRepository defines operations on worker records. Rank and total
// mutations happen through the score repository's ranking methods so they stay
// atomic with the score updates.
type WorkerRepository interface {
	// FindWorkerByID retrieves a worker by its unique identifier.
	FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)

	// FindWorkerByUserID retrieves the worker record behind a user account.
	FindWorkerByUserID(ctx context.Context, userID string) (*domain.Worker, error)

	// FindWorkerByName retrieves a worker whose user name matches name
	// (case-insensitive substring). Used by the spreadsheet import.
	FindWorkerByName(ctx context.Context, name string) (*domain.Worker, error)

	// ListRankedWorkers returns all workers holding a rank, best rank first.
	ListRankedWorkers(ctx context.Context) ([]RankedWorker, error)
}
