package repositories

import (
	"context"
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// ScoreReader defines read operations for monthly score data.
type ScoreReader interface {
	// FindScoreByID retrieves a score record by its unique identifier.
	FindScoreByID(ctx context.Context, scoreID string) (*domain.MonthlyScore, error)

	// FindScore retrieves the score of a worker for a reference month, or
	// apperrors.ErrNotFound.
	FindScore(ctx context.Context, workerID string, month time.Time) (*domain.MonthlyScore, error)

	// ListScoresByMonth retrieves every score record of a reference month in
	// insertion order (stable tie-breaking for the ranking depends on it).
	ListScoresByMonth(ctx context.Context, month time.Time) ([]domain.MonthlyScore, error)

	// ListScoresByWorker retrieves a worker's score history, newest month first.
	ListScoresByWorker(ctx context.Context, workerID string) ([]domain.MonthlyScore, error)

	// SumTotalsByWorker sums score totals per worker over reference months in
	// [from, to], ordered by the summed total descending.
	SumTotalsByWorker(ctx context.Context, from, to time.Time) ([]domain.WorkerRanking, error)
}

// ScoreWriter defines write operations for monthly score data.
type ScoreWriter interface {
	// SaveScore inserts or updates the (worker, month) score record.
	SaveScore(ctx context.Context, score domain.MonthlyScore) error

	// DeleteScore removes a score record.
	DeleteScore(ctx context.Context, scoreID string) error

	// ApplyMonthlyRanking persists recomputed scores and the worker
	// rank/total assignments in one transaction; a failure leaves no partial
	// ranking behind.
	ApplyMonthlyRanking(ctx context.Context, scores []domain.MonthlyScore, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error

	// ApplyAccumulatedRanking persists rank/total assignments computed over a
	// multi-month window in one transaction.
	ApplyAccumulatedRanking(ctx context.Context, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error
}

// ScoreRepositoryFacade combines the score repository interfaces.
type ScoreRepositoryFacade interface {
	ScoreReader
	ScoreWriter
}
