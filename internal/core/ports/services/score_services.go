package services

import (
	"context"
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	"github.com/plantaohub/plantao_backend/internal/dto"
)

// ScoreSvcFacade exposes the score engine and score CRUD.
type ScoreSvcFacade interface {
	// UpsertScore creates or updates one worker's score for a month and
	// recomputes its points. Manager-only.
	UpsertScore(ctx context.Context, actorID string, req dto.UpsertScoreRequest, originIP string) (*domain.MonthlyScore, error)

	// ImportScores batch-upserts scores by worker name, then recalculates the
	// month's ranking. Manager-only.
	ImportScores(ctx context.Context, actorID string, req dto.ImportScoresRequest, originIP string) (*dto.ImportScoresResult, error)

	// ScoresForMonth lists every score record of a reference month.
	ScoresForMonth(ctx context.Context, month time.Time) ([]domain.MonthlyScore, error)

	// WorkerScores lists a worker's score history, newest first.
	WorkerScores(ctx context.Context, workerID string) ([]domain.MonthlyScore, error)

	// MyPerformance returns the acting worker's rank, total and current-month
	// detail.
	MyPerformance(ctx context.Context, actorUserID string) (*dto.PerformanceResponse, error)

	// DeleteScore removes a score record and recalculates its month.
	// Manager-only.
	DeleteScore(ctx context.Context, actorID, scoreID, originIP string) error
}

// RankingSvcFacade exposes the ranking calculator.
type RankingSvcFacade interface {
	// CurrentRanking lists ranked workers, best rank first.
	CurrentRanking(ctx context.Context) ([]dto.RankingEntryResponse, error)

	// RankMonth recomputes every score of the month and persists dense ranks
	// atomically. Manager-only.
	RankMonth(ctx context.Context, actorID string, month time.Time, originIP string) ([]domain.MonthlyScore, error)

	// RankAccumulated ranks workers by their summed totals over the last
	// windowMonths calendar months (current month included). Manager-only.
	RankAccumulated(ctx context.Context, actorID string, windowMonths int, originIP string) ([]domain.WorkerRanking, error)
}
