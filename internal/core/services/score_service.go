package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/middleware"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

// ScoreService manages monthly score records and runs the score engine.
type ScoreService struct {
	scoreRepo  portsrepo.ScoreRepositoryFacade
	workerRepo portsrepo.WorkerRepository
	userRepo   portsrepo.UserRepository
	settings   portssvc.SettingSvcFacade
	ranking    portssvc.RankingSvcFacade
	audit      portssvc.AuditSvcFacade
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	scoreRepo portsrepo.ScoreRepositoryFacade,
	workerRepo portsrepo.WorkerRepository,
	userRepo portsrepo.UserRepository,
	settings portssvc.SettingSvcFacade,
	ranking portssvc.RankingSvcFacade,
	audit portssvc.AuditSvcFacade,
) *ScoreService {
	return &ScoreService{
		scoreRepo:  scoreRepo,
		workerRepo: workerRepo,
		userRepo:   userRepo,
		settings:   settings,
		ranking:    ranking,
		audit:      audit,
	}
}

var _ portssvc.ScoreSvcFacade = (*ScoreService)(nil)

// UpsertScore creates or updates one worker's score for a month and recomputes
// its points. Manager-only.
func (s *ScoreService) UpsertScore(ctx context.Context, actorID string, req dto.UpsertScoreRequest, originIP string) (*domain.MonthlyScore, error) {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	month, err := utils.ParseMonth(req.ReferenceMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if _, err := s.workerRepo.FindWorkerByID(ctx, req.WorkerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: worker not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load worker: %w", err)
	}

	score, err := s.upsert(ctx, actor.UserID, req.WorkerID, month, req.ScoreCounters)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, "score.upsert", "monthly_scores", score.ScoreID,
		map[string]string{"workerID": req.WorkerID, "month": month.Format("2006-01"), "total": score.TotalPoints.String()}, originIP)
	return score, nil
}

// ImportScores batch-upserts scores keyed by worker name, then recalculates
// the month's ranking. Manager-only.
func (s *ScoreService) ImportScores(ctx context.Context, actorID string, req dto.ImportScoresRequest, originIP string) (*dto.ImportScoresResult, error) {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	month, err := utils.ParseMonth(req.ReferenceMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	result := &dto.ImportScoresResult{
		Imported: []dto.ImportOutcome{},
		Failed:   []dto.ImportOutcome{},
	}
	for _, row := range req.Rows {
		worker, err := s.workerRepo.FindWorkerByName(ctx, row.Name)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				result.Failed = append(result.Failed, dto.ImportOutcome{Name: row.Name, Error: "worker not found"})
				continue
			}
			return nil, fmt.Errorf("failed to look up worker %q: %w", row.Name, err)
		}

		score, err := s.upsert(ctx, actor.UserID, worker.WorkerID, month, row.ScoreCounters)
		if err != nil {
			logger.Warn("Score import row failed", slog.String("name", row.Name), slog.String("error", err.Error()))
			result.Failed = append(result.Failed, dto.ImportOutcome{Name: row.Name, Error: "failed to save score"})
			continue
		}
		result.Imported = append(result.Imported, dto.ImportOutcome{Name: row.Name, Total: score.TotalPoints})
	}

	if len(result.Imported) > 0 {
		if _, err := s.ranking.RankMonth(ctx, actorID, month, originIP); err != nil {
			logger.Error("Post-import ranking recalculation failed", slog.String("error", err.Error()))
			return nil, fmt.Errorf("scores imported but ranking recalculation failed: %w", err)
		}
	}

	s.audit.Record(ctx, actorID, "score.import", "monthly_scores", month.Format("2006-01"),
		map[string]int{"imported": len(result.Imported), "failed": len(result.Failed)}, originIP)
	return result, nil
}

// upsert writes the (worker, month) record with freshly computed points.
func (s *ScoreService) upsert(ctx context.Context, actorID, workerID string, month time.Time, counters dto.ScoreCounters) (*domain.MonthlyScore, error) {
	now := time.Now()

	score, err := s.scoreRepo.FindScore(ctx, workerID, month)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load existing score: %w", err)
		}
		score = &domain.MonthlyScore{
			ScoreID:        uuid.NewString(),
			WorkerID:       workerID,
			ReferenceMonth: month,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: actorID,
			},
		}
	}

	score.Sales = counters.Sales
	score.ReferralsFocus = counters.ReferralsFocus
	score.ReferralsSecondary = counters.ReferralsSecondary
	score.ReferralsOther = counters.ReferralsOther
	score.HighValueSales = counters.HighValueSales
	score.PlaquesFocus = counters.PlaquesFocus
	score.PlaquesSecondary = counters.PlaquesSecondary
	score.PlaquesOther = counters.PlaquesOther
	score.LastUpdatedAt = now
	score.LastUpdatedBy = actorID

	table, err := s.settings.WeightTable(ctx)
	if err != nil {
		return nil, err
	}
	table.Apply(score)

	if err := s.scoreRepo.SaveScore(ctx, *score); err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}
	return score, nil
}

// ScoresForMonth lists every score record of a reference month.
func (s *ScoreService) ScoresForMonth(ctx context.Context, month time.Time) ([]domain.MonthlyScore, error) {
	return s.scoreRepo.ListScoresByMonth(ctx, utils.MonthStart(month))
}

// WorkerScores lists a worker's score history, newest first.
func (s *ScoreService) WorkerScores(ctx context.Context, workerID string) ([]domain.MonthlyScore, error) {
	return s.scoreRepo.ListScoresByWorker(ctx, workerID)
}

// MyPerformance returns the acting worker's rank, total and current-month detail.
func (s *ScoreService) MyPerformance(ctx context.Context, actorUserID string) (*dto.PerformanceResponse, error) {
	_, worker, err := requireWorker(ctx, s.userRepo, s.workerRepo, actorUserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PerformanceResponse{
		Rank:        worker.Rank,
		TotalPoints: worker.TotalPoints,
	}

	score, err := s.scoreRepo.FindScore(ctx, worker.WorkerID, utils.MonthStart(time.Now()))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load current month score: %w", err)
		}
		return resp, nil
	}
	current := dto.ToScoreResponse(score)
	resp.CurrentMonth = &current
	return resp, nil
}

// DeleteScore removes a score record and recalculates its month. Manager-only.
func (s *ScoreService) DeleteScore(ctx context.Context, actorID, scoreID, originIP string) error {
	if _, err := requireManagerial(ctx, s.userRepo, actorID); err != nil {
		return err
	}

	score, err := s.scoreRepo.FindScoreByID(ctx, scoreID)
	if err != nil {
		return err
	}
	if err := s.scoreRepo.DeleteScore(ctx, scoreID); err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}

	if _, err := s.ranking.RankMonth(ctx, actorID, score.ReferenceMonth, originIP); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Post-delete ranking recalculation failed", slog.String("error", err.Error()))
	}

	s.audit.Record(ctx, actorID, "score.delete", "monthly_scores", scoreID,
		map[string]string{"workerID": score.WorkerID, "month": score.ReferenceMonth.Format("2006-01")}, originIP)
	return nil
}
