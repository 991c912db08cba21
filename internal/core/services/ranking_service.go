package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/middleware"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

const (
	currentRankingCacheKey = "ranking:current"
	currentRankingCacheTTL = 5 * time.Minute
)

// RankingService recomputes and serves the merit ranking.
type RankingService struct {
	scoreRepo  portsrepo.ScoreRepositoryFacade
	workerRepo portsrepo.WorkerRepository
	userRepo   portsrepo.UserRepository
	settings   portssvc.SettingSvcFacade
	audit      portssvc.AuditSvcFacade
	notifier   portssvc.Notifier
	cache      portsrepo.Cache
}

// NewRankingService creates a new RankingService. cache may be nil, in which
// case CurrentRanking always hits the database.
func NewRankingService(
	scoreRepo portsrepo.ScoreRepositoryFacade,
	workerRepo portsrepo.WorkerRepository,
	userRepo portsrepo.UserRepository,
	settings portssvc.SettingSvcFacade,
	audit portssvc.AuditSvcFacade,
	notifier portssvc.Notifier,
	cache portsrepo.Cache,
) *RankingService {
	return &RankingService{
		scoreRepo:  scoreRepo,
		workerRepo: workerRepo,
		userRepo:   userRepo,
		settings:   settings,
		audit:      audit,
		notifier:   notifier,
		cache:      cache,
	}
}

var _ portssvc.RankingSvcFacade = (*RankingService)(nil)

// CurrentRanking lists ranked workers, best rank first.
func (s *RankingService) CurrentRanking(ctx context.Context) ([]dto.RankingEntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, currentRankingCacheKey); err == nil && cached != "" {
			var entries []dto.RankingEntryResponse
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	workers, err := s.workerRepo.ListRankedWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked workers: %w", err)
	}

	entries := make([]dto.RankingEntryResponse, 0, len(workers))
	for _, w := range workers {
		entries = append(entries, dto.RankingEntryResponse{
			Rank:        w.EffectiveRank(domain.UnrankedFallback),
			WorkerID:    w.WorkerID,
			Name:        w.Name,
			TotalPoints: w.TotalPoints,
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, currentRankingCacheKey, string(payload), currentRankingCacheTTL); err != nil {
				logger.Warn("Failed to cache current ranking", slog.String("error", err.Error()))
			}
		}
	}
	return entries, nil
}

// RankMonth recomputes every score of the month and persists dense ranks
// atomically. Manager-only.
func (s *RankingService) RankMonth(ctx context.Context, actorID string, month time.Time, originIP string) ([]domain.MonthlyScore, error) {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	monthStart := utils.MonthStart(month)
	scores, err := s.scoreRepo.ListScoresByMonth(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for %s: %w", monthStart.Format("2006-01"), err)
	}
	if len(scores) == 0 {
		return []domain.MonthlyScore{}, nil
	}

	table, err := s.settings.WeightTable(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range scores {
		table.Apply(&scores[i])
		scores[i].LastUpdatedAt = now
		scores[i].LastUpdatedBy = actor.UserID
	}

	// Stable sort keeps insertion order for equal totals.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalPoints.GreaterThan(scores[j].TotalPoints)
	})

	rankings := make([]domain.WorkerRanking, len(scores))
	for i := range scores {
		rankings[i] = domain.WorkerRanking{
			WorkerID: scores[i].WorkerID,
			Rank:     i + 1,
			Total:    scores[i].TotalPoints,
		}
	}

	if err := s.scoreRepo.ApplyMonthlyRanking(ctx, scores, rankings, actor.UserID, now); err != nil {
		logger.Error("Failed to persist monthly ranking", slog.String("error", err.Error()), slog.String("month", monthStart.Format("2006-01")))
		return nil, fmt.Errorf("failed to persist ranking: %w", err)
	}

	s.invalidateCache(ctx)
	s.audit.Record(ctx, actorID, "ranking.recalculate", "monthly_scores", monthStart.Format("2006-01"),
		map[string]int{"workers": len(rankings)}, originIP)
	s.notifier.Publish(ctx, "ranking.updated", map[string]string{"month": monthStart.Format("2006-01")})

	return scores, nil
}

// RankAccumulated ranks workers by their summed totals over the last
// windowMonths calendar months, current month included. Manager-only.
func (s *RankingService) RankAccumulated(ctx context.Context, actorID string, windowMonths int, originIP string) ([]domain.WorkerRanking, error) {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	if windowMonths <= 0 {
		windowMonths = 3
	}

	thisMonth := utils.MonthStart(time.Now())
	from := utils.AddMonths(thisMonth, -(windowMonths - 1))

	totals, err := s.scoreRepo.SumTotalsByWorker(ctx, from, thisMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to sum totals: %w", err)
	}
	if len(totals) == 0 {
		return []domain.WorkerRanking{}, nil
	}

	for i := range totals {
		totals[i].Rank = i + 1
	}

	now := time.Now()
	if err := s.scoreRepo.ApplyAccumulatedRanking(ctx, totals, actor.UserID, now); err != nil {
		logger.Error("Failed to persist accumulated ranking", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist ranking: %w", err)
	}

	s.invalidateCache(ctx)
	s.audit.Record(ctx, actorID, "ranking.recalculate_accumulated", "workers", "",
		map[string]int{"months": windowMonths, "workers": len(totals)}, originIP)
	s.notifier.Publish(ctx, "ranking.updated", map[string]int{"months": windowMonths})

	return totals, nil
}

func (s *RankingService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, currentRankingCacheKey); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to invalidate ranking cache", slog.String("error", err.Error()))
	}
}
