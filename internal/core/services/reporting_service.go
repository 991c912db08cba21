package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/middleware"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

const reportCacheTTL = time.Hour

// ReportingService serves the aggregate reporting endpoints, caching results
// when a cache is configured.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
	userRepo      portsrepo.UserRepository
	cache         portsrepo.Cache
	now           func() time.Time
}

// NewReportingService creates a new ReportingService. cache may be nil.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, userRepo portsrepo.UserRepository, cache portsrepo.Cache) *ReportingService {
	return &ReportingService{
		reportingRepo: reportingRepo,
		userRepo:      userRepo,
		cache:         cache,
		now:           time.Now,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// OccupancyTrend returns per-month occupancy for the last months months,
// oldest first. Manager-only.
func (s *ReportingService) OccupancyTrend(ctx context.Context, actorID string, months int) (*dto.OccupancyTrendResponse, error) {
	if _, err := requireManagerial(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	if months <= 0 || months > 24 {
		months = 6
	}

	cacheKey := fmt.Sprintf("reports:occupancy:%d", months)
	var cached dto.OccupancyTrendResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	thisMonth := utils.MonthStart(s.now())
	resp := &dto.OccupancyTrendResponse{Months: make([]dto.OccupancyPoint, 0, months)}
	for i := months - 1; i >= 0; i-- {
		monthStart := utils.AddMonths(thisMonth, -i)
		occ, err := s.reportingRepo.MonthOccupancy(ctx, monthStart)
		if err != nil {
			return nil, fmt.Errorf("failed to compute occupancy for %s: %w", monthStart.Format("2006-01"), err)
		}
		point := dto.OccupancyPoint{Month: monthStart.Format("2006-01")}
		if occ.TotalShifts > 0 {
			point.Occupancy = float64(occ.OccupiedShifts) / float64(occ.TotalShifts) * 100
		}
		resp.Months = append(resp.Months, point)
	}

	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// Statistics returns the general statistics snapshot for the current month.
func (s *ReportingService) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	const cacheKey = "reports:statistics"
	var cached dto.StatisticsResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	monthStart := utils.MonthStart(s.now())
	monthEnd := utils.AddMonths(monthStart, 1).AddDate(0, 0, -1)

	usage, err := s.reportingRepo.SeatUsage(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to compute seat usage: %w", err)
	}
	totalPoints, err := s.reportingRepo.TotalPointsDistributed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum points: %w", err)
	}
	topWorker, err := s.reportingRepo.TopWorkerName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find top worker: %w", err)
	}

	resp := &dto.StatisticsResponse{
		TotalPoints: totalPoints,
		FilledSeats: usage.FilledSeats,
		TotalSeats:  usage.TotalSeats,
		TopWorker:   topWorker,
	}
	if usage.TotalSeats > 0 {
		resp.OccupancyRate = float64(usage.FilledSeats) / float64(usage.TotalSeats) * 100
	}

	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

func (s *ReportingService) cacheGet(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil || cached == "" {
		return false
	}
	return json.Unmarshal([]byte(cached), target) == nil
}

func (s *ReportingService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), reportCacheTTL); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to cache report", slog.String("key", key), slog.String("error", err.Error()))
	}
}
