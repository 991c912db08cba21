package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	"github.com/plantaohub/plantao_backend/internal/core/services"
)

type RankingServiceTestSuite struct {
	suite.Suite
	mockScoreRepo  *MockScoreRepository
	mockWorkerRepo *MockWorkerRepository
	mockUserRepo   *MockUserRepository
	cache          *MockCache
	notifier       *MockNotifier
	service        *services.RankingService

	managerID string
}

func (s *RankingServiceTestSuite) SetupTest() {
	s.mockScoreRepo = new(MockScoreRepository)
	s.mockWorkerRepo = new(MockWorkerRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.cache = NewMockCache()
	s.notifier = new(MockNotifier)

	s.managerID = uuid.NewString()
	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		if userID == s.managerID {
			return managerUser(userID), nil
		}
		return workerUser(userID), nil
	}

	audit := services.NewAuditService(new(MockAuditLogRepository), s.mockUserRepo)
	settings := services.NewSettingService(new(MockSettingRepository), s.mockUserRepo, audit)
	s.service = services.NewRankingService(s.mockScoreRepo, s.mockWorkerRepo, s.mockUserRepo, settings, audit, s.notifier, s.cache)
}

func scoreWith(workerID string, sales, referralsFocus int) domain.MonthlyScore {
	return domain.MonthlyScore{
		ScoreID:        uuid.NewString(),
		WorkerID:       workerID,
		ReferenceMonth: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		Sales:          sales,
		ReferralsFocus: referralsFocus,
	}
}

func (s *RankingServiceTestSuite) TestRankMonth_DenseRanksByRecomputedTotal() {
	month := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	first := uuid.NewString()
	second := uuid.NewString()

	// 5 sales = 40 points; 3 sales + 1 focus referral = 26 points.
	s.mockScoreRepo.ListScoresByMonthFn = func(ctx context.Context, m time.Time) ([]domain.MonthlyScore, error) {
		return []domain.MonthlyScore{scoreWith(second, 3, 1), scoreWith(first, 5, 0)}, nil
	}

	var persisted []domain.WorkerRanking
	s.mockScoreRepo.ApplyMonthlyRankingFn = func(ctx context.Context, scores []domain.MonthlyScore, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
		persisted = rankings
		return nil
	}

	scores, err := s.service.RankMonth(context.Background(), s.managerID, month, "")

	s.Require().NoError(err)
	s.Require().Len(scores, 2)
	s.Equal(first, scores[0].WorkerID)
	s.Equal("40", scores[0].TotalPoints.String())
	s.Equal(second, scores[1].WorkerID)
	s.Equal("26", scores[1].TotalPoints.String())

	s.Require().Len(persisted, 2)
	s.Equal(1, persisted[0].Rank)
	s.Equal(first, persisted[0].WorkerID)
	s.Equal(2, persisted[1].Rank)
	s.Contains(s.notifier.Events, "ranking.updated")
}

func (s *RankingServiceTestSuite) TestRankMonth_TiesKeepInsertionOrder() {
	month := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	earlier := uuid.NewString()
	later := uuid.NewString()

	s.mockScoreRepo.ListScoresByMonthFn = func(ctx context.Context, m time.Time) ([]domain.MonthlyScore, error) {
		return []domain.MonthlyScore{scoreWith(earlier, 2, 0), scoreWith(later, 2, 0)}, nil
	}

	var persisted []domain.WorkerRanking
	s.mockScoreRepo.ApplyMonthlyRankingFn = func(ctx context.Context, scores []domain.MonthlyScore, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
		persisted = rankings
		return nil
	}

	_, err := s.service.RankMonth(context.Background(), s.managerID, month, "")

	s.Require().NoError(err)
	s.Require().Len(persisted, 2)
	s.Equal(earlier, persisted[0].WorkerID)
	s.Equal(1, persisted[0].Rank)
	s.Equal(later, persisted[1].WorkerID)
	s.Equal(2, persisted[1].Rank)
}

func (s *RankingServiceTestSuite) TestRankMonth_EmptyMonth() {
	applied := false
	s.mockScoreRepo.ApplyMonthlyRankingFn = func(ctx context.Context, scores []domain.MonthlyScore, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
		applied = true
		return nil
	}

	scores, err := s.service.RankMonth(context.Background(), s.managerID, time.Now(), "")

	s.Require().NoError(err)
	s.Empty(scores)
	s.False(applied)
}

func (s *RankingServiceTestSuite) TestRankMonth_ManagerOnly() {
	_, err := s.service.RankMonth(context.Background(), uuid.NewString(), time.Now(), "")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *RankingServiceTestSuite) TestCurrentRanking_CachesAndInvalidates() {
	rank := 1
	listCalls := 0
	s.mockWorkerRepo.ListRankedWorkersFn = func(ctx context.Context) ([]portsrepo.RankedWorker, error) {
		listCalls++
		return []portsrepo.RankedWorker{{
			Worker: domain.Worker{WorkerID: uuid.NewString(), Rank: &rank, TotalPoints: decimal.NewFromInt(40)},
			Name:   "Ana",
		}}, nil
	}

	first, err := s.service.CurrentRanking(context.Background())
	s.Require().NoError(err)
	s.Require().Len(first, 1)
	s.Equal(1, first[0].Rank)
	s.Equal("Ana", first[0].Name)

	// Second read is served from the cache.
	_, err = s.service.CurrentRanking(context.Background())
	s.Require().NoError(err)
	s.Equal(1, listCalls)

	// A recalculation invalidates the cache.
	s.mockScoreRepo.ListScoresByMonthFn = func(ctx context.Context, m time.Time) ([]domain.MonthlyScore, error) {
		return []domain.MonthlyScore{scoreWith(uuid.NewString(), 1, 0)}, nil
	}
	_, err = s.service.RankMonth(context.Background(), s.managerID, time.Now(), "")
	s.Require().NoError(err)

	_, err = s.service.CurrentRanking(context.Background())
	s.Require().NoError(err)
	s.Equal(2, listCalls)
}

func (s *RankingServiceTestSuite) TestRankAccumulated_DefaultWindow() {
	var gotFrom, gotTo time.Time
	s.mockScoreRepo.SumTotalsByWorkerFn = func(ctx context.Context, from, to time.Time) ([]domain.WorkerRanking, error) {
		gotFrom, gotTo = from, to
		return []domain.WorkerRanking{
			{WorkerID: uuid.NewString(), Total: decimal.NewFromInt(90)},
			{WorkerID: uuid.NewString(), Total: decimal.NewFromInt(70)},
		}, nil
	}

	rankings, err := s.service.RankAccumulated(context.Background(), s.managerID, 0, "")

	s.Require().NoError(err)
	s.Require().Len(rankings, 2)
	s.Equal(1, rankings[0].Rank)
	s.Equal(2, rankings[1].Rank)

	// Default window is three months, current month included.
	s.Equal(gotTo.AddDate(0, -2, 0), gotFrom)
}

func TestRankingService(t *testing.T) {
	suite.Run(t, new(RankingServiceTestSuite))
}
