package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest, originIP string) (*domain.User, error) {
	args := m.Called(ctx, req, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Authenticate(ctx context.Context, email, password, originIP string) (*domain.User, error) {
	args := m.Called(ctx, email, password, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.User, *domain.Worker, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var worker *domain.Worker
	if args.Get(1) != nil {
		worker = args.Get(1).(*domain.Worker)
	}
	return args.Get(0).(*domain.User), worker, args.Error(2)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword, originIP string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword, originIP)
	return args.Error(0)
}
func (m *MockUserService) ListUsers(ctx context.Context, actorID string, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, actorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateTokenPair(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}
func (m *MockTokenService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock ShiftService ---
type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) ListShifts(ctx context.Context, from, to time.Time) ([]portssvc.ShiftWithAllocations, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portssvc.ShiftWithAllocations), args.Error(1)
}
func (m *MockShiftService) GenerateMonth(ctx context.Context, actorID string, year, month int, originIP string) (int, int, error) {
	args := m.Called(ctx, actorID, year, month, originIP)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockShiftService) ClaimShift(ctx context.Context, actorUserID, shiftID, originIP string) (*domain.Allocation, error) {
	args := m.Called(ctx, actorUserID, shiftID, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}
func (m *MockShiftService) AssignWorker(ctx context.Context, actorID, shiftID, workerID, originIP string) (*domain.Allocation, error) {
	args := m.Called(ctx, actorID, shiftID, workerID, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Allocation), args.Error(1)
}
func (m *MockShiftService) CancelAllocation(ctx context.Context, actorID, allocationID, originIP string) error {
	args := m.Called(ctx, actorID, allocationID, originIP)
	return args.Error(0)
}
func (m *MockShiftService) RemoveAllocation(ctx context.Context, actorID, shiftID, workerID, originIP string) error {
	args := m.Called(ctx, actorID, shiftID, workerID, originIP)
	return args.Error(0)
}
func (m *MockShiftService) MyShifts(ctx context.Context, actorUserID string) ([]domain.Allocation, map[string]domain.Shift, error) {
	args := m.Called(ctx, actorUserID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Allocation), args.Get(1).(map[string]domain.Shift), args.Error(2)
}
func (m *MockShiftService) AvailableShifts(ctx context.Context, actorUserID string, from, to time.Time) ([]portssvc.ShiftWithAllocations, error) {
	args := m.Called(ctx, actorUserID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portssvc.ShiftWithAllocations), args.Error(1)
}
func (m *MockShiftService) UpdateShift(ctx context.Context, actorID, shiftID string, req dto.UpdateShiftRequest, originIP string) (*domain.Shift, error) {
	args := m.Called(ctx, actorID, shiftID, req, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}
func (m *MockShiftService) DeleteShift(ctx context.Context, actorID, shiftID, originIP string) error {
	args := m.Called(ctx, actorID, shiftID, originIP)
	return args.Error(0)
}

var _ portssvc.ShiftSvcFacade = (*MockShiftService)(nil)

// --- Mock ScoreService ---
type MockScoreService struct {
	mock.Mock
}

func (m *MockScoreService) UpsertScore(ctx context.Context, actorID string, req dto.UpsertScoreRequest, originIP string) (*domain.MonthlyScore, error) {
	args := m.Called(ctx, actorID, req, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyScore), args.Error(1)
}
func (m *MockScoreService) ImportScores(ctx context.Context, actorID string, req dto.ImportScoresRequest, originIP string) (*dto.ImportScoresResult, error) {
	args := m.Called(ctx, actorID, req, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportScoresResult), args.Error(1)
}
func (m *MockScoreService) ScoresForMonth(ctx context.Context, month time.Time) ([]domain.MonthlyScore, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyScore), args.Error(1)
}
func (m *MockScoreService) WorkerScores(ctx context.Context, workerID string) ([]domain.MonthlyScore, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyScore), args.Error(1)
}
func (m *MockScoreService) MyPerformance(ctx context.Context, actorUserID string) (*dto.PerformanceResponse, error) {
	args := m.Called(ctx, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PerformanceResponse), args.Error(1)
}
func (m *MockScoreService) DeleteScore(ctx context.Context, actorID, scoreID, originIP string) error {
	args := m.Called(ctx, actorID, scoreID, originIP)
	return args.Error(0)
}

var _ portssvc.ScoreSvcFacade = (*MockScoreService)(nil)

// --- Mock RankingService ---
type MockRankingService struct {
	mock.Mock
}

func (m *MockRankingService) CurrentRanking(ctx context.Context) ([]dto.RankingEntryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RankingEntryResponse), args.Error(1)
}
func (m *MockRankingService) RankMonth(ctx context.Context, actorID string, month time.Time, originIP string) ([]domain.MonthlyScore, error) {
	args := m.Called(ctx, actorID, month, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyScore), args.Error(1)
}
func (m *MockRankingService) RankAccumulated(ctx context.Context, actorID string, windowMonths int, originIP string) ([]domain.WorkerRanking, error) {
	args := m.Called(ctx, actorID, windowMonths, originIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkerRanking), args.Error(1)
}

var _ portssvc.RankingSvcFacade = (*MockRankingService)(nil)

// --- Mock SettingService ---
type MockSettingService struct {
	mock.Mock
}

func (m *MockSettingService) ListSettings(ctx context.Context, actorID string) ([]domain.Setting, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockSettingService) PutSetting(ctx context.Context, actorID, key, value, originIP string) error {
	args := m.Called(ctx, actorID, key, value, originIP)
	return args.Error(0)
}
func (m *MockSettingService) WeightTable(ctx context.Context) (domain.WeightTable, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.WeightTable), args.Error(1)
}
func (m *MockSettingService) SchedulePolicy(ctx context.Context) (domain.SchedulePolicy, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SchedulePolicy), args.Error(1)
}

var _ portssvc.SettingSvcFacade = (*MockSettingService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, actorID, action, tableName, recordID string, details any, originIP string) {
	m.Called(ctx, actorID, action, tableName, recordID, details, originIP)
}
func (m *MockAuditService) ListLogs(ctx context.Context, actorID string, filter portsrepo.AuditLogFilter, page, perPage int) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, actorID, filter, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int64), args.Error(2)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) OccupancyTrend(ctx context.Context, actorID string, months int) (*dto.OccupancyTrendResponse, error) {
	args := m.Called(ctx, actorID, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OccupancyTrendResponse), args.Error(1)
}
func (m *MockReportingService) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatisticsResponse), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// handlerMocks bundles one mock per service facade.
type handlerMocks struct {
	user      *MockUserService
	token     *MockTokenService
	shift     *MockShiftService
	score     *MockScoreService
	ranking   *MockRankingService
	setting   *MockSettingService
	audit     *MockAuditService
	reporting *MockReportingService
}

func newHandlerMocks() *handlerMocks {
	return &handlerMocks{
		user:      new(MockUserService),
		token:     new(MockTokenService),
		shift:     new(MockShiftService),
		score:     new(MockScoreService),
		ranking:   new(MockRankingService),
		setting:   new(MockSettingService),
		audit:     new(MockAuditService),
		reporting: new(MockReportingService),
	}
}

func (m *handlerMocks) container() *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:      m.user,
		Token:     m.token,
		Shift:     m.shift,
		Score:     m.score,
		Ranking:   m.ranking,
		Setting:   m.setting,
		Audit:     m.audit,
		Reporting: m.reporting,
	}
}
