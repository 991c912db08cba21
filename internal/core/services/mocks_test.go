package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	FindUsersFn          func(ctx context.Context, limit, offset int) ([]domain.User, error)
	SaveUserWithWorkerFn func(ctx context.Context, user domain.User, worker *domain.Worker) error
	UpdatePasswordFn     func(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if m.FindUsersFn != nil {
		return m.FindUsersFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUserWithWorker(ctx context.Context, user domain.User, worker *domain.Worker) error {
	if m.SaveUserWithWorkerFn != nil {
		return m.SaveUserWithWorkerFn(ctx, user, worker)
	}
	args := m.Called(ctx, user, worker)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, userID, passwordHash, updatedAt)
	}
	args := m.Called(ctx, userID, passwordHash, updatedAt)
	return args.Error(0)
}

// --- Mock WorkerRepository ---

type MockWorkerRepository struct {
	mock.Mock
	FindWorkerByIDFn     func(ctx context.Context, workerID string) (*domain.Worker, error)
	FindWorkerByUserIDFn func(ctx context.Context, userID string) (*domain.Worker, error)
	FindWorkerByNameFn   func(ctx context.Context, name string) (*domain.Worker, error)
	ListRankedWorkersFn  func(ctx context.Context) ([]portsrepo.RankedWorker, error)
}

func (m *MockWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	if m.FindWorkerByIDFn != nil {
		return m.FindWorkerByIDFn(ctx, workerID)
	}
	args := m.Called(ctx, workerID)
	var worker *domain.Worker
	if args.Get(0) != nil {
		worker = args.Get(0).(*domain.Worker)
	}
	return worker, args.Error(1)
}

func (m *MockWorkerRepository) FindWorkerByUserID(ctx context.Context, userID string) (*domain.Worker, error) {
	if m.FindWorkerByUserIDFn != nil {
		return m.FindWorkerByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var worker *domain.Worker
	if args.Get(0) != nil {
		worker = args.Get(0).(*domain.Worker)
	}
	return worker, args.Error(1)
}

func (m *MockWorkerRepository) FindWorkerByName(ctx context.Context, name string) (*domain.Worker, error) {
	if m.FindWorkerByNameFn != nil {
		return m.FindWorkerByNameFn(ctx, name)
	}
	args := m.Called(ctx, name)
	var worker *domain.Worker
	if args.Get(0) != nil {
		worker = args.Get(0).(*domain.Worker)
	}
	return worker, args.Error(1)
}

func (m *MockWorkerRepository) ListRankedWorkers(ctx context.Context) ([]portsrepo.RankedWorker, error) {
	if m.ListRankedWorkersFn != nil {
		return m.ListRankedWorkersFn(ctx)
	}
	args := m.Called(ctx)
	var workers []portsrepo.RankedWorker
	if args.Get(0) != nil {
		workers = args.Get(0).([]portsrepo.RankedWorker)
	}
	return workers, args.Error(1)
}

// --- Mock ShiftRepository ---

// MockShiftRepository defaults every unset gate lookup to the "no obstacle"
// answer so tests only override the gate under examination.
type MockShiftRepository struct {
	mock.Mock
	FindShiftByIDFn           func(ctx context.Context, shiftID string) (*domain.Shift, error)
	ListShiftsByDateRangeFn   func(ctx context.Context, from, to time.Time) ([]domain.Shift, error)
	SaveShiftsFn              func(ctx context.Context, shifts []domain.Shift) (int, error)
	UpdateShiftFn             func(ctx context.Context, shift domain.Shift) error
	DeleteShiftFn             func(ctx context.Context, shiftID string) error
	FindAllocationByIDFn      func(ctx context.Context, allocationID string) (*domain.Allocation, error)
	CountConfirmedByShiftFn   func(ctx context.Context, shiftID string) (int, error)
	FindConfirmedAllocationFn func(ctx context.Context, shiftID, workerID string) (*domain.Allocation, error)
	HasConfirmedOnDateFn      func(ctx context.Context, workerID string, date time.Time) (bool, error)
	CountConfirmedInRangeFn   func(ctx context.Context, workerID string, from, to time.Time) (int, error)
	ListConfirmedByShiftsFn   func(ctx context.Context, shiftIDs []string) (map[string][]domain.Allocation, error)
	ListWorkerAllocationsFn   func(ctx context.Context, workerID string, from time.Time) ([]domain.Allocation, map[string]domain.Shift, error)
	CreateAllocationFn        func(ctx context.Context, allocation domain.Allocation) (domain.ShiftStatus, error)
	CancelAllocationFn        func(ctx context.Context, allocationID string, cancelledBy string, at time.Time) error
	DeleteAllocationFn        func(ctx context.Context, allocationID, deletedBy string, at time.Time) error
}

func (m *MockShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	if m.FindShiftByIDFn != nil {
		return m.FindShiftByIDFn(ctx, shiftID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockShiftRepository) ListShiftsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Shift, error) {
	if m.ListShiftsByDateRangeFn != nil {
		return m.ListShiftsByDateRangeFn(ctx, from, to)
	}
	return nil, nil
}

func (m *MockShiftRepository) SaveShifts(ctx context.Context, shifts []domain.Shift) (int, error) {
	if m.SaveShiftsFn != nil {
		return m.SaveShiftsFn(ctx, shifts)
	}
	return len(shifts), nil
}

func (m *MockShiftRepository) UpdateShift(ctx context.Context, shift domain.Shift) error {
	if m.UpdateShiftFn != nil {
		return m.UpdateShiftFn(ctx, shift)
	}
	return nil
}

func (m *MockShiftRepository) DeleteShift(ctx context.Context, shiftID string) error {
	if m.DeleteShiftFn != nil {
		return m.DeleteShiftFn(ctx, shiftID)
	}
	return nil
}

func (m *MockShiftRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error) {
	if m.FindAllocationByIDFn != nil {
		return m.FindAllocationByIDFn(ctx, allocationID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockShiftRepository) CountConfirmedByShift(ctx context.Context, shiftID string) (int, error) {
	if m.CountConfirmedByShiftFn != nil {
		return m.CountConfirmedByShiftFn(ctx, shiftID)
	}
	return 0, nil
}

func (m *MockShiftRepository) FindConfirmedAllocation(ctx context.Context, shiftID, workerID string) (*domain.Allocation, error) {
	if m.FindConfirmedAllocationFn != nil {
		return m.FindConfirmedAllocationFn(ctx, shiftID, workerID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockShiftRepository) HasConfirmedOnDate(ctx context.Context, workerID string, date time.Time) (bool, error) {
	if m.HasConfirmedOnDateFn != nil {
		return m.HasConfirmedOnDateFn(ctx, workerID, date)
	}
	return false, nil
}

func (m *MockShiftRepository) CountConfirmedInRange(ctx context.Context, workerID string, from, to time.Time) (int, error) {
	if m.CountConfirmedInRangeFn != nil {
		return m.CountConfirmedInRangeFn(ctx, workerID, from, to)
	}
	return 0, nil
}

func (m *MockShiftRepository) ListConfirmedByShifts(ctx context.Context, shiftIDs []string) (map[string][]domain.Allocation, error) {
	if m.ListConfirmedByShiftsFn != nil {
		return m.ListConfirmedByShiftsFn(ctx, shiftIDs)
	}
	return map[string][]domain.Allocation{}, nil
}

func (m *MockShiftRepository) ListWorkerAllocationsFrom(ctx context.Context, workerID string, from time.Time) ([]domain.Allocation, map[string]domain.Shift, error) {
	if m.ListWorkerAllocationsFn != nil {
		return m.ListWorkerAllocationsFn(ctx, workerID, from)
	}
	return nil, nil, nil
}

func (m *MockShiftRepository) CreateAllocation(ctx context.Context, allocation domain.Allocation) (domain.ShiftStatus, error) {
	if m.CreateAllocationFn != nil {
		return m.CreateAllocationFn(ctx, allocation)
	}
	return domain.ShiftPartial, nil
}

func (m *MockShiftRepository) CancelAllocation(ctx context.Context, allocationID string, cancelledBy string, at time.Time) error {
	if m.CancelAllocationFn != nil {
		return m.CancelAllocationFn(ctx, allocationID, cancelledBy, at)
	}
	return nil
}

func (m *MockShiftRepository) DeleteAllocation(ctx context.Context, allocationID, deletedBy string, at time.Time) error {
	if m.DeleteAllocationFn != nil {
		return m.DeleteAllocationFn(ctx, allocationID, deletedBy, at)
	}
	return nil
}

func (m *MockShiftRepository) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (m *MockShiftRepository) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (m *MockShiftRepository) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

// --- Mock ScoreRepository ---

type MockScoreRepository struct {
	mock.Mock
	FindScoreByIDFn           func(ctx context.Context, scoreID string) (*domain.MonthlyScore, error)
	FindScoreFn               func(ctx context.Context, workerID string, month time.Time) (*domain.MonthlyScore, error)
	ListScoresByMonthFn       func(ctx context.Context, month time.Time) ([]domain.MonthlyScore, error)
	ListScoresByWorkerFn      func(ctx context.Context, workerID string) ([]domain.MonthlyScore, error)
	SumTotalsByWorkerFn       func(ctx context.Context, from, to time.Time) ([]domain.WorkerRanking, error)
	SaveScoreFn               func(ctx context.Context, score domain.MonthlyScore) error
	DeleteScoreFn             func(ctx context.Context, scoreID string) error
	ApplyMonthlyRankingFn     func(ctx context.Context, scores []domain.MonthlyScore, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error
	ApplyAccumulatedRankingFn func(ctx context.Context, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error
}

func (m *MockScoreRepository) FindScoreByID(ctx context.Context, scoreID string) (*domain.MonthlyScore, error) {
	if m.FindScoreByIDFn != nil {
		return m.FindScoreByIDFn(ctx, scoreID)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockScoreRepository) FindScore(ctx context.Context, workerID string, month time.Time) (*domain.MonthlyScore, error) {
	if m.FindScoreFn != nil {
		return m.FindScoreFn(ctx, workerID, month)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockScoreRepository) ListScoresByMonth(ctx context.Context, month time.Time) ([]domain.MonthlyScore, error) {
	if m.ListScoresByMonthFn != nil {
		return m.ListScoresByMonthFn(ctx, month)
	}
	return nil, nil
}

func (m *MockScoreRepository) ListScoresByWorker(ctx context.Context, workerID string) ([]domain.MonthlyScore, error) {
	if m.ListScoresByWorkerFn != nil {
		return m.ListScoresByWorkerFn(ctx, workerID)
	}
	return nil, nil
}

func (m *MockScoreRepository) SumTotalsByWorker(ctx context.Context, from, to time.Time) ([]domain.WorkerRanking, error) {
	if m.SumTotalsByWorkerFn != nil {
		return m.SumTotalsByWorkerFn(ctx, from, to)
	}
	return nil, nil
}

func (m *MockScoreRepository) SaveScore(ctx context.Context, score domain.MonthlyScore) error {
	if m.SaveScoreFn != nil {
		return m.SaveScoreFn(ctx, score)
	}
	return nil
}

func (m *MockScoreRepository) DeleteScore(ctx context.Context, scoreID string) error {
	if m.DeleteScoreFn != nil {
		return m.DeleteScoreFn(ctx, scoreID)
	}
	return nil
}

func (m *MockScoreRepository) ApplyMonthlyRanking(ctx context.Context, scores []domain.MonthlyScore, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
	if m.ApplyMonthlyRankingFn != nil {
		return m.ApplyMonthlyRankingFn(ctx, scores, rankings, updatedBy, at)
	}
	return nil
}

func (m *MockScoreRepository) ApplyAccumulatedRanking(ctx context.Context, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
	if m.ApplyAccumulatedRankingFn != nil {
		return m.ApplyAccumulatedRankingFn(ctx, rankings, updatedBy, at)
	}
	return nil
}

// --- Mock SettingRepository ---

type MockSettingRepository struct {
	mock.Mock
	FindSettingFn  func(ctx context.Context, key string) (*domain.Setting, error)
	ListSettingsFn func(ctx context.Context) ([]domain.Setting, error)
	SaveSettingFn  func(ctx context.Context, setting domain.Setting) error
}

func (m *MockSettingRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	if m.FindSettingFn != nil {
		return m.FindSettingFn(ctx, key)
	}
	return nil, apperrors.ErrNotFound
}

func (m *MockSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	if m.ListSettingsFn != nil {
		return m.ListSettingsFn(ctx)
	}
	return nil, nil
}

func (m *MockSettingRepository) SaveSetting(ctx context.Context, setting domain.Setting) error {
	if m.SaveSettingFn != nil {
		return m.SaveSettingFn(ctx, setting)
	}
	return nil
}

// --- Mock AuditLogRepository ---

type MockAuditLogRepository struct {
	mock.Mock
	SaveAuditLogFn  func(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogsFn func(ctx context.Context, filter portsrepo.AuditLogFilter, limit, offset int) ([]domain.AuditLog, int64, error)
}

func (m *MockAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	if m.SaveAuditLogFn != nil {
		return m.SaveAuditLogFn(ctx, entry)
	}
	return nil
}

func (m *MockAuditLogRepository) ListAuditLogs(ctx context.Context, filter portsrepo.AuditLogFilter, limit, offset int) ([]domain.AuditLog, int64, error) {
	if m.ListAuditLogsFn != nil {
		return m.ListAuditLogsFn(ctx, filter, limit, offset)
	}
	return nil, 0, nil
}

// --- Mock Cache ---

// MockCache is an in-memory cache that ignores TTLs.
type MockCache struct {
	values map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{values: map[string]string{}}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

// --- Mock Notifier ---

// MockNotifier records published events for assertions.
type MockNotifier struct {
	Events []string
}

func (m *MockNotifier) Publish(ctx context.Context, kind string, payload any) {
	m.Events = append(m.Events, kind)
}

// --- Shared fixtures ---

func managerUser(userID string) *domain.User {
	return &domain.User{UserID: userID, Name: "Manager", Type: domain.UserTypeManager, Active: true}
}

func adminUser(userID string) *domain.User {
	return &domain.User{UserID: userID, Name: "Admin", Type: domain.UserTypeAdmin, Active: true}
}

func workerUser(userID string) *domain.User {
	return &domain.User{UserID: userID, Name: "Worker", Type: domain.UserTypeWorker, Active: true}
}
