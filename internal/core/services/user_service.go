package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// defaultMonthlyQuota is the confirmed-allocations-per-month limit given to
// newly registered workers until a manager adjusts it.
const defaultMonthlyQuota = 10

// UserService handles account management and authentication checks.
type UserService struct {
	userRepo   portsrepo.UserRepository
	workerRepo portsrepo.WorkerRepository
	audit      portssvc.AuditSvcFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, workerRepo portsrepo.WorkerRepository, audit portssvc.AuditSvcFacade) *UserService {
	return &UserService{
		userRepo:   userRepo,
		workerRepo: workerRepo,
		audit:      audit,
	}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// Register creates an account. Worker-typed accounts get their worker record
// persisted in the same transaction.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest, originIP string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check email uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userType := domain.UserType(req.Type)
	if req.Type == "" {
		userType = domain.UserTypeWorker
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Type:         userType,
		Active:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var worker *domain.Worker
	if userType == domain.UserTypeWorker {
		worker = &domain.Worker{
			WorkerID:     uuid.NewString(),
			UserID:       userID,
			MonthlyQuota: defaultMonthlyQuota,
			AuditFields:  user.AuditFields,
		}
	}

	if err := s.userRepo.SaveUserWithWorker(ctx, user, worker); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.audit.Record(ctx, userID, "user.register", "users", userID, map[string]string{"type": string(userType)}, originIP)
	return &user, nil
}

// Authenticate verifies email + password and returns the active user.
// Unknown email and wrong password produce the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password, originIP string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	s.audit.Record(ctx, user.UserID, "user.login", "users", user.UserID, nil, originIP)
	return user, nil
}

// GetUserByID retrieves a user.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetProfile retrieves a user and, for worker-typed accounts, the worker record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, *domain.Worker, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if user.Type != domain.UserTypeWorker {
		return user, nil, nil
	}
	worker, err := s.workerRepo.FindWorkerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return user, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load worker record: %w", err)
	}
	return user, worker, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword, originIP string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrUnauthorized)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", slog.String("error", err.Error()))
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, time.Now()); err != nil {
		logger.Error("Failed to update password", slog.String("error", err.Error()))
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.audit.Record(ctx, userID, "user.change_password", "users", userID, nil, originIP)
	return nil
}

// ListUsers lists accounts. Manager-only.
func (s *UserService) ListUsers(ctx context.Context, actorID string, limit, offset int) ([]domain.User, error) {
	if _, err := requireManagerial(ctx, s.userRepo, actorID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.FindUsers(ctx, limit, offset)
}
