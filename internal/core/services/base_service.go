package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	"github.com/plantaohub/plantao_backend/internal/middleware"
)

// requireManagerial loads the acting user and verifies it may perform
// manager-only operations.
func requireManagerial(ctx context.Context, userRepo portsrepo.UserReader, actorID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to load acting user", slog.String("error", err.Error()), slog.String("actor_id", actorID))
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	if !user.Active {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.Type.IsManagerial() {
		logger.Warn("Manager-only operation attempted", slog.String("actor_id", actorID), slog.String("type", string(user.Type)))
		return nil, fmt.Errorf("%w: manager role required", apperrors.ErrForbidden)
	}
	return user, nil
}

// requireWorker loads the acting user together with its worker record.
// Accounts without a worker record cannot use the worker-facing operations.
func requireWorker(ctx context.Context, userRepo portsrepo.UserReader, workerRepo portsrepo.WorkerRepository, actorUserID string) (*domain.User, *domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to load acting user", slog.String("error", err.Error()), slog.String("actor_id", actorUserID))
		return nil, nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	if !user.Active {
		return nil, nil, apperrors.ErrUnauthorized
	}

	worker, err := workerRepo.FindWorkerByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: worker account required", apperrors.ErrForbidden)
		}
		logger.Error("Failed to load worker record", slog.String("error", err.Error()), slog.String("actor_id", actorUserID))
		return nil, nil, fmt.Errorf("failed to load worker record: %w", err)
	}
	return user, worker, nil
}
