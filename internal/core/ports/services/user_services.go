package services

import (
	"context"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	"github.com/plantaohub/plantao_backend/internal/dto"
)

// UserSvcFacade exposes account operations.
type UserSvcFacade interface {
	// Register creates an account; worker-typed accounts get their worker
	// record in the same transaction.
	Register(ctx context.Context, req dto.RegisterRequest, originIP string) (*domain.User, error)

	// Authenticate verifies email + password and returns the active user.
	Authenticate(ctx context.Context, email, password, originIP string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetProfile retrieves a user and, for worker-typed accounts, the worker
	// record with rank information.
	GetProfile(ctx context.Context, userID string) (*domain.User, *domain.Worker, error)

	// ChangePassword verifies the current password and replaces it.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword, originIP string) error

	// ListUsers lists accounts. Manager-only.
	ListUsers(ctx context.Context, actorID string, limit, offset int) ([]domain.User, error)
}

// TokenSvcFacade issues and validates the JWT pair.
type TokenSvcFacade interface {
	// GenerateTokenPair returns an access token, its expiry, and a refresh token.
	GenerateTokenPair(ctx context.Context, user *domain.User) (*dto.TokenResponse, error)

	// RefreshAccessToken validates a refresh token and issues a new access token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
}
