package repositories

import (
	"context"
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email. Returns apperrors.ErrNotFound
	// when no active user has the address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUserWithWorker persists a new user and, when worker is non-nil, its
	// worker record within a single transaction.
	SaveUserWithWorker(ctx context.Context, user domain.User, worker *domain.Worker) error

	// UpdatePassword replaces a user's password hash.
	UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error
}

// UserRepository combines all user repository interfaces.
type UserRepository interface {
	UserReader
	UserWriter
}
