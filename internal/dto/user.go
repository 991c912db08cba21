package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Type:      string(u.Type),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// WorkerResponse is the public representation of a worker record.
type WorkerResponse struct {
	WorkerID     string          `json:"workerID"`
	Rank         *int            `json:"rank,omitempty"`
	TotalPoints  decimal.Decimal `json:"totalPoints"`
	MonthlyQuota int             `json:"monthlyQuota"`
}

// ToWorkerResponse converts a domain.Worker to its response DTO.
func ToWorkerResponse(w *domain.Worker) WorkerResponse {
	return WorkerResponse{
		WorkerID:     w.WorkerID,
		Rank:         w.Rank,
		TotalPoints:  w.TotalPoints,
		MonthlyQuota: w.MonthlyQuota,
	}
}

// ProfileResponse is the authenticated user's own view, including the worker
// record when the account is worker-typed.
type ProfileResponse struct {
	UserResponse
	Worker *WorkerResponse `json:"worker,omitempty"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to the list DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: out}
}
