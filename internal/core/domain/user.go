package domain

import "time"

// UserType classifies an account and drives authorization decisions.
type UserType string

const (
	UserTypeAdmin   UserType = "admin"
	UserTypeManager UserType = "manager"
	UserTypeWorker  UserType = "worker"
)

// IsManagerial reports whether the type may use the manager-only operations
// (shift generation, manual assignment, ranking recalculation, ...).
func (t UserType) IsManagerial() bool {
	return t == UserTypeAdmin || t == UserTypeManager
}

// User represents an account in the application.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Type         UserType `json:"type"`
	Active       bool     `json:"active"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
