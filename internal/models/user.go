package models

import "time"

// User represents a row of the users table.
type User struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Type         string `db:"type"`
	Active       bool   `db:"active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
