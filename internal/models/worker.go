package models

import "github.com/shopspring/decimal"

// Worker represents a row of the workers table.
type Worker struct {
	WorkerID     string          `db:"worker_id"`
	UserID       string          `db:"user_id"`
	Rank         *int            `db:"rank"`
	TotalPoints  decimal.Decimal `db:"total_points"`
	MonthlyQuota int             `db:"monthly_quota"`
	AuditFields
}
